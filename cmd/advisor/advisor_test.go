package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbxark/styleadvisor"
	"github.com/tbxark/styleadvisor/config"
	"github.com/tbxark/styleadvisor/criteria"
	"github.com/tbxark/styleadvisor/export"
	"github.com/tbxark/styleadvisor/internal/fakemodel"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "ARK_API_KEY", "ADVISOR_API_KEY", "ADVISOR_ARCHIVE"} {
		t.Setenv(name, "")
	}
}

func TestRootCommand(t *testing.T) {
	out, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "chat")
	assert.Contains(t, out, "normalize")

	out, err = execute(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"second-hand acceptable"`)
	assert.Contains(t, out, `"budget"`)
}

func TestNormalizeCommand(t *testing.T) {
	out, err := execute(t, `{"type":"pants","materials":"denim","brands":false}`, "normalize", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"material": [`)
	assert.Contains(t, out, `"denim"`)
	assert.Contains(t, out, `"brands": []`)
	assert.Contains(t, out, `"occasion": true`)

	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"coat","budget":{"min":10,"max":90}}`), 0o600))
	out, err = execute(t, "", "normalize", "--format", "yaml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "type: coat")

	out, err = execute(t, `{"type":"coat"}`, "normalize")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "coat"`)

	_, err = execute(t, `{"type":`, "normalize")
	var perr *criteria.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestHistoryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.bolt")
	out, err := execute(t, "", "history", "--archive", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No criteria archived yet.")

	archive, err := export.OpenArchive(path)
	require.NoError(t, err)
	require.NoError(t, archive.Accept(context.Background(), &criteria.Criteria{Type: "scarf", Colors: []string{"red"}}))
	require.NoError(t, archive.Close())

	out, err = execute(t, "", "history", "--archive", path)
	require.NoError(t, err)
	assert.Contains(t, out, "scarf")
	assert.Contains(t, out, "red")
}

func TestHistoryCommand_ArchiveFromConfigWithoutAPIKey(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "a.bolt")
	archive, err := export.OpenArchive(archivePath)
	require.NoError(t, err)
	require.NoError(t, archive.Accept(context.Background(), &criteria.Criteria{Type: "boots"}))
	require.NoError(t, archive.Close())

	cfgPath := filepath.Join(dir, "advisor.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("archive: "+archivePath+"\n"), 0o600))

	out, err := execute(t, "", "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "boots")
}

func TestChatCommand_RequiresAPIKey(t *testing.T) {
	clearKeyEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "advisor.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("model: m\n"), 0o600))

	_, err := execute(t, "", "chat", "--config", cfgPath)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestRunChat(t *testing.T) {
	fake := fakemodel.Texts("Which colours do you like?", `{"type":"dress","colors":"blue"}`)
	cfg := &config.Config{Model: "test-model", MaxTokens: 128, Format: "json"}
	engine, err := styleadvisor.NewEngine(fake, engineOptions(cfg, fake)...)
	require.NoError(t, err)

	var screen, status, handoff bytes.Buffer
	console := newStyledConsole(strings.NewReader("a dress\nblue\n"), &screen)
	defaults := criteria.Normalize(map[string]any{"budget": []any{0.0, 50.0}})

	err = runChat(context.Background(), engine, console, defaults, export.NewWriter(&export.JSONExporter{}, &handoff), &status)
	require.NoError(t, err)
	assert.Contains(t, screen.String(), "Which colours do you like?")
	assert.Contains(t, screen.String(), `Final JSON: {"type":"dress","colors":"blue"}`)
	assert.Contains(t, handoff.String(), `"type": "dress"`)
	assert.Contains(t, handoff.String(), `"budget": [`)
	assert.Contains(t, status.String(), "2 service call(s)")

	require.Len(t, fake.Options, 2)
	assert.Equal(t, "test-model", *fake.Options[0].Model)
	assert.Equal(t, 128, *fake.Options[0].MaxTokens)
}

func TestRunChat_AbortedLeavesNoOutputFile(t *testing.T) {
	fake := fakemodel.Texts()
	engine, err := styleadvisor.NewEngine(fake, engineOptions(&config.Config{MaxTokens: 64}, fake)...)
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "criteria.json")
	consumer, closeFn, err := buildConsumer(&config.Config{Format: "json"}, &chatOptions{out: outPath}, &bytes.Buffer{})
	require.NoError(t, err)
	defer closeFn()

	err = runChat(context.Background(), engine, newStyledConsole(strings.NewReader("quit\n"), &bytes.Buffer{}),
		criteria.Criteria{}, consumer, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, fake.CallCount())

	_, err = os.Stat(outPath)
	assert.True(t, os.IsNotExist(err))
}

func TestBuildConsumer(t *testing.T) {
	_, _, err := buildConsumer(&config.Config{Format: "xml"}, &chatOptions{}, &bytes.Buffer{})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "a.bolt")
	var out bytes.Buffer
	consumer, closeFn, err := buildConsumer(&config.Config{Format: "md", Archive: path}, &chatOptions{}, &out)
	require.NoError(t, err)
	require.NoError(t, consumer.Accept(context.Background(), &criteria.Criteria{Type: "hat"}))
	closeFn()
	assert.Contains(t, out.String(), "# Shopping criteria")

	archive, err := export.OpenArchive(path)
	require.NoError(t, err)
	defer func() { _ = archive.Close() }()
	records, err := archive.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hat", records[0].Criteria.Type)
}

func TestBuildConsumer_OutDirNamesFileByFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	consumer, closeFn, err := buildConsumer(&config.Config{Format: "yaml"}, &chatOptions{outDir: dir}, &bytes.Buffer{})
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, consumer.Accept(context.Background(), &criteria.Criteria{Type: "coat"}))
	matches, err := filepath.Glob(filepath.Join(dir, "criteria-*.yaml"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: coat")
}
