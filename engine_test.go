package styleadvisor

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbxark/styleadvisor/command"
	"github.com/tbxark/styleadvisor/criteria"
	"github.com/tbxark/styleadvisor/dialogue"
	"github.com/tbxark/styleadvisor/internal/fakemodel"
	"github.com/tbxark/styleadvisor/types"
)

const dressRecord = `{"type":"dress","style":"chic","season":"summer","budget":[20,80],"materials":"cotton","colors":["blue","white"],"second-hand acceptable":false}`

func newTestEngine(t *testing.T, fake *fakemodel.Model, opts ...Option) *Engine {
	t.Helper()
	engine, err := NewEngine(fake, append([]Option{WithInstruction("test instruction")}, opts...)...)
	require.NoError(t, err)
	return engine
}

func TestEngine_NewSession(t *testing.T) {
	engine := newTestEngine(t, fakemodel.Texts())
	s := engine.NewSession()

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, types.PhaseAwaitingUserInput, s.Phase())
	require.Len(t, s.Transcript(), 1)
	assert.Equal(t, schema.Assistant, s.Transcript()[0].Role)
	assert.Equal(t, dialogue.DefaultOpeningQuestion, s.LatestQuestion())
	assert.Nil(t, s.Result())
	assert.False(t, s.Terminated())
}

func TestEngine_Step_ExitKeywords(t *testing.T) {
	for _, input := range []string{"exit", "QUIT", "  Stop  ", "\tquit\n"} {
		t.Run(input, func(t *testing.T) {
			fake := fakemodel.Texts("What style do you like?")
			engine := newTestEngine(t, fake)
			s := engine.NewSession()

			_, err := engine.Step(context.Background(), s, "a dress")
			require.NoError(t, err)

			turn, err := engine.Step(context.Background(), s, input)
			require.NoError(t, err)
			assert.Equal(t, OutcomeAborted, turn.Outcome)
			assert.True(t, s.Aborted())
			assert.Nil(t, s.Result())
			assert.Equal(t, 1, fake.CallCount())
			assert.Len(t, s.Transcript(), 3)
		})
	}
}

func TestEngine_Step_EmptyInputReprompts(t *testing.T) {
	fake := fakemodel.Texts()
	engine := newTestEngine(t, fake)
	s := engine.NewSession()

	for _, input := range []string{"", "   ", "\n\t"} {
		turn, err := engine.Step(context.Background(), s, input)
		require.NoError(t, err)
		assert.Equal(t, OutcomeReprompt, turn.Outcome)
		assert.Equal(t, dialogue.DefaultOpeningQuestion, turn.Message)
	}
	assert.Equal(t, 0, fake.CallCount())
	assert.Len(t, s.Transcript(), 1)
	assert.Equal(t, types.PhaseAwaitingUserInput, s.Phase())
}

func TestEngine_Step_ConversationalReply(t *testing.T) {
	fake := fakemodel.Texts("  Lovely! Which season is it for?")
	engine := newTestEngine(t, fake)
	s := engine.NewSession()

	turn, err := engine.Step(context.Background(), s, "  a dress  ")
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuestion, turn.Outcome)
	assert.Equal(t, "  Lovely! Which season is it for?", turn.Message)
	assert.Equal(t, types.PhaseAwaitingUserInput, s.Phase())

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, schema.User, transcript[1].Role)
	assert.Equal(t, "a dress", transcript[1].Content)
	assert.Equal(t, schema.Assistant, transcript[2].Role)
	assert.Equal(t, 1, s.ServiceCalls())
}

func TestEngine_Step_RequestCarriesInstructionAndTranscript(t *testing.T) {
	fake := fakemodel.Texts("Which style?", "Which season?")
	engine := newTestEngine(t, fake)
	s := engine.NewSession()

	_, err := engine.Step(context.Background(), s, "a dress")
	require.NoError(t, err)
	_, err = engine.Step(context.Background(), s, "chic")
	require.NoError(t, err)

	require.Len(t, fake.Calls, 2)
	second := fake.Calls[1]
	require.Len(t, second, 5)
	assert.Equal(t, schema.User, second[0].Role)
	assert.Equal(t, "test instruction", second[0].Content)
	assert.Equal(t, dialogue.DefaultOpeningQuestion, second[1].Content)
	assert.Equal(t, "a dress", second[2].Content)
	assert.Equal(t, "Which style?", second[3].Content)
	assert.Equal(t, "chic", second[4].Content)
}

func TestEngine_Step_TerminalRecord(t *testing.T) {
	fake := fakemodel.Texts("Which style?", "\n"+dressRecord)
	engine := newTestEngine(t, fake)
	s := engine.NewSession()

	_, err := engine.Step(context.Background(), s, "a dress")
	require.NoError(t, err)
	turn, err := engine.Step(context.Background(), s, "chic, summer, 20 to 80, cotton, blue and white, no second hand")
	require.NoError(t, err)

	want := &criteria.Criteria{
		Type:     "dress",
		Style:    "chic",
		Season:   "summer",
		Budget:   []float64{20, 80},
		Material: []string{"cotton"},
		Colors:   []string{"blue", "white"},
		Brands:   []string{},
		Occasion: false,
	}
	assert.Equal(t, OutcomeCompleted, turn.Outcome)
	assert.Equal(t, want, turn.Criteria)
	assert.Equal(t, want, s.Result())
	assert.True(t, s.Terminated())
	assert.False(t, s.Aborted())
	assert.Len(t, s.Transcript(), 5)
}

func TestEngine_Step_EmptyRecordUsesDefaults(t *testing.T) {
	engine := newTestEngine(t, fakemodel.Texts("{}"))
	s := engine.NewSession()

	turn, err := engine.Step(context.Background(), s, "surprise me")
	require.NoError(t, err)
	assert.Equal(t, &criteria.Criteria{
		Budget:   []float64{},
		Material: []string{},
		Colors:   []string{},
		Brands:   []string{},
		Occasion: true,
	}, turn.Criteria)
}

func TestEngine_Step_InvalidRecordIsFatal(t *testing.T) {
	engine := newTestEngine(t, fakemodel.Texts(`{"type": "dress",`))
	s := engine.NewSession()

	turn, err := engine.Step(context.Background(), s, "a dress")
	require.Error(t, err)
	assert.Nil(t, turn)

	var perr *criteria.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, `{"type": "dress",`, perr.Raw)
	assert.True(t, s.Aborted())
	assert.Nil(t, s.Result())
}

func TestEngine_Step_MalformedResponseIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		reply *schema.Message
	}{
		{name: "nil", reply: nil},
		{name: "blank content", reply: schema.AssistantMessage("  ", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakemodel.Model{Replies: []*schema.Message{tt.reply}}
			engine := newTestEngine(t, fake)
			s := engine.NewSession()

			_, err := engine.Step(context.Background(), s, "a dress")
			var malformed *dialogue.MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.NotEmpty(t, malformed.Raw)
			assert.True(t, s.Terminated())
		})
	}
}

func TestEngine_Step_TransportErrorIsFatal(t *testing.T) {
	boom := errors.New("503 service unavailable")
	fake := &fakemodel.Model{Err: boom}
	engine := newTestEngine(t, fake)
	s := engine.NewSession()

	_, err := engine.Step(context.Background(), s, "a dress")
	require.ErrorIs(t, err, boom)
	assert.True(t, s.Terminated())
	assert.Equal(t, 1, fake.CallCount())

	_, err = engine.Step(context.Background(), s, "hello?")
	assert.ErrorIs(t, err, ErrSessionTerminated)
	assert.Equal(t, 1, fake.CallCount())
}

func TestEngine_Step_AfterTermination(t *testing.T) {
	engine := newTestEngine(t, fakemodel.Texts())
	s := engine.NewSession()

	_, err := engine.Step(context.Background(), s, "exit")
	require.NoError(t, err)
	_, err = engine.Step(context.Background(), s, "exit")
	assert.ErrorIs(t, err, ErrSessionTerminated)

	_, err = engine.Step(context.Background(), nil, "hi")
	assert.Error(t, err)
}

func TestEngine_RecordRecovery(t *testing.T) {
	recovery := &fakemodel.Model{Replies: []*schema.Message{
		schema.AssistantMessage("", []schema.ToolCall{{
			ID: "call_1",
			Function: schema.FunctionCall{
				Name:      submitCriteriaToolName,
				Arguments: `{"type":"coat","style":"basic","season":"winter","budget":[50,150],"materials":["wool"],"colors":["grey"],"second-hand acceptable":true}`,
			},
		}}),
	}}
	engine := newTestEngine(t, fakemodel.Texts(`{type: coat}`), WithRecordRecovery(recovery))
	s := engine.NewSession()

	turn, err := engine.Step(context.Background(), s, "a grey wool coat")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, turn.Outcome)
	assert.Equal(t, "coat", turn.Criteria.Type)
	assert.Equal(t, []string{"wool"}, turn.Criteria.Material)
	assert.Equal(t, []string{}, turn.Criteria.Brands)
	assert.Equal(t, 2, s.ServiceCalls())

	require.Len(t, recovery.Calls, 1)
	assert.Equal(t, schema.System, recovery.Calls[0][0].Role)
}

func TestEngine_RecordRecoveryFailureKeepsParseError(t *testing.T) {
	recovery := fakemodel.Texts("sorry, no tool")
	engine := newTestEngine(t, fakemodel.Texts(`{type: coat}`), WithRecordRecovery(recovery))
	s := engine.NewSession()

	_, err := engine.Step(context.Background(), s, "a coat")
	var perr *criteria.ParseError
	require.ErrorAs(t, err, &perr)
	assert.True(t, s.Aborted())
}

func TestNewEngine(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)

	engine, err := NewEngine(fakemodel.Texts(), WithOpeningQuestion("Hi! What are you shopping for?"))
	require.NoError(t, err)
	assert.Contains(t, engine.Instruction(), "shopping advisor")
	assert.Equal(t, "Hi! What are you shopping for?", engine.NewSession().LatestQuestion())
}

type keywordParser map[string]command.Command

func (p keywordParser) ParseCommand(ctx context.Context, input string) (command.Command, error) {
	if input == "!" {
		return "", errors.New("unparseable")
	}
	if cmd, ok := p[input]; ok {
		return cmd, nil
	}
	return command.Answer, nil
}

type staticReplies struct {
	requests []*dialogue.Request
	reply    string
}

func (s *staticReplies) GenerateReply(ctx context.Context, req *dialogue.Request) (*schema.Message, error) {
	s.requests = append(s.requests, req)
	return schema.AssistantMessage(s.reply, nil), nil
}

func TestEngine_CustomCommandParserAndGenerator(t *testing.T) {
	replies := &staticReplies{reply: "Tell me more."}
	engine, err := NewEngine(nil,
		WithInstruction("x"),
		WithReplyGenerator(replies),
		WithCommandParser(keywordParser{"bye": command.Exit}),
	)
	require.NoError(t, err)
	s := engine.NewSession()

	turn, err := engine.Step(context.Background(), s, "quit")
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuestion, turn.Outcome)
	require.Len(t, replies.requests, 1)
	assert.Equal(t, "x", replies.requests[0].Instruction)

	_, err = engine.Step(context.Background(), s, "!")
	assert.Error(t, err)
	assert.False(t, s.Terminated())

	turn, err = engine.Step(context.Background(), s, "bye")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAborted, turn.Outcome)
}
