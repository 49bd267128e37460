package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCommandParser_ParseCommand(t *testing.T) {
	parser := NewLocalCommandParser()
	tests := []struct {
		input string
		want  Command
	}{
		{input: "exit", want: Exit},
		{input: "QUIT", want: Exit},
		{input: "  Stop \n", want: Exit},
		{input: "\tquit\t", want: Exit},
		{input: "", want: Empty},
		{input: "   ", want: Empty},
		{input: "\n\t", want: Empty},
		{input: "blue", want: Answer},
		{input: "stop showing me dresses", want: Answer},
		{input: "exit?", want: Answer},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parser.ParseCommand(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalCommandParser_CustomKeywords(t *testing.T) {
	parser := &LocalCommandParser{ExitKeywords: []string{"Bye"}}

	got, err := parser.ParseCommand(context.Background(), "bye")
	require.NoError(t, err)
	assert.Equal(t, Exit, got)

	got, err = parser.ParseCommand(context.Background(), "quit")
	require.NoError(t, err)
	assert.Equal(t, Answer, got)
}
