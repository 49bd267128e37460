// Package fakemodel provides a scripted chat model for tests.
package fakemodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Model replays Replies in order, one per Generate call, and records every
// request it receives.
type Model struct {
	mu      sync.Mutex
	Replies []*schema.Message
	Err     error
	Calls   [][]*schema.Message
	Options []*model.Options
	Tools   []*schema.ToolInfo
}

// Texts scripts plain assistant replies.
func Texts(replies ...string) *Model {
	m := &Model{}
	for _, r := range replies {
		m.Replies = append(m.Replies, schema.AssistantMessage(r, nil))
	}
	return m
}

func (m *Model) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]*schema.Message{}, input...))
	m.Options = append(m.Options, model.GetCommonOptions(&model.Options{}, opts...))
	if m.Err != nil {
		return nil, m.Err
	}
	n := len(m.Calls)
	if n > len(m.Replies) {
		return nil, fmt.Errorf("fakemodel: no reply scripted for call %d", n)
	}
	return m.Replies[n-1], nil
}

func (m *Model) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *Model) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	m.mu.Lock()
	m.Tools = tools
	m.mu.Unlock()
	return m, nil
}

// CallCount reports how many Generate calls were made.
func (m *Model) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ model.ToolCallingChatModel = (*Model)(nil)
