package styleadvisor

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/styleadvisor/criteria"
	"github.com/tbxark/styleadvisor/structured"
)

const (
	submitCriteriaToolName        = "submit_criteria"
	submitCriteriaToolDescription = "Submit the clothing criteria the user gave during the conversation."
)

const recoverySystemPrompt = `The conversation below is between a shopping advisor and a user. The advisor tried to output the collected criteria as JSON but the output was invalid.
Call the '%s' tool with the criteria exactly as the user stated them. Leave a field empty when the user never answered it.`

type recordRecoverer struct {
	chain *structured.Chain[[]*schema.Message, criteria.RawRecord]
}

func newRecordRecoverer(chatModel model.ToolCallingChatModel) (*recordRecoverer, error) {
	chain, err := structured.NewChain[[]*schema.Message, criteria.RawRecord](
		chatModel,
		buildRecoveryPrompt,
		submitCriteriaToolName,
		submitCriteriaToolDescription,
	)
	if err != nil {
		return nil, err
	}
	return &recordRecoverer{chain: chain}, nil
}

func (r *recordRecoverer) recoverRecord(ctx context.Context, transcript []*schema.Message) (*criteria.Criteria, error) {
	record, err := r.chain.Invoke(ctx, transcript)
	if err != nil {
		return nil, err
	}
	raw, err := criteria.FromRawRecord(record)
	if err != nil {
		return nil, err
	}
	c := criteria.Normalize(raw)
	return &c, nil
}

func buildRecoveryPrompt(ctx context.Context, transcript []*schema.Message) ([]*schema.Message, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}
	messages := make([]*schema.Message, 0, len(transcript)+1)
	messages = append(messages, schema.SystemMessage(fmt.Sprintf(recoverySystemPrompt, submitCriteriaToolName)))
	return append(messages, transcript...), nil
}
