package dialogue

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
)

// MalformedResponseError is returned when the service answered without a
// usable reply. Raw holds the response as received, for the operator.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("unexpected response from text-generation service: %s", e.Raw)
}

func NewMalformedResponseError(resp *schema.Message) *MalformedResponseError {
	if resp == nil {
		return &MalformedResponseError{Raw: "<nil>"}
	}
	raw, err := sonic.MarshalString(resp)
	if err != nil {
		raw = fmt.Sprintf("%+v", *resp)
	}
	return &MalformedResponseError{Raw: raw}
}
