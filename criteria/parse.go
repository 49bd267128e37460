package criteria

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// ParseError reports a terminal reply that is not a valid key/value record.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse criteria record: %v (raw: %q)", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes a terminal reply into an untyped record.
func Parse(text string) (map[string]any, error) {
	raw := map[string]any{}
	if err := sonic.UnmarshalString(strings.TrimSpace(text), &raw); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	return raw, nil
}

// ParseAndNormalize is Parse followed by Normalize.
func ParseAndNormalize(text string) (*Criteria, error) {
	raw, err := Parse(text)
	if err != nil {
		return nil, err
	}
	c := Normalize(raw)
	return &c, nil
}

// FromRawRecord converts a typed record (e.g. from a forced tool call) into the
// untyped form so it goes through the same normalization.
func FromRawRecord(rec *RawRecord) (map[string]any, error) {
	data, err := sonic.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal raw record: %w", err)
	}
	raw := map[string]any{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal raw record: %w", err)
	}
	return raw, nil
}
