package dialogue

import (
	"fmt"
	"strings"

	"github.com/tbxark/styleadvisor/criteria"
)

// DefaultOpeningQuestion seeds every transcript.
const DefaultOpeningQuestion = "Hello! I am your shopping advisor. What type of clothing are you looking for?"

// DefaultInstructionTemplate is the persona sent ahead of the transcript. The
// template may contain a single "%s" placeholder for the record schema.
const DefaultInstructionTemplate = `You are a smart shopping advisor and style consultant. Start by introducing yourself and asking questions to understand the user's clothing preferences. For each answer, you can give style advice or suggestions if relevant.
Ask about the following criteria, one by one if needed: type (e.g., dress, pants), style (e.g., chic, streetwear, basic), season (e.g., summer), budget (format [min, max]), preferred materials, preferred colors, brands, second-hand acceptable (true if yes).
If the user's answer is not directly related to a criterion, give advice or ask clarifying questions.
When you have collected all the answers, STOP asking questions and output ONLY a JSON object with these keys and the user's answers. Do not explain or comment, just output the JSON object at the end.
The JSON object follows this schema:
%s
`

type instructionOptions struct {
	template string
	lang     string
}

type InstructionOption func(*instructionOptions)

// WithInstructionTemplate overrides DefaultInstructionTemplate.
func WithInstructionTemplate(template string) InstructionOption {
	return func(o *instructionOptions) {
		o.template = template
	}
}

// WithInstructionLang asks the advisor to converse in lang.
func WithInstructionLang(lang string) InstructionOption {
	return func(o *instructionOptions) {
		o.lang = lang
	}
}

// BuildInstruction renders the system instruction once for an engine.
func BuildInstruction(opts ...InstructionOption) (string, error) {
	options := instructionOptions{template: DefaultInstructionTemplate}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.template == "" {
		options.template = DefaultInstructionTemplate
	}
	instruction := options.template
	if strings.Contains(instruction, "%s") {
		schema, err := criteria.RawSchema()
		if err != nil {
			return "", fmt.Errorf("build record schema: %w", err)
		}
		instruction = fmt.Sprintf(instruction, schema)
	}
	if options.lang != "" {
		instruction = strings.TrimRight(instruction, "\n") + fmt.Sprintf("\nConverse in %s, but keep the JSON keys in English.\n", options.lang)
	}
	return instruction, nil
}
