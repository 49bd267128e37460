package criteria

import (
	"fmt"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

type overlay struct {
	Type     string    `json:"type,omitempty"`
	Style    string    `json:"style,omitempty"`
	Season   string    `json:"season,omitempty"`
	Budget   []float64 `json:"budget,omitempty"`
	Material []string  `json:"material,omitempty"`
	Colors   []string  `json:"colors,omitempty"`
	Brands   []string  `json:"brands,omitempty"`
}

func toOverlay(c Criteria) overlay {
	return overlay{
		Type:     c.Type,
		Style:    c.Style,
		Season:   c.Season,
		Budget:   c.Budget,
		Material: c.Material,
		Colors:   c.Colors,
		Brands:   c.Brands,
	}
}

// ApplyDefaults fills the empty fields of c from defaults. Fields the user
// answered win; Occasion always comes from c.
func ApplyDefaults(c Criteria, defaults Criteria) (Criteria, error) {
	base, err := sonic.Marshal(toOverlay(defaults))
	if err != nil {
		return c, fmt.Errorf("marshal defaults: %w", err)
	}
	patch, err := sonic.Marshal(toOverlay(c))
	if err != nil {
		return c, fmt.Errorf("marshal criteria: %w", err)
	}
	merged, err := jsonpatch.MergePatch(base, patch)
	if err != nil {
		return c, fmt.Errorf("merge defaults: %w", err)
	}
	var out overlay
	if err := sonic.Unmarshal(merged, &out); err != nil {
		return c, fmt.Errorf("unmarshal merged criteria: %w", err)
	}
	return Criteria{
		Type:     out.Type,
		Style:    out.Style,
		Season:   out.Season,
		Budget:   nonNil(out.Budget),
		Material: nonNil(out.Material),
		Colors:   nonNil(out.Colors),
		Brands:   nonNil(out.Brands),
		Occasion: c.Occasion,
	}, nil
}

func nonNil[S any](s []S) []S {
	if s == nil {
		return []S{}
	}
	return s
}
