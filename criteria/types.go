package criteria

// Raw record keys the advisor instruction asks the model to emit.
const (
	KeyType       = "type"
	KeyStyle      = "style"
	KeySeason     = "season"
	KeyBudget     = "budget"
	KeyMaterials  = "materials"
	KeyColors     = "colors"
	KeyBrands     = "brands"
	KeySecondHand = "second-hand acceptable"
)

// Criteria is the normalized preference record handed to product search.
// Every field is always populated; slices are never nil.
type Criteria struct {
	Type     string    `json:"type" yaml:"type"`
	Style    string    `json:"style" yaml:"style"`
	Season   string    `json:"season" yaml:"season"`
	Budget   []float64 `json:"budget" yaml:"budget"`
	Material []string  `json:"material" yaml:"material"`
	Colors   []string  `json:"colors" yaml:"colors"`
	Brands   []string  `json:"brands" yaml:"brands"`
	Occasion bool      `json:"occasion" yaml:"occasion"`
}

// RawRecord describes the terminal record the model is asked to produce.
// It is only used to describe that shape (schema, forced tool call); parsing a
// reply always goes through an untyped map and Normalize.
type RawRecord struct {
	Type       string    `json:"type" jsonschema:"description=Kind of garment e.g. dress or pants"`
	Style      string    `json:"style" jsonschema:"description=Style e.g. chic or streetwear or basic"`
	Season     string    `json:"season" jsonschema:"description=Season the garment is meant for"`
	Budget     []float64 `json:"budget" jsonschema:"description=Budget range as two numbers: min then max,minItems=2,maxItems=2"`
	Materials  []string  `json:"materials" jsonschema:"description=Preferred materials"`
	Colors     []string  `json:"colors" jsonschema:"description=Preferred colors"`
	Brands     []string  `json:"brands,omitempty" jsonschema:"description=Preferred brands"`
	SecondHand *bool     `json:"second-hand acceptable,omitempty" jsonschema:"description=true if second-hand items are acceptable"`
}
