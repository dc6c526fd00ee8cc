package protocol

// Numeric is the result of an aggregate. Exactly one of LongValue, DoubleValue
// and NaN is set.
type Numeric struct {
	LongValue   *int64   `json:"long_value,omitempty"`
	DoubleValue *float64 `json:"double_value,omitempty"`
	NaN         bool     `json:"nan,omitempty"`
}

// NumericGroup is an aggregate computed over one group of answers.
type NumericGroup struct {
	Owner  *Concept `json:"owner"`
	Number *Numeric `json:"number"`
}

// ConceptMap binds query variables to concepts.
type ConceptMap struct {
	Map map[string]*Concept `json:"map"`
}

// ConceptMapGroup is a group of answers sharing an owner concept.
type ConceptMapGroup struct {
	Owner       *Concept      `json:"owner"`
	ConceptMaps []*ConceptMap `json:"concept_maps"`
}
