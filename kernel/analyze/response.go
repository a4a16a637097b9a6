package analyze

import (
	"github.com/blevesearch/bleve/analysis"
)

// Token is one emitted token with its request-wide position and offsets.
type Token struct {
	Term     string `json:"token"`
	Position int    `json:"position"`
	Start    int    `json:"start_offset"`
	End      int    `json:"end_offset"`
	Type     string `json:"type"`

	// Attributes holds the reflected non-standard attribute state,
	// grouped by attribute class name.
	Attributes map[string]map[string]interface{} `json:"attributes,omitempty"`
}

// TokenList is the output of one pipeline stage, keyed by component name.
type TokenList struct {
	Name   string   `json:"name"`
	Tokens []*Token `json:"tokens"`
}

// CharFilteredText is the rewritten text after one char filter, one entry
// per input text.
type CharFilteredText struct {
	Name  string   `json:"name"`
	Texts []string `json:"filtered_texts"`
}

// Response is the analyze result. For custom pipelines the per-stage fields
// are set; for named analyzers only Analyzer is.
type Response struct {
	CustomAnalyzer bool                `json:"custom_analyzer"`
	Analyzer       *TokenList          `json:"analyzer,omitempty"`
	CharFilters    []*CharFilteredText `json:"charfilters,omitempty"`
	Tokenizer      *TokenList          `json:"tokenizer,omitempty"`
	TokenFilters   []*TokenList        `json:"tokenfilters,omitempty"`
}

// TokenTypeName renders a bleve token type for the wire.
func TokenTypeName(t analysis.TokenType) string {
	switch t {
	case analysis.AlphaNumeric:
		return "alphanumeric"
	case analysis.Ideographic:
		return "ideographic"
	case analysis.Numeric:
		return "numeric"
	case analysis.DateTime:
		return "datetime"
	case analysis.Shingle:
		return "shingle"
	case analysis.Single:
		return "single"
	case analysis.Double:
		return "double"
	case analysis.Boolean:
		return "boolean"
	}
	return "unknown"
}
