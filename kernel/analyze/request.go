package analyze

// Request describes one analyze call. Either an analyzer (by name or via
// field), or a tokenizer with optional filter chains, may be given; with
// neither the service falls back to its default analyzer.
type Request struct {
	Text []string `json:"text"`

	Analyzer string `json:"analyzer,omitempty"`
	Field    string `json:"field,omitempty"`

	CharFilters  []string `json:"char_filters,omitempty"`
	Tokenizer    string   `json:"tokenizer,omitempty"`
	TokenFilters []string `json:"token_filters,omitempty"`

	// Attributes narrows reflected attribute classes to the listed short
	// names (case insensitive). Empty means all.
	Attributes          []string `json:"attributes,omitempty"`
	ShortAttributeNames bool     `json:"short_attribute_names,omitempty"`
}

func (r *Request) Validate() error {
	if len(r.Text) == 0 {
		return ErrTextRequired
	}
	if r.Tokenizer == "" && r.Analyzer == "" && r.Field == "" &&
		(len(r.CharFilters) > 0 || len(r.TokenFilters) > 0) {
		return ErrTokenizerRequired
	}
	return nil
}
