package analyze

import (
	"errors"

	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/registry"
)

const (
	// DefaultPositionIncrementGap is applied between texts for stored
	// custom analyzers unless the definition overrides it.
	DefaultPositionIncrementGap = 100

	// DefaultOffsetGap is the extra character gap between texts.
	DefaultOffsetGap = 1
)

// Definition is a stored custom analyzer: a named component chain plus the
// gaps applied between the texts of a multi-text request.
type Definition struct {
	Name         string   `json:"name"`
	CharFilters  []string `json:"char_filters,omitempty"`
	Tokenizer    string   `json:"tokenizer"`
	TokenFilters []string `json:"token_filters,omitempty"`

	PositionIncrementGap *int `json:"position_increment_gap,omitempty"`
	OffsetGap            *int `json:"offset_gap,omitempty"`
}

func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("analyzer definition requires a name")
	}
	if d.Tokenizer == "" {
		return errors.New("analyzer definition requires a tokenizer")
	}
	return nil
}

func (d *Definition) positionIncrementGap() int {
	if d.PositionIncrementGap != nil {
		return *d.PositionIncrementGap
	}
	return DefaultPositionIncrementGap
}

func (d *Definition) offsetGap() int {
	if d.OffsetGap != nil {
		return *d.OffsetGap
	}
	return DefaultOffsetGap
}

type namedCharFilter struct {
	name   string
	filter analysis.CharFilter
}

type namedTokenizer struct {
	name      string
	tokenizer analysis.Tokenizer
}

type namedTokenFilter struct {
	name   string
	filter analysis.TokenFilter
}

// pipeline is a resolved custom chain whose components keep their registry
// names, so stage output can be keyed by component.
type pipeline struct {
	charFilters  []namedCharFilter
	tokenizer    namedTokenizer
	tokenFilters []namedTokenFilter

	posIncrGap int
	offsetGap  int
}

func (d *Definition) build(cache *registry.Cache) (*pipeline, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	p, err := newPipeline(cache, d.CharFilters, d.Tokenizer, d.TokenFilters)
	if err != nil {
		return nil, err
	}
	p.posIncrGap = d.positionIncrementGap()
	p.offsetGap = d.offsetGap()
	return p, nil
}

// newPipeline resolves a chain from the registry cache. Gaps default to the
// bare analyzer behavior (no position gap, one character offset gap), which
// is what a chain assembled from request parameters gets.
func newPipeline(cache *registry.Cache, charFilters []string, tokenizer string, tokenFilters []string) (*pipeline, error) {
	p := &pipeline{
		posIncrGap: 0,
		offsetGap:  DefaultOffsetGap,
	}

	for _, name := range charFilters {
		filter, err := cache.CharFilterNamed(name)
		if err != nil {
			return nil, &NotFoundError{Kind: "char filter", Name: name}
		}
		p.charFilters = append(p.charFilters, namedCharFilter{name: name, filter: filter})
	}

	t, err := cache.TokenizerNamed(tokenizer)
	if err != nil {
		return nil, &NotFoundError{Kind: "tokenizer", Name: tokenizer}
	}
	p.tokenizer = namedTokenizer{name: tokenizer, tokenizer: t}

	for _, name := range tokenFilters {
		filter, err := cache.TokenFilterNamed(name)
		if err != nil {
			return nil, &NotFoundError{Kind: "token filter", Name: name}
		}
		p.tokenFilters = append(p.tokenFilters, namedTokenFilter{name: name, filter: filter})
	}

	return p, nil
}
