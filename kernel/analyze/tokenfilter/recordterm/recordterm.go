// Package recordterm wraps another token filter and records each surviving
// token's pre-filter term, exposing it through the token attribute
// side-channel. Define it with a config naming the delegate:
//
//	{"type": "record_term", "filter": "stemmer_porter"}
package recordterm

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/registry"
)

const Name = "record_term"

// RecordedTermAttribute carries the term a token had before the delegate
// filter ran.
type RecordedTermAttribute struct {
	Term string
}

func (a RecordedTermAttribute) ReflectWith(f func(key string, value interface{})) {
	f("term", a.Term)
}

type Filter struct {
	delegate analysis.TokenFilter

	mu       sync.Mutex
	recorded map[*analysis.Token]string
}

func New(delegate analysis.TokenFilter) *Filter {
	return &Filter{
		delegate: delegate,
		recorded: make(map[*analysis.Token]string),
	}
}

func (f *Filter) Filter(input analysis.TokenStream) analysis.TokenStream {
	before := make(map[*analysis.Token]string, len(input))
	for _, tok := range input {
		before[tok] = string(tok.Term)
	}

	output := f.delegate.Filter(input)

	f.mu.Lock()
	// leftovers from a previous run belong to tokens a downstream filter
	// dropped; they can never be read, so the map is replaced wholesale
	f.recorded = make(map[*analysis.Token]string, len(output))
	for _, tok := range output {
		if term, ok := before[tok]; ok {
			f.recorded[tok] = term
		}
	}
	f.mu.Unlock()
	return output
}

// TokenAttributes reports the recorded term for a token and releases it.
func (f *Filter) TokenAttributes(t *analysis.Token) []interface{} {
	f.mu.Lock()
	term, ok := f.recorded[t]
	if ok {
		delete(f.recorded, t)
	}
	f.mu.Unlock()
	if !ok {
		return nil
	}
	return []interface{}{RecordedTermAttribute{Term: term}}
}

func Constructor(config map[string]interface{}, cache *registry.Cache) (analysis.TokenFilter, error) {
	delegateName, ok := config["filter"].(string)
	if !ok || delegateName == "" {
		return nil, fmt.Errorf("must specify the delegate filter name")
	}
	delegate, err := cache.TokenFilterNamed(delegateName)
	if err != nil {
		return nil, err
	}
	return New(delegate), nil
}

func init() {
	registry.RegisterTokenFilter(Name, Constructor)
}
