package analyze

import (
	"github.com/blevesearch/bleve/analysis"
)

// Replay runs the chain once per stage and per text: each char filter's
// rewritten text in chain order, the raw tokenizer output, and the token
// list after each token filter prefix. The tokenizer is re-run from scratch
// for every prefix because token filters may mutate tokens in place; no
// stage may observe another stage's stream.
func (p *pipeline) Replay(texts []string, ext *attributeExtractor) *Response {
	charTexts := make([][]string, len(p.charFilters))
	tokenizerStage := newTokenTracker(p.posIncrGap, p.offsetGap)
	filterStages := make([]*tokenTracker, len(p.tokenFilters))
	for i := range filterStages {
		filterStages[i] = newTokenTracker(p.posIncrGap, p.offsetGap)
	}

	for _, text := range texts {
		filtered := []byte(text)
		for i, cf := range p.charFilters {
			filtered = cf.filter.Filter(filtered)
			charTexts[i] = append(charTexts[i], string(filtered))
		}

		stream, sources := p.runPrefix(filtered, 0)
		tokenizerStage.Append(stream, len(text), ext, sources)

		for i := range p.tokenFilters {
			stream, sources = p.runPrefix(filtered, i+1)
			filterStages[i].Append(stream, len(text), ext, sources)
		}
	}

	resp := &Response{CustomAnalyzer: true}
	for i, cf := range p.charFilters {
		resp.CharFilters = append(resp.CharFilters, &CharFilteredText{
			Name:  cf.name,
			Texts: charTexts[i],
		})
	}
	resp.Tokenizer = &TokenList{Name: p.tokenizer.name, Tokens: tokenizerStage.Tokens()}
	for i, tf := range p.tokenFilters {
		resp.TokenFilters = append(resp.TokenFilters, &TokenList{
			Name:   tf.name,
			Tokens: filterStages[i].Tokens(),
		})
	}
	return resp
}

// runPrefix tokenizes the char-filtered text and applies the first n token
// filters, collecting every component along the way that can report extra
// token attributes. The input bytes are copied because tokenizers may alias
// them into token terms.
func (p *pipeline) runPrefix(filtered []byte, n int) (analysis.TokenStream, []TokenAttributeSource) {
	stream := p.tokenizer.tokenizer.Tokenize(cloneBytes(filtered))
	var sources []TokenAttributeSource
	if src, ok := p.tokenizer.tokenizer.(TokenAttributeSource); ok {
		sources = append(sources, src)
	}
	for i := 0; i < n; i++ {
		stream = p.tokenFilters[i].filter.Filter(stream)
		if src, ok := p.tokenFilters[i].filter.(TokenAttributeSource); ok {
			sources = append(sources, src)
		}
	}
	return stream, sources
}

func cloneBytes(b []byte) []byte {
	rv := make([]byte, len(b))
	copy(rv, b)
	return rv
}
