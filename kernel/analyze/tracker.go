package analyze

import (
	"github.com/blevesearch/bleve/analysis"
)

// tokenTracker accumulates one stage's tokens across the texts of a request.
// Stream-local positions and byte offsets are rebased onto running bases so
// the stage reads as one continuous stream, with the analyzer's gaps applied
// between texts.
type tokenTracker struct {
	posIncrGap int
	offsetGap  int

	basePosition int
	baseOffset   int
	tokens       []*Token
}

func newTokenTracker(posIncrGap, offsetGap int) *tokenTracker {
	return &tokenTracker{
		posIncrGap: posIncrGap,
		offsetGap:  offsetGap,
	}
}

// Append folds one text's stream into the stage. textLen is the byte length
// of the original, pre-char-filtering text: offsets downstream of a char
// filter still count against the source text the caller sent.
func (t *tokenTracker) Append(stream analysis.TokenStream, textLen int, ext *attributeExtractor, sources []TokenAttributeSource) {
	lastPosition := 0
	for _, tok := range stream {
		if tok.Position > lastPosition {
			lastPosition = tok.Position
		}
		t.tokens = append(t.tokens, &Token{
			Term:       string(tok.Term),
			Position:   t.basePosition + tok.Position,
			Start:      t.baseOffset + tok.Start,
			End:        t.baseOffset + tok.End,
			Type:       TokenTypeName(tok.Type),
			Attributes: ext.extract(tok, sources),
		})
	}
	// a text with no tokens still advances the offset base by its length
	t.basePosition += lastPosition + t.posIncrGap
	t.baseOffset += textLen + t.offsetGap
}

func (t *tokenTracker) Tokens() []*Token {
	return t.tokens
}
