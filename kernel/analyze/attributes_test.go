package analyze

import (
	"testing"

	"github.com/blevesearch/bleve/analysis"
)

type markerAttribute struct {
	Flag bool
	Data []byte
}

type stubSource []interface{}

func (s stubSource) TokenAttributes(*analysis.Token) []interface{} {
	return s
}

func TestExtractKeywordAlwaysPresent(t *testing.T) {
	ext := newAttributeExtractor(nil, true)
	attrs := ext.extract(&analysis.Token{Term: []byte("x")}, nil)
	state, ok := attrs["KeywordAttribute"]
	if !ok {
		t.Fatalf("keyword attribute missing: %v", attrs)
	}
	if state["keyword"] != false {
		t.Fatalf("expected keyword false, got %v", state["keyword"])
	}

	attrs = ext.extract(&analysis.Token{Term: []byte("x"), KeyWord: true}, nil)
	if attrs["KeywordAttribute"]["keyword"] != true {
		t.Fatal("expected keyword true")
	}
}

func TestExtractFullClassNames(t *testing.T) {
	ext := newAttributeExtractor(nil, false)
	attrs := ext.extract(&analysis.Token{}, nil)
	want := "github.com/relip/elasticsearch-extended-analyze/kernel/analyze.KeywordAttribute"
	if _, ok := attrs[want]; !ok {
		t.Fatalf("expected class %s, got %v", want, attrs)
	}
}

func TestExtractStructWalkFallback(t *testing.T) {
	ext := newAttributeExtractor(nil, true)
	src := stubSource{&markerAttribute{Flag: true, Data: []byte("xyz")}}
	attrs := ext.extract(&analysis.Token{}, []TokenAttributeSource{src})

	state, ok := attrs["markerAttribute"]
	if !ok {
		t.Fatalf("marker attribute missing: %v", attrs)
	}
	if state["flag"] != true {
		t.Fatalf("expected flag true, got %v", state["flag"])
	}
	// []byte values render as strings
	if state["data"] != "xyz" {
		t.Fatalf("expected data xyz, got %v", state["data"])
	}
}

func TestExtractIncludeFilter(t *testing.T) {
	ext := newAttributeExtractor([]string{"markerattribute"}, true)
	src := stubSource{markerAttribute{Flag: true}}
	attrs := ext.extract(&analysis.Token{}, []TokenAttributeSource{src})

	if _, ok := attrs["KeywordAttribute"]; ok {
		t.Fatal("keyword attribute should be filtered out")
	}
	if _, ok := attrs["markerAttribute"]; !ok {
		t.Fatalf("marker attribute should pass the include set: %v", attrs)
	}
}
