package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/relip/elasticsearch-extended-analyze/kernel/analyze"
	"github.com/relip/elasticsearch-extended-analyze/kernel/store/kvstore"
	"github.com/relip/elasticsearch-extended-analyze/util/json"
)

func newTestApi(t *testing.T) *ApiServer {
	cfg := LoadConfig("")
	cfg.StoreCfg.Backend = ""
	service, err := analyze.NewService(analyze.Config{
		DefaultAnalyzer: cfg.ModuleCfg.DefaultAnalyzer,
	}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return NewApiServer(cfg, service)
}

func do(api *ApiServer, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	api.httpServer.Router().ServeHTTP(w, r)
	return w
}

func TestHandleAnalyzeQueryParams(t *testing.T) {
	api := newTestApi(t)
	w := do(api, http.MethodGet, "/_analyze?text=Foo%20Bar&analyzer=simple", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	resp := &analyze.Response{}
	if err := json.Unmarshal(w.Body.Bytes(), resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Analyzer == nil || resp.Analyzer.Name != "simple" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
	if len(resp.Analyzer.Tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(resp.Analyzer.Tokens))
	}
}

func TestHandleAnalyzeBody(t *testing.T) {
	api := newTestApi(t)
	w := do(api, http.MethodPost, "/_analyze",
		`{"text":["QUICK Fox"],"tokenizer":"unicode","token_filters":["to_lower"],"short_attribute_names":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	resp := &analyze.Response{}
	if err := json.Unmarshal(w.Body.Bytes(), resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.CustomAnalyzer {
		t.Fatalf("expected custom analyzer response: %s", w.Body.String())
	}
	if resp.Tokenizer.Tokens[0].Term != "QUICK" {
		t.Fatalf("tokenizer term: %q", resp.Tokenizer.Tokens[0].Term)
	}
	tok := resp.TokenFilters[0].Tokens[0]
	if tok.Term != "quick" {
		t.Fatalf("filtered term: %q", tok.Term)
	}
	if _, ok := tok.Attributes["KeywordAttribute"]; !ok {
		t.Fatalf("keyword attribute missing: %s", w.Body.String())
	}
}

func TestHandleAnalyzeErrors(t *testing.T) {
	api := newTestApi(t)

	w := do(api, http.MethodGet, "/_analyze?text=x&analyzer=nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "failed to find analyzer") {
		t.Fatalf("error body: %s", w.Body.String())
	}

	w = do(api, http.MethodGet, "/_analyze?analyzer=simple", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzerCrud(t *testing.T) {
	api := newTestApi(t)

	w := do(api, http.MethodPut, "/_analyzers/my_custom",
		`{"tokenizer":"unicode","token_filters":["to_lower"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("define status %d: %s", w.Code, w.Body.String())
	}

	w = do(api, http.MethodGet, "/_analyzers/my_custom", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status %d: %s", w.Code, w.Body.String())
	}
	def := &analyze.Definition{}
	if err := json.Unmarshal(w.Body.Bytes(), def); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.Name != "my_custom" || def.Tokenizer != "unicode" {
		t.Fatalf("unexpected definition: %+v", def)
	}

	w = do(api, http.MethodGet, "/_analyzers", "")
	var defs []*analyze.Definition
	if err := json.Unmarshal(w.Body.Bytes(), &defs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}

	w = do(api, http.MethodGet, "/_analyze?text=Foo&analyzer=my_custom", "")
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"custom_analyzer":true`) {
		t.Fatalf("expected detailed response: %s", w.Body.String())
	}

	w = do(api, http.MethodDelete, "/_analyzers/my_custom", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status %d: %s", w.Code, w.Body.String())
	}
	w = do(api, http.MethodDelete, "/_analyzers/my_custom", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status %d: %s", w.Code, w.Body.String())
	}
}

func TestDefineAnalyzerNameMismatch(t *testing.T) {
	api := newTestApi(t)
	w := do(api, http.MethodPut, "/_analyzers/one", `{"name":"two","tokenizer":"unicode"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
}

// failingStore reads as empty but refuses every write.
type failingStore struct{}

func (failingStore) Put(key, value []byte) error      { return errors.New("disk full") }
func (failingStore) Get(key []byte) ([]byte, error)   { return nil, nil }
func (failingStore) Delete(key []byte) error          { return errors.New("disk full") }
func (failingStore) Close() error                     { return nil }
func (failingStore) PrefixIterator([]byte) kvstore.KVIterator {
	return emptyIterator{}
}

type emptyIterator struct{}

func (emptyIterator) Next()         {}
func (emptyIterator) Key() []byte   { return nil }
func (emptyIterator) Value() []byte { return nil }
func (emptyIterator) Valid() bool   { return false }
func (emptyIterator) Close() error  { return nil }

func TestStoreFailureIsInternalError(t *testing.T) {
	cfg := LoadConfig("")
	service, err := analyze.NewService(analyze.Config{}, failingStore{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	api := NewApiServer(cfg, service)

	w := do(api, http.MethodPut, "/_analyzers/doomed", `{"tokenizer":"unicode"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("define over broken store: status %d: %s", w.Code, w.Body.String())
	}

	w = do(api, http.MethodPut, "/_mapping", `{"default_analyzer":"standard"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("put mapping over broken store: status %d: %s", w.Code, w.Body.String())
	}

	// a bad request over the same store is still the caller's fault
	w = do(api, http.MethodPut, "/_analyzers/bad", `{"tokenizer":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid definition: status %d: %s", w.Code, w.Body.String())
	}
}

func TestMappingRoundTrip(t *testing.T) {
	api := newTestApi(t)

	w := do(api, http.MethodGet, "/_mapping", "")
	if w.Code != http.StatusOK || w.Body.String() != "{}" {
		t.Fatalf("empty mapping: %d %s", w.Code, w.Body.String())
	}

	mapping := `{"default_mapping":{"enabled":true,"properties":{"title":{"enabled":true,"fields":[{"name":"title","type":"text","analyzer":"keyword"}]}}},"default_analyzer":"standard"}`
	w = do(api, http.MethodPut, "/_mapping", mapping)
	if w.Code != http.StatusOK {
		t.Fatalf("put mapping status %d: %s", w.Code, w.Body.String())
	}

	w = do(api, http.MethodGet, "/_mapping", "")
	if w.Body.String() != mapping {
		t.Fatalf("mapping not returned as stored: %s", w.Body.String())
	}

	w = do(api, http.MethodGet, "/_analyze?text=Foo%20Bar&field=title", "")
	if w.Code != http.StatusOK {
		t.Fatalf("analyze by field status %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"name":"keyword"`) {
		t.Fatalf("expected keyword analyzer: %s", w.Body.String())
	}
}
