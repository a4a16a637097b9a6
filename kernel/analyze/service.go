package analyze

import (
	"fmt"
	"sort"
	"sync"

	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/registry"

	"github.com/relip/elasticsearch-extended-analyze/kernel/store/kvstore"
	"github.com/relip/elasticsearch-extended-analyze/util/json"
	"github.com/relip/elasticsearch-extended-analyze/util/log"
)

const (
	analyzerKeyPrefix = "analyzer/"
	mappingKey        = "mapping"
)

type Config struct {
	// DefaultAnalyzer is used when a request names no analyzer, field or
	// tokenizer. Empty means "standard".
	DefaultAnalyzer string
}

// Service resolves analyzers and replays their pipelines. Stored custom
// analyzer definitions and the optional index mapping live in the kv store;
// stock components come from the bleve registry cache.
type Service struct {
	cache           *registry.Cache
	store           kvstore.KVStore
	defaultAnalyzer string

	mu         sync.RWMutex
	defs       map[string]*Definition
	mapping    *mapping.IndexMappingImpl
	mappingRaw []byte
}

// NewService creates a service backed by store. A nil store is allowed for
// library use; definitions then live in memory only.
func NewService(cfg Config, store kvstore.KVStore) (*Service, error) {
	defaultAnalyzer := cfg.DefaultAnalyzer
	if defaultAnalyzer == "" {
		defaultAnalyzer = "standard"
	}
	s := &Service{
		cache:           registry.NewCache(),
		store:           store,
		defaultAnalyzer: defaultAnalyzer,
		defs:            make(map[string]*Definition),
	}
	if store != nil {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Cache exposes the registry cache so callers can define extra components
// (configured token filters and the like) before analyzing.
func (s *Service) Cache() *registry.Cache {
	return s.cache
}

func (s *Service) load() error {
	it := s.store.PrefixIterator([]byte(analyzerKeyPrefix))
	defer it.Close()
	for ; it.Valid(); it.Next() {
		def := &Definition{}
		if err := json.Unmarshal(it.Value(), def); err != nil {
			return fmt.Errorf("decode analyzer definition %s: %v", it.Key(), err)
		}
		s.defs[def.Name] = def
	}

	raw, err := s.store.Get([]byte(mappingKey))
	if err != nil {
		return err
	}
	if raw != nil {
		im := mapping.NewIndexMapping()
		if err = im.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("decode stored mapping: %v", err)
		}
		s.mapping = im
		s.mappingRaw = raw
	}
	log.Info("analyze service loaded %d analyzer definitions", len(s.defs))
	return nil
}

// Analyze replays the resolved pipeline over the request texts.
func (s *Service) Analyze(req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ext := newAttributeExtractor(req.Attributes, req.ShortAttributeNames)

	s.mu.RLock()
	defer s.mu.RUnlock()

	name := req.Analyzer
	if req.Field != "" {
		if s.mapping == nil {
			return nil, ErrNoMapping
		}
		if fm := lookupFieldMapping(s.mapping, req.Field); fm != nil && fm.Type == "number" {
			return nil, fmt.Errorf("can't process field [%s], analysis requests are not supported on numeric fields", req.Field)
		}
		name = s.mapping.AnalyzerNameForPath(req.Field)
	}

	switch {
	case name != "":
		return s.analyzeNamed(name, req, ext)
	case req.Tokenizer != "":
		p, err := newPipeline(s.cache, req.CharFilters, req.Tokenizer, req.TokenFilters)
		if err != nil {
			return nil, err
		}
		return p.Replay(req.Text, ext), nil
	default:
		return s.analyzeNamed(s.defaultAnalyzer, req, ext)
	}
}

// analyzeNamed resolves a name against stored definitions first, then the
// registry. Definitions keep their component names and get the full
// per-stage treatment; registry analyzers are opaque and report a single
// token list.
func (s *Service) analyzeNamed(name string, req *Request, ext *attributeExtractor) (*Response, error) {
	if def, ok := s.defs[name]; ok {
		p, err := def.build(s.cache)
		if err != nil {
			return nil, err
		}
		return p.Replay(req.Text, ext), nil
	}

	a, err := s.cache.AnalyzerNamed(name)
	if err != nil {
		return nil, &NotFoundError{Kind: "analyzer", Name: name}
	}

	sources := analyzerAttributeSources(a)
	tracker := newTokenTracker(0, DefaultOffsetGap)
	for _, text := range req.Text {
		tracker.Append(a.Analyze([]byte(text)), len(text), ext, sources)
	}
	return &Response{
		Analyzer: &TokenList{Name: name, Tokens: tracker.Tokens()},
	}, nil
}

func analyzerAttributeSources(a *analysis.Analyzer) []TokenAttributeSource {
	var sources []TokenAttributeSource
	if src, ok := a.Tokenizer.(TokenAttributeSource); ok {
		sources = append(sources, src)
	}
	for _, tf := range a.TokenFilters {
		if src, ok := tf.(TokenAttributeSource); ok {
			sources = append(sources, src)
		}
	}
	return sources
}

// DefineAnalyzer validates a definition against the registry, persists it
// and makes it resolvable.
func (s *Service) DefineAnalyzer(def *Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := def.build(s.cache); err != nil {
		return err
	}
	if s.store != nil {
		value, err := json.Marshal(def)
		if err != nil {
			return err
		}
		if err = s.store.Put([]byte(analyzerKeyPrefix+def.Name), value); err != nil {
			return &StoreError{Op: "put", Err: err}
		}
	}
	s.defs[def.Name] = def
	log.Info("defined analyzer [%s]", def.Name)
	return nil
}

// Analyzer returns a stored definition by name.
func (s *Service) Analyzer(name string) (*Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.defs[name]
	return def, ok
}

// Analyzers lists the stored definitions sorted by name.
func (s *Service) Analyzers() []*Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rv := make([]*Definition, 0, len(s.defs))
	for _, def := range s.defs {
		rv = append(rv, def)
	}
	sort.Slice(rv, func(i, j int) bool { return rv[i].Name < rv[j].Name })
	return rv
}

// DeleteAnalyzer removes a stored definition.
func (s *Service) DeleteAnalyzer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.defs[name]; !ok {
		return &NotFoundError{Kind: "analyzer", Name: name}
	}
	if s.store != nil {
		if err := s.store.Delete([]byte(analyzerKeyPrefix + name)); err != nil {
			return &StoreError{Op: "delete", Err: err}
		}
	}
	delete(s.defs, name)
	log.Info("deleted analyzer [%s]", name)
	return nil
}

// PutMapping stores the index mapping used for field based resolution.
func (s *Service) PutMapping(raw []byte) error {
	im := mapping.NewIndexMapping()
	if err := im.UnmarshalJSON(raw); err != nil {
		return fmt.Errorf("decode mapping: %v", err)
	}
	if err := im.Validate(); err != nil {
		return fmt.Errorf("invalid mapping: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Put([]byte(mappingKey), raw); err != nil {
			return &StoreError{Op: "put", Err: err}
		}
	}
	s.mapping = im
	s.mappingRaw = raw
	return nil
}

// MappingJSON returns the stored mapping as sent, nil when none is stored.
func (s *Service) MappingJSON() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mappingRaw
}
