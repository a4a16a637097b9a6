package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/relip/elasticsearch-extended-analyze/kernel/analyze"
	"github.com/relip/elasticsearch-extended-analyze/kernel/store/kvstore"
	"github.com/relip/elasticsearch-extended-analyze/kernel/store/kvstore/badgerdb"
	"github.com/relip/elasticsearch-extended-analyze/kernel/store/kvstore/boltdb"
	"github.com/relip/elasticsearch-extended-analyze/util/log"
)

// Server owns the definition store, the analyze service and the HTTP api.
type Server struct {
	cfg       *Config
	store     kvstore.KVStore
	service   *analyze.Service
	apiServer *ApiServer
}

func NewServer(cfg *Config) (*Server, error) {
	store, err := openStore(&cfg.StoreCfg)
	if err != nil {
		return nil, err
	}

	service, err := analyze.NewService(analyze.Config{
		DefaultAnalyzer: cfg.ModuleCfg.DefaultAnalyzer,
	}, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		store:     store,
		service:   service,
		apiServer: NewApiServer(cfg, service),
	}
	return s, nil
}

func openStore(cfg *StoreConfig) (kvstore.KVStore, error) {
	switch cfg.Backend {
	case "":
		log.Warn("no store backend configured, analyzer definitions will not survive restarts")
		return nil, nil
	case "boltdb":
		if err := os.MkdirAll(cfg.Path, 0755); err != nil {
			return nil, err
		}
		return boltdb.New(&boltdb.StoreConfig{
			Path: filepath.Join(cfg.Path, "definitions.bolt"),
		})
	case "badgerdb":
		return badgerdb.New(&badgerdb.StoreConfig{
			Path: cfg.Path,
			Sync: true,
		})
	}
	return nil, fmt.Errorf("unknown store backend [%s]", cfg.Backend)
}

// Service exposes the analyze service, mainly for tests.
func (s *Server) Service() *analyze.Service {
	return s.service
}

// Start runs the api server in the background.
func (s *Server) Start() error {
	go func() {
		if err := s.apiServer.Run(); err != nil {
			log.Error("api server stopped: %v", err)
		}
	}()
	log.Info("server [%s] serving on %s:%d", s.cfg.ModuleCfg.Name,
		s.cfg.ModuleCfg.Ip, s.cfg.ModuleCfg.HttpPort)
	return nil
}

func (s *Server) Close() error {
	s.apiServer.Close()
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
