package server

import (
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	if cfg.ModuleCfg.Name != "extended-analyze" {
		t.Fatalf("name: %s", cfg.ModuleCfg.Name)
	}
	if cfg.ModuleCfg.HttpPort != 8080 {
		t.Fatalf("http port: %d", cfg.ModuleCfg.HttpPort)
	}
	if cfg.ModuleCfg.DefaultAnalyzer != "standard" {
		t.Fatalf("default analyzer: %s", cfg.ModuleCfg.DefaultAnalyzer)
	}
	if cfg.StoreCfg.Backend != "boltdb" {
		t.Fatalf("store backend: %s", cfg.StoreCfg.Backend)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := LoadConfig("")

	cfg.StoreCfg.Backend = "rocksdb"
	if err := cfg.validate(); err == nil {
		t.Fatal("expected unknown backend error")
	}

	cfg.StoreCfg.Backend = "badgerdb"
	cfg.StoreCfg.Path = ""
	if err := cfg.validate(); err == nil {
		t.Fatal("expected missing path error")
	}

	cfg.StoreCfg.Backend = ""
	if err := cfg.validate(); err != nil {
		t.Fatalf("memory-only config must validate: %v", err)
	}

	cfg.ModuleCfg.HttpPort = 0
	if err := cfg.validate(); err == nil {
		t.Fatal("expected missing port error")
	}
}
