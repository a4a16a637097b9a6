package server

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/relip/elasticsearch-extended-analyze/util/log"
)

const defaultConfig = `
# Extended analyze server configuration.

[module]
name = "extended-analyze"
ip = "0.0.0.0"
http-port = 8080
conn-limit = 1000
default-analyzer = "standard"

[store]
# boltdb or badgerdb; an empty backend keeps definitions in memory only
backend = "boltdb"
path = "/tmp/extended-analyze/data"

[log]
log-path = "/tmp/extended-analyze/log"
#debug, info, warn, error
level = "debug"
`

type ModuleConfig struct {
	Name            string `toml:"name,omitempty" json:"name"`
	Ip              string `toml:"ip,omitempty" json:"ip"`
	HttpPort        uint16 `toml:"http-port,omitempty" json:"http-port"`
	ConnLimit       int    `toml:"conn-limit,omitempty" json:"conn-limit"`
	DefaultAnalyzer string `toml:"default-analyzer,omitempty" json:"default-analyzer"`
}

type StoreConfig struct {
	Backend string `toml:"backend,omitempty" json:"backend"`
	Path    string `toml:"path,omitempty" json:"path"`
}

type LogConfig struct {
	LogPath string `toml:"log-path,omitempty" json:"log-path"`
	Level   string `toml:"level,omitempty" json:"level"`
}

type Config struct {
	ModuleCfg ModuleConfig `toml:"module,omitempty" json:"module"`
	StoreCfg  StoreConfig  `toml:"store,omitempty" json:"store"`
	LogCfg    LogConfig    `toml:"log,omitempty" json:"log"`
}

func LoadConfig(fileName string) *Config {
	config := &Config{}
	if _, err := toml.Decode(defaultConfig, config); err != nil {
		log.Panic("decode defaultConfig failed, err %v", err)
	}
	if fileName != "" {
		if err := config.LoadFromFile(fileName); err != nil {
			log.Panic("decode %s failed, err %v", fileName, err)
		}
	}
	return config
}

func (config *Config) LoadFromFile(fileName string) error {
	if _, err := toml.DecodeFile(fileName, config); err != nil {
		return err
	}
	return config.validate()
}

func (config *Config) validate() error {
	if config.ModuleCfg.HttpPort == 0 {
		return fmt.Errorf("http-port not specified")
	}
	switch config.StoreCfg.Backend {
	case "", "boltdb", "badgerdb":
	default:
		return fmt.Errorf("unknown store backend [%s]", config.StoreCfg.Backend)
	}
	if config.StoreCfg.Backend != "" && config.StoreCfg.Path == "" {
		return fmt.Errorf("store backend [%s] requires a path", config.StoreCfg.Backend)
	}
	return nil
}
