// Package config loads the TOML documents a market or the protocol-wide
// admin singleton are configured from, mirroring the teacher's top-level
// config.Load (DecodeFile into a toml-tagged struct, NewEncoder to persist
// a default back out) generalised from the node's single Config to the
// two documents this market core needs: MarketConfigFile and
// GlobalConfigFile.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadMarketConfig decodes a MarketConfigFile from path.
func LoadMarketConfig(path string) (*MarketConfigFile, error) {
	cfg := &MarketConfigFile{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: load market config: %w", err)
	}
	return cfg, nil
}

// SaveMarketConfig writes cfg to path as TOML, truncating any existing
// file.
func SaveMarketConfig(path string, cfg *MarketConfigFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create market config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode market config: %w", err)
	}
	return nil
}

// LoadGlobalConfig decodes a GlobalConfigFile from path. Unlike the
// teacher's node Load, it never fabricates a default admin on a missing
// file: there is no sensible default authority for a singleton whose sole
// purpose is gating privileged updates, so a missing or malformed file is
// always an error the operator must fix.
func LoadGlobalConfig(path string) (*GlobalConfigFile, error) {
	cfg := &GlobalConfigFile{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: load global config: %w", err)
	}
	return cfg, nil
}

// SaveGlobalConfig writes cfg to path as TOML, truncating any existing
// file.
func SaveGlobalConfig(path string, cfg *GlobalConfigFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create global config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode global config: %w", err)
	}
	return nil
}
