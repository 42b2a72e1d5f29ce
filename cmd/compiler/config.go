package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/opal/internal/source"
)

// config holds every tunable the driver exposes, in both the YAML
// configuration file and the CLI flags. Flags that were explicitly set on
// the command line win over the file, which wins over these defaults.
type config struct {
	ArenaReserve int    `yaml:"arena_reserve"`
	ArenaCommit  int    `yaml:"arena_commit"`
	MaxPathLen   int    `yaml:"max_path_len"`
	DumpTokens   bool   `yaml:"dump_tokens"`
	DumpAST      bool   `yaml:"dump_ast"`
	ASTFormat    string `yaml:"ast_format"`
}

func defaultConfig() config {
	return config{
		ArenaReserve: 1 << 30, // spec §4.1 default reservation
		ArenaCommit:  1 << 16,
		MaxPathLen:   source.MaxPathLen,
		ASTFormat:    "json",
	}
}

// loadConfigFile merges path's YAML contents onto cfg, field by field
// (zero values in the file leave cfg's existing field untouched).
func loadConfigFile(cfg config, path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	var fromFile config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if fromFile.ArenaReserve != 0 {
		cfg.ArenaReserve = fromFile.ArenaReserve
	}
	if fromFile.ArenaCommit != 0 {
		cfg.ArenaCommit = fromFile.ArenaCommit
	}
	if fromFile.MaxPathLen != 0 {
		cfg.MaxPathLen = fromFile.MaxPathLen
	}
	if fromFile.ASTFormat != "" {
		cfg.ASTFormat = fromFile.ASTFormat
	}
	cfg.DumpTokens = cfg.DumpTokens || fromFile.DumpTokens
	cfg.DumpAST = cfg.DumpAST || fromFile.DumpAST
	return cfg, nil
}
