package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/signadot/rwjson/format"
	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/rvalue"
)

// Config represents the server configuration file structure.
type Config struct {
	// Addr is the TCP listen address. Can be overridden by CLI flag.
	Addr string `toml:"addr" yaml:"addr"`
	// MaxBody limits the size in bytes of request bodies.
	MaxBody int64 `toml:"maxBody" yaml:"maxBody"`
	// MaxDepth limits the nesting of stored documents.
	MaxDepth int `toml:"maxDepth" yaml:"maxDepth"`
	// Strict reads documents in strict mode.
	Strict bool `toml:"strict" yaml:"strict"`
	// Indent is the indentation of response bodies, 0 for compact.
	Indent int `toml:"indent" yaml:"indent"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:     "localhost:9125",
		MaxBody:  8 << 20,
		MaxDepth: 10000,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: empty addr", ErrConfig)
	case c.MaxBody <= 0:
		return fmt.Errorf("%w: maxBody must be positive, got %d", ErrConfig, c.MaxBody)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: maxDepth must be positive, got %d", ErrConfig, c.MaxDepth)
	case c.Indent < 0 || c.Indent > 16:
		return fmt.Errorf("%w: indent %d not in [0,16]", ErrConfig, c.Indent)
	}
	return nil
}

func (c *Config) loadOpts() []rvalue.LoadOption {
	res := []rvalue.LoadOption{rvalue.LoadMaxDepth(c.MaxDepth)}
	if c.Strict {
		return append(res, rvalue.LoadStrict())
	}
	return append(res, rvalue.LoadTolerant())
}

// LoadConfig loads a configuration file in JSON, YAML or TOML format,
// chosen by its extension. Fields absent from the file keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	ext := filepath.Ext(path)
	if ext == ".toml" {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if und := meta.Undecoded(); len(und) != 0 {
			return nil, fmt.Errorf("%w: unknown field %q", ErrConfig, und[0].String())
		}
		return validated(cfg)
	}
	f, err := format.FromSuffix(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	switch f {
	case format.YAMLFormat:
		err = yaml.UnmarshalWithOptions(data, cfg, yaml.Strict())
	default:
		err = configFromJSON(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return validated(cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromJSON(data []byte, cfg *Config) error {
	v, err := rvalue.Parse(data, rvalue.LoadTolerant())
	if err != nil {
		return err
	}
	if v.Type() != ir.ObjectType {
		return fmt.Errorf("%w: expected an object, got %s", ErrConfig, v.Type())
	}
	for k, fv := range v.Entries() {
		var n int64
		switch k {
		case "addr":
			cfg.Addr, err = fv.Str()
		case "maxBody":
			cfg.MaxBody, err = fv.Int()
		case "maxDepth":
			n, err = fv.Int()
			cfg.MaxDepth = int(n)
		case "strict":
			cfg.Strict, err = fv.Bool()
		case "indent":
			n, err = fv.Int()
			cfg.Indent = int(n)
		default:
			err = fmt.Errorf("%w: unknown field", ErrConfig)
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
	}
	return nil
}
