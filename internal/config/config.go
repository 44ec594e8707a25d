// Package config resolves the preprocessor options for a book.
//
// Options live in the [preprocessor.autosummary] table of book.toml. When
// mdbook runs the preprocessor the same table arrives as JSON inside the
// preprocessor context. Environment variables override both.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/autosummary-dev/mdbook-autosummary/internal/doctree"
	"github.com/autosummary-dev/mdbook-autosummary/internal/ignore"
	"github.com/autosummary-dev/mdbook-autosummary/internal/logging"
)

const (
	BookFile         = "book.toml"
	DefaultSrc       = "src"
	PreprocessorName = "autosummary"

	EnvIndexName    = "AUTOSUMMARY_INDEX_NAME"
	EnvIgnoreHidden = "AUTOSUMMARY_IGNORE_HIDDEN"
)

// Options is the [preprocessor.autosummary] table.
type Options struct {
	IndexName    string `toml:"index-name" json:"index-name"`
	IgnoreHidden bool   `toml:"ignore-hidden" json:"ignore-hidden"`
}

// Config is everything a run needs from the book configuration.
type Config struct {
	// Src is the source directory relative to the book root.
	Src     string
	Options Options
}

func DefaultOptions() Options {
	return Options{
		IndexName:    doctree.DefaultIndexName,
		IgnoreHidden: true,
	}
}

func Default() Config {
	return Config{Src: DefaultSrc, Options: DefaultOptions()}
}

type bookTOML struct {
	Book struct {
		Src string `toml:"src"`
	} `toml:"book"`
	Preprocessor map[string]toml.Primitive `toml:"preprocessor"`
}

type bookJSON struct {
	Book struct {
		Src string `json:"src"`
	} `json:"book"`
	Preprocessor map[string]json.RawMessage `json:"preprocessor"`
}

// LoadBook reads book.toml from bookRoot. A missing file yields defaults;
// a file that is not valid TOML is an error.
func LoadBook(bookRoot string) (Config, error) {
	cfg := Default()
	path := filepath.Join(bookRoot, BookFile)

	var raw bookTOML
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("no book.toml found, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if src := strings.TrimSpace(raw.Book.Src); src != "" {
		cfg.Src = src
	}
	if prim, ok := raw.Preprocessor[PreprocessorName]; ok {
		opts := DefaultOptions()
		if err := md.PrimitiveDecode(prim, &opts); err != nil {
			logging.Warn("invalid [preprocessor.autosummary] table, using defaults", "error", err)
			opts = DefaultOptions()
		}
		cfg.Options = opts
	}
	return cfg, nil
}

// FromJSON decodes the book configuration carried by the preprocessor
// context.
func FromJSON(data []byte) (Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}

	var raw bookJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to decode book config: %w", err)
	}
	if src := strings.TrimSpace(raw.Book.Src); src != "" {
		cfg.Src = src
	}
	if table, ok := raw.Preprocessor[PreprocessorName]; ok {
		opts := DefaultOptions()
		if err := json.Unmarshal(table, &opts); err != nil {
			logging.Warn("invalid [preprocessor.autosummary] table, using defaults", "error", err)
			opts = DefaultOptions()
		}
		cfg.Options = opts
	}
	return cfg, nil
}

// LoadDotEnv loads dir/.env into the process environment without
// overriding variables that are already set.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// WithEnv applies environment overrides.
func (c Config) WithEnv() Config {
	if v := strings.TrimSpace(os.Getenv(EnvIndexName)); v != "" {
		c.Options.IndexName = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvIgnoreHidden)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logging.Warn("ignoring invalid boolean", "variable", EnvIgnoreHidden, "value", v)
		} else {
			c.Options.IgnoreHidden = b
		}
	}
	return c
}

// SourceDir resolves the book source directory.
func (c Config) SourceDir(bookRoot string) string {
	if filepath.IsAbs(c.Src) {
		return c.Src
	}
	return filepath.Join(bookRoot, c.Src)
}

// TreeOptions converts the options for discovery.
func (o Options) TreeOptions(m *ignore.Matcher) doctree.Options {
	indexName := strings.TrimSpace(o.IndexName)
	if indexName == "" {
		indexName = doctree.DefaultIndexName
	}
	return doctree.Options{
		IndexName:    indexName,
		IgnoreHidden: o.IgnoreHidden,
		Ignore:       m,
	}
}
