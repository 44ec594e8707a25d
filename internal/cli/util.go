package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/autosummary-dev/mdbook-autosummary/internal/config"
	"github.com/autosummary-dev/mdbook-autosummary/internal/doctree"
	"github.com/autosummary-dev/mdbook-autosummary/internal/ignore"
)

// ExitError ends the process with Code and no message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

type book struct {
	Root      string
	SourceDir string
	Config    config.Config
	Options   doctree.Options
}

func resolveBookRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	rootPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("failed to access path %q: %w", rootPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", rootPath)
	}
	return rootPath, nil
}

// loadBook resolves configuration the way a preprocessor run would, but
// from book.toml on disk.
func loadBook(args []string) (*book, error) {
	rootPath, err := resolveBookRoot(args)
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(rootPath); err != nil {
		return nil, err
	}
	cfg, err := config.LoadBook(rootPath)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithEnv()

	srcDir := cfg.SourceDir(rootPath)
	matcher, err := ignore.Load(srcDir)
	if err != nil {
		return nil, err
	}
	return &book{
		Root:      rootPath,
		SourceDir: srcDir,
		Config:    cfg,
		Options:   cfg.Options.TreeOptions(matcher),
	}, nil
}
