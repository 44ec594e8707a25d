// Package preprocessor speaks the mdbook preprocessor protocol: mdbook
// writes a JSON array [context, book] to stdin and reads the (possibly
// modified) book back from stdout.
package preprocessor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/autosummary-dev/mdbook-autosummary/internal/config"
	"github.com/autosummary-dev/mdbook-autosummary/internal/ignore"
	"github.com/autosummary-dev/mdbook-autosummary/internal/logging"
	"github.com/autosummary-dev/mdbook-autosummary/internal/summary"
)

// Name is the preprocessor's table name in book.toml.
const Name = config.PreprocessorName

// BuiltAgainst is the mdbook release whose protocol this build follows.
const BuiltAgainst = "0.4.40"

var ErrMalformedInput = errors.New("malformed preprocessor input")

// Context is the subset of mdbook's PreprocessorContext used here.
type Context struct {
	Root          string          `json:"root"`
	Config        json.RawMessage `json:"config"`
	Renderer      string          `json:"renderer"`
	MdbookVersion string          `json:"mdbook_version"`
}

// Supports reports whether the renderer can consume this preprocessor's
// output. SUMMARY.md generation is renderer independent.
func Supports(renderer string) bool {
	return true
}

// ParseInput decodes mdbook's [context, book] payload. The book is
// returned verbatim.
func ParseInput(r io.Reader) (*Context, json.RawMessage, error) {
	var payload []json.RawMessage
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(payload) != 2 {
		return nil, nil, fmt.Errorf("%w: expected [context, book], got %d elements", ErrMalformedInput, len(payload))
	}

	var ctx Context
	if err := json.Unmarshal(payload[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: context: %v", ErrMalformedInput, err)
	}
	if ctx.Root == "" {
		return nil, nil, fmt.Errorf("%w: context has no root", ErrMalformedInput)
	}
	return &ctx, payload[1], nil
}

// Run handles one preprocessing request: regenerate SUMMARY.md for the
// book described by the context on in. When SUMMARY.md was rewritten the
// book is reloaded from it before going to out; otherwise the incoming book
// is echoed.
func Run(in io.Reader, out io.Writer, version string) error {
	ctx, book, err := ParseInput(in)
	if err != nil {
		return err
	}
	log := logging.With("component", "preprocessor", "renderer", ctx.Renderer)

	compatible, err := CheckVersion(ctx.MdbookVersion, BuiltAgainst)
	if err != nil {
		return err
	}
	if !compatible {
		log.Warn(fmt.Sprintf(
			"The %s preprocessor was built against version %s of mdbook, but mdbook version is %s",
			Name, BuiltAgainst, ctx.MdbookVersion,
		))
	}

	if err := config.LoadDotEnv(ctx.Root); err != nil {
		return err
	}
	cfg, err := config.FromJSON(ctx.Config)
	if err != nil {
		return err
	}
	cfg = cfg.WithEnv()

	srcDir := cfg.SourceDir(ctx.Root)
	matcher, err := ignore.Load(srcDir)
	if err != nil {
		return err
	}
	res, err := summary.Sync(srcDir, cfg.Options.TreeOptions(matcher), version)
	if err != nil {
		return err
	}
	log.Debug("summary processed", "path", res.Path, "written", res.Written)

	if !res.Written {
		return writeBook(out, book)
	}
	reloaded, err := LoadBook(srcDir, []byte(res.Content))
	if err != nil {
		return fmt.Errorf("failed to reload book from %s: %w", res.Path, err)
	}
	data, err := json.Marshal(reloaded)
	if err != nil {
		return fmt.Errorf("failed to encode book: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write book: %w", err)
	}
	return nil
}

func writeBook(out io.Writer, book json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, book); err != nil {
		return fmt.Errorf("%w: book: %v", ErrMalformedInput, err)
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write book: %w", err)
	}
	return nil
}
