package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteResult describes a fingerprint-guarded write.
type WriteResult struct {
	Written             bool
	Fingerprint         string
	PreviousFingerprint string
}

// WriteIfChanged writes data to path unless the file already holds content
// with the same fingerprint.
func WriteIfChanged(path string, data []byte) (WriteResult, error) {
	res := WriteResult{Fingerprint: Fingerprint(data)}

	previous, exists, err := FingerprintFile(path)
	if err != nil {
		return res, fmt.Errorf("failed to fingerprint %s: %w", path, err)
	}
	res.PreviousFingerprint = previous
	if exists && previous == res.Fingerprint {
		return res, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return res, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// EnsureTrailingNewline trims trailing whitespace and terminates s with
// exactly one newline.
func EnsureTrailingNewline(s string) string {
	return strings.TrimRight(s, " \t\r\n\v\f") + "\n"
}
