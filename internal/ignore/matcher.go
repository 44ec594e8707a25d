// Package ignore excludes source entries from discovery using gitignore-like
// rules read from a .autosummaryignore file at the root of the book sources.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// FileName is the rules file looked up at the source root.
const FileName = ".autosummaryignore"

var defaultRules = []string{
	".git/",
	"node_modules/",
}

type rule struct {
	pattern  *regexp.Regexp
	raw      string
	negated  bool
	dirOnly  bool
	anchored bool
	nested   bool
}

// Matcher applies rules in order; the last matching rule wins.
type Matcher struct {
	rules []rule
}

// NewMatcher builds a matcher from user rule lines. Default excludes come
// first so a user negation can re-include them.
func NewMatcher(userRules []string) *Matcher {
	lines := make([]string, 0, len(defaultRules)+len(userRules))
	lines = append(lines, defaultRules...)
	lines = append(lines, userRules...)

	m := &Matcher{rules: make([]rule, 0, len(lines))}
	for _, line := range lines {
		if parsed, ok := parseRule(line); ok {
			m.rules = append(m.rules, parsed)
		}
	}
	return m
}

// Load reads FileName from root. A missing file yields a matcher holding
// only the default rules.
func Load(root string) (*Matcher, error) {
	f, err := os.Open(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return NewMatcher(nil), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return NewMatcher(lines), nil
}

// Match reports whether relPath (relative to the source root) is excluded.
// A nil matcher excludes nothing.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	if m == nil {
		return false
	}
	relPath = normalizePath(relPath)
	if relPath == "" || relPath == "." {
		return false
	}

	ignored := false
	for _, r := range m.rules {
		if r.matches(relPath, isDir) {
			ignored = !r.negated
		}
	}
	return ignored
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	var r rule
	if strings.HasPrefix(line, "!") {
		r.negated = true
		line = line[1:]
	}
	if strings.HasPrefix(line, "/") {
		r.anchored = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	line = normalizePath(line)
	if line == "" {
		return rule{}, false
	}
	r.raw = line
	r.nested = strings.Contains(line, "/")
	r.pattern = regexp.MustCompile("^" + globToRegex(line) + "$")
	return r, true
}

func (r rule) matches(relPath string, isDir bool) bool {
	segments := strings.Split(relPath, "/")

	if r.dirOnly {
		// Any ancestor directory matching the rule excludes everything below it.
		last := len(segments) - 1
		if !isDir {
			last--
		}
		for i := 0; i <= last; i++ {
			if r.anchored || r.nested {
				if r.pattern.MatchString(strings.Join(segments[:i+1], "/")) {
					return true
				}
				continue
			}
			if r.pattern.MatchString(segments[i]) {
				return true
			}
		}
		return false
	}

	if r.anchored {
		return r.pattern.MatchString(relPath)
	}

	if r.nested {
		for i := range segments {
			if r.pattern.MatchString(strings.Join(segments[i:], "/")) {
				return true
			}
		}
		return false
	}

	for _, segment := range segments {
		if r.pattern.MatchString(segment) {
			return true
		}
	}
	return false
}

func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		switch ch {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				b.WriteString(".*")
				i++
				continue
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		default:
			if strings.ContainsRune(`.+()|[]{}^$\`, rune(ch)) {
				b.WriteByte('\\')
			}
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
