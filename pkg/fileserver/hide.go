// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type hidePattern struct {
	negated bool
	// patterns without a slash match the base name at any depth
	baseOnly bool
	pattern  string
}

func newHidePattern(pattern string) (*hidePattern, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, errors.New("empty pattern")
	}

	negated := false
	if pattern[0] == '!' {
		negated = true
		pattern = pattern[1:]
	}
	pattern = strings.TrimPrefix(pattern, "/")
	if pattern == "" {
		return nil, errors.New("empty pattern")
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("bad pattern: %s", pattern)
	}

	return &hidePattern{
		negated:  negated,
		baseOnly: !strings.Contains(pattern, "/"),
		pattern:  pattern,
	}, nil
}

func (p *hidePattern) matches(name string) bool {
	if p.baseOnly {
		name = path.Base(name)
	}
	// pattern was validated up front, so Match can not fail
	match, _ := doublestar.Match(p.pattern, name)
	return match
}

// HideRules decide which paths under the root are never served. Rules are
// doublestar patterns, evaluated in order; the last matching rule wins, and
// a leading ! un-hides. A hidden directory hides everything below it.
type HideRules struct {
	patterns []*hidePattern
}

// NewHideRules parses patterns into a HideRules.
func NewHideRules(patterns []string) (*HideRules, error) {
	hr := &HideRules{patterns: make([]*hidePattern, 0, len(patterns))}
	for _, p := range patterns {
		hp, err := newHidePattern(p)
		if err != nil {
			return nil, fmt.Errorf("unable to parse hide rule %q: %w", p, err)
		}
		hr.patterns = append(hr.patterns, hp)
	}
	return hr, nil
}

// ReadHideRules reads one pattern per line from r. Blank lines and lines
// starting with # are skipped.
func ReadHideRules(r io.Reader) ([]string, error) {
	patterns := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading hide rules: %w", err)
	}
	return patterns, nil
}

// Len returns the number of rules.
func (hr *HideRules) Len() int {
	if hr == nil {
		return 0
	}
	return len(hr.patterns)
}

func (hr *HideRules) hidden(name string) bool {
	hidden := false
	for _, p := range hr.patterns {
		if p.matches(name) {
			hidden = !p.negated
		}
	}
	return hidden
}

// Hidden reports whether name (a slash separated path relative to the
// root) or any of its parent directories is hidden. The root itself never is.
func (hr *HideRules) Hidden(name string) bool {
	if hr.Len() == 0 || name == "." || name == "" {
		return false
	}

	parts := strings.Split(name, "/")
	for i := range parts {
		if hr.hidden(strings.Join(parts[:i+1], "/")) {
			return true
		}
	}
	return false
}
