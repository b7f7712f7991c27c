// Package alias implements build-time path substitution: a lookup table from
// an import specifier pattern to a replacement path, used to swap default
// theme components for customized ones.
package alias

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrEmptyFind is returned for a rule without a match pattern.
var ErrEmptyFind = errors.New("alias rule has empty find pattern")

// Rule pairs a match pattern with a replacement path. With Regexp set, Find
// is a regular expression and the match is replaced (so `$1` references
// work); otherwise Find matches the whole specifier or a `Find/` prefix.
type Rule struct {
	Find        string `yaml:"find" json:"find"`
	Replacement string `yaml:"replacement" json:"replacement"`
	Regexp      bool   `yaml:"regexp,omitempty" json:"regexp,omitempty"`
}

// Table is an ordered list of rules; the first match wins.
type Table struct {
	rules []compiled
}

type compiled struct {
	Rule
	re *regexp.Regexp
}

// Compile validates rules and returns a resolvable table.
func Compile(rules []Rule) (*Table, error) {
	t := &Table{rules: make([]compiled, 0, len(rules))}
	for i, r := range rules {
		if r.Find == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrEmptyFind)
		}
		c := compiled{Rule: r}
		if r.Regexp {
			re, err := regexp.Compile(r.Find)
			if err != nil {
				return nil, fmt.Errorf("rule %d: compile %q: %w", i, r.Find, err)
			}
			c.re = re
		}
		t.rules = append(t.rules, c)
	}
	return t, nil
}

// Rules returns a copy of the table's rules in order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, c := range t.rules {
		out[i] = c.Rule
	}
	return out
}

// Resolve applies the first matching rule to spec.
func (t *Table) Resolve(spec string) (string, bool) {
	for _, c := range t.rules {
		if c.re != nil {
			if c.re.MatchString(spec) {
				return c.re.ReplaceAllString(spec, c.Replacement), true
			}
			continue
		}
		if spec == c.Find {
			return c.Replacement, true
		}
		if rest, ok := strings.CutPrefix(spec, c.Find+"/"); ok {
			return strings.TrimSuffix(c.Replacement, "/") + "/" + rest, true
		}
	}
	return spec, false
}

// Absolute returns a copy of the table with relative replacements joined
// onto root, the way the host resolves paths from its working directory.
func (t *Table) Absolute(root string) *Table {
	out := &Table{rules: make([]compiled, len(t.rules))}
	for i, c := range t.rules {
		if !filepath.IsAbs(c.Replacement) {
			c.Replacement = filepath.Join(root, c.Replacement)
		}
		out.rules[i] = c
	}
	return out
}
