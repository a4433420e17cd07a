// Package testutil defines support code for unit tests.
package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/creachadair/jindex"
	"github.com/goccy/go-yaml"
)

// A Case is a single scanner test case loaded from a fixture file.
type Case struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Strict string `yaml:"strict"` // "ok", or the expected error production
	Fast   string `yaml:"fast"`   // "ok", or the expected error production
	Tokens string `yaml:"tokens"` // if set, the expected rendering of the tokens
}

// LoadCases reads a list of test cases from the YAML file at path.
func LoadCases(t testing.TB, path string) []Case {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Read cases: %v", err)
	}
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("Decode cases: %v", err)
	}
	return cases
}

// Render returns a compact human-readable rendering of toks, with the kind
// and source text of each token separated by spaces.
func Render(src *jindex.Source, toks []jindex.Token) string {
	ss := make([]string, len(toks))
	for i, tok := range toks {
		ss[i] = tok.Kind.String() + "(" + src.String(tok.Start, tok.End) + ")"
	}
	return strings.Join(ss, " ")
}

// CheckContainment reports an error to t if any two tokens of toks overlap
// without one containing the other, or if a token is not contained by every
// complex token that precedes it and starts before it ends.
func CheckContainment(t testing.TB, toks []jindex.Token) {
	t.Helper()
	for i, a := range toks {
		for j := i + 1; j < len(toks); j++ {
			b := toks[j]
			if b.Start >= a.End || b.End <= a.Start {
				continue // disjoint
			}
			if !a.Kind.IsComplex() || !a.Contains(b) {
				t.Errorf("Token %d %v overlaps token %d %v", i, a, j, b)
			}
		}
	}
}
