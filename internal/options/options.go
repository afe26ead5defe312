// Package options holds the enumerated choice lists offered by the
// sign-up form: countries, investment goals, risk tolerance levels and
// preferred industries.
package options

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	Countries           = "countries"
	InvestmentGoals     = "investment_goals"
	RiskTolerance       = "risk_tolerance"
	PreferredIndustries = "preferred_industries"
)

var ErrUnknownList = errors.New("unknown option list")

//go:embed options.yaml
var builtin []byte

type Option struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type List []Option

// Set maps list names to lists. It is read-only once loaded.
type Set map[string]List

// Default returns the embedded option set.
func Default() Set {
	s, err := parse(builtin)
	if err != nil {
		panic("options: embedded options.yaml: " + err.Error())
	}
	return s
}

// Load returns the embedded set with any lists defined in path replacing
// the built-in ones. An empty path returns Default().
func Load(path string) (Set, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	override, err := parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for name, l := range override {
		s[name] = l
	}
	return s, nil
}

func parse(b []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = Set{}
	}
	for name, l := range s {
		for i, o := range l {
			if o.Value == "" {
				return nil, fmt.Errorf("%s[%d]: empty value", name, i)
			}
			if o.Label == "" {
				l[i].Label = o.Value
			}
		}
	}
	return s, nil
}

func (s Set) List(name string) (List, error) {
	l, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	return l, nil
}

func (l List) Contains(value string) bool {
	for _, o := range l {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Label returns the label for value, or "" if value is not in the list.
func (l List) Label(value string) string {
	for _, o := range l {
		if o.Value == value {
			return o.Label
		}
	}
	return ""
}

// Search returns the options whose label or value contains query,
// ignoring case, in list order. limit <= 0 means no limit.
func (l List) Search(query string, limit int) List {
	q := strings.ToLower(strings.TrimSpace(query))
	out := List{}
	for _, o := range l {
		if limit > 0 && len(out) >= limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(o.Label), q) || strings.Contains(strings.ToLower(o.Value), q) {
			out = append(out, o)
		}
	}
	return out
}
