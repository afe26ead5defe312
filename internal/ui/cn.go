package ui

import (
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// Cn merges class lists. Empty inputs are skipped and repeated tokens
// collapse to their last occurrence; tailwind conflicts (p-6 then p-4,
// px-4 then p-6) are resolved by tailwind-merge, later classes winning.
func Cn(classes ...string) string {
	var toks []string
	for _, list := range classes {
		toks = append(toks, strings.Fields(list)...)
	}
	if len(toks) == 0 {
		return ""
	}
	last := make(map[string]int, len(toks))
	for i, tok := range toks {
		last[tok] = i
	}
	uniq := toks[:0]
	for i, tok := range toks {
		if last[tok] == i {
			uniq = append(uniq, tok)
		}
	}
	return twmerge.Merge(strings.Join(uniq, " "))
}
