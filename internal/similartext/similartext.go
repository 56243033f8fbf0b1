// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package similartext suggests a "did you mean" correction for a misspelled
// key, operator, or label name against a known set of names.
package similartext

import (
	"fmt"
	"sort"
	"strings"
)

// maxDistance bounds how different a candidate may be from the input before
// it's considered too dissimilar to suggest.
const maxDistance = 3

// Find returns a ", maybe you mean X?" (or "X or Y?") suffix for the closest
// matches to name among names, or "" if nothing is close enough.
func Find(names []string, name string) string {
	if name == "" {
		return ""
	}
	return format(closest(names, name))
}

// FindFromMap is Find over the keys of a map.
func FindFromMap[V any](names map[string]V, name string) string {
	if name == "" {
		return ""
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	return format(closest(keys, name))
}

func format(matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	if len(matches) == 1 {
		return fmt.Sprintf(", maybe you mean %s?", matches[0])
	}
	return fmt.Sprintf(", maybe you mean %s?", strings.Join(matches, " or "))
}

func closest(names []string, name string) []string {
	best := maxDistance + 1
	var matches []string
	for _, n := range names {
		d := levenshtein(strings.ToLower(n), strings.ToLower(name))
		if d > maxDistance {
			continue
		}
		switch {
		case d < best:
			best = d
			matches = []string{n}
		case d == best:
			matches = append(matches, n)
		}
	}
	sort.Strings(matches)
	return matches
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
