// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"sort"

	"github.com/pdiddy/dimensions-query/pkg/types"
)

// Count tallies values and returns them in descending count order, ties
// in order of first appearance, truncated to top entries. top <= 0 keeps
// every value.
func Count(values []string, top int) []types.Frequency {
	index := make(map[string]int)
	var rows []types.Frequency
	for _, v := range values {
		i, ok := index[v]
		if !ok {
			i = len(rows)
			index[v] = i
			rows = append(rows, types.Frequency{Value: v})
		}
		rows[i].Count++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}
	if rows == nil {
		rows = []types.Frequency{}
	}
	return rows
}
