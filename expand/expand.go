// Package expand flattens REPT/ENDR regions of an assembly snippet into a
// plain instruction stream. Expansion is purely structural, no cycle
// accounting happens here.
package expand

import (
	"strconv"
	"strings"
)

// Block expands lines starting at start until an ENDR closes the current
// nesting level or the input runs out. It returns the flattened lines and
// the index just past the consumed region. Nesting works through recursion:
// every REPT opener expands its body with a nested call, and every ENDR
// returns one level up.
//
// A REPT whose count does not parse as a positive integer is not treated as
// an opener: the line is kept verbatim and its body runs once. An opener
// left unclosed at end of input also has its body emitted once.
func Block(lines []string, start int) ([]string, int) {
	var result []string
	index := start
	for index < len(lines) {
		line := lines[index]
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "rept"):
			if count, ok := repeatCount(lower); ok {
				body, next := Block(lines, index+1)
				for n := 0; n < count; n++ {
					result = append(result, body...)
				}
				index = next
				continue
			}
			result = append(result, line)
		case strings.HasPrefix(lower, "endr"):
			return result, index + 1
		default:
			result = append(result, line)
		}
		index++
	}
	return result, index
}

func repeatCount(lower string) (int, bool) {
	parts := strings.Fields(lower)
	if len(parts) < 2 {
		return 0, false
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil || count <= 0 {
		return 0, false
	}
	return count, true
}
