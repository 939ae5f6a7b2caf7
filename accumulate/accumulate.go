// Package accumulate consumes a flat instruction stream into fixed-size
// cycle windows, annotating every costed line with its running offset and
// padding the remainder with 4-cycle nop instructions so each window closes
// on its target exactly.
package accumulate

import (
	"fmt"
	"io"
	"strings"

	"github.com/slippyex/cycleSpitter/cycles"
)

// NopCycles is the cost of one filler instruction.
const NopCycles = 4

// Chunk accumulates lines from lines[start:] until target cycles (relative
// to initialOffset) are consumed. It returns the annotated chunk, the index
// where processing stopped and the final cumulative offset.
//
// Blank lines, comments and set directives pass through uncosted. An
// instruction that would overrun the target is left unconsumed; the
// residual is closed with nop filler instead, so final-initial == target
// holds on every return. A mismatch is reported on diag but never fatal.
func Chunk(lines []string, start, target, initialOffset int, res *cycles.Resolver, diag io.Writer) ([]string, int, int) {
	sum := initialOffset
	var chunk []string
	i := start
	for i < len(lines) && sum-initialOffset < target {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.Contains(line, " set ") {
			chunk = append(chunk, line)
			i++
			continue
		}

		count := res.ExtractCycleCount(line, isNonCode)
		if count == nil {
			// equ and friends: consumed, nothing to account or emit.
			i++
			continue
		}

		effective := count.Effective()
		if sum-initialOffset+effective > target {
			chunk, sum = pad(chunk, sum, target-(sum-initialOffset))
			break
		}
		if effective > 0 {
			chunk = append(chunk, annotate(line, count, sum))
			sum += effective
		} else {
			chunk = append(chunk, line)
		}
		i++
	}

	if short := target - (sum - initialOffset); short > 0 {
		chunk, sum = pad(chunk, sum, short)
	}
	if sum-initialOffset != target {
		fmt.Fprintf(diag, "Warning: Accumulated cycles %d do not equal target %d starting at index %d.\n",
			sum-initialOffset, target, start)
	}
	return chunk, i, sum
}

func isNonCode(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, ";") || strings.Contains(line, " equ ")
}

func annotate(line string, count *cycles.CycleCount, offset int) string {
	return fmt.Sprintf("%s\t;\t(%s)\t%s\t[%d]", line, count.Describe(), count.Lookup, offset)
}

// pad closes the residual cycles with nop lines, each annotated with its
// own running offset.
func pad(chunk []string, sum, residual int) ([]string, int) {
	for n := 0; n < residual/NopCycles; n++ {
		chunk = append(chunk, fmt.Sprintf("nop\t; 4 cycles\t[%d]", sum))
		sum += NopCycles
	}
	return chunk, sum
}
