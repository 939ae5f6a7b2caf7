// Package template parses the fixed border-removal/stabilizer template into
// ordered sections. Each section carries a short prologue of injection
// instructions replayed once per scanline plus the filler budget the
// scanline must fill from the instruction stream at that point.
package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/slippyex/cycleSpitter/cycles"
)

// nopCost is the cycle cost of one reserved nop word.
const nopCost = 4

var (
	// Filler directive: dcb.w <count>,$4e71 reserves count nop words.
	reNopDirective = regexp.MustCompile(`dcb\.w\s*(\d+),\s*\$4e71`)
	reComment      = regexp.MustCompile(`;\s*(.*)`)
)

// Inst is one injection instruction with its fixed cycle cost.
type Inst struct {
	Text   string
	Cycles int
}

// Section is one template section: injection code that always runs, the
// filler budget derived from the template's nop directive, and a label for
// the section marker in the output.
type Section struct {
	Injection []Inst
	NopCycles int
	Label     string
}

// InjectionCycles sums the fixed cost of the section's injection code.
func (s *Section) InjectionCycles() int {
	total := 0
	for _, inst := range s.Injection {
		total += inst.Cycles
	}
	return total
}

// Parse splits template source into sections. A nop filler directive closes
// the section being built (filler budget = count * 4) and opens the next
// one. set directives join the injection list uncosted. Everything else
// resolves through the cycle resolver and joins with its effective cost,
// annotated with the running intra-section offset. The section label comes
// from the first inline comment seen, or defaults to "Section <n>". A
// trailing unclosed section is flushed with a zero filler budget.
func Parse(content string, res *cycles.Resolver) []Section {
	var sections []Section
	var current []Inst
	label := ""
	offset := 0

	flush := func(nopCycles int) {
		sections = append(sections, Section{
			Injection: current,
			NopCycles: nopCycles,
			Label:     label,
		})
		current = nil
		label = ""
		offset = 0
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if caps := reNopDirective.FindStringSubmatch(trimmed); caps != nil {
			count, _ := strconv.Atoi(caps[1])
			if len(current) > 0 {
				if label == "" {
					label = fmt.Sprintf("Section %d", len(sections)+1)
				}
				flush(count * nopCost)
			}
			continue
		}

		if strings.Contains(line, " set ") {
			seedLabel(&label, trimmed)
			current = append(current, Inst{Text: trimmed, Cycles: 0})
			continue
		}

		count := res.ExtractCycleCount(trimmed, isExcluded)
		if count == nil {
			continue
		}

		seedLabel(&label, trimmed)
		current = append(current, Inst{
			Text:   formatInjection(trimmed, count.Lookup, offset),
			Cycles: count.Effective(),
		})
		offset += count.Effective()
	}

	if len(current) > 0 {
		if label == "" {
			label = fmt.Sprintf("Section %d", len(sections)+1)
		}
		flush(0)
	}
	return sections
}

func isExcluded(line string) bool {
	return strings.HasPrefix(line, ";") ||
		strings.Contains(line, "dcb.w") ||
		strings.Contains(line, " equ ")
}

func seedLabel(label *string, line string) {
	if *label != "" {
		return
	}
	if caps := reComment.FindStringSubmatch(line); caps != nil {
		*label = strings.TrimSpace(caps[1])
	}
}

// formatInjection appends the lookup key and intra-section offset to an
// injection line, reusing an existing comment when the line has one.
func formatInjection(line, lookup string, offset int) string {
	if strings.Contains(line, ";") {
		return fmt.Sprintf("%s %s [%d]", line, lookup, offset)
	}
	return fmt.Sprintf("%s\t; %s [%d]", line, lookup, offset)
}
