package cycles

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Inline cycle override in a comment, e.g. "move.l (a0)+,(a1) ; (20)".
var reInlineCycles = regexp.MustCompile(`(?:^|\s)\(\s*(\d+)\s*\)`)

// CycleCount is the resolved cost of one instruction line.
type CycleCount struct {
	Cycles   []int  // cost components, see Table
	Lookup   string // canonical key, or "n/a" for inline overrides
	RegCount int    // registers named by a reglist operand, 0 otherwise
}

// Base returns the primary cost component, used for straight-line
// accounting (for branches this is the not-taken cost).
func (c *CycleCount) Base() int {
	if len(c.Cycles) == 0 {
		return 0
	}
	return c.Cycles[0]
}

// PerReg returns the per-register cost of a reglist entry.
func (c *CycleCount) PerReg() int {
	if len(c.Cycles) < 2 {
		return 0
	}
	return c.Cycles[1]
}

// ExtraIfTaken returns the taken cost of a branch entry.
func (c *CycleCount) ExtraIfTaken() int {
	if len(c.Cycles) < 2 {
		return 0
	}
	return c.Cycles[1]
}

// IsRegList reports whether the cost scales with the register count.
func (c *CycleCount) IsRegList() bool {
	return strings.Contains(c.Lookup, "reglist")
}

// Effective returns the scalar cost used for budget accounting.
func (c *CycleCount) Effective() int {
	if c.IsRegList() && c.RegCount > 1 {
		return c.Base() + c.PerReg()*c.RegCount
	}
	return c.Base()
}

// Describe renders the cost for an output annotation: branches as
// "not-taken/taken", reglists with the full base+count breakdown.
func (c *CycleCount) Describe() string {
	switch {
	case len(c.Cycles) > 1 && c.IsRegList():
		return fmt.Sprintf("%d -> [base (%d) + (reg count (%d) * reg (%d))]",
			c.Effective(), c.Base(), c.RegCount, c.PerReg())
	case len(c.Cycles) > 1:
		return fmt.Sprintf("%d/%d", c.Base(), c.ExtraIfTaken())
	default:
		return strconv.Itoa(c.Base())
	}
}

// Resolver resolves instruction lines against an immutable cycle table.
// Unresolvable instructions cost 0 and produce an advisory warning on Diag;
// the generated document stays usable, its accounting just understates.
type Resolver struct {
	table Table
	diag  io.Writer
}

// NewResolver builds a resolver over the given table. Warnings go to diag
// (os.Stderr when nil).
func NewResolver(table Table, diag io.Writer) *Resolver {
	if diag == nil {
		diag = os.Stderr
	}
	return &Resolver{table: table, diag: diag}
}

// LookupCycles normalizes a line and resolves its cost from the table.
func (r *Resolver) LookupCycles(line string) *CycleCount {
	key, regCount := Normalize(line)
	if comps, ok := r.table.Lookup(key); ok {
		return &CycleCount{Cycles: comps, Lookup: key, RegCount: regCount}
	}
	fmt.Fprintf(r.diag, "Warning: No cycle count found for instruction: %s\n", line)
	return &CycleCount{Cycles: []int{0}, Lookup: key, RegCount: regCount}
}

// ExtractCycleCount resolves the cost of one line. An inline "(N)" override
// wins outright and skips normalization. Lines the skip predicate claims
// (comments, equ directives, ...) yield nil and contribute nothing.
func (r *Resolver) ExtractCycleCount(line string, skip func(string) bool) *CycleCount {
	if caps := reInlineCycles.FindStringSubmatch(line); caps != nil {
		n, _ := strconv.Atoi(caps[1])
		return &CycleCount{Cycles: []int{n}, Lookup: "n/a"}
	}
	if skip(line) {
		return nil
	}
	return r.LookupCycles(line)
}
