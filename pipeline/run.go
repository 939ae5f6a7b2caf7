// Package pipeline sequences the generation stages: template parsing,
// repeat expansion and per-scanline budget accumulation.
package pipeline

import (
	"fmt"

	"github.com/slippyex/cycleSpitter/accumulate"
	"github.com/slippyex/cycleSpitter/cycles"
	"github.com/slippyex/cycleSpitter/expand"
	"github.com/slippyex/cycleSpitter/template"
)

// Scanline is one generated window: its output lines and the cycles it
// accounts for. Cycles equals the configured budget unless the template
// alone overflowed it.
type Scanline struct {
	Lines  []string
	Cycles int
}

// Run repacks the source snippet into scanlines. Each scanline replays the
// template sections' injection code and fills every section's filler budget
// from the flat instruction stream; the scanline is then padded up to the
// configured budget. The loop continues until the stream is exhausted.
func Run(cfg Config, sourceLines []string, templateText string, table cycles.Table) []Scanline {
	res := cycles.NewResolver(table, cfg.Diag)
	sections := template.Parse(templateText, res)
	flat, _ := expand.Block(sourceLines, 0)

	var scanlines []Scanline
	index := 0
	for index < len(flat) {
		var sl Scanline
		offset := 0   // running cycle offset inside this scanline
		consumed := 0 // cycles accounted against the budget

		for _, sec := range sections {
			for i, inst := range sec.Injection {
				text := inst.Text
				if i == 0 {
					// The section entry point carries the scanline total.
					text = fmt.Sprintf("%s\t[%d]", text, offset)
				}
				sl.Lines = append(sl.Lines, text)
				offset += inst.Cycles
				consumed += inst.Cycles
			}

			sl.Lines = append(sl.Lines, fmt.Sprintf("; --- %s section ---", sec.Label))

			if sec.NopCycles > 0 && index < len(flat) {
				chunk, next, newOffset := accumulate.Chunk(flat, index, sec.NopCycles, offset, res, cfg.Diag)
				offset = newOffset
				consumed += sec.NopCycles
				index = next
				sl.Lines = append(sl.Lines, chunk...)
			}
			sl.Lines = append(sl.Lines, fmt.Sprintf("; Calculated cycles: %d", offset))
		}

		switch {
		case consumed < cfg.ScanlineCycles:
			remaining := cfg.ScanlineCycles - consumed
			if count := remaining / accumulate.NopCycles; count > 0 {
				sl.Lines = append(sl.Lines, fmt.Sprintf(
					"dcb.w\t%d,$4e71\t; Pad to %d cycles (%d cycles)",
					count, cfg.ScanlineCycles, remaining))
			}
			consumed = cfg.ScanlineCycles
		case consumed > cfg.ScanlineCycles:
			fmt.Fprintf(cfg.Diag, "Warning: Scanline overflow by %d cycles!\n",
				consumed-cfg.ScanlineCycles)
		}

		sl.Cycles = consumed
		sl.Lines = append(sl.Lines, fmt.Sprintf("; Total cycles for scanline: %d", consumed))
		scanlines = append(scanlines, sl)
	}
	return scanlines
}
