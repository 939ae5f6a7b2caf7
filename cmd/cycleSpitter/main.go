// cycleSpitter repacks an annotated 68000 code snippet into exact
// fixed-cycle scanlines for Atari ST fullscreen (sync) programming,
// interleaving border-removal and stabilizer code from a template file.
//
// Usage: cycleSpitter [-cycles N] [source.s] [SCANLINES_LABEL] [template.s] > generated.s
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/slippyex/cycleSpitter/cycles"
	"github.com/slippyex/cycleSpitter/emit"
	"github.com/slippyex/cycleSpitter/pipeline"
)

func main() {
	cfg := pipeline.NewConfig()
	flag.IntVar(&cfg.ScanlineCycles, "cycles", pipeline.DefaultScanlineCycles,
		"cycle budget of one scanline")
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 {
		cfg.SourcePath = args[0]
	}
	if len(args) > 1 {
		cfg.ScanlinesLabel = args[1]
	}
	if len(args) > 2 {
		cfg.TemplatePath = args[2]
	}

	table, err := cycles.BuiltinTable()
	if err != nil {
		fatalf("loading cycle database: %v", err)
	}

	templateText, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		fatalf("reading template: %v", err)
	}

	source, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		fatalf("reading source: %v", err)
	}

	scanlines := pipeline.Run(cfg, sourceLines(string(source)), string(templateText), table)

	doc := emit.Document{
		ScanlinesLabel: cfg.ScanlinesLabel,
		TemplatePath:   cfg.TemplatePath,
		ScanlineCount:  len(scanlines),
	}
	for _, sl := range scanlines {
		doc.Body = append(doc.Body, sl.Lines...)
	}

	if _, err := doc.WriteTo(os.Stdout); err != nil {
		fatalf("writing output: %v", err)
	}
}

// sourceLines splits the snippet into trimmed lines, the form the expander
// and accumulator work on.
func sourceLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
