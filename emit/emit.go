// Package emit assembles the final generated assembly document: the banner
// header, the scanline-count symbol and the indented body.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var reLabelSplit = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*:)\s*(.+)$`)

// Document is a fully generated output file waiting to be written.
type Document struct {
	ScanlinesLabel string
	TemplatePath   string
	ScanlineCount  int
	Body           []string
}

// WriteTo renders the document. Full-line comments and equ/set directives
// stay unindented, everything else is indented one tab, and a line led by a
// "label:" token is split onto tab-separated columns.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	buf := bufio.NewWriter(w)
	bw := &countingWriter{w: buf}

	bw.printf("; ------------------------------------------\n")
	bw.printf("; This file is generated using\n")
	bw.printf("; cycleSpitter (c) 2025 - slippy / vectronix\n")
	bw.printf("; Total scanlines created: %d\n", d.ScanlineCount)
	bw.printf("; Template used: %s\n", d.TemplatePath)
	bw.printf("; ------------------------------------------\n")
	bw.printf("%s\tequ %d\n", d.ScanlinesLabel, d.ScanlineCount)

	for _, line := range d.Body {
		bw.printf("%s\n", Render(line))
	}
	if bw.err == nil {
		bw.err = buf.Flush()
	}
	return bw.n, bw.err
}

// Render applies the indentation routing rules to one body line.
func Render(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, ";"),
		strings.Contains(line, " equ "),
		strings.Contains(line, " set "):
		return line
	}
	if caps := reLabelSplit.FindStringSubmatch(trimmed); caps != nil {
		return caps[1] + "\t" + caps[2]
	}
	return "\t" + line
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}
