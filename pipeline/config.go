package pipeline

import (
	"io"
	"os"
)

// Defaults mirror the tool's classic invocation.
const (
	DefaultSource         = "sample.s"
	DefaultTemplate       = "template.s"
	DefaultScanlineCycles = 512
	DefaultScanlinesLabel = "SCANLINES_CONSUMED"
)

// Config carries everything the generation run needs. The zero value is not
// usable; build one with NewConfig and override fields as needed.
type Config struct {
	SourcePath     string
	TemplatePath   string
	ScanlineCycles int       // cycle budget of one scanline
	ScanlinesLabel string    // name of the emitted "<label> equ <count>" symbol
	Diag           io.Writer // advisory warnings, never part of the document
}

func NewConfig() Config {
	return Config{
		SourcePath:     DefaultSource,
		TemplatePath:   DefaultTemplate,
		ScanlineCycles: DefaultScanlineCycles,
		ScanlinesLabel: DefaultScanlinesLabel,
		Diag:           os.Stderr,
	}
}
