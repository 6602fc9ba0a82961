package output

import (
	"io"
)

// Renderer defines the interface for output renderers
type Renderer interface {
	// Render writes the pipeline report to the writer
	Render(w io.Writer, report *Report) error
}

// Format represents an output format
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatCompact Format = "compact"
	FormatHTML    Format = "html"
)

// NewRenderer creates a renderer for the given format
func NewRenderer(format Format, colorEnabled bool) Renderer {
	switch format {
	case FormatJSON:
		return &JSONRenderer{}
	case FormatSARIF:
		return &SARIFRenderer{}
	case FormatCompact:
		return &CompactRenderer{}
	case FormatHTML:
		return &HTMLRenderer{}
	default:
		return &TextRenderer{ColorEnabled: colorEnabled}
	}
}
