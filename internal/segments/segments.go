// Package segments builds the right-zone status summary from an ordered
// list of segment descriptors. The engine treats the result as opaque text;
// only the host knows how to format it.
package segments

import (
	"fmt"
	"strings"
	"time"

	"github.com/echoline/echoline/internal/logging/events"
)

// Context carries the host state the segments draw from.
type Context struct {
	Name     string
	Mode     string
	Line     int
	Col      int
	Percent  int
	Encoding string
	EOL      string
	Now      time.Time
}

// DefaultFormat is the segment list used when no right-format is configured.
const DefaultFormat = "name,encoding,position,clock"

// Renderer formats a status summary from its configured descriptor list.
type Renderer struct {
	specs []string
}

// New parses a comma-separated descriptor list. Empty entries are skipped;
// an empty spec falls back to DefaultFormat.
func New(spec string) *Renderer {
	if strings.TrimSpace(spec) == "" {
		spec = DefaultFormat
	}
	var specs []string
	for _, s := range strings.Split(spec, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			specs = append(specs, s)
		}
	}
	return &Renderer{specs: specs}
}

// Render produces the joined status summary. Unknown descriptors are
// skipped with a trace entry rather than failing the render.
func (r *Renderer) Render(ctx Context) string {
	parts := make([]string, 0, len(r.specs))
	for _, spec := range r.specs {
		text := renderSegment(spec, ctx)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

func renderSegment(spec string, ctx Context) string {
	switch spec {
	case "name":
		return ctx.Name
	case "mode":
		return ctx.Mode
	case "position":
		return fmt.Sprintf("L%d:C%d", ctx.Line, ctx.Col)
	case "percent":
		return fmt.Sprintf("%d%%", ctx.Percent)
	case "encoding":
		enc := ctx.Encoding
		if enc == "" {
			enc = "utf-8"
		}
		if ctx.EOL != "" {
			enc += " " + ctx.EOL
		}
		return "[" + enc + "]"
	case "clock":
		return ctx.Now.Format("15:04")
	default:
		events.Host.UnknownSegment(spec)
		return ""
	}
}
