package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/schema"
)

// stderr receives status lines; tests swap it out.
var stderr io.Writer = os.Stderr

// palette applies badge and tone colors, or leaves text plain when colors are off.
type palette struct {
	colors bool
}

func newPalette(cfg *contract.Config) palette {
	return palette{colors: cfg.UseColors}
}

func (p palette) badge(b *schema.Badge) string {
	if b == nil {
		return ""
	}
	if p.colors {
		return contract.GetColorBadge(b)
	}
	return b.Label
}

func (p palette) tone(t schema.Tone, text string) string {
	if p.colors && text != "" {
		return contract.GetColorTone(t, text)
	}
	return text
}

// cell renders a table cell truncated to width, badge after text.
func (p palette) cell(c schema.Cell, width int) string {
	text := p.tone(c.Tone, contract.TruncateText(c.Text, width))
	if c.Badge == nil {
		return text
	}
	if text == "" {
		return p.badge(c.Badge)
	}
	return fmt.Sprintf("%s %s", text, p.badge(c.Badge))
}
