package pixbuf

import (
	"fmt"
	"strings"
)

var _ = fmt.Print

type hexConfig struct {
	varName     string
	perRow      int
	groupCount  int
	groupSpacer string
}

var defaultHexConfig = hexConfig{
	perRow:      16,
	groupCount:  4,
	groupSpacer: " ",
}

// HexOption sets an optional parameter for HexLiteral.
type HexOption func(*hexConfig)

// HexVarName prefixes the listing with "var <name> = ". Empty means a bare listing.
func HexVarName(name string) HexOption {
	return func(c *hexConfig) {
		c.varName = name
	}
}

// HexPerRow sets the number of tokens per line. Default is 16.
func HexPerRow(n int) HexOption {
	return func(c *hexConfig) {
		if n > 0 {
			c.perRow = n
		}
	}
}

// HexGroupCount sets how many tokens sit between group spacers. Default is 4.
func HexGroupCount(n int) HexOption {
	return func(c *hexConfig) {
		if n > 0 {
			c.groupCount = n
		}
	}
}

// HexGroupSpacer sets the text inserted between groups within a line. Default is a single space.
func HexGroupSpacer(s string) HexOption {
	return func(c *hexConfig) {
		c.groupSpacer = s
	}
}

const hexDigits = "0123456789ABCDEF"

// HexLiteral renders buf as a bracketed, comma separated list of 0xHH
// tokens suitable for pasting into source code.
//
// Examples:
//
//	// [\n0x00,0x01\n]
//	s := pixbuf.HexLiteral([]byte{0, 1})
//
//	// var red = [\n0xFF,0xFF,0x00,0x00\n]
//	s := pixbuf.HexLiteral(buf, pixbuf.HexVarName("red"))
func HexLiteral(buf []byte, opts ...HexOption) string {
	cfg := defaultHexConfig
	for _, option := range opts {
		option(&cfg)
	}
	var b strings.Builder
	b.Grow(len(cfg.varName) + 10 + len(buf)*(5+len(cfg.groupSpacer)))
	if cfg.varName != "" {
		b.WriteString("var ")
		b.WriteString(cfg.varName)
		b.WriteString(" = ")
	}
	b.WriteString("[\n")
	last := len(buf) - 1
	for i, x := range buf {
		switch {
		case i%cfg.perRow == 0 && i != 0:
			b.WriteByte('\n')
		case i%cfg.groupCount == 0 && i%cfg.perRow != 0:
			b.WriteString(cfg.groupSpacer)
		}
		b.WriteString("0x")
		b.WriteByte(hexDigits[x>>4])
		b.WriteByte(hexDigits[x&0xf])
		if i != last {
			b.WriteByte(',')
		}
	}
	b.WriteString("\n]")
	return b.String()
}
