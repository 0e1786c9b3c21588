package laserflow

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"

	"github.com/gogpu/laserflow/internal/colorcache"
)

// colors memoizes ParseColor, which runs for every beam on every frame.
var colors = colorcache.New(colorcache.DefaultCapacity)

// ParseColor converts a palette entry to a gg color.
//
// ok is true only for six-digit hex colors ("#rrggbb"), the one form the
// renderer applies the alpha fade to. Every other form is still resolved
// on a best-effort basis so it can be drawn as a solid color: other hex
// lengths via gg.Hex, CSS color names via x/image/colornames, and opaque
// black for anything unrecognized.
func ParseColor(s string) (c gg.RGBA, ok bool) {
	e := colors.GetOrCreate(s, parseEntry)
	return e.Color, e.Hex
}

func parseEntry(s string) colorcache.Entry {
	c, ok := parseColor(s)
	return colorcache.Entry{Color: c, Hex: ok}
}

func parseColor(s string) (gg.RGBA, bool) {
	if rgb, ok := parseHex6(s); ok {
		return rgb, true
	}
	if strings.HasPrefix(s, "#") {
		return gg.Hex(s), false
	}
	if named, found := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; found {
		return gg.FromColor(named), false
	}
	return gg.Black, false
}

func parseHex6(s string) (gg.RGBA, bool) {
	if len(s) != 7 || s[0] != '#' {
		return gg.RGBA{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return gg.RGBA{}, false
	}
	return gg.RGBA{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, true
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c gg.RGBA, alpha float64) gg.RGBA {
	c.A = alpha
	return c
}

// CSSColor formats c the way CSS writes it: "rgba(r, g, b, a)" with
// 8-bit channels and the alpha as a decimal.
func CSSColor(c gg.RGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		channel8(c.R), channel8(c.G), channel8(c.B),
		strconv.FormatFloat(c.A, 'f', -1, 64))
}

func channel8(v float64) int {
	return int(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}
