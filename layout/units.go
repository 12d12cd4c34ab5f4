package layout

import (
	"math"
	"strconv"
	"strings"
)

// This file defines the small set of CSS lengths understood by the surface measurement.

// Unit represents the original unit of a length value as written in an inline style.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers, e.g. flex-shrink factors
	UnitPX                  // CSS pixels
	UnitPercent             // percentage of the containing block
	UnitPT                  // points
	UnitKeyword             // auto, none, max-content ...
)

// Conversion constants between CSS px and pt.
const (
	PxToPt = 0.75
	PtToPx = 1.0 / PxToPt
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPercent:
		return "%"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit, or a keyword such as "auto".
type Length struct {
	Value   float64 `json:"value"`
	Unit    Unit    `json:"unit"`
	Keyword string  `json:"keyword,omitempty"`
}

// IsKeyword reports whether the length is the given keyword (case-insensitive).
func (l Length) IsKeyword(kw string) bool {
	return l.Unit == UnitKeyword && strings.EqualFold(l.Keyword, kw)
}

// Definite reports whether the length resolves to a number without further context
// other than an optional reference for percentages.
func (l Length) Definite() bool {
	return l.Unit == UnitPX || l.Unit == UnitPT || l.Unit == UnitPercent || l.Unit == UnitNone
}

// Px resolves the length to CSS px. Percentages resolve against reference; keywords
// yield ok=false.
func (l Length) Px(reference float64) (float64, bool) {
	switch l.Unit {
	case UnitPX, UnitNone:
		return l.Value, true
	case UnitPT:
		return l.Value * PtToPx, true
	case UnitPercent:
		if math.IsInf(reference, 0) || math.IsNaN(reference) {
			return 0, false
		}
		return reference * l.Value / 100, true
	default:
		return 0, false
	}
}

func (l Length) String() string {
	if l.Unit == UnitKeyword {
		return l.Keyword
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// Px builds a px length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPX} }

// ParseLength parses a CSS length string preserving its unit.
// Unparseable values are returned as keywords so callers can decide how to treat them.
func ParseLength(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{Unit: UnitKeyword, Keyword: "auto"}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"%", UnitPercent}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{Unit: UnitKeyword, Keyword: v}
	}
	return Length{Value: f, Unit: unit}
}

// Edges 描述 padding 四个方向的 px 值。
type Edges struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Horizontal 返回左右之和。
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical 返回上下之和。
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// ParseEdges parses the 1–4 value CSS shorthand used by padding. Percentages resolve
// against reference.
func ParseEdges(value string, reference float64) Edges {
	parts := strings.Fields(value)
	vals := make([]float64, 0, 4)
	for _, p := range parts {
		px, ok := ParseLength(p).Px(reference)
		if !ok {
			px = 0
		}
		vals = append(vals, px)
	}
	switch len(vals) {
	case 1:
		return Edges{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		return Edges{vals[0], vals[1], vals[0], vals[1]}
	case 3:
		return Edges{vals[0], vals[1], vals[2], vals[1]}
	case 4:
		return Edges{vals[0], vals[1], vals[2], vals[3]}
	default:
		return Edges{}
	}
}

func ceilPx(v float64) int {
	if v <= 0 {
		return 0
	}
	// 抵消浮点误差，避免 200.0000001 变成 201
	return int(math.Ceil(v - 1e-9))
}
