package surface

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ByLCY/kweenfont/layout"
)

const epsilon = 1e-6

type tileBox struct {
	node   *html.Node
	base   float64
	min    float64
	shrink float64
	width  float64
}

// Measure 按单行 flex 规则测量节点树中的 font-grid 容器。
//
// 支持的声明：容器的 width（px 或 auto/max-content）、padding、gap、min-height、height、
// overflow/overflow-x、justify-content；格子的 width、max-width、min-width、flex-shrink。
// 格子始终为正方形。容器宽度确定且内容超宽时，可收缩的格子按基准宽度等比收缩，
// 但不低于 min-width；仍放不下的部分由滚动承担（Clipped）。
func Measure(root *html.Node) (*layout.Result, error) {
	grid := Grid(root)
	if grid == nil {
		return nil, fmt.Errorf("找不到 data-id=%q 的容器节点", GridID)
	}
	gs, err := StyleOf(grid)
	if err != nil {
		return nil, err
	}

	scale := layout.DefaultScale
	if v, err := strconv.Atoi(attr(grid, "data-scale")); err == nil {
		scale = layout.ClampScale(v)
	}

	containerW, definite := layout.ParseLength(gs.Value("width", "auto")).Px(math.Inf(1))
	if !definite {
		containerW = math.Inf(1)
	}
	pad := layout.ParseEdges(gs.Value("padding", "0"), finiteOr(containerW, 0))
	gap, _ := layout.ParseLength(gs.Value("gap", "0")).Px(0)
	minH, _ := layout.ParseLength(gs.Value("min-height", "0")).Px(0)
	overflow, _ := gs.LastOf("overflow", "overflow-x")
	overflow = strings.ToLower(strings.TrimSpace(overflow))
	if overflow == "" {
		overflow = "visible"
	}
	if wrap := gs.Value("flex-wrap", "nowrap"); wrap != "nowrap" {
		tracer().Infof("surface: flex-wrap %q ignored, glyph row never wraps", wrap)
	}
	inner := containerW - pad.Horizontal()

	nodes := Tiles(grid)
	boxes := make([]tileBox, 0, len(nodes))
	for _, n := range nodes {
		box, err := measureTile(n, scale, inner)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, box)
	}

	total := gaps(gap, len(boxes))
	for _, b := range boxes {
		total += b.base
	}
	if definite && total > inner+epsilon {
		shrinkToFit(boxes, total-inner)
	}

	content := gaps(gap, len(boxes))
	rowH := 0.0
	for _, b := range boxes {
		content += b.width
		rowH = math.Max(rowH, b.width)
	}
	natural := pad.Left + content + pad.Right

	visibleW := natural
	if definite {
		visibleW = containerW
	}
	scrollW := math.Max(visibleW, natural)
	clipped := false
	if overflow == "visible" {
		visibleW = scrollW
	} else {
		clipped = scrollW > visibleW+epsilon
	}

	height := math.Max(minH, rowH+pad.Vertical())
	if h, ok := layout.ParseLength(gs.Value("height", "auto")).Px(0); ok {
		height = h
	}

	x := pad.Left
	if definite && content < inner && gs.Value("justify-content", "flex-start") == "center" {
		x += (inner - content) / 2
	}
	innerH := height - pad.Vertical()

	res := &layout.Result{
		Width:         visibleW,
		Height:        height,
		ContentWidth:  scrollW,
		ContentHeight: height,
		Clipped:       clipped,
		Scale:         scale,
		PixelRatio:    1,
		Background:    layout.White,
		Tiles:         make([]layout.Tile, 0, len(boxes)),
	}
	for i, b := range boxes {
		tile := layout.Tile{
			Index:  i,
			Char:   attr(b.node, "data-char"),
			X:      x,
			Y:      pad.Top + (innerH-b.width)/2,
			Width:  b.width,
			Height: b.width,
		}
		if img := imgSelector.MatchFirst(b.node); img != nil {
			tile.Src = attr(img, "src")
		} else {
			tile.Blank = true
		}
		res.Tiles = append(res.Tiles, tile)
		x += b.width + gap
	}
	tracer().Debugf("surface: measured %d tile(s), visible %.1fpx of %.1fpx (clipped=%v)",
		len(res.Tiles), res.Width, res.ContentWidth, res.Clipped)
	return res, nil
}

func measureTile(n *html.Node, scale layout.Scale, inner float64) (tileBox, error) {
	st, err := StyleOf(n)
	if err != nil {
		return tileBox{}, err
	}
	box := tileBox{node: n, shrink: 1}
	w, ok := layout.ParseLength(st.Value("width", "auto")).Px(inner)
	if !ok {
		w = scale.Px()
	}
	if maxW, ok := layout.ParseLength(st.Value("max-width", "none")).Px(inner); ok && w > maxW {
		w = maxW
	}
	box.base = math.Max(w, 0)
	if minW, ok := layout.ParseLength(st.Value("min-width", "0")).Px(inner); ok {
		box.min = math.Min(math.Max(minW, 0), box.base)
	}
	if v, ok := st.Get("flex-shrink"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return tileBox{}, fmt.Errorf("flex-shrink 值 %q 无法解析: %w", v, err)
		}
		box.shrink = math.Max(f, 0)
	}
	box.width = box.base
	return box, nil
}

// shrinkToFit 按 base*shrink 的权重分摊超出的宽度。
func shrinkToFit(boxes []tileBox, deficit float64) {
	weight := 0.0
	for _, b := range boxes {
		weight += b.base * b.shrink
	}
	if weight <= 0 {
		return
	}
	for i := range boxes {
		b := &boxes[i]
		b.width = math.Max(b.base-deficit*b.base*b.shrink/weight, b.min)
	}
}

func gaps(gap float64, n int) float64 {
	if n <= 1 {
		return 0
	}
	return gap * float64(n-1)
}

func finiteOr(v, def float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return def
	}
	return v
}
