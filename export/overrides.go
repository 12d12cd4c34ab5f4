package export

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/surface"
)

var (
	gridSelector = cascadia.MustCompile(`[data-id="` + surface.GridID + `"]`)
	tileSelector = cascadia.MustCompile(`[data-id="` + surface.GridID + `"] > div.tile`)
)

// gridOverrides 让容器按内容宽度完整展开。
var gridOverrides = [][2]string{
	{"width", "max-content"},
	{"height", "auto"},
	{"min-height", "0"},
	{"padding", "0"},
	{"overflow", "visible"},
	{"flex-wrap", "nowrap"},
	{"gap", "0"},
}

// applyOverrides 在克隆树上覆盖样式：格子恢复 scale 宽度且不再收缩。
func applyOverrides(root *html.Node, scale layout.Scale) error {
	grid := gridSelector.MatchFirst(root)
	if grid == nil {
		return fmt.Errorf("克隆树中找不到 data-id=%q 的容器", surface.GridID)
	}
	st, err := surface.StyleOf(grid)
	if err != nil {
		return err
	}
	for _, kv := range gridOverrides {
		st.Set(kv[0], kv[1])
	}
	surface.SetStyle(grid, st)

	width := layout.Px(scale.Px()).String()
	for _, tile := range tileSelector.MatchAll(root) {
		ts, err := surface.StyleOf(tile)
		if err != nil {
			return err
		}
		surface.SetStyle(tile, ts.
			Set("width", width).
			Set("flex-shrink", "0").
			Set("max-width", "none"))
	}
	return nil
}
