package surface

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ByLCY/kweenfont/glyph"
	"github.com/ByLCY/kweenfont/layout"
)

// GridID 是字形容器的 data-id。
const GridID = "font-grid"

// PlaceholderURI 是图片加载失败时替换使用的“未知字符”图形。
const PlaceholderURI = `data:image/svg+xml,%3Csvg xmlns=%22http://www.w3.org/2000/svg%22 viewBox=%220 0 100 100%22%3E%3Crect fill=%22%23f3f4f6%22 width=%22100%22 height=%22100%22/%3E%3Ctext x=%2250%22 y=%2250%22 font-size=%2240%22 fill=%22%23999%22 text-anchor=%22middle%22 dominant-baseline=%22middle%22%3E?%3C/text%3E%3C/svg%3E`

// Options 配置预览行的屏幕呈现，单位均为 px。
type Options struct {
	ViewportWidth float64 `json:"viewportWidth"` // <=0 表示不限宽
	Gap           float64 `json:"gap"`
	PaddingY      float64 `json:"paddingY"`
	MinHeight     float64 `json:"minHeight"`
	MinTileWidth  float64 `json:"minTileWidth"`
}

// DefaultOptions 返回与网页预览一致的默认值。
func DefaultOptions() Options {
	return Options{
		ViewportWidth: 0,
		Gap:           4,
		PaddingY:      16,
		MinHeight:     200,
		MinTileWidth:  float64(layout.MinScale),
	}
}

// Surface 是一次生成对应的预览行。创建后不再修改；缩放变化时应重新 Render。
type Surface struct {
	root  *html.Node
	seq   glyph.Sequence
	label string
	scale layout.Scale
	opts  Options
}

// Render 为字形序列构建预览行节点树。
func Render(seq glyph.Sequence, scale layout.Scale, opts Options) *Surface {
	scale = layout.ClampScale(int(scale))
	root := element(atom.Div, attribute("class", "surface"))
	grid := element(atom.Div,
		attribute("data-id", GridID),
		attribute("data-text", seq.Text()),
		attribute("data-scale", strconv.Itoa(int(scale))),
	)
	SetStyle(grid, gridStyle(opts))
	for i, e := range seq {
		grid.AppendChild(tileNode(i, e, scale, opts))
	}
	root.AppendChild(grid)
	tracer().Debugf("surface: rendered %d tile(s) at %dpx", len(seq), scale)
	return &Surface{
		root:  root,
		seq:   append(glyph.Sequence(nil), seq...),
		scale: scale,
		opts:  opts,
	}
}

func gridStyle(opts Options) *Style {
	st := NewStyle().
		Set("display", "flex").
		Set("flex-wrap", "nowrap").
		Set("justify-content", "center").
		Set("align-items", "center").
		Set("gap", layout.Px(opts.Gap).String()).
		Set("overflow-x", "auto").
		Set("min-height", layout.Px(opts.MinHeight).String()).
		Set("padding", layout.Px(opts.PaddingY).String()+" 0")
	if opts.ViewportWidth > 0 {
		st.Set("width", layout.Px(opts.ViewportWidth).String())
	} else {
		st.Set("width", "auto")
	}
	return st
}

func tileNode(i int, e glyph.Entry, scale layout.Scale, opts Options) *html.Node {
	tile := element(atom.Div,
		attribute("class", "tile"),
		attribute("data-index", strconv.Itoa(i)),
		attribute("data-char", string(e.Char)),
	)
	SetStyle(tile, NewStyle().
		Set("width", layout.Px(scale.Px()).String()).
		Set("flex-shrink", "1").
		Set("max-width", "100%").
		Set("min-width", layout.Px(opts.MinTileWidth).String()))
	if e.Blank() {
		tile.AppendChild(element(atom.Div,
			attribute("class", "blank"),
			attribute("style", "width: 100%; aspect-ratio: 1;"),
		))
		return tile
	}
	tile.AppendChild(element(atom.Img,
		attribute("src", e.Src),
		attribute("alt", string(e.Char)),
		attribute("style", "width: 100%; aspect-ratio: 1; object-fit: cover;"),
		attribute("onerror", "this.onerror=null;this.src='"+PlaceholderURI+"'"),
	))
	return tile
}

// Empty 报告预览行是否没有任何格子。nil 视为空。
func (s *Surface) Empty() bool { return s == nil || len(s.seq) == 0 }

// Len 返回格子数量。
func (s *Surface) Len() int {
	if s == nil {
		return 0
	}
	return len(s.seq)
}

// Scale 返回格子边长。
func (s *Surface) Scale() layout.Scale { return s.scale }

// Options 返回构建时使用的选项。
func (s *Surface) Options() Options { return s.opts }

// Text 返回生成这一行时的规范化文本。
func (s *Surface) Text() string { return s.seq.Text() }

// WithLabel 返回带有输入文本标签的副本，节点树与原预览行共享（二者都不会再被修改）。
// 标签用于导出文件名，可以包含被解析丢弃的字符。
func (s *Surface) WithLabel(label string) *Surface {
	c := *s
	c.label = label
	return &c
}

// Label 返回输入文本标签，未设置时为 Text()。
func (s *Surface) Label() string {
	if s.label != "" {
		return s.label
	}
	return s.Text()
}

// Sequence 返回字形序列的副本。
func (s *Surface) Sequence() glyph.Sequence {
	return append(glyph.Sequence(nil), s.seq...)
}

// Clone 返回节点树的深拷贝；对克隆树的任何修改都不会影响屏幕上的预览。
func (s *Surface) Clone() *html.Node { return CloneTree(s.root) }

// Layout 测量屏幕上的（可能被裁剪的）预览行。
func (s *Surface) Layout() (*layout.Result, error) { return Measure(s.root) }

// WriteHTML 输出预览行的 HTML 片段。
func (s *Surface) WriteHTML(w io.Writer) error {
	if err := html.Render(w, s.root); err != nil {
		return fmt.Errorf("输出预览 HTML 失败: %w", err)
	}
	return nil
}
