package layout

// 该文件定义预览行的测量结果，供渲染、导出与调试 JSON 共用。坐标与尺寸单位均为 CSS px。

// Result 保存一次测量后的字形行几何信息。
type Result struct {
	// Width/Height 为可见区域尺寸；预览行受视口限制时 Width 小于 ContentWidth。
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	ContentWidth  float64 `json:"contentWidth"`
	ContentHeight float64 `json:"contentHeight"`
	Clipped       bool    `json:"clipped"`
	Scale         Scale   `json:"scale"`
	// PixelRatio 为栅格化时每 px 对应的像素数，<=0 按 1 处理。
	PixelRatio float64 `json:"pixelRatio"`
	Background Color   `json:"background"`
	Tiles      []Tile  `json:"tiles"`
}

// Tile 表示一个已经排好坐标的字形格子。
type Tile struct {
	Index  int     `json:"index"`
	Char   string  `json:"char"`
	Src    string  `json:"src,omitempty"`
	Blank  bool    `json:"blank,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right 返回格子右边缘的横坐标。
func (t Tile) Right() float64 { return t.X + t.Width }

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// White 是导出图片的默认背景色。
var White = Color{R: 255, G: 255, B: 255}

// Ratio 返回有效的像素比。
func (r *Result) Ratio() float64 {
	if r == nil || r.PixelRatio <= 0 {
		return 1
	}
	return r.PixelRatio
}

// PixelSize 返回按像素比放大后的栅格尺寸（向上取整）。
func (r *Result) PixelSize() (int, int) {
	ratio := r.Ratio()
	return ceilPx(r.Width * ratio), ceilPx(r.Height * ratio)
}

// Empty 报告结果中是否没有任何格子。
func (r *Result) Empty() bool { return r == nil || len(r.Tiles) == 0 }
