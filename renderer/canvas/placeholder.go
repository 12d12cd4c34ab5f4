package canvasrenderer

import (
	"fmt"
	"image"
	stddraw "image/draw"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/ByLCY/kweenfont/fonts"
)

const (
	placeholderSide     = 100
	placeholderFontSize = 40
	placeholderFill     = "#f3f4f6"
	placeholderInk      = "#999999"
)

// placeholderImage 返回“未知字符”占位图：浅灰底色上居中的灰色问号。只绘制一次。
func (r *Renderer) placeholderImage() (image.Image, error) {
	r.placeholderOnce.Do(func() {
		r.placeholder, r.placeholderErr = drawPlaceholder(placeholderSide)
	})
	return r.placeholder, r.placeholderErr
}

func drawPlaceholder(side int) (image.Image, error) {
	src, err := text.NewFontSource(fonts.Regular())
	if err != nil {
		return nil, fmt.Errorf("加载占位图字体失败: %w", err)
	}
	defer src.Close()

	dc := gg.NewContext(side, side)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(placeholderFill))
	dc.SetHexColor(placeholderInk)
	dc.SetFont(src.Face(placeholderFontSize * float64(side) / 100))
	dc.DrawStringAnchored("?", float64(side)/2, float64(side)/2, 0.5, 0.5)

	out := image.NewRGBA(image.Rect(0, 0, side, side))
	stddraw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, stddraw.Src)
	return out, nil
}
