package canvasrenderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/renderer"
)

func tracer() tracing.Trace {
	return tracing.Select("kween.render")
}

// Renderer draws measured glyph rows via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir string

	// injected resources
	imageBlobs map[string][]byte // by unique name

	onFallback func(tile layout.Tile, err error)

	imgMu  sync.Mutex
	images map[string]decoded // by tile src

	placeholderOnce sync.Once
	placeholder     image.Image
	placeholderErr  error
}

var _ renderer.Renderer = (*Renderer)(nil)

type decoded struct {
	img image.Image
	err error
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Images  map[string]Resource // built-in images accessible via built-in:<name>
	// OnFallback is called when a tile is drawn with the placeholder.
	OnFallback func(tile layout.Tile, err error)
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:    opts.BaseDir,
		imageBlobs: map[string][]byte{},
		onFallback: opts.OnFallback,
		images:     map[string]decoded{},
	}
	for name, res := range opts.Images {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.imageBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败时在使用处按占位图处理
			if len(data) > 0 {
				r.imageBlobs[name] = data
			}
		}
	}
	return r
}

// Render rasterizes the row into PNG bytes at the result's pixel ratio.
func (r *Renderer) Render(ctx context.Context, result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %.1fx%.1f", result.Width, result.Height)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ratio := result.Ratio()

	c := canvas.New(result.Width, result.Height)
	cctx := canvas.NewContext(c)
	cctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	cctx.SetFillColor(colorFromLayout(result.Background))
	cctx.SetStrokeColor(canvas.Transparent)
	cctx.DrawPath(0, 0, canvas.Rectangle(result.Width, result.Height))

	for _, tile := range result.Tiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if tile.Blank || tile.Width <= 0 {
			continue
		}
		if err := r.drawTile(cctx, tile, ratio); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := renderers.PNG(canvas.DPMM(ratio))(&buf, c); err != nil {
		return nil, fmt.Errorf("写入 PNG 失败: %w", err)
	}
	w, h := result.PixelSize()
	tracer().Debugf("render: %d tile(s) into %dx%d px", len(result.Tiles), w, h)
	return buf.Bytes(), nil
}

func (r *Renderer) drawTile(ctx *canvas.Context, tile layout.Tile, ratio float64) error {
	src, err := r.source(tile.Src)
	if err != nil {
		tracer().Infof("render: tile %d (%s) falls back to placeholder: %v", tile.Index, tile.Char, err)
		if r.onFallback != nil {
			r.onFallback(tile, err)
		}
		src, err = r.placeholderImage()
		if err != nil {
			return fmt.Errorf("绘制占位图失败: %w", err)
		}
	}
	side := int(math.Ceil(tile.Width*ratio - 1e-9))
	if side <= 0 {
		return nil
	}
	ctx.DrawImage(tile.X, tile.Y, coverSquare(src, side), canvas.DPMM(ratio))
	return nil
}

// source 返回解码后的原图；结果（包括失败）按 src 缓存。
func (r *Renderer) source(src string) (image.Image, error) {
	r.imgMu.Lock()
	defer r.imgMu.Unlock()
	if d, ok := r.images[src]; ok {
		return d.img, d.err
	}
	img, err := r.load(src)
	r.images[src] = decoded{img: img, err: err}
	return img, err
}

func (r *Renderer) load(orig string) (image.Image, error) {
	if orig == "" {
		return nil, fmt.Errorf("图片路径为空")
	}
	// built-in resources take precedence
	if strings.HasPrefix(orig, "built-in:") || strings.HasPrefix(orig, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(orig, "built-in:"), "builtin:")
		blob, ok := r.imageBlobs[name]
		if !ok {
			return nil, fmt.Errorf("找不到内置图片资源 built-in:%s", name)
		}
		img, _, err := image.Decode(bytes.NewReader(blob))
		if err != nil {
			return nil, fmt.Errorf("解码内置图片 built-in:%s 失败: %w", name, err)
		}
		return img, nil
	}
	path := filepath.FromSlash(orig)
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", orig, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", orig, err)
	}
	return img, nil
}

// coverSquare 居中裁剪为正方形后缩放到 side×side 像素（object-fit: cover）。
func coverSquare(src image.Image, side int) image.Image {
	b := src.Bounds()
	crop := b
	if b.Dx() > b.Dy() {
		off := (b.Dx() - b.Dy()) / 2
		crop = image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+b.Dy(), b.Max.Y)
	} else if b.Dy() > b.Dx() {
		off := (b.Dy() - b.Dx()) / 2
		crop = image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+b.Dx())
	}
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
