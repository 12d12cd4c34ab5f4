package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ByLCY/kweenfont/binding"
	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/renderer"
	"github.com/ByLCY/kweenfont/surface"
)

// Artifact 是一次导出的产物。引擎不保留它。
type Artifact struct {
	Filename string
	Path     string // Saver 返回的保存位置；未配置 Saver 时为空
	Width    int    // 像素
	Height   int
	Data     []byte
}

// Engine 负责克隆、覆盖样式、栅格化与保存。
type Engine struct {
	renderer renderer.Renderer
	saver    Saver
	opts     Options
	now      func() time.Time

	mu         sync.Mutex // 同一时间只允许一次导出
	lastMillis int64
}

// NewEngine 创建导出引擎。saver 为 nil 时只返回字节，不落盘。
func NewEngine(r renderer.Renderer, saver Saver, opts Options) *Engine {
	return &Engine{
		renderer: r,
		saver:    saver,
		opts:     opts.withDefaults(),
		now:      time.Now,
	}
}

// WithClock 替换时间来源，用于测试。
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Options 返回生效的导出配置。
func (e *Engine) Options() Options { return e.opts }

// Prepare 克隆预览行并覆盖样式，返回待栅格化的完整行几何。屏幕上的节点树保持不变。
func (e *Engine) Prepare(s *surface.Surface) (*layout.Result, error) {
	if s.Empty() {
		return nil, ErrNothingToExport
	}
	clone := s.Clone()
	if err := applyOverrides(clone, s.Scale()); err != nil {
		return nil, err
	}
	res, err := surface.Measure(clone)
	if err != nil {
		return nil, err
	}
	res.PixelRatio = e.opts.PixelRatio
	res.Background = *e.opts.Background
	return res, nil
}

// Export 把预览行导出为 PNG 并交给 Saver。
// 没有字形时返回 ErrNothingToExport；已有导出进行中时立即返回 ErrBusy；
// 栅格化或保存失败时返回 *CaptureError。
func (e *Engine) Export(ctx context.Context, s *surface.Surface) (*Artifact, error) {
	if s.Empty() {
		return nil, ErrNothingToExport
	}
	if !e.mu.TryLock() {
		return nil, ErrBusy
	}
	defer e.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	if e.renderer == nil {
		return nil, &CaptureError{Stage: "render", Err: fmt.Errorf("renderer 不能为空")}
	}

	res, err := e.Prepare(s)
	if err != nil {
		return nil, &CaptureError{Stage: "layout", Err: err}
	}
	data, err := e.renderer.Render(ctx, res)
	if err != nil {
		tracer().Errorf("export: render %q failed: %v", s.Label(), err)
		return nil, &CaptureError{Stage: "render", Err: err}
	}

	w, h := res.PixelSize()
	art := &Artifact{
		Filename: e.filename(s.Label(), e.stamp()),
		Width:    w,
		Height:   h,
		Data:     data,
	}
	if e.saver != nil {
		path, err := e.saver.Save(ctx, art.Filename, data)
		if err != nil {
			tracer().Errorf("export: save %s failed: %v", art.Filename, err)
			return nil, &CaptureError{Stage: "save", Err: err}
		}
		art.Path = path
	}
	tracer().Infof("export: %s (%dx%d px, %d bytes)", art.Filename, w, h, len(data))
	return art, nil
}

// stamp 返回严格递增的毫秒时间戳，保证同一引擎生成的文件名不重复。调用方需持有 e.mu。
func (e *Engine) stamp() int64 {
	ms := e.now().UnixMilli()
	if ms <= e.lastMillis {
		ms = e.lastMillis + 1
	}
	e.lastMillis = ms
	return ms
}

func (e *Engine) filename(text string, millis int64) string {
	text = strings.NewReplacer("/", "_", `\`, "_").Replace(text)
	return binding.Interpolate(e.opts.Filename, map[string]any{
		"prefix": e.opts.Prefix,
		"text":   text,
		"millis": strconv.FormatInt(millis, 10),
	})
}
