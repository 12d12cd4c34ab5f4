package export

import "github.com/ByLCY/kweenfont/layout"

const (
	// DefaultPrefix 是导出文件名的默认前缀。
	DefaultPrefix = "kween-font"
	// DefaultFilename 是导出文件名模板，可用字段 prefix、text、millis。
	DefaultFilename = "${prefix}-${text}-${millis}.png"
	// DefaultPixelRatio 是导出时的像素比。
	DefaultPixelRatio = 2.0
)

// Options 配置导出结果。
type Options struct {
	Prefix     string        `json:"prefix"`
	Filename   string        `json:"filename"`
	PixelRatio float64       `json:"pixelRatio"`
	Background *layout.Color `json:"background,omitempty"` // nil 表示白色
}

// DefaultOptions 返回 2 倍像素比、白色背景的默认配置。
func DefaultOptions() Options {
	white := layout.White
	return Options{
		Prefix:     DefaultPrefix,
		Filename:   DefaultFilename,
		PixelRatio: DefaultPixelRatio,
		Background: &white,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Prefix == "" {
		o.Prefix = def.Prefix
	}
	if o.Filename == "" {
		o.Filename = def.Filename
	}
	if o.PixelRatio <= 0 {
		o.PixelRatio = def.PixelRatio
	}
	if o.Background == nil {
		o.Background = def.Background
	}
	return o
}
