// Package config 把字形集清单（dsl）映射为各组件的配置，未出现的项使用默认值。
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/kweenfont/dsl"
	"github.com/ByLCY/kweenfont/export"
	"github.com/ByLCY/kweenfont/glyph"
	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/surface"
)

// Config 汇总清单中的全部配置。
type Config struct {
	Name    string
	Version string
	Table   *glyph.Table
	Surface surface.Options
	Export  export.Options
}

// Default 返回不读取任何清单时的配置。
func Default() *Config {
	return &Config{
		Name:    "Kween",
		Table:   glyph.DefaultTable(),
		Surface: surface.DefaultOptions(),
		Export:  export.DefaultOptions(),
	}
}

// Load 读取并解析清单文件。
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开清单文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(path, file)
	if err != nil {
		return nil, fmt.Errorf("解析清单失败: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument 把清单语法树转换为配置。未知的键会返回带位置的错误。
func FromDocument(doc *dsl.Document) (*Config, error) {
	if doc == nil {
		return nil, fmt.Errorf("清单为空")
	}
	cfg := Default()
	cfg.Name, cfg.Version = doc.Name, doc.Version

	var (
		root, ext string
		glyphs    []*dsl.GlyphSection
	)
	for _, sec := range doc.Sections {
		var err error
		switch {
		case sec.Assets != nil:
			err = eachAssignment(sec.Assets.Block, "assets", func(a *dsl.Assignment) error {
				switch a.Key {
				case "root":
					root = a.Value.Text()
				case "ext":
					ext = a.Value.Text()
				default:
					return unknownKey(a)
				}
				return nil
			})
		case sec.Glyph != nil:
			glyphs = append(glyphs, sec.Glyph)
		case sec.Surface != nil:
			err = eachAssignment(sec.Surface.Block, "surface", func(a *dsl.Assignment) error {
				return applySurface(&cfg.Surface, a)
			})
		case sec.Export != nil:
			err = eachAssignment(sec.Export.Block, "export", func(a *dsl.Assignment) error {
				return applyExport(&cfg.Export, a)
			})
		}
		if err != nil {
			return nil, err
		}
	}

	cfg.Table = glyph.NewTable(root, ext)
	for _, g := range glyphs {
		src := ""
		err := eachAssignment(g.Block, "glyph "+g.Letter, func(a *dsl.Assignment) error {
			if a.Key != "src" {
				return unknownKey(a)
			}
			src = a.Value.Text()
			return nil
		})
		if err != nil {
			return nil, err
		}
		if err := cfg.Table.Override(g.Letter, src); err != nil {
			return nil, fmt.Errorf("glyph %s: %w", g.Letter, err)
		}
	}
	return cfg, nil
}

func applySurface(opts *surface.Options, a *dsl.Assignment) error {
	if a.Key == "viewport" && a.Value.Kind() == "ident" && strings.EqualFold(a.Value.Text(), "auto") {
		opts.ViewportWidth = 0
		return nil
	}
	var target *float64
	switch a.Key {
	case "viewport":
		target = &opts.ViewportWidth
	case "gap":
		target = &opts.Gap
	case "padding-y":
		target = &opts.PaddingY
	case "min-height":
		target = &opts.MinHeight
	case "min-tile":
		target = &opts.MinTileWidth
	default:
		return unknownKey(a)
	}
	v, err := a.Value.Float()
	if err != nil {
		return at(a, err)
	}
	if v < 0 {
		return at(a, fmt.Errorf("%s 不能为负数", a.Key))
	}
	*target = v
	return nil
}

func applyExport(opts *export.Options, a *dsl.Assignment) error {
	switch a.Key {
	case "prefix":
		opts.Prefix = a.Value.Text()
	case "filename":
		opts.Filename = a.Value.Text()
	case "pixel-ratio":
		v, err := a.Value.Float()
		if err != nil {
			return at(a, err)
		}
		if v <= 0 {
			return at(a, fmt.Errorf("pixel-ratio 必须大于 0"))
		}
		opts.PixelRatio = v
	case "background":
		c, err := layout.ParseColor(a.Value.Text())
		if err != nil {
			return at(a, err)
		}
		opts.Background = &c
	default:
		return unknownKey(a)
	}
	return nil
}

func eachAssignment(b *dsl.Block, section string, fn func(*dsl.Assignment) error) error {
	if b == nil {
		return nil
	}
	for _, a := range b.Assignments {
		if err := fn(a); err != nil {
			return fmt.Errorf("%s: %w", section, err)
		}
	}
	return nil
}

func unknownKey(a *dsl.Assignment) error {
	return at(a, fmt.Errorf("未知的配置项 %q", a.Key))
}

func at(a *dsl.Assignment, err error) error {
	return fmt.Errorf("%s: %w", position(a.Pos), err)
}

func position(p lexer.Position) string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
