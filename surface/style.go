package surface

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Style 是一组有序的内联 CSS 声明。同名属性以最后一次出现为准。
type Style struct {
	decls []*css.Declaration
}

// NewStyle 创建空样式。
func NewStyle() *Style { return &Style{} }

// ParseStyle 解析 style 属性文本。
func ParseStyle(text string) (*Style, error) {
	if strings.TrimSpace(text) == "" {
		return NewStyle(), nil
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("解析内联样式 %q 失败: %w", text, err)
	}
	return &Style{decls: decls}, nil
}

// Get 返回属性值；属性不存在时 ok 为 false。
func (s *Style) Get(prop string) (string, bool) {
	return s.LastOf(prop)
}

// Value 返回属性值，不存在时返回 def。
func (s *Style) Value(prop, def string) string {
	if v, ok := s.Get(prop); ok {
		return v
	}
	return def
}

// LastOf 返回给定属性中最后声明的那一个的值，用于处理简写与长写的层叠，
// 例如 overflow-x 与 overflow。
func (s *Style) LastOf(props ...string) (string, bool) {
	for i := len(s.decls) - 1; i >= 0; i-- {
		d := s.decls[i]
		for _, p := range props {
			if strings.EqualFold(d.Property, p) {
				return strings.TrimSpace(d.Value), true
			}
		}
	}
	return "", false
}

// Set 删除同名声明后把新声明追加到末尾，保证它在层叠中胜出。
func (s *Style) Set(prop, value string) *Style {
	s.Remove(prop)
	s.decls = append(s.decls, &css.Declaration{Property: prop, Value: value})
	return s
}

// Remove 删除全部同名声明。
func (s *Style) Remove(prop string) *Style {
	kept := s.decls[:0]
	for _, d := range s.decls {
		if !strings.EqualFold(d.Property, prop) {
			kept = append(kept, d)
		}
	}
	s.decls = kept
	return s
}

// Len 返回声明数量。
func (s *Style) Len() int { return len(s.decls) }

func (s *Style) String() string {
	parts := make([]string, 0, len(s.decls))
	for _, d := range s.decls {
		decl := d.Property + ": " + d.Value
		if d.Important {
			decl += " !important"
		}
		parts = append(parts, decl+";")
	}
	return strings.Join(parts, " ")
}

// StyleOf 读取节点的 style 属性。
func StyleOf(n *html.Node) (*Style, error) {
	if n == nil {
		return nil, fmt.Errorf("节点为空")
	}
	return ParseStyle(attr(n, "style"))
}

// SetStyle 把样式写回节点的 style 属性。
func SetStyle(n *html.Node, s *Style) {
	setAttr(n, "style", s.String())
}
