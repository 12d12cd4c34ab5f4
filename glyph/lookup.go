package glyph

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

const (
	// DefaultRoot 是字形图片的默认资源目录。
	DefaultRoot = "kweenfont"
	// DefaultExt 是字形图片的默认扩展名。
	DefaultExt = "jpg"
)

// Lookup 把单个大写字母映射为图片资源位置。
type Lookup interface {
	Path(letter rune) (string, bool)
}

// Table 按约定 <root>/<LETTER>.<ext> 生成资源路径，并允许逐个字母覆盖。
type Table struct {
	Root      string
	Ext       string
	overrides map[rune]string
}

var _ Lookup = (*Table)(nil)

// DefaultTable 返回 kweenfont/<LETTER>.jpg 约定的资源表。
func DefaultTable() *Table {
	return NewTable(DefaultRoot, DefaultExt)
}

// NewTable 创建资源表，空值回落到默认 root/ext。
func NewTable(root, ext string) *Table {
	if root == "" {
		root = DefaultRoot
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExt
	}
	return &Table{Root: root, Ext: ext, overrides: map[rune]string{}}
}

// Override 为某个字母指定单独的资源位置。
func (t *Table) Override(letter string, src string) error {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return fmt.Errorf("字形 %q 不是 A–Z 中的单个字母", letter)
	}
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("字形 %s 的 src 不能为空", letter)
	}
	t.overrides[rune(letter[0])] = src
	return nil
}

// Overrides 返回已覆盖的字母（按字母序）。
func (t *Table) Overrides() []rune {
	out := make([]rune, 0, len(t.overrides))
	for r := range t.overrides {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Path 实现 Lookup。
func (t *Table) Path(letter rune) (string, bool) {
	if letter < 'A' || letter > 'Z' {
		return "", false
	}
	if src, ok := t.overrides[letter]; ok {
		return src, true
	}
	return path.Join(t.Root, string(letter)+"."+t.Ext), true
}

// Alphabet 返回 A–Z 全部字母的资源路径，供启动时检查资源是否齐全。
func (t *Table) Alphabet() map[rune]string {
	out := make(map[rune]string, 26)
	for r := 'A'; r <= 'Z'; r++ {
		out[r], _ = t.Path(r)
	}
	return out
}
