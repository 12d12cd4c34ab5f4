package glyph

import (
	"errors"
	"fmt"
	"strings"
)

// Space 是空白占位条目使用的字符。
const Space = ' '

// ErrEmptyInput 用于 errors.Is 判断输入为空或只含空白的情况。
var ErrEmptyInput = errors.New("glyph: empty input")

// EmptyInputError 表示输入为空或只含空白。
type EmptyInputError struct {
	Input string
}

func (e *EmptyInputError) Error() string {
	return "输入为空，无法生成字形"
}

// Is 让 errors.Is(err, ErrEmptyInput) 成立。
func (e *EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

// Entry 是序列中的一个字形条目：字母图片引用，或空白占位。
// Src 为空当且仅当 Char 为空格。
type Entry struct {
	Char rune   `json:"char"`
	Src  string `json:"src"`
}

// Blank 报告该条目是否为空白占位。
func (e Entry) Blank() bool { return e.Char == Space }

func (e Entry) String() string {
	if e.Blank() {
		return "<blank>"
	}
	return string(e.Char)
}

// Sequence 按阅读顺序保存解析结果。每次生成都会整体替换，不做原地修改。
type Sequence []Entry

// Letters 返回序列中字母条目的数量（不含空白）。
func (s Sequence) Letters() int {
	n := 0
	for _, e := range s {
		if !e.Blank() {
			n++
		}
	}
	return n
}

// Text 还原规范化后的文本：大写字母与空格，已丢弃不支持的字符。
func (s Sequence) Text() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, e := range s {
		b.WriteRune(e.Char)
	}
	return b.String()
}

// Normalize 返回参与解析的规范化文本（整体大写）。
func Normalize(text string) string {
	return strings.ToUpper(text)
}

// Resolver 依据 Lookup 把文本解析为字形序列。
type Resolver struct {
	lookup Lookup
}

// NewResolver 创建解析器；lookup 为 nil 时使用默认资源表。
func NewResolver(lookup Lookup) *Resolver {
	if lookup == nil {
		lookup = DefaultTable()
	}
	return &Resolver{lookup: lookup}
}

// Resolve 使用默认资源表解析文本。
func Resolve(text string) (Sequence, error) {
	return NewResolver(nil).Resolve(text)
}

// Resolve 把文本解析为字形序列。
// 空白输入返回 *EmptyInputError；只含不支持字符的输入（如 "123"）得到空序列，不视为错误。
func (r *Resolver) Resolve(text string) (Sequence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyInputError{Input: text}
	}
	upper := Normalize(text)
	seq := make(Sequence, 0, len(upper))
	dropped := 0
	for _, ch := range upper {
		switch {
		case ch == Space:
			seq = append(seq, Entry{Char: Space})
		case ch >= 'A' && ch <= 'Z':
			src, ok := r.lookup.Path(ch)
			if !ok || src == "" {
				return nil, fmt.Errorf("字母 %c 缺少字形资源", ch)
			}
			seq = append(seq, Entry{Char: ch, Src: src})
		default:
			dropped++
		}
	}
	if dropped > 0 {
		tracer().Debugf("resolve: dropped %d unsupported character(s) from %q", dropped, text)
	}
	return seq, nil
}
