package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px|pt|%|x)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document 是字形集清单文件的根节点。
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'glyphset' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section 是清单中的顶层小节（assets/glyph/surface/export）。
type Section struct {
	Pos     lexer.Position  `parser:"" json:"-"`
	Assets  *AssetsSection  `parser:"  @@"`
	Glyph   *GlyphSection   `parser:"| @@"`
	Surface *SurfaceSection `parser:"| @@"`
	Export  *ExportSection  `parser:"| @@"`
}

// Kind 返回小节类型名称。
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Assets != nil:
		return "assets"
	case s.Glyph != nil:
		return "glyph"
	case s.Surface != nil:
		return "surface"
	case s.Export != nil:
		return "export"
	default:
		return "unknown"
	}
}

// AssetsSection 描述字形图片的资源目录与扩展名。
type AssetsSection struct {
	Block *Block `parser:"'assets' @@"`
}

// GlyphSection 为单个字母覆盖图片资源。
type GlyphSection struct {
	Letter string `parser:"'glyph' @Ident"`
	Block  *Block `parser:"@@"`
}

// SurfaceSection 配置屏幕预览行。
type SurfaceSection struct {
	Block *Block `parser:"'surface' @@"`
}

// ExportSection 配置 PNG 导出。
type ExportSection struct {
	Block *Block `parser:"'export' @@"`
}

// Block is a delimited list of assignments.
type Block struct {
	Assignments []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Value represents a scalar property value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Kind 返回值的词法类型。
func (v *Value) Kind() string {
	switch {
	case v == nil:
		return "none"
	case v.String != nil:
		return "string"
	case v.Number != nil:
		return "number"
	case v.Color != nil:
		return "color"
	case v.Ident != nil:
		return "ident"
	default:
		return "none"
	}
}

// Text 返回值的文本形式；字符串已去掉引号。
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Float 解析数值，允许 px 与 x 后缀。
func (v *Value) Float() (float64, error) {
	if v == nil || v.Number == nil {
		return 0, fmt.Errorf("期望数值，实际为 %s", v.Kind())
	}
	raw := strings.TrimSuffix(strings.TrimSuffix(*v.Number, "px"), "x")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析数值 %q: %w", *v.Number, err)
	}
	return f, nil
}

// Bool 解析 true/false/yes/no/on/off 标识符。
func (v *Value) Bool() (bool, error) {
	if v == nil || v.Ident == nil {
		return false, fmt.Errorf("期望布尔值，实际为 %s", v.Kind())
	}
	switch strings.ToLower(*v.Ident) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("无法解析布尔值 %q", *v.Ident)
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a manifest from an io.Reader. filename is only used in error positions.
func Parse(filename string, r io.Reader) (*Document, error) {
	return documentParser.Parse(filename, r)
}

// ParseString parses manifest content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
