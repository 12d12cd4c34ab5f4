/*
Package glyph 负责把用户输入的文本解析为 Kween 字形序列。

解析规则很简单：先整体转为大写；空格生成空白占位条目，A–Z 生成指向字形图片资源的条目，
其它字符（数字、标点、符号）直接丢弃。解析是纯函数，相同输入总是得到相同序列。
*/
package glyph

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'kween.glyph'.
func tracer() tracing.Trace {
	return tracing.Select("kween.glyph")
}
