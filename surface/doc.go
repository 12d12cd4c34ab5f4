/*
Package surface 构建字形预览行（Layout Surface）。

预览行以 golang.org/x/net/html 节点树表示，结构与网页预览一致：一个 data-id="font-grid"
的横向 flex 容器，内部每个字形条目对应一个 div.tile。样式全部写在内联 style 中，
测量（Measure）只读取这些声明，因此对克隆树改写样式即可得到与屏幕显示无关的布局。
*/
package surface

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'kween.surface'.
func tracer() tracing.Trace {
	return tracing.Select("kween.surface")
}
