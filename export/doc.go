/*
Package export 把屏幕上的预览行导出为 PNG。

导出不直接使用屏幕上的节点树：先深拷贝，再在拷贝上覆盖样式，使整行按原始尺寸完整展开
（不收缩、不裁剪、无间距），然后以 2 倍像素比在白色背景上栅格化。屏幕上的预览不受影响。
同一时间只允许一次导出。
*/
package export

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("kween.export")
}
