/*
Package shell 保存一次交互会话的状态（输入文本、格子尺寸、字形序列、预览行），
并把用户动作（生成、复制、导出、重置）转换为状态变化与通知。

Shell 不关心通知如何展示：命令行模式用 pterm 打印，终端界面显示为提示条，
chime 子包可以在任意 Notifier 外再包一层提示音。
*/
package shell

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("kween.shell")
}
