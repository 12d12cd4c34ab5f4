package renderer

import (
	"context"

	"github.com/ByLCY/kweenfont/layout"
)

// Renderer 将测量后的字形行栅格化为最终文件（PNG）。
// Render 返回编码后的字节，ctx 取消时应尽快返回 ctx.Err()。
type Renderer interface {
	Render(ctx context.Context, result *layout.Result) ([]byte, error)
}
