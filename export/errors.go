package export

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToExport 表示当前没有生成任何字形。
	ErrNothingToExport = errors.New("export: nothing to export")
	// ErrBusy 表示已有导出正在进行。
	ErrBusy = errors.New("export: another export is in progress")
)

// CaptureError 包装栅格化或保存阶段的失败。
type CaptureError struct {
	Stage string
	Err   error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("导出图片失败（%s）: %v", e.Stage, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }
