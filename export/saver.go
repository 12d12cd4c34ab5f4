package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Saver 负责把导出的字节交给用户（写文件、上传等），返回保存位置。
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// SaverFunc 让普通函数实现 Saver。
type SaverFunc func(ctx context.Context, filename string, data []byte) (string, error)

// Save 实现 Saver。
func (f SaverFunc) Save(ctx context.Context, filename string, data []byte) (string, error) {
	return f(ctx, filename, data)
}

// DirSaver 把文件写入目录，目录不存在时自动创建。
type DirSaver struct {
	Dir string
}

// Save 实现 Saver。
func (d DirSaver) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	return path, nil
}
