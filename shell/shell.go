package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ByLCY/kweenfont/export"
	"github.com/ByLCY/kweenfont/glyph"
	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/surface"
)

// DefaultText 是启动与重置后的输入文本。
const DefaultText = "NACHT"

// Resolver 把文本解析为字形序列，*glyph.Resolver 满足该接口。
type Resolver interface {
	Resolve(text string) (glyph.Sequence, error)
}

// Exporter 导出预览行，*export.Engine 满足该接口。
type Exporter interface {
	Export(ctx context.Context, s *surface.Surface) (*export.Artifact, error)
}

// Options 组装 Shell 的依赖。除 Exporter 外均可为空。
type Options struct {
	Resolver  Resolver
	Exporter  Exporter
	Notifier  Notifier
	Clipboard Clipboard
	Surface   surface.Options
}

// Shell 是交互会话的状态对象，可被多个 goroutine 使用。
type Shell struct {
	opts Options

	mu    sync.Mutex
	text  string
	scale layout.Scale
	seq   glyph.Sequence
	label string // 生成时的输入文本（大写），用于导出文件名
	surf  *surface.Surface
}

// New 创建会话，初始文本为 NACHT，尺寸为默认值。
func New(opts Options) *Shell {
	if opts.Resolver == nil {
		opts.Resolver = glyph.NewResolver(nil)
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(Notification) {})
	}
	return &Shell{
		opts:  opts,
		text:  DefaultText,
		scale: layout.DefaultScale,
	}
}

// Text 返回当前输入文本。
func (s *Shell) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Scale 返回当前格子尺寸。
func (s *Shell) Scale() layout.Scale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

// Sequence 返回最近一次生成的序列（副本）。
func (s *Shell) Sequence() glyph.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(glyph.Sequence(nil), s.seq...)
}

// Surface 返回当前预览行；尚未生成时为 nil。
func (s *Shell) Surface() *surface.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surf
}

// SetText 更新输入文本，不会触发生成。
func (s *Shell) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// SetScale 设置格子尺寸（越界截断），并按新尺寸重建当前预览行。
func (s *Shell) SetScale(v int) layout.Scale {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = layout.ClampScale(v)
	if len(s.seq) > 0 {
		s.surf = s.render()
	}
	return s.scale
}

// render 按当前序列与尺寸重建预览行。调用方需持有 s.mu。
func (s *Shell) render() *surface.Surface {
	return surface.Render(s.seq, s.scale, s.opts.Surface).WithLabel(s.label)
}

// Generate 解析当前文本并替换序列与预览行。
// 输入为空时给出警告并返回 *glyph.EmptyInputError，原有序列保持不变。
// 文本中没有可显示的字符时清空预览行，不发出通知。
func (s *Shell) Generate() error {
	s.mu.Lock()
	seq, err := s.opts.Resolver.Resolve(s.text)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, glyph.ErrEmptyInput) {
			s.notify(noteEmptyInput)
		} else {
			tracer().Errorf("shell: generate failed: %v", err)
			s.notify(noteGenFailed)
		}
		return err
	}
	s.seq = seq
	label := glyph.Normalize(s.text)
	s.label = label
	if len(seq) == 0 {
		s.surf = nil
		s.mu.Unlock()
		tracer().Debugf("shell: nothing to generate for %q", label)
		return nil
	}
	s.surf = s.render()
	s.mu.Unlock()

	tracer().Infof("shell: generated %d entries for %q", len(seq), seq.Text())
	s.notify(Notification{
		Severity:    Success,
		Title:       "Success!",
		Message:     fmt.Sprintf("Generated %d font characters", len(seq)),
		AutoDismiss: flash,
	})
	return nil
}

// Copy 把大写后的输入文本放入剪贴板。
func (s *Shell) Copy() error {
	text := strings.ToUpper(s.Text())
	if s.opts.Clipboard == nil {
		return fmt.Errorf("未配置剪贴板")
	}
	if err := s.opts.Clipboard.Copy(text); err != nil {
		tracer().Errorf("shell: copy failed: %v", err)
		return fmt.Errorf("写入剪贴板失败: %w", err)
	}
	s.notify(noteCopied)
	return nil
}

// Export 导出当前预览行。另一次导出进行中时返回 export.ErrBusy 且不发出通知。
func (s *Shell) Export(ctx context.Context) (*export.Artifact, error) {
	surf := s.Surface()
	if surf.Empty() {
		s.notify(noteNoImages)
		return nil, export.ErrNothingToExport
	}
	if s.opts.Exporter == nil {
		s.notify(noteExportFail)
		return nil, fmt.Errorf("未配置导出引擎")
	}
	art, err := s.opts.Exporter.Export(ctx, surf)
	switch {
	case errors.Is(err, export.ErrBusy):
		tracer().Debugf("shell: export already running, ignored")
		return nil, err
	case errors.Is(err, export.ErrNothingToExport):
		s.notify(noteNoImages)
		return nil, err
	case err != nil:
		s.notify(noteExportFail)
		return nil, err
	}
	s.notify(noteDownloaded)
	return art, nil
}

// Reset 恢复初始文本与尺寸，并清空序列。
func (s *Shell) Reset() {
	s.mu.Lock()
	s.text = DefaultText
	s.scale = layout.DefaultScale
	s.seq = nil
	s.label = ""
	s.surf = nil
	s.mu.Unlock()
	s.notify(noteReset)
}

func (s *Shell) notify(n Notification) {
	tracer().Debugf("shell: notify %s %q", n.Severity, n.Title)
	s.opts.Notifier.Notify(n)
}
