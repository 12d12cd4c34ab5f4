// Package tui 是基于 tcell 的交互终端界面：输入行、尺寸调节、预览行与提示条。
package tui

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ByLCY/kweenfont/export"
	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/shell"
)

func tracer() tracing.Trace {
	return tracing.Select("kween.tui")
}

// PxPerColumn 是预览行中一个终端列对应的 px 宽度。
const PxPerColumn = 10.0

const (
	stepSmall = 5
	stepLarge = 20
	rowTop    = 7
)

type exportDone struct {
	art *export.Artifact
	err error
}

type quitRequest struct{}

type toast struct {
	note  shell.Notification
	until time.Time // 零值表示不会自动消失
}

// App 把按键转换为 Shell 操作并绘制界面。App 同时实现 shell.Notifier 与 shell.Clipboard。
type App struct {
	screen tcell.Screen
	shell  *shell.Shell
	exists func(src string) bool
	now    func() time.Time

	ctx context.Context
	wg  sync.WaitGroup

	mu     sync.Mutex
	input  []rune
	toast  *toast
	status string
}

var (
	_ shell.Notifier  = (*App)(nil)
	_ shell.Clipboard = (*App)(nil)
)

// New 创建界面。screen 需由调用方 Init/Fini。
func New(screen tcell.Screen) *App {
	return &App{
		screen: screen,
		now:    time.Now,
		ctx:    context.Background(),
	}
}

// Attach 绑定会话；输入行从会话的当前文本开始。
func (a *App) Attach(sh *shell.Shell) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shell = sh
	a.input = []rune(sh.Text())
}

// WithAssetCheck 设置资源存在性检查，缺失的字形在预览中显示为“?”。
func (a *App) WithAssetCheck(exists func(src string) bool) *App {
	a.exists = exists
	return a
}

// Notify 实现 shell.Notifier：显示提示条，并在到期后触发重绘。
func (a *App) Notify(n shell.Notification) {
	t := &toast{note: n}
	if n.AutoDismiss > 0 {
		t.until = a.now().Add(n.AutoDismiss)
		time.AfterFunc(n.AutoDismiss, a.wake)
	}
	a.mu.Lock()
	a.toast = t
	a.mu.Unlock()
	a.wake()
}

// Copy 实现 shell.Clipboard，通过终端的 OSC 52 剪贴板写入。
func (a *App) Copy(text string) error {
	a.screen.SetClipboard([]byte(text))
	return nil
}

// Toast 返回当前仍在显示的通知。
func (a *App) Toast() (shell.Notification, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentToast()
}

func (a *App) currentToast() (shell.Notification, bool) {
	if a.toast == nil {
		return shell.Notification{}, false
	}
	if !a.toast.until.IsZero() && !a.now().Before(a.toast.until) {
		return shell.Notification{}, false
	}
	return a.toast.note, true
}

// Input 返回输入行内容。
func (a *App) Input() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return string(a.input)
}

// Wait 等待后台导出结束。
func (a *App) Wait() { a.wg.Wait() }

func (a *App) wake() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run 处理事件直到用户退出或 ctx 结束。
func (a *App) Run(ctx context.Context) error {
	if a.shell == nil {
		return fmt.Errorf("tui: 未绑定会话")
	}
	a.ctx = ctx
	go func() {
		<-ctx.Done()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
	}()
	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			break
		}
		if a.HandleEvent(ev) {
			break
		}
		a.Draw()
	}
	a.wg.Wait()
	return nil
}

// HandleEvent 处理单个事件，返回 true 表示应退出。
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case quitRequest:
			return true
		case exportDone:
			a.mu.Lock()
			if data.err == nil && data.art != nil {
				a.status = "saved " + firstNonEmpty(data.art.Path, data.art.Filename)
			}
			a.mu.Unlock()
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch keyOf(ev) {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		if err := a.shell.Generate(); err != nil {
			tracer().Debugf("tui: generate: %v", err)
		}
	case tcell.KeyCtrlS:
		a.exportAsync()
	case tcell.KeyCtrlY:
		if err := a.shell.Copy(); err != nil {
			tracer().Errorf("tui: copy: %v", err)
		}
	case tcell.KeyCtrlR:
		a.shell.Reset()
		a.mu.Lock()
		a.input = []rune(a.shell.Text())
		a.status = ""
		a.mu.Unlock()
	case tcell.KeyUp:
		a.shell.SetScale(int(a.shell.Scale()) + stepSmall)
	case tcell.KeyDown:
		a.shell.SetScale(int(a.shell.Scale()) - stepSmall)
	case tcell.KeyPgUp:
		a.shell.SetScale(int(a.shell.Scale()) + stepLarge)
	case tcell.KeyPgDn:
		a.shell.SetScale(int(a.shell.Scale()) - stepLarge)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.editInput(func(in []rune) []rune {
			if len(in) == 0 {
				return in
			}
			return in[:len(in)-1]
		})
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			break
		}
		r := unicode.ToUpper(ev.Rune())
		a.editInput(func(in []rune) []rune { return append(in, r) })
	}
	return false
}

// keyOf 把以 KeyRune+ModCtrl 形式上报的组合键统一为 KeyCtrlX。
func keyOf(ev *tcell.EventKey) tcell.Key {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&tcell.ModCtrl == 0 {
		return ev.Key()
	}
	switch unicode.ToLower(ev.Rune()) {
	case 'c':
		return tcell.KeyCtrlC
	case 's':
		return tcell.KeyCtrlS
	case 'y':
		return tcell.KeyCtrlY
	case 'r':
		return tcell.KeyCtrlR
	}
	return ev.Key()
}

func (a *App) editInput(fn func([]rune) []rune) {
	a.mu.Lock()
	a.input = fn(a.input)
	text := string(a.input)
	a.mu.Unlock()
	a.shell.SetText(text)
}

// exportAsync 在后台导出，结果以中断事件送回事件循环。
func (a *App) exportAsync() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		art, err := a.shell.Export(a.ctx)
		if err != nil {
			tracer().Debugf("tui: export: %v", err)
		}
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(exportDone{art: art, err: err}))
	}()
}

// ViewportPx 把终端列数换算为预览行可用的 px 宽度。
func ViewportPx(cols int) float64 {
	return math.Max(float64(cols-2), 1) * PxPerColumn
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}

func scaleLabel(s layout.Scale) string {
	return fmt.Sprintf("Image Size: %dpx   ↑/↓ ±%d  PgUp/PgDn ±%d", s, stepSmall, stepLarge)
}
