package shell

import (
	"time"

	"github.com/pterm/pterm"
)

// Severity 是通知的级别。
type Severity int

const (
	Success Severity = iota
	Warning
	Error
	Info
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Notification 是一条面向用户的提示。AutoDismiss 为 0 表示需要用户手动关闭。
type Notification struct {
	Severity    Severity
	Title       string
	Message     string
	AutoDismiss time.Duration
}

// Notifier 展示通知。
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc 让普通函数实现 Notifier。
type NotifierFunc func(Notification)

// Notify 实现 Notifier。
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Clipboard 接收复制的文本。
type Clipboard interface {
	Copy(text string) error
}

// ClipboardFunc 让普通函数实现 Clipboard。
type ClipboardFunc func(string) error

// Copy 实现 Clipboard。
func (f ClipboardFunc) Copy(text string) error { return f(text) }

// flash 是成功类通知的自动关闭时间。
const flash = 1500 * time.Millisecond

var (
	noteEmptyInput = Notification{Warning, "Empty Input", "Please enter some text to generate fonts", 0}
	noteGenFailed  = Notification{Error, "Error", "Failed to generate fonts", 0}
	noteCopied     = Notification{Success, "Copied!", "Text copied to clipboard", flash}
	noteNoImages   = Notification{Warning, "No Images", "Generate fonts first before downloading", 0}
	noteDownloaded = Notification{Success, "Downloaded!", "Your font image has been downloaded", 2 * time.Second}
	noteExportFail = Notification{Error, "Download Failed", "Failed to download the image", 0}
	noteReset      = Notification{Info, "Reset", "Form has been reset", time.Second}
)

// PtermNotifier 在命令行打印通知。
type PtermNotifier struct{}

// Notify 实现 Notifier。
func (PtermNotifier) Notify(n Notification) {
	var p pterm.PrefixPrinter
	switch n.Severity {
	case Success:
		p = pterm.Success
	case Warning:
		p = pterm.Warning
	case Error:
		p = pterm.Error
	default:
		p = pterm.Info
	}
	p.Println(n.Title + " " + n.Message)
}
