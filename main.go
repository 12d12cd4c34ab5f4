package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/ByLCY/kweenfont/config"
	"github.com/ByLCY/kweenfont/export"
	"github.com/ByLCY/kweenfont/glyph"
	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/renderer"
	canvasrenderer "github.com/ByLCY/kweenfont/renderer/canvas"
	"github.com/ByLCY/kweenfont/shell"
	"github.com/ByLCY/kweenfont/shell/chime"
	"github.com/ByLCY/kweenfont/tui"
)

var traceKeys = []string{
	"kween.glyph", "kween.surface", "kween.export", "kween.render", "kween.shell", "kween.tui",
}

// params 汇总命令行参数。
type params struct {
	text     string
	scale    int
	assets   string
	out      string
	preview  string
	debug    string
	viewport float64
	copy     bool
}

func main() {
	initDisplay()

	text := flag.String("text", shell.DefaultText, "要生成的文本")
	scale := flag.Int("scale", int(layout.DefaultScale), "字形格子边长（px，20-200）")
	manifest := flag.String("manifest", "", "字形集清单文件路径")
	assets := flag.String("assets", ".", "字形图片的根目录")
	out := flag.String("out", "output", "PNG 输出目录")
	preview := flag.String("preview", "", "预览 HTML 输出路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	viewport := flag.Float64("viewport", -1, "预览视口宽度（px），0 表示不限宽")
	copyText := flag.Bool("copy", false, "输出大写文本，便于复制")
	interactive := flag.Bool("interactive", false, "启动交互终端界面")
	sound := flag.Bool("sound", false, "通知时播放提示音")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()

	if err := setupTracing(*tlevel); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	cfg := config.Default()
	if *manifest != "" {
		var err error
		if cfg, err = config.Load(*manifest); err != nil {
			pterm.Error.Println(err)
			os.Exit(2)
		}
	}
	if *viewport >= 0 {
		cfg.Surface.ViewportWidth = *viewport
	}

	p := params{
		text:     *text,
		scale:    *scale,
		assets:   *assets,
		out:      *out,
		preview:  *preview,
		debug:    *debug,
		viewport: *viewport,
		copy:     *copyText,
	}
	r := canvasrenderer.NewRenderer(p.assets)

	var err error
	if *interactive {
		err = runInteractive(cfg, p, r, *sound)
	} else {
		var n shell.Notifier = shell.PtermNotifier{}
		if *sound {
			n = chime.New(n)
		}
		_, err = run(cfg, p, r, n)
	}
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(1)
	}
}

func tracer() tracing.Trace {
	return tracing.Select("kween.shell")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " i ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("配置 tracing 失败: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// run 串联生成、预览、调试输出与导出，返回导出产物。
func run(cfg *config.Config, p params, r renderer.Renderer, n shell.Notifier) (*export.Artifact, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer 不能为空")
	}
	sh := shell.New(shell.Options{
		Resolver: glyph.NewResolver(cfg.Table),
		Exporter: export.NewEngine(r, export.DirSaver{Dir: p.out}, cfg.Export),
		Notifier: n,
		Clipboard: shell.ClipboardFunc(func(text string) error {
			_, err := fmt.Fprintln(os.Stdout, text)
			return err
		}),
		Surface: cfg.Surface,
	})
	sh.SetText(p.text)
	sh.SetScale(p.scale)
	if err := sh.Generate(); err != nil {
		return nil, fmt.Errorf("生成字形失败: %w", err)
	}

	if p.preview != "" {
		if err := writePreview(sh, p.preview); err != nil {
			return nil, err
		}
	}
	if p.debug != "" {
		res, err := sh.Surface().Layout()
		if err != nil {
			return nil, fmt.Errorf("布局计算失败: %w", err)
		}
		if err := writeDebug(res, p.debug); err != nil {
			return nil, err
		}
	}
	if p.copy {
		if err := sh.Copy(); err != nil {
			return nil, err
		}
	}

	art, err := sh.Export(context.Background())
	if err != nil {
		return nil, fmt.Errorf("导出 PNG 失败: %w", err)
	}
	return art, nil
}

func runInteractive(cfg *config.Config, p params, r renderer.Renderer, sound bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("创建终端屏幕失败: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("初始化终端屏幕失败: %w", err)
	}
	defer screen.Fini()

	if p.viewport < 0 {
		w, _ := screen.Size()
		cfg.Surface.ViewportWidth = tui.ViewportPx(w)
	}
	app := tui.New(screen).WithAssetCheck(func(src string) bool {
		path := src
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.assets, filepath.FromSlash(src))
		}
		_, err := os.Stat(path)
		return err == nil
	})
	var n shell.Notifier = app
	if sound {
		n = chime.New(app)
	}
	sh := shell.New(shell.Options{
		Resolver:  glyph.NewResolver(cfg.Table),
		Exporter:  export.NewEngine(r, export.DirSaver{Dir: p.out}, cfg.Export),
		Notifier:  n,
		Clipboard: app,
		Surface:   cfg.Surface,
	})
	sh.SetText(p.text)
	sh.SetScale(p.scale)
	app.Attach(sh)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func writePreview(sh *shell.Shell, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建预览目录失败: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建预览文件失败: %w", err)
	}
	defer f.Close()
	return sh.Surface().WriteHTML(f)
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
