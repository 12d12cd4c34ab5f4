package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/shell"
)

var (
	styleTitle   = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorGreen)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput   = tcell.StyleDefault.Underline(true)
	styleGlyph   = tcell.StyleDefault.Reverse(true)
	styleMissing = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorWhiteSmoke)
	styleHelp    = tcell.StyleDefault.Dim(true)
)

func severityStyle(s shell.Severity) tcell.Style {
	switch s {
	case shell.Success:
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	case shell.Warning:
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	case shell.Error:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue)
	}
}

// Draw 重绘整个界面。
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()

	a.mu.Lock()
	input := string(a.input)
	status := a.status
	note, hasToast := a.currentToast()
	a.mu.Unlock()

	a.text(1, 0, "Kween Font Generator", styleTitle)
	a.text(1, 2, "Text: ", styleLabel)
	a.text(7, 2, input+"_", styleInput)
	chars := fmt.Sprintf("%d chars", len([]rune(input)))
	a.text(w-len(chars)-1, 2, chars, styleLabel)
	a.text(1, 4, scaleLabel(a.shell.Scale()), styleLabel)

	if surf := a.shell.Surface(); !surf.Empty() {
		a.text(1, rowTop-1, fmt.Sprintf("Generated Result  %d CHARS", surf.Len()), styleTitle)
		if res, err := surf.Layout(); err == nil {
			a.drawRow(res, rowTop)
		} else {
			tracer().Errorf("tui: layout: %v", err)
		}
	}
	if status != "" {
		a.text(1, h-3, status, styleLabel)
	}
	if hasToast {
		a.text(0, h-2, padRight(" "+note.Title+" "+note.Message, w), severityStyle(note.Severity))
	}
	a.text(1, h-1, "Enter generate · Ctrl+S export · Ctrl+Y copy · Ctrl+R reset · Esc quit", styleHelp)
	a.screen.Show()
}

// drawRow 把测量结果按 PxPerColumn 映射为终端格子，每个字形占三行。
func (a *App) drawRow(res *layout.Result, top int) {
	w, _ := a.screen.Size()
	for _, tile := range res.Tiles {
		x0 := 1 + int(math.Round(tile.X/PxPerColumn))
		cols := int(math.Max(1, math.Round(tile.Width/PxPerColumn)))
		if x0 >= w-1 {
			break
		}
		if tile.Blank {
			continue
		}
		style, ch := styleGlyph, []rune(tile.Char)[0]
		if a.exists != nil && !a.exists(tile.Src) {
			style, ch = styleMissing, '?'
		}
		for dy := 0; dy < 3; dy++ {
			for dx := 0; dx < cols && x0+dx < w-1; dx++ {
				r := ' '
				if dy == 1 && dx == cols/2 {
					r = ch
				}
				a.screen.SetContent(x0+dx, top+dy, r, nil, style)
			}
		}
	}
	if res.Clipped {
		a.text(w-2, top+1, "→", styleLabel)
	}
}

func (a *App) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func padRight(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return s
	}
	out := []rune(s)
	for ; n < w; n++ {
		out = append(out, ' ')
	}
	return string(out)
}
