/*
Package chime 在通知之外播放短提示音。

音频输出经 beep/speaker 走 oto，需要 cgo 与系统音频库，因此单独成包，
只有启用提示音的程序才会链接它。
*/
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ByLCY/kweenfont/shell"
)

func tracer() tracing.Trace {
	return tracing.Select("kween.shell")
}

const (
	rate     = beep.SampleRate(44100)
	duration = 120 * time.Millisecond
)

// Chime 在转发通知之前播放一个短提示音，音高随级别变化。
// 音频设备不可用时静默降级为只转发。
type Chime struct {
	next shell.Notifier

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	disabled    bool
}

// New 包装 next。
func New(next shell.Notifier) *Chime {
	return &Chime{next: next, mixer: &beep.Mixer{}}
}

// Notify 实现 shell.Notifier。
func (c *Chime) Notify(n shell.Notification) {
	c.play(frequency(n.Severity))
	if c.next != nil {
		c.next.Notify(n)
	}
}

func (c *Chime) play(freq float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return
	}
	if !c.initialized {
		if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
			tracer().Infof("chime: audio unavailable, chime disabled: %v", err)
			c.disabled = true
			return
		}
		speaker.Play(c.mixer)
		c.initialized = true
	}
	speaker.Lock()
	c.mixer.Add(beep.Take(rate.N(duration), newTone(rate, freq)))
	speaker.Unlock()
}

func frequency(s shell.Severity) float64 {
	switch s {
	case shell.Success:
		return 880
	case shell.Warning:
		return 440
	case shell.Error:
		return 220
	default:
		return 660
	}
}

// tone 生成带淡入淡出包络的正弦波。
type tone struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newTone(sr beep.SampleRate, freq float64) *tone {
	return &tone{sr: sr, freq: freq}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	total := float64(g.sr.N(duration))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Min(float64(g.pos)/float64(g.sr)/0.01, 1.0)
		envelope *= math.Max(1-float64(g.pos)/total, 0)
		v := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }
