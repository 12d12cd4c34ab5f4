package layout

import (
	"math"
	"testing"
)

// TestPxPtRoundTrip 验证 px↔pt 换算的往返精度（允许极小的浮点误差）。
func TestPxPtRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, px := range samples {
		pt := px * PxToPt
		back := pt * PtToPx
		if diff := math.Abs(back - px); diff > 1e-9 {
			t.Fatalf("px→pt→px 往返误差过大: in=%gpx pt=%g back=%g diff=%g", px, pt, back, diff)
		}
	}
}

// TestParseLength 覆盖常见写法：px、百分比、pt、无单位与关键字。
func TestParseLength(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		ref     float64
		ok      bool
		keyword string
	}{
		{"100px", 100, 0, true, ""},
		{" 4px ", 4, 0, true, ""},
		{"100%", 640, 640, true, ""},
		{"12pt", 16, 0, true, ""},
		{"1", 1, 0, true, ""},
		{"max-content", 0, 0, false, "max-content"},
		{"auto", 0, 0, false, "auto"},
		{"", 0, 0, false, "auto"},
	}
	for _, c := range cases {
		l := ParseLength(c.in)
		got, ok := l.Px(c.ref)
		if ok != c.ok {
			t.Fatalf("%q: ok 期望 %v，实际 %v", c.in, c.ok, ok)
		}
		if ok && math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%q: 期望 %g，实际 %g", c.in, c.want, got)
		}
		if c.keyword != "" && !l.IsKeyword(c.keyword) {
			t.Fatalf("%q: 期望关键字 %s，实际 %#v", c.in, c.keyword, l)
		}
	}
	if _, ok := ParseLength("50%").Px(math.Inf(1)); ok {
		t.Fatalf("不定宽度下百分比不应解析")
	}
}

// TestParseEdges 验证 padding 简写的 1–4 值语义。
func TestParseEdges(t *testing.T) {
	if got := ParseEdges("16px 0", 0); got != (Edges{16, 0, 16, 0}) {
		t.Fatalf("16px 0 解析错误: %#v", got)
	}
	if got := ParseEdges("0", 0); got != (Edges{}) {
		t.Fatalf("0 解析错误: %#v", got)
	}
	if got := ParseEdges("1px 2px 3px", 0); got != (Edges{1, 2, 3, 2}) {
		t.Fatalf("三值解析错误: %#v", got)
	}
	if got := ParseEdges("1px 2px 3px 4px", 0); got.Horizontal() != 6 || got.Vertical() != 4 {
		t.Fatalf("四值解析错误: %#v", got)
	}
}

func TestClampScale(t *testing.T) {
	cases := map[int]Scale{-5: 20, 0: 20, 19: 20, 20: 20, 100: 100, 200: 200, 201: 200, 1000: 200}
	for in, want := range cases {
		if got := ClampScale(in); got != want {
			t.Fatalf("ClampScale(%d) 期望 %d，实际 %d", in, want, got)
		}
	}
	if Scale(500).Px() != 200 {
		t.Fatalf("越界 Scale 的 Px 应被截断")
	}
}

func TestPixelSize(t *testing.T) {
	res := &Result{Width: 200, Height: 100, PixelRatio: 2}
	w, h := res.PixelSize()
	if w != 400 || h != 200 {
		t.Fatalf("期望 400x200，实际 %dx%d", w, h)
	}
	res.PixelRatio = 0
	if res.Ratio() != 1 {
		t.Fatalf("像素比缺省应为 1")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#fff":      White,
		"#ffffff":   White,
		"#F3F4F6":   {R: 0xf3, G: 0xf4, B: 0xf6},
		"#99999980": {R: 0x99, G: 0x99, B: 0x99},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
	for _, bad := range []string{"", "#ff", "#gggggg"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q) should fail", bad)
		}
	}
	if White.Hex() != "#ffffff" {
		t.Fatalf("unexpected hex %s", White.Hex())
	}
}
