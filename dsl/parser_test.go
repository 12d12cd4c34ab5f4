package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/kweenfont/dsl"
)

const sampleManifest = `
# Kween 字形集
glyphset Kween v1 {
  assets { root: "kweenfont"  ext: jpg }

  // Q 使用单独绘制的版本
  glyph Q {
    src: "alt/Q.png"
  }

  surface {
    viewport: 640px; gap: 4px
    min-tile: 20
  }

  /* 导出 */
  export {
    prefix: "kween-font"
    filename: "${prefix}-${text}-${millis}.png"
    pixel-ratio: 2x
    background: #ffffff
  }
}
`

func TestParseManifest(t *testing.T) {
	doc, err := dsl.ParseString(sampleManifest)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Kween" || doc.Version != "v1" {
		t.Fatalf("unexpected header %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	kinds := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if got := strings.Join(kinds, ","); got != "assets,glyph,surface,export" {
		t.Fatalf("unexpected section order %s", got)
	}

	assets := doc.Sections[0].Assets.Block.Assignments
	if len(assets) != 2 {
		t.Fatalf("expected 2 asset assignments on one line, got %d", len(assets))
	}
	if assets[0].Key != "root" || assets[0].Value.Text() != "kweenfont" {
		t.Fatalf("unexpected root assignment %+v", assets[0])
	}
	if assets[1].Value.Kind() != "ident" || assets[1].Value.Text() != "jpg" {
		t.Fatalf("ext should be an ident, got %s %q", assets[1].Value.Kind(), assets[1].Value.Text())
	}

	glyph := doc.Sections[1].Glyph
	if glyph.Letter != "Q" || glyph.Block.Assignments[0].Value.Text() != "alt/Q.png" {
		t.Fatalf("unexpected glyph section %+v", glyph)
	}

	surface := doc.Sections[2].Surface.Block.Assignments
	if len(surface) != 3 {
		t.Fatalf("expected 3 surface assignments, got %d", len(surface))
	}
	if v, err := surface[0].Value.Float(); err != nil || v != 640 {
		t.Fatalf("viewport expected 640, got %v (%v)", v, err)
	}
	if surface[2].Pos.Line != 13 {
		t.Fatalf("min-tile should be on line 13, got %d", surface[2].Pos.Line)
	}

	export := doc.Sections[3].Export.Block.Assignments
	if export[1].Value.Text() != "${prefix}-${text}-${millis}.png" {
		t.Fatalf("filename template mangled: %q", export[1].Value.Text())
	}
	if v, err := export[2].Value.Float(); err != nil || v != 2 {
		t.Fatalf("pixel-ratio expected 2, got %v (%v)", v, err)
	}
	if export[3].Value.Kind() != "color" || export[3].Value.Text() != "#ffffff" {
		t.Fatalf("background expected color, got %s %q", export[3].Value.Kind(), export[3].Value.Text())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"missing header":  `{ assets { root: "x" } }`,
		"unclosed block":  `glyphset K v1 { assets { root: "x" }`,
		"unknown section": `glyphset K v1 { fonts { root: "x" } }`,
		"missing value":   `glyphset K v1 { surface { gap: } }`,
	}
	for name, input := range cases {
		if _, err := dsl.ParseString(input); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestValueConversions(t *testing.T) {
	doc, err := dsl.ParseString(`glyphset K v1 { surface { viewport: auto  scroll: off } }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	as := doc.Sections[0].Surface.Block.Assignments
	if _, err := as[0].Value.Float(); err == nil {
		t.Fatalf("ident should not convert to a number")
	}
	if b, err := as[1].Value.Bool(); err != nil || b {
		t.Fatalf("off should be false, got %v (%v)", b, err)
	}
}
