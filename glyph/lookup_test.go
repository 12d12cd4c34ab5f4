package glyph

import "testing"

func TestTableConvention(t *testing.T) {
	table := DefaultTable()
	got, ok := table.Path('K')
	if !ok || got != "kweenfont/K.jpg" {
		t.Fatalf("期望 kweenfont/K.jpg，实际 %q (ok=%v)", got, ok)
	}
	if _, ok := table.Path('k'); ok {
		t.Fatalf("小写字母不应直接解析")
	}
	if _, ok := table.Path('1'); ok {
		t.Fatalf("数字不应解析")
	}
	if n := len(table.Alphabet()); n != 26 {
		t.Fatalf("字母表应包含 26 个字母，实际 %d", n)
	}
}

func TestTableOverrideValidation(t *testing.T) {
	table := NewTable("", "")
	if table.Root != DefaultRoot || table.Ext != DefaultExt {
		t.Fatalf("空 root/ext 应回落到默认值，实际 %q/%q", table.Root, table.Ext)
	}
	for _, bad := range []string{"", "AB", "1", "é"} {
		if err := table.Override(bad, "x.png"); err == nil {
			t.Fatalf("非法字形 %q 应当报错", bad)
		}
	}
	if err := table.Override("Z", " "); err == nil {
		t.Fatalf("空 src 应当报错")
	}
	if err := table.Override("z", "zed.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Overrides(); len(got) != 1 || got[0] != 'Z' {
		t.Fatalf("期望覆盖 [Z]，实际 %q", string(got))
	}
}
