package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/placard/layout"
)

func TestLoadAppliesKindDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "placard.toml")
	doc := `
kind = "quote"
input = "quotes.txt"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("读取配置失败: %v", err)
	}
	if cfg.Page.Position != "middle" || cfg.Page.Align != "center" {
		t.Fatalf("引文默认应居中: position=%q align=%q", cfg.Page.Position, cfg.Page.Align)
	}
	if cfg.Quote.Size != layout.DefaultQuoteSizePt {
		t.Fatalf("引文默认字号错误: got=%g", cfg.Quote.Size)
	}
	if cfg.Output.Pattern != "${kind}_pages_${size}" {
		t.Fatalf("默认命名模板错误: %q", cfg.Output.Pattern)
	}
	if cfg.Output.DPI != 150 {
		t.Fatalf("默认 DPI 错误: %d", cfg.Output.DPI)
	}
}

func TestEntryDefaultsBottomLeft(t *testing.T) {
	cfg := &Config{Kind: "entry", Input: "words.csv"}
	if err := cfg.ApplyDefaults(); err != nil {
		t.Fatalf("补全默认值失败: %v", err)
	}
	if cfg.Page.Position != "bottom" || cfg.Page.Align != "left" {
		t.Fatalf("词条默认应靠下左对齐: position=%q align=%q", cfg.Page.Position, cfg.Page.Align)
	}
	if cfg.Term.Size != layout.DefaultTermSizePt || cfg.Term.Spacing != layout.DefaultTermSpacingPt {
		t.Fatalf("词条标题默认值错误: size=%g spacing=%g", cfg.Term.Size, cfg.Term.Spacing)
	}
}

func TestPageSizePrecedence(t *testing.T) {
	cfg := &Config{Kind: "entry", Page: Page{Size: "A0", Width: 16, Height: 20}}
	if err := cfg.ApplyDefaults(); err != nil {
		t.Fatalf("补全默认值失败: %v", err)
	}
	w, h, err := cfg.PageSize()
	if err != nil {
		t.Fatalf("解析页面尺寸失败: %v", err)
	}
	if w != 16 || h != 20 {
		t.Fatalf("显式宽高应优先于表达式: got=%gx%g", w, h)
	}

	half := &Config{Kind: "entry", Page: Page{Width: 16}}
	half.ApplyDefaults()
	if _, _, err := half.PageSize(); err == nil {
		t.Fatalf("只给宽不给高应当报错")
	}
}

func TestParseHexColor(t *testing.T) {
	cases := map[string]layout.Color{
		"#000000": {R: 0, G: 0, B: 0},
		"#FFFFFF": {R: 255, G: 255, B: 255},
		"#1a2B3c": {R: 26, G: 43, B: 60},
		"#fff":    {R: 255, G: 255, B: 255},
		"abc":     {R: 170, G: 187, B: 204},
	}
	for in, want := range cases {
		got, err := ParseHexColor(in)
		if err != nil {
			t.Fatalf("ParseHexColor(%q) 出错: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseHexColor(%q)=%+v want=%+v", in, got, want)
		}
	}
	for _, in := range []string{"", "#12345", "#gggggg"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Fatalf("ParseHexColor(%q) 应当报错", in)
		}
	}
}
