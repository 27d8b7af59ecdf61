package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/placard/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{Kind: "entry", Input: "words.csv"}
	if err := cfg.ApplyDefaults(); err != nil {
		t.Fatalf("补全默认值失败: %v", err)
	}
	return cfg
}

func TestTargetSizesSingle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Page.Size = "16x20"
	r := New(cfg, nil)

	sizes, err := r.targetSizes()
	if err != nil {
		t.Fatalf("解析目标尺寸失败: %v", err)
	}
	if len(sizes) != 1 {
		t.Fatalf("单尺寸运行应只有一项: got=%d", len(sizes))
	}
	if sizes[0].Name != "16x20" || sizes[0].WidthIn != 16 || sizes[0].HeightIn != 20 {
		t.Fatalf("目标尺寸错误: %+v", sizes[0])
	}
}

func TestTargetSizesAll(t *testing.T) {
	cfg := testConfig(t)
	cfg.Page.AllSizes = true
	r := New(cfg, nil)

	sizes, err := r.targetSizes()
	if err != nil {
		t.Fatalf("解析目标尺寸失败: %v", err)
	}
	if len(sizes) != len(config.StandardSizes()) {
		t.Fatalf("全尺寸运行应覆盖全部标准尺寸: got=%d", len(sizes))
	}
}

// TestStyleInputsUsesBuiltinFontByDefault 验证未配置字体路径时各角色
// 落到内置字体，且不会标记为自定义。
func TestStyleInputsUsesBuiltinFontByDefault(t *testing.T) {
	cfg := testConfig(t)
	r := New(cfg, nil)

	inputs, registered, err := r.styleInputs()
	if err != nil {
		t.Fatalf("构建样式输入失败: %v", err)
	}
	if inputs.Term.Font.IsCustom {
		t.Fatalf("内置字体不应标记为自定义")
	}
	if inputs.Term.Font.Src == "" {
		t.Fatalf("字体来源不应为空")
	}
	if inputs.Align != "left" {
		t.Fatalf("词条默认对齐错误: %q", inputs.Align)
	}
	if len(registered) != 0 {
		t.Fatalf("未配置字体路径时注册表应为空: %d", len(registered))
	}
}

// TestStyleInputsCollectsRegisteredFonts 验证配置的自定义字体出现在
// 预加载清单中，同一文件只占一个条目。
func TestStyleInputsCollectsRegisteredFonts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Custom.ttf")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x00, 0x00}, 0o644); err != nil {
		t.Fatalf("写入测试字体失败: %v", err)
	}
	cfg := testConfig(t)
	cfg.Term.Font = path
	cfg.Definition.Font = path
	r := New(cfg, nil)

	inputs, registered, err := r.styleInputs()
	if err != nil {
		t.Fatalf("构建样式输入失败: %v", err)
	}
	if len(registered) != 1 {
		t.Fatalf("同一字体文件应只注册一次: got=%d", len(registered))
	}
	if registered[0].Src != inputs.Term.Font.Src {
		t.Fatalf("预加载清单与角色字体不一致: %q vs %q", registered[0].Src, inputs.Term.Font.Src)
	}
}

func TestStyleInputsRejectsMissingFont(t *testing.T) {
	cfg := testConfig(t)
	cfg.Quote.Font = "/nonexistent/font.ttf"
	r := New(cfg, nil)

	if _, _, err := r.styleInputs(); err == nil {
		t.Fatalf("不存在的字体路径应当报错")
	}
}
