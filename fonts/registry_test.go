package fonts

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFakeTTF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("\x00\x01\x00\x00"), 0o644); err != nil {
		t.Fatalf("写入测试字体失败: %v", err)
	}
	return path
}

func TestRegisterFallbackForEmptySrc(t *testing.T) {
	reg := NewRegistry()
	res, err := reg.Register("")
	if err != nil {
		t.Fatalf("空来源应回退内置字体: %v", err)
	}
	if res.IsCustom {
		t.Fatalf("内置字体不应标记为自定义")
	}
	if res.Src != FallbackSrc {
		t.Fatalf("内置字体来源错误: %q", res.Src)
	}
}

func TestRegisterStableHandleReuse(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFakeTTF(t, dir, "a.ttf")
	pathB := writeFakeTTF(t, dir, "b.ttf")

	reg := NewRegistry()
	first, err := reg.Register(pathA)
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	second, err := reg.Register(pathB)
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	again, err := reg.Register(pathA)
	if err != nil {
		t.Fatalf("重复注册失败: %v", err)
	}

	if !first.IsCustom || !second.IsCustom {
		t.Fatalf("用户字体应标记为自定义")
	}
	if first.Name == second.Name {
		t.Fatalf("不同路径不应共享句柄: %q", first.Name)
	}
	if again.Name != first.Name {
		t.Fatalf("同一路径重复注册应复用句柄: %q vs %q", again.Name, first.Name)
	}
	if len(reg.Registered()) != 2 {
		t.Fatalf("注册表应只有 2 项: got=%d", len(reg.Registered()))
	}
}

func TestRegisterRejectsNonTTF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.otf")
	os.WriteFile(path, []byte("x"), 0o644)

	reg := NewRegistry()
	if _, err := reg.Register(path); err == nil {
		t.Fatalf("非 TTF 文件应当报错")
	}
	if _, err := reg.Register(filepath.Join(dir, "missing.ttf")); err == nil {
		t.Fatalf("不存在的文件应当报错")
	}
}

func TestDiscoverFindsTTFRecursively(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	os.MkdirAll(sub, 0o755)
	writeFakeTTF(t, dir, "Roboto-Regular.ttf")
	writeFakeTTF(t, sub, "Lora_Bold.ttf")
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	files := Discover(dir)
	if len(files) != 2 {
		t.Fatalf("应递归发现 2 个 TTF: got=%d", len(files))
	}
	// 结果按显示名排序，Regular 后缀被省略。
	if files[0].Display != "Lora Bold" || files[1].Display != "Roboto" {
		t.Fatalf("显示名整理错误: %q, %q", files[0].Display, files[1].Display)
	}
}
