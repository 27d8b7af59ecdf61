package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ByLCY/placard/layout"
)

// FallbackSrc 是内置兜底字体的资源路径。
const FallbackSrc = "embed:Inter/static/Inter-Regular.ttf"

// Registry 在一次生成运行内为字体资源分配稳定、无冲突的句柄。
// 同一路径重复注册时复用已有句柄，避免时间戳式命名的脆弱性。
// 由运行持有，而不是进程级全局状态。
type Registry struct {
	mu     sync.Mutex
	next   int
	byPath map[string]layout.FontResource
}

// NewRegistry 创建空的字体注册表。
func NewRegistry() *Registry {
	return &Registry{byPath: map[string]layout.FontResource{}}
}

// Register 为一个字体来源分配（或复用）句柄。
// src 为空或 embed: 前缀时返回内置字体（IsCustom=false）；
// 其余视为用户提供的 TTF 路径，文件必须存在（IsCustom=true）。
func (r *Registry) Register(src string) (layout.FontResource, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		src = FallbackSrc
	}
	if strings.HasPrefix(src, "embed:") {
		name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		return layout.FontResource{
			Name:     name,
			Src:      src,
			Family:   name,
			Fallback: FallbackSrc,
		}, nil
	}

	if !strings.EqualFold(filepath.Ext(src), ".ttf") {
		return layout.FontResource{}, fmt.Errorf("仅支持 TTF 字体文件：%s", src)
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return layout.FontResource{}, fmt.Errorf("解析字体路径 %s 失败: %w", src, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return layout.FontResource{}, fmt.Errorf("字体文件 %s 不可用: %w", src, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.byPath[abs]; ok {
		return res, nil
	}
	r.next++
	handle := fmt.Sprintf("PlacardFont-%d", r.next)
	res := layout.FontResource{
		Name:     handle,
		Src:      abs,
		Family:   handle,
		Fallback: FallbackSrc,
		IsCustom: true,
	}
	r.byPath[abs] = res
	return res, nil
}

// Registered 返回已注册的用户字体资源，供渲染器预加载。
func (r *Registry) Registered() []layout.FontResource {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]layout.FontResource, 0, len(r.byPath))
	for _, res := range r.byPath {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FontFile 描述发现的一个系统字体文件。
type FontFile struct {
	Path    string
	Display string
}

// defaultFontDirs 是各平台常见的系统字体目录。
var defaultFontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"/System/Library/Fonts",
	"C:/Windows/Fonts",
}

// Discover 扫描字体目录并返回可用的 TTF 字体列表。
// 这是从目录到列表的纯函数：不缓存、无全局状态，调用方按需缓存。
// dirs 为空时使用平台默认目录（外加用户主目录下的 .fonts）。
func Discover(dirs ...string) []FontFile {
	if len(dirs) == 0 {
		dirs = append([]string{}, defaultFontDirs...)
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
	}
	var out []FontFile
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // 跳过不可读目录
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".ttf") {
				return nil
			}
			out = append(out, FontFile{Path: path, Display: displayName(path)})
			return nil
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Display < out[j].Display })
	return out
}

// displayName 把文件名整理成可读的字体名。
func displayName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	fields := strings.Fields(name)
	kept := fields[:0]
	for _, f := range fields {
		if strings.EqualFold(f, "regular") {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return strings.Join(kept, " ")
}
