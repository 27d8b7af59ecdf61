package fonts

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed Inter/static/*.ttf
var fontFS embed.FS

// Load 返回内置字体的字节数据。path 接受 "embed:" 前缀与否，
// 也接受省略 "Inter/static/" 目录的裸文件名。
func Load(p string) ([]byte, error) {
	p = strings.TrimPrefix(p, "embed:")
	target := path.Join("Inter/static", path.Base(p))
	data, err := fontFS.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("读取内置字体 %s 失败: %w", target, err)
	}
	return data, nil
}
