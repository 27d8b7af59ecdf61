// Package binding 提供输出命名模板的变量展开。模板中的 ${key}
// 占位符由一组扁平变量替换，用于拼接产物目录与文件名。
package binding

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// Vars 是模板展开可用的变量集合。
type Vars map[string]string

// Expand 将 pattern 中的 ${key} 替换为 vars 中对应的值。
// 未定义的键保留原占位符。
func Expand(pattern string, vars Vars) string {
	return exprPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		key := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := vars[key]; ok {
			return val
		}
		return match
	})
}

// ExpandStrict 与 Expand 相同，但任何未定义的键都会返回错误，
// 错误信息按字典序列出全部缺失键。
func ExpandStrict(pattern string, vars Vars) (string, error) {
	var missing []string
	out := exprPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		key := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := vars[key]; ok {
			return val
		}
		missing = append(missing, key)
		return match
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("输出命名模板存在未定义变量: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeName 把展开结果替换为可安全用作文件名的形式：
// 空白与路径分隔符等统一折叠为下划线。
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeName.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}
