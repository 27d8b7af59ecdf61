package config

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/placard/layout"
)

// 页面尺寸表达式解析：支持 "11x14"、"16x20in"、"210mm x 297mm"
// 以及预设名（如 "A0"、"letter"）。数值默认单位为英寸。

var sizeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Unit", Pattern: `(?i)(?:mm|cm|in)\b`},
	{Name: "Times", Pattern: `[xX×*]`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9-]*`},
})

type sizeExpr struct {
	Pair   *sizePair `parser:"  @@"`
	Preset *string   `parser:"| @Ident"`
}

type sizePair struct {
	Width  float64 `parser:"@Number"`
	WUnit  string  `parser:"@Unit? Times"`
	Height float64 `parser:"@Number"`
	HUnit  string  `parser:"@Unit?"`
}

var sizeParser = participle.MustBuild[sizeExpr](
	participle.Lexer(sizeLexer),
	participle.Elide("Whitespace"),
)

// 预设页面尺寸（英寸）。
var sizePresets = map[string][2]float64{
	"A0":     {33.1, 46.8},
	"LETTER": {8.5, 11},
}

// ParseSize 解析尺寸表达式，返回宽高（英寸）。
func ParseSize(expr string) (float64, float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, 0, fmt.Errorf("页面尺寸表达式为空")
	}
	ast, err := sizeParser.ParseString("", expr)
	if err != nil {
		return 0, 0, fmt.Errorf("无法解析页面尺寸 %q: %w", expr, err)
	}
	if ast.Preset != nil {
		if wh, ok := sizePresets[strings.ToUpper(*ast.Preset)]; ok {
			return wh[0], wh[1], nil
		}
		return 0, 0, fmt.Errorf("未知的页面尺寸预设：%s", *ast.Preset)
	}
	w := asLength(ast.Pair.Width, ast.Pair.WUnit).ToIN()
	h := asLength(ast.Pair.Height, ast.Pair.HUnit).ToIN()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("页面尺寸必须为正值：%q", expr)
	}
	return w, h, nil
}

func asLength(value float64, unit string) layout.Length {
	switch strings.ToLower(unit) {
	case "mm":
		return layout.Length{Value: value, Unit: layout.UnitMM}
	case "cm":
		return layout.Length{Value: value, Unit: layout.UnitCM}
	default: // "" 或 "in"
		return layout.Length{Value: value, Unit: layout.UnitIN}
	}
}

// StandardSize 是 "全部标准尺寸" 集合中的一项。
type StandardSize struct {
	Name     string
	WidthIn  float64
	HeightIn float64
}

// StandardSizes 返回固定的五个标准页面尺寸，顺序稳定。
func StandardSizes() []StandardSize {
	return []StandardSize{
		{Name: "11x14", WidthIn: 11, HeightIn: 14},
		{Name: "16x20", WidthIn: 16, HeightIn: 20},
		{Name: "18x24", WidthIn: 18, HeightIn: 24},
		{Name: "24x36", WidthIn: 24, HeightIn: 36},
		{Name: "A0", WidthIn: 33.1, HeightIn: 46.8},
	}
}
