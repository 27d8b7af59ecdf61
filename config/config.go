package config

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ByLCY/placard/layout"
	"github.com/ByLCY/placard/records"
)

// Config 是 TOML 配置文件的顶层结构。
type Config struct {
	Kind  string `toml:"kind"`
	Input string `toml:"input"`

	Page Page `toml:"page"`

	Term          Role `toml:"term"`
	Pronunciation Role `toml:"pronunciation"`
	Definition    Role `toml:"definition"`
	Quote         Role `toml:"quote"`
	Author        Role `toml:"author"`

	Line   Rule   `toml:"line"`
	Output Output `toml:"output"`
}

// Page 描述页面几何与整体排布。
type Page struct {
	// Size 是尺寸表达式（如 "11x14"、"A0"），与 Width/Height 二选一。
	Size       string  `toml:"size"`
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	AllSizes   bool    `toml:"all-sizes"`
	Background string  `toml:"background"`
	Position   string  `toml:"position"`
	Align      string  `toml:"align"`
}

// Role 描述单一文本角色的字体与排版参数。Size 与 Spacing 均为
// 基准磅值，最终会按页面比例缩放。
type Role struct {
	Font    string  `toml:"font"`
	Size    float64 `toml:"size"`
	Spacing float64 `toml:"spacing"`
	Color   string  `toml:"color"`
}

// Rule 描述分隔线样式。
type Rule struct {
	Color string `toml:"color"`
}

// Output 描述产物位置与格式。
type Output struct {
	Dir     string `toml:"dir"`
	PDF     *bool  `toml:"pdf"`
	PNG     bool   `toml:"png"`
	DPI     int    `toml:"dpi"`
	Pattern string `toml:"pattern"`
	// Debug 时额外输出每个尺寸的布局 JSON，便于排查。
	Debug bool `toml:"debug"`
}

// Load 读取并解析配置文件，随后补全各记录类型的默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults 按记录类型补全未设置的字段。词条与署名引语靠下左对齐，
// 纯引语居中。
func (c *Config) ApplyDefaults() error {
	kind, err := records.ParseKind(c.Kind)
	if err != nil {
		return err
	}
	c.Kind = string(kind)

	if c.Page.Position == "" {
		if kind == records.KindQuote {
			c.Page.Position = string(layout.PositionMiddle)
		} else {
			c.Page.Position = string(layout.PositionBottom)
		}
	}
	if c.Page.Align == "" {
		if kind == records.KindQuote {
			c.Page.Align = "center"
		} else {
			c.Page.Align = "left"
		}
	}
	if c.Page.Size == "" && c.Page.Width == 0 && c.Page.Height == 0 {
		c.Page.Size = "11x14"
	}
	if c.Page.Background == "" {
		c.Page.Background = "#FFFFFF"
	}

	defaultRole(&c.Term, layout.DefaultTermSizePt, layout.DefaultTermSpacingPt)
	defaultRole(&c.Pronunciation, layout.DefaultPronunciationSizePt, layout.DefaultPronunciationSpacingPt)
	defaultRole(&c.Definition, layout.DefaultDefinitionSizePt, 0)
	defaultRole(&c.Quote, layout.DefaultQuoteSizePt, 0)
	defaultRole(&c.Author, layout.DefaultAuthorSizePt, 0)

	if c.Line.Color == "" {
		c.Line.Color = "#000000"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Output.PDF == nil {
		t := true
		c.Output.PDF = &t
	}
	if c.Output.DPI == 0 {
		c.Output.DPI = 150
	}
	if c.Output.Pattern == "" {
		c.Output.Pattern = "${kind}_pages_${size}"
	}
	return nil
}

func defaultRole(r *Role, sizePt, spacingPt float64) {
	if r.Size == 0 {
		r.Size = sizePt
	}
	if r.Spacing == 0 {
		r.Spacing = spacingPt
	}
	if r.Color == "" {
		r.Color = "#000000"
	}
}

// PageSize 返回页面宽高（英寸）。显式 Width/Height 优先于 Size 表达式。
func (c *Config) PageSize() (float64, float64, error) {
	if c.Page.Width > 0 && c.Page.Height > 0 {
		return c.Page.Width, c.Page.Height, nil
	}
	if c.Page.Width != 0 || c.Page.Height != 0 {
		return 0, 0, fmt.Errorf("页面宽高必须同时给出")
	}
	return ParseSize(c.Page.Size)
}

// StyleInputs 把各角色配置换算为排版层的样式输入。字体句柄由调用方
// 注册后填入，此处只携带路径。
func (c *Config) StyleInputs() (layout.StyleInputs, error) {
	in := layout.StyleInputs{Align: c.Page.Align}
	roles := []struct {
		src *Role
		dst *layout.RoleInput
	}{
		{&c.Term, &in.Term},
		{&c.Pronunciation, &in.Pronunciation},
		{&c.Definition, &in.Definition},
		{&c.Quote, &in.Quote},
		{&c.Author, &in.Author},
	}
	for _, r := range roles {
		col, err := ParseHexColor(r.src.Color)
		if err != nil {
			return layout.StyleInputs{}, err
		}
		r.dst.SizePt = r.src.Size
		r.dst.SpacingPt = r.src.Spacing
		r.dst.Color = col
	}
	return in, nil
}

// ParseHexColor 解析 #RGB 或 #RRGGBB 形式的颜色。
func ParseHexColor(s string) (layout.Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(raw) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[i*2] = raw[i]
			expanded[i*2+1] = raw[i]
		}
		raw = string(expanded)
	case 6:
	default:
		return layout.Color{}, fmt.Errorf("无法解析颜色 %q", s)
	}
	var r, g, b int
	if _, err := fmt.Sscanf(raw, "%02x%02x%02x", &r, &g, &b); err != nil {
		return layout.Color{}, fmt.Errorf("无法解析颜色 %q: %w", s, err)
	}
	return layout.Color{R: r, G: g, B: b}, nil
}
