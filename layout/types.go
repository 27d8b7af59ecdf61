package layout

// 该文件定义布局结果与样式描述，供布局计算、渲染与调试 JSON 共用。

// Result 保存布局后的页面、样式与本次构建产生的警告。
type Result struct {
	Pages    []Page       `json:"pages"`
	Styles   Styles       `json:"styles"`
	Warnings []string     `json:"warnings,omitempty"`
	Meta     DocumentMeta `json:"meta"`
}

// FontResource 描述字体资源，Src 可以是文件路径或内置 embed 路径。
// IsCustom 在注册时确定：用户提供的 TTF 为 true，内置字体为 false。
// 下游不再通过名称猜测字体来源。
type FontResource struct {
	Name     string `json:"name"`
	Src      string `json:"src"`
	Style    string `json:"style"`
	Family   string `json:"family"` // 渲染器使用的 Family 名称
	Fallback string `json:"fallback"`
	IsCustom bool   `json:"isCustom"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// StyleSpec 描述某一文本角色（词条、注音、释义、引文、署名）的完整样式。
// 构建一次后不可变；ScaledSizePt 等缩放值均已按页面比例换算并取整。
type StyleSpec struct {
	Role          string       `json:"role"`
	Font          FontResource `json:"font"`
	SizePt        float64      `json:"sizePt"`       // 用户给定的名义字号
	ScaledSizePt  float64      `json:"scaledSizePt"` // 名义字号 × scale，取整
	LeadingPt     float64      `json:"leadingPt"`    // 行距（含字号）
	SpaceAfterPt  float64      `json:"spaceAfterPt"`
	SpaceBeforePt float64      `json:"spaceBeforePt"`
	Align         string       `json:"align"`
	Color         Color        `json:"color"`
	IsCustomFont  bool         `json:"isCustomFont"`
}

// Styles 按角色收集一次生成运行所用的全部样式。
// 未用到的角色保持零值（例如 Quote 模式下的 Term）。
type Styles struct {
	Term          StyleSpec `json:"term,omitempty"`
	Pronunciation StyleSpec `json:"pronunciation,omitempty"`
	Definition    StyleSpec `json:"definition,omitempty"`
	Quote         StyleSpec `json:"quote,omitempty"`
	Author        StyleSpec `json:"author,omitempty"`
}

// Page 记录页面尺寸、边距、背景与最终可以直接渲染的元素（单位均为 mm）。
// 每条记录对应一页，元素坐标以页面左上角为原点。
type Page struct {
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Margin     float64   `json:"margin"` // 四边等宽
	Background Color     `json:"background"`
	Texts      []TextBox `json:"texts"`
	Lines      []Line    `json:"lines,omitempty"`
}

// TextBox 表示一个已经排好坐标的文本块。
type TextBox struct {
	Content    string       `json:"content"`
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	Width      float64      `json:"width"`
	LineHeight float64      `json:"lineHeight"`
	Font       FontResource `json:"font"`
	FontSize   float64      `json:"fontSize"` // mm
	Color      Color        `json:"color"`
	Lines      []TextLine   `json:"lines"`
	Height     float64      `json:"height"`
	Align      string       `json:"align,omitempty"` // left/center/right（默认 left）
}

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// Line 表示一条线段（词条页中注音与释义之间的分隔线）。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
