package layout

import "github.com/ByLCY/placard/records"

// 样式构建：把用户配置的名义字号/间距按页面比例换算成最终样式。
// 每种文档类型的行距规则沿用既有排印约定：
//   词条标题行距 = 字号；注音/署名行距 = 字号 + 4×scale；
//   释义/引文行距 = 字号 + 12×scale。

// RoleInput 是构建单个角色样式的用户输入。
type RoleInput struct {
	Font      FontResource
	SizePt    float64 // 名义字号（pt）
	SpacingPt float64 // 名义段后间距（pt），仅部分角色使用
	Color     Color
}

// StyleInputs 汇总一次运行的所有角色输入。
type StyleInputs struct {
	Term          RoleInput
	Pronunciation RoleInput
	Definition    RoleInput
	Quote         RoleInput
	Author        RoleInput
	Align         string
}

// 各角色的缺省名义值（pt），与交互层的默认一致。
const (
	DefaultTermSizePt             = 84.0
	DefaultTermSpacingPt          = 48.0
	DefaultPronunciationSizePt    = 28.0
	DefaultPronunciationSpacingPt = 36.0
	DefaultDefinitionSizePt       = 28.0
	DefaultQuoteSizePt            = 48.0
	DefaultAuthorSizePt           = 24.0

	definitionSpaceBeforeBasePt = 54.0
	authorSpacingBasePt         = 24.0
)

// NewStyles 按文档类型与页面几何构建不可变的样式集合。
func NewStyles(kind records.Kind, g Geometry, in StyleInputs) Styles {
	var s Styles
	switch kind {
	case records.KindEntry:
		s.Term = buildStyle("term", g, in.Term, in.Align, styleRules{
			leadExtraPt: 0,
			spaceAfter:  true,
		})
		s.Pronunciation = buildStyle("pronunciation", g, in.Pronunciation, in.Align, styleRules{
			leadExtraPt: labelLeadBasePt,
			spaceAfter:  true,
		})
		s.Definition = buildStyle("definition", g, in.Definition, in.Align, styleRules{
			leadExtraPt:   definitionLeadBasePt,
			spaceBeforePt: definitionSpaceBeforeBasePt,
		})
	case records.KindQuote:
		s.Quote = buildStyle("quote", g, in.Quote, in.Align, styleRules{
			leadExtraPt: definitionLeadBasePt,
		})
	case records.KindAuthored:
		s.Quote = buildStyle("quote", g, in.Quote, in.Align, styleRules{
			leadExtraPt:  definitionLeadBasePt,
			spaceAfterPt: authorSpacingBasePt,
		})
		s.Author = buildStyle("author", g, in.Author, in.Align, styleRules{
			leadExtraPt: labelLeadBasePt,
		})
	}
	return s
}

type styleRules struct {
	leadExtraPt   float64 // 行距在字号之上的基准增量（随 scale 缩放）
	spaceAfter    bool    // 段后间距取用户名义值
	spaceAfterPt  float64 // 段后间距取固定基准值（随 scale 缩放）
	spaceBeforePt float64 // 段前间距基准值（随 scale 缩放）
}

func buildStyle(role string, g Geometry, in RoleInput, align string, rules styleRules) StyleSpec {
	scaled := ScalePt(in.SizePt, g.Scale)
	spec := StyleSpec{
		Role:         role,
		Font:         in.Font,
		SizePt:       in.SizePt,
		ScaledSizePt: scaled,
		LeadingPt:    scaled + ScalePt(rules.leadExtraPt, g.Scale),
		Align:        align,
		Color:        in.Color,
		IsCustomFont: in.Font.IsCustom,
	}
	if rules.spaceAfter {
		spec.SpaceAfterPt = ScalePt(in.SpacingPt, g.Scale)
	}
	if rules.spaceAfterPt > 0 {
		spec.SpaceAfterPt = ScalePt(rules.spaceAfterPt, g.Scale)
	}
	if rules.spaceBeforePt > 0 {
		spec.SpaceBeforePt = ScalePt(rules.spaceBeforePt, g.Scale)
	}
	return spec
}
