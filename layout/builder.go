package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/placard/records"
)

// Build 将记录序列组装成页面布局：每条有效记录恰好占一页，
// 页面顺序与记录来源顺序一致。所有测量都委托给估算器与定位器，
// 组装本身只负责排序与放置。

// Spec 描述一次生成运行的全部布局输入，创建后不可变。
type Spec struct {
	Kind       records.Kind
	Geometry   Geometry
	Styles     Styles
	Position   Position
	Background Color
	LineColor  Color
	Meta       DocumentMeta
}

// Build 根据记录序列生成页面布局结果。
func Build(recs []records.Record, spec Spec, opts BuildOptions) (*Result, error) {
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	if spec.Geometry.WidthMM <= 0 || spec.Geometry.HeightMM <= 0 {
		return nil, fmt.Errorf("layout: 页面尺寸无效")
	}

	log := opts.logger()
	g := spec.Geometry
	estimator := NewEstimator(opts.Typesetter, g, log)
	result := &Result{Styles: spec.Styles, Meta: spec.Meta}

	for i, rec := range recs {
		plan, ok := planRecord(rec, spec)
		if !ok {
			log.Warnf("第 %d 条记录与文档类型不符，已跳过", i+1)
			continue
		}

		est := estimator.Estimate(plan.segments(), plan.interSpacingPt, g.ContentWidthMM)
		if est.Fallback {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("第 %d 条记录测量失败，使用兜底高度: %v", i+1, est.Reason))
		}
		if Overflows(g.ContentHeightMM, est.MM) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("第 %d 条记录内容高度 %.1fmm 超出内容区 %.1fmm，将向下溢出", i+1, est.MM, g.ContentHeightMM))
		}

		spacer := Spacer(spec.Position, g.ContentHeightMM, est.MM, g.Scale)
		page, err := assemblePage(plan, spec, spacer, opts.Typesetter)
		if err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, page)
	}

	return result, nil
}

// blockPlan 是一条记录的内容块计划：按角色顺序排列的可渲染元素，
// 以及估算所需的段落与固定间距总和。仅在该记录布局期间存活。
type blockPlan struct {
	elements       []blockElement
	interSpacingPt float64
}

type blockElement struct {
	// 二选一：text 段落或 rule 分隔线。
	segment *Segment
	rule    bool
	// 该元素之后的固定间距（已缩放的 pt）。
	gapAfterPt float64
}

func (p blockPlan) segments() []Segment {
	out := make([]Segment, 0, len(p.elements))
	for _, el := range p.elements {
		if el.segment != nil {
			out = append(out, *el.segment)
		}
	}
	return out
}

// planRecord 按文档类型展开一条记录的内容块。
// 返回 false 表示记录与类型不匹配（标签联合指针为空）。
func planRecord(rec records.Record, spec Spec) (blockPlan, bool) {
	s := spec.Styles
	g := spec.Geometry
	switch {
	case rec.Kind == records.KindEntry && rec.Entry != nil:
		e := rec.Entry
		pronunciation := fmt.Sprintf("%s • (%s)", e.Pronunciation, e.Category)
		ruleWidthPt := ScalePt(ruleBasePt, g.Scale)
		plan := blockPlan{
			elements: []blockElement{
				{segment: &Segment{Text: strings.ToLower(e.Term), Style: s.Term}, gapAfterPt: s.Term.SpaceAfterPt},
				{segment: &Segment{Text: pronunciation, Style: s.Pronunciation}, gapAfterPt: s.Pronunciation.SpaceAfterPt},
				{rule: true, gapAfterPt: s.Definition.SpaceBeforePt},
				{segment: &Segment{Text: e.Definition, Style: s.Definition, LongForm: true}},
			},
		}
		plan.interSpacingPt = s.Term.SpaceAfterPt + s.Pronunciation.SpaceAfterPt + ruleWidthPt + s.Definition.SpaceBeforePt
		return plan, true

	case rec.Kind == records.KindQuote && rec.Quote != nil:
		return blockPlan{
			elements: []blockElement{
				{segment: &Segment{Text: rec.Quote.Text, Style: s.Quote, LongForm: true}},
			},
		}, true

	case rec.Kind == records.KindAuthored && rec.Authored != nil:
		a := rec.Authored
		plan := blockPlan{
			elements: []blockElement{
				{segment: &Segment{Text: a.Text, Style: s.Quote, LongForm: true}, gapAfterPt: s.Quote.SpaceAfterPt},
				{segment: &Segment{Text: a.Author, Style: s.Author}},
			},
		}
		plan.interSpacingPt = s.Quote.SpaceAfterPt
		return plan, true
	}
	return blockPlan{}, false
}

// assemblePage 把一条记录的内容块放置到一个新页面上。
// cursorY 从上边距加定位留白开始，元素依次向下堆叠。
func assemblePage(plan blockPlan, spec Spec, spacerMM float64, ts Typesetter) (Page, error) {
	g := spec.Geometry
	page := Page{
		Width:      g.WidthMM,
		Height:     g.HeightMM,
		Margin:     g.MarginMM,
		Background: spec.Background,
	}

	cursorY := g.MarginMM + spacerMM
	for _, el := range plan.elements {
		switch {
		case el.segment != nil:
			tb, height, err := composeTextBox(*el.segment, g.MarginMM, cursorY, g.ContentWidthMM, ts)
			if err != nil {
				return Page{}, err
			}
			page.Texts = append(page.Texts, tb)
			cursorY += height
		case el.rule:
			ruleMM := g.RuleWidthMM()
			page.Lines = append(page.Lines, Line{
				X1:    g.MarginMM,
				Y1:    cursorY + ruleMM/2,
				X2:    g.MarginMM + g.ContentWidthMM,
				Y2:    cursorY + ruleMM/2,
				Color: spec.LineColor,
				Width: ruleMM,
			})
			cursorY += ruleMM
		}
		cursorY += el.gapAfterPt * PtToMm
	}
	return page, nil
}

// composeTextBox 用排版原语把一个段落折行并生成带坐标的文本框。
func composeTextBox(seg Segment, x, y, width float64, ts Typesetter) (TextBox, float64, error) {
	style := seg.Style
	fontSizeMM := style.ScaledSizePt * PtToMm
	lineHeightMM := style.LeadingPt * PtToMm

	lines, err := ts.LayoutLines(seg.Text, width, style.Font, fontSizeMM, lineHeightMM)
	if err != nil {
		return TextBox{}, 0, fmt.Errorf("段落排版失败: %w", err)
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Width: width, Height: fontSizeMM}}
	}

	totalHeight := 0.0
	defaultLeading := math.Max(lineHeightMM-fontSizeMM, 0)
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = fontSizeMM
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = defaultLeading
		}
		totalHeight += lines[i].GapBefore + lines[i].Height
	}

	tb := TextBox{
		Content:    seg.Text,
		X:          x,
		Y:          y,
		Width:      width,
		LineHeight: lineHeightMM,
		Font:       style.Font,
		FontSize:   fontSizeMM,
		Color:      style.Color,
		Lines:      lines,
		Height:     totalHeight,
		Align:      normalizeAlign(style.Align),
	}
	return tb, totalHeight, nil
}

func normalizeAlign(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "center", "middle":
		return "center"
	case "right", "end":
		return "right"
	default:
		return "left"
	}
}
