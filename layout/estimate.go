package layout

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// 高度估算器：在真正绘制之前预测一条记录渲染后的垂直占用。
// 外部排版引擎只保证折行正确，不保证高度报告精确，
// 因此每一项修正都只加不减：宁可多留白，不可让内容溢出页底。

// safetyFactor 是在所有修正之后追加的整体安全余量。
const safetyFactor = 1.10

// Segment 是估算的最小单位：一段文本及其样式。
// LongForm 标记正文类段落（释义、引文），它们才参与长文本修正。
type Segment struct {
	Text     string
	Style    StyleSpec
	LongForm bool
}

// EstimatedHeight 携带估算结果与其推导输入。
// Fallback 为 true 表示测量失败，高度来自固定兜底值；
// 调用方据此记录降级测量，而不依赖隐式的控制流拦截。
type EstimatedHeight struct {
	MM         float64
	LineCount  int  // 长文本修正使用的估算行数
	CustomFont bool // 是否包含动态注册的用户字体
	NonASCII   bool // 是否包含码点大于 127 的字符
	Fallback   bool
	Reason     error
}

// Estimator 持有估算所需的排版后端与页面几何。
type Estimator struct {
	ts  Typesetter
	g   Geometry
	log *zap.SugaredLogger
}

// NewEstimator 创建估算器。log 为 nil 时静默。
func NewEstimator(ts Typesetter, g Geometry, log *zap.SugaredLogger) *Estimator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Estimator{ts: ts, g: g, log: log}
}

// Estimate 估算一组文本段落的总渲染高度（mm）。
// interSpacingPt 是段落之间全部固定间距之和（已缩放的 pt，
// 包括段后间距、分隔线宽与释义段前间距），由调用方按文档类型汇总。
//
// 算法：
//  1. 每个段落用极大高度约束调用排版原语，只允许折行、不允许截断，
//     累加折行后的实际高度；
//  2. 加上 interSpacingPt；
//  3. 依次叠加保守修正（自定义字体、行距补偿、长文本、非 ASCII），
//     各项相互独立、只加不减；
//  4. 总和再乘 10% 安全余量。
//
// 任何一步测量失败都不会中断整个运行：返回固定兜底高度并标记 Fallback。
func (e *Estimator) Estimate(segments []Segment, interSpacingPt float64, widthMM float64) EstimatedHeight {
	total := 0.0
	result := EstimatedHeight{}

	for _, seg := range segments {
		h, err := e.wrappedHeight(seg, widthMM)
		if err != nil {
			reason := fmt.Errorf("段落测量失败: %w", err)
			e.log.Warnf("高度估算失败，使用保守兜底值: %v", reason)
			return EstimatedHeight{
				MM:       fallbackHeightBaseIn * e.g.Scale * InToMm,
				Fallback: true,
				Reason:   reason,
			}
		}
		total += h
	}
	total += interSpacingPt * PtToMm

	// 自定义字体修正：动态注册字体的度量不可信，按字号的 20% 补偿。
	for _, seg := range segments {
		if seg.Style.IsCustomFont {
			result.CustomFont = true
			total += seg.Style.ScaledSizePt * 0.20 * PtToMm
		}
	}

	// 行距补偿：排版引擎对行距大于字号的段落会多出收尾空白。
	for _, seg := range segments {
		if extra := seg.Style.LeadingPt - seg.Style.ScaledSizePt; extra > 0 {
			total += extra * PtToMm
		}
	}

	// 长文本修正：引擎对多行长段落可能少报高度。
	for _, seg := range segments {
		if !seg.LongForm {
			continue
		}
		count := e.estimateLineCount(seg, widthMM)
		if count > result.LineCount {
			result.LineCount = count
		}
		if count > 2 {
			total += float64(count) * e.g.scaledPtToMM(longTextPadBasePt)
		}
	}

	// 非 ASCII 修正：扩展文字的字形度量波动更大，补一个固定量。
	for _, seg := range segments {
		if hasNonASCII(seg.Text) {
			result.NonASCII = true
			total += e.g.scaledPtToMM(nonASCIIPadBasePt)
			break
		}
	}

	result.MM = total * safetyFactor
	return result
}

// wrappedHeight 用排版原语求一个段落在给定宽度下折行后的高度（mm）。
func (e *Estimator) wrappedHeight(seg Segment, widthMM float64) (float64, error) {
	if e.ts == nil {
		return 0, fmt.Errorf("缺少排版后端 Typesetter")
	}
	sizeMM := seg.Style.ScaledSizePt * PtToMm
	leadMM := seg.Style.LeadingPt * PtToMm
	lines, err := e.ts.LayoutLines(seg.Text, widthMM, seg.Style.Font, sizeMM, leadMM)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for i, ln := range lines {
		h := ln.Height
		if h <= 0 {
			h = sizeMM
		}
		gap := ln.GapBefore
		if i == 0 {
			gap = 0
		} else if gap <= 0 {
			gap = math.Max(leadMM-h, 0)
		}
		total += gap + h
	}
	if total <= 0 {
		total = sizeMM
	}
	return total, nil
}

// estimateLineCount 粗估一个段落折行后的行数。
// 每行字符数由可用宽度与平均字形宽度推出，而不是固定的 80 字符假设。
func (e *Estimator) estimateLineCount(seg Segment, widthMM float64) int {
	glyphMM := seg.Style.ScaledSizePt * 0.55 * PtToMm
	if glyphMM <= 0 || widthMM <= 0 {
		return 1
	}
	charsPerLine := int(widthMM / glyphMM)
	if charsPerLine < 1 {
		charsPerLine = 1
	}
	count := len(seg.Text) / charsPerLine
	if count < 1 {
		count = 1
	}
	return count
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}
