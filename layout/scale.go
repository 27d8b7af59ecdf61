package layout

import "math"

// 比例模型：所有尺寸常量都定义在 11×14 英寸的基准页上，
// 目标页面只产生一个无量纲的缩放系数，乘在每一个常量上。
// 宽高比偏离 11:14 时取两个分量比例的平均值，换取各向同性的结果。

const (
	baselineWidthIn  = 11.0
	baselineHeightIn = 14.0

	// 基准页上的固定常量（margin 为英寸，其余为 pt）。
	marginBaseIn = 1.5
	ruleBasePt   = 4.0

	// 估算修正用常量（pt，见 estimate.go）。
	definitionLeadBasePt = 12.0
	labelLeadBasePt      = 4.0
	longTextPadBasePt    = 8.0
	nonASCIIPadBasePt    = 6.0
	bottomReserveBasePt  = 20.0

	// 估算完全失败时的兜底高度（英寸）。
	fallbackHeightBaseIn = 8.0
)

// Scale 依据目标页宽高（英寸）计算缩放系数。
// 在 11:14 基准比例上，scale == width/11 == height/14；
// 偏离该比例时结果严格位于两个分量比例之间。
func Scale(widthIn, heightIn float64) float64 {
	return (widthIn/baselineWidthIn + heightIn/baselineHeightIn) / 2
}

// ScalePt 将基准 pt 值按比例缩放并向下取整。
// 渲染原语对整数字号的稳定性更好，也保证同一输入在任何平台上可复现。
func ScalePt(basePt, scale float64) float64 {
	return math.Trunc(basePt * scale)
}

// Geometry 描述一次生成运行的页面几何信息。
// 构建一次后不可变，所有派生值在 NewGeometry 中算好。
type Geometry struct {
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`
	Scale    float64 `json:"scale"`

	WidthMM  float64 `json:"widthMM"`
	HeightMM float64 `json:"heightMM"`
	MarginMM float64 `json:"marginMM"`

	ContentWidthMM  float64 `json:"contentWidthMM"`
	ContentHeightMM float64 `json:"contentHeightMM"`
}

// NewGeometry 由页宽高（英寸）派生完整几何信息。
func NewGeometry(widthIn, heightIn float64) Geometry {
	scale := Scale(widthIn, heightIn)
	widthMM := widthIn * InToMm
	heightMM := heightIn * InToMm
	marginMM := marginBaseIn * scale * InToMm
	return Geometry{
		WidthIn:         widthIn,
		HeightIn:        heightIn,
		Scale:           scale,
		WidthMM:         widthMM,
		HeightMM:        heightMM,
		MarginMM:        marginMM,
		ContentWidthMM:  widthMM - 2*marginMM,
		ContentHeightMM: heightMM - 2*marginMM,
	}
}

// RuleWidthMM 返回分隔线线宽（mm）。
func (g Geometry) RuleWidthMM() float64 {
	return ScalePt(ruleBasePt, g.Scale) * PtToMm
}

// scaledPtToMM 是内部常用的换算：先缩放取整再转 mm。
func (g Geometry) scaledPtToMM(basePt float64) float64 {
	return ScalePt(basePt, g.Scale) * PtToMm
}
