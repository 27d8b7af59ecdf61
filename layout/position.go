package layout

// 垂直定位：给定估算的内容块高度与可用内容区高度，
// 计算块顶部之前的留白，使内容落在请求的位置上。
// 结果永远非负；内容超出内容区时留白归零，块向下溢出（降级行为）。

// Position 是垂直定位策略。
type Position string

const (
	PositionTop    Position = "top"
	PositionMiddle Position = "middle"
	PositionBottom Position = "bottom"
)

// NormalizePosition 规范化用户输入的定位值，未知值回退为 top。
func NormalizePosition(s string) Position {
	switch Position(s) {
	case PositionTop, PositionMiddle, PositionBottom:
		return Position(s)
	default:
		return PositionTop
	}
}

// Spacer 计算内容块之前的留白高度（mm）。
//   - top：留白为 0，内容紧贴上边距向下排；
//   - middle：内容块在内容区内居中；
//   - bottom：内容块的底边对齐下边距，并额外预留 20×scale 的保守余量，
//     底部定位对估算误差最敏感，任何少估都会直接在页底可见。
//
// 估算块高超过内容区时留白取 0，由调用方将溢出记为警告。
func Spacer(pos Position, contentAreaMM, blockMM, scale float64) float64 {
	var spacer float64
	switch pos {
	case PositionMiddle:
		spacer = (contentAreaMM - blockMM) / 2
	case PositionBottom:
		reserve := ScalePt(bottomReserveBasePt, scale) * PtToMm
		spacer = contentAreaMM - blockMM - reserve
	default:
		spacer = 0
	}
	if spacer < 0 {
		spacer = 0
	}
	return spacer
}

// Overflows 报告估算块高是否超出内容区。
func Overflows(contentAreaMM, blockMM float64) bool {
	return blockMM > contentAreaMM
}
