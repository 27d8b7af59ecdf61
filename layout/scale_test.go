package layout

import (
	"math"
	"testing"
)

// TestScaleBaselineRatio 验证在 11:14 比例上 scale 与两个分量比例相等。
func TestScaleBaselineRatio(t *testing.T) {
	cases := [][2]float64{{11, 14}, {22, 28}, {5.5, 7}}
	for _, c := range cases {
		s := Scale(c[0], c[1])
		wr := c[0] / 11.0
		hr := c[1] / 14.0
		if math.Abs(s-wr) > 1e-9 || math.Abs(s-hr) > 1e-9 {
			t.Fatalf("%gx%g: scale=%g 应等于宽比 %g 与高比 %g", c[0], c[1], s, wr, hr)
		}
	}
	if s := Scale(11, 14); math.Abs(s-1) > 1e-9 {
		t.Fatalf("基准页 scale 应为 1，实际 %g", s)
	}
}

// TestScaleOffRatioBetween 验证偏离基准比例时结果严格位于两个分量比例之间。
func TestScaleOffRatioBetween(t *testing.T) {
	cases := [][2]float64{{16, 20}, {18, 24}, {24, 36}, {33.1, 46.8}}
	for _, c := range cases {
		s := Scale(c[0], c[1])
		wr := c[0] / 11.0
		hr := c[1] / 14.0
		lo, hi := math.Min(wr, hr), math.Max(wr, hr)
		if !(s > lo && s < hi) {
			t.Fatalf("%gx%g: scale=%g 应严格位于 (%g, %g) 之间", c[0], c[1], s, lo, hi)
		}
	}
}

func TestScalePtTruncates(t *testing.T) {
	if got := ScalePt(84, 1.0); got != 84 {
		t.Fatalf("基准比例下不应改变: got=%g", got)
	}
	// 84 × 1.4545… = 122.18… → 122
	s := Scale(16, 20)
	if got := ScalePt(84, s); got != math.Trunc(84*s) {
		t.Fatalf("缩放结果应向下取整: got=%g", got)
	}
	if got := ScalePt(84, s); got != math.Floor(got) {
		t.Fatalf("结果应为整数: got=%g", got)
	}
}

func TestGeometryDerivedValues(t *testing.T) {
	g := NewGeometry(11, 14)
	if math.Abs(g.WidthMM-11*InToMm) > 1e-9 || math.Abs(g.HeightMM-14*InToMm) > 1e-9 {
		t.Fatalf("页面毫米尺寸错误: %g x %g", g.WidthMM, g.HeightMM)
	}
	if math.Abs(g.MarginMM-1.5*InToMm) > 1e-9 {
		t.Fatalf("基准页边距应为 1.5in: got=%gmm", g.MarginMM)
	}
	if math.Abs(g.ContentWidthMM-(g.WidthMM-2*g.MarginMM)) > 1e-9 {
		t.Fatalf("内容区宽度错误: got=%g", g.ContentWidthMM)
	}
	if math.Abs(g.ContentHeightMM-(g.HeightMM-2*g.MarginMM)) > 1e-9 {
		t.Fatalf("内容区高度错误: got=%g", g.ContentHeightMM)
	}

	// 边距随 scale 线性放大。
	big := NewGeometry(22, 28)
	if math.Abs(big.MarginMM-2*g.MarginMM) > 1e-9 {
		t.Fatalf("两倍页面的边距应翻倍: got=%g want=%g", big.MarginMM, 2*g.MarginMM)
	}
}
