package layout

import (
	"strings"
	"testing"
)

func testStyle(sizePt float64, leadExtraPt float64) StyleSpec {
	return StyleSpec{
		ScaledSizePt: sizePt,
		LeadingPt:    sizePt + leadExtraPt,
	}
}

func newTestEstimator(ts Typesetter) (*Estimator, Geometry) {
	g := NewGeometry(11, 14)
	return NewEstimator(ts, g, nil), g
}

func TestEstimateFallbackOnError(t *testing.T) {
	e, g := newTestEstimator(&failTypesetter{})
	segs := []Segment{{Text: "hello", Style: testStyle(28, 12)}}
	est := e.Estimate(segs, 0, g.ContentWidthMM)
	if !est.Fallback {
		t.Fatalf("测量失败应标记 Fallback")
	}
	if est.Reason == nil {
		t.Fatalf("Fallback 结果应携带原因")
	}
	want := fallbackHeightBaseIn * g.Scale * InToMm
	if est.MM != want {
		t.Fatalf("兜底高度错误: got=%g want=%g", est.MM, want)
	}
}

// TestEstimateMonotonicWithLength 验证更长的正文不会得到更小的估算高度。
func TestEstimateMonotonicWithLength(t *testing.T) {
	e, g := newTestEstimator(&stubTypesetter{})
	style := testStyle(28, 12)
	prev := 0.0
	for _, n := range []int{5, 25, 100, 400} {
		text := strings.TrimSpace(strings.Repeat("word ", n))
		est := e.Estimate([]Segment{{Text: text, Style: style, LongForm: true}}, 0, g.ContentWidthMM)
		if est.Fallback {
			t.Fatalf("不应降级: %v", est.Reason)
		}
		if est.MM < prev {
			t.Fatalf("估算高度应随文本长度单调不减: %d 词时 %g < %g", n, est.MM, prev)
		}
		prev = est.MM
	}
}

// TestEstimateCustomFontCorrection 验证自定义字体会增加估算高度并置位标记。
func TestEstimateCustomFontCorrection(t *testing.T) {
	e, g := newTestEstimator(&stubTypesetter{})
	builtin := Segment{Text: "hello world", Style: testStyle(48, 12)}
	custom := builtin
	custom.Style.IsCustomFont = true

	base := e.Estimate([]Segment{builtin}, 0, g.ContentWidthMM)
	padded := e.Estimate([]Segment{custom}, 0, g.ContentWidthMM)
	if !padded.CustomFont {
		t.Fatalf("应标记包含自定义字体")
	}
	if !(padded.MM > base.MM) {
		t.Fatalf("自定义字体修正应增加高度: %g vs %g", padded.MM, base.MM)
	}
}

// TestEstimateNonASCIICorrection 验证非 ASCII 文本触发一次性的固定补偿。
func TestEstimateNonASCIICorrection(t *testing.T) {
	e, g := newTestEstimator(&stubTypesetter{})
	style := testStyle(48, 12)
	ascii := e.Estimate([]Segment{{Text: "plain text", Style: style}}, 0, g.ContentWidthMM)
	extended := e.Estimate([]Segment{{Text: "plain tëxt", Style: style}}, 0, g.ContentWidthMM)
	if ascii.NonASCII {
		t.Fatalf("纯 ASCII 不应置位标记")
	}
	if !extended.NonASCII {
		t.Fatalf("含扩展字符应置位标记")
	}
	if !(extended.MM > ascii.MM) {
		t.Fatalf("非 ASCII 修正应增加高度: %g vs %g", extended.MM, ascii.MM)
	}
}

// TestEstimateLongFormLineCount 验证长文本修正只作用于正文段落，
// 且行数估算随可用宽度变化。
func TestEstimateLongFormLineCount(t *testing.T) {
	e, g := newTestEstimator(&stubTypesetter{})
	style := testStyle(28, 12)
	text := strings.TrimSpace(strings.Repeat("lorem ipsum ", 60))

	long := e.Estimate([]Segment{{Text: text, Style: style, LongForm: true}}, 0, g.ContentWidthMM)
	if long.LineCount <= 2 {
		t.Fatalf("长文本估算行数应大于 2: got=%d", long.LineCount)
	}
	short := e.Estimate([]Segment{{Text: text, Style: style}}, 0, g.ContentWidthMM)
	if short.LineCount != 0 {
		t.Fatalf("非正文段落不应参与长文本修正: got=%d", short.LineCount)
	}

	// 更窄的可用宽度意味着更多行。
	narrow := e.Estimate([]Segment{{Text: text, Style: style, LongForm: true}}, 0, g.ContentWidthMM/2)
	if narrow.LineCount <= long.LineCount {
		t.Fatalf("更窄的宽度应估出更多行: %d vs %d", narrow.LineCount, long.LineCount)
	}
}

// TestEstimateInterSpacingAdds 验证固定间距按 pt→mm 进入总高度。
func TestEstimateInterSpacingAdds(t *testing.T) {
	e, g := newTestEstimator(&stubTypesetter{})
	segs := []Segment{{Text: "hi", Style: testStyle(28, 0)}}
	without := e.Estimate(segs, 0, g.ContentWidthMM)
	with := e.Estimate(segs, 100, g.ContentWidthMM)
	wantDelta := 100 * PtToMm * safetyFactor
	delta := with.MM - without.MM
	if abs(delta-wantDelta) > 1e-9 {
		t.Fatalf("固定间距增量错误: got=%g want=%g", delta, wantDelta)
	}
}
