package tour

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
)

// TestAnchorResolve 测试所有锚点在标准矩形上的解析坐标
func TestAnchorResolve(t *testing.T) {
	r := geometry.NewRect(100, 100, 50, 50)

	tests := []struct {
		name   string
		anchor Anchor
		want   geometry.Point
	}{
		{"上边中点", Top, geometry.Pt(125, 100)},
		{"下边中点", Bottom, geometry.Pt(125, 150)},
		{"左边中点", Leading, geometry.Pt(100, 125)},
		{"右边中点", Trailing, geometry.Pt(150, 125)},
		{"中心", Center, geometry.Pt(125, 125)},
		{"左上角", TopLeading, geometry.Pt(100, 100)},
		{"右上角", TopTrailing, geometry.Pt(150, 100)},
		{"左下角", BottomLeading, geometry.Pt(100, 150)},
		{"右下角", BottomTrailing, geometry.Pt(150, 150)},
		{"上边四分位", AlongTop(0.25), geometry.Pt(112.5, 100)},
		{"下边四分位", AlongBottom(0.75), geometry.Pt(137.5, 150)},
		{"左边中比例", AlongLeading(0.5), geometry.Pt(100, 125)},
		{"右边端点", AlongTrailing(1), geometry.Pt(150, 150)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.anchor.Resolve(r); got != tt.want {
				t.Errorf("期望 %+v，实际为 %+v", tt.want, got)
			}
		})
	}
}

// TestAnchorOppositeInvolutive 性质：对边的对边是自身
func TestAnchorOppositeInvolutive(t *testing.T) {
	kinds := []AnchorKind{
		KindTop, KindBottom, KindLeading, KindTrailing, KindCenter,
		KindTopLeading, KindTopTrailing, KindBottomLeading, KindBottomTrailing,
		KindAlongTop, KindAlongBottom, KindAlongLeading, KindAlongTrailing,
	}

	rapid.Check(t, func(t *rapid.T) {
		a := Anchor{
			Kind:     rapid.SampledFrom(kinds).Draw(t, "kind"),
			Fraction: rapid.Float64Range(0, 1).Draw(t, "fraction"),
		}
		// 非 Along 锚点的比例不参与判等语义，这里统一清零
		if a.Kind < KindAlongTop {
			a.Fraction = 0
		}

		if got := a.Opposite().Opposite(); got != a {
			t.Fatalf("%+v 的对边的对边为 %+v，期望自身", a, got)
		}
	})
}

// TestAnchorOppositeKeepsFraction 测试 Along 锚点对边保留比例
func TestAnchorOppositeKeepsFraction(t *testing.T) {
	a := AlongTop(0.3)
	got := a.Opposite()
	if got.Kind != KindAlongBottom || got.Fraction != 0.3 {
		t.Errorf("期望下边 0.3，实际为 %+v", got)
	}
}

// TestAnchorDefaultAngle 测试锚点默认角度
func TestAnchorDefaultAngle(t *testing.T) {
	tests := []struct {
		anchor Anchor
		want   float64
	}{
		{Top, 0},
		{Center, 0},
		{AlongTop(0.5), 0},
		{Bottom, 180},
		{Leading, 270},
		{Trailing, 90},
		{TopLeading, 315},
		{TopTrailing, 45},
		{BottomLeading, 225},
		{BottomTrailing, 135},
	}

	for _, tt := range tests {
		if got := tt.anchor.DefaultAngle(); got != tt.want {
			t.Errorf("%+v 默认角度期望 %g，实际为 %g", tt.anchor, tt.want, got)
		}
	}
}

// TestAnchorOutward 测试外向向量为单位长度且方向正确
func TestAnchorOutward(t *testing.T) {
	if got := Top.Outward(); got != geometry.Pt(0, -1) {
		t.Errorf("Top 外向期望 (0,-1)，实际为 %+v", got)
	}
	if got := Bottom.Outward(); got != geometry.Pt(0, 1) {
		t.Errorf("Bottom 外向期望 (0,1)，实际为 %+v", got)
	}

	// 角点的外向是单位对角线
	d := TopTrailing.Outward()
	if abs(d.Length()-1) > 1e-9 {
		t.Errorf("角点外向应为单位向量，长度为 %g", d.Length())
	}
	if d.X <= 0 || d.Y >= 0 {
		t.Errorf("右上角外向应指向右上，实际为 %+v", d)
	}
}

// TestResolvedAnchorPointWithOffset 测试箭头锚点解析含偏移
func TestResolvedAnchorPointWithOffset(t *testing.T) {
	arrow := NewArrow(NewElement("panel", "面板"))
	rect := geometry.NewRect(100, 100, 50, 50)

	// 默认锚点为上边中点
	if got := arrow.ResolvedAnchorPoint(rect, false); got != geometry.Pt(125, 100) {
		t.Errorf("期望 (125,100)，实际为 %+v", got)
	}

	arrow.Offset = Fixed(geometry.Pt(4, -6))
	if got := arrow.ResolvedAnchorPoint(rect, false); got != geometry.Pt(129, 94) {
		t.Errorf("含偏移期望 (129,94)，实际为 %+v", got)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
