package tour

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
)

// TestPlaceLabel 测试标签初始摆放贴合箭杆起点
func TestPlaceLabel(t *testing.T) {
	arrow := NewArrow(NewElement("panel", "面板"))
	// 默认锚点 Top：箭杆起点在锚点正上方 60 像素，
	// 标签的 FromAnchor 默认为 Bottom（锚点对边）
	anchorPt := geometry.Pt(125, 100)
	size := geometry.Sz(80, 30)

	label := PlaceLabel(arrow, anchorPt, size, false)

	// 箭杆起点 = (125, 40)，标签下边中点应恰好落在起点上
	wantStart := geometry.Pt(125, 40)
	if got := label.StemStart(false); got.Distance(wantStart) > 1e-9 {
		t.Errorf("期望箭杆起点 %+v，实际为 %+v", wantStart, got)
	}
	// 标签中心在起点上方半个标签高
	if got := label.Center; got.Distance(geometry.Pt(125, 25)) > 1e-9 {
		t.Errorf("期望标签中心 (125,25)，实际为 %+v", got)
	}
	if label.Size != size {
		t.Errorf("标签尺寸不应改变，实际为 %+v", label.Size)
	}
}

// TestResolveOverlapsSeparates 测试两个重叠标签被推开到期望间距
func TestResolveOverlapsSeparates(t *testing.T) {
	size := geometry.Sz(40, 20)
	a := &ResolvedLabel{Size: size, Center: geometry.Pt(50, 50)}
	b := &ResolvedLabel{Size: size, Center: geometry.Pt(52, 50)}

	ResolveOverlaps([]*ResolvedLabel{a, b})

	// 宽标签几乎同心：绝对重叠量垂直方向更小（28 < 46），
	// 但相对重叠水平方向更小（46/96 < 28/56），应沿 X 推开；
	// 外扩矩形不再相交即中心距 >= 宽度 + 间距 = 48
	gap := b.Center.X - a.Center.X
	if gap < 48 {
		t.Errorf("期望中心距至少 48，实际为 %g", gap)
	}
	// 推开保持原有左右次序
	if a.Center.X >= b.Center.X {
		t.Error("避让不应交换标签次序")
	}
	// 垂直方向不动
	if a.Center.Y != 50 || b.Center.Y != 50 {
		t.Error("沿 X 推开时 Y 不应变化")
	}
}

// TestResolveOverlapsVertical 测试垂直重叠较小时沿 Y 推开
func TestResolveOverlapsVertical(t *testing.T) {
	size := geometry.Sz(100, 20)
	a := &ResolvedLabel{Size: size, Center: geometry.Pt(50, 50)}
	b := &ResolvedLabel{Size: size, Center: geometry.Pt(55, 53)}

	ResolveOverlaps([]*ResolvedLabel{a, b})

	if a.Center.X != 50 || b.Center.X != 55 {
		t.Error("沿 Y 推开时 X 不应变化")
	}
	if b.Center.Y-a.Center.Y < 28 {
		t.Errorf("期望垂直中心距至少 28，实际为 %g", b.Center.Y-a.Center.Y)
	}
}

// TestResolveOverlapsTallLabels 测试高标签几乎同心时沿 Y 推开
// （与 TestResolveOverlapsSeparates 镜像：绝对重叠量会选错轴）
func TestResolveOverlapsTallLabels(t *testing.T) {
	size := geometry.Sz(20, 60)
	a := &ResolvedLabel{Size: size, Center: geometry.Pt(50, 50)}
	b := &ResolvedLabel{Size: size, Center: geometry.Pt(50, 52)}

	ResolveOverlaps([]*ResolvedLabel{a, b})

	if a.Center.X != 50 || b.Center.X != 50 {
		t.Error("沿 Y 推开时 X 不应变化")
	}
	// 中心距 >= 高度 + 间距 = 68
	if gap := b.Center.Y - a.Center.Y; gap < 68 {
		t.Errorf("期望垂直中心距至少 68，实际为 %g", gap)
	}
	if a.Center.Y >= b.Center.Y {
		t.Error("避让不应交换标签次序")
	}
}

// TestResolveOverlapsNoop 测试无重叠与退化输入不动任何标签
func TestResolveOverlapsNoop(t *testing.T) {
	size := geometry.Sz(40, 20)

	// 相距很远的标签不动
	a := &ResolvedLabel{Size: size, Center: geometry.Pt(0, 0)}
	b := &ResolvedLabel{Size: size, Center: geometry.Pt(200, 200)}
	ResolveOverlaps([]*ResolvedLabel{a, b})
	if a.Center != geometry.Pt(0, 0) || b.Center != geometry.Pt(200, 200) {
		t.Error("无重叠时标签不应移动")
	}

	// 单个标签与空列表直接返回
	ResolveOverlaps([]*ResolvedLabel{a})
	ResolveOverlaps(nil)
	if a.Center != geometry.Pt(0, 0) {
		t.Error("单个标签不应移动")
	}
}

// TestResolveOverlapsPairProperty 性质：任意一对标签松弛后必然分开
// （单对重叠每轮减少 重叠量+1，轮数上限内必收敛）
func TestResolveOverlapsPairProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		newLabel := func(prefix string) *ResolvedLabel {
			return &ResolvedLabel{
				Size: geometry.Sz(
					rapid.Float64Range(20, 120).Draw(t, prefix+"w"),
					rapid.Float64Range(16, 40).Draw(t, prefix+"h"),
				),
				Center: geometry.Pt(
					rapid.Float64Range(0, 200).Draw(t, prefix+"x"),
					rapid.Float64Range(0, 200).Draw(t, prefix+"y"),
				),
			}
		}
		a := newLabel("a")
		b := newLabel("b")

		ResolveOverlaps([]*ResolvedLabel{a, b})

		ra := a.Rect().Inset(-labelPadding / 2)
		rb := b.Rect().Inset(-labelPadding / 2)
		w := min(ra.MaxX(), rb.MaxX()) - max(ra.X, rb.X)
		h := min(ra.MaxY(), rb.MaxY()) - max(ra.Y, rb.Y)
		if w > 0 && h > 0 {
			t.Fatalf("松弛后仍有重叠: a=%+v b=%+v", a.Rect(), b.Rect())
		}
	})
}
