package geometry

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

// TestPointOperations 测试点的基本运算
func TestPointOperations(t *testing.T) {
	a := Pt(3, 4)
	b := Pt(1, -2)

	if got := a.Add(b); got != Pt(4, 2) {
		t.Errorf("Add: 期望 (4,2)，实际为 %+v", got)
	}
	if got := a.Sub(b); got != Pt(2, 6) {
		t.Errorf("Sub: 期望 (2,6)，实际为 %+v", got)
	}
	if got := a.Scale(2); got != Pt(6, 8) {
		t.Errorf("Scale: 期望 (6,8)，实际为 %+v", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot: 期望 -5，实际为 %g", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length: 期望 5，实际为 %g", got)
	}
	if got := a.Distance(Pt(0, 0)); got != 5 {
		t.Errorf("Distance: 期望 5，实际为 %g", got)
	}
}

// TestNormalized 测试单位化（含零向量退化）
func TestNormalized(t *testing.T) {
	n := Pt(3, 4).Normalized()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("单位向量长度应为 1，实际为 %g", n.Length())
	}

	// 零向量单位化返回零向量，不产生 NaN
	zero := Pt(0, 0).Normalized()
	if zero != Pt(0, 0) {
		t.Errorf("零向量单位化应返回零向量，实际为 %+v", zero)
	}
}

// TestRectQueries 测试矩形查询
func TestRectQueries(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	if got := r.Center(); got != Pt(60, 45) {
		t.Errorf("Center: 期望 (60,45)，实际为 %+v", got)
	}
	if got := r.MaxX(); got != 110 {
		t.Errorf("MaxX: 期望 110，实际为 %g", got)
	}
	if got := r.MaxY(); got != 70 {
		t.Errorf("MaxY: 期望 70，实际为 %g", got)
	}
	if !r.Contains(Pt(10, 20)) {
		t.Error("Contains 应包含左上角")
	}
	if r.Contains(Pt(111, 45)) {
		t.Error("Contains 不应包含右侧界外点")
	}

	other := NewRect(100, 60, 30, 30)
	if !r.Intersects(other) {
		t.Error("期望两矩形相交")
	}
	if r.Intersects(NewRect(200, 200, 10, 10)) {
		t.Error("期望两矩形不相交")
	}
}

// TestRectFromCenter 测试由中心和尺寸构建矩形
func TestRectFromCenter(t *testing.T) {
	r := RectFromCenter(Pt(50, 50), Sz(20, 10))
	want := NewRect(40, 45, 20, 10)
	if r != want {
		t.Errorf("期望 %+v，实际为 %+v", want, r)
	}
	if r.Center() != Pt(50, 50) {
		t.Errorf("中心应保持不变，实际为 %+v", r.Center())
	}
}

// TestRectInsetTranslate 测试矩形内缩与平移
func TestRectInsetTranslate(t *testing.T) {
	r := NewRect(10, 10, 40, 20)

	if got := r.Translate(5, -5); got != NewRect(15, 5, 40, 20) {
		t.Errorf("Translate: 期望 (15,5,40,20)，实际为 %+v", got)
	}
	if got := r.Inset(5); got != NewRect(15, 15, 30, 10) {
		t.Errorf("Inset: 期望 (15,15,30,10)，实际为 %+v", got)
	}
	// 负内缩即外扩
	if got := r.Inset(-5); got != NewRect(5, 5, 50, 30) {
		t.Errorf("外扩: 期望 (5,5,50,30)，实际为 %+v", got)
	}
}

// TestCentroid 测试质心计算
func TestCentroid(t *testing.T) {
	points := []Point{Pt(0, 0), Pt(10, 0), Pt(5, 9)}
	got := Centroid(points)
	if got != Pt(5, 3) {
		t.Errorf("期望质心 (5,3)，实际为 %+v", got)
	}

	if got := Centroid(nil); got != Pt(0, 0) {
		t.Errorf("空集质心应为原点，实际为 %+v", got)
	}
}

// TestClamp 测试钳制（含区间翻转退化）
func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"区间内", 5, 0, 10, 5},
		{"低于下界", -3, 0, 10, 0},
		{"高于上界", 15, 0, 10, 10},
		{"区间翻转取中点", 5, 10, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%g,%g,%g) = %g，期望 %g", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

// TestClampProperty 性质：合法区间下结果总在区间内
func TestClampProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64Range(-1e6, 1e6).Draw(t, "v")
		lo := rapid.Float64Range(-1e6, 0).Draw(t, "lo")
		hi := rapid.Float64Range(0, 1e6).Draw(t, "hi")

		got := Clamp(v, lo, hi)
		if got < lo || got > hi {
			t.Fatalf("Clamp(%g,%g,%g) = %g 超出区间", v, lo, hi, got)
		}
	})
}
