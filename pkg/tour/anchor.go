package tour

import (
	"math"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
)

// AnchorKind 锚点种类
//
// 锚点是矩形边界（或中心）上的一个符号化位置。
// 四个 Along 变体带一个 [0,1] 的比例参数，表示沿该边的位置。
// Leading/Trailing 即左/右边（从左到右书写方向）。
type AnchorKind int

const (
	KindTop AnchorKind = iota
	KindBottom
	KindLeading
	KindTrailing
	KindCenter
	KindTopLeading
	KindTopTrailing
	KindBottomLeading
	KindBottomTrailing
	KindAlongTop      // Fraction 生效
	KindAlongBottom   // Fraction 生效
	KindAlongLeading  // Fraction 生效
	KindAlongTrailing // Fraction 生效
)

// Anchor 矩形上的符号化锚点
//
// 零值即 Top（上边中点）。Anchor 是可比较的值类型，
// 可以直接用 == 判等。
type Anchor struct {
	Kind AnchorKind

	// Fraction 仅对 Along 系列锚点生效，表示沿边比例 [0,1]
	Fraction float64
}

// 固定锚点的预定义值
var (
	Top            = Anchor{Kind: KindTop}
	Bottom         = Anchor{Kind: KindBottom}
	Leading        = Anchor{Kind: KindLeading}
	Trailing       = Anchor{Kind: KindTrailing}
	Center         = Anchor{Kind: KindCenter}
	TopLeading     = Anchor{Kind: KindTopLeading}
	TopTrailing    = Anchor{Kind: KindTopTrailing}
	BottomLeading  = Anchor{Kind: KindBottomLeading}
	BottomTrailing = Anchor{Kind: KindBottomTrailing}
)

// AlongTop 返回上边上比例位置 f 处的锚点
func AlongTop(f float64) Anchor {
	return Anchor{Kind: KindAlongTop, Fraction: f}
}

// AlongBottom 返回下边上比例位置 f 处的锚点
func AlongBottom(f float64) Anchor {
	return Anchor{Kind: KindAlongBottom, Fraction: f}
}

// AlongLeading 返回左边上比例位置 f 处的锚点
func AlongLeading(f float64) Anchor {
	return Anchor{Kind: KindAlongLeading, Fraction: f}
}

// AlongTrailing 返回右边上比例位置 f 处的锚点
func AlongTrailing(f float64) Anchor {
	return Anchor{Kind: KindAlongTrailing, Fraction: f}
}

// Resolve 将锚点解析为矩形上的具体坐标
//
// 对任意合法矩形总能得到一个点，没有失败路径。
func (a Anchor) Resolve(r geometry.Rect) geometry.Point {
	switch a.Kind {
	case KindTop:
		return geometry.Pt(r.X+r.Width/2, r.Y)
	case KindBottom:
		return geometry.Pt(r.X+r.Width/2, r.Y+r.Height)
	case KindLeading:
		return geometry.Pt(r.X, r.Y+r.Height/2)
	case KindTrailing:
		return geometry.Pt(r.X+r.Width, r.Y+r.Height/2)
	case KindCenter:
		return r.Center()
	case KindTopLeading:
		return geometry.Pt(r.X, r.Y)
	case KindTopTrailing:
		return geometry.Pt(r.X+r.Width, r.Y)
	case KindBottomLeading:
		return geometry.Pt(r.X, r.Y+r.Height)
	case KindBottomTrailing:
		return geometry.Pt(r.X+r.Width, r.Y+r.Height)
	case KindAlongTop:
		return geometry.Pt(r.X+a.Fraction*r.Width, r.Y)
	case KindAlongBottom:
		return geometry.Pt(r.X+a.Fraction*r.Width, r.Y+r.Height)
	case KindAlongLeading:
		return geometry.Pt(r.X, r.Y+a.Fraction*r.Height)
	case KindAlongTrailing:
		return geometry.Pt(r.X+r.Width, r.Y+a.Fraction*r.Height)
	}
	return r.Center()
}

// Opposite 返回对边锚点
//
// 对合性：对任意锚点 a，a.Opposite().Opposite() == a。
// Along 锚点的对边锚点保留相同比例；Center 的对边是其自身。
func (a Anchor) Opposite() Anchor {
	switch a.Kind {
	case KindTop:
		return Bottom
	case KindBottom:
		return Top
	case KindLeading:
		return Trailing
	case KindTrailing:
		return Leading
	case KindCenter:
		return Center
	case KindTopLeading:
		return BottomTrailing
	case KindTopTrailing:
		return BottomLeading
	case KindBottomLeading:
		return TopTrailing
	case KindBottomTrailing:
		return TopLeading
	case KindAlongTop:
		return Anchor{Kind: KindAlongBottom, Fraction: a.Fraction}
	case KindAlongBottom:
		return Anchor{Kind: KindAlongTop, Fraction: a.Fraction}
	case KindAlongLeading:
		return Anchor{Kind: KindAlongTrailing, Fraction: a.Fraction}
	case KindAlongTrailing:
		return Anchor{Kind: KindAlongLeading, Fraction: a.Fraction}
	}
	return a
}

// DefaultAngle 返回锚点的默认罗盘角度（度）
//
// 罗盘角度约定：0° 朝上，顺时针增加（90° 朝右）。
// 箭头的 Angle 未显式设置时使用此值。
func (a Anchor) DefaultAngle() float64 {
	switch a.Kind {
	case KindTop, KindAlongTop, KindCenter:
		return 0
	case KindBottom, KindAlongBottom:
		return 180
	case KindLeading, KindAlongLeading:
		return 270
	case KindTrailing, KindAlongTrailing:
		return 90
	case KindTopLeading:
		return 315
	case KindTopTrailing:
		return 45
	case KindBottomLeading:
		return 225
	case KindBottomTrailing:
		return 135
	}
	return 0
}

// Outward 返回锚点的外向单位向量（屏幕坐标，Y 轴向下）
//
// 自动弯曲方向的判定依赖此向量：曲线总是向远离元素本体的一侧弯曲。
func (a Anchor) Outward() geometry.Point {
	const d = math.Sqrt2 / 2
	switch a.Kind {
	case KindTop, KindAlongTop, KindCenter:
		return geometry.Pt(0, -1)
	case KindBottom, KindAlongBottom:
		return geometry.Pt(0, 1)
	case KindLeading, KindAlongLeading:
		return geometry.Pt(-1, 0)
	case KindTrailing, KindAlongTrailing:
		return geometry.Pt(1, 0)
	case KindTopLeading:
		return geometry.Pt(-d, -d)
	case KindTopTrailing:
		return geometry.Pt(d, -d)
	case KindBottomLeading:
		return geometry.Pt(-d, d)
	case KindBottomTrailing:
		return geometry.Pt(d, d)
	}
	return geometry.Pt(0, -1)
}

// offsetFromCenter 返回锚点相对矩形中心的偏移量
// 用于由锚点位置反推矩形中心（标签摆放）
func (a Anchor) offsetFromCenter(size geometry.Size) geometry.Point {
	r := geometry.Rect{
		X:      -size.Width / 2,
		Y:      -size.Height / 2,
		Width:  size.Width,
		Height: size.Height,
	}
	return a.Resolve(r)
}
