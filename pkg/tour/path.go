package tour

import (
	"math"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
)

const (
	// minStemDistance 起终点最小距离，防止退化几何除零
	minStemDistance = 1.0

	// controlDistanceCap 控制点位移的距离上限，避免长箭头过度外弓
	controlDistanceCap = 160.0

	// 箭头头部参数：两翼相对末端切线各偏转 headAngleDeg 度，
	// 翼长随箭头全长缩放并夹在 [headLengthMin, headLengthMax]
	headAngleDeg    = 36.0
	headLengthRatio = 0.12
	headLengthMin   = 10.0
	headLengthMax   = 16.0
)

// ArrowStart 计算箭杆起点：从锚点沿罗盘角度 angleDeg 前进 length
//
// 罗盘角度 0° 朝上、顺时针增加；屏幕坐标 Y 轴向下，
// 因此 x += length·sin(θ)，y -= length·cos(θ)。
func ArrowStart(anchor geometry.Point, angleDeg, length float64) geometry.Point {
	rad := angleDeg * math.Pi / 180
	return geometry.Pt(
		anchor.X+length*math.Sin(rad),
		anchor.Y-length*math.Cos(rad),
	)
}

// Curvature 计算带符号的曲率系数
//
// 符号约定基于行进方向（start→end）的垂直向量
// perp = (dy, -dx)/|d|（屏幕坐标下指向行进方向左侧）：
// 正值向 perp 一侧弯，负值向另一侧弯。
//
//   - BendNone：0
//   - BendLeft / BendRight：±强度
//   - BendAuto：取 perp 与锚点外向向量点积的符号，
//     使曲线始终向远离元素本体的一侧外弓
func Curvature(start, end geometry.Point, bend Bend, strength BendStrength, outward geometry.Point) float64 {
	if bend == BendNone {
		return 0
	}
	mag := strength.Magnitude()
	switch bend {
	case BendLeft:
		return mag
	case BendRight:
		return -mag
	}
	perp := perpendicular(start, end)
	if perp.Dot(outward) < 0 {
		return -mag
	}
	return mag
}

// perpendicular 返回 start→end 方向的单位垂直向量（左侧）
// 距离退化时以最小距离 1 处理方向，避免除零
func perpendicular(start, end geometry.Point) geometry.Point {
	d := end.Sub(start)
	dist := d.Length()
	if dist < minStemDistance {
		dist = minStemDistance
	}
	return geometry.Pt(d.Y/dist, -d.X/dist)
}

// ArrowPath 一条解析完成的箭头曲线
//
// 曲线是从 Start 到 End 的二次贝塞尔；Control 是起终点中点沿
// 垂直方向位移后的控制点。HeadLeft/HeadRight 是箭头两翼线段的
// 外侧端点（两翼内侧端点都是 End）。
type ArrowPath struct {
	Start   geometry.Point
	Control geometry.Point
	End     geometry.Point

	HeadLeft  geometry.Point
	HeadRight geometry.Point
}

// BuildArrowPath 由起点、终点与曲率构建完整箭头几何
//
// 控制点位移量 = curvature · min(distance, controlDistanceCap)，
// 距离下限为 1（退化输入不会产生除零）。
func BuildArrowPath(start, end geometry.Point, curvature float64) ArrowPath {
	dist := start.Distance(end)
	if dist < minStemDistance {
		dist = minStemDistance
	}
	perp := perpendicular(start, end)
	mid := start.Add(end).Scale(0.5)
	control := mid.Add(perp.Scale(curvature * math.Min(dist, controlDistanceCap)))

	// 末端切线：二次贝塞尔在 t=1 处方向为 End-Control；
	// 控制点与终点重合时退回弦方向
	tangent := end.Sub(control).Normalized()
	if tangent == (geometry.Point{}) {
		tangent = end.Sub(start).Normalized()
	}
	if tangent == (geometry.Point{}) {
		tangent = geometry.Pt(0, 1)
	}

	headLen := geometry.Clamp(dist*headLengthRatio, headLengthMin, headLengthMax)
	back := tangent.Scale(-1)
	headRad := headAngleDeg * math.Pi / 180
	return ArrowPath{
		Start:     start,
		Control:   control,
		End:       end,
		HeadLeft:  end.Add(rotate(back, -headRad).Scale(headLen)),
		HeadRight: end.Add(rotate(back, headRad).Scale(headLen)),
	}
}

// PointAt 返回曲线上参数 t ∈ [0,1] 处的点
// 渲染层据此把曲线离散成线段绘制
func (p ArrowPath) PointAt(t float64) geometry.Point {
	u := 1 - t
	a := p.Start.Scale(u * u)
	b := p.Control.Scale(2 * u * t)
	c := p.End.Scale(t * t)
	return a.Add(b).Add(c)
}

// Length 返回起终点弦长（非弧长，用于粗略的尺寸判断）
func (p ArrowPath) Length() float64 {
	return p.Start.Distance(p.End)
}

// rotate 将向量 v 旋转 rad 弧度（屏幕坐标下正角为顺时针）
func rotate(v geometry.Point, rad float64) geometry.Point {
	sin, cos := math.Sincos(rad)
	return geometry.Pt(v.X*cos-v.Y*sin, v.X*sin+v.Y*cos)
}
