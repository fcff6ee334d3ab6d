package tour

import "github.com/nathan-85/tutorialkit/pkg/geometry"

// Bend 箭头弯曲策略
type Bend int

const (
	// BendAuto 自动选择弯曲方向：曲线向远离元素本体的一侧弯
	BendAuto Bend = iota
	// BendLeft 向行进方向左侧弯曲
	BendLeft
	// BendRight 向行进方向右侧弯曲
	BendRight
	// BendNone 直线，不弯曲
	BendNone
)

// BendStrength 弯曲强度档位
type BendStrength int

const (
	BendLow BendStrength = iota
	BendMedium
	BendHigh
)

// Magnitude 返回档位对应的曲率系数
func (s BendStrength) Magnitude() float64 {
	switch s {
	case BendMedium:
		return 0.4
	case BendHigh:
		return 0.85
	default:
		return 0.1
	}
}

// LabelStyle 标签背景样式
type LabelStyle int

const (
	// LabelStyleSolid 实底背景（默认）
	LabelStyleSolid LabelStyle = iota
	// LabelStylePlain 无背景，仅文字
	LabelStylePlain
)

// DefaultStemLength 箭杆默认长度（像素）
const DefaultStemLength = 60.0

// Arrow 一条指向目标元素的箭头声明
//
// Arrow 是声明式配置：它描述"箭头怎么画"，不含任何运行期坐标。
// 每个布局周期由 Layout 根据当前帧登记把它解析成 ResolvedArrow /
// ResolvedLabel。构造后不应再修改（按不可变值使用）。
//
// 步骤中的第一条箭头是主箭头（从卡片引出，不带标签），
// 其余是二级箭头（从浮动标签引出，标签文本取 Target.Label）。
type Arrow struct {
	// Target 箭头指向的元素
	Target Element

	// Anchor 目标矩形上的锚点，未设置时默认 Top
	Anchor Oriented[Anchor]

	// FromAnchor 标签（或卡片）一侧的锚点，即箭杆尾端贴在标签矩形
	// 的哪个位置。未设置时默认取所选 Anchor 的对边。
	FromAnchor Oriented[Anchor]

	// Length 箭杆长度（像素），未设置时默认 DefaultStemLength
	Length Oriented[float64]

	// Angle 箭杆罗盘角度（0° 朝上，顺时针），未设置时默认
	// 所选 Anchor 的 DefaultAngle
	Angle Oriented[float64]

	// Bend 弯曲策略
	Bend Bend

	// BendStrength 弯曲强度
	BendStrength BendStrength

	// Icon 图标标识；非空时渲染层画图标而不画箭杆和标签
	Icon string

	// Opacity 箭头不透明度 [0,1]
	Opacity float64

	// LabelStyle 标签背景样式
	LabelStyle LabelStyle

	// Offset 锚点附加偏移（像素），加在解析出的锚点坐标上
	Offset Oriented[geometry.Point]
}

// NewArrow 创建一条指向 target 的箭头，使用默认外观
func NewArrow(target Element) *Arrow {
	return &Arrow{
		Target:       target,
		Bend:         BendAuto,
		BendStrength: BendMedium,
		Opacity:      1,
	}
}

// PickedAnchor 返回当前朝向下生效的目标锚点
func (a *Arrow) PickedAnchor(landscape bool) Anchor {
	return a.Anchor.PickOr(landscape, Top)
}

// PickedFromAnchor 返回当前朝向下生效的标签侧锚点
// 未设置时取目标锚点的对边
func (a *Arrow) PickedFromAnchor(landscape bool) Anchor {
	return a.FromAnchor.PickOr(landscape, a.PickedAnchor(landscape).Opposite())
}

// PickedLength 返回当前朝向下生效的箭杆长度
func (a *Arrow) PickedLength(landscape bool) float64 {
	return a.Length.PickOr(landscape, DefaultStemLength)
}

// PickedAngle 返回当前朝向下生效的箭杆角度
// 未设置时取目标锚点的默认角度
func (a *Arrow) PickedAngle(landscape bool) float64 {
	return a.Angle.PickOr(landscape, a.PickedAnchor(landscape).DefaultAngle())
}

// ResolvedAnchorPoint 解析箭头在目标矩形上的锚点坐标
// 结果 = 所选锚点在矩形上的位置 + 所选偏移
func (a *Arrow) ResolvedAnchorPoint(rect geometry.Rect, landscape bool) geometry.Point {
	p := a.PickedAnchor(landscape).Resolve(rect)
	return p.Add(a.Offset.PickOr(landscape, geometry.Point{}))
}
