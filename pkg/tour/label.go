package tour

import "github.com/nathan-85/tutorialkit/pkg/geometry"

const (
	// labelPadding 标签之间的期望间距（像素）
	// 碰撞检测时每个标签矩形向外扩 labelPadding/2
	labelPadding = 8.0

	// maxRelaxPasses 避让迭代的轮数上限
	// 经验值：标签数量很少（个位数）时足以分开；
	// 这是一个可调上界，不是收敛性保证
	maxRelaxPasses = 8
)

// ResolvedLabel 一个布局周期内解析出的二级箭头标签
//
// 每个布局周期根据当前帧登记重新生成，从不跨周期保存。
// 避让只移动 Center，不改变内容和尺寸。
type ResolvedLabel struct {
	// Arrow 产生该标签的箭头声明
	Arrow *Arrow

	// AnchorPoint 目标矩形上解析出的锚点坐标（含偏移）
	AnchorPoint geometry.Point

	// Size 标签尺寸（由文本度量估算）
	Size geometry.Size

	// Center 标签中心；避让过程会调整此字段
	Center geometry.Point
}

// Rect 返回标签当前占据的矩形
func (l *ResolvedLabel) Rect() geometry.Rect {
	return geometry.RectFromCenter(l.Center, l.Size)
}

// StemStart 返回箭杆尾端应贴合的点：标签矩形上 FromAnchor 的位置
// 避让移动标签后，箭杆随标签走，因此由当前 Center 实时求出
func (l *ResolvedLabel) StemStart(landscape bool) geometry.Point {
	from := l.Arrow.PickedFromAnchor(landscape)
	return l.Center.Add(from.offsetFromCenter(l.Size))
}

// paddedRect 返回用于碰撞检测的外扩矩形
func (l *ResolvedLabel) paddedRect() geometry.Rect {
	return l.Rect().Inset(-labelPadding / 2)
}

// PlaceLabel 计算标签的初始位置
//
// 箭杆起点 = ArrowStart(锚点, 箭头角度, 箭头长度)；
// 标签的摆放使其 FromAnchor 一侧的点恰好落在箭杆起点上
// （标签从箭杆尾端向外生长）。
func PlaceLabel(arrow *Arrow, anchorPoint geometry.Point, size geometry.Size, landscape bool) *ResolvedLabel {
	start := ArrowStart(anchorPoint, arrow.PickedAngle(landscape), arrow.PickedLength(landscape))
	from := arrow.PickedFromAnchor(landscape)
	center := start.Sub(from.offsetFromCenter(size))
	return &ResolvedLabel{
		Arrow:       arrow,
		AnchorPoint: anchorPoint,
		Size:        size,
		Center:      center,
	}
}

// ResolveOverlaps 迭代松弛消除标签重叠
//
// 最多 maxRelaxPasses 轮；每轮检查所有无序标签对，外扩矩形在
// 两个轴上都有正重叠时，沿相对重叠（重叠量 / 两矩形该轴总尺寸）
// 较小的轴把两个标签各推开 重叠量/2 + 0.5，并保持原有的左右
// （或上下）相对次序。标签通常宽远大于高，按绝对重叠量选轴会把
// 几乎同心的宽标签错误地推向竖直方向；相对重叠衡量的是"还差
// 多远才分开"占该轴尺寸的比例，选出的才是真正更近的出口。
// 某轮没有任何重叠则提前结束。
//
// O(轮数 × n²)，n 是单步骤标签数（个位数），可以接受。
// 0 或 1 个标签时直接返回。
func ResolveOverlaps(labels []*ResolvedLabel) {
	if len(labels) < 2 {
		return
	}
	for pass := 0; pass < maxRelaxPasses; pass++ {
		moved := false
		for i := 0; i < len(labels); i++ {
			for j := i + 1; j < len(labels); j++ {
				if separatePair(labels[i], labels[j]) {
					moved = true
				}
			}
		}
		if !moved {
			return
		}
	}
}

// separatePair 检查并推开一对重叠标签，返回是否发生了移动
func separatePair(a, b *ResolvedLabel) bool {
	ra, rb := a.paddedRect(), b.paddedRect()
	overlapW := min(ra.MaxX(), rb.MaxX()) - max(ra.X, rb.X)
	overlapH := min(ra.MaxY(), rb.MaxY()) - max(ra.Y, rb.Y)
	if overlapW <= 0 || overlapH <= 0 {
		return false
	}
	// 相对重叠比较，交叉相乘避免除法：
	// overlapW/(宽和) < overlapH/(高和) ⇔ 沿 X 更快分开
	if overlapW*(ra.Height+rb.Height) < overlapH*(ra.Width+rb.Width) {
		shift := overlapW/2 + 0.5
		if a.Center.X <= b.Center.X {
			a.Center.X -= shift
			b.Center.X += shift
		} else {
			a.Center.X += shift
			b.Center.X -= shift
		}
	} else {
		shift := overlapH/2 + 0.5
		if a.Center.Y <= b.Center.Y {
			a.Center.Y -= shift
			b.Center.Y += shift
		} else {
			a.Center.Y += shift
			b.Center.Y -= shift
		}
	}
	return true
}
