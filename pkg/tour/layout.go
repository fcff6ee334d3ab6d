package tour

import "github.com/nathan-85/tutorialkit/pkg/geometry"

// LabelSizer 标签尺寸估算回调
//
// 渲染层用文本度量实现；测试里用固定尺寸即可。
// 回调的存在使布局核心不依赖任何字体/渲染运行时。
type LabelSizer func(arrow *Arrow) geometry.Size

// LayoutInput 单个布局周期的全部输入
//
// 所有字段都是当帧快照；Layout 不修改输入。
type LayoutInput struct {
	// Step 当前步骤
	Step *Step

	// Landscape 容器是否横屏（宽 > 高）
	Landscape bool

	// Container 容器尺寸（本地坐标）
	Container geometry.Size

	// Frames 主图层元素矩形快照（已归一化到本地坐标，键为元素 ID）
	Frames map[string]geometry.Rect

	// PopoverFrames 弹出层元素矩形快照（弹出层自己的坐标系）
	PopoverFrames map[string]geometry.Rect

	// CardSize 卡片实测尺寸（渲染层回填）
	CardSize geometry.Size

	// LabelSizer 标签尺寸估算；nil 时使用保守的固定尺寸
	LabelSizer LabelSizer
}

// ResolvedArrow 一条解析完成的箭头绘制指令
type ResolvedArrow struct {
	// Arrow 来源声明
	Arrow *Arrow

	// AnchorPoint 目标矩形上的锚点坐标（含偏移）
	AnchorPoint geometry.Point

	// Path 完整曲线与箭头头部几何
	Path ArrowPath
}

// LayoutResult 一个布局周期的全部绘制指令
//
// 目标矩形未登记的箭头不会出现在结果里（本帧不可绘制，不是错误）。
type LayoutResult struct {
	// Card 卡片矩形（本地坐标）
	Card geometry.Rect

	// Primary 主箭头；步骤无箭头或主箭头目标未登记时为 nil
	Primary *ResolvedArrow

	// Labels 二级箭头标签（已完成避让），与 LabelArrows 一一对应
	Labels []*ResolvedLabel

	// LabelArrows 二级箭头曲线，第 i 条从 Labels[i] 引出
	LabelArrows []*ResolvedArrow

	// Supplemental 弹出层补充箭头（弹出层坐标系）
	Supplemental []*ResolvedArrow

	// Blur 本步骤的模糊区域位集
	Blur BlurSet
}

// ResolvableCount 返回本周期可绘制的箭头数量（主 + 二级）
// 交错显示调度据此决定排程长度
func (r *LayoutResult) ResolvableCount() int {
	n := len(r.Labels)
	if r.Primary != nil {
		n++
	}
	return n
}

// defaultLabelSize 未提供 LabelSizer 时的保守标签尺寸
var defaultLabelSize = geometry.Sz(120, 32)

// Layout 执行一个完整布局周期
//
// 流程：卡片选位 → 逐箭头解析锚点与曲线 → 标签初始摆放 →
// 避让松弛 → 按避让后的标签位置重建二级箭杆 → 弹出层补充箭头。
// 输入集合很小，每次全量重算，不做增量。
func Layout(in LayoutInput) LayoutResult {
	result := LayoutResult{Blur: in.Step.Blur}

	cardCenter := CardCenter(in.Step, in.Landscape, in.Container, in.Frames, in.CardSize)
	result.Card = geometry.RectFromCenter(cardCenter, in.CardSize)

	sizer := in.LabelSizer
	if sizer == nil {
		sizer = func(*Arrow) geometry.Size { return defaultLabelSize }
	}

	for i, arrow := range in.Step.Arrows {
		rect, ok := in.Frames[arrow.Target.ID]
		if !ok {
			continue
		}
		anchorPt := arrow.ResolvedAnchorPoint(rect, in.Landscape)
		if i == 0 {
			result.Primary = resolveArrow(arrow, anchorPt, in.Landscape)
			continue
		}
		label := PlaceLabel(arrow, anchorPt, sizer(arrow), in.Landscape)
		result.Labels = append(result.Labels, label)
	}

	ResolveOverlaps(result.Labels)

	// 避让可能移动了标签，箭杆尾端跟随标签的 FromAnchor 点重建
	result.LabelArrows = make([]*ResolvedArrow, len(result.Labels))
	for i, label := range result.Labels {
		start := label.StemStart(in.Landscape)
		result.LabelArrows[i] = buildResolved(label.Arrow, start, label.AnchorPoint, in.Landscape)
	}

	for _, arrow := range in.Step.Supplemental {
		rect, ok := in.PopoverFrames[arrow.Target.ID]
		if !ok {
			continue
		}
		anchorPt := arrow.ResolvedAnchorPoint(rect, in.Landscape)
		result.Supplemental = append(result.Supplemental, resolveArrow(arrow, anchorPt, in.Landscape))
	}

	return result
}

// resolveArrow 按箭头自身的角度与长度解析曲线
func resolveArrow(arrow *Arrow, anchorPt geometry.Point, landscape bool) *ResolvedArrow {
	start := ArrowStart(anchorPt, arrow.PickedAngle(landscape), arrow.PickedLength(landscape))
	return buildResolved(arrow, start, anchorPt, landscape)
}

// buildResolved 由给定起点构建箭头绘制指令
func buildResolved(arrow *Arrow, start, anchorPt geometry.Point, landscape bool) *ResolvedArrow {
	outward := arrow.PickedAnchor(landscape).Outward()
	curv := Curvature(start, anchorPt, arrow.Bend, arrow.BendStrength, outward)
	return &ResolvedArrow{
		Arrow:       arrow,
		AnchorPoint: anchorPt,
		Path:        BuildArrowPath(start, anchorPt, curv),
	}
}
