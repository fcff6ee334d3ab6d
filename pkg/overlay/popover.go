package overlay

import (
	"github.com/nathan-85/tutorialkit/pkg/geometry"
	"github.com/nathan-85/tutorialkit/pkg/tour"
)

// PopoverLayer 弹出层补充箭头的宿主侧挂点
//
// 弹出面板（设置弹窗、抽屉等）位于独立的视觉图层，主覆盖层画
// 不到它上面。宿主为每个这样的面板创建一个 PopoverLayer：面板
// 内的元素把矩形上报到这里的独立登记表，补充箭头在面板自己的
// 绘制阶段由面板调用 DrawSupplemental 渲染。
//
// 面板开始关闭动画时调用 BeginClose 冻结登记表，动画期间的
// 瞬态矩形被静默丢弃；完全关闭后调用 Hide 清空。
type PopoverLayer struct {
	registry *tour.FrameRegistry
	origin   geometry.Point
	visible  bool
}

// NewPopoverLayer 创建一个弹出层挂点
func NewPopoverLayer() *PopoverLayer {
	return &PopoverLayer{registry: tour.NewFrameRegistry()}
}

// Show 面板出现时调用，origin 是面板在根坐标系中的原点
func (p *PopoverLayer) Show(origin geometry.Point) {
	p.origin = origin
	p.visible = true
	p.registry.Unfreeze()
}

// BeginClose 面板开始关闭动画时调用，冻结登记表
func (p *PopoverLayer) BeginClose() {
	p.registry.Freeze()
}

// Hide 面板完全关闭后调用，清空登记表
func (p *PopoverLayer) Hide() {
	p.visible = false
	p.registry.Clear()
}

// Visible 报告面板是否可见
func (p *PopoverLayer) Visible() bool {
	return p.visible
}

// SetOrigin 更新面板原点（面板移动时调用）
func (p *PopoverLayer) SetOrigin(origin geometry.Point) {
	p.origin = origin
}

// ReportFrame 上报面板内某个元素的矩形（根坐标系）
func (p *PopoverLayer) ReportFrame(el tour.Element, frame geometry.Rect) {
	p.registry.ReportOne(el, frame)
}

// Frames 返回归一化到面板本地坐标系的矩形快照
// 面板不可见时返回 nil，补充箭头本帧不绘制
func (p *PopoverLayer) Frames() map[string]geometry.Rect {
	if !p.visible || p.registry.Len() == 0 {
		return nil
	}
	return p.registry.Normalized(p.origin)
}

// Version 返回登记表内容版本号
func (p *PopoverLayer) Version() uint64 {
	return p.registry.Version()
}

// Reset 步骤切换时清空登记内容（面板可见性由宿主管理）
func (p *PopoverLayer) Reset() {
	p.registry.Clear()
}
