// Package tour 提供引导教程的核心布局引擎
//
// 本包负责教程覆盖层的全部几何解算：目标元素坐标登记与归一化、
// 锚点解析、箭头曲线计算、标签避让和卡片摆放。所有计算都是
// 对不可变快照的同步纯函数，不依赖渲染层，便于独立测试。
//
// 渲染由 pkg/overlay 完成，本包只产出绘制指令（ResolvedArrow、
// ResolvedLabel、卡片矩形等）。
package tour

// Element 标识宿主界面中一个可被箭头指向的元素
//
// 由宿主应用以常量形式定义，仅作为查找键使用，相等性只看 ID。
// Label 是展示给玩家的文案，二级箭头的标签文本即取自此字段。
type Element struct {
	// ID 元素唯一标识，相等性与哈希只由它决定
	ID string

	// Label 元素的展示名称（标签文字）
	Label string
}

// NewElement 创建一个元素定义
func NewElement(id, label string) Element {
	return Element{ID: id, Label: label}
}
