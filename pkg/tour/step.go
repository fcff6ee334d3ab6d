package tour

import (
	"image/draw"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
)

// BlurRegion 宿主定义的模糊区域索引（0~63）
//
// 模糊区域是宿主界面中某块需要在特定步骤里虚化的命名区域，
// 宿主按位分配常量：
//
//	const (
//	    BlurSidebar tour.BlurRegion = iota
//	    BlurToolbar
//	)
type BlurRegion uint8

// BlurSet 模糊区域位集
type BlurSet uint64

// NewBlurSet 由若干区域构建位集
func NewBlurSet(regions ...BlurRegion) BlurSet {
	var s BlurSet
	for _, r := range regions {
		s = s.With(r)
	}
	return s
}

// With 返回加入区域 r 后的位集
func (s BlurSet) With(r BlurRegion) BlurSet {
	return s | 1<<r
}

// Has 判断区域 r 是否在位集中
func (s BlurSet) Has(r BlurRegion) bool {
	return s&(1<<r) != 0
}

// IsEmpty 判断位集是否为空
func (s BlurSet) IsEmpty() bool {
	return s == 0
}

// Actions 步骤推进句柄
//
// 传给自定义卡片内容，让宿主自绘的按钮也能驱动教程前进/关闭。
type Actions struct {
	// Advance 前进到下一步；已是最后一步时结束教程
	Advance func()

	// Dismiss 立即关闭教程
	Dismiss func()
}

// CustomContentFunc 步骤卡片的自定义绘制回调
//
// screen 是覆盖层正在绘制的目标图像，card 是解析后的卡片矩形
// （本地坐标），actions 是推进句柄。设置了此回调的步骤不渲染
// 默认的标题/正文卡片。
//
// 参数类型取标准库 draw.Image，布局核心不依赖渲染后端；
// 渲染层实际传入 *ebiten.Image，需要 Ebiten 绘制能力的宿主
// 在回调内断言回具体类型。
type CustomContentFunc func(screen draw.Image, card geometry.Rect, actions Actions)

// Step 教程中的一个步骤
//
// 由宿主应用构造，单次教程运行内视为不可变。
type Step struct {
	// Title 卡片标题
	Title string

	// Body 卡片正文
	Body string

	// Arrows 本步骤的箭头列表
	// 第一条是主箭头（从卡片引出），其余是二级箭头（从标签引出）
	Arrows []*Arrow

	// Blur 本步骤需要虚化的区域位集
	Blur BlurSet

	// Supplemental 弹出层补充箭头
	// 这些箭头的目标位于独立视觉图层的弹出面板内，由
	// overlay.PopoverLayer 在弹出面板自己的绘制阶段渲染
	Supplemental []*Arrow

	// Triggers 步骤触发器标识
	// 进入步骤并经过激活延迟后通知宿主，用于自动打开
	// 宿主自己的界面（如设置弹窗）
	Triggers []string

	// CardPosition 卡片显式位置（容器比例坐标 [0,1]²）
	// 未设置时按箭头目标质心自动摆放
	CardPosition Oriented[geometry.Point]

	// Centered 强制卡片居中容器
	Centered bool

	// CustomContent 自定义卡片内容回调，可为 nil
	CustomContent CustomContentFunc
}

// NewStep 创建一个带标题和正文的步骤
func NewStep(title, body string) *Step {
	return &Step{Title: title, Body: body}
}
