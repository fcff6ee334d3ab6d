// Package overlay 提供引导教程的覆盖层：接收宿主元素的坐标上报，
// 每帧解算布局并把虚化、箭头、标签和步骤卡片画在宿主界面之上
package overlay

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
	"github.com/nathan-85/tutorialkit/pkg/tour"
)

// triggerActivationDelay 步骤触发器的激活延迟（秒）
// 给覆盖层过渡动画留出时间，避免宿主界面在卡片尚未就位时就弹出
const triggerActivationDelay = 0.4

// 过渡动画时长（秒）
const (
	// dimFadeDuration 压暗遮罩的渐显时长
	dimFadeDuration = 0.25

	// cardTransitionDuration 卡片跨步骤移动的过渡时长
	cardTransitionDuration = 0.3
)

// Fonts 覆盖层使用的三组字体
type Fonts struct {
	Title *text.GoTextFace // 卡片标题
	Body  *text.GoTextFace // 卡片正文
	Label *text.GoTextFace // 箭头标签
}

// Overlay 引导教程覆盖层
//
// 把 tour 包的登记表、状态机和调度器装配成一个可直接嵌入
// Ebiten 主循环的对象：宿主每帧调用 Update(deltaTime) 和
// Draw(screen)，并在自己的布局阶段持续上报元素矩形。
//
// 布局重算由脏标记门控：登记表版本、弹出层版本、步骤索引、
// 容器尺寸或卡片尺寸任一变化才重新解算，其余帧直接复用上一次
// 的布局结果。
type Overlay struct {
	registry  *tour.FrameRegistry
	sequencer *tour.Sequencer
	reveal    *tour.RevealScheduler
	popover   *PopoverLayer
	fonts     Fonts

	// 覆盖层自身在根坐标系中的原点与容器尺寸
	origin    geometry.Point
	container geometry.Size

	// 模糊区域到宿主元素的绑定
	blurBindings map[tour.BlurRegion]tour.Element

	// 图标标识到图像的映射，图标箭头按标识取图绘制
	icons map[string]*ebiten.Image

	// 布局缓存与脏检查基准
	layout         tour.LayoutResult
	layoutValid    bool
	cardSize       geometry.Size
	customCardSize geometry.Size
	lastVersion    uint64
	lastPopVersion uint64
	lastStepIndex  int
	lastContainer  geometry.Size

	// 触发器激活计时
	triggerElapsed float64
	triggersFired  bool

	// 过渡动画状态
	dimElapsed     float64       // 呈现以来的时间（遮罩渐显）
	cardFrom       geometry.Rect // 卡片过渡的起始矩形
	cardAnimT      float64       // 卡片过渡进度 [0,1]
	cardAnimActive bool

	// 模糊绘制的临时画布（按需重建）
	blurScratch *ebiten.Image

	// AdvanceOnClick 为 true 时，覆盖层活动期间单击推进步骤
	AdvanceOnClick bool

	// OnTriggers 步骤触发器回调；进入步骤并经过激活延迟后
	// 以步骤声明的触发器标识调用一次
	OnTriggers func(names []string)

	// OnStepChanged 步骤变化回调（转发自状态机），可为 nil
	OnStepChanged func(prev, current int)

	// OnDismissed 教程结束回调（转发自状态机），可为 nil
	OnDismissed func()
}

// NewOverlay 创建覆盖层
//
// 参数:
//   - fonts: 卡片与标签字体
//   - provider: 步骤提供者，每次呈现教程时重新调用
func NewOverlay(fonts Fonts, provider tour.StepProvider) *Overlay {
	o := &Overlay{
		registry:      tour.NewFrameRegistry(),
		reveal:        tour.NewRevealScheduler(),
		popover:       NewPopoverLayer(),
		fonts:         fonts,
		blurBindings:  make(map[tour.BlurRegion]tour.Element),
		icons:         make(map[string]*ebiten.Image),
		lastStepIndex: -1,
	}

	o.sequencer = tour.NewSequencer(provider)
	o.sequencer.OnStepChanged = o.handleStepChanged
	o.sequencer.OnDismissed = o.handleDismissed
	return o
}

// handleStepChanged 步骤切换时重置每步状态
func (o *Overlay) handleStepChanged(prev, current int) {
	// 步骤间切换时卡片从上一步的位置滑向新位置；
	// 首次呈现没有上一步，卡片直接出现，遮罩从零渐显
	if prev >= 0 && o.layoutValid {
		o.cardFrom = o.layout.Card
		o.cardAnimT = 0
		o.cardAnimActive = true
	} else {
		o.cardAnimActive = false
		o.dimElapsed = 0
	}

	o.reveal.Reset()
	o.popover.Reset()
	o.triggerElapsed = 0
	o.triggersFired = false
	o.customCardSize = geometry.Size{}
	o.layoutValid = false

	if o.OnStepChanged != nil {
		o.OnStepChanged(prev, current)
	}
}

// handleDismissed 教程结束时清理
func (o *Overlay) handleDismissed() {
	o.reveal.Reset()
	o.layoutValid = false

	if o.OnDismissed != nil {
		o.OnDismissed()
	}
}

// Registry 返回主图层登记表，宿主布局代码向它上报矩形
func (o *Overlay) Registry() *tour.FrameRegistry {
	return o.registry
}

// Popover 返回弹出层挂点
func (o *Overlay) Popover() *PopoverLayer {
	return o.popover
}

// Sequencer 返回步骤状态机
func (o *Overlay) Sequencer() *tour.Sequencer {
	return o.sequencer
}

// Present 呈现教程
func (o *Overlay) Present() {
	o.sequencer.Present()
}

// Advance 前进一步；已在最后一步时结束教程
func (o *Overlay) Advance() {
	o.sequencer.Advance()
}

// Dismiss 立即结束教程
func (o *Overlay) Dismiss() {
	o.sequencer.Dismiss()
}

// Active 报告教程是否处于活动状态
func (o *Overlay) Active() bool {
	return o.sequencer.Active()
}

// WantsInput 报告覆盖层是否拦截落在 (x,y) 的输入
//
// 单击推进开启时覆盖层吞掉所有点击；否则只拦截卡片矩形内的
// 输入（默认卡片或自定义内容里的按钮），界面其余部分透传给
// 宿主自己的点击处理。教程空闲时恒为 false。
func (o *Overlay) WantsInput(x, y int) bool {
	if !o.sequencer.Active() {
		return false
	}
	if o.AdvanceOnClick {
		return true
	}
	return o.displayCard().Contains(geometry.Pt(float64(x), float64(y)))
}

// SetCardSize 为自定义内容步骤显式设置卡片尺寸
//
// 默认卡片按标题正文同步实测，自定义内容覆盖层无从度量，
// 宿主在内容就绪后调用本方法上报；布局在下一帧按新尺寸重算。
// 步骤切换时尺寸清零，回到默认值。
func (o *Overlay) SetCardSize(size geometry.Size) {
	o.customCardSize = size
}

// Actions 返回步骤推进句柄，传给自定义卡片内容
func (o *Overlay) Actions() tour.Actions {
	return tour.Actions{
		Advance: o.Advance,
		Dismiss: o.Dismiss,
	}
}

// SetViewport 设置覆盖层在根坐标系中的原点与容器尺寸
// 窗口缩放或旋转后必须调用，布局会在下一帧重算
func (o *Overlay) SetViewport(origin geometry.Point, container geometry.Size) {
	o.origin = origin
	o.container = container
}

// Landscape 报告容器当前是否横屏（宽 > 高）
func (o *Overlay) Landscape() bool {
	return o.container.Width > o.container.Height
}

// ReportFrame 上报单个元素的矩形（根坐标系）
// 与 Registry().ReportOne 等价，提供给偏好方法调用的宿主
func (o *Overlay) ReportFrame(el tour.Element, frame geometry.Rect) {
	o.registry.ReportOne(el, frame)
}

// BindBlurRegion 把模糊区域绑定到宿主元素
// 步骤声明的模糊区域按绑定元素的当前矩形绘制
func (o *Overlay) BindBlurRegion(region tour.BlurRegion, el tour.Element) {
	o.blurBindings[region] = el
}

// RegisterIcon 注册图标图像
// 箭头声明的图标标识在绘制时由此映射取图；未注册的标识不绘制
func (o *Overlay) RegisterIcon(name string, img *ebiten.Image) {
	o.icons[name] = img
}

// Layout 返回最近一次解算的布局结果（测试与调试用）
func (o *Overlay) Layout() tour.LayoutResult {
	return o.layout
}

// Update 推进覆盖层一帧
//
// 顺序：时间轴 → 布局脏检查与重算 → 交错排程 → 触发器 → 输入。
// 教程空闲时直接返回。
func (o *Overlay) Update(deltaTime float64) {
	if !o.sequencer.Active() {
		return
	}
	step, ok := o.sequencer.Current()
	if !ok {
		return
	}

	o.reveal.Update(deltaTime)
	o.dimElapsed += deltaTime
	if o.cardAnimActive {
		o.cardAnimT += deltaTime / cardTransitionDuration
		if o.cardAnimT >= 1 {
			o.cardAnimT = 1
			o.cardAnimActive = false
		}
	}

	o.recomputeIfNeeded(step)
	o.reveal.SetResolvableCount(o.layout.ResolvableCount())

	if !o.triggersFired && len(step.Triggers) > 0 {
		o.triggerElapsed += deltaTime
		if o.triggerElapsed >= triggerActivationDelay {
			o.triggersFired = true
			if o.OnTriggers != nil {
				o.OnTriggers(step.Triggers)
			}
		}
	}

	if o.AdvanceOnClick && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		o.Advance()
	}
}

// measuredCardSize 返回当前步骤的卡片尺寸
// 自定义内容步骤优先用宿主通过 SetCardSize 上报的尺寸
func (o *Overlay) measuredCardSize(step *tour.Step) geometry.Size {
	if step != nil && step.CustomContent != nil && o.customCardSize != (geometry.Size{}) {
		return o.customCardSize
	}
	return measureCard(step, o.fonts.Title, o.fonts.Body)
}

// recomputeIfNeeded 脏检查：任一输入变化时重新解算布局
func (o *Overlay) recomputeIfNeeded(step *tour.Step) {
	cardSize := o.measuredCardSize(step)

	dirty := !o.layoutValid ||
		o.registry.Version() != o.lastVersion ||
		o.popover.Version() != o.lastPopVersion ||
		o.sequencer.Index() != o.lastStepIndex ||
		o.container != o.lastContainer ||
		cardSize != o.cardSize

	if !dirty {
		return
	}

	o.cardSize = cardSize
	o.layout = tour.Layout(tour.LayoutInput{
		Step:          step,
		Landscape:     o.Landscape(),
		Container:     o.container,
		Frames:        o.registry.Normalized(o.origin),
		PopoverFrames: o.popover.Frames(),
		CardSize:      cardSize,
		LabelSizer:    labelSizer(o.fonts.Label),
	})

	o.layoutValid = true
	o.lastVersion = o.registry.Version()
	o.lastPopVersion = o.popover.Version()
	o.lastStepIndex = o.sequencer.Index()
	o.lastContainer = o.container
}
