package overlay

import (
	"image/draw"
	"testing"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
	"github.com/nathan-85/tutorialkit/pkg/tour"
)

// newTestOverlay 创建一个使用固定步骤列表的覆盖层（无字体）
func newTestOverlay(steps []*tour.Step) *Overlay {
	o := NewOverlay(Fonts{}, func() []*tour.Step { return steps })
	o.SetViewport(geometry.Pt(0, 0), geometry.Sz(800, 600))
	return o
}

// TestOverlayLayoutRecompute 测试布局的脏检查与重算
func TestOverlayLayoutRecompute(t *testing.T) {
	target := tour.NewElement("panel", "面板")
	step := tour.NewStep("标题", "正文")
	step.Arrows = []*tour.Arrow{tour.NewArrow(target)}

	o := newTestOverlay([]*tour.Step{step})
	o.ReportFrame(target, geometry.NewRect(100, 100, 50, 50))
	o.Present()
	o.Update(0.016)

	if o.Layout().Primary == nil {
		t.Fatal("期望主箭头已解析")
	}
	// 默认锚点为顶边中点
	got := o.Layout().Primary.AnchorPoint
	want := geometry.Pt(125, 100)
	if got != want {
		t.Errorf("期望锚点 %+v，实际为 %+v", want, got)
	}

	// 矩形移动后布局应重算
	o.ReportFrame(target, geometry.NewRect(200, 100, 50, 50))
	o.Update(0.016)
	if got := o.Layout().Primary.AnchorPoint; got != geometry.Pt(225, 100) {
		t.Errorf("矩形移动后期望锚点 (225,100)，实际为 %+v", got)
	}

	// 重复上报同一矩形是幂等的，布局不应变化
	before := o.Layout()
	o.ReportFrame(target, geometry.NewRect(200, 100, 50, 50))
	o.Update(0.016)
	if o.Layout().Primary.AnchorPoint != before.Primary.AnchorPoint {
		t.Error("幂等上报后布局不应变化")
	}
}

// TestOverlayMissingFrame 测试目标矩形未登记时箭头不出现在布局里
func TestOverlayMissingFrame(t *testing.T) {
	target := tour.NewElement("ghost", "未登记")
	step := tour.NewStep("标题", "正文")
	step.Arrows = []*tour.Arrow{tour.NewArrow(target)}

	o := newTestOverlay([]*tour.Step{step})
	o.Present()
	o.Update(0.016)

	if o.Layout().Primary != nil {
		t.Error("未登记目标的主箭头不应被解析")
	}
	layout := o.Layout()
	if n := layout.ResolvableCount(); n != 0 {
		t.Errorf("期望可解析数量为 0，实际为 %d", n)
	}

	// 矩形迟到后箭头应出现
	o.ReportFrame(target, geometry.NewRect(10, 10, 40, 40))
	o.Update(0.016)
	if o.Layout().Primary == nil {
		t.Error("矩形登记后主箭头应被解析")
	}
}

// TestOverlayTriggerDelay 测试步骤触发器的激活延迟
func TestOverlayTriggerDelay(t *testing.T) {
	step := tour.NewStep("设置", "")
	step.Triggers = []string{"openSettings"}

	var fired [][]string
	o := newTestOverlay([]*tour.Step{step})
	o.OnTriggers = func(names []string) {
		fired = append(fired, names)
	}

	o.Present()
	o.Update(0.2)
	if len(fired) != 0 {
		t.Fatal("激活延迟内不应触发")
	}

	o.Update(0.3)
	if len(fired) != 1 {
		t.Fatalf("期望触发 1 次，实际为 %d", len(fired))
	}
	if len(fired[0]) != 1 || fired[0][0] != "openSettings" {
		t.Errorf("期望触发器为 [openSettings]，实际为 %v", fired[0])
	}

	// 同一步骤内不应重复触发
	o.Update(1.0)
	if len(fired) != 1 {
		t.Errorf("期望仍为 1 次触发，实际为 %d", len(fired))
	}
}

// TestOverlayStepChange 测试步骤切换时的状态重置
func TestOverlayStepChange(t *testing.T) {
	first := tour.NewStep("一", "")
	first.Triggers = []string{"a"}
	second := tour.NewStep("二", "")
	second.Triggers = []string{"b"}

	var fired []string
	var changes [][2]int
	o := newTestOverlay([]*tour.Step{first, second})
	o.OnTriggers = func(names []string) {
		fired = append(fired, names...)
	}
	o.OnStepChanged = func(prev, current int) {
		changes = append(changes, [2]int{prev, current})
	}

	o.Present()
	o.Update(0.5)
	o.Advance()
	o.Update(0.5)

	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Errorf("期望依次触发 a、b，实际为 %v", fired)
	}
	if len(changes) != 2 || changes[0] != [2]int{-1, 0} || changes[1] != [2]int{0, 1} {
		t.Errorf("期望步骤变化为 (-1,0)(0,1)，实际为 %v", changes)
	}
}

// TestOverlayDismiss 测试教程结束
func TestOverlayDismiss(t *testing.T) {
	step := tour.NewStep("唯一", "")

	dismissed := 0
	o := newTestOverlay([]*tour.Step{step})
	o.OnDismissed = func() { dismissed++ }

	o.Present()
	if !o.Active() {
		t.Fatal("呈现后覆盖层应处于活动状态")
	}

	// 最后一步前进即结束
	o.Advance()
	if o.Active() {
		t.Error("最后一步前进后应回到空闲")
	}
	if dismissed != 1 {
		t.Errorf("期望结束回调 1 次，实际为 %d", dismissed)
	}
}

// TestOverlayCardTransition 测试卡片跨步骤的过渡插值
func TestOverlayCardTransition(t *testing.T) {
	first := tour.NewStep("一", "")
	first.CardPosition = tour.Fixed(geometry.Pt(0.2, 0.2))
	second := tour.NewStep("二", "")
	second.CardPosition = tour.Fixed(geometry.Pt(0.8, 0.8))

	o := newTestOverlay([]*tour.Step{first, second})
	o.Present()
	o.Update(0.016)
	start := o.displayCard()

	o.Advance()
	o.Update(0.016)
	mid := o.displayCard()
	// 过渡刚开始：卡片已离开起点但远未到达终点
	if mid == start {
		t.Error("过渡开始后卡片应已离开起点")
	}

	o.Update(1.0)
	final := o.displayCard()
	if final == start || final == mid {
		t.Error("过渡结束后卡片应停在新位置")
	}
	if final != o.Layout().Card {
		t.Errorf("过渡结束后应与布局结果一致: %+v != %+v", final, o.Layout().Card)
	}
	// 终点在起点的右下方
	if final.X <= start.X || final.Y <= start.Y {
		t.Errorf("期望卡片向右下移动: %+v -> %+v", start, final)
	}
}

// TestOverlayWantsInput 测试输入拦截的逐点判定
func TestOverlayWantsInput(t *testing.T) {
	step := tour.NewStep("标题", "正文")
	step.CardPosition = tour.Fixed(geometry.Pt(0.5, 0.5))

	o := newTestOverlay([]*tour.Step{step})
	if o.WantsInput(400, 300) {
		t.Error("教程空闲时不应拦截输入")
	}

	o.Present()
	o.Update(0.016)

	// 卡片内拦截，卡片外透传
	card := o.Layout().Card
	cx := int(card.X + card.Width/2)
	cy := int(card.Y + card.Height/2)
	if !o.WantsInput(cx, cy) {
		t.Error("卡片内的输入应被拦截")
	}
	if o.WantsInput(5, 5) {
		t.Error("卡片外的输入应透传给宿主")
	}

	// 单击推进开启时吞掉所有点击
	o.AdvanceOnClick = true
	if !o.WantsInput(5, 5) {
		t.Error("单击推进开启时任意位置都应拦截")
	}
}

// TestOverlaySetCardSize 测试自定义内容步骤的显式卡片尺寸
func TestOverlaySetCardSize(t *testing.T) {
	step := tour.NewStep("", "")
	step.CustomContent = func(_ draw.Image, _ geometry.Rect, _ tour.Actions) {}
	step.CardPosition = tour.Fixed(geometry.Pt(0.5, 0.5))
	next := tour.NewStep("下一步", "")
	next.CustomContent = func(_ draw.Image, _ geometry.Rect, _ tour.Actions) {}

	o := newTestOverlay([]*tour.Step{step, next})
	o.Present()
	o.Update(0.016)

	// 尺寸上报前按默认值布局
	if got := o.Layout().Card; got.Width != defaultCardWidth || got.Height != defaultCardHeight {
		t.Fatalf("期望默认卡片尺寸，实际为 %+v", got)
	}

	// 上报后下一帧按新尺寸重算，卡片中心不变
	o.SetCardSize(geometry.Sz(320, 200))
	o.Update(0.016)
	got := o.Layout().Card
	if got.Width != 320 || got.Height != 200 {
		t.Errorf("期望卡片尺寸 320x200，实际为 %+v", got)
	}
	if cx := got.X + got.Width/2; cx != 400 {
		t.Errorf("期望卡片中心 X 为 400，实际为 %g", cx)
	}

	// 步骤切换清零，回到默认尺寸
	o.Advance()
	o.Update(0.016)
	if got := o.Layout().Card; got.Width != defaultCardWidth {
		t.Errorf("步骤切换后期望默认宽度，实际为 %+v", got)
	}
}

// TestOverlayRegisterIcon 测试图标注册与未注册图标的跳过
func TestOverlayRegisterIcon(t *testing.T) {
	o := newTestOverlay(nil)
	o.RegisterIcon("sparkle", nil)
	if _, ok := o.icons["sparkle"]; !ok {
		t.Error("注册后应能按标识取到图标条目")
	}

	// 图标未注册（或尚未加载）的箭头本帧不画，也不访问屏幕
	arrow := &tour.ResolvedArrow{Arrow: &tour.Arrow{Icon: "ghost", Opacity: 1}}
	o.drawArrow(nil, arrow, 1)
	o.drawLabel(nil, &tour.ResolvedLabel{Arrow: &tour.Arrow{Icon: "ghost", Opacity: 1}}, 1)
}

// TestPopoverLayer 测试弹出层挂点的生命周期
func TestPopoverLayer(t *testing.T) {
	p := NewPopoverLayer()
	el := tour.NewElement("toggle", "开关")

	if p.Visible() {
		t.Fatal("新建弹出层不应可见")
	}
	if p.Frames() != nil {
		t.Fatal("不可见时快照应为 nil")
	}

	p.Show(geometry.Pt(300, 200))
	p.ReportFrame(el, geometry.NewRect(340, 260, 60, 30))

	frames := p.Frames()
	if len(frames) != 1 {
		t.Fatalf("期望 1 个矩形，实际为 %d", len(frames))
	}
	// 快照应归一化到面板本地坐标系
	if got := frames["toggle"]; got != geometry.NewRect(40, 60, 60, 30) {
		t.Errorf("期望本地矩形 (40,60,60,30)，实际为 %+v", got)
	}

	// 冻结后上报被丢弃
	version := p.Version()
	p.BeginClose()
	p.ReportFrame(el, geometry.NewRect(0, 0, 10, 10))
	if p.Version() != version {
		t.Error("冻结期间的上报不应改变版本号")
	}

	p.Hide()
	if p.Frames() != nil {
		t.Error("隐藏后快照应为 nil")
	}
}

// TestOverlaySupplementalLayout 测试弹出层补充箭头进入布局
func TestOverlaySupplementalLayout(t *testing.T) {
	popEl := tour.NewElement("switch", "开关")
	step := tour.NewStep("设置", "")
	step.Supplemental = []*tour.Arrow{tour.NewArrow(popEl)}

	o := newTestOverlay([]*tour.Step{step})
	o.Present()
	o.Update(0.016)

	if len(o.Layout().Supplemental) != 0 {
		t.Fatal("弹出层不可见时补充箭头不应被解析")
	}

	o.Popover().Show(geometry.Pt(300, 200))
	o.Popover().ReportFrame(popEl, geometry.NewRect(340, 260, 60, 30))
	o.Update(0.016)

	if len(o.Layout().Supplemental) != 1 {
		t.Fatalf("期望 1 条补充箭头，实际为 %d", len(o.Layout().Supplemental))
	}
	// 锚点在面板本地坐标系中（默认顶边中点）
	got := o.Layout().Supplemental[0].AnchorPoint
	if got != geometry.Pt(70, 60) {
		t.Errorf("期望补充箭头锚点 (70,60)，实际为 %+v", got)
	}
}

// TestMeasureCard 测试卡片尺寸测量的退化情况
func TestMeasureCard(t *testing.T) {
	// 无字体时返回有下限的默认尺寸
	step := tour.NewStep("标题", "正文")
	size := measureCard(step, nil, nil)
	if size.Width != defaultCardWidth {
		t.Errorf("期望卡片宽度 %g，实际为 %g", defaultCardWidth, size.Width)
	}
	if size.Height <= 0 {
		t.Errorf("卡片高度应大于 0，实际为 %g", size.Height)
	}

	// 自定义内容步骤使用默认尺寸
	custom := tour.NewStep("", "")
	custom.CustomContent = func(_ draw.Image, _ geometry.Rect, _ tour.Actions) {}
	if got := measureCard(custom, nil, nil); got != geometry.Sz(defaultCardWidth, defaultCardHeight) {
		t.Errorf("自定义内容步骤期望默认尺寸，实际为 %+v", got)
	}
}
