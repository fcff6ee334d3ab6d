package overlay

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
	"github.com/nathan-85/tutorialkit/pkg/tour"
	"github.com/nathan-85/tutorialkit/pkg/utils"
)

// 绘制参数
const (
	// arrowSegments 二次贝塞尔离散成的线段数
	arrowSegments = 24

	// arrowWidth 箭杆线宽（像素）
	arrowWidth = 3.0

	// blurDownscale 模糊的降采样倍数
	// 区域先缩小再线性放大回原尺寸，近似低成本的模糊效果
	blurDownscale = 6.0
)

// 覆盖层配色
var (
	dimColor         = color.RGBA{0, 0, 0, 140}
	arrowColor       = color.RGBA{255, 255, 255, 255}
	labelBgColor     = color.RGBA{36, 36, 42, 235}
	labelBorderColor = color.RGBA{90, 90, 100, 255}
	labelTextColor   = color.RGBA{240, 240, 240, 255}
	cardBgColor      = color.RGBA{40, 40, 46, 245}
	cardBorderColor  = color.RGBA{110, 110, 120, 255}
	cardTitleColor   = color.RGBA{255, 255, 255, 255}
	cardBodyColor    = color.RGBA{200, 200, 205, 255}
)

// Draw 把覆盖层画到 screen 上
//
// 绘制顺序：压暗遮罩 → 模糊区域 → 主箭头 → 二级箭头与标签 →
// 步骤卡片。箭头和标签的透明度来自交错显示调度器。
// 教程空闲时什么都不画。
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.sequencer.Active() {
		return
	}
	step, ok := o.sequencer.Current()
	if !ok {
		return
	}

	o.drawDim(screen)
	o.drawBlurRegions(screen, step)

	// 交错显示索引：主箭头占 0，二级箭头从 1（或 0）开始
	revealIndex := 0
	if o.layout.Primary != nil {
		alpha := o.reveal.Progress(0)
		o.drawArrow(screen, o.layout.Primary, alpha)
		revealIndex = 1
	}
	for i, label := range o.layout.Labels {
		alpha := o.reveal.Progress(revealIndex + i)
		o.drawArrow(screen, o.layout.LabelArrows[i], alpha)
		o.drawLabel(screen, label, alpha)
	}

	o.drawCard(screen, step)
}

// DrawSupplemental 把当前步骤的弹出层补充箭头画到面板图像上
//
// 由宿主在弹出面板自己的绘制阶段调用，panel 使用面板本地坐标系。
// 补充箭头不参与交错显示，面板可见即全量绘制。
func (o *Overlay) DrawSupplemental(panel *ebiten.Image) {
	if !o.sequencer.Active() || !o.popover.Visible() {
		return
	}
	for _, arrow := range o.layout.Supplemental {
		o.drawArrow(panel, arrow, 1)
	}
}

// drawDim 绘制全屏压暗遮罩（呈现后渐显）
func (o *Overlay) drawDim(screen *ebiten.Image) {
	fade := utils.EaseOutQuad(geometry.Clamp(o.dimElapsed/dimFadeDuration, 0, 1))
	vector.DrawFilledRect(screen,
		0, 0, float32(o.container.Width), float32(o.container.Height),
		scaleAlpha(dimColor, fade), false)
}

// displayCard 返回当前应绘制的卡片矩形
// 跨步骤过渡期间在上一步位置和目标位置之间插值
func (o *Overlay) displayCard() geometry.Rect {
	if !o.cardAnimActive {
		return o.layout.Card
	}
	t := utils.EaseInOutCubic(o.cardAnimT)
	return lerpRect(o.cardFrom, o.layout.Card, t)
}

// lerpRect 在两个矩形之间线性插值
func lerpRect(a, b geometry.Rect, t float64) geometry.Rect {
	return geometry.Rect{
		X:      utils.Lerp(a.X, b.X, t),
		Y:      utils.Lerp(a.Y, b.Y, t),
		Width:  utils.Lerp(a.Width, b.Width, t),
		Height: utils.Lerp(a.Height, b.Height, t),
	}
}

// drawBlurRegions 绘制当前步骤声明的模糊区域
//
// 每个区域按绑定元素的当前矩形取屏幕内容，降采样到临时画布
// 再线性放大画回原位。未绑定或未登记的区域跳过。
func (o *Overlay) drawBlurRegions(screen *ebiten.Image, step *tour.Step) {
	if step.Blur.IsEmpty() {
		return
	}
	frames := o.registry.Normalized(o.origin)

	for region, el := range o.blurBindings {
		if !step.Blur.Has(region) {
			continue
		}
		rect, ok := frames[el.ID]
		if !ok {
			continue
		}
		o.drawBlurRegion(screen, rect)
	}
}

// drawBlurRegion 对单个矩形区域做降采样模糊
func (o *Overlay) drawBlurRegion(screen *ebiten.Image, rect geometry.Rect) {
	x, y := int(rect.X), int(rect.Y)
	w, h := int(rect.Width), int(rect.Height)
	if w <= 0 || h <= 0 {
		return
	}

	srcRect := image.Rect(x, y, x+w, y+h).Intersect(screen.Bounds())
	if srcRect.Empty() {
		return
	}
	sub := screen.SubImage(srcRect).(*ebiten.Image)

	scratchW := max(srcRect.Dx()/int(blurDownscale), 1)
	scratchH := max(srcRect.Dy()/int(blurDownscale), 1)
	if o.blurScratch == nil ||
		o.blurScratch.Bounds().Dx() != scratchW ||
		o.blurScratch.Bounds().Dy() != scratchH {
		o.blurScratch = ebiten.NewImage(scratchW, scratchH)
	}
	o.blurScratch.Clear()

	// 降采样
	down := &ebiten.DrawImageOptions{}
	down.GeoM.Scale(
		float64(scratchW)/float64(srcRect.Dx()),
		float64(scratchH)/float64(srcRect.Dy()),
	)
	down.Filter = ebiten.FilterLinear
	o.blurScratch.DrawImage(sub, down)

	// 放大画回
	up := &ebiten.DrawImageOptions{}
	up.GeoM.Scale(
		float64(srcRect.Dx())/float64(scratchW),
		float64(srcRect.Dy())/float64(scratchH),
	)
	up.GeoM.Translate(float64(srcRect.Min.X), float64(srcRect.Min.Y))
	up.Filter = ebiten.FilterLinear
	screen.DrawImage(o.blurScratch, up)
}

// drawArrow 绘制一条箭头曲线及头部两翼
//
// 曲线离散成 arrowSegments 段直线；alpha 来自交错显示进度，
// 再乘以箭头自身声明的不透明度。声明了图标的箭头改画注册的
// 图标图像，不画箭杆。
func (o *Overlay) drawArrow(screen *ebiten.Image, arrow *tour.ResolvedArrow, alpha float64) {
	a := alpha * arrow.Arrow.Opacity
	if a <= 0 {
		return
	}
	if arrow.Arrow.Icon != "" {
		o.drawIcon(screen, arrow, a)
		return
	}

	c := scaleAlpha(arrowColor, a)
	path := arrow.Path

	prev := path.PointAt(0)
	for i := 1; i <= arrowSegments; i++ {
		t := float64(i) / arrowSegments
		next := path.PointAt(t)
		vector.StrokeLine(screen,
			float32(prev.X), float32(prev.Y),
			float32(next.X), float32(next.Y),
			arrowWidth, c, true)
		prev = next
	}

	vector.StrokeLine(screen,
		float32(path.End.X), float32(path.End.Y),
		float32(path.HeadLeft.X), float32(path.HeadLeft.Y),
		arrowWidth, c, true)
	vector.StrokeLine(screen,
		float32(path.End.X), float32(path.End.Y),
		float32(path.HeadRight.X), float32(path.HeadRight.Y),
		arrowWidth, c, true)
}

// drawIcon 在箭头的目标锚点处居中绘制注册的图标
// 标识未注册时本帧不画（宿主可能尚未加载完图标资源）
func (o *Overlay) drawIcon(screen *ebiten.Image, arrow *tour.ResolvedArrow, alpha float64) {
	icon := o.icons[arrow.Arrow.Icon]
	if icon == nil {
		return
	}
	bounds := icon.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(
		arrow.AnchorPoint.X-float64(bounds.Dx())/2,
		arrow.AnchorPoint.Y-float64(bounds.Dy())/2,
	)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(icon, op)
}

// drawLabel 绘制一个二级箭头标签
// 图标箭头用图标替代标签，跳过
func (o *Overlay) drawLabel(screen *ebiten.Image, label *tour.ResolvedLabel, alpha float64) {
	if label.Arrow.Icon != "" {
		return
	}
	a := alpha * label.Arrow.Opacity
	if a <= 0 {
		return
	}
	rect := label.Rect()

	if label.Arrow.LabelStyle == tour.LabelStyleSolid {
		vector.DrawFilledRect(screen,
			float32(rect.X), float32(rect.Y),
			float32(rect.Width), float32(rect.Height),
			scaleAlpha(labelBgColor, a), true)
		strokeRect(screen, rect, 1, scaleAlpha(labelBorderColor, a))
	}

	textStr := label.Arrow.Target.Label
	if textStr == "" || o.fonts.Label == nil {
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(rect.X+rect.Width/2, rect.Y+rect.Height/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(labelTextColor)
	op.ColorScale.ScaleAlpha(float32(a))
	text.Draw(screen, textStr, o.fonts.Label, op)
}

// drawCard 绘制步骤卡片
//
// 设置了自定义内容的步骤只回调宿主，不画默认的标题/正文。
func (o *Overlay) drawCard(screen *ebiten.Image, step *tour.Step) {
	card := o.displayCard()

	if step.CustomContent != nil {
		step.CustomContent(screen, card, o.Actions())
		return
	}

	vector.DrawFilledRect(screen,
		float32(card.X), float32(card.Y),
		float32(card.Width), float32(card.Height),
		cardBgColor, true)
	strokeRect(screen, card, 1, cardBorderColor)

	y := card.Y + cardPadding

	if step.Title != "" && o.fonts.Title != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(card.X+cardPadding, y)
		op.ColorScale.ScaleWithColor(cardTitleColor)
		text.Draw(screen, step.Title, o.fonts.Title, op)
		y += utils.MeasureTextHeight(step.Title, o.fonts.Title) + cardTitleGap
	}

	if step.Body != "" && o.fonts.Body != nil {
		lineHeight := utils.MeasureTextHeight(step.Body, o.fonts.Body)
		lines := utils.WrapText(step.Body, o.fonts.Body, card.Width-cardPadding*2)
		for _, line := range lines {
			op := &text.DrawOptions{}
			op.GeoM.Translate(card.X+cardPadding, y)
			op.ColorScale.ScaleWithColor(cardBodyColor)
			text.Draw(screen, line, o.fonts.Body, op)
			y += lineHeight + cardLineGap
		}
	}
}

// strokeRect 绘制矩形边框
func strokeRect(screen *ebiten.Image, r geometry.Rect, width float32, c color.RGBA) {
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.MaxX()), float32(r.MaxY())
	vector.StrokeLine(screen, x0, y0, x1, y0, width, c, true)
	vector.StrokeLine(screen, x1, y0, x1, y1, width, c, true)
	vector.StrokeLine(screen, x1, y1, x0, y1, width, c, true)
	vector.StrokeLine(screen, x0, y1, x0, y0, width, c, true)
}

// scaleAlpha 按系数缩放颜色的不透明度（预乘语义）
func scaleAlpha(c color.RGBA, a float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
