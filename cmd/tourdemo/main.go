// tourdemo 是引导教程覆盖层的演示应用
//
// 模拟一个训练统计界面：侧边栏、概览面板、进度环和明细列表。
// 按 T 呈现引导，单击推进步骤，按 Esc 中途关闭。
// 第三步会通过触发器自动打开设置弹窗，演示弹出层补充箭头。
package main

import (
	"bytes"
	_ "embed"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/nathan-85/tutorialkit/pkg/config"
	"github.com/nathan-85/tutorialkit/pkg/geometry"
	"github.com/nathan-85/tutorialkit/pkg/overlay"
	"github.com/nathan-85/tutorialkit/pkg/tour"
)

//go:embed tour.yaml
var tourYAML []byte

const (
	screenWidth  = 960
	screenHeight = 600
)

// 模糊区域标识
const (
	blurSidebar tour.BlurRegion = iota
)

// 界面元素的静态布局（演示用，真实应用里由布局系统每帧上报）
var (
	sidebarRect  = geometry.NewRect(0, 0, 160, screenHeight)
	summaryRect  = geometry.NewRect(180, 20, 760, 110)
	wheelRect    = geometry.NewRect(180, 150, 260, 260)
	detailRect   = geometry.NewRect(470, 150, 470, 300)
	settingsRect = geometry.NewRect(876, 32, 48, 28)

	// 设置弹窗及窗内开关（弹窗本地坐标见 toggleLocalRect）
	panelRect       = geometry.NewRect(330, 180, 300, 240)
	toggleLocalRect = geometry.NewRect(40, 90, 48, 24)
)

// Game 演示应用主结构，实现 ebiten.Game 接口
type Game struct {
	overlay  *overlay.Overlay
	settings *SettingsManager

	titleFont *text.GoTextFace
	bodyFont  *text.GoTextFace
	labelFont *text.GoTextFace

	elements map[string]tour.Element

	settingsOpen bool
	panelImage   *ebiten.Image
}

// NewGame 创建演示应用
func NewGame(settings *SettingsManager) (*Game, error) {
	faceSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}

	g := &Game{
		settings:  settings,
		titleFont: &text.GoTextFace{Source: faceSource, Size: 18},
		bodyFont:  &text.GoTextFace{Source: faceSource, Size: 14},
		labelFont: &text.GoTextFace{Source: faceSource, Size: 13},
		elements: map[string]tour.Element{
			"sidebar":        tour.NewElement("sidebar", "侧边栏"),
			"summary":        tour.NewElement("summary", "概览"),
			"wheel":          tour.NewElement("wheel", "进度环"),
			"detail":         tour.NewElement("detail", "明细"),
			"settingsButton": tour.NewElement("settingsButton", "设置"),
			"hintsToggle":    tour.NewElement("hintsToggle", "自动引导"),
		},
	}

	tourConfig, err := config.ParseTourConfig(tourYAML)
	if err != nil {
		return nil, err
	}
	steps, err := tourConfig.BuildSteps(g.elements, map[string]tour.BlurRegion{
		"sidebar": blurSidebar,
	})
	if err != nil {
		return nil, err
	}

	g.overlay = overlay.NewOverlay(overlay.Fonts{
		Title: g.titleFont,
		Body:  g.bodyFont,
		Label: g.labelFont,
	}, func() []*tour.Step { return steps })
	g.overlay.SetViewport(geometry.Pt(0, 0), geometry.Sz(screenWidth, screenHeight))
	g.overlay.AdvanceOnClick = true
	g.overlay.BindBlurRegion(blurSidebar, g.elements["sidebar"])
	g.overlay.OnTriggers = func(names []string) {
		for _, name := range names {
			if name == "openSettings" {
				g.openSettings()
			}
		}
	}

	if settings.GetSettings().ShowHintsOnLaunch {
		g.overlay.Present()
	}

	return g, nil
}

// openSettings 打开设置弹窗并挂接弹出层
func (g *Game) openSettings() {
	if g.settingsOpen {
		return
	}
	g.settingsOpen = true
	g.overlay.Popover().Show(geometry.Pt(panelRect.X, panelRect.Y))
	g.overlay.Popover().ReportFrame(
		g.elements["hintsToggle"],
		toggleLocalRect.Translate(panelRect.X, panelRect.Y),
	)
}

// closeSettings 关闭设置弹窗
func (g *Game) closeSettings() {
	if !g.settingsOpen {
		return
	}
	g.settingsOpen = false
	g.overlay.Popover().BeginClose()
	g.overlay.Popover().Hide()
}

// reportFrames 上报主图层各元素的当前矩形
// 演示里布局是静态的，重复上报是幂等的，不会触发布局重算
func (g *Game) reportFrames() {
	reg := g.overlay.Registry()
	reg.ReportOne(g.elements["sidebar"], sidebarRect)
	reg.ReportOne(g.elements["summary"], summaryRect)
	reg.ReportOne(g.elements["wheel"], wheelRect)
	reg.ReportOne(g.elements["detail"], detailRect)
	reg.ReportOne(g.elements["settingsButton"], settingsRect)
}

// Update 每 tick 推进演示应用
func (g *Game) Update() error {
	g.reportFrames()

	if inpututil.IsKeyJustPressed(ebiten.KeyT) && !g.overlay.Active() {
		g.overlay.Present()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.overlay.Active() {
			g.overlay.Dismiss()
		} else if g.settingsOpen {
			g.closeSettings()
		}
	}

	// 落在覆盖层拦截范围内的输入不再交给宿主自己的点击处理
	mx, my := ebiten.CursorPosition()
	if !g.overlay.WantsInput(mx, my) {
		g.handleClicks()
	}

	g.overlay.Update(1.0 / 60.0)
	return nil
}

// handleClicks 宿主自己的点击处理（设置按钮与弹窗内开关）
func (g *Game) handleClicks() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	p := geometry.Pt(float64(mx), float64(my))

	if g.settingsOpen {
		toggleGlobal := toggleLocalRect.Translate(panelRect.X, panelRect.Y)
		if toggleGlobal.Contains(p) {
			g.settings.SetShowHintsOnLaunch(!g.settings.GetSettings().ShowHintsOnLaunch)
			if err := g.settings.Save(); err != nil {
				log.Printf("[Demo] 保存设置失败: %v", err)
			}
			return
		}
		if !panelRect.Contains(p) {
			g.closeSettings()
		}
		return
	}

	if settingsRect.Contains(p) {
		g.openSettings()
	}
}

// Draw 绘制演示界面、覆盖层和设置弹窗
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 26, 32, 255})

	g.drawPanel(screen, sidebarRect, "菜单")
	g.drawPanel(screen, summaryRect, "今日训练概览")
	g.drawPanel(screen, wheelRect, "进度环 72%")
	g.drawPanel(screen, detailRect, "逐项明细")
	g.drawPanel(screen, settingsRect, "设置")

	g.overlay.Draw(screen)

	// 设置弹窗位于覆盖层之上的独立视觉图层
	if g.settingsOpen {
		g.drawSettingsPanel(screen)
	}
}

// drawPanel 绘制一个带标题的演示面板
func (g *Game) drawPanel(screen *ebiten.Image, r geometry.Rect, label string) {
	vector.DrawFilledRect(screen,
		float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		color.RGBA{44, 48, 58, 255}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(r.X+12, r.Y+10)
	op.ColorScale.ScaleWithColor(color.RGBA{210, 214, 220, 255})
	text.Draw(screen, label, g.bodyFont, op)
}

// drawSettingsPanel 把设置弹窗画到独立画布再叠加回屏幕
// 弹出层补充箭头在弹窗自己的绘制阶段渲染，因此能盖在弹窗内容上
func (g *Game) drawSettingsPanel(screen *ebiten.Image) {
	if g.panelImage == nil {
		g.panelImage = ebiten.NewImage(int(panelRect.Width), int(panelRect.Height))
	}
	g.panelImage.Fill(color.RGBA{58, 62, 74, 255})

	title := &text.DrawOptions{}
	title.GeoM.Translate(16, 14)
	title.ColorScale.ScaleWithColor(color.RGBA{240, 240, 245, 255})
	text.Draw(g.panelImage, "偏好设置", g.titleFont, title)

	// 开关：按当前设置着色
	toggleColor := color.RGBA{90, 96, 110, 255}
	if g.settings.GetSettings().ShowHintsOnLaunch {
		toggleColor = color.RGBA{88, 168, 112, 255}
	}
	vector.DrawFilledRect(g.panelImage,
		float32(toggleLocalRect.X), float32(toggleLocalRect.Y),
		float32(toggleLocalRect.Width), float32(toggleLocalRect.Height),
		toggleColor, false)

	lbl := &text.DrawOptions{}
	lbl.GeoM.Translate(toggleLocalRect.MaxX()+12, toggleLocalRect.Y+4)
	lbl.ColorScale.ScaleWithColor(color.RGBA{210, 214, 220, 255})
	text.Draw(g.panelImage, "启动时自动引导", g.bodyFont, lbl)

	g.overlay.DrawSupplemental(g.panelImage)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(panelRect.X, panelRect.Y)
	screen.DrawImage(g.panelImage, op)
}

// Layout 返回逻辑屏幕尺寸
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "tutorialkit_demo",
	})
	if err != nil {
		log.Printf("[Demo] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}

	settings, err := NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[Demo] Warning: %v", err)
	}

	game, err := NewGame(settings)
	if err != nil {
		log.Fatalf("[Demo] 初始化失败: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("TutorialKit Demo")
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
