package overlay

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
	"github.com/nathan-85/tutorialkit/pkg/tour"
	"github.com/nathan-85/tutorialkit/pkg/utils"
)

// 卡片与标签的尺寸参数（像素）
const (
	defaultCardWidth  = 280.0
	defaultCardHeight = 140.0
	cardPadding       = 16.0
	cardTitleGap      = 8.0
	cardLineGap       = 4.0

	labelPaddingX  = 10.0
	labelPaddingY  = 6.0
	labelMaxWidth  = 160.0
	labelMinHeight = 24.0
)

// labelSizer 构建标签尺寸估算回调
// 单行文本加内边距；超过最大宽度时换行并累加行高
func labelSizer(font *text.GoTextFace) tour.LabelSizer {
	return func(arrow *tour.Arrow) geometry.Size {
		textStr := arrow.Target.Label
		if textStr == "" || font == nil {
			return geometry.Sz(labelMaxWidth*0.5, labelMinHeight)
		}

		lineHeight := utils.MeasureTextHeight(textStr, font)
		width := utils.MeasureText(textStr, font)
		if width <= labelMaxWidth {
			return geometry.Sz(
				width+labelPaddingX*2,
				max(lineHeight+labelPaddingY*2, labelMinHeight),
			)
		}

		lines := utils.WrapText(textStr, font, labelMaxWidth)
		maxLine := 0.0
		for _, line := range lines {
			maxLine = max(maxLine, utils.MeasureText(line, font))
		}
		height := float64(len(lines))*lineHeight + float64(len(lines)-1)*cardLineGap
		return geometry.Sz(
			maxLine+labelPaddingX*2,
			max(height+labelPaddingY*2, labelMinHeight),
		)
	}
}

// measureCard 按标题和正文实测卡片尺寸
//
// 宽度固定为默认值，高度随内容增长。自定义内容步骤使用默认尺寸，
// 由宿主在回调内自行绘制。
func measureCard(step *tour.Step, titleFont, bodyFont *text.GoTextFace) geometry.Size {
	if step == nil || step.CustomContent != nil {
		return geometry.Sz(defaultCardWidth, defaultCardHeight)
	}

	contentWidth := defaultCardWidth - cardPadding*2
	height := cardPadding * 2

	if step.Title != "" && titleFont != nil {
		height += utils.MeasureTextHeight(step.Title, titleFont)
		if step.Body != "" {
			height += cardTitleGap
		}
	}

	if step.Body != "" && bodyFont != nil {
		lineHeight := utils.MeasureTextHeight(step.Body, bodyFont)
		lines := utils.WrapText(step.Body, bodyFont, contentWidth)
		height += float64(len(lines))*lineHeight + float64(len(lines)-1)*cardLineGap
	}

	return geometry.Sz(defaultCardWidth, max(height, 64))
}
