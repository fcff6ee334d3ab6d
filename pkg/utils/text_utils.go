package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本（卡片正文或标签文字）
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 按字符累积宽度断行，支持中英文混合文本
//   - 单个字符就超宽时强制成行，保证算法总能前进
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if MeasureText(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	// 按字符遍历（支持多字节字符）
	for len(textStr) > 0 {
		r, size := utf8.DecodeRuneInString(textStr)
		char := string(r)

		testLine := currentLine + char
		if MeasureText(testLine, font) > maxWidth {
			// 当前行为空说明单个字符就超宽，强制添加
			if currentLine == "" {
				lines = append(lines, char)
				textStr = textStr[size:]
				continue
			}
			lines = append(lines, strings.TrimSpace(currentLine))
			currentLine = char
		} else {
			currentLine = testLine
		}

		textStr = textStr[size:]
	}

	if currentLine != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}

	if len(lines) == 0 {
		lines = []string{textStr}
	}

	return lines
}

// MeasureText 测量单行文本的宽度（像素）
func MeasureText(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// MeasureTextHeight 测量单行文本的高度（像素）
func MeasureTextHeight(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	_, height := text.Measure(textStr, font, 0)
	return height
}
