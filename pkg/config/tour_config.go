// Package config 提供引导教程的 YAML 配置加载与解析
// 宿主应用可以把一次引导的全部步骤、箭头和卡片布局写在配置文件里，
// 由 BuildSteps 转换为 tour 包的运行时结构
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nathan-85/tutorialkit/pkg/geometry"
	"github.com/nathan-85/tutorialkit/pkg/tour"
)

// TourConfig 一次完整引导的配置数据结构
type TourConfig struct {
	ID    string       `yaml:"id"`    // 引导ID，如 "onboarding"
	Name  string       `yaml:"name"`  // 引导名称（可选，仅用于日志）
	Steps []StepConfig `yaml:"steps"` // 步骤列表，按呈现顺序排列
}

// StepConfig 单个引导步骤配置
type StepConfig struct {
	Title  string        `yaml:"title"`  // 卡片标题（可选）
	Body   string        `yaml:"body"`   // 卡片正文（可选）
	Arrows []ArrowConfig `yaml:"arrows"` // 本步骤的箭头列表，第一条为主箭头
	Blur   []string      `yaml:"blur"`   // 需要虚化的区域名称列表（可选）

	// 卡片位置（可选），三选一：
	//   - card / cardLandscape: 容器内的比例坐标（0~1）
	//   - centered: true 时卡片居中
	// 都未设置时按箭头目标的质心自动放置
	Card          *PointConfig `yaml:"card"`
	CardLandscape *PointConfig `yaml:"cardLandscape"`
	Centered      bool         `yaml:"centered"`

	Triggers []string `yaml:"triggers"` // 进入本步骤时触发的动作名称（可选）
}

// ArrowConfig 单条箭头配置
type ArrowConfig struct {
	Target string `yaml:"target"` // 目标元素ID（必填）
	Label  string `yaml:"label"`  // 标签文字（可选，覆盖元素默认标签）

	// 锚点使用文本语法，如 "top"、"bottomTrailing"、"top@0.25"
	Anchor     string `yaml:"anchor"`     // 目标上的锚点，默认 "top"
	FromAnchor string `yaml:"fromAnchor"` // 标签上的出发锚点，默认为 anchor 的对侧

	Length          float64  `yaml:"length"`          // 箭杆长度（像素），0 表示默认值
	LengthLandscape *float64 `yaml:"lengthLandscape"` // 横屏下的箭杆长度（可选）
	Angle           *float64 `yaml:"angle"`           // 出发角度（度，0为正上方顺时针），未设置时由锚点决定
	AngleLandscape  *float64 `yaml:"angleLandscape"`  // 横屏下的出发角度（可选）

	Bend         string  `yaml:"bend"`         // 弯曲方向："auto"(默认), "left", "right", "none"
	BendStrength string  `yaml:"bendStrength"` // 弯曲强度："low", "medium"(默认), "high"
	Icon         string  `yaml:"icon"`         // 图标标识（可选），设置后画图标而不画箭杆和标签
	Opacity      float64 `yaml:"opacity"`      // 不透明度（0~1），0 表示默认值 1
	LabelStyle   string  `yaml:"labelStyle"`   // 标签样式："solid"(默认), "plain"
	Supplemental bool    `yaml:"supplemental"` // 是否为弹层补充箭头

	OffsetX float64 `yaml:"offsetX"` // 锚点附加偏移X（像素）
	OffsetY float64 `yaml:"offsetY"` // 锚点附加偏移Y（像素）
}

// PointConfig 比例坐标配置（0~1，相对容器）
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadTourConfig 从YAML文件加载引导配置
// 参数：
//
//	filepath - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	*TourConfig - 解析后的引导配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadTourConfig(filepath string) (*TourConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tour config file %s: %w", filepath, err)
	}

	config, err := ParseTourConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid tour config in %s: %w", filepath, err)
	}

	return config, nil
}

// ParseTourConfig 从YAML字节数据解析引导配置
// 适用于 go:embed 嵌入的配置数据
func ParseTourConfig(data []byte) (*TourConfig, error) {
	var config TourConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tour config YAML: %w", err)
	}

	applyTourDefaults(&config)

	if err := validateTourConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyTourDefaults 为缺失的可选字段设置默认值
func applyTourDefaults(config *TourConfig) {
	for i := range config.Steps {
		step := &config.Steps[i]
		for j := range step.Arrows {
			arrow := &step.Arrows[j]
			if arrow.Anchor == "" {
				arrow.Anchor = "top"
			}
			if arrow.Bend == "" {
				arrow.Bend = "auto"
			}
			if arrow.BendStrength == "" {
				arrow.BendStrength = "medium"
			}
			if arrow.Opacity == 0 {
				arrow.Opacity = 1.0
			}
			if arrow.LabelStyle == "" {
				arrow.LabelStyle = "solid"
			}
			// FromAnchor 留空表示取 Anchor 的对侧，由运行时决定
		}
	}
}

// validateTourConfig 验证引导配置的完整性和合法性
func validateTourConfig(config *TourConfig) error {
	if config.ID == "" {
		return fmt.Errorf("tour ID is required")
	}

	if len(config.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}

	for i, step := range config.Steps {
		for j, arrow := range step.Arrows {
			if arrow.Target == "" {
				return fmt.Errorf("step %d, arrow %d: target is required", i, j)
			}

			if _, err := parseAnchor(arrow.Anchor); err != nil {
				return fmt.Errorf("step %d, arrow %d: %w", i, j, err)
			}
			if arrow.FromAnchor != "" {
				if _, err := parseAnchor(arrow.FromAnchor); err != nil {
					return fmt.Errorf("step %d, arrow %d: %w", i, j, err)
				}
			}

			if _, err := parseBend(arrow.Bend); err != nil {
				return fmt.Errorf("step %d, arrow %d: %w", i, j, err)
			}
			if _, err := parseBendStrength(arrow.BendStrength); err != nil {
				return fmt.Errorf("step %d, arrow %d: %w", i, j, err)
			}
			if _, err := parseLabelStyle(arrow.LabelStyle); err != nil {
				return fmt.Errorf("step %d, arrow %d: %w", i, j, err)
			}

			if arrow.Opacity < 0 || arrow.Opacity > 1 {
				return fmt.Errorf("step %d, arrow %d: opacity must be between 0 and 1, got %g", i, j, arrow.Opacity)
			}
			if arrow.Length < 0 {
				return fmt.Errorf("step %d, arrow %d: length cannot be negative", i, j)
			}
		}

		if err := validatePoint(step.Card); err != nil {
			return fmt.Errorf("step %d: card %w", i, err)
		}
		if err := validatePoint(step.CardLandscape); err != nil {
			return fmt.Errorf("step %d: cardLandscape %w", i, err)
		}
	}

	return nil
}

// validatePoint 校验比例坐标在 0~1 范围内
func validatePoint(p *PointConfig) error {
	if p == nil {
		return nil
	}
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return fmt.Errorf("position must be within [0,1], got (%g, %g)", p.X, p.Y)
	}
	return nil
}

// BuildSteps 将配置转换为运行时步骤列表
// 参数：
//
//	elements - 元素ID到元素对象的映射，配置中的 target 必须能在其中找到
//	blurs - 虚化区域名称到区域标识的映射（可为 nil）
//
// 返回：
//
//	[]*tour.Step - 运行时步骤列表
//	error - 如果引用了未注册的元素或虚化区域，返回错误信息
func (c *TourConfig) BuildSteps(
	elements map[string]tour.Element,
	blurs map[string]tour.BlurRegion,
) ([]*tour.Step, error) {
	steps := make([]*tour.Step, 0, len(c.Steps))

	for i, sc := range c.Steps {
		step := tour.NewStep(sc.Title, sc.Body)
		step.Centered = sc.Centered

		if sc.Card != nil {
			if sc.CardLandscape != nil {
				step.CardPosition = tour.PerOrientation(
					geometry.Point{X: sc.Card.X, Y: sc.Card.Y},
					geometry.Point{X: sc.CardLandscape.X, Y: sc.CardLandscape.Y},
				)
			} else {
				step.CardPosition = tour.Fixed(geometry.Point{X: sc.Card.X, Y: sc.Card.Y})
			}
		}

		for j, ac := range sc.Arrows {
			arrow, err := buildArrow(ac, elements)
			if err != nil {
				return nil, fmt.Errorf("step %d, arrow %d: %w", i, j, err)
			}
			if ac.Supplemental {
				step.Supplemental = append(step.Supplemental, arrow)
			} else {
				step.Arrows = append(step.Arrows, arrow)
			}
		}

		for _, name := range sc.Blur {
			region, ok := blurs[name]
			if !ok {
				return nil, fmt.Errorf("step %d: unknown blur region %q", i, name)
			}
			step.Blur = step.Blur.With(region)
		}

		step.Triggers = sc.Triggers

		steps = append(steps, step)
	}

	return steps, nil
}

// buildArrow 将单条箭头配置转换为运行时箭头
func buildArrow(ac ArrowConfig, elements map[string]tour.Element) (*tour.Arrow, error) {
	element, ok := elements[ac.Target]
	if !ok {
		return nil, fmt.Errorf("unknown target element %q", ac.Target)
	}
	if ac.Label != "" {
		element.Label = ac.Label
	}

	arrow := tour.NewArrow(element)

	// 配置在加载时已校验，这里的解析不会失败
	anchor, err := parseAnchor(ac.Anchor)
	if err != nil {
		return nil, err
	}
	arrow.Anchor = tour.Fixed(anchor)

	if ac.FromAnchor != "" {
		fromAnchor, err := parseAnchor(ac.FromAnchor)
		if err != nil {
			return nil, err
		}
		arrow.FromAnchor = tour.Fixed(fromAnchor)
	}

	if ac.Length > 0 {
		if ac.LengthLandscape != nil {
			arrow.Length = tour.PerOrientation(ac.Length, *ac.LengthLandscape)
		} else {
			arrow.Length = tour.Fixed(ac.Length)
		}
	}

	if ac.Angle != nil {
		if ac.AngleLandscape != nil {
			arrow.Angle = tour.PerOrientation(*ac.Angle, *ac.AngleLandscape)
		} else {
			arrow.Angle = tour.Fixed(*ac.Angle)
		}
	}

	arrow.Bend, _ = parseBend(ac.Bend)
	arrow.BendStrength, _ = parseBendStrength(ac.BendStrength)
	arrow.LabelStyle, _ = parseLabelStyle(ac.LabelStyle)
	arrow.Icon = ac.Icon
	arrow.Opacity = ac.Opacity
	if ac.OffsetX != 0 || ac.OffsetY != 0 {
		arrow.Offset = tour.Fixed(geometry.Point{X: ac.OffsetX, Y: ac.OffsetY})
	}

	return arrow, nil
}

// parseAnchor 解析锚点文本语法
// 支持的形式：
//   - 固定锚点："top", "bottom", "leading", "trailing", "center",
//     "topLeading", "topTrailing", "bottomLeading", "bottomTrailing"
//   - 沿边比例锚点："top@0.25" 表示顶边上 25% 位置
func parseAnchor(s string) (tour.Anchor, error) {
	name := s
	fraction := -1.0

	if at := strings.IndexByte(s, '@'); at >= 0 {
		name = s[:at]
		f, err := strconv.ParseFloat(s[at+1:], 64)
		if err != nil {
			return tour.Anchor{}, fmt.Errorf("invalid anchor fraction in %q: %w", s, err)
		}
		if f < 0 || f > 1 {
			return tour.Anchor{}, fmt.Errorf("anchor fraction must be within [0,1], got %g in %q", f, s)
		}
		fraction = f
	}

	if fraction >= 0 {
		switch name {
		case "top":
			return tour.AlongTop(fraction), nil
		case "bottom":
			return tour.AlongBottom(fraction), nil
		case "leading":
			return tour.AlongLeading(fraction), nil
		case "trailing":
			return tour.AlongTrailing(fraction), nil
		default:
			return tour.Anchor{}, fmt.Errorf("anchor %q does not support a fraction", name)
		}
	}

	switch name {
	case "top":
		return tour.Top, nil
	case "bottom":
		return tour.Bottom, nil
	case "leading":
		return tour.Leading, nil
	case "trailing":
		return tour.Trailing, nil
	case "center":
		return tour.Center, nil
	case "topLeading":
		return tour.TopLeading, nil
	case "topTrailing":
		return tour.TopTrailing, nil
	case "bottomLeading":
		return tour.BottomLeading, nil
	case "bottomTrailing":
		return tour.BottomTrailing, nil
	default:
		return tour.Anchor{}, fmt.Errorf("unknown anchor %q", s)
	}
}

// parseBend 解析弯曲方向
func parseBend(s string) (tour.Bend, error) {
	switch s {
	case "auto", "":
		return tour.BendAuto, nil
	case "left":
		return tour.BendLeft, nil
	case "right":
		return tour.BendRight, nil
	case "none":
		return tour.BendNone, nil
	default:
		return tour.BendAuto, fmt.Errorf("unknown bend %q (expected auto, left, right or none)", s)
	}
}

// parseBendStrength 解析弯曲强度
func parseBendStrength(s string) (tour.BendStrength, error) {
	switch s {
	case "low":
		return tour.BendLow, nil
	case "medium", "":
		return tour.BendMedium, nil
	case "high":
		return tour.BendHigh, nil
	default:
		return tour.BendMedium, fmt.Errorf("unknown bend strength %q (expected low, medium or high)", s)
	}
}

// parseLabelStyle 解析标签样式
func parseLabelStyle(s string) (tour.LabelStyle, error) {
	switch s {
	case "solid", "":
		return tour.LabelStyleSolid, nil
	case "plain":
		return tour.LabelStylePlain, nil
	default:
		return tour.LabelStyleSolid, fmt.Errorf("unknown label style %q (expected solid or plain)", s)
	}
}
