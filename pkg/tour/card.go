package tour

import "github.com/nathan-85/tutorialkit/pkg/geometry"

// cardEdgeInset 卡片与容器边缘的最小间距（像素）
const cardEdgeInset = 8.0

// CardCenter 计算步骤卡片的中心位置
//
// 选位优先级：
//  1. 步骤声明了显式位置（比例坐标，横竖屏可不同）：
//     (container.Width·fx, container.Height·fy)；
//  2. 步骤要求居中，或没有任何箭头目标有已知矩形：容器中心；
//  3. 否则取所有已解析目标矩形中心的（无权重）质心，
//     横屏时卡片放在容器宽度 25% 或 75% 处（取质心对侧）、
//     垂直居中；竖屏时对称地取高度 25%/75%、水平居中。
//
// 结果按卡片实测尺寸收缩钳制：水平内缩 max(半宽+8, 8)，
// 垂直同理，保证卡片整体不超出容器。
func CardCenter(step *Step, landscape bool, container geometry.Size, frames map[string]geometry.Rect, cardSize geometry.Size) geometry.Point {
	center := geometry.Pt(container.Width/2, container.Height/2)

	switch {
	case step.CardPosition.IsSet():
		f := step.CardPosition.Pick(landscape)
		center = geometry.Pt(container.Width*f.X, container.Height*f.Y)

	case step.Centered:
		// 保持容器中心

	default:
		var centers []geometry.Point
		for _, arrow := range step.Arrows {
			if rect, ok := frames[arrow.Target.ID]; ok {
				centers = append(centers, rect.Center())
			}
		}
		if len(centers) > 0 {
			centroid := geometry.Centroid(centers)
			if landscape {
				x := container.Width * 0.75
				if centroid.X > container.Width/2 {
					x = container.Width * 0.25
				}
				center = geometry.Pt(x, container.Height/2)
			} else {
				y := container.Height * 0.75
				if centroid.Y > container.Height/2 {
					y = container.Height * 0.25
				}
				center = geometry.Pt(container.Width/2, y)
			}
		}
	}

	insetX := max(cardSize.Width/2+cardEdgeInset, cardEdgeInset)
	insetY := max(cardSize.Height/2+cardEdgeInset, cardEdgeInset)
	return geometry.Pt(
		geometry.Clamp(center.X, insetX, container.Width-insetX),
		geometry.Clamp(center.Y, insetY, container.Height-insetY),
	)
}
