// Package geometry 提供覆盖层布局使用的基础几何类型
//
// 所有类型都使用浮点坐标，Y 轴向下（屏幕坐标系）。
// 这些类型是纯值类型，方法全部无副作用，便于在布局计算中自由复制。
package geometry

import "math"

// Point 表示二维平面上的一个点（或向量）
type Point struct {
	X float64
	Y float64
}

// Pt 创建一个 Point
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add 返回两点之和
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub 返回两点之差
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale 返回按系数缩放后的点
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Dot 返回两个向量的点积
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Length 返回向量长度
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance 返回到另一点的欧氏距离
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Normalized 返回单位向量；零向量返回零值
func (p Point) Normalized() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Size 表示二维尺寸
type Size struct {
	Width  float64
	Height float64
}

// Sz 创建一个 Size
func Sz(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// IsEmpty 判断尺寸是否为空（任一边不为正）
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect 表示一个轴对齐矩形
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect 创建一个 Rect
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromCenter 以中心点和尺寸创建一个 Rect
func RectFromCenter(center Point, size Size) Rect {
	return Rect{
		X:      center.X - size.Width/2,
		Y:      center.Y - size.Height/2,
		Width:  size.Width,
		Height: size.Height,
	}
}

// Center 返回矩形中心点
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Size 返回矩形尺寸
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// MaxX 返回矩形右边缘的 X 坐标
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY 返回矩形下边缘的 Y 坐标
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Contains 判断点是否落在矩形内（含边界）
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects 判断两个矩形是否相交（正面积重叠）
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// Translate 返回平移后的矩形（尺寸不变）
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Inset 返回四边向内收缩 d 的矩形（d 为负时向外扩张）
func (r Rect) Inset(d float64) Rect {
	return Rect{
		X:      r.X + d,
		Y:      r.Y + d,
		Width:  r.Width - 2*d,
		Height: r.Height - 2*d,
	}
}

// Centroid 计算点集的质心（算术平均位置）
// 空集返回零值点
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Point{X: sumX / n, Y: sumY / n}
}

// Clamp 将 v 限制在 [lo, hi] 区间内
// lo > hi 时返回两者中点（区间退化，调用方的可用空间不足）
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
