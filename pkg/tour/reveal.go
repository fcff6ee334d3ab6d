package tour

import (
	"github.com/nathan-85/tutorialkit/pkg/geometry"
	"github.com/nathan-85/tutorialkit/pkg/utils"
)

// 交错显示默认参数（秒）
const (
	DefaultRevealBaseDelay = 0.35
	DefaultRevealIncrement = 0.25
	DefaultRevealFade      = 0.25
)

// RevealScheduler 箭头/标签的交错显示调度器
//
// 第 i 个可解析条目在进入步骤 BaseDelay + i·Increment 秒后开始
// 淡入。调度完全由 Update(deltaTime) 的单线程滴答驱动，没有
// goroutine 和真实计时器，因此"取消"就是重建排程表——同一时刻
// 至多存在一张排程表，被替换的排程不可能再改动任何状态。
//
// 可解析数量中途增加（目标矩形迟到）时，已显示的条目保持显示，
// 未显示的部分以当前时刻为基准重新排程；数量降为零时取消全部
// 排程并把可见数清零。
type RevealScheduler struct {
	// BaseDelay 首个条目的延迟（秒）
	BaseDelay float64

	// Increment 相邻条目之间的间隔（秒）
	Increment float64

	// FadeDuration 单个条目的淡入时长（秒）
	FadeDuration float64

	elapsed  float64
	revealAt []float64
}

// NewRevealScheduler 创建使用默认参数的调度器
func NewRevealScheduler() *RevealScheduler {
	return &RevealScheduler{
		BaseDelay:    DefaultRevealBaseDelay,
		Increment:    DefaultRevealIncrement,
		FadeDuration: DefaultRevealFade,
	}
}

// Reset 清空排程并把时间轴归零（进入新步骤时调用）
func (r *RevealScheduler) Reset() {
	r.elapsed = 0
	r.revealAt = nil
}

// Update 推进调度器时间轴
func (r *RevealScheduler) Update(deltaTime float64) {
	r.elapsed += deltaTime
}

// SetResolvableCount 告知当前可解析的条目数量
//
// 数量增长时只为尚未显示的条目重新排程；降为零时取消全部。
// 每帧以当帧布局结果调用是幂等的（数量不变则什么都不发生）。
func (r *RevealScheduler) SetResolvableCount(n int) {
	if n == len(r.revealAt) {
		return
	}
	if n <= 0 {
		r.revealAt = nil
		return
	}
	if n < len(r.revealAt) {
		r.revealAt = r.revealAt[:n]
		return
	}

	// 以可见数为界：可见条目保持原时刻，其余从当前时刻重排
	visible := r.VisibleCount()
	next := make([]float64, n)
	copy(next, r.revealAt[:visible])
	for i := visible; i < n; i++ {
		next[i] = r.elapsed + r.BaseDelay + float64(i-visible)*r.Increment
	}
	r.revealAt = next
}

// VisibleCount 返回当前已开始显示的条目数（前缀）
func (r *RevealScheduler) VisibleCount() int {
	for i, at := range r.revealAt {
		if r.elapsed < at {
			return i
		}
	}
	return len(r.revealAt)
}

// Progress 返回第 i 个条目的淡入进度 [0,1]（已缓动）
func (r *RevealScheduler) Progress(i int) float64 {
	if i < 0 || i >= len(r.revealAt) {
		return 0
	}
	if r.FadeDuration <= 0 {
		if r.elapsed >= r.revealAt[i] {
			return 1
		}
		return 0
	}
	t := geometry.Clamp((r.elapsed-r.revealAt[i])/r.FadeDuration, 0, 1)
	return utils.EaseOutCubic(t)
}

// ScheduledCount 返回当前排程表的条目总数
func (r *RevealScheduler) ScheduledCount() int {
	return len(r.revealAt)
}
