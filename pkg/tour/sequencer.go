package tour

import "log"

// StepProvider 步骤提供者
//
// 每次呈现教程时重新调用，支持宿主动态生成步骤列表。
type StepProvider func() []*Step

// Sequencer 步骤状态机
//
// 状态只有两个：空闲（未呈现）和活动（带当前索引）。
// 索引在任何读取路径上都被钳制到 [0, 步骤数-1]，即使宿主
// 在活动期间改动了步骤切片也不会越界。
//
// 所有方法都在单线程事件循环内调用，不做锁保护。
type Sequencer struct {
	provider StepProvider

	steps     []*Step
	index     int
	prevIndex int
	active    bool

	// OnStepChanged 索引变化回调，prev 是变化前的索引
	// 呈现教程时也会触发一次（prev = -1）
	OnStepChanged func(prev, current int)

	// OnDismissed 教程结束回调（完成或中途关闭）
	OnDismissed func()
}

// NewSequencer 创建一个步骤状态机
func NewSequencer(provider StepProvider) *Sequencer {
	return &Sequencer{provider: provider, prevIndex: -1}
}

// Present 呈现教程：重新拉取步骤列表并从第 0 步开始
//
// 步骤列表为空时视为"无事可做"，立即回到空闲并触发 OnDismissed。
func (s *Sequencer) Present() {
	s.steps = nil
	if s.provider != nil {
		s.steps = s.provider()
	}
	if len(s.steps) == 0 {
		log.Printf("[Tour] 步骤列表为空，跳过呈现")
		s.active = false
		s.notifyDismissed()
		return
	}
	s.active = true
	s.index = 0
	s.prevIndex = -1
	s.notifyChanged(-1)
}

// Advance 前进一步；已在最后一步时结束教程
func (s *Sequencer) Advance() {
	if !s.active {
		return
	}
	if s.Index() >= len(s.steps)-1 {
		s.Dismiss()
		return
	}
	prev := s.Index()
	s.prevIndex = prev
	s.index = prev + 1
	s.notifyChanged(prev)
}

// Dismiss 从任意活动状态强制回到空闲
func (s *Sequencer) Dismiss() {
	if !s.active {
		return
	}
	s.active = false
	s.prevIndex = s.index
	s.notifyDismissed()
}

// JumpTo 跳转到指定步骤（越界时钳制）
func (s *Sequencer) JumpTo(index int) {
	if !s.active || len(s.steps) == 0 {
		return
	}
	index = clampIndex(index, len(s.steps))
	if index == s.Index() {
		return
	}
	prev := s.Index()
	s.prevIndex = prev
	s.index = index
	s.notifyChanged(prev)
}

// Active 报告教程是否处于活动状态
func (s *Sequencer) Active() bool {
	return s.active
}

// Index 返回当前步骤索引（始终钳制在合法区间）
func (s *Sequencer) Index() int {
	return clampIndex(s.index, len(s.steps))
}

// PrevIndex 返回上一个步骤索引，用于过渡动画；初始为 -1
func (s *Sequencer) PrevIndex() int {
	return s.prevIndex
}

// StepCount 返回当前快照的步骤数
func (s *Sequencer) StepCount() int {
	return len(s.steps)
}

// Current 返回当前步骤；空闲或列表为空时 ok=false
func (s *Sequencer) Current() (step *Step, ok bool) {
	if !s.active || len(s.steps) == 0 {
		return nil, false
	}
	return s.steps[s.Index()], true
}

// StepAt 返回指定索引的步骤（钳制后），列表为空时 ok=false
func (s *Sequencer) StepAt(index int) (step *Step, ok bool) {
	if len(s.steps) == 0 {
		return nil, false
	}
	return s.steps[clampIndex(index, len(s.steps))], true
}

func (s *Sequencer) notifyChanged(prev int) {
	if s.OnStepChanged != nil {
		s.OnStepChanged(prev, s.Index())
	}
}

func (s *Sequencer) notifyDismissed() {
	if s.OnDismissed != nil {
		s.OnDismissed()
	}
}

// clampIndex 把索引钳制到 [0, count-1]；count 为 0 时返回 0
func clampIndex(index, count int) int {
	if count <= 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index > count-1 {
		return count - 1
	}
	return index
}
