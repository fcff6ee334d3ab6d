package tour

import "github.com/nathan-85/tutorialkit/pkg/geometry"

// FrameRegistry 元素坐标登记表
//
// 界面各处的叶子视图在每次布局后把自己的矩形（根坐标系）上报到
// 这里，合并成单一映射（键为 Element.ID，后到覆盖先到）。
// 覆盖层每帧读取快照并归一化到自身坐标系后做布局解算。
//
// 登记表只在单线程事件循环内访问，不做锁保护；冻结标志是弹出层
// 关闭动画期间的写入闸门：冻结时静默丢弃所有上报，防止瞬态
// 中间位置进入布局。
//
// Version 只在合并确实改变内容时递增，下游据此跳过重复计算——
// 重复上报同一矩形是幂等的。
type FrameRegistry struct {
	frames  map[string]geometry.Rect
	frozen  bool
	version uint64
}

// NewFrameRegistry 创建一个空登记表
func NewFrameRegistry() *FrameRegistry {
	return &FrameRegistry{frames: make(map[string]geometry.Rect)}
}

// ReportOne 上报单个元素的矩形（根坐标系）
// 返回本次上报是否改变了登记表内容；冻结时恒为 false
func (r *FrameRegistry) ReportOne(el Element, frame geometry.Rect) bool {
	if r.frozen {
		return false
	}
	if old, ok := r.frames[el.ID]; ok && old == frame {
		return false
	}
	r.frames[el.ID] = frame
	r.version++
	return true
}

// Report 合并一批元素矩形，语义与逐个 ReportOne 相同
// 返回本次合并是否改变了登记表内容
func (r *FrameRegistry) Report(updates map[Element]geometry.Rect) bool {
	if r.frozen {
		return false
	}
	changed := false
	for el, frame := range updates {
		if old, ok := r.frames[el.ID]; ok && old == frame {
			continue
		}
		r.frames[el.ID] = frame
		changed = true
	}
	if changed {
		r.version++
	}
	return changed
}

// Frame 查询元素当前登记的矩形
// 元素尚未上报时返回 ok=false——这不是错误，布局会跳过该元素
func (r *FrameRegistry) Frame(el Element) (geometry.Rect, bool) {
	frame, ok := r.frames[el.ID]
	return frame, ok
}

// Snapshot 返回当前登记内容的副本（键为元素 ID）
func (r *FrameRegistry) Snapshot() map[string]geometry.Rect {
	out := make(map[string]geometry.Rect, len(r.frames))
	for id, frame := range r.frames {
		out[id] = frame
	}
	return out
}

// Normalized 返回归一化到覆盖层本地坐标系的副本
//
// origin 是覆盖层自身在根坐标系中的原点；对每个矩形执行
// local = global - origin（只平移 x/y，尺寸不变）。
// 覆盖层位置或尺寸变化（旋转、缩放窗口）后必须重新取归一化快照。
func (r *FrameRegistry) Normalized(origin geometry.Point) map[string]geometry.Rect {
	out := make(map[string]geometry.Rect, len(r.frames))
	for id, frame := range r.frames {
		out[id] = frame.Translate(-origin.X, -origin.Y)
	}
	return out
}

// Freeze 冻结登记表，之后的上报被静默丢弃
func (r *FrameRegistry) Freeze() {
	r.frozen = true
}

// Unfreeze 解除冻结
func (r *FrameRegistry) Unfreeze() {
	r.frozen = false
}

// Frozen 报告登记表是否处于冻结状态
func (r *FrameRegistry) Frozen() bool {
	return r.frozen
}

// Clear 清空全部登记内容并解除冻结（步骤切换时调用）
func (r *FrameRegistry) Clear() {
	if len(r.frames) > 0 {
		r.version++
	}
	r.frames = make(map[string]geometry.Rect)
	r.frozen = false
}

// Len 返回已登记元素数量
func (r *FrameRegistry) Len() int {
	return len(r.frames)
}

// Version 返回内容版本号；内容每次实际变化时递增
func (r *FrameRegistry) Version() uint64 {
	return r.version
}
