package tour

// Oriented 横竖屏成对的配置值
//
// 覆盖层根据容器宽高比（宽 > 高即横屏）在两个值之间二选一。
// 零值表示"未设置"，由使用方（Arrow/Step）在取值时套用各自的默认值。
type Oriented[T any] struct {
	portrait     T
	landscape    T
	set          bool
	hasLandscape bool
}

// Fixed 创建一个横竖屏取同一值的配置
func Fixed[T any](v T) Oriented[T] {
	return Oriented[T]{portrait: v, set: true}
}

// PerOrientation 创建一个横竖屏取不同值的配置
func PerOrientation[T any](portrait, landscape T) Oriented[T] {
	return Oriented[T]{
		portrait:     portrait,
		landscape:    landscape,
		set:          true,
		hasLandscape: true,
	}
}

// IsSet 报告该配置是否被显式设置过
func (o Oriented[T]) IsSet() bool {
	return o.set
}

// Pick 按当前朝向取值；未设置横屏值时回退到竖屏值
func (o Oriented[T]) Pick(landscape bool) T {
	if landscape && o.hasLandscape {
		return o.landscape
	}
	return o.portrait
}

// PickOr 按当前朝向取值；整个配置未设置时返回 def
func (o Oriented[T]) PickOr(landscape bool, def T) T {
	if !o.set {
		return def
	}
	return o.Pick(landscape)
}
