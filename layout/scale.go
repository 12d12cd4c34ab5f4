package layout

// DisplayScale 的取值范围与默认值（px）。
const (
	MinScale     Scale = 20
	MaxScale     Scale = 200
	DefaultScale Scale = 100
)

// Scale 是所有字形格子共享的边长（px），始终位于 [MinScale, MaxScale]。
type Scale int

// ClampScale 把任意整数收敛到合法范围，越界时截断而不是报错。
func ClampScale(v int) Scale {
	switch {
	case v < int(MinScale):
		return MinScale
	case v > int(MaxScale):
		return MaxScale
	default:
		return Scale(v)
	}
}

// Px 返回以 px 为单位的浮点边长。
func (s Scale) Px() float64 { return float64(ClampScale(int(s))) }
