package flip

// Easing names understood by Ease.
const (
	EaseLinear     = "linear"
	EaseIn         = "ease-in"
	EaseOut        = "ease-out"
	EaseInOut      = "ease-in-out"
	EaseSmoothstep = "smoothstep"
)

// Ease maps linear progress t in [0,1] through the named curve. Unknown
// names use smoothstep.
func Ease(name string, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch name {
	case EaseLinear:
		return t
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2.0 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	default:
		return smoothstep(t)
	}
}

func smoothstep(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}
