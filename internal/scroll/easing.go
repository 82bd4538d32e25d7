package scroll

// Easing names an interpolation curve.
type Easing string

const (
	EasingLinear         Easing = "linear"
	EasingInQuad         Easing = "ease-in-quad"
	EasingOutQuad        Easing = "ease-out-quad"
	EasingInOutQuad      Easing = "ease-in-out-quad"
	EasingInCubic        Easing = "ease-in-cubic"
	EasingOutCubic       Easing = "ease-out-cubic"
	EasingInOutCubic     Easing = "ease-in-out-cubic"
	// EasingSmooth approximates cubic-bezier(0.4, 0, 0.2, 1), the default
	// deceleration curve of the reader UI.
	EasingSmooth Easing = "smooth"
)

var easingFuncs = map[Easing]func(float64) float64{
	EasingLinear: func(t float64) float64 { return t },
	EasingInQuad: func(t float64) float64 { return t * t },
	EasingOutQuad: func(t float64) float64 { return t * (2 - t) },
	EasingInOutQuad: func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},
	EasingInCubic: func(t float64) float64 { return t * t * t },
	EasingOutCubic: func(t float64) float64 {
		t--
		return t*t*t + 1
	},
	EasingInOutCubic: func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	},
	EasingSmooth: func(t float64) float64 { return t * t * (3 - 2*t) },
}

// ValidEasing reports whether name is a recognized curve.
func ValidEasing(name Easing) bool {
	_, ok := easingFuncs[name]
	return ok
}

// ease applies the named curve to a progress value in [0,1]. Unknown names
// fall back to the smooth default.
func ease(name Easing, t float64) float64 {
	if fn, ok := easingFuncs[name]; ok {
		return fn(t)
	}
	return easingFuncs[EasingSmooth](t)
}
