package anim

import (
	"sort"

	"github.com/fogleman/ease"
)

// A Curve maps linear progress in [0, 1] to eased progress. Curves are
// expected to return 0 at 0 and 1 at 1.
type Curve func(t float64) float64

// Linear is the identity curve.
var Linear Curve = ease.Linear

var curves = map[string]Curve{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// CurveByName looks up a named curve. An empty name gives Linear.
func CurveByName(name string) (Curve, error) {
	if name == "" {
		return Linear, nil
	}
	c, ok := curves[name]
	if !ok {
		return nil, NewError(ErrCodeUnknownCurve, "unknown curve %q", name)
	}
	return c, nil
}

// CurveNames returns the registered curve names in sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reverse returns the curve mirrored about both axes, so an ease-in becomes
// the matching ease-out.
func Reverse(c Curve) Curve {
	return func(t float64) float64 {
		return 1 - c(1-t)
	}
}
