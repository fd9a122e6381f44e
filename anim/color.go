package anim

import (
	"github.com/lucasb-eyer/go-colorful"
)

// LerpRgb blends two colours component-wise in RGB space. This is the
// default strategy for colorful.Color.
func LerpRgb(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendRgb(b, t)
}

// LerpHcl blends two colours in HCL space, taking the shortest way round the
// hue circle. Intermediate colours keep their perceived brightness better
// than in RGB.
func LerpHcl(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendHcl(b, t).Clamped()
}

// LerpLab blends two colours in CIE L*a*b* space.
func LerpLab(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendLab(b, t).Clamped()
}

// ColorInterpolator maps a blend space name ("rgb", "hcl", "lab") to its
// interpolator. An empty name gives LerpRgb.
func ColorInterpolator(space string) (Interpolator[colorful.Color], error) {
	switch space {
	case "", "rgb":
		return LerpRgb, nil
	case "hcl":
		return LerpHcl, nil
	case "lab":
		return LerpLab, nil
	}
	return nil, NewError(ErrCodeUnsupportedType, "unknown colour blend space %q", space)
}
