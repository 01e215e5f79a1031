package tween

import "github.com/chewxy/math32"

// Ease maps linear progress in [0, 1] to eased progress. Eases return 0 at 0
// and 1 at 1; Back eases overshoot in between.
type Ease func(p float32) float32

func Linear(p float32) float32 { return p }

func Power1In(p float32) float32    { return powIn(p, 2) }
func Power1Out(p float32) float32   { return powOut(p, 2) }
func Power1InOut(p float32) float32 { return powInOut(p, 2) }

func Power2In(p float32) float32    { return powIn(p, 3) }
func Power2Out(p float32) float32   { return powOut(p, 3) }
func Power2InOut(p float32) float32 { return powInOut(p, 3) }

func Power3In(p float32) float32    { return powIn(p, 4) }
func Power3Out(p float32) float32   { return powOut(p, 4) }
func Power3InOut(p float32) float32 { return powInOut(p, 4) }

func SineInOut(p float32) float32 {
	return -(math32.Cos(math32.Pi*p) - 1) / 2
}

// BackOut overshoots the end value slightly before settling.
func BackOut(p float32) float32 {
	const c1 = 1.70158
	const c3 = c1 + 1
	q := p - 1
	return 1 + c3*q*q*q + c1*q*q
}

var eases = map[string]Ease{
	"none":         Linear,
	"linear":       Linear,
	"power1.in":    Power1In,
	"power1.out":   Power1Out,
	"power1.inOut": Power1InOut,
	"power2.in":    Power2In,
	"power2.out":   Power2Out,
	"power2.inOut": Power2InOut,
	"power3.in":    Power3In,
	"power3.out":   Power3Out,
	"power3.inOut": Power3InOut,
	"sine.inOut":   SineInOut,
	"back.out":     BackOut,
}

// EaseByName looks up an ease such as "power2.inOut".
func EaseByName(name string) (Ease, bool) {
	e, ok := eases[name]
	return e, ok
}

func powIn(p, n float32) float32 {
	return math32.Pow(p, n)
}

func powOut(p, n float32) float32 {
	return 1 - math32.Pow(1-p, n)
}

func powInOut(p, n float32) float32 {
	if p < 0.5 {
		return math32.Pow(2*p, n) / 2
	}
	return 1 - math32.Pow(2*(1-p), n)/2
}
