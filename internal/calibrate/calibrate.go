// Package calibrate drives the iterative adjustment of unlocked equalizer
// parameters toward a better matching score. The equalizer only marks
// parameters calibratable; the search loops live here.
package calibrate

import (
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/optimize"

	"matchtuner/internal/equalizer"
)

// Objective scores the equalizer's current configuration; higher is better.
// It is evaluated after every proposed parameter change, typically by
// running one matching attempt with the registry synced to the backends.
type Objective func() (float64, error)

// Options bounds a calibration run.
type Options struct {
	// Categories to calibrate; nil means all five.
	Categories []equalizer.Category
	// MaxPasses caps the step-search passes (Step) or the simplex major
	// iterations (NelderMead). Zero selects a default.
	MaxPasses int
}

const defaultMaxPasses = 32

// target is one unlocked parameter with its current search step.
type target struct {
	category equalizer.Category
	name     string
	p        *equalizer.Parameter
	step     float64
}

// targets collects the parameters eligible for calibration: unlocked, and
// with a step at least as large as the tolerance (a smaller step means the
// parameter is not continuously calibrated, which covers booleans).
func targets(eq *equalizer.Equalizer, cats []equalizer.Category) ([]*target, error) {
	if cats == nil {
		cats = equalizer.Categories()
	}
	var out []*target
	for _, c := range cats {
		ps, err := eq.Params(c)
		if err != nil {
			return nil, err
		}
		for _, name := range ps.Names() {
			p, _ := ps.Get(name)
			if p.Fixed || !p.Value.IsNumeric() {
				continue
			}
			if p.Delta.Float() < p.Tolerance.Float() {
				continue
			}
			out = append(out, &target{category: c, name: name, p: p, step: p.Delta.Float()})
		}
	}
	return out, nil
}

// Step runs a coordinate search: every eligible parameter is probed one
// step up and one step down per pass, better configurations are kept, and
// float steps are halved down to their tolerance once a pass brings no
// improvement. It returns the best score reached.
func Step(eq *equalizer.Equalizer, fn Objective, opts Options) (float64, error) {
	best, err := fn()
	if err != nil {
		return 0, err
	}
	ts, err := targets(eq, opts.Categories)
	if err != nil {
		return 0, err
	}
	if len(ts) == 0 {
		return best, nil
	}

	passes := opts.MaxPasses
	if passes <= 0 {
		passes = defaultMaxPasses
	}
	for pass := 0; pass < passes; pass++ {
		improved := false
		for _, t := range ts {
			for _, cand := range neighbors(t) {
				old := t.p.Value
				t.p.Value = cand
				score, err := fn()
				if err != nil {
					t.p.Value = old
					return best, err
				}
				if score > best {
					best = score
					improved = true
					log.Trace().Str("category", string(t.category)).
						Str("param", t.name).Stringer("value", cand).
						Float64("score", score).Msg("calibration step accepted")
				} else {
					t.p.Value = old
				}
			}
		}
		if improved {
			continue
		}
		shrunk := false
		for _, t := range ts {
			if t.p.Value.Kind() == equalizer.KindFloat && t.step/2 >= t.p.Tolerance.Float() {
				t.step /= 2
				shrunk = true
			}
		}
		if !shrunk {
			break
		}
	}
	return best, nil
}

// neighbors proposes the one-step moves for a target, clamped to its
// bounds. Moves that end up at the current value are dropped.
func neighbors(t *target) []equalizer.Value {
	var out []equalizer.Value
	switch t.p.Value.Kind() {
	case equalizer.KindInt:
		step := int(math.Round(t.step))
		if step < 1 {
			step = 1
		}
		cur := t.p.Value.Int()
		for _, v := range []int{cur + step, cur - step} {
			v = clampInt(v, t.p)
			if v != cur {
				out = append(out, equalizer.Int(v))
			}
		}
	case equalizer.KindFloat:
		cur := t.p.Value.Float()
		for _, v := range []float64{cur + t.step, cur - t.step} {
			v = clampFloat(v, t.p)
			if v != cur {
				out = append(out, equalizer.Float(v))
			}
		}
	}
	return out
}

func clampFloat(v float64, p *equalizer.Parameter) float64 {
	if !p.Min.IsNone() && v < p.Min.Float() {
		v = p.Min.Float()
	}
	if !p.Max.IsNone() && v > p.Max.Float() {
		v = p.Max.Float()
	}
	return v
}

func clampInt(v int, p *equalizer.Parameter) int {
	if !p.Min.IsNone() && v < int(p.Min.Float()) {
		v = int(p.Min.Float())
	}
	if !p.Max.IsNone() && v > int(p.Max.Float()) {
		v = int(p.Max.Float())
	}
	return v
}

// NelderMead runs a downhill simplex over the unlocked floating-point
// parameters. Integer and boolean parameters are left to Step. The best
// configuration found is written back to the registry.
func NelderMead(eq *equalizer.Equalizer, fn Objective, opts Options) (float64, error) {
	all, err := targets(eq, opts.Categories)
	if err != nil {
		return 0, err
	}
	var ts []*target
	for _, t := range all {
		if t.p.Value.Kind() == equalizer.KindFloat {
			ts = append(ts, t)
		}
	}
	if len(ts) == 0 {
		return fn()
	}

	x0 := make([]float64, len(ts))
	for i, t := range ts {
		x0[i] = t.p.Value.Float()
	}

	var evalErr error
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if evalErr != nil {
				return math.Inf(1)
			}
			penalty := 0.0
			for i, t := range ts {
				clamped := clampFloat(x[i], t.p)
				penalty += math.Abs(x[i] - clamped)
				t.p.Value = equalizer.Float(clamped)
			}
			score, err := fn()
			if err != nil {
				evalErr = err
				return math.Inf(1)
			}
			return -score + penalty
		},
	}

	var settings *optimize.Settings
	if opts.MaxPasses > 0 {
		settings = &optimize.Settings{MajorIterations: opts.MaxPasses}
	}
	res, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if evalErr != nil {
		return 0, evalErr
	}
	if err != nil && res == nil {
		return 0, err
	}

	for i, t := range ts {
		t.p.Value = equalizer.Float(clampFloat(res.X[i], t.p))
	}
	return fn()
}
