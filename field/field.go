package field

import (
	"fmt"
	"math"

	"github.com/katalvlaran/topograph/core"
)

// Constant returns a field evaluating to v everywhere. It is the
// one constructor without validation; v is the caller's business.
func Constant(v float64) Field { return constant(v) }

type constant float64

func (c constant) Value(Probe, core.Rand) float64 { return float64(c) }

// NewLinear returns a·distance + c.
func NewLinear(a, c float64) (Field, error) {
	if !finite(a) || !finite(c) {
		return nil, fmt.Errorf("%w: linear coefficients must be finite (a=%v, c=%v)", ErrInvalidParameter, a, c)
	}

	return linear{a: a, c: c}, nil
}

type linear struct{ a, c float64 }

func (l linear) Value(p Probe, _ core.Rand) float64 { return l.a*p.Distance + l.c }

// NewExponential returns c + a·e^(−distance/tau). The decay constant
// tau must be positive.
func NewExponential(a, c, tau float64) (Field, error) {
	if !finite(a) || !finite(c) || !finite(tau) || tau <= 0 {
		return nil, fmt.Errorf("%w: exponential needs finite a, c and tau > 0 (tau=%v)", ErrInvalidParameter, tau)
	}

	return exponential{a: a, c: c, tau: tau}, nil
}

type exponential struct{ a, c, tau float64 }

func (e exponential) Value(p Probe, _ core.Rand) float64 {
	return e.c + e.a*math.Exp(-p.Distance/e.tau)
}

// NewGaussian returns c + p·e^(−(distance−mean)²/(2σ²)), the isotropic
// bell over pair distance. sigma must be positive.
func NewGaussian(c, p, mean, sigma float64) (Field, error) {
	if !finite(c) || !finite(p) || !finite(mean) || !finite(sigma) || sigma <= 0 {
		return nil, fmt.Errorf("%w: gaussian needs finite parameters and sigma > 0 (sigma=%v)", ErrInvalidParameter, sigma)
	}

	return gaussian{c: c, p: p, mean: mean, sigma: sigma}, nil
}

type gaussian struct{ c, p, mean, sigma float64 }

func (g gaussian) Value(pr Probe, _ core.Rand) float64 {
	d := pr.Distance - g.mean

	return g.c + g.p*math.Exp(-d*d/(2*g.sigma*g.sigma))
}

// NewGaussian2D returns the correlated bivariate bell over the X/Y
// components of the displacement:
//
//	c + p·exp(−(u² + v² − 2ρuv) / (2(1−ρ²)))
//
// with u = (dx−meanX)/sigmaX, v = (dy−meanY)/sigmaY. Both sigmas must
// be positive and |rho| strictly below 1. The Z component of a 3-D
// displacement is ignored.
func NewGaussian2D(c, p, meanX, meanY, sigmaX, sigmaY, rho float64) (Field, error) {
	switch {
	case !finite(c) || !finite(p) || !finite(meanX) || !finite(meanY):
		return nil, fmt.Errorf("%w: gaussian2D coefficients must be finite", ErrInvalidParameter)
	case !finite(sigmaX) || sigmaX <= 0 || !finite(sigmaY) || sigmaY <= 0:
		return nil, fmt.Errorf("%w: gaussian2D sigmas must be positive (sigmaX=%v, sigmaY=%v)", ErrInvalidParameter, sigmaX, sigmaY)
	case !finite(rho) || rho <= -1 || rho >= 1:
		return nil, fmt.Errorf("%w: gaussian2D correlation must lie in (−1, 1) (rho=%v)", ErrInvalidParameter, rho)
	}

	return gaussian2D{c: c, p: p, meanX: meanX, meanY: meanY, sigmaX: sigmaX, sigmaY: sigmaY, rho: rho}, nil
}

type gaussian2D struct {
	c, p                float64
	meanX, meanY        float64
	sigmaX, sigmaY, rho float64
}

func (g gaussian2D) Value(pr Probe, _ core.Rand) float64 {
	u := (pr.Displacement.X - g.meanX) / g.sigmaX
	v := (pr.Displacement.Y - g.meanY) / g.sigmaY
	expo := (u*u + v*v - 2*g.rho*u*v) / (2 * (1 - g.rho*g.rho))

	return g.c + g.p*math.Exp(-expo)
}

// NewUniform returns a field drawing min + r·(max−min) with one uniform
// r per evaluation. min must not exceed max.
func NewUniform(min, max float64) (Field, error) {
	if !finite(min) || !finite(max) || min > max {
		return nil, fmt.Errorf("%w: uniform needs finite min <= max (min=%v, max=%v)", ErrInvalidParameter, min, max)
	}

	return uniform{min: min, span: max - min}, nil
}

type uniform struct{ min, span float64 }

func (u uniform) Value(_ Probe, rng core.Rand) float64 {
	return u.min + rng.Float64()*u.span
}

// NewDiscrete returns a lookup field over pool ordinals: probes with
// PoolIndex i in range evaluate to values[i], anything outside to 1.0.
// The fallback keeps a pool/table size drift visible as a benign weight
// instead of a panic; size agreement is the caller's contract.
//
// The slice is copied. Every value must be finite.
func NewDiscrete(values []float64) (Field, error) {
	for i, v := range values {
		if !finite(v) {
			return nil, fmt.Errorf("%w: discrete value %d is not finite (%v)", ErrInvalidParameter, i, v)
		}
	}
	own := make([]float64, len(values))
	copy(own, values)

	return discrete{values: own}, nil
}

type discrete struct{ values []float64 }

func (d discrete) Value(p Probe, _ core.Rand) float64 {
	if p.PoolIndex < 0 || p.PoolIndex >= len(d.values) {
		return 1
	}

	return d.values[p.PoolIndex]
}

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }
