package gridsynth

import (
	"fmt"
	"time"

	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/internal/ring"
	"github.com/kegliz/ftcompile/internal/unitary"
)

// Config controls the solver's precision and time budgets.
type Config struct {
	Precision            uint
	FactoringTimeoutMs   int
	DiophantineTimeoutMs int
	MaxScale             int
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		Precision:            numeric.DefaultPrec,
		FactoringTimeoutMs:   DefaultFactoringTimeoutMs,
		DiophantineTimeoutMs: DefaultDiophantineTimeoutMs,
		MaxScale:             60,
	}
}

// DefaultEpsilon returns the spec's default epsilon policy, eps = |theta|*1e-2.
func DefaultEpsilon(theta numeric.Float) float64 {
	return theta.Abs().Float64() * 1e-2
}

// Synthesize implements gridsynth(theta, eps) for a pi-expression angle
// string (e.g. "pi/4", "-0.3pi"): it returns a DOmegaUnitary whose
// upper-left entry approximates e^{-i*theta/2} within eps in operator norm.
func Synthesize(thetaExpr string, eps float64, cfg Config) (unitary.DOmegaUnitary, error) {
	prec := cfg.Precision
	if prec == 0 {
		prec = numeric.DefaultPrec
	}
	theta, err := numeric.ParsePiExpr(thetaExpr, prec)
	if err != nil {
		return unitary.DOmegaUnitary{}, err
	}
	return SynthesizeAngle(theta, eps, cfg)
}

// SynthesizeAngle is Synthesize for an already-parsed high-precision angle.
//
// The literature algorithm finds an upright transform for the epsilon
// region via a bounded step-lemma loop over named grid operators
// ({Z,X,S,sigma^n,R,K,K',A_n,B_n}) before enumerating TDGP candidates in the
// transformed frame. This implementation skips the upright transform and
// enumerates directly against an axis-aligned approximation of the region
// at each denominator scale, decomposing each 2-D candidate z = p + q*omega
// into two independent ODGP solves over Z[sqrt2] (see tdgpCandidates).
// Every candidate is still checked exactly against the true target point
// before acceptance, so correctness does not depend on the transform;
// omitting it only means more scales/candidates may be tried before a
// solution is found (documented in DESIGN.md as a scope simplification).
func SynthesizeAngle(theta numeric.Float, eps float64, cfg Config) (unitary.DOmegaUnitary, error) {
	prec := cfg.Precision
	if prec == 0 {
		prec = numeric.DefaultPrec
	}
	if theta.Sign() == 0 {
		return unitary.Identity, nil
	}

	half := theta.Quo(numeric.NewFloatPrecFrom(prec, 2)).Neg()
	targetRe := half.Cos()
	targetIm := half.Sin()
	epsF := numeric.NewFloatPrecFrom(prec, eps)

	factorBudget := time.Duration(cfg.FactoringTimeoutMs) * time.Millisecond
	diophBudget := time.Duration(cfg.DiophantineTimeoutMs) * time.Millisecond
	maxScale := cfg.MaxScale
	if maxScale <= 0 {
		maxScale = 60
	}
	overallDeadline := time.Now().Add(diophBudget * time.Duration(maxScale+1))

	sqrt2 := numeric.Sqrt2(prec)
	scale := numeric.NewFloatPrecFrom(prec, 1)
	for n := 0; n <= maxScale; n++ {
		candidates := tdgpCandidates(targetRe, targetIm, scale, epsF, prec)
		twoN := ring.ZRootTwo{A: twoPow(n), B: numeric.ZeroInt}
		for _, z := range candidates {
			if time.Now().After(overallDeadline) {
				return unitary.DOmegaUnitary{}, fmt.Errorf("gridsynth: diophantine budget exceeded at scale %d", n)
			}
			xi := twoN.Sub(z.Norm())
			w, found, timedOut := SolveDiophantine(xi, factorBudget, diophBudget)
			if timedOut || !found {
				continue
			}
			cand := unitary.DOmegaUnitary{Z: z, W: w, N: n}.Reduced()
			if approxMatches(cand, targetRe, targetIm, epsF, prec) {
				return cand, nil
			}
		}
		scale = scale.Mul(sqrt2)
	}
	return unitary.DOmegaUnitary{}, fmt.Errorf("gridsynth: no solution found within scale %d", maxScale)
}

// SynthesizeGates implements gridsynth_gates(theta, eps): it runs
// SynthesizeAngle then decomposes the resulting exact unitary into a
// Clifford+T gate word via internal/unitary's normal-form decomposition.
func SynthesizeGates(thetaExpr string, eps float64, cfg Config) ([]string, error) {
	u, err := Synthesize(thetaExpr, eps, cfg)
	if err != nil {
		return nil, err
	}
	return unitary.Decompose(u)
}

// tdgpCandidates enumerates candidate z = p + q*omega (p, q in Z[sqrt2])
// near target*scale by solving two independent one-dimensional grid
// problems for p and q, then taking the cross product. This decouples the
// joint 2-D constraint the literature solves directly against the upright
// ellipse into two 1-D ODGP solves: a superset of the true candidate set
// (every real candidate is included, some spurious ones may also appear)
// which is checked exactly by the caller before acceptance.
func tdgpCandidates(targetRe, targetIm, scale, eps numeric.Float, prec uint) []ring.ZOmega {
	sqrt2 := numeric.Sqrt2(prec)
	two := numeric.NewFloatPrecFrom(prec, 2)

	// z = p + q*omega, and as a complex number omega = (1+i)/sqrt2, so
	// Re(z) = p + q/sqrt2, Im(z) = q/sqrt2.
	qApprox := targetIm.Mul(scale).Mul(sqrt2)
	pApprox := targetRe.Mul(scale).Sub(targetIm.Mul(scale))

	halfWidth := eps.Mul(scale).Mul(two).Add(two)
	shadowBound := scale.Mul(two).Add(two)

	ps := SolveODGP(pApprox.Sub(halfWidth), pApprox.Add(halfWidth), shadowBound.Neg(), shadowBound, prec)
	qs := SolveODGP(qApprox.Sub(halfWidth), qApprox.Add(halfWidth), shadowBound.Neg(), shadowBound, prec)

	out := make([]ring.ZOmega, 0, len(ps)*len(qs))
	for _, p := range ps {
		for _, q := range qs {
			out = append(out, zomegaFromPQ(p, q))
		}
	}
	return out
}

// zomegaFromPQ reconstructs z = p + q*omega (p, q in Z[sqrt2], written
// x0+x1*sqrt2 and y0+y1*sqrt2) in the (omega^3, omega^2, omega, 1) basis:
// since sqrt2 = omega - omega^3 and sqrt2*omega = 1 + omega^2,
//
//	p + q*omega = (x0+y1) + y1*omega^2 + (x1+y0)*omega - x1*omega^3.
func zomegaFromPQ(p, q ring.ZRootTwo) ring.ZOmega {
	x0, x1 := p.A, p.B
	y0, y1 := q.A, q.B
	a := x1.Neg()
	b := y1
	c := x1.Add(y0)
	d := x0.Add(y1)
	return ring.ZOmega{A: a, B: b, C: c, D: d}
}

func twoPow(n int) numeric.Int { return numeric.OneInt.Lsh(uint(n)) }

func powFloat(x numeric.Float, n int) numeric.Float {
	result := numeric.NewFloatPrecFrom(x.Prec(), 1)
	for i := 0; i < n; i++ {
		result = result.Mul(x)
	}
	return result
}

// approxMatches checks a candidate's upper-left entry against the true
// target point (not just the axis-aligned approximation used to generate
// it), which is what makes skipping the upright transform safe for
// correctness.
func approxMatches(cand unitary.DOmegaUnitary, targetRe, targetIm, eps numeric.Float, prec uint) bool {
	scaleInv := numeric.NewFloatPrecFrom(prec, 1).Quo(powFloat(numeric.Sqrt2(prec), cand.N))
	c := cand.Z.Complex128()
	re := numeric.NewFloatPrecFrom(prec, real(c)).Mul(scaleInv)
	im := numeric.NewFloatPrecFrom(prec, imag(c)).Mul(scaleInv)
	dre := re.Sub(targetRe)
	dim := im.Sub(targetIm)
	distSq := dre.Mul(dre).Add(dim.Mul(dim))
	return distSq.Cmp(eps.Mul(eps)) <= 0
}
