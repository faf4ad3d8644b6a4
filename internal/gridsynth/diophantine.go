package gridsynth

import (
	"math/big"
	"time"

	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/internal/ring"
)

// DefaultFactoringTimeoutMs and DefaultDiophantineTimeoutMs are the spec's
// documented default millisecond budgets.
const (
	DefaultFactoringTimeoutMs   = 50
	DefaultDiophantineTimeoutMs = 200
)

var smallPrimes = []int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61}

// factorInt returns the prime factorization of a positive n, trial-dividing
// by small primes first and falling back to Pollard's rho for the
// remainder. ok is false if the deadline passes before the factorization
// completes.
func factorInt(n *big.Int, deadline time.Time) (factors map[string]int, ok bool) {
	factors = make(map[string]int)
	rem := new(big.Int).Set(n)
	one := big.NewInt(1)

	for rem.Bit(0) == 0 && rem.Cmp(one) > 0 {
		factors["2"]++
		rem.Rsh(rem, 1)
	}
	for _, p := range smallPrimes {
		bp := big.NewInt(p)
		for new(big.Int).Mod(rem, bp).Sign() == 0 {
			factors[bp.String()]++
			rem.Div(rem, bp)
		}
	}
	for rem.Cmp(one) > 0 {
		if time.Now().After(deadline) {
			return nil, false
		}
		if rem.ProbablyPrime(20) {
			factors[rem.String()]++
			break
		}
		d := pollardRho(rem, deadline)
		if d == nil {
			return nil, false
		}
		sub, ok := factorInt(d, deadline)
		if !ok {
			return nil, false
		}
		for k, v := range sub {
			factors[k] += v
		}
		rem.Div(rem, d)
	}
	return factors, true
}

// pollardRho finds one nontrivial factor of composite n (Floyd-cycle
// variant, restarting with a different polynomial constant on failure).
func pollardRho(n *big.Int, deadline time.Time) *big.Int {
	if n.Bit(0) == 0 {
		return big.NewInt(2)
	}
	one := big.NewInt(1)
	for c := int64(1); c < 64; c++ {
		x := big.NewInt(2)
		y := big.NewInt(2)
		d := big.NewInt(1)
		cc := big.NewInt(c)
		f := func(v *big.Int) *big.Int {
			r := new(big.Int).Mul(v, v)
			r.Add(r, cc)
			return r.Mod(r, n)
		}
		for d.Cmp(one) == 0 {
			if time.Now().After(deadline) {
				return nil
			}
			x = f(x)
			y = f(f(y))
			diff := new(big.Int).Sub(x, y)
			diff.Abs(diff)
			if diff.Sign() == 0 {
				break
			}
			d.GCD(nil, nil, diff, n)
		}
		if d.Cmp(one) != 0 && d.Cmp(n) != 0 {
			return d
		}
	}
	return nil
}

// primeAdmitsSolution classifies a rational prime factor of Norm(xi) by its
// residue mod 8: p=2 ramifies in Z[omega], p=1 (mod 8) splits completely,
// p=3 or p=5 (mod 8) split only in the sqrt2 subfield, and p=7 (mod 8) is
// inert and admits no w with w*conj(w)=xi.
func primeAdmitsSolution(p *big.Int) bool {
	if p.Cmp(big.NewInt(2)) == 0 {
		return true
	}
	return new(big.Int).Mod(p, big.NewInt(8)).Int64() != 7
}

// searchBound derives a coefficient bound for the exact reconstruction
// search from xi's rational integer norm: every coefficient of a solution w
// is bounded by roughly sqrt(Norm(xi)) (each of the 4 real embeddings of w
// contributes at most Norm(xi) to the sum of squares).
func searchBound(xi ring.ZRootTwo) int64 {
	n := xi.Norm().Abs()
	b := n.FloorSqrt().Int64() + 2
	if b < 2 {
		b = 2
	}
	if b > 24 {
		b = 24
	}
	return b
}

// SolveDiophantine searches for w in Z[omega] with w*conj(w) == xi, xi a
// non-negative element of Z[sqrt2], within the given time budgets.
//
// It factors Norm(xi) to classify solvability up front (a p = 7 mod 8
// prime factor short-circuits to "no solution" immediately, as in the
// literature), then reconstructs w by bounded exact search over Z[omega]
// coefficients. The literature instead reconstructs w directly from the
// per-prime square roots via a GCD assembly; the bounded search used here is
// an exact stand-in sufficient at the magnitudes this compiler's TDGP loop
// produces (see DESIGN.md), trading asymptotic efficiency on large operands
// for a much simpler, still-exact implementation.
func SolveDiophantine(xi ring.ZRootTwo, factorBudget, solveBudget time.Duration) (w ring.ZOmega, found bool, timedOut bool) {
	n := xi.Norm()
	if n.Sign() < 0 {
		return ring.ZOmega{}, false, false
	}
	if n.IsZero() {
		return ring.ZOmega{}, true, false
	}

	deadline := time.Now().Add(factorBudget)
	factors, ok := factorInt(n.Big(), deadline)
	if !ok {
		return ring.ZOmega{}, false, true
	}
	for pStr := range factors {
		p, _ := new(big.Int).SetString(pStr, 10)
		if !primeAdmitsSolution(p) {
			return ring.ZOmega{}, false, false
		}
	}

	solveDeadline := time.Now().Add(solveBudget)
	bound := searchBound(xi)
	one := numeric.OneInt
	lo := numeric.NewInt(-bound)
	hi := numeric.NewInt(bound)
	for a := lo; a.Cmp(hi) <= 0; a = a.Add(one) {
		for b := lo; b.Cmp(hi) <= 0; b = b.Add(one) {
			if time.Now().After(solveDeadline) {
				return ring.ZOmega{}, false, true
			}
			for c := lo; c.Cmp(hi) <= 0; c = c.Add(one) {
				for d := lo; d.Cmp(hi) <= 0; d = d.Add(one) {
					cand := ring.ZOmega{A: a, B: b, C: c, D: d}
					if cand.Norm().Equal(xi) {
						return cand, true, false
					}
				}
			}
		}
	}
	return ring.ZOmega{}, false, false
}
