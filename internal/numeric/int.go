// Package numeric provides the arbitrary-precision integer and
// configurable-precision binary float primitives the rest of the compiler
// is built on: exact rings (internal/ring), the grid solver
// (internal/gridsynth) and the unitary normaliser (internal/unitary) never
// touch machine-width int/float64 for anything that must stay exact.
package numeric

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Int is an arbitrary-precision signed integer.
type Int struct {
	v *big.Int
}

// ZeroInt is the additive identity.
var ZeroInt = NewInt(0)

// OneInt is the multiplicative identity.
var OneInt = NewInt(1)

// NewInt builds an Int from a machine int64.
func NewInt(x int64) Int { return Int{big.NewInt(x)} }

// NewIntFromBig returns an Int holding a copy of x.
func NewIntFromBig(x *big.Int) Int { return Int{new(big.Int).Set(x)} }

// ParseInt parses a base-10 decimal string.
func ParseInt(s string) (Int, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Int{}, false
	}
	return Int{v}, true
}

func (a Int) big() *big.Int {
	if a.v == nil {
		return big.NewInt(0)
	}
	return a.v
}

// Big exposes the underlying *big.Int for callers that need to interop
// with math/big directly (e.g. factoring).
func (a Int) Big() *big.Int { return new(big.Int).Set(a.big()) }

func (a Int) String() string { return a.big().String() }

// Sign returns -1, 0 or 1.
func (a Int) Sign() int { return a.big().Sign() }

// IsZero reports whether a == 0.
func (a Int) IsZero() bool { return a.big().Sign() == 0 }

// Cmp compares a and b.
func (a Int) Cmp(b Int) int { return a.big().Cmp(b.big()) }

// Equal reports a == b.
func (a Int) Equal(b Int) bool { return a.Cmp(b) == 0 }

// Add returns a+b.
func (a Int) Add(b Int) Int { return Int{new(big.Int).Add(a.big(), b.big())} }

// Sub returns a-b.
func (a Int) Sub(b Int) Int { return Int{new(big.Int).Sub(a.big(), b.big())} }

// Mul returns a*b.
func (a Int) Mul(b Int) Int { return Int{new(big.Int).Mul(a.big(), b.big())} }

// Neg returns -a.
func (a Int) Neg() Int { return Int{new(big.Int).Neg(a.big())} }

// Abs returns |a|.
func (a Int) Abs() Int { return Int{new(big.Int).Abs(a.big())} }

// QuoRem returns truncated quotient and remainder (a = q*b + r, sign of r
// matches a), matching math/big.Int.QuoRem semantics.
func (a Int) QuoRem(b Int) (q, r Int) {
	qq, rr := new(big.Int), new(big.Int)
	qq.QuoRem(a.big(), b.big(), rr)
	return Int{qq}, Int{rr}
}

// DivMod returns Euclidean quotient/remainder (0 <= r < |b|), matching
// math/big.Int.DivMod semantics.
func (a Int) DivMod(b Int) (q, r Int) {
	qq, rr := new(big.Int), new(big.Int)
	qq.DivMod(a.big(), b.big(), rr)
	return Int{qq}, Int{rr}
}

// Gcd returns the non-negative greatest common divisor of a and b.
func (a Int) Gcd(b Int) Int {
	return Int{new(big.Int).GCD(nil, nil, new(big.Int).Abs(a.big()), new(big.Int).Abs(b.big()))}
}

// Lsh returns a << n.
func (a Int) Lsh(n uint) Int { return Int{new(big.Int).Lsh(a.big(), n)} }

// Rsh returns a >> n (arithmetic shift).
func (a Int) Rsh(n uint) Int { return Int{new(big.Int).Rsh(a.big(), n)} }

// PopCount returns the number of set bits in the two's-complement-free
// magnitude of a (a must be >= 0 for a meaningful Pauli-mask use).
func (a Int) PopCount() int {
	b := a.big()
	n := 0
	for _, w := range b.Bits() {
		for w != 0 {
			n += int(w & 1)
			w >>= 1
		}
	}
	return n
}

// TrailingZeros returns the number of trailing zero bits, or -1 if a == 0.
func (a Int) TrailingZeros() int {
	b := a.big()
	if b.Sign() == 0 {
		return -1
	}
	n := 0
	for i := 0; ; i++ {
		if b.Bit(i) != 0 {
			return n
		}
		n++
	}
}

// ModPow computes a^e mod m (m > 0).
func (a Int) ModPow(e, m Int) Int {
	return Int{new(big.Int).Exp(a.big(), e.big(), m.big())}
}

// Mod returns the Euclidean remainder of a mod m (always in [0, m)).
func (a Int) Mod(m Int) Int { return Int{new(big.Int).Mod(a.big(), m.big())} }

// Int64 returns a as an int64, truncating if it does not fit.
func (a Int) Int64() int64 { return a.big().Int64() }

// IsInt64 reports whether a fits in an int64.
func (a Int) IsInt64() bool { return a.big().IsInt64() }

// FloorSqrt returns the integer square root of a non-negative Int.
func (a Int) FloorSqrt() Int {
	if a.Sign() < 0 {
		panic("numeric: FloorSqrt of negative Int")
	}
	return Int{new(big.Int).Sqrt(a.big())}
}

// IsProbablyPrime runs a single Miller-Rabin-style witness round.
//
// This deliberately mirrors the literature source's weaker-than-usual
// single-round test (see the spec's preserved Open Question): it calls
// math/big's ProbablyPrime(1), one Miller-Rabin round plus the Baillie-PSW
// test that math/big always adds. The Diophantine step does not use it; it
// calls ProbablyPrime(20) on the underlying big.Int directly.
func (a Int) IsProbablyPrime() bool {
	return a.big().ProbablyPrime(1)
}

// RandomOdd returns a cryptographically-seeded random odd integer strictly
// less than bound.
func RandomOdd(bound Int) Int {
	n, err := rand.Int(rand.Reader, bound.big())
	if err != nil {
		panic(fmt.Sprintf("numeric: RandomOdd: %v", err))
	}
	n.SetBit(n, 0, 1)
	return Int{n}
}
