package gridsynth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/internal/ring"
)

func TestSolveODGPFindsKnownSolution(t *testing.T) {
	prec := uint(128)
	// beta = 3 + 2*sqrt2 ~= 5.828, conjugate 3 - 2*sqrt2 ~= 0.172.
	sols := SolveODGP(
		numeric.NewFloatPrecFrom(prec, 5.0), numeric.NewFloatPrecFrom(prec, 6.5),
		numeric.NewFloatPrecFrom(prec, -1.0), numeric.NewFloatPrecFrom(prec, 1.0),
		prec,
	)
	found := false
	for _, s := range sols {
		if s.Equal(ring.ZR(3, 2)) {
			found = true
		}
	}
	require.True(t, found, "expected 3+2*sqrt2 among %v", sols)
}

func TestSolveODGPEmptyWhenIntervalsInverted(t *testing.T) {
	prec := uint(64)
	sols := SolveODGP(
		numeric.NewFloatPrecFrom(prec, 2.0), numeric.NewFloatPrecFrom(prec, 1.0),
		numeric.NewFloatPrecFrom(prec, -1.0), numeric.NewFloatPrecFrom(prec, 1.0),
		prec,
	)
	require.Empty(t, sols)
}

func TestSolveDiophantineKnownSquare(t *testing.T) {
	// xi = 4 = 2^2, solvable trivially by w = 2 (a=b=c=0, d=2).
	xi := ring.ZR(4, 0)
	w, found, timedOut := SolveDiophantine(xi, 50*time.Millisecond, 50*time.Millisecond)
	require.False(t, timedOut)
	require.True(t, found)
	require.True(t, w.Norm().Equal(xi))
}

func TestSolveDiophantineNoSolutionFor7Mod8Prime(t *testing.T) {
	// 7 is prime and 7 mod 8 == 7: no w in Z[omega] has norm exactly 7.
	xi := ring.ZR(7, 0)
	_, found, timedOut := SolveDiophantine(xi, 50*time.Millisecond, 50*time.Millisecond)
	require.False(t, timedOut)
	require.False(t, found)
}

func TestSynthesizeAngleZeroIsIdentity(t *testing.T) {
	cfg := DefaultConfig()
	u, err := Synthesize("0", 1e-3, cfg)
	require.NoError(t, err)
	require.Equal(t, 0, u.N)
}

func TestSynthesizeGatesTPiOverFour(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxScale = 6
	words, err := SynthesizeGates("pi/4", 0.25, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, words)
}
