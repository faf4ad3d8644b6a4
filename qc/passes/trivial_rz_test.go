package passes

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/gate"
	"github.com/stretchr/testify/require"
)

// TestRemoveTrivialRzPassScenario1 pins rz(pi/4) q[0] -> t q[0].
func TestRemoveTrivialRzPassScenario1(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.RZ("pi/4", 0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := RemoveTrivialRzPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, out.Operations(), 1)
	require.Equal(t, "T", out.Operations()[0].G.Name())
}

func TestRemoveTrivialRzPassBoundaryAngles(t *testing.T) {
	cases := []struct {
		theta string
		want  []string
	}{
		{"0", nil},
		{"2*pi", nil},
		{"pi", []string{"Z"}},
		{"pi/2", []string{"S"}},
		{"7*pi/4", []string{"TDG"}},
		{"pi/4", []string{"T"}},
		{"3*pi/2", []string{"SDG"}},
		{"3*pi/4", []string{"S", "T"}},
		{"5*pi/4", []string{"Z", "T"}},
	}
	for _, tc := range cases {
		b := builder.New(builder.Q(1), builder.C(0))
		b.RZ(tc.theta, 0)
		c, err := b.BuildCircuit()
		require.NoError(t, err, tc.theta)

		p := RemoveTrivialRzPass{}
		out, _, err := p.Run(c)
		require.NoError(t, err, tc.theta)

		var got []string
		for _, op := range out.Operations() {
			got = append(got, op.G.Name())
		}
		require.Equal(t, tc.want, got, "theta=%s", tc.theta)
	}
}

func TestRemoveTrivialRzPassTalliesUnrewrittenAngles(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.RZ("pi/3", 0)
	b.RZ("pi/3", 0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := RemoveTrivialRzPass{DistinctAngles: map[string]int{}}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, out.Operations(), 2)
	for _, op := range out.Operations() {
		_, isRz := op.G.(gate.RZGate)
		require.True(t, isRz)
	}
	require.Len(t, p.DistinctAngles, 1, "both pi/3 RZ ops should round to the same bucket")
	for _, count := range p.DistinctAngles {
		require.Equal(t, 2, count)
	}
}
