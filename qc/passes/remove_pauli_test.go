package passes

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/stretchr/testify/require"
)

func TestRemovePauliPassDropsXYZ(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.X(0)
	b.Y(0)
	b.Z(0)
	b.H(0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := RemovePauliPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, out.Operations(), 1)
	require.Equal(t, "H", out.Operations()[0].G.Name())
}

func TestRemovePauliPassNoOpWithoutPaulis(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.H(0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := RemovePauliPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, out.Operations(), 1)
}
