package passes

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/gate"
	"github.com/stretchr/testify/require"
)

func TestGateFusionPassCancelsSelfInverse(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.H(0).H(0).X(0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := GateFusionPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, out.Operations(), 1)
	require.Equal(t, "X", out.Operations()[0].G.Name())
}

func TestGateFusionPassMergesConsecutiveRz(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.RZ("pi/4", 0)
	b.RZ("pi/4", 0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := GateFusionPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, out.Operations(), 1)
	rz, isRZ := out.Operations()[0].G.(gate.RZGate)
	require.True(t, isRZ)

	p2 := RemoveTrivialRzPass{}
	c2, err := builder.New(builder.Q(1), builder.C(0)).RZ(rz.Theta, 0).BuildCircuit()
	require.NoError(t, err)
	reduced, _, err := p2.Run(c2)
	require.NoError(t, err)
	require.Len(t, reduced.Operations(), 1)
	require.Equal(t, "S", reduced.Operations()[0].G.Name(), "pi/4+pi/4 should merge to pi/2")
}

func TestGateFusionPassMergedRzDropsAtIdentity(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.RZ("pi", 0)
	b.RZ("pi", 0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := GateFusionPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, out.Operations(), 0, "pi+pi is a multiple of 2*pi and should cancel")
}
