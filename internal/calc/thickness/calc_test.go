package thickness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laminate(g float64) Input {
	return Input{
		Layers: []Layer{
			{ThicknessMM: 6, Role: RolePly},
			{ThicknessMM: 1.52, Role: RoleInterlayer},
			{ThicknessMM: 6, Role: RolePly},
		},
		SpanMM:          3000,
		ShearModulusMPa: g,
	}
}

func TestMonolithicIdentity(t *testing.T) {
	for _, g := range []float64{0, 0.5, 100, math.Inf(1)} {
		res, err := Calculate(Input{
			Layers:          []Layer{{ThicknessMM: 10, Role: RolePly}},
			ShearModulusMPa: g,
		})
		require.NoError(t, err)
		assert.Equal(t, 10.0, res.BendingMM)
		assert.Equal(t, 10.0, res.DeflectionMM)
	}
}

func TestZeroModulusIsLayeredLimit(t *testing.T) {
	res, err := Calculate(laminate(0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.ShearTransfer)
	assert.InDelta(t, res.LayeredLimitMM, res.DeflectionMM, 1e-12)
	// Two equal independent plies: stress-effective thickness is h*sqrt(2).
	assert.InDelta(t, 6*math.Sqrt(2), res.BendingMM, 1e-9)
}

func TestInfiniteModulusIsMonolithicLimit(t *testing.T) {
	res, err := Calculate(laminate(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.ShearTransfer)
	assert.InDelta(t, res.MonolithicLimitMM, res.DeflectionMM, 1e-12)
}

func TestMonotonicBracketing(t *testing.T) {
	zero, err := Calculate(laminate(0))
	require.NoError(t, err)
	soft, err := Calculate(laminate(0.5))
	require.NoError(t, err)
	stiff, err := Calculate(laminate(50))
	require.NoError(t, err)
	rigid, err := Calculate(laminate(math.Inf(1)))
	require.NoError(t, err)

	assert.Less(t, zero.DeflectionMM, soft.DeflectionMM)
	assert.Less(t, soft.DeflectionMM, stiff.DeflectionMM)
	assert.Less(t, stiff.DeflectionMM, rigid.DeflectionMM)

	assert.Less(t, zero.BendingMM, soft.BendingMM)
	assert.Less(t, soft.BendingMM, stiff.BendingMM)
	assert.Less(t, stiff.BendingMM, rigid.BendingMM)
}

func TestAsymmetricStack(t *testing.T) {
	res, err := Calculate(Input{
		Layers: []Layer{
			{ThicknessMM: 8, Role: RolePly},
			{ThicknessMM: 0.76, Role: RoleInterlayer},
			{ThicknessMM: 4, Role: RolePly},
		},
		SpanMM:          2000,
		ShearModulusMPa: 1.0,
	})
	require.NoError(t, err)
	assert.Greater(t, res.DeflectionMM, res.LayeredLimitMM)
	assert.Less(t, res.DeflectionMM, res.MonolithicLimitMM)
	assert.Greater(t, res.ShearTransfer, 0.0)
	assert.Less(t, res.ShearTransfer, 1.0)
}

func TestThreePlyStack(t *testing.T) {
	res, err := Calculate(Input{
		Layers: []Layer{
			{ThicknessMM: 6, Role: RolePly},
			{ThicknessMM: 1.52, Role: RoleInterlayer},
			{ThicknessMM: 6, Role: RolePly},
			{ThicknessMM: 1.52, Role: RoleInterlayer},
			{ThicknessMM: 6, Role: RolePly},
		},
		SpanMM:          3000,
		ShearModulusMPa: 2.0,
	})
	require.NoError(t, err)
	layered := math.Cbrt(3 * 6 * 6 * 6)
	assert.Greater(t, res.DeflectionMM, layered)
	assert.Less(t, res.DeflectionMM, res.MonolithicLimitMM)
}

func TestInvalidStacks(t *testing.T) {
	cases := []Input{
		{},
		{Layers: []Layer{{ThicknessMM: 1.52, Role: RoleInterlayer}}},
		{Layers: []Layer{
			{ThicknessMM: 1.52, Role: RoleInterlayer},
			{ThicknessMM: 6, Role: RolePly},
		}, SpanMM: 3000},
		{Layers: []Layer{
			{ThicknessMM: 6, Role: RolePly},
			{ThicknessMM: 1.52, Role: RoleInterlayer},
		}, SpanMM: 3000},
		{Layers: []Layer{
			{ThicknessMM: 6, Role: RolePly},
			{ThicknessMM: 6, Role: RolePly},
		}, SpanMM: 3000},
		{Layers: []Layer{
			{ThicknessMM: 6, Role: RolePly},
			{ThicknessMM: -1, Role: RoleInterlayer},
			{ThicknessMM: 6, Role: RolePly},
		}, SpanMM: 3000},
		{Layers: []Layer{
			{ThicknessMM: 6, Role: "spacer"},
		}},
	}
	for _, in := range cases {
		_, err := Calculate(in)
		assert.ErrorIs(t, err, ErrInvalidStack)
	}
}

func TestLaminateNeedsSpan(t *testing.T) {
	in := laminate(1.0)
	in.SpanMM = 0
	_, err := Calculate(in)
	assert.ErrorIs(t, err, ErrInvalidStack)
}
