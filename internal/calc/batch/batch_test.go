package batch

import (
	"testing"

	"Glasschek/internal/calc/design"
	"Glasschek/internal/calc/factors"
	"Glasschek/internal/calc/thickness"
	"Glasschek/internal/interlayer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *interlayer.Table {
	t.Helper()
	table, err := interlayer.NewTable([]interlayer.Sample{
		{Product: "PVB-A", TemperatureC: 20, Duration: interlayer.Duration3Sec, ModulusMPa: 4.0},
	})
	require.NoError(t, err)
	return table
}

func monolithicRequest(stress float64) design.Request {
	return design.Request{
		Standard: factors.StandardIStructE,
		Glass:    factors.GlassAnnealed,
		Profile:  factors.ProfileFloat,
		Finish:   factors.FinishNone,
		Edge:     factors.EdgePolished,
		Layers:   []thickness.Layer{{ThicknessMM: 10, Role: thickness.RolePly}},
		Cases: []design.LoadCase{{
			Name:             "wind",
			Duration:         interlayer.Duration3Sec,
			TemperatureC:     20,
			AppliedStressMPa: stress,
		}},
	}
}

func TestCalculateBatch(t *testing.T) {
	res, err := Calculate(testTable(t), Input{
		Items: []design.Request{monolithicRequest(10), monolithicRequest(20)},
	})
	require.NoError(t, err)
	require.Len(t, res.Reports, 2)
	assert.Greater(t, res.Reports[1].Results[0].Utilization, res.Reports[0].Results[0].Utilization)
}

func TestCalculateBatchEmpty(t *testing.T) {
	_, err := Calculate(testTable(t), Input{})
	assert.Error(t, err)
}

func TestCalculateBatchAbortsOnFailure(t *testing.T) {
	bad := monolithicRequest(10)
	bad.Glass = "wired"
	res, err := Calculate(testTable(t), Input{
		Items: []design.Request{monolithicRequest(10), bad},
	})
	require.Error(t, err)
	assert.Empty(t, res.Reports)
}
