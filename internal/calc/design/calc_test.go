package design

import (
	"testing"

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
		{Product: "PVB-A", TemperatureC: 40, Duration: interlayer.Duration3Sec, ModulusMPa: 1.0},
		{Product: "PVB-A", TemperatureC: 20, Duration: interlayer.Duration1Day, ModulusMPa: 0.5},
		{Product: "PVB-A", TemperatureC: 40, Duration: interlayer.Duration1Day, ModulusMPa: 0.1},
	})
	require.NoError(t, err)
	return table
}

func annealedMonolithic() Request {
	return Request{
		Standard: factors.StandardIStructE,
		Glass:    factors.GlassAnnealed,
		Profile:  factors.ProfileFloat,
		Finish:   factors.FinishNone,
		Edge:     factors.EdgePolished,
		Layers:   []thickness.Layer{{ThicknessMM: 10, Role: thickness.RolePly}},
		SpanMM:   2000,
	}
}

func laminatedRequest() Request {
	req := annealedMonolithic()
	req.Interlayer = "PVB-A"
	req.Layers = []thickness.Layer{
		{ThicknessMM: 6, Role: thickness.RolePly},
		{ThicknessMM: 1.52, Role: thickness.RoleInterlayer},
		{ThicknessMM: 6, Role: thickness.RolePly},
	}
	return req
}

func TestEvaluateAnnealedMonolithic(t *testing.T) {
	req := annealedMonolithic()
	req.Cases = []LoadCase{{
		Name:             "wind gust",
		Duration:         interlayer.Duration3Sec,
		TemperatureC:     20,
		AppliedStressMPa: 10,
	}}

	report, err := Evaluate(testTable(t), req)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, 10.0, res.EffectiveThicknessMM)
	// f_g;d = ke*kmod*ksp*k'sp*f_g;k/gammaM = 45/1.6
	assert.InDelta(t, 28.125, res.DesignMPa, 1e-9)
	assert.InDelta(t, 10.0/28.125, res.Utilization, 1e-9)
	assert.Equal(t, 45.0, res.CharacteristicMPa)
	assert.False(t, res.Extrapolated)
}

func TestEvaluateToughenedEN16612(t *testing.T) {
	req := annealedMonolithic()
	req.Standard = factors.StandardEN16612
	req.Glass = factors.GlassToughened
	req.Strengthening = factors.StrengtheningHorizontal
	req.Cases = []LoadCase{{
		Name:             "wind gust",
		Duration:         interlayer.Duration3Sec,
		TemperatureC:     20,
		AppliedStressMPa: 35,
	}}

	report, err := Evaluate(testTable(t), req)
	require.NoError(t, err)

	// 45/1.8 + 1.0*(120-45)/1.2 = 25 + 62.5
	assert.InDelta(t, 87.5, report.Results[0].DesignMPa, 1e-9)
	assert.Equal(t, 120.0, report.Results[0].CharacteristicMPa)
}

func TestEvaluateIStructEEdgeFactorPlacement(t *testing.T) {
	base := annealedMonolithic()
	base.Glass = factors.GlassToughened
	base.Strengthening = factors.StrengtheningHorizontal
	base.Edge = factors.EdgeAsCut
	base.Cases = []LoadCase{{
		Name:             "wind gust",
		Duration:         interlayer.Duration3Sec,
		TemperatureC:     20,
		AppliedStressMPa: 35,
	}}

	istructe, err := Evaluate(testTable(t), base)
	require.NoError(t, err)
	// IStructE applies k_e outside the sum: 0.8*(45/1.6 + 62.5)
	assert.InDelta(t, 0.8*(28.125+62.5), istructe.Results[0].DesignMPa, 1e-9)

	base.Standard = factors.StandardEN16612
	en, err := Evaluate(testTable(t), base)
	require.NoError(t, err)
	// EN 16612 applies k_e to the basic term only: 0.8*25 + 62.5
	assert.InDelta(t, 0.8*25+62.5, en.Results[0].DesignMPa, 1e-9)
}

func TestEvaluateLaminatedUsesInterpolatedModulus(t *testing.T) {
	req := laminatedRequest()
	req.Cases = []LoadCase{{
		Name:             "wind",
		Duration:         interlayer.Duration3Sec,
		TemperatureC:     30,
		AppliedStressMPa: 10,
	}}

	report, err := Evaluate(testTable(t), req)
	require.NoError(t, err)

	res := report.Results[0]
	assert.Greater(t, res.ShearModulusMPa, 1.0)
	assert.Less(t, res.ShearModulusMPa, 4.0)
	assert.Greater(t, res.EffectiveThicknessMM, 6.0)
	assert.False(t, res.Extrapolated)

	again, err := Evaluate(testTable(t), req)
	require.NoError(t, err)
	assert.Equal(t, report, again)
}

func TestEvaluateGoverningTieBreak(t *testing.T) {
	req := annealedMonolithic()
	critical := LoadCase{
		Name:             "A",
		Duration:         interlayer.Duration3Sec,
		TemperatureC:     20,
		AppliedStressMPa: 20,
	}
	lower := critical
	lower.Name = "B"
	lower.AppliedStressMPa = 5
	duplicate := critical
	duplicate.Name = "C"
	req.Cases = []LoadCase{critical, lower, duplicate}

	report, err := Evaluate(testTable(t), req)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Governing)
	assert.Equal(t, "A", report.Results[report.Governing].Name)
	assert.Equal(t, report.Results[0].Utilization, report.Results[2].Utilization)
}

func TestEvaluateGoverningPicksMaxUtilization(t *testing.T) {
	req := laminatedRequest()
	req.Cases = []LoadCase{
		{Name: "wind", Duration: interlayer.Duration3Sec, TemperatureC: 20, AppliedStressMPa: 8},
		{Name: "snow", Duration: interlayer.Duration1Day, TemperatureC: 20, AppliedStressMPa: 8},
	}

	report, err := Evaluate(testTable(t), req)
	require.NoError(t, err)
	// Same stress but the lower kmod makes the snow case critical.
	assert.Equal(t, 1, report.Governing)
	assert.Equal(t, report.Factors.KMod, report.Results[1].KMod)
}

func TestEvaluateExtrapolationFlagged(t *testing.T) {
	req := laminatedRequest()
	req.Cases = []LoadCase{{
		Name:             "hot summer",
		Duration:         interlayer.Duration3Sec,
		TemperatureC:     90,
		AppliedStressMPa: 10,
	}}

	report, err := Evaluate(testTable(t), req)
	require.NoError(t, err)
	assert.True(t, report.Results[0].Extrapolated)
	assert.Equal(t, 1.0, report.Results[0].ShearModulusMPa)
}

func TestEvaluateUnknownProductAborts(t *testing.T) {
	req := laminatedRequest()
	req.Interlayer = "EVA-X"
	req.Cases = []LoadCase{
		{Name: "ok", Duration: interlayer.Duration3Sec, TemperatureC: 20, AppliedStressMPa: 10},
	}

	report, err := Evaluate(testTable(t), req)
	assert.ErrorIs(t, err, interlayer.ErrUnknownProduct)
	assert.Empty(t, report.Results)
}

func TestEvaluateFatalCaseAbortsWholeReport(t *testing.T) {
	req := laminatedRequest()
	req.Cases = []LoadCase{
		{Name: "valid", Duration: interlayer.Duration3Sec, TemperatureC: 20, AppliedStressMPa: 10},
		{Name: "broken", Duration: "2 fortnights", TemperatureC: 20, AppliedStressMPa: 10},
	}

	report, err := Evaluate(testTable(t), req)
	require.Error(t, err)
	assert.Empty(t, report.Results)
}

func TestEvaluateLoadToStressConversion(t *testing.T) {
	req := annealedMonolithic()
	req.Layers = []thickness.Layer{{ThicknessMM: 12, Role: thickness.RolePly}}
	req.SpanMM = 3000
	req.Cases = []LoadCase{{
		Name:           "wind pressure",
		Duration:       interlayer.Duration3Sec,
		TemperatureC:   20,
		AppliedLoadKPa: 1,
	}}

	report, err := Evaluate(testTable(t), req)
	require.NoError(t, err)
	// M = qL^2/8 = 1125 Nmm/mm, W = 24 mm^3/mm.
	assert.InDelta(t, 46.875, report.Results[0].AppliedStressMPa, 1e-9)
}

func TestEvaluateInvalidRequests(t *testing.T) {
	table := testTable(t)

	req := annealedMonolithic()
	_, err := Evaluate(table, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req = annealedMonolithic()
	req.Layers = nil
	req.Cases = []LoadCase{{Name: "x", Duration: interlayer.Duration3Sec, AppliedStressMPa: 1}}
	_, err = Evaluate(table, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req = laminatedRequest()
	req.Interlayer = ""
	req.Cases = []LoadCase{{Name: "x", Duration: interlayer.Duration3Sec, AppliedStressMPa: 1}}
	_, err = Evaluate(table, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req = annealedMonolithic()
	req.Cases = []LoadCase{{Name: "x", Duration: interlayer.Duration3Sec, TemperatureC: 20}}
	_, err = Evaluate(table, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req = annealedMonolithic()
	req.Cases = []LoadCase{{
		Name: "x", Duration: interlayer.Duration3Sec, TemperatureC: 20,
		AppliedStressMPa: 1, AppliedLoadKPa: 1,
	}}
	_, err = Evaluate(table, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req = annealedMonolithic()
	req.SpanMM = 0
	req.Cases = []LoadCase{{
		Name: "x", Duration: interlayer.Duration3Sec, TemperatureC: 20, AppliedLoadKPa: 1,
	}}
	_, err = Evaluate(table, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
