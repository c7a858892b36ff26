package reports_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/internal/application/reports"
	"github.com/jhoicas/kiosco-api/internal/domain"
)

func TestNormalizeRange_MismoDiaCubreElDiaCompleto(t *testing.T) {
	d := time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)
	r, err := reports.NormalizeRange(d, d, 366)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999999999, time.UTC), r.End)
	assert.Equal(t, 1, r.Days())
}

func TestNormalizeRange_ConvierteAUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	// 21:00 en Bogotá ya es el día siguiente en UTC
	d := time.Date(2024, 3, 15, 21, 0, 0, 0, bogota)
	r, err := reports.NormalizeRange(d, d, 0)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-16", r.StartDay())
}

func TestNormalizeRange_InicioPosteriorAlFin(t *testing.T) {
	_, err := reports.NormalizeRange(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 366)
	var re *domain.InvalidRangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.BoundStartAfterEnd, re.Bound)
}

func TestNormalizeRange_AmplitudExcedida(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := reports.NormalizeRange(start, start.AddDate(0, 0, 366), 366)
	var re *domain.InvalidRangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.BoundSpanTooLarge, re.Bound)

	_, err = reports.NormalizeRange(start, start.AddDate(0, 0, 365), 366)
	assert.NoError(t, err)
}

func TestParseRange_PorDefectoMesEnCurso(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	r, err := reports.ParseRange("", "", now, 366)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", r.StartDay())
	assert.Equal(t, "2024-05-20", r.EndDay())
}

func TestParseRange_FechaIlegibleNombraElLimite(t *testing.T) {
	now := time.Now()
	_, err := reports.ParseRange("ayer", "", now, 366)
	var re *domain.InvalidRangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.BoundStart, re.Bound)

	_, err = reports.ParseRange("2024-01-01", "2024-13-01", now, 366)
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.BoundEnd, re.Bound)
}
