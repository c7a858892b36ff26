package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/pkg/logger"
)

func TestNew_ProduccionEscribeJSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	l.Component("ledger").WithKiosco("k-1").Info().Str("sale_id", "s-1").Msg("venta registrada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ledger", line["component"])
	assert.Equal(t, "k-1", line["kiosco_id"])
	assert.Equal(t, "s-1", line["sale_id"])
	assert.Equal(t, "venta registrada", line["message"])
}

func TestNew_NivelFiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("ignorado")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("visible")
	assert.NotZero(t, buf.Len())
}
