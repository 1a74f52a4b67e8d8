package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharaka19/CCIMS-sub000/pkg/logger"
)

func TestNew_JSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "equipment", Output: &buf})

	l.Info().Str("stock_id", "42").Msg("movimiento registrado")

	var evt map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &evt))
	assert.Equal(t, "equipment", evt["service"])
	assert.Equal(t, "info", evt["level"])
	assert.Equal(t, "42", evt["stock_id"])
	assert.Equal(t, "movimiento registrado", evt["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "WARN", Output: &buf})

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí debe salir")
	assert.Contains(t, buf.String(), "sí debe salir")
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "verbose", Output: &buf})

	l.Debug().Msg("oculto")
	l.Info().Msg("visible")
	assert.NotContains(t, buf.String(), "oculto")
	assert.Contains(t, buf.String(), "visible")
}
