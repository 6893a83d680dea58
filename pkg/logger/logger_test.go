package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	return m
}

func TestNew_EstampaServicioEnCadaLinea(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Service: "almacen-api", Env: "production", Level: "info", Out: &buf})

	log.Info().Str("ruta", "/api/items").Msg("petición atendida")

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	assert.Equal(t, "almacen-api", entry["service"])
	assert.Equal(t, "petición atendida", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestComponent_DerivaSubloggerConCampoFijo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Service: "almacen-api", Env: "production", Level: "info", Out: &buf})

	log.Component("notificaciones").Warn().Msg("destinatarios no resueltos")

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	assert.Equal(t, "almacen-api", entry["service"])
	assert.Equal(t, "notificaciones", entry["component"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNew_NivelFiltraYElIlegibleCaeEnInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("no debería salir")
	log.Warn().Msg("sí sale")
	require.Equal(t, 1, strings.Count(buf.String(), "\n"))

	buf.Reset()
	log = logger.New(logger.Config{Env: "production", Level: "cualquiera", Out: &buf})
	log.Debug().Msg("debug filtrado por el default info")
	log.Info().Msg("info pasa")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
