package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/domain/zona"
	apphttp "github.com/magicstars/ops-api/internal/interfaces/http"
)

func buildZonaApp(t *testing.T) *fiber.App {
	t.Helper()
	r, err := zona.New(zona.Tabla{
		"San José": {"Escazú": {"San Antonio": "MENSAJERIA", "San Rafael": "MENSAJERIA"}},
		"Limón":    {"Pococí": {"Guápiles": "ENCOMIENDA"}},
	})
	require.NoError(t, err)

	h := apphttp.NewZonaHandler(r)
	app := fiber.New()
	app.Get("/api/zonas/tipo-envio", h.TipoEnvio)
	app.Get("/api/zonas/provincias", h.Provincias)
	app.Get("/api/zonas/provincias/:provincia/cantones", h.Cantones)
	app.Get("/api/zonas/provincias/:provincia/cantones/:canton/distritos", h.Distritos)
	return app
}

func getJSON(t *testing.T, app *fiber.App, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestZonaTipoEnvio(t *testing.T) {
	app := buildZonaApp(t)
	q := url.Values{"provincia": {"san jose"}, "canton": {"ESCAZU"}, "distrito": {" San  Antonio "}}

	var out dto.TipoEnvioResponse
	status := getJSON(t, app, "/api/zonas/tipo-envio?"+q.Encode(), &out)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "MENSAJERIA", out.TipoEnvio)
	assert.Equal(t, "san jose", out.Provincia)
}

func TestZonaTipoEnvio_NoEncontrada(t *testing.T) {
	app := buildZonaApp(t)
	q := url.Values{"provincia": {"Limón"}, "canton": {"Pococí"}, "distrito": {"Jiménez"}}

	var out dto.ErrorResponse
	status := getJSON(t, app, "/api/zonas/tipo-envio?"+q.Encode(), &out)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ZONA_NOT_FOUND", out.Code)
}

func TestZonaListados(t *testing.T) {
	app := buildZonaApp(t)

	var provincias dto.ZonaListResponse
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/zonas/provincias", &provincias))
	assert.Equal(t, []string{"LIMON", "SAN JOSE"}, provincias.Items)

	var cantones dto.ZonaListResponse
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/zonas/provincias/"+url.PathEscape("San José")+"/cantones", &cantones))
	assert.Equal(t, []string{"ESCAZU"}, cantones.Items)

	var distritos dto.ZonaListResponse
	assert.Equal(t, http.StatusOK, getJSON(t, app, "/api/zonas/provincias/SAN%20JOSE/cantones/Escaz%C3%BA/distritos", &distritos))
	assert.Equal(t, []string{"SAN ANTONIO", "SAN RAFAEL"}, distritos.Items)

	assert.Equal(t, http.StatusNotFound, getJSON(t, app, "/api/zonas/provincias/Marte/cantones", nil))
}
