package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apidoc "bikerental/api"
	api "bikerental/internal/adapters/in/http"
	"bikerental/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestLoadOpenAPI_RejectsBrokenDocument(t *testing.T) {
	_, err := api.LoadOpenAPI(t.Context(), []byte("openapi: 3.0.3\ninfo: {}\npaths: {}\n"))

	require.Error(t, err)
}

func TestServer_RequestValidation(t *testing.T) {
	id := kernel.NewUUID().String()
	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		message string
	}{
		{"missing bike id", http.MethodPut, "/api/v1/wizards/" + id + "/bike", `{}`, "bikeId"},
		{"missing partner id", http.MethodPut, "/api/v1/wizards/" + id + "/partner", `{"partner":"p-1"}`, "partnerId"},
		{"price is not a number", http.MethodPut, "/api/v1/wizards/" + id + "/filter", `{"minPrice":"cheap"}`, "minPrice"},
		{"negative price", http.MethodPut, "/api/v1/wizards/" + id + "/filter", `{"maxPrice":-1}`, "maxPrice"},
		{"unknown sort", http.MethodPut, "/api/v1/wizards/" + id + "/filter", `{"sort":"newest"}`, "sort"},
		{"missing end date", http.MethodPut, "/api/v1/wizards/" + id + "/period", `{"startDate":"2024-01-01"}`, "endDate"},
		{"location without id", http.MethodPut, "/api/v1/wizards/" + id + "/locations", `{"pickup":{"name":"Central"},"dropoff":{"id":"loc-2"}}`, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			rec := f.do(tt.method, tt.path, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeError(t, rec).Message, tt.message)
			assert.Empty(t, f.bike.calls)
			assert.Empty(t, f.partner.calls)
			assert.Empty(t, f.refresh.calls)
			assert.Empty(t, f.period.calls)
			assert.Empty(t, f.locations.calls)
		})
	}
}

func TestServer_RequestValidation_RequiresBody(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPut, "/api/v1/wizards/"+kernel.NewUUID().String()+"/bike", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.bike.calls)
}

func TestServer_RequestValidation_SkipsUndocumentedRoutes(t *testing.T) {
	f := newFixture()
	f.e.GET("/internal/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	rec := f.do(http.MethodGet, "/internal/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestOpenAPI_RegisterDocs(t *testing.T) {
	doc, err := api.LoadOpenAPI(context.Background(), apidoc.OpenAPI)
	require.NoError(t, err)
	e := echo.New()
	require.NoError(t, doc.RegisterDocs(e))

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	t.Run("should serve the document", func(t *testing.T) {
		rec := get("/swagger/doc.json")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, "3.0.3", gjson.Get(body, "openapi").String())
		assert.Equal(t, "Bike rental booking wizard", gjson.Get(body, "info.title").String())
		assert.True(t, gjson.Get(body, "components.schemas.Wizard").Exists())
	})

	t.Run("should serve the UI", func(t *testing.T) {
		rec := get("/swagger/index.html")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "swagger-ui")
	})

	t.Run("should describe every API route", func(t *testing.T) {
		var served struct {
			Paths map[string]map[string]json.RawMessage `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(get("/swagger/doc.json").Body.Bytes(), &served))

		f := newFixture()
		for _, route := range f.e.Routes() {
			if !strings.HasPrefix(route.Path, "/api/v1") {
				continue
			}
			path := strings.ReplaceAll(route.Path, ":id", "{id}")
			operations, ok := served.Paths[path]
			require.True(t, ok, "%s is not documented", path)
			assert.Contains(t, operations, strings.ToLower(route.Method), "%s %s is not documented", route.Method, path)
		}
	})
}
