package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthri/basket-api/internal/handler"
)

func TestHealth(t *testing.T) {
	r := chi.NewRouter()
	handler.NewServer(&mockBasketServicer{}).HealthRoutes(r)

	rec := doRequest(t, r, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
