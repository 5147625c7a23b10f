package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnnaHort/phonebook-auth/config"
	"github.com/AnnaHort/phonebook-auth/internal/api"
	"github.com/AnnaHort/phonebook-auth/internal/helper"
	"github.com/AnnaHort/phonebook-auth/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRoute(t *testing.T) {
	svc := services.NewUserService(nil, nil, helper.SetupAuth("test-secret"))
	app := api.NewApp(config.Config{BaseURL: "http://localhost:3000"}, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "ok", body["status"])
}
