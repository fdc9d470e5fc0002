package equipment_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory-audit/feature/equipment"
	"inventory-audit/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	svc, _ := setupService(t)
	app := fiber.New()
	equipment.NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandlers(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("POST", "/equipment", strings.NewReader(`{"name":"Dell PC","barcode":"EQ-1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Equipment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "EQ-1", created.Barcode)

	resp, err = app.Test(httptest.NewRequest("GET", "/equipment/barcode/EQ-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/equipment?q=dell", nil))
	require.NoError(t, err)
	var list []models.Equipment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/equipment/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest("PUT", "/equipment/"+created.ID, strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "name is required")

	resp, err = app.Test(httptest.NewRequest("DELETE", "/equipment/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/equipment/types", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
