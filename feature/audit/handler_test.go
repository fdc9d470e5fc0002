package audit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory-audit/core/reconcile"
	"inventory-audit/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, *fixture) {
	t.Helper()
	f := newFixture(t, defaultCatalog())
	app := fiber.New()
	NewHandler(f.svc).RegisterRoutes(app)
	return app, f
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	out := map[string]any{}
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &out)
	return resp, out
}

func TestHandleScanFlow(t *testing.T) {
	app, f := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/audits", `{"auditor":"Ivanov"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	auditID := body["id"].(string)

	resp, body = doJSON(t, app, "POST", "/audits/"+auditID+"/scan", `{"barcode":"PC-001"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "Dell PC")

	resp, body = doJSON(t, app, "POST", "/audits/"+auditID+"/scan", `{"barcode":"PC-001"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = doJSON(t, app, "POST", "/audits/"+auditID+"/scan", `{"barcode":"ZZZ-999"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["message"], "ZZZ-999")

	resp, err := app.Test(httptest.NewRequest("GET", "/audits/"+auditID+"/stats", nil))
	require.NoError(t, err)
	var stats reconcile.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, reconcile.Summary{Total: 2, Found: 1, NotFound: 1}, stats)

	resp, err = app.Test(httptest.NewRequest("GET", "/audits/"+auditID+"/not-found", nil))
	require.NoError(t, err)
	var missing []models.Equipment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&missing))
	require.Len(t, missing, 1)
	assert.Equal(t, "HP Printer", missing[0].Name)

	resp, _ = doJSON(t, app, "DELETE", "/audits/"+auditID+"/items/"+f.eq["PC-001"].ID, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, "DELETE", "/audits/"+auditID+"/items/"+f.eq["PC-001"].ID, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", "/audits/"+auditID+"/complete", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.AuditCompleted, body["status"])

	resp, body = doJSON(t, app, "GET", "/audits/"+auditID, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "items")
}

func TestHandleCreate_Validation(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/audits", `{"auditor":""}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "auditor is required", body["message"])
}

func TestHandleNotFoundAudit(t *testing.T) {
	app, _ := setupApp(t)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/audits/missing"},
		{"POST", "/audits/missing/complete"},
		{"DELETE", "/audits/missing"},
		{"GET", "/audits/missing/report"},
		{"GET", "/audits/missing/report?format=csv"},
	} {
		resp, _ := doJSON(t, app, tc.method, tc.path, "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, tc.path)
	}
}

func TestHandleReport(t *testing.T) {
	app, f := setupApp(t)
	audit, err := f.svc.CreateAudit(context.Background(), "Ivanov")
	require.NoError(t, err)
	_, err = f.svc.ScanBarcode(context.Background(), audit.ID, "PC-002")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/audits/"+audit.ID+"/report?format=csv", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, ContentType(FormatCSV), resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "audit-"+audit.ID+".csv")
	data, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Found,HP Printer"))
	assert.True(t, strings.HasPrefix(lines[2], "Not Found,Dell PC"))

	resp, err = app.Test(httptest.NewRequest("GET", "/audits/"+audit.ID+"/report", nil))
	require.NoError(t, err)
	var rows []ReportRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	assert.Len(t, rows, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/audits/"+audit.ID+"/report?format=pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/audits/"+audit.ID+"/report/export", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
