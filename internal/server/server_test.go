package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyrilPeng/fiber-fastjson/internal/config"
	"github.com/CyrilPeng/fiber-fastjson/pkg/constants"
	"github.com/CyrilPeng/fiber-fastjson/pkg/json"
)

func testConfig() *config.Config {
	return &config.Config{
		Host:                  "127.0.0.1",
		Port:                  "8090",
		Codec:                 json.BackendGoccy,
		CoerceDecimalToString: true,
		DefaultCharset:        constants.DefaultCharset,
	}
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	app := New(testConfig())

	resp, body := do(t, app, httptest.NewRequest(fiber.MethodGet, constants.EndpointHealth, nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"status":"ok","version":"`+Version+`"}`, body)
}

func TestInfoIndented(t *testing.T) {
	app := New(testConfig())

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAccept, "application/json; indent=2")
	resp, body := do(t, app, req)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, constants.MIMETypeJSON, resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.HasPrefix(body, "{\n  \"config\": {\n    \"codec\": \"goccy\","), body)
}

func TestSample(t *testing.T) {
	app := New(testConfig())

	_, body := do(t, app, httptest.NewRequest(fiber.MethodGet, constants.EndpointSample, nil))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, sampleID.String(), got["id"])
	assert.Equal(t, "19.90", got["price"])
	assert.Equal(t, "2024-01-02T03:04:05.123456789Z", got["created_at"])
	assert.Equal(t, float64(90_000_000_000), got["ttl"])
	assert.Equal(t, "fast goccy", got["label"])
	assert.Equal(t, []any{"json", "fiber"}, got["tags"])
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, got["counts"])
	assert.Equal(t, []any{"This field is required."}, got["errors"])
}

func TestSampleBrowsable(t *testing.T) {
	app := New(testConfig())

	req := httptest.NewRequest(fiber.MethodGet, constants.EndpointSample, nil)
	req.Header.Set(fiber.HeaderAccept, "text/html,application/xhtml+xml;q=0.9")
	_, body := do(t, app, req)

	assert.Contains(t, body, "\n  \"created_at\": \"2024-01-02T03:04:05.123Z\",")
	assert.Contains(t, body, "\n  \"ttl\": \"90.0\"")
	assert.Contains(t, body, "\n  \"price\": \"19.90\",")
}

func TestEcho(t *testing.T) {
	app := New(testConfig())

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantBody    string
	}{
		{"json", "application/json", `{"b":[1,2],"a":"x"}`, fiber.StatusOK, `{"a":"x","b":[1,2]}`},
		{"no content type", "", `[true,null]`, fiber.StatusOK, `[true,null]`},
		{"latin-1", "application/json; charset=iso-8859-1", "{\"name\":\"caf\xe9\"}", fiber.StatusOK, `{"name":"café"}`},
		{"vendor json", "application/vnd.api+json", `{"a":1}`, fiber.StatusOK, `{"a":1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, constants.EndpointEcho, strings.NewReader(tc.body))
			if tc.contentType != "" {
				req.Header.Set(fiber.HeaderContentType, tc.contentType)
			}
			resp, body := do(t, app, req)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, tc.wantBody, body)
		})
	}
}

func TestEchoErrors(t *testing.T) {
	app := New(testConfig())

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantType    string
	}{
		{"nan", "application/json", `{"value": NaN}`, fiber.StatusBadRequest, "parse_error"},
		{"invalid utf-8", "application/json", "\x80\x81\x82", fiber.StatusBadRequest, "parse_error"},
		{"empty", "application/json", "", fiber.StatusBadRequest, "parse_error"},
		{"text", "text/plain", "hello", fiber.StatusUnsupportedMediaType, "unsupported_media_type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, constants.EndpointEcho, strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, tc.contentType)
			resp, body := do(t, app, req)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, constants.MIMETypeJSON, resp.Header.Get(fiber.HeaderContentType))

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(body), &got))
			assert.Equal(t, tc.wantType, got["type"])
			if tc.wantType == "parse_error" {
				assert.True(t, strings.HasPrefix(got["detail"].(string), "JSON parse error - "))
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	app := New(testConfig())

	resp, body := do(t, app, httptest.NewRequest(fiber.MethodGet, "/nope", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, `{"detail":"Cannot GET /nope","type":"error"}`, body)
}

func TestIndentSetting(t *testing.T) {
	cfg := testConfig()
	cfg.Indent = 2
	app := New(cfg)

	_, body := do(t, app, httptest.NewRequest(fiber.MethodGet, constants.EndpointHealth, nil))
	assert.Equal(t, "{\n  \"status\": \"ok\",\n  \"version\": \""+Version+"\"\n}", body)
}
