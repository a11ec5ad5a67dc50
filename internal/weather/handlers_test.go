package weather

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend-flightdeck/internal/logging"

	"github.com/gofiber/fiber/v2"
)

func TestWeatherRoutes(t *testing.T) {
	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/metar/EDLP"):
			w.Write([]byte(metarBody))
		case strings.HasPrefix(r.URL.Path, "/taf/EDLP"):
			w.Write([]byte(`{"station":"EDLP","raw":"TAF EDLP 281100Z","forecast":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstreamSrv.Close()

	svc := NewService("token", upstreamSrv.URL, logging.NewWithWriter("error", nil))
	app := fiber.New()
	RegisterRoutes(app.Group("/api"), svc, func() string { return "EDLP" })

	for _, path := range []string{"/api/metar", "/api/taf", "/api/notams"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: %v status %d", path, err, resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/test-airport/EDLP", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("test-airport: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"valid":true`) {
		t.Fatalf("expected valid airport, got %s", body)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/test-airport/QQQQ", nil))
	if err != nil {
		t.Fatalf("test-airport invalid: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"valid":false`) {
		t.Fatalf("expected invalid airport, got %s", body)
	}
}
