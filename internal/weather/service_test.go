package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-flightdeck/internal/logging"
)

const metarBody = `{
	"station": "EDLP",
	"raw": "EDLP 281020Z 24012KT 9999 FEW035 18/09 Q1021",
	"flight_rules": "VFR",
	"wind_direction": {"value": 240},
	"wind_speed": {"value": 12},
	"temperature": {"value": 18},
	"dewpoint": {"value": 9},
	"visibility": {"value": 9999},
	"altimeter": {"value": 1021}
}`

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService("test-token", srv.URL, logging.NewWithWriter("error", nil)), srv
}

func TestMetarSuccess(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/metar/EDLP" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "BEARER test-token" {
			t.Errorf("missing bearer header")
		}
		w.Write([]byte(metarBody))
	})

	m := svc.Metar(context.Background(), "EDLP")
	if m.Station != "EDLP" || m.FlightRules != "VFR" {
		t.Fatalf("unexpected metar: %+v", m)
	}
	if m.WindDirection != "240" || m.Temperature != "18" || m.Altimeter != "1021" {
		t.Fatalf("expected unwrapped values: %+v", m)
	}

	// Second call inside the TTL is a cache hit.
	svc.Metar(context.Background(), "EDLP")
	if calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
}

func TestMetarMissingFieldsAreSentinels(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"station": "EDLP", "raw": "EDLP 281020Z", "wind_direction": {"value": null}}`))
	})

	m := svc.Metar(context.Background(), "EDLP")
	if m.FlightRules != "N/A" || m.WindDirection != "N/A" || m.WindSpeed != "N/A" {
		t.Fatalf("expected N/A sentinels: %+v", m)
	}
	if m.Raw != "EDLP 281020Z" {
		t.Fatalf("raw should survive: %+v", m)
	}
}

func TestMetarNon200ReturnsFallback(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	m := svc.Metar(context.Background(), "XXXX")
	if m.Station != "XXXX" || m.Raw != "METAR nicht verfügbar" {
		t.Fatalf("unexpected fallback: %+v", m)
	}
	if m.WindSpeed != "N/A" || m.Altimeter != "N/A" {
		t.Fatalf("fallback must be fully populated: %+v", m)
	}
}

func TestTafSuccessAndFallback(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/taf/EDLP" {
			w.Write([]byte(`{"station":"EDLP","raw":"TAF EDLP 281100Z","forecast":[{"raw":"BECMG 2812/2814 25015KT"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	taf := svc.Taf(context.Background(), "EDLP")
	if taf.Raw != "TAF EDLP 281100Z" || len(taf.Forecast) != 1 {
		t.Fatalf("unexpected taf: %+v", taf)
	}

	missing := svc.Taf(context.Background(), "ZZZZ")
	if missing.Station != "ZZZZ" || missing.Raw != "TAF nicht verfügbar" || missing.Forecast == nil || len(missing.Forecast) != 0 {
		t.Fatalf("unexpected taf fallback: %+v", missing)
	}
}

func TestInvalidateCachesForcesRefetch(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(metarBody))
	})

	svc.Metar(context.Background(), "EDLP")
	svc.InvalidateCaches()
	svc.Metar(context.Background(), "EDLP")
	if calls != 2 {
		t.Fatalf("expected refetch after invalidation, got %d calls", calls)
	}
}

func TestValidStation(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metar/EDLP" {
			w.Write([]byte(metarBody))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	if ok, _ := svc.ValidStation(context.Background(), "EDLP"); !ok {
		t.Fatalf("expected EDLP valid")
	}
	if ok, _ := svc.ValidStation(context.Background(), "QQQQ"); ok {
		t.Fatalf("expected QQQQ invalid")
	}
}

func TestPing(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(metarBody))
	})
	if !svc.Ping(context.Background()) {
		t.Fatalf("expected ping success")
	}

	down, _ := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	if down.Ping(context.Background()) {
		t.Fatalf("expected ping failure")
	}
}

func TestNotamsFixture(t *testing.T) {
	svc := NewService("", "", logging.NewWithWriter("error", nil))
	list := svc.Notams("EDLP")
	if len(list.Notams) != 2 || list.Notams[0].ID == "" {
		t.Fatalf("unexpected notams: %+v", list)
	}
}
