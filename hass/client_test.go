package hass

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/states/sensor.system_monitor_memory_usage", func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get("Authorization"); v != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"entity_id": "sensor.system_monitor_memory_usage",
			"state": "42.1",
			"attributes": {
				"unit_of_measurement": "%",
				"friendly_name": "Memory usage",
				"round_digits": 1
			}
		}`))
	})
	return httptest.NewServer(mux)
}

func TestEntityState(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	c := New(srv.URL, "secret")
	v, err := c.Entity("sensor.system_monitor_memory_usage", "state")
	if err != nil {
		t.Fatal(err)
	}
	if v != "42.1" {
		t.Errorf("expected state %q, got %q", "42.1", v)
	}
}

func TestEntityAttributes(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	c := New(srv.URL+"/", "secret") // trailing slash is tolerated

	testCases := []struct {
		field string
		want  string
	}{
		{"unit_of_measurement", "%"},
		{"friendly_name", "Memory usage"},
		{"round_digits", "1"},
	}
	for _, test := range testCases {
		t.Run(test.field, func(it *testing.T) {
			v, err := c.Entity("sensor.system_monitor_memory_usage", test.field)
			if err != nil {
				it.Fatal(err)
			}
			if v != test.want {
				it.Errorf("expected %q, got %q", test.want, v)
			}
		})
	}

	t.Run("missing", func(it *testing.T) {
		if _, err := c.Entity("sensor.system_monitor_memory_usage", "nope"); err == nil {
			it.Error("expected an error for a missing attribute")
		}
	})
}

func TestEntityErrors(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	t.Run("unauthorized", func(it *testing.T) {
		c := New(srv.URL, "wrong")
		if _, err := c.Entity("sensor.system_monitor_memory_usage", "state"); err == nil {
			it.Error("expected an error for a rejected token")
		}
	})

	t.Run("unknown-entity", func(it *testing.T) {
		c := New(srv.URL, "secret")
		if _, err := c.Entity("sensor.bogus", "state"); err == nil {
			it.Error("expected an error for an unknown entity")
		}
	})

	t.Run("empty-base-url", func(it *testing.T) {
		c := New("", "secret")
		if _, err := c.Entity("sensor.system_monitor_memory_usage", "state"); err == nil {
			it.Error("expected an error for an empty base URL")
		}
	})
}
