package gatekeeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchlink/stats-engine/internal/domain/tier"
	"github.com/pitchlink/stats-engine/internal/usecase"
)

func newIntrospectServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.Client(), server.URL, "/v1/introspect", slog.New(slog.DiscardHandler))
	return server, client
}

func TestVerifyAccessTokenSuccess(t *testing.T) {
	_, client := newIntrospectServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/introspect" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := sonic.Unmarshal(body, &req); err != nil || req["token"] != "valid-token" {
			t.Fatalf("unexpected request body: %s", body)
		}
		_, _ = w.Write([]byte(`{"active": true, "entity_id": "ent-leandro", "email": "leandro@pitchlink.io", "tier": "PREMIUM"}`))
	})

	principal, err := client.VerifyAccessToken(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.EntityID != "ent-leandro" || principal.Tier != tier.Premium {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestVerifyAccessTokenNormalizesUnknownTier(t *testing.T) {
	_, client := newIntrospectServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"active": true, "entity_id": "ent-x", "tier": "ENTERPRISE"}`))
	})

	principal, err := client.VerifyAccessToken(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.Tier != tier.Basic {
		t.Fatalf("unknown tier should collapse to basic, got %s", principal.Tier)
	}
}

func TestVerifyAccessTokenRejections(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"denied status", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"inactive token", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"active": false}`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, client := newIntrospectServer(t, tc.handler)

			_, err := client.VerifyAccessToken(context.Background(), "some-token")
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestVerifyAccessTokenEmptyToken(t *testing.T) {
	_, client := newIntrospectServer(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected for empty token")
	})

	_, err := client.VerifyAccessToken(context.Background(), "  ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessTokenMalformedResponses(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"missing entity id", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"active": true, "entity_id": ""}`))
		}},
		{"not json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>gateway timeout</html>"))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, client := newIntrospectServer(t, tc.handler)

			if _, err := client.VerifyAccessToken(context.Background(), "some-token"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	cases := []struct {
		base string
		path string
		want string
	}{
		{"http://gatekeeper:9000", "/v1/introspect", "http://gatekeeper:9000/v1/introspect"},
		{"http://gatekeeper:9000/", "v1/introspect", "http://gatekeeper:9000/v1/introspect"},
		{"http://gatekeeper:9000", "", "http://gatekeeper:9000"},
		{"http://gatekeeper:9000", "https://other.example.com/introspect", "https://other.example.com/introspect"},
	}

	for _, tc := range cases {
		if got := buildURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("buildURL(%q, %q)=%q want=%q", tc.base, tc.path, got, tc.want)
		}
	}
}
