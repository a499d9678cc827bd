package mediaserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAuthFlowVerifiesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	flow := NewAuthFlow(server.URL, "es-ES", nil).WithIO(&out, func() (string, error) {
		return " good \n", nil
	})

	res, err := flow.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.APIKey != "good" {
		t.Fatalf("api key = %q", res.APIKey)
	}
	if !strings.Contains(out.String(), "Authentication successful!") {
		t.Fatalf("output = %q", out.String())
	}

	bad := NewAuthFlow(server.URL, "es-ES", nil).WithIO(&out, func() (string, error) {
		return "bad", nil
	})
	if _, err := bad.Run(context.Background()); err == nil {
		t.Fatal("expected rejected key to fail")
	}
}

func TestAuthFlowEmptyKey(t *testing.T) {
	var out bytes.Buffer
	flow := NewAuthFlow("http://unused", "es-ES", nil).WithIO(&out, func() (string, error) {
		return "   ", nil
	})
	if _, err := flow.Run(context.Background()); !errors.Is(err, ErrEmptyAPIKey) {
		t.Fatalf("err = %v", err)
	}
}
