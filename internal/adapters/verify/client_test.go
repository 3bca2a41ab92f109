package verify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ddfriends/places/internal/adapters/verify"
	"github.com/ddfriends/places/internal/core/domain"
)

func TestVerify_Authorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID     string `json:"user_id"`
			SessionKey string `json:"session_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.UserID != "42" || req.SessionKey != "sekrit" {
			t.Errorf("unexpected credentials forwarded: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	c := verify.New(srv.URL, time.Second)
	if err := c.Verify(context.Background(), "42", "sekrit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerify_Denied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": false})
	}))
	defer srv.Close()

	c := verify.New(srv.URL, time.Second)
	err := c.Verify(context.Background(), "42", "wrong")
	if !errors.Is(err, domain.ErrCredentialsRejected) {
		t.Fatalf("expected ErrCredentialsRejected, got %v", err)
	}
}

func TestVerify_Unreachable(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := verify.New(url, time.Second)
	err := c.Verify(context.Background(), "42", "sekrit")
	if !errors.Is(err, domain.ErrVerifierUnavailable) {
		t.Fatalf("expected ErrVerifierUnavailable, got %v", err)
	}
}

func TestVerify_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := verify.New(srv.URL, time.Second)
	err := c.Verify(context.Background(), "42", "sekrit")
	if !errors.Is(err, domain.ErrVerifierUnavailable) {
		t.Fatalf("expected ErrVerifierUnavailable, got %v", err)
	}
}

func TestVerify_EmptyCredentialsFailFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := verify.New(srv.URL, time.Second)

	if err := c.Verify(context.Background(), "", "sekrit"); !errors.Is(err, domain.ErrMissingUserID) {
		t.Errorf("expected ErrMissingUserID, got %v", err)
	}
	if err := c.Verify(context.Background(), "42", ""); !errors.Is(err, domain.ErrMissingSessionKey) {
		t.Errorf("expected ErrMissingSessionKey, got %v", err)
	}
	if called {
		t.Error("oracle must not be contacted for empty credentials")
	}
}

func TestVerify_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	c := verify.New(srv.URL, 50*time.Millisecond)
	err := c.Verify(context.Background(), "42", "sekrit")
	if !errors.Is(err, domain.ErrVerifierUnavailable) {
		t.Fatalf("expected ErrVerifierUnavailable on timeout, got %v", err)
	}
}
