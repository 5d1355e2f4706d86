package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"simple-notes-server/internal/domain"
)

func TestClientGetUser(t *testing.T) {
	t.Run("verified session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/v1/user" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("apikey") != "anon-key" {
				t.Errorf("missing apikey header")
			}
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"user-1","email":"me@example.com"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "anon-key", time.Second)

		userID, err := client.GetUser(context.Background(), "tok")
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if userID != "user-1" {
			t.Errorf("GetUser() = %q, want user-1", userID)
		}
	})

	t.Run("rejected session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "anon-key", time.Second)

		if _, err := client.GetUser(context.Background(), "stale"); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("GetUser() error = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("empty identity in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "anon-key", time.Second)

		if _, err := client.GetUser(context.Background(), "tok"); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("GetUser() error = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "anon-key", 50*time.Millisecond)

		if _, err := client.GetUser(context.Background(), "tok"); err == nil {
			t.Fatal("GetUser() expected timeout error")
		}
	})
}

func TestClientSendMagicLink(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/v1/otp" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("redirect_to"); got != "https://app.example.com/auth/callback" {
				t.Errorf("redirect_to = %q", got)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "anon-key", time.Second)

		if err := client.SendMagicLink(context.Background(), "me@example.com", "https://app.example.com/auth/callback"); err != nil {
			t.Fatalf("SendMagicLink() error = %v", err)
		}
	})

	t.Run("provider rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "anon-key", time.Second)

		if err := client.SendMagicLink(context.Background(), "me@example.com", ""); err == nil {
			t.Fatal("SendMagicLink() expected error")
		}
	})
}
