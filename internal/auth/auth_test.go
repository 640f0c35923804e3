package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/indiverse/heritagebot/internal/domain"
)

const secret = "test-secret"

func mustSign(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := Sign(secret, claims)
	if err != nil {
		t.Fatalf("Sign error = %v", err)
	}
	return token
}

func TestVerify(t *testing.T) {
	v := NewVerifier(secret)

	good := mustSign(t, Claims{UserID: "u1", Username: "asha", ExpiresAt: time.Now().Add(time.Hour)})
	claims, err := v.Verify(good)
	if err != nil {
		t.Fatalf("Verify error = %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "asha" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	expired := mustSign(t, Claims{UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour)})
	if _, err := v.Verify(expired); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expired token err = %v", err)
	}

	forged, _ := Sign("other-secret", Claims{UserID: "u1"})
	if _, err := v.Verify(forged); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("forged token err = %v", err)
	}

	anonymous := mustSign(t, Claims{Username: "nobody"})
	if _, err := v.Verify(anonymous); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("token without user err = %v", err)
	}
}

func TestInspectReadsExpiry(t *testing.T) {
	exp := time.Now().Add(-time.Minute).Truncate(time.Second)
	claims, err := Inspect(mustSign(t, Claims{UserID: "u1", ExpiresAt: exp}))
	if err != nil {
		t.Fatal(err)
	}
	if !claims.ExpiresAt.Equal(exp) || !claims.Expired(time.Now()) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := Inspect("not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

type fakeUsers struct {
	user  *User
	err   error
	calls int
}

func (f *fakeUsers) Me(context.Context, string) (*User, error) {
	f.calls++
	return f.user, f.err
}

func TestSessionTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("no token", func(t *testing.T) {
		users := &fakeUsers{}
		s := NewSession(NewMemoryTokenStore(""), users)
		if s.State().Status != StatusUnauthenticated {
			t.Fatalf("initial status = %v", s.State().Status)
		}
		if st := s.Load(ctx); st.Status != StatusUnauthenticated || users.calls != 0 {
			t.Fatalf("Load = %+v, calls = %d", st, users.calls)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token := mustSign(t, Claims{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)})
		users := &fakeUsers{user: &User{ID: "u1", Username: "asha"}}
		s := NewSession(NewMemoryTokenStore(token), users)
		if s.State().Status != StatusLoading {
			t.Fatalf("initial status = %v, want loading", s.State().Status)
		}
		st := s.Load(ctx)
		if st.Status != StatusAuthenticated || st.User.Username != "asha" || st.Token != token {
			t.Fatalf("Load = %+v", st)
		}

		st = s.Logout()
		if st.Status != StatusUnauthenticated || st.User != nil || st.Token != "" {
			t.Fatalf("Logout = %+v", st)
		}
	})

	t.Run("expired token skips the API", func(t *testing.T) {
		token := mustSign(t, Claims{UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour)})
		users := &fakeUsers{user: &User{ID: "u1"}}
		store := NewMemoryTokenStore(token)
		st := NewSession(store, users).Load(ctx)
		if st.Status != StatusUnauthenticated || users.calls != 0 || store.Token() != "" {
			t.Fatalf("Load = %+v, calls = %d", st, users.calls)
		}
	})

	t.Run("rejected token logs out", func(t *testing.T) {
		users := &fakeUsers{err: &APIError{Status: http.StatusUnauthorized, Message: "Token is invalid or expired!"}}
		s := NewSession(NewMemoryTokenStore(""), users)
		st := s.Login(ctx, mustSign(t, Claims{UserID: "u1"}))
		if st.Status != StatusUnauthenticated || st.Token != "" {
			t.Fatalf("Login = %+v", st)
		}
	})
}

func TestClient(t *testing.T) {
	token := "tok"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/register":
			var reg Registration
			json.NewDecoder(r.Body).Decode(&reg)
			if reg.Email == "taken@example.com" {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"error":"Email already exists"}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"User registered successfully!"}`))
		case "/api/auth/login":
			w.Write([]byte(`{"token":"` + token + `"}`))
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer "+token {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Token is missing or invalid!"}`))
				return
			}
			w.Write([]byte(`{"_id":"u1","username":"asha","email":"asha@example.com"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`<html>oops</html>`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(srv.URL + "/api/auth")

	if err := c.Register(ctx, Registration{Username: "asha", Email: "asha@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	err := c.Register(ctx, Registration{Email: "taken@example.com"})
	if err == nil || err.Error() != "Email already exists" {
		t.Fatalf("Register conflict err = %v", err)
	}

	got, err := c.Login(ctx, Credentials{Email: "asha@example.com", Password: "pw"})
	if err != nil || got != token {
		t.Fatalf("Login = %q, %v", got, err)
	}

	user, err := c.Me(ctx, token)
	if err != nil || user.Username != "asha" {
		t.Fatalf("Me = %+v, %v", user, err)
	}
	if _, err := c.Me(ctx, "bad"); !IsUnauthorized(err) {
		t.Fatalf("Me with bad token err = %v", err)
	}

	broken := NewClient(srv.URL + "/elsewhere")
	if err := broken.Register(ctx, Registration{}); err == nil || err.Error() != unexpectedError {
		t.Fatalf("non-JSON error body err = %v", err)
	}
}
