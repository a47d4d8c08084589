package session

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ines/taskdeck/internal/api"
)

func testToken(t *testing.T, email string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": email})
	signed, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestLoginPersistsToken(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_CONFIG_DIR", dir)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Write([]byte("tok123"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := api.New(srv.URL, "")
	store := NewStore(client)

	if !store.Login("a@x.com", "pw") {
		t.Fatal("Login should succeed")
	}
	if !store.Authenticated() {
		t.Error("store should be authenticated after login")
	}
	if store.Email() != "a@x.com" {
		t.Errorf("email: got %q", store.Email())
	}
	if client.Token != "tok123" {
		t.Errorf("client token: got %q, want tok123", client.Token)
	}
	if _, err := os.Stat(filepath.Join(dir, "auth.json")); err != nil {
		t.Errorf("auth.json not persisted: %v", err)
	}
}

func TestLoginFailureReturnsFalse(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	var logged []string
	store := NewStore(api.New(srv.URL, ""))
	store.Logf = func(format string, args ...any) {
		logged = append(logged, format)
	}

	if store.Login("a@x.com", "wrong") {
		t.Fatal("Login should fail on 401")
	}
	if store.Authenticated() {
		t.Error("failed login must not authenticate")
	}
	if len(logged) == 0 {
		t.Error("failure should be logged")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_CONFIG_DIR", dir)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tok123"))
	}))
	defer srv.Close()

	client := api.New(srv.URL, "")
	store := NewStore(client)
	if !store.Login("a@x.com", "pw") {
		t.Fatal("Login should succeed")
	}

	store.Logout()

	if store.Authenticated() {
		t.Error("store should be unauthenticated after logout")
	}
	if client.Token != "" {
		t.Errorf("client token should be cleared, got %q", client.Token)
	}
	if _, err := os.Stat(filepath.Join(dir, "auth.json")); !os.IsNotExist(err) {
		t.Error("auth.json should be removed on logout")
	}
}

func TestRehydrateRecoversIdentityFromToken(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	// Simulate a pre-existing token with no stored email.
	token := testToken(t, "b@y.com")
	if err := SaveAuth(&Credentials{Token: token}); err != nil {
		t.Fatalf("SaveAuth: %v", err)
	}

	client := api.New("http://unused", "")
	store := NewStore(client)
	if err := store.Rehydrate(); err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}

	if !store.Authenticated() {
		t.Fatal("store should be authenticated after rehydration")
	}
	if store.Email() != "b@y.com" {
		t.Errorf("email from token claims: got %q, want b@y.com", store.Email())
	}
	if client.Token != token {
		t.Error("rehydration should install the token on the client")
	}
}

func TestRehydrateWithoutTokenIsUnauthenticated(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	store := NewStore(api.New("http://unused", ""))
	if err := store.Rehydrate(); err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if store.Authenticated() {
		t.Error("no persisted token must mean unauthenticated")
	}
}

func TestRehydrateOpaqueTokenKeepsEmptyEmail(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	if err := SaveAuth(&Credentials{Token: "not-a-jwt"}); err != nil {
		t.Fatalf("SaveAuth: %v", err)
	}

	store := NewStore(api.New("http://unused", ""))
	if err := store.Rehydrate(); err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if !store.Authenticated() {
		t.Error("opaque token still authenticates")
	}
	if store.Email() != "" {
		t.Errorf("opaque token cannot yield an email, got %q", store.Email())
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":1,"email":"c@z.com"}`))
	}))
	defer srv.Close()

	store := NewStore(api.New(srv.URL, ""))
	if !store.Register("c@z.com", "pw") {
		t.Fatal("Register should succeed")
	}
	if store.Authenticated() {
		t.Error("registration must not authenticate the account")
	}
}
