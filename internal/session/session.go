// Package session owns the client's authentication state: the bearer token
// persisted at ~/.config/taskdeck/auth.json and the identity derived from
// it. Identity presence is the sole authorization signal; the token is only
// proven valid by the first API call that uses it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ines/taskdeck/internal/api"
	"github.com/ines/taskdeck/internal/config"
)

// Credentials is the authentication state persisted at auth.json.
type Credentials struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ServerURL string `json:"server_url"`
}

// Store holds the current session and keeps the API client's bearer token
// in step with it.
type Store struct {
	client *api.Client
	creds  *Credentials

	// Logf receives diagnostic messages for failed logins/registrations.
	// Callers that own the terminal (the TUI) replace it.
	Logf func(format string, args ...any)
}

// NewStore creates a session store bound to the given client.
func NewStore(client *api.Client) *Store {
	return &Store{
		client: client,
		Logf:   func(string, ...any) {},
	}
}

// Rehydrate loads persisted credentials on startup. A missing auth file
// means unauthenticated and is not an error. The identity email is
// recovered from the token's subject claim when the file predates the
// email field.
func (s *Store) Rehydrate() error {
	creds, err := LoadAuth()
	if err != nil {
		return err
	}
	if creds == nil || creds.Token == "" {
		s.creds = nil
		s.client.SetToken("")
		return nil
	}
	if creds.Email == "" {
		creds.Email = emailFromToken(creds.Token)
	}
	s.creds = creds
	s.client.SetToken(creds.Token)
	return nil
}

// Login authenticates against the server. On success the token is
// persisted and the identity set. Failures of any kind are reported as
// false; the classification goes to Logf only.
func (s *Store) Login(email, password string) bool {
	token, err := s.client.Login(email, password)
	if err != nil {
		s.logFailure("login", err)
		return false
	}

	creds := &Credentials{Token: token, Email: email, ServerURL: s.client.BaseURL}
	if err := SaveAuth(creds); err != nil {
		s.Logf("save credentials: %v", err)
		return false
	}
	s.creds = creds
	s.client.SetToken(token)
	return true
}

// Register creates an account. It does not authenticate the new account.
func (s *Store) Register(email, password string) bool {
	if err := s.client.Register(email, password); err != nil {
		s.logFailure("registration", err)
		return false
	}
	return true
}

// Logout clears the persisted token and the in-memory identity. No network
// call is made; the server-side token simply expires.
func (s *Store) Logout() {
	if err := ClearAuth(); err != nil {
		s.Logf("clear credentials: %v", err)
	}
	s.creds = nil
	s.client.SetToken("")
}

// Authenticated reports whether the store holds an identity.
func (s *Store) Authenticated() bool {
	return s.creds != nil && s.creds.Token != ""
}

// Email returns the current identity's email, or "" when unauthenticated.
func (s *Store) Email() string {
	if s.creds == nil {
		return ""
	}
	return s.creds.Email
}

// Token returns the current session token, or "" when unauthenticated.
func (s *Store) Token() string {
	if s.creds == nil {
		return ""
	}
	return s.creds.Token
}

// logFailure writes the three-way error classification to Logf.
func (s *Store) logFailure(op string, err error) {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		s.Logf("%s failed: server responded %d: %s", op, apiErr.StatusCode, apiErr.Body)
	case errors.Is(err, api.ErrNoResponse):
		s.Logf("%s failed: no response: %v", op, err)
	default:
		s.Logf("%s failed: request setup: %v", op, err)
	}
}

// emailFromToken extracts the subject claim from a JWT without verifying
// its signature. The claim is display-only; authorization stays with the
// server.
func emailFromToken(token string) string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// --- auth.json persistence ---

// LoadAuth reads credentials from auth.json, returning nil when absent.
func LoadAuth() (*Credentials, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "auth.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse auth.json: %w", err)
	}
	return &creds, nil
}

// SaveAuth writes credentials to auth.json (0600 perms).
func SaveAuth(creds *Credentials) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "auth.json"), data, 0600)
}

// ClearAuth removes auth.json. A missing file is not an error.
func ClearAuth() error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, "auth.json"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
