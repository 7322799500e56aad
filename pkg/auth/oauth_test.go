package auth

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"
)

func TestLoopbackRedirect(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"urn:ietf:wg:oauth:2.0:oob", "http://localhost:6789/oauth2callback"},
		{"http://localhost", "http://localhost:6789"},
		{"http://127.0.0.1:8080/cb", "http://127.0.0.1:6789/cb"},
		{"https://example.com/cb", "https://example.com/cb"},
	}
	for _, tt := range tests {
		if got := loopbackRedirect(tt.in); got != tt.want {
			t.Errorf("loopbackRedirect(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestGetConfig(t *testing.T) {
	dir := t.TempDir()
	secrets := `{"installed":{"client_id":"id","client_secret":"secret",` +
		`"auth_uri":"https://accounts.google.com/o/oauth2/auth",` +
		`"token_uri":"https://oauth2.googleapis.com/token",` +
		`"redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(filepath.Join(dir, ClientSecretsFile), []byte(secrets), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := GetConfig(dir, Scopes)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg.ClientID != "id" {
		t.Errorf("Expected client id 'id', got '%s'", cfg.ClientID)
	}
	if cfg.RedirectURL != "http://localhost:6789" {
		t.Errorf("Expected loopback redirect, got '%s'", cfg.RedirectURL)
	}
}

func TestTokenFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", TokenFile)
	if err := saveToken(path, &oauth2.Token{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("saveToken failed: %v", err)
	}
	tok, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("tokenFromFile failed: %v", err)
	}
	if tok.AccessToken != "a" || tok.RefreshToken != "r" {
		t.Errorf("Unexpected token: %+v", tok)
	}

	if err := RemoveToken(filepath.Dir(path)); err != nil {
		t.Fatalf("RemoveToken failed: %v", err)
	}
	if err := RemoveToken(filepath.Dir(path)); err != nil {
		t.Errorf("RemoveToken on missing file should not fail: %v", err)
	}
}
