package token

import (
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AccessSecret = []byte("test-access-secret-0123456789abcdef")
	cfg.RefreshSecret = []byte("test-refresh-secret-0123456789abcdef")
	return cfg
}

func TestIssueAndVerifyAccess_RoundTrip(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	now := time.Now().UTC()
	sub := Subject{ID: "01JACCT000000000000000000", Name: "Alice", Email: "alice@example.com"}

	tok, exp, err := mgr.IssueAccess(sub, now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if !exp.After(now) {
		t.Fatalf("expected exp after now")
	}

	claims, err := mgr.VerifyAccess(tok)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.ID != sub.ID || claims.Email != sub.Email || claims.Name != sub.Name {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestVerify_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = time.Second
	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	// Issue in the past so the token is already expired.
	issuedAt := time.Now().UTC().Add(-time.Hour)
	tok, _, err := mgr.IssueAccess(Subject{ID: "acct-1"}, issuedAt)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, err := mgr.VerifyAccess(tok); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecretIsInvalidNotExpired(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	tok, _, err := mgr.IssueAccess(Subject{ID: "acct-1"}, time.Now().UTC())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	// A refresh-secret verification of an access token must fail as invalid.
	if _, err := mgr.VerifyRefresh(tok); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := mgr.VerifyAccess("not.a.jwt"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAccessAndRefreshSecretsAreIndependent(t *testing.T) {
	mgr, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	now := time.Now().UTC()
	sub := Subject{ID: "acct-1", Email: "a@example.com"}

	refresh, _, err := mgr.IssueRefresh(sub, now)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	if _, err := mgr.VerifyRefresh(refresh); err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if _, err := mgr.VerifyAccess(refresh); err != ErrTokenInvalid {
		t.Fatalf("refresh token must not verify as access token, got %v", err)
	}
}

func TestNewManager_MissingSecret(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewManager(cfg); err == nil {
		t.Fatalf("expected config error for missing secrets")
	}
}

func TestHashSHA256Hex_Stable(t *testing.T) {
	a := HashSHA256Hex("some-token")
	b := HashSHA256Hex("some-token")
	if a != b {
		t.Fatalf("digest must be deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if HashSHA256Hex("other-token") == a {
		t.Fatalf("distinct inputs must not collide")
	}
}
