package password

import "testing"

func TestHashAndVerify_OK(t *testing.T) {
	cfg := DefaultConfig()

	cred, err := cfg.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if cred.Salt == "" || cred.Hash == "" {
		t.Fatalf("expected salt and hash, got %+v", cred)
	}
	if cred.Hash == "secret123" {
		t.Fatalf("hash must not equal plaintext")
	}

	ok, err := cfg.Verify("secret123", cred.Hash, cred.Salt)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	cfg := DefaultConfig()

	cred, err := cfg.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := cfg.Verify("not-the-password", cred.Hash, cred.Salt)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHash_SaltRandomized(t *testing.T) {
	cfg := DefaultConfig()

	a, err := cfg.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := cfg.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a.Salt == b.Salt {
		t.Fatalf("expected distinct salts across calls")
	}
	if a.Hash == b.Hash {
		t.Fatalf("expected distinct hashes for distinct salts")
	}
}

func TestHashWithSalt_Deterministic(t *testing.T) {
	cfg := DefaultConfig()

	first, err := cfg.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	again, err := cfg.HashWithSalt("secret123", first.Salt)
	if err != nil {
		t.Fatalf("HashWithSalt error: %v", err)
	}
	if again.Hash != first.Hash {
		t.Fatalf("expected deterministic hash for fixed salt")
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := cfg.Hash(""); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVerify_MissingArguments(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := cfg.Verify("", "hash", "salt"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	if _, err := cfg.Verify("pw", "", "salt"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty hash, got %v", err)
	}
	if _, err := cfg.Verify("pw", "hash", ""); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty salt, got %v", err)
	}
}

func TestVerify_MalformedStoredHash(t *testing.T) {
	cfg := DefaultConfig()

	ok, err := cfg.Verify("pw", "zz-not-hex", "aabbcc")
	if err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
	if ok {
		t.Fatalf("expected false")
	}
}

func TestValidate_MinMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.MinLength = 8
	cfg.Policy.MaxLength = 16

	if err := cfg.Validate("short"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := cfg.Validate("this password is definitely too long"); err != ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if err := cfg.Validate("goodpassw0rd"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}
