package cryptox

import (
	"strings"
	"testing"
)

func TestHashSecret_NeverPlaintext(t *testing.T) {
	t.Parallel()

	secret := "correct horse battery staple"
	encoded, err := HashSecret(secret)
	if err != nil {
		t.Fatalf("HashSecret error: %v", err)
	}
	if encoded == secret {
		t.Fatalf("hash equals plaintext")
	}
	if strings.Contains(encoded, secret) {
		t.Fatalf("hash contains plaintext: %q", encoded)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", encoded)
	}
}

func TestVerifySecret_Match(t *testing.T) {
	t.Parallel()

	encoded, err := HashSecret("somepass")
	if err != nil {
		t.Fatalf("HashSecret error: %v", err)
	}
	if !VerifySecret("somepass", encoded) {
		t.Fatalf("expected match for correct secret")
	}
	if VerifySecret("NotAPassword", encoded) {
		t.Fatalf("expected mismatch for wrong secret")
	}
}

func TestHashSecret_SaltedDistinct(t *testing.T) {
	t.Parallel()

	a, err := HashSecret("somepass")
	if err != nil {
		t.Fatalf("HashSecret error: %v", err)
	}
	b, err := HashSecret("somepass")
	if err != nil {
		t.Fatalf("HashSecret error: %v", err)
	}
	if a == b {
		t.Fatalf("identical hashes for same secret: salt not applied")
	}
}

func TestVerifySecret_MalformedEncoding(t *testing.T) {
	t.Parallel()

	for _, encoded := range []string{"", "plain", "$argon2id$v=19$bad", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb"} {
		if VerifySecret("x", encoded) {
			t.Fatalf("expected mismatch for malformed hash %q", encoded)
		}
	}
}
