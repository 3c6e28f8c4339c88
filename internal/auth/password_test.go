package auth

import (
	"strings"
	"testing"
)

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "pw" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash does not look like bcrypt: %q", hash)
	}
	if !CheckPassword("pw", hash) {
		t.Error("correct password should verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}
