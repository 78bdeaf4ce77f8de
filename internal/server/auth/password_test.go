package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("test!1234")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "test!1234" {
		t.Fatalf("hash must not equal the clear text")
	}

	if !h.Compare(hash, "test!1234") {
		t.Fatalf("expected matching password to compare true")
	}
	if h.Compare(hash, "other") {
		t.Fatalf("expected non-matching password to compare false")
	}
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(1000)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", h.cost)
	}
}

func TestBcryptHasher_CompareGarbageHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	if h.Compare("not-a-bcrypt-hash", "pw") {
		t.Fatalf("expected comparison against garbage hash to be false")
	}
}
