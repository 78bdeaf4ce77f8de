package services

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/yogabook/internal/common"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

func TestEnsureSelf_OwnAccount(t *testing.T) {
	if err := EnsureSelf(&models.Principal{ID: 1}, 1); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestEnsureSelf_OtherAccount(t *testing.T) {
	err := EnsureSelf(&models.Principal{ID: 1}, 2)
	if !errors.Is(err, common.ErrAuthorizationFailed) {
		t.Fatalf("expected ErrAuthorizationFailed, got %v", err)
	}
}

func TestEnsureSelf_AdminGetsNoOverride(t *testing.T) {
	err := EnsureSelf(&models.Principal{ID: 1, Admin: true}, 2)
	if !errors.Is(err, common.ErrAuthorizationFailed) {
		t.Fatalf("expected ErrAuthorizationFailed for admin too, got %v", err)
	}
}

func TestEnsureSelf_NoPrincipal(t *testing.T) {
	err := EnsureSelf(nil, 1)
	if !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
