package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/repo"
)

type AccountService struct {
	Repo repo.Accounts
}

func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// DeleteUser removes the account and, through the store adapter, every order
// the user placed.
func (s *AccountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteUser(ctx, id)
}

func (s *AccountService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	return s.Repo.ListAdmins(ctx)
}

func (s *AccountService) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteAdmin(ctx, id)
}
