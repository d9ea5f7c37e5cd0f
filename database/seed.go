package database

import (
	"cinema_scheduler/constants"
	"cinema_scheduler/helper"
	"cinema_scheduler/model"
	"cinema_scheduler/store"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SeedAdmin creates the administrator account when it does not exist yet.
func SeedAdmin(ctx context.Context, accounts store.AccountStore, username, password string, log *zap.Logger) error {
	existing, err := accounts.AccountByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := helper.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.Account{Username: username, Password: hash, Role: constants.ROLE_ADMIN}
	if err := accounts.CreateAccount(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info("admin account created", zap.String("username", username))
	return nil
}
