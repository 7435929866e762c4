package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
	pginfra "github.com/oksasatya/go-account-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2, MinConns: 1, MaxConnLife: time.Minute}, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open db")
	}
	defer pool.Close()

	password, generated, err := seedPassword(cfg.AdminSeedPassword)
	if err != nil {
		logger.WithError(err).Fatal("invalid admin password")
	}

	repo := pginfra.NewAccountRepository(pool)
	acc, created, err := seedAdmin(ctx, repo, helpers.NewBcryptEncoder(cfg.BcryptCost), cfg, password)
	if err != nil {
		logger.WithError(err).Fatal("failed to seed admin")
	}
	if created && generated {
		logger.WithField("password", password).Warn("generated admin password, it is not shown again")
	}
	logger.WithFields(logrus.Fields{"id": acc.ID, "login": acc.Login, "roles": acc.Roles}).Info("admin account ready")
}

// seedPassword returns configured, or a generated password when it is blank.
func seedPassword(configured string) (string, bool, error) {
	if strings.TrimSpace(configured) == "" {
		pw, err := helpers.GeneratePassword()
		return pw, true, err
	}
	if !application.PasswordLengthValid(configured) {
		return "", false, fmt.Errorf("admin password must be %d to %d bytes", application.PasswordMinLength, application.PasswordMaxLength)
	}
	return configured, false, nil
}

// seedAdmin creates the activated admin, or grants the admin roles to an existing one.
// created reports whether password was stored; an existing admin keeps its password.
func seedAdmin(ctx context.Context, repo repository.AccountRepository, enc helpers.PasswordEncoder, cfg *config.Config, password string) (acc *entity.Account, created bool, err error) {
	now := time.Now()
	existing, err := repo.FindByLogin(ctx, cfg.AdminSeedLogin)
	if err == nil {
		for _, role := range []string{entity.RoleAdmin, entity.RoleUser} {
			if !existing.HasRole(role) {
				existing.Roles = append(existing.Roles, role)
			}
		}
		if !existing.Activated() {
			existing.Activate(entity.SystemAccount, now)
		}
		return existing, false, repo.Update(ctx, existing)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	hash, err := enc.Hash(password)
	if err != nil {
		return nil, false, err
	}
	acc = &entity.Account{
		Login:          cfg.AdminSeedLogin,
		Email:          cfg.AdminSeedEmail,
		PasswordHash:   hash,
		FirstName:      "Administrator",
		LangKey:        cfg.DefaultLangKey,
		Status:         entity.Activated(),
		Roles:          []string{entity.RoleAdmin, entity.RoleUser},
		CreatedBy:      entity.SystemAccount,
		CreatedAt:      now,
		LastModifiedBy: entity.SystemAccount,
		LastModifiedAt: now,
	}
	if err := repo.Create(ctx, acc); err != nil {
		return nil, false, err
	}
	return acc, true, nil
}
