// Command seed creates an initial admin account and the default specialist
// roster. Safe to re-run; existing records are left untouched.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"budgetflow/internal/config"
	"budgetflow/internal/domain"
	"budgetflow/internal/repository/postgres"
)

var defaultSpecialists = []string{
	"Баярмаа",
	"Энхжин",
	"Төгөлдөр",
	"Сарнай",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := postgres.NewUserRepo(db)
	specialistRepo := postgres.NewSpecialistRepo(db)

	adminPassword := os.Getenv("BUDGETFLOW_SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin-change-me"
		log.Println("BUDGETFLOW_SEED_ADMIN_PASSWORD not set, using default password")
	}

	if _, err := userRepo.GetByUsername(ctx, "admin"); err == nil {
		log.Println("admin user already exists, skipping")
	} else if errors.Is(err, domain.ErrNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return fmt.Errorf("hashing admin password: %w", hashErr)
		}
		now := time.Now()
		admin := &domain.User{
			ID:           uuid.New(),
			Username:     "admin",
			Email:        os.Getenv("BUDGETFLOW_SEED_ADMIN_EMAIL"),
			PasswordHash: string(hash),
			FullName:     "Administrator",
			Role:         domain.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
		log.Println("created admin user")
	} else {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	existing, err := specialistRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("listing specialists: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[s.Name] = true
	}

	for _, name := range defaultSpecialists {
		if have[name] {
			continue
		}
		s := &domain.Specialist{
			ID:        uuid.New(),
			Name:      name,
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		if err := specialistRepo.Create(ctx, s); err != nil {
			return fmt.Errorf("creating specialist %q: %w", name, err)
		}
		log.Printf("created specialist %q", name)
	}

	log.Println("seed complete")
	return nil
}
