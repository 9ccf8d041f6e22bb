package seeder

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/database"
)

// AdminSeeder provisions the bootstrap admin account. It is a no-op unless
// both email and password are configured, and never touches an existing row.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || strings.TrimSpace(s.Password) == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, role, verified)
		 VALUES (gen_random_uuid(), $1, $2, 'System', 'Administrator', 'admin', true)
		 ON CONFLICT (email) DO NOTHING`,
		email, string(hash),
	)
	return err
}
