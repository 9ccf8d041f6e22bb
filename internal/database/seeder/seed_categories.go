package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

type CategoriesSeeder struct{}

func (CategoriesSeeder) Name() string { return "categories" }

func (CategoriesSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name string
		Icon string
	}{
		{Name: "Software Development", Icon: "code"},
		{Name: "Design", Icon: "palette"},
		{Name: "Marketing", Icon: "megaphone"},
		{Name: "Sales", Icon: "chart"},
		{Name: "Human Resources", Icon: "people"},
		{Name: "Finance", Icon: "bank"},
		{Name: "Operations", Icon: "gears"},
		{Name: "Customer Support", Icon: "headset"},
		{Name: "Data & Analytics", Icon: "graph"},
		{Name: "Administration", Icon: "clipboard"},
	}

	for i, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO categories (id, name, icon, display_order)
			 VALUES (gen_random_uuid(), $1, $2, $3)
			 ON CONFLICT (name) DO NOTHING`,
			it.Name, it.Icon, i+1,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
