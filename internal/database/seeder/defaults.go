package seeder

import "jobboard/internal/config"

func Defaults(cfg config.SeedConfig) []Seeder {
	return []Seeder{
		CategoriesSeeder{},
		AdminSeeder{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
	}
}
