package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/pkg/pagination"
)

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseQueryFloat(c fiber.Ctx, key string) *float64 {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseQueryBool(c fiber.Ctx, key string) *bool {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseQueryCSV(c fiber.Ctx, key string) []string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func pageParams(c fiber.Ctx) pagination.Params {
	return pagination.Params{
		Page:  parseQueryInt(c, "page", 1),
		Limit: parseQueryInt(c, "limit", 10),
	}
}
