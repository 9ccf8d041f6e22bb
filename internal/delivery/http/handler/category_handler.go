package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
)

type CategoryHandler struct {
	uc usecase.CategoryUsecase
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type categoryActiveRequest struct {
	Active bool `json:"active"`
}

type categoryReorderRequest struct {
	IDs []string `json:"ids"`
}

func NewCategoryHandler(uc usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// RegisterPublicRoutes exposes the read endpoints.
func (h *CategoryHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

// RegisterAdminRoutes exposes management; the caller mounts these behind
// auth plus the admin role gate.
func (h *CategoryHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Put("/reorder", h.Reorder)
	r.Put("/:id", h.Update)
	r.Patch("/:id/active", h.SetActive)
	r.Delete("/:id", h.Delete)
	r.Get("/:id/stats", h.Stats)
}

func (h *CategoryHandler) List(c fiber.Ctx) error {
	if v := parseQueryBool(c, "with_counts"); v != nil && *v {
		out, err := h.uc.ListWithCounts(c.Context())
		if err != nil {
			return mapUsecaseError(err, "Category not found")
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, out)
	}

	includeInactive := false
	if v := parseQueryBool(c, "include_inactive"); v != nil && *v {
		// Inactive categories are only shown to admins.
		includeInactive = middleware.RoleFromCtx(c) == string(user.RoleAdmin)
	}
	out, err := h.uc.List(c.Context(), includeInactive)
	if err != nil {
		return mapUsecaseError(err, "Category not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CategoryHandler) Get(c fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, "Category not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CategoryHandler) Create(c fiber.Ctx) error {
	var req categoryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	out, err := h.uc.Create(c.Context(), usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return mapCategoryError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, out)
}

func (h *CategoryHandler) Update(c fiber.Ctx) error {
	var req categoryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return mapCategoryError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CategoryHandler) SetActive(c fiber.Ctx) error {
	var req categoryActiveRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.SetActive(c.Context(), c.Params("id"), req.Active); err != nil {
		return mapCategoryError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CategoryHandler) Delete(c fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapCategoryError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CategoryHandler) Reorder(c fiber.Ctx) error {
	var req categoryReorderRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.Reorder(c.Context(), req.IDs); err != nil {
		return mapCategoryError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CategoryHandler) Stats(c fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), c.Params("id"))
	if err != nil {
		return mapCategoryError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapCategoryError(err error) error {
	// Conflict covers both duplicate names and deleting a category in use.
	return mapUsecaseError(err, "Category not found")
}
