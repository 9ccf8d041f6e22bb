package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

type companyRequest struct {
	Name        string  `json:"name"`
	TaxID       *string `json:"tax_id"`
	Description *string `json:"description"`
	Sector      *string `json:"sector"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	LogoURL     *string `json:"logo_url"`
	CompanySize string  `json:"company_size"`
	Phone       *string `json:"phone"`
}

type companyVerifyRequest struct {
	Verified bool `json:"verified"`
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *CompanyHandler) RegisterEmployerRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/me", h.Mine)
	r.Put("/:id", h.Update)
}

func (h *CompanyHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Patch("/:id/verify", h.SetVerified)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	out, meta, err := h.uc.List(c.Context(), usecase.CompanyListInput{
		Sector:   c.Query("sector"),
		Location: c.Query("location"),
		Verified: parseQueryBool(c, "verified"),
		Page:     pageParams(c),
	})
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	data := map[string]any{"companies": out, "pagination": meta}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req companyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	out, err := h.uc.Create(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), companyInputFromRequest(req))
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, out)
}

func (h *CompanyHandler) Mine(c fiber.Ctx) error {
	out, err := h.uc.Mine(c.Context(), middleware.UserIDFromCtx(c))
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	var req companyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	out, err := h.uc.Update(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"), companyInputFromRequest(req))
	if err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CompanyHandler) SetVerified(c fiber.Ctx) error {
	var req companyVerifyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.SetVerified(c.Context(), c.Params("id"), req.Verified); err != nil {
		return mapUsecaseError(err, "Company not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func companyInputFromRequest(req companyRequest) usecase.CompanyInput {
	return usecase.CompanyInput{
		Name:        req.Name,
		TaxID:       req.TaxID,
		Description: req.Description,
		Sector:      req.Sector,
		Location:    req.Location,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
		CompanySize: req.CompanySize,
		Phone:       req.Phone,
	}
}
