package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type profileRequest struct {
	ProfessionalTitle    *string  `json:"professional_title"`
	Description          *string  `json:"description"`
	Location             *string  `json:"location"`
	BirthDate            *string  `json:"birth_date"`
	ExperienceLevel      string   `json:"experience_level"`
	ExpectedSalary       *float64 `json:"expected_salary"`
	ImmediatelyAvailable bool     `json:"immediately_available"`
	PreferredModality    string   `json:"preferred_modality"`
}

type profileCVRequest struct {
	CVURL string `json:"cv_url"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterApplicantRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.Mine)
	r.Put("/me", h.Upsert)
	r.Put("/me/cv", h.AttachCV)
}

func (h *ProfileHandler) RegisterEmployerRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/search", h.Search)
	r.Get("/:id", h.Get)
}

func (h *ProfileHandler) Mine(c fiber.Ctx) error {
	out, err := h.uc.Mine(c.Context(), middleware.UserIDFromCtx(c))
	if err != nil {
		return mapUsecaseError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.ProfileInput{
		ProfessionalTitle:    req.ProfessionalTitle,
		Description:          req.Description,
		Location:             req.Location,
		ExperienceLevel:      posting.ExperienceLevel(req.ExperienceLevel),
		ExpectedSalary:       req.ExpectedSalary,
		ImmediatelyAvailable: req.ImmediatelyAvailable,
		PreferredModality:    posting.Modality(req.PreferredModality),
	}
	if req.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid birth_date", nil, err)
		}
		in.BirthDate = &t
	}

	out, err := h.uc.Upsert(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), in)
	if err != nil {
		return mapUsecaseError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProfileHandler) AttachCV(c fiber.Ctx) error {
	var req profileCVRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	out, err := h.uc.AttachCV(c.Context(), middleware.UserIDFromCtx(c), req.CVURL)
	if err != nil {
		return mapUsecaseError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), user.Role(middleware.RoleFromCtx(c)), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProfileHandler) Search(c fiber.Ctx) error {
	out, meta, err := h.uc.Search(c.Context(), user.Role(middleware.RoleFromCtx(c)), usecase.ProfileSearchInput{
		ExperienceLevel:      c.Query("experience_level"),
		Location:             c.Query("location"),
		Modality:             c.Query("modality"),
		SalaryMax:            parseQueryFloat(c, "salary_max"),
		ImmediatelyAvailable: parseQueryBool(c, "immediately_available"),
		Page:                 pageParams(c),
	})
	if err != nil {
		return mapUsecaseError(err, "Profile not found")
	}
	data := map[string]any{"profiles": out, "pagination": meta}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
