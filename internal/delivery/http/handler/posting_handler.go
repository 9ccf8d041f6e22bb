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

type PostingHandler struct {
	uc usecase.PostingUsecase
}

type postingRequest struct {
	CategoryID       string   `json:"category_id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Requirements     *string  `json:"requirements"`
	Responsibilities *string  `json:"responsibilities"`
	Benefits         *string  `json:"benefits"`
	SalaryMin        *float64 `json:"salary_min"`
	SalaryMax        *float64 `json:"salary_max"`
	Currency         string   `json:"currency"`
	Location         *string  `json:"location"`
	Modality         string   `json:"modality"`
	ContractType     string   `json:"contract_type"`
	ExperienceLevel  string   `json:"experience_level"`
	Vacancies        int      `json:"vacancies"`
	ExpiresAt        *string  `json:"expires_at"`
	DesiredStartDate *string  `json:"desired_start_date"`
	Draft            bool     `json:"draft"`
}

type postingStatusRequest struct {
	Status string `json:"status"`
}

type postingApprovalRequest struct {
	Approved bool `json:"approved"`
}

func NewPostingHandler(uc usecase.PostingUsecase) *PostingHandler {
	return &PostingHandler{uc: uc}
}

func (h *PostingHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Search)
	r.Get("/:id", h.Get)
}

func (h *PostingHandler) RegisterEmployerRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/mine", h.Mine)
	r.Put("/:id", h.Update)
	r.Patch("/:id/status", h.ChangeStatus)
}

func (h *PostingHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/pending", h.PendingApproval)
	r.Patch("/:id/approval", h.Approve)
	r.Get("/stats", h.GeneralStats)
}

func (h *PostingHandler) Search(c fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), usecase.PostingSearchInput{
		Search:           c.Query("q"),
		CategoryID:       c.Query("category_id"),
		Location:         c.Query("location"),
		Modalities:       parseQueryCSV(c, "modality"),
		ContractTypes:    parseQueryCSV(c, "contract_type"),
		ExperienceLevels: parseQueryCSV(c, "experience_level"),
		SalaryMin:        parseQueryFloat(c, "salary_min"),
		SalaryMax:        parseQueryFloat(c, "salary_max"),
		PublishedWithin:  parseQueryInt(c, "published_within", 0),
		Order:            c.Query("order"),
		Page:             pageParams(c),
	})
	if err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PostingHandler) Get(c fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PostingHandler) Create(c fiber.Ctx) error {
	var req postingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	in, err := postingInputFromRequest(req)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid date format", nil, err)
	}
	out, err := h.uc.Create(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), in)
	if err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, out)
}

func (h *PostingHandler) Update(c fiber.Ctx) error {
	var req postingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	in, err := postingInputFromRequest(req)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid date format", nil, err)
	}
	out, err := h.uc.Update(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"), in)
	if err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PostingHandler) ChangeStatus(c fiber.Ctx) error {
	var req postingStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	err := h.uc.ChangeStatus(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"), posting.Status(req.Status))
	if err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *PostingHandler) Approve(c fiber.Ctx) error {
	var req postingApprovalRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.uc.Approve(c.Context(), c.Params("id"), req.Approved); err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *PostingHandler) Mine(c fiber.Ctx) error {
	out, err := h.uc.Mine(c.Context(), middleware.UserIDFromCtx(c), pageParams(c))
	if err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PostingHandler) PendingApproval(c fiber.Ctx) error {
	out, err := h.uc.PendingApproval(c.Context(), pageParams(c))
	if err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PostingHandler) GeneralStats(c fiber.Ctx) error {
	out, err := h.uc.GeneralStats(c.Context())
	if err != nil {
		return mapUsecaseError(err, "Posting not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func postingInputFromRequest(req postingRequest) (usecase.PostingInput, error) {
	in := usecase.PostingInput{
		CategoryID:       req.CategoryID,
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Currency:         req.Currency,
		Location:         req.Location,
		Modality:         posting.Modality(req.Modality),
		ContractType:     req.ContractType,
		ExperienceLevel:  posting.ExperienceLevel(req.ExperienceLevel),
		Vacancies:        req.Vacancies,
		Draft:            req.Draft,
	}
	if req.ExpiresAt != nil {
		t, err := parseDate(*req.ExpiresAt)
		if err != nil {
			return usecase.PostingInput{}, err
		}
		in.ExpiresAt = &t
	}
	if req.DesiredStartDate != nil {
		t, err := parseDate(*req.DesiredStartDate)
		if err != nil {
			return usecase.PostingInput{}, err
		}
		in.DesiredStartDate = &t
	}
	return in, nil
}

// parseDate accepts bare dates and full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
