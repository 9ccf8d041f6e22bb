package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	PostingID   string  `json:"posting_id"`
	CoverLetter *string `json:"cover_letter"`
	CVURL       *string `json:"cv_url"`
}

type applicationStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

type applicationNotesRequest struct {
	Notes string `json:"notes"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterApplicantRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Apply)
	r.Get("/mine", h.Mine)
	r.Get("/mine/stats", h.MyStats)
	r.Delete("/:id/withdraw", h.Withdraw)
}

func (h *ApplicationHandler) RegisterEmployerRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Patch("/:id/status", h.ChangeStatus)
	r.Patch("/:id/notes", h.UpdateNotes)
}

// Posting-scoped routes mount under /postings/:id.

func (h *ApplicationHandler) RegisterPostingApplicantRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:id/can-apply", h.CanApply)
}

func (h *ApplicationHandler) RegisterPostingEmployerRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:id/applications", h.ListByPosting)
	r.Get("/:id/applications/stats", h.PostingStats)
}

func (h *ApplicationHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/stats", h.GeneralStats)
}

func (h *ApplicationHandler) RegisterSharedRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:id", h.Get)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	out, err := h.uc.Apply(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), usecase.ApplyInput{
		PostingID:   req.PostingID,
		CoverLetter: req.CoverLetter,
		CVURL:       req.CVURL,
	})
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, out)
}

func (h *ApplicationHandler) CanApply(c fiber.Ctx) error {
	out, err := h.uc.CanApply(c.Context(), middleware.UserIDFromCtx(c), c.Params("id"))
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) Mine(c fiber.Ctx) error {
	out, err := h.uc.Mine(c.Context(), middleware.UserIDFromCtx(c), pageParams(c))
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) ListByPosting(c fiber.Ctx) error {
	in := usecase.ApplicationListInput{
		Statuses: parseQueryCSV(c, "status"),
		Order:    c.Query("order"),
		Page:     pageParams(c),
	}
	if v := parseQueryInt(c, "min_score", -1); v >= 0 {
		in.MinScore = &v
	}
	if from := parseQueryDate(c, "date_from"); from != nil {
		in.DateFrom = from
	}
	if to := parseQueryDate(c, "date_to"); to != nil {
		in.DateTo = to
	}

	out, err := h.uc.ListByPosting(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"), in)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"))
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) ChangeStatus(c fiber.Ctx) error {
	var req applicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	out, err := h.uc.ChangeStatus(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"), application.Status(req.Status), req.Notes)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) UpdateNotes(c fiber.Ctx) error {
	var req applicationNotesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	out, err := h.uc.UpdateNotes(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"), req.Notes)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	out, err := h.uc.Withdraw(c.Context(), middleware.UserIDFromCtx(c), c.Params("id"))
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) PostingStats(c fiber.Ctx) error {
	out, err := h.uc.PostingStats(c.Context(), middleware.UserIDFromCtx(c), user.Role(middleware.RoleFromCtx(c)), c.Params("id"))
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) MyStats(c fiber.Ctx) error {
	out, err := h.uc.MyStats(c.Context(), middleware.UserIDFromCtx(c))
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ApplicationHandler) GeneralStats(c fiber.Ctx) error {
	out, err := h.uc.GeneralStats(c.Context())
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapApplicationError(err error) error {
	if err == nil {
		return nil
	}

	// 409 is reserved for the duplicate application; eligibility and
	// withdrawal failures are state errors and report as 400.
	switch {
	case errors.Is(err, usecase.ErrProfileRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Applicant profile required", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this posting", nil, err)
	case errors.Is(err, usecase.ErrPostingNotAvailable):
		return middleware.NewAppError(fiber.StatusBadRequest, "Posting is not accepting applications", nil, err)
	case errors.Is(err, usecase.ErrPostingExpired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Posting has expired", nil, err)
	case errors.Is(err, usecase.ErrWithdrawalBlocked):
		return middleware.NewAppError(fiber.StatusBadRequest, "Application can no longer be withdrawn", nil, err)
	default:
		return mapUsecaseError(err, "Application not found")
	}
}

func parseQueryDate(c fiber.Ctx, key string) *time.Time {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil
	}
	return &t
}
