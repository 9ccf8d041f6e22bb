package v1

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"
	"jobboard/internal/ws"
)

type Deps struct {
	Cfg    config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Cfg.JWT.AccessSecret,
		deps.Cfg.JWT.RefreshSecret,
		deps.Cfg.JWT.AccessExpiresIn,
		deps.Cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	categoryRepo := repository.NewPostgresCategoryRepository(deps.DB)
	companyRepo := repository.NewPostgresCompanyRepository(deps.DB)
	postingRepo := repository.NewPostgresPostingRepository(deps.DB)
	profileRepo := repository.NewPostgresProfileRepository(deps.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(deps.DB)

	authSvc := ucauth.NewService(userRepo)
	authUC := usecase.NewAuthUsecase(authSvc, userRepo, jwtSvc)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	companyUC := usecase.NewCompanyUsecase(companyRepo)
	postingUC := usecase.NewPostingUsecase(postingRepo, companyRepo, categoryRepo, searchCache(deps.Cache), deps.Logger)
	profileUC := usecase.NewProfileUsecase(profileRepo)
	applicationUC := usecase.NewApplicationUsecase(
		applicationRepo, postingRepo, profileRepo, companyRepo,
		ws.NewNotifier(deps.Hub), deps.Logger,
	)

	authHandler := handler.NewAuthHandler(authUC, authMw)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	companyHandler := handler.NewCompanyHandler(companyUC)
	postingHandler := handler.NewPostingHandler(postingUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)
	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)

	requireAuth := authMw.Middleware()
	adminOnly := middleware.RequireRoles(user.RoleAdmin)
	employerOrAdmin := middleware.RequireRoles(user.RoleEmployer, user.RoleAdmin)
	applicantOnly := middleware.RequireRoles(user.RoleApplicant)

	authHandler.RegisterRoutes(r.Group("/auth"))

	// Static segments are registered before parameterized ones so /:id does
	// not shadow them.
	categories := r.Group("/categories")
	categoryHandler.RegisterAdminRoutes(categories.Group("", requireAuth, adminOnly))
	categoryHandler.RegisterPublicRoutes(categories.Group("", authMw.Optional()))

	companies := r.Group("/companies")
	companyHandler.RegisterAdminRoutes(companies.Group("", requireAuth, adminOnly))
	companyHandler.RegisterEmployerRoutes(companies.Group("", requireAuth, middleware.RequireRoles(user.RoleEmployer)))
	companyHandler.RegisterPublicRoutes(companies)

	postings := r.Group("/postings")
	postingHandler.RegisterAdminRoutes(postings.Group("", requireAuth, adminOnly))
	postingHandler.RegisterEmployerRoutes(postings.Group("", requireAuth, middleware.RequireRoles(user.RoleEmployer)))
	applicationHandler.RegisterPostingApplicantRoutes(postings.Group("", requireAuth, applicantOnly))
	applicationHandler.RegisterPostingEmployerRoutes(postings.Group("", requireAuth, employerOrAdmin))
	postingHandler.RegisterPublicRoutes(postings.Group("", authMw.Optional()))

	profiles := r.Group("/profiles", requireAuth)
	profileHandler.RegisterApplicantRoutes(profiles.Group("", applicantOnly))
	profileHandler.RegisterEmployerRoutes(profiles.Group("", employerOrAdmin))

	applications := r.Group("/applications", requireAuth)
	applicationHandler.RegisterAdminRoutes(applications.Group("", adminOnly))
	applicationHandler.RegisterApplicantRoutes(applications.Group("", applicantOnly))
	applicationHandler.RegisterEmployerRoutes(applications.Group("", employerOrAdmin))
	applicationHandler.RegisterSharedRoutes(applications)

	r.Get("/ws/applications", wsHandler.HandleApplicationsWS)
}

// searchCache avoids handing a typed nil pointer to the usecase interface.
func searchCache(c *cache.Redis) usecase.SearchCache {
	if c == nil {
		return nil
	}
	return c
}
