package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/attention"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/conference-manager/backend/internal/storage"
)

const (
	EmailQueue     = "email_queue"
	AnonymizeQueue = "anonymize_queue"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mqChannel   *amqp.Channel
	redisClient *redis.Client
	paperStore  *storage.PaperStore
	alerts      *attention.List

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mqCh *amqp.Channel, rdb *redis.Client, store *storage.PaperStore, alerts *attention.List) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mqChannel:   mqCh,
		redisClient: rdb,
		paperStore:  store,
		alerts:      alerts,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Patch("/role", h.UpdateMyRole)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/papers", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.requireActiveUser).Post("/", h.SubmitPaper)
			r.Get("/", h.GetPapers)
			// 分配建议不针对单篇论文，放在 {id} 之前注册
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleOrganizer})).Post("/suggest-assignments", h.SuggestAssignments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.paper)
				r.Get("/", h.GetPaper)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleOrganizer})).Post("/reviewers", h.AssignReviewers)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleOrganizer})).Patch("/status", h.UpdatePaperStatus)
				r.Post("/anonymize", h.RequestAnonymization)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleReviewer})).Get("/assigned", h.GetAssignedReviews)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.review)
				r.Use(h.reviewOwner)
				r.Get("/", h.GetReview)
				r.With(h.requireActiveUser).Patch("/", h.SubmitReview)
			})
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateRegistration)
			r.Get("/my", h.GetMyRegistration)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleOrganizer})).Get("/", h.GetAllRegistrations)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleOrganizer})).Patch("/{id}", h.UpdateRegistration)
		})

		r.With(h.myInfo).Post("/uploads", h.UploadPaperPDF)

		r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleOrganizer})).Get("/attention", h.GetAttentionAlerts)
	})
}
