package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alumni-connect/connect-api/internal/auth"
	"github.com/alumni-connect/connect-api/internal/config"
	"github.com/alumni-connect/connect-api/internal/mentorship"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/service"
	"github.com/alumni-connect/connect-api/internal/store"
)

type serviceStore struct {
	*store.Store
}

type API struct {
	cfg    *config.Config
	router *chi.Mux
	store  *store.Store
}

func NewAPI(cfg *config.Config, s *store.Store) *API {
	api := &API{cfg: cfg, router: chi.NewRouter(), store: s}
	api.router.Use(middleware.Logger)
	api.routes()
	return api
}

func (a *API) Routes() *chi.Mux {
	return a.router
}

func (a *API) routes() {
	usvc := service.NewUserService(a.store)
	engine := mentorship.NewEngine(a.store)
	ss := serviceStore{a.store}

	authH := NewAuthHandler(a.cfg, usvc, ss)
	oppH := NewOpportunityHandler(ss)
	appH := NewApplicationHandler(ss)
	storyH := NewStoryHandler(ss)
	mentH := NewMentorshipHandler(engine)
	scholH := NewScholarshipHandler(ss)
	msgH := NewMessageHandler(ss)
	userH := NewUserHandler(ss, a.cfg)
	adminH := NewAdminHandler(ss)

	r := a.router
	r.Route("/auth", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)
		r.Post("/refresh", authH.Refresh)
		r.Post("/google", authH.GoogleSignIn)
		r.With(auth.AuthMiddleware(a.store)).Get("/me", authH.Me)
	})

	r.Route("/opportunities", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(a.store))
			r.Get("/", oppH.ListOpportunities)
			r.Get("/{id}", oppH.GetOpportunity)
			r.Post("/", oppH.CreateOpportunity)
			r.Delete("/{id}", oppH.DeactivateOpportunity)
		})
	})

	r.Route("/applications", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(a.store))
			r.Get("/", appH.ListApplications)
			r.Post("/", appH.CreateApplication)
		})
	})

	r.Route("/stories", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(a.store))
			r.Get("/", storyH.ListStories)
			r.Get("/{id}", storyH.GetStory)
			r.Post("/", storyH.CreateStory)
		})
	})

	r.Route("/mentorship", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(a.store))
			r.Get("/", mentH.ListRequests)
			r.Post("/", mentH.SubmitRequest)
			r.Put("/{id}/status", mentH.UpdateRequestStatus)
		})
	})

	r.Route("/scholarships", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(a.store))
			r.Get("/", scholH.ListScholarships)
			r.Get("/eligible", scholH.ListEligibleScholarships)
			r.Post("/", scholH.CreateScholarship)
			r.Get("/applications/my", scholH.ListMyScholarshipApplications)
			r.Put("/applications/{id}/status", scholH.UpdateApplicationStatus)
			r.Get("/{id}", scholH.GetScholarship)
			r.Put("/{id}", scholH.UpdateScholarship)
			r.Delete("/{id}", scholH.DeactivateScholarship)
			r.Post("/{id}/apply", scholH.ApplyForScholarship)
			r.Get("/{id}/applications", scholH.ListScholarshipApplications)
		})
	})

	r.Route("/messages", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(a.store))
			r.Get("/", msgH.ListMessages)
			r.Post("/", msgH.SendMessage)
			r.Put("/{id}/read", msgH.MarkMessageRead)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(a.store))
			r.Get("/me", userH.GetSelfProfile)
			r.Put("/me", userH.UpdateSelfProfile)
			r.Post("/me/picture", userH.UploadProfilePicture)
			r.Delete("/me/picture", userH.DeleteProfilePicture)
			r.Get("/{id}", userH.GetUser)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(a.store))
			r.Use(auth.RoleMiddleware(models.RoleAdmin))

			r.Get("/dashboard", adminH.GetDashboard)
			r.Get("/users", adminH.ListUsers)
			r.Put("/users/{id}", adminH.UpdateUser)
			r.Delete("/users/{id}", adminH.DeleteUser)
		})
	})

	r.Route("/health", func(r chi.Router) {
		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Get("/", HealthHandler(a.store))
	})
}
