package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reyhanturkkal/Task-Management/internal/api/handlers"
	"github.com/reyhanturkkal/Task-Management/internal/auth"
	"github.com/reyhanturkkal/Task-Management/internal/metrics"
	"github.com/reyhanturkkal/Task-Management/internal/services"
	"github.com/reyhanturkkal/Task-Management/internal/websocket"
)

// Deps bundles everything the router needs wired in from main.
type Deps struct {
	DB            *sql.DB
	Hub           *websocket.Hub
	Tokens        *auth.TokenService
	Resolver      *auth.Resolver
	UserService   services.UserServiceProvider
	TaskService   services.TaskServiceProvider
	EventService  services.EventServiceProvider
	CORSOrigin    string
	SecureCookies bool
}

// SigninPath is where the edge gate sends unauthenticated page requests.
const SigninPath = "/signin"

// protectedPages are the browser route prefixes behind the edge gate.
var protectedPages = []string{"/tasks", "/profile", "/user"}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.RequestTimer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// The edge gate only inspects page-route prefixes; API routes carry
	// their own auth middleware below.
	r.Use(auth.EdgeGate(deps.Resolver, SigninPath, protectedPages...))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.UserService, deps.Tokens, deps.EventService, deps.SecureCookies)
	taskHandler := handlers.NewTaskHandler(deps.TaskService, deps.EventService, deps.Hub)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.Resolver)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.Handle("/metrics", promhttp.Handler())

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", healthHandler.Check)

		// WebSocket task feed (authenticates inside the handler)
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", userHandler.Register)
			r.Post("/signin", userHandler.Login)
			r.Post("/signout", userHandler.Logout)

			// Profile routes resolve the bearer token per request.
			r.Route("/user", func(r chi.Router) {
				r.Use(auth.Middleware(deps.Resolver))
				r.Get("/", userHandler.GetMe)
				r.Patch("/", userHandler.UpdateMe)
				r.Delete("/", userHandler.DeleteMe)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(auth.Middleware(deps.Resolver))
			r.Get("/", taskHandler.GetAll)
			r.Post("/", taskHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.Get)
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
			})
		})

		r.With(auth.Middleware(deps.Resolver)).Get("/events", eventHandler.GetRecent)
	})

	// Minimal sign-in landing page target for gate redirects when the
	// frontend is served elsewhere.
	r.Get(SigninPath, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("sign in required"))
	})

	return r
}
