package api

import (
	"net/http"

	"github.com/cookistry/cookistry-be/internal/api/handlers"
	"github.com/cookistry/cookistry-be/internal/media"
	"github.com/cookistry/cookistry-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(recipeService services.RecipeServiceProvider, userService services.UserServiceProvider, uploadDir string, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Initialize handlers
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	userHandler := handlers.NewUserHandler(userService)

	r.Post("/recipe", recipeHandler.Create)

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", recipeHandler.GetAll)
		r.Get("/search", recipeHandler.Search)
		r.Get("/{slug}", recipeHandler.Get)
		r.Delete("/{slug}", recipeHandler.Delete)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/recipes/search", recipeHandler.Search)
		r.Get("/recipes/{slug}", recipeHandler.Get)
	})

	// Uploaded images are served read-only under /uploads
	fileServer := http.StripPrefix(media.URLPrefix+"/", http.FileServer(http.Dir(uploadDir)))
	r.Get(media.URLPrefix+"/*", fileServer.ServeHTTP)

	return r
}
