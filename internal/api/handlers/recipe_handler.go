package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cookistry/cookistry-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxUploadSize bounds the in-memory portion of a multipart recipe upload.
const maxUploadSize = 32 << 20 // 32 MB

// RecipeHandler handles HTTP requests for the recipe catalog.
type RecipeHandler struct {
	service services.RecipeServiceProvider
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service services.RecipeServiceProvider) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// Create handles the multipart form request to create a new recipe with an
// optional image file under the "image" field.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	rid, err := strconv.Atoi(r.FormValue("rid"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "A numeric rid is required")
		return
	}

	input := services.CreateRecipeInput{
		RID:          rid,
		Name:         r.FormValue("name"),
		Slug:         r.FormValue("slug"),
		Ingredients:  r.FormValue("ingredients"),
		Category:     r.FormValue("category"),
		Tags:         r.FormValue("tags"),
		Description:  r.FormValue("description"),
		Cuisine:      r.FormValue("cuisine"),
		Instructions: r.FormValue("instructions"),
		Serves:       r.FormValue("serves"),
		PrepTime:     r.FormValue("prep_time"),
		CookTime:     r.FormValue("cook_time"),
		TotalTime:    r.FormValue("total_time"),
		VideoURL:     r.FormValue("videoURL"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		input.Image = &services.ImageUpload{Content: file, Filename: header.Filename}
	case errors.Is(err, http.ErrMissingFile):
		// no image, imageURL stays empty
	default:
		respondError(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	recipe, err := h.service.CreateRecipe(input)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			respondError(w, http.StatusBadRequest, "Recipe already exists")
			return
		}
		log.Error().Err(err).Int("rid", rid).Msg("Failed to save recipe")
		respondError(w, http.StatusInternalServerError, "Failed to save recipe")
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

// GetAll handles the request to list all recipes.
func (h *RecipeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.GetAllRecipes()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch recipes")
		respondError(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	respondJSON(w, http.StatusOK, recipes)
}

// Search handles the free-text search request (?q=<term>).
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results, err := h.service.SearchRecipes(q)
	if err != nil {
		if errors.Is(err, services.ErrSearchQueryRequired) {
			respondError(w, http.StatusBadRequest, "Search query required")
			return
		}
		log.Error().Err(err).Str("query", q).Msg("Search failed")
		respondError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// Get handles the request to fetch a single recipe by its slug.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	recipe, err := h.service.GetRecipeBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Recipe not found")
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to fetch recipe")
		respondError(w, http.StatusInternalServerError, "Failed to fetch recipe")
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

// Delete handles the request to delete a recipe by its slug.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := h.service.DeleteRecipeBySlug(slug); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Recipe not found")
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to delete recipe")
		respondError(w, http.StatusInternalServerError, "Failed to delete recipe")
		return
	}
	respondMessage(w, http.StatusOK, "Recipe deleted successfully")
}
