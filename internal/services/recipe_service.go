package services

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cookistry/cookistry-be/internal/database"
	"github.com/cookistry/cookistry-be/internal/models"
)

// ImageStore is the media backend recipes store their images in.
type ImageStore interface {
	Save(r io.Reader, originalFilename string) (string, error)
	Remove(ref string)
}

// ImageUpload carries an uploaded image alongside the form fields.
type ImageUpload struct {
	Content  io.Reader
	Filename string
}

// CreateRecipeInput holds the raw form fields of a create request.
// Ingredients and Tags are comma-separated strings as submitted.
type CreateRecipeInput struct {
	RID          int
	Name         string
	Slug         string
	Ingredients  string
	Category     string
	Tags         string
	Description  string
	Cuisine      string
	Instructions string
	Serves       string
	PrepTime     string
	CookTime     string
	TotalTime    string
	VideoURL     string
	Image        *ImageUpload
}

// RecipeServiceProvider defines the interface for recipe services.
type RecipeServiceProvider interface {
	CreateRecipe(input CreateRecipeInput) (models.Recipe, error)
	GetAllRecipes() ([]models.Recipe, error)
	GetRecipeBySlug(slug string) (models.Recipe, error)
	DeleteRecipeBySlug(slug string) error
	SearchRecipes(query string) ([]models.Recipe, error)
}

// RecipeService provides business logic for the recipe catalog.
type RecipeService struct {
	db     *sql.DB
	images ImageStore
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(db *sql.DB, images ImageStore) *RecipeService {
	return &RecipeService{db: db, images: images}
}

const recipeColumns = `rid, name, slug, category, cuisine, description, instructions,
	serves, prep_time, cook_time, total_time, ingredients_json, tags_json,
	image_url, video_url, created_at`

// scanRecipe is a helper to scan a recipe from a row or rows object.
func scanRecipe(scanner interface{ Scan(...interface{}) error }) (models.Recipe, error) {
	var r models.Recipe
	var name, slug, category, cuisine, desc, instructions sql.NullString
	var serves, prep, cook, total sql.NullString
	var ingredients, tags, imageURL, videoURL sql.NullString

	err := scanner.Scan(
		&r.RID, &name, &slug, &category, &cuisine, &desc, &instructions,
		&serves, &prep, &cook, &total, &ingredients, &tags,
		&imageURL, &videoURL, &r.CreatedAt,
	)
	if err != nil {
		return r, err
	}

	r.Name = name.String
	r.Slug = slug.String
	r.Category = category.String
	r.Cuisine = cuisine.String
	r.Description = desc.String
	r.Instructions = instructions.String
	r.Time = models.RecipeTime{
		Serves:    serves.String,
		PrepTime:  prep.String,
		CookTime:  cook.String,
		TotalTime: total.String,
	}
	r.IngredientsJSON = ingredients.String
	r.TagsJSON = tags.String
	r.ImageURL = imageURL.String
	r.VideoURL = videoURL.String

	r.PrepareForAPI() // Unmarshal the list fields
	return r, nil
}

// CreateRecipe assembles a recipe from the submitted form fields, stores
// the uploaded image first when one is present, and persists the result.
// A duplicate rid or slug fails with ErrAlreadyExists.
func (s *RecipeService) CreateRecipe(input CreateRecipeInput) (models.Recipe, error) {
	recipe := models.Recipe{
		RID:          input.RID,
		Name:         input.Name,
		Slug:         input.Slug,
		Category:     input.Category,
		Cuisine:      input.Cuisine,
		Description:  input.Description,
		Instructions: input.Instructions,
		Time: models.RecipeTime{
			Serves:    input.Serves,
			PrepTime:  input.PrepTime,
			CookTime:  input.CookTime,
			TotalTime: input.TotalTime,
		},
		VideoURL:    input.VideoURL,
		Ingredients: splitList(input.Ingredients),
		Tags:        splitList(input.Tags),
	}

	if input.Image != nil {
		ref, err := s.images.Save(input.Image.Content, input.Image.Filename)
		if err != nil {
			return models.Recipe{}, fmt.Errorf("failed to store recipe image: %w", err)
		}
		recipe.ImageURL = ref
	}

	recipe.PrepareForSave()
	const query = `
		INSERT INTO recipes(rid, name, slug, category, cuisine, description, instructions,
		                    serves, prep_time, cook_time, total_time, ingredients_json, tags_json,
		                    image_url, video_url, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query,
		recipe.RID, recipe.Name, recipe.Slug, recipe.Category, recipe.Cuisine,
		recipe.Description, recipe.Instructions,
		recipe.Time.Serves, recipe.Time.PrepTime, recipe.Time.CookTime, recipe.Time.TotalTime,
		recipe.IngredientsJSON, recipe.TagsJSON, recipe.ImageURL, recipe.VideoURL,
		time.Now().UTC(),
	)
	if err != nil {
		// The image is already on disk; don't leave it orphaned.
		if recipe.ImageURL != "" {
			s.images.Remove(recipe.ImageURL)
		}
		if database.IsUniqueViolation(err) {
			return models.Recipe{}, fmt.Errorf("recipe with rid %d or slug %q: %w", recipe.RID, recipe.Slug, ErrAlreadyExists)
		}
		return models.Recipe{}, fmt.Errorf("failed to save recipe: %w", err)
	}

	return s.GetRecipeBySlug(recipe.Slug)
}

// GetAllRecipes retrieves every recipe in storage-natural order.
func (s *RecipeService) GetAllRecipes() ([]models.Recipe, error) {
	rows, err := s.db.Query(`SELECT ` + recipeColumns + ` FROM recipes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// GetRecipeBySlug retrieves a single recipe by its slug.
func (s *RecipeService) GetRecipeBySlug(slug string) (models.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeColumns+` FROM recipes WHERE slug = ?`, slug)
	r, err := scanRecipe(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Recipe{}, fmt.Errorf("recipe with slug %q: %w", slug, ErrNotFound)
		}
		return models.Recipe{}, err
	}
	return r, nil
}

// DeleteRecipeBySlug removes a recipe. Deleting an absent slug fails with
// ErrNotFound, also on repeated deletes.
func (s *RecipeService) DeleteRecipeBySlug(slug string) error {
	res, err := s.db.Exec(`DELETE FROM recipes WHERE slug = ?`, slug)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("recipe with slug %q: %w", slug, ErrNotFound)
	}
	return nil
}

// SearchRecipes returns every recipe whose name, category, cuisine or
// description contains the query, or where any tag or ingredient does.
// Matching is a case-insensitive, unanchored substring test. An empty
// query fails with ErrSearchQueryRequired.
func (s *RecipeService) SearchRecipes(query string) ([]models.Recipe, error) {
	if query == "" {
		return nil, ErrSearchQueryRequired
	}

	all, err := s.GetAllRecipes()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	results := []models.Recipe{}
	for _, r := range all {
		if recipeMatches(r, q) {
			results = append(results, r)
		}
	}
	return results, nil
}

// recipeMatches expects q already lower-cased.
func recipeMatches(r models.Recipe, q string) bool {
	for _, field := range []string{r.Name, r.Category, r.Cuisine, r.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, list := range [][]string{r.Tags, r.Ingredients} {
		for _, elem := range list {
			if strings.Contains(strings.ToLower(elem), q) {
				return true
			}
		}
	}
	return false
}

// splitList splits a comma-separated form field. An absent or empty field
// yields an empty list; elements keep their surrounding whitespace.
func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
