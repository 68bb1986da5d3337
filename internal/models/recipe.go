package models

import (
	"encoding/json"
	"time"
)

// RecipeTime groups the serving and timing fields of a recipe. All values
// are free text ("30 mins", "4 people"), never parsed durations.
type RecipeTime struct {
	Serves    string `json:"serves"`
	PrepTime  string `json:"prep_time"`
	CookTime  string `json:"cook_time"`
	TotalTime string `json:"total_time"`
}

// Recipe represents a dish in the catalog. RID is the stable external
// identifier; Slug is the human-readable lookup key used in URLs.
type Recipe struct {
	RID          int        `json:"rid"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Category     string     `json:"category"`
	Cuisine      string     `json:"cuisine"`
	Description  string     `json:"description"`
	Instructions string     `json:"instructions"`
	Time         RecipeTime `json:"time"`
	ImageURL     string     `json:"imageURL"`
	VideoURL     string     `json:"videoURL"`
	CreatedAt    time.Time  `json:"createdAt"`

	// JSON string fields for DB storage
	IngredientsJSON string `json:"-"`
	TagsJSON        string `json:"-"`

	// Slice fields for API interaction
	Ingredients []string `json:"ingredients"`
	Tags        []string `json:"tags"`
}

// PrepareForSave marshals the slice fields into their respective JSON
// strings for DB storage. Nil slices are stored as empty arrays so that
// responses never render null.
func (r *Recipe) PrepareForSave() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	ingredientsBytes, _ := json.Marshal(r.Ingredients)
	r.IngredientsJSON = string(ingredientsBytes)

	tagsBytes, _ := json.Marshal(r.Tags)
	r.TagsJSON = string(tagsBytes)
}

// PrepareForAPI unmarshals the JSON string fields into their respective
// slice fields for API responses.
func (r *Recipe) PrepareForAPI() {
	r.Ingredients = []string{}
	r.Tags = []string{}

	if r.IngredientsJSON != "" {
		json.Unmarshal([]byte(r.IngredientsJSON), &r.Ingredients)
	}
	if r.TagsJSON != "" {
		json.Unmarshal([]byte(r.TagsJSON), &r.Tags)
	}
}
