package model

// Category is a content category; names are unique.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// CategoryRequest is the POST /category and PUT /category/{categoryId} body.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Path        string `json:"path" validate:"required,startswith=/"`
	Description string `json:"description"`
}
