package service

import (
	"context"
	"errors"

	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/repository"
)

var (
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category still referenced by articles")
)

// CategoryService handles the category taxonomy.
type CategoryService struct {
	categories CategoryStore
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category and returns its id.
func (s *CategoryService) Create(ctx context.Context, req model.CategoryRequest) (string, error) {
	category := &model.Category{
		Name:        req.Name,
		Path:        req.Path,
		Description: req.Description,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return "", ErrDuplicateCategory
		}
		return "", err
	}

	return category.ID, nil
}

// List returns every category.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

// Update replaces the category's fields.
func (s *CategoryService) Update(ctx context.Context, id string, req model.CategoryRequest) error {
	if err := s.categories.Update(ctx, id, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrDuplicateCategory):
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

// Delete removes a category that no article references.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryInUse):
			return ErrCategoryInUse
		}
		return err
	}
	return nil
}
