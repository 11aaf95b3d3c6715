package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/inkstream/inkstream-go/internal/model"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category still referenced by articles")
)

// CategoryRepository handles category persistence.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category; the name is unique.
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	category.ID = uuid.NewString()

	query := `INSERT INTO categories (id, name, path, description) VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Path, category.Description); err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

// GetByName retrieves a category by its unique name.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	query := `SELECT id, name, path, description FROM categories WHERE name = ?`

	var c model.Category
	err := r.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.Path, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns every category.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, path, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Path, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Update replaces a category's fields. A zero-row match reports
// ErrCategoryNotFound.
func (r *CategoryRepository) Update(ctx context.Context, id string, category model.CategoryRequest) error {
	query := `UPDATE categories SET name = ?, path = ?, description = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, category.Name, category.Path, category.Description, id)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateCategory
		}
		return err
	}
	return requireRow(result, ErrCategoryNotFound)
}

// Delete removes a category. A category still referenced by articles reports
// ErrCategoryInUse.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrCategoryInUse
		}
		return err
	}
	return requireRow(result, ErrCategoryNotFound)
}
