package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/shared"
)

// CategoryRepository caches the backend's category set locally.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository with the given database connection
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category. The name is unique; duplicates return
// [shared.ErrCategoryExists].
func (r *CategoryRepository) Create(category *models.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if category.ID == "" {
		category.ID = shared.GenerateID()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO categories (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		category.ID, category.NormalizedName(), category.Description, category.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: %s", shared.ErrCategoryExists, category.NormalizedName())
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// Get retrieves a category by ID.
func (r *CategoryRepository) Get(id string) (*models.Category, error) {
	row := r.db.QueryRow(`SELECT id, name, description, created_at FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

// GetByName retrieves a category by its unique name.
func (r *CategoryRepository) GetByName(name string) (*models.Category, error) {
	row := r.db.QueryRow(`SELECT id, name, description, created_at FROM categories WHERE name = ?`, strings.TrimSpace(name))
	return scanCategory(row)
}

// List retrieves all categories sorted by name.
func (r *CategoryRepository) List() ([]models.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Sync replaces the cached set with the backend's listing. Existing rows
// matching by name keep their ids.
func (r *CategoryRepository) Sync(categories []models.Category) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	for _, c := range categories {
		if c.ID == "" {
			c.ID = shared.GenerateID()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		if _, err := tx.Exec(
			`INSERT INTO categories (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
			c.ID, c.NormalizedName(), c.Description, c.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

func scanCategory(row *sql.Row) (*models.Category, error) {
	var c models.Category
	var description sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &description, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w", shared.ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	c.Description = description.String
	return &c, nil
}
