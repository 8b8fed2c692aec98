package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/repositories"
	"github.com/duskthistle/swipereel/internal/shared"
	"github.com/urfave/cli/v3"
)

// CategoriesList prints the backend's category set, falling back to the local
// cache when the backend is unreachable.
func (r *Runner) CategoriesList(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	categories, err := r.service.ListCategories(ctx)
	if err != nil {
		r.logger.Warn("backend unreachable, reading local cache", "error", err)
		categories, err = r.cachedCategories()
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
	} else {
		r.refreshCategoryCache(categories)
	}

	if cmd.Bool("json") {
		return r.writeJSON(categories, cmd.Bool("pretty"))
	}

	if len(categories) == 0 {
		r.writePlain("No categories yet. Create one with 'swipereel categories create <name>'.\n")
		return nil
	}

	for _, c := range categories {
		line := c.Name
		if c.Description != "" {
			line = fmt.Sprintf("%s — %s", c.Name, c.Description)
		}
		r.writePlain("• %s\n", line)
	}
	return nil
}

// CategoriesCreate creates a category on the backend and mirrors it locally.
func (r *Runner) CategoriesCreate(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: category name is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	category, err := r.service.CreateCategory(ctx, name, cmd.String("description"))
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	r.cacheCategory(*category)

	if cmd.Bool("json") {
		return r.writeJSON(category, true)
	}

	r.writePlain("✓ Created category %q (%s)\n", category.Name, category.ID)
	return nil
}

func (r *Runner) cachedCategories() ([]models.Category, error) {
	db, err := r.openDatabase()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return repositories.NewCategoryRepository(db).List()
}

// refreshCategoryCache mirrors the backend's full category set into the local
// cache. Failures only cost the offline fallback, so they are logged and
// ignored.
func (r *Runner) refreshCategoryCache(categories []models.Category) {
	db, err := r.openDatabase()
	if err != nil {
		r.logger.Debug("category cache unavailable", "error", err)
		return
	}
	defer db.Close()

	if err := repositories.NewCategoryRepository(db).Sync(categories); err != nil {
		r.logger.Debug("failed to refresh category cache", "error", err)
	}
}

func (r *Runner) cacheCategory(category models.Category) {
	db, err := r.openDatabase()
	if err != nil {
		r.logger.Debug("category cache unavailable", "error", err)
		return
	}
	defer db.Close()

	if err := repositories.NewCategoryRepository(db).Create(&category); err != nil &&
		!errors.Is(err, shared.ErrCategoryExists) {
		r.logger.Debug("failed to cache category", "name", category.Name, "error", err)
	}
}
