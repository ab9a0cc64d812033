package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// CategoryRepository and GenreRepository are the flat tag stores: slug-keyed,
// name-searchable, no update.

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Category, error)
	List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error)
	Delete(ctx context.Context, category *models.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Category, error) {
	var list []models.Category
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	return listTags[models.Category](r.db.WithContext(ctx), search, limit, offset)
}

func (r *categoryRepository) Delete(ctx context.Context, category *models.Category) error {
	// titles referencing this category keep existing with a null category
	if err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).Error; err != nil {
		return fmt.Errorf("detach titles: %w", err)
	}
	if err := r.db.WithContext(ctx).Delete(category).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error)
	Delete(ctx context.Context, genre *models.Genre) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *genreRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	return listTags[models.Genre](r.db.WithContext(ctx), search, limit, offset)
}

func (r *genreRepository) Delete(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).
		Where("genre_id = ?", genre.ID).
		Delete(&models.TitleGenre{}).Error; err != nil {
		return fmt.Errorf("detach titles: %w", err)
	}
	if err := r.db.WithContext(ctx).Delete(genre).Error; err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	return nil
}

// listTags is the shared name-search query for both tag kinds.
func listTags[T any](db *gorm.DB, search string, limit, offset int) ([]T, int64, error) {
	var list []T
	var total int64

	var model T
	q := db.Model(&model)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("name asc").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
