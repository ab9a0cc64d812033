package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// TitleFilter narrows a title listing. Zero-value fields are skipped; set
// fields combine with AND semantics.
type TitleFilter struct {
	Name     string
	Year     *int
	Category string
	Genre    string
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Create(title).Error; err != nil {
		return fmt.Errorf("create title: %w", err)
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	// Save skips association sync; genre changes go through ReplaceGenres
	if err := r.db.WithContext(ctx).Omit("Genres", "Category").Save(title).Error; err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace genres: %w", err)
	}
	title.Genres = genres
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

// listScope applies the filter's joins and conditions to a fresh query
// chain. Count and row queries each build their own scope: past the first
// chain method a *gorm.DB mutates in place, so a shared chain would leak
// the count's DISTINCT select into the row query.
func (r *titleRepository) listScope(ctx context.Context, filter TitleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Title{})

	if filter.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	if filter.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		q = q.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres ON genres.id = tg.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}

	return q
}

func (r *titleRepository) countQuery(ctx context.Context, filter TitleFilter) *gorm.DB {
	return r.listScope(ctx, filter).Distinct("titles.id")
}

func (r *titleRepository) rowQuery(ctx context.Context, filter TitleFilter, limit, offset int) *gorm.DB {
	return r.listScope(ctx, filter).
		Distinct("titles.*").
		Preload("Category").
		Preload("Genres").
		Order("titles.name asc").
		Limit(limit).
		Offset(offset)
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	if err := r.countQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.rowQuery(ctx, filter, limit, offset).Find(&titles).Error; err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}
