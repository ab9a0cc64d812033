package repository

import (
	"context"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// ScoreAggregate is the per-title review score rollup.
type ScoreAggregate struct {
	Average float64
	Count   int64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	GetByTitleAndAuthor(ctx context.Context, titleID int64, authorID string) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]models.Review, int64, error)
	AggregateScore(ctx context.Context, titleID int64) (ScoreAggregate, error)
	AggregateScores(ctx context.Context, titleIDs []int64) (map[int64]ScoreAggregate, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	// a duplicate (title_id, author_id) pair surfaces here as a unique
	// violation from the ux_reviews_title_author index
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("Author", "Title").Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Delete(review).Error
}

// GetByID retrieves a review scoped to its title: a review id that exists
// under a different title is a miss, not a hit.
func (r *reviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND title_id = ?", reviewID, titleID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByTitleAndAuthor(ctx context.Context, titleID int64, authorID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// AggregateScore computes the review average for one title. Count 0 means
// the title has no rating.
func (r *reviewRepository) AggregateScore(ctx context.Context, titleID int64) (ScoreAggregate, error) {
	var agg struct {
		Average float64
		Count   int64
	}

	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(score), 0) as average, COUNT(*) as count").
		Where("title_id = ?", titleID).
		Scan(&agg).Error
	if err != nil {
		return ScoreAggregate{}, err
	}

	return ScoreAggregate{Average: agg.Average, Count: agg.Count}, nil
}

// AggregateScores batches the rollup for a title listing so the computed
// rating never costs one query per row.
func (r *reviewRepository) AggregateScores(ctx context.Context, titleIDs []int64) (map[int64]ScoreAggregate, error) {
	result := make(map[int64]ScoreAggregate, len(titleIDs))
	if len(titleIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		TitleID int64
		Average float64
		Count   int64
	}

	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, AVG(score) as average, COUNT(*) as count").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.TitleID] = ScoreAggregate{Average: row.Average, Count: row.Count}
	}
	return result, nil
}
