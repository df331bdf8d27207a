// Package movies provides data access and ranking for the movie list.
package movies

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"filmlog/internal/database"
)

// Sentinel errors returned by the repository. Handlers translate these
// into HTTP responses.
var (
	ErrNotFound       = errors.New("movie not found")
	ErrDuplicateTitle = errors.New("movie title already exists")
	ErrMissingField   = errors.New("required movie field missing")
)

// Repository handles all database operations for movies.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new movie repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// List retrieves all movies in insertion order.
func (r *Repository) List(ctx context.Context) ([]database.Movie, error) {
	var all []database.Movie
	if err := r.db.WithContext(ctx).Order("id").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return all, nil
}

// Get retrieves a movie by ID.
func (r *Repository) Get(ctx context.Context, id uint) (*database.Movie, error) {
	var movie database.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return &movie, nil
}

// Create persists a new movie. Title, Year, Description and ImgURL are
// required; a duplicate title fails with ErrDuplicateTitle.
func (r *Repository) Create(ctx context.Context, movie *database.Movie) error {
	if err := checkRequired(movie); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateTitle, movie.Title)
		}
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// UpdateReview sets the rating and review on an existing movie and
// returns the updated row.
func (r *Repository) UpdateReview(ctx context.Context, id uint, rating float64, review string) (*database.Movie, error) {
	movie, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Rating = &rating
	movie.Review = review
	if err := r.db.WithContext(ctx).Model(movie).Updates(map[string]interface{}{
		"rating": rating,
		"review": review,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update movie %d: %w", id, err)
	}
	return movie, nil
}

// Delete removes a movie by ID. An absent ID reports ErrNotFound;
// callers decide whether that matters.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&database.Movie{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func checkRequired(movie *database.Movie) error {
	switch {
	case movie.Title == "":
		return fmt.Errorf("%w: title", ErrMissingField)
	case movie.Year == 0:
		return fmt.Errorf("%w: year", ErrMissingField)
	case movie.Description == "":
		return fmt.Errorf("%w: description", ErrMissingField)
	case movie.ImgURL == "":
		return fmt.Errorf("%w: img_url", ErrMissingField)
	}
	return nil
}
