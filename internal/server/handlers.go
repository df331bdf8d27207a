package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"filmlog/internal/database"
	apperrors "filmlog/internal/errors"
	"filmlog/internal/movies"
)

// listMovies handles GET /
// It returns every stored movie ordered and ranked by rating, rank 1
// being the highest-rated entry.
func (s *Server) listMovies(c *gin.Context) {
	all, err := s.repo.List(c.Request.Context())
	if err != nil {
		apperrors.HandleDatabaseError(c, "list movies", err)
		return
	}

	ranked := movies.Rank(all)
	c.JSON(http.StatusOK, gin.H{
		"movies": ranked,
		"count":  len(ranked),
	})
}

// showAddForm handles GET /add
// The frontend renders the add form from this descriptor.
func (s *Server) showAddForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{"title": ""},
	})
}

type addRequest struct {
	Title string `form:"title" json:"title" binding:"required"`
}

// searchCandidates handles POST /add
// It searches TMDb for the submitted title and returns the candidate
// list for the caller to choose from. Nothing is persisted yet.
func (s *Server) searchCandidates(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleValidationError(c, "title must not be empty", "title")
		return
	}

	results, err := s.tmdb.Search(c.Request.Context(), req.Title)
	if err != nil {
		apperrors.HandleMetadataError(c, "movie search failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"options": results,
		"count":   len(results),
	})
}

// findMovie handles GET /find?id=<tmdb_id>
// It fetches the details for the chosen candidate, persists a new movie
// with rating and review left unset, and hands off to the update flow.
func (s *Server) findMovie(c *gin.Context) {
	tmdbID, err := strconv.Atoi(c.Query("id"))
	if err != nil || tmdbID <= 0 {
		apperrors.HandleValidationError(c, "invalid movie id", "id")
		return
	}

	details, err := s.tmdb.MovieDetails(c.Request.Context(), tmdbID)
	if err != nil {
		apperrors.HandleMetadataError(c, "movie details lookup failed", err)
		return
	}

	movie := &database.Movie{
		Title:       details.Title,
		Year:        details.ReleaseYear(),
		Description: details.Overview,
		ImgURL:      s.tmdb.PosterURL(details.PosterPath),
	}
	if err := s.repo.Create(c.Request.Context(), movie); err != nil {
		switch {
		case errors.Is(err, movies.ErrDuplicateTitle):
			apperrors.HandleConflict(c, "movie already in the list", err)
		case errors.Is(err, movies.ErrMissingField):
			apperrors.HandleMetadataError(c, "movie details were incomplete", err)
		default:
			apperrors.HandleDatabaseError(c, "create movie", err)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/update?movie_id=%d", movie.ID))
}

// showUpdateForm handles GET /update?movie_id=<id>
// It returns the stored movie so the edit form can be pre-filled.
func (s *Server) showUpdateForm(c *gin.Context) {
	id, ok := movieIDFromQuery(c)
	if !ok {
		return
	}

	movie, err := s.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrNotFound) {
			apperrors.HandleNotFound(c, "movie", c.Query("movie_id"))
			return
		}
		apperrors.HandleDatabaseError(c, "get movie", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movie": movie})
}

type updateRequest struct {
	Rating string `form:"rating" json:"rating" binding:"required,min=1,max=4"`
	Review string `form:"review" json:"review" binding:"required,max=50"`
}

// updateMovie handles POST /update?movie_id=<id>
// It sets the rating and review on the stored movie and redirects back
// to the list.
func (s *Server) updateMovie(c *gin.Context) {
	id, ok := movieIDFromQuery(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleValidationError(c, "rating must be 1-4 characters and review 1-50", "rating")
		return
	}
	rating, err := strconv.ParseFloat(req.Rating, 64)
	if err != nil {
		apperrors.HandleValidationError(c, "rating must be a number", "rating")
		return
	}

	if _, err := s.repo.UpdateReview(c.Request.Context(), id, rating, req.Review); err != nil {
		if errors.Is(err, movies.ErrNotFound) {
			apperrors.HandleNotFound(c, "movie", c.Query("movie_id"))
			return
		}
		apperrors.HandleDatabaseError(c, "update movie", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// deleteMovie handles GET|POST /delete/:movie_id
// Deleting an absent movie is treated as success so the route stays
// idempotent.
func (s *Server) deleteMovie(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("movie_id"), 10, 32)
	if err != nil {
		apperrors.HandleValidationError(c, "invalid movie id", "movie_id")
		return
	}

	if err := s.repo.Delete(c.Request.Context(), uint(id)); err != nil && !errors.Is(err, movies.ErrNotFound) {
		apperrors.HandleDatabaseError(c, "delete movie", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// movieIDFromQuery parses the movie_id query parameter, writing the
// validation response itself when the value is missing or malformed.
func movieIDFromQuery(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("movie_id"), 10, 32)
	if err != nil {
		apperrors.HandleValidationError(c, "invalid movie id", "movie_id")
		return 0, false
	}
	return uint(id), true
}
