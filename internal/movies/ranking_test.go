package movies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmlog/internal/database"
)

func TestRankOrdersByRatingDescending(t *testing.T) {
	all := []database.Movie{
		{ID: 1, Title: "A", Rating: ratingOf(9.0)},
		{ID: 2, Title: "B", Rating: ratingOf(7.3)},
		{ID: 3, Title: "C", Rating: ratingOf(8.1)},
	}

	ranked := Rank(all)
	require.Len(t, ranked, 3)

	assert.Equal(t, "A", ranked[0].Title)
	assert.Equal(t, "C", ranked[1].Title)
	assert.Equal(t, "B", ranked[2].Title)
	for i, movie := range ranked {
		assert.Equal(t, i+1, movie.Ranking)
	}
}

func TestRankContiguousSequence(t *testing.T) {
	all := []database.Movie{
		{ID: 1, Rating: ratingOf(5.5)},
		{ID: 2, Rating: ratingOf(9.9)},
		{ID: 3, Rating: ratingOf(1.2)},
		{ID: 4, Rating: ratingOf(7.0)},
		{ID: 5, Rating: ratingOf(6.6)},
	}

	ranked := Rank(all)
	seen := make(map[int]bool)
	for _, movie := range ranked {
		seen[movie.Ranking] = true
	}
	for want := 1; want <= len(all); want++ {
		assert.True(t, seen[want], "ranking %d missing", want)
	}
	require.NotNil(t, ranked[0].Rating)
	assert.Equal(t, 9.9, *ranked[0].Rating)
}

func TestRankUnratedSortLast(t *testing.T) {
	all := []database.Movie{
		{ID: 1, Title: "unrated first"},
		{ID: 2, Title: "rated", Rating: ratingOf(4.0)},
		{ID: 3, Title: "unrated second"},
	}

	ranked := Rank(all)
	assert.Equal(t, "rated", ranked[0].Title)
	// Unrated ties keep their insertion order.
	assert.Equal(t, "unrated first", ranked[1].Title)
	assert.Equal(t, "unrated second", ranked[2].Title)
}

func TestRankDoesNotModifyInput(t *testing.T) {
	all := []database.Movie{
		{ID: 1, Rating: ratingOf(3.0)},
		{ID: 2, Rating: ratingOf(8.0)},
	}

	_ = Rank(all)
	assert.Equal(t, uint(1), all[0].ID)
	assert.Equal(t, 0, all[0].Ranking)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
