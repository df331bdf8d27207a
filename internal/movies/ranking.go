package movies

import (
	"sort"

	"filmlog/internal/database"
)

// Rank returns the movies ordered by rating descending, each annotated
// with its 1-based list position (rank 1 = highest rating). Unrated
// movies sort after rated ones; ties keep their original order. The
// input slice is not modified and nothing is persisted.
func Rank(all []database.Movie) []database.Movie {
	ranked := make([]database.Movie, len(all))
	copy(ranked, all)

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i].Rating, ranked[j].Rating
		if rj == nil {
			return ri != nil
		}
		if ri == nil {
			return false
		}
		return *ri > *rj
	})

	for i := range ranked {
		ranked[i].Ranking = i + 1
	}
	return ranked
}
