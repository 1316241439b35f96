package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogueService(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogueService(seededStore(t), zap.NewNop())

	movies, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 6)

	movie, err := svc.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, movie.ID)

	_, err = svc.GetMovie(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)

	showtimes, err := svc.ListShowtimesForMovie(ctx, 2)
	require.NoError(t, err)
	require.Len(t, showtimes, 5)
	for _, st := range showtimes {
		assert.Equal(t, 2, st.MovieID)
	}

	// Unknown movie yields an empty list, not an error.
	none, err := svc.ListShowtimesForMovie(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)

	seats, err := svc.ListSeatsForShowtime(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, seats, 64)
}
