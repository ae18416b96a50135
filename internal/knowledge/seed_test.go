package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := NewStore(WordLengthVectorizer{})

	require.NoError(t, Seed(ctx, store))
	assert.Equal(t, 6, store.Len())

	deadpool, ok := store.Entry("deadpool-wolverine-2024")
	require.True(t, ok)
	assert.Equal(t, CategoryMovie, deadpool.Category)
	assert.Equal(t, "Marvel", deadpool.Franchise)
	assert.Equal(t, "2024-07-26", deadpool.ReleaseDate)
	assert.Equal(t, StatusReleased, deadpool.Status)
	assert.Equal(t, ConfidenceHigh, deadpool.Confidence)
	assert.Equal(t, CanonStatusCanon, deadpool.CanonStatus)
	assert.Equal(t, []string{"marvel.com", "imdb.com"}, deadpool.Sources)

	kirk, ok := store.Entry("star-trek-kirk-canon")
	require.True(t, ok)
	assert.Equal(t, CategoryCanonInfo, kirk.Category)
	assert.Equal(t, 98, kirk.VerificationScore)
	assert.Equal(t, 10, kirk.SourceAgreement)

	batman, ok := store.Entry("batman-dark-knight-trivia")
	require.True(t, ok)
	assert.Equal(t, "behind_scenes", batman.TriviaType)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(WordLengthVectorizer{})

	require.NoError(t, Seed(ctx, store))
	require.NoError(t, Seed(ctx, store))
	assert.Equal(t, 6, store.Len())
}
