package seed_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/repository"
	"github.com/Astemirdum/library-catalog/catalog/seed"
)

func TestSeed(t *testing.T) {
	t.Parallel()
	repo, err := repository.NewBolt(filepath.Join(t.TempDir(), "seed.db"), zap.NewNop())
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, seed.Seed(ctx, repo, zap.NewNop()))

	authors, err := repo.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	require.Equal(t, "Asimov", authors[0].FamilyName)

	copies, err := repo.ListBookInstances(ctx)
	require.NoError(t, err)
	require.Len(t, copies, 4)
	for _, bi := range copies {
		require.NotNil(t, bi.Book)
	}
}
