package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/filestore"

	"github.com/stretchr/testify/require"
)

func TestAll_MissingFileIsEmpty(t *testing.T) {
	repo := filestore.NewGoalRepo(filepath.Join(t.TempDir(), "nope", "goals.json"), nil)
	got, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAll_MalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	repo := filestore.NewGoalRepo(path, nil)
	got, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSet_PersistsBareMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localdata", "goals.json")
	repo := filestore.NewGoalRepo(path, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "bitcoin", "50000"))
	require.NoError(t, repo.Set(ctx, "ethereum", "2500"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"bitcoin":"50000","ethereum":"2500"}`, string(raw))

	got, ok, err := repo.Get(ctx, "ethereum")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2500", got)

	_, ok, err = repo.Get(ctx, "solana")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSet_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.json")
	repo := filestore.NewGoalRepo(path, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "bitcoin", "50000"))
	once, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, "bitcoin", "50000"))
	twice, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(once), string(twice))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.GoalMapping{"bitcoin": "50000"}, all)
}

func TestSet_OverwritesMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	repo := filestore.NewGoalRepo(path, nil)

	require.NoError(t, repo.Set(context.Background(), "solana", "200"))
	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.GoalMapping{"solana": "200"}, all)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestAll_AcceptsNumericGoals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goals.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ethereum":3000,"solana":"150","dogecoin":0.25,"ripple":null,"vechain":{"x":1}}`), 0o644))
	repo := filestore.NewGoalRepo(path, nil)
	ctx := context.Background()

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.GoalMapping{"ethereum": "3000", "solana": "150", "dogecoin": "0.25"}, all)

	require.NoError(t, repo.Set(ctx, "bitcoin", "50000"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"bitcoin":"50000","ethereum":"3000","solana":"150","dogecoin":"0.25"}`, string(raw))
}
