package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/internal/infrastructure/postgres"
)

var errSinBase = errors.New("sin base de datos")

// recordingQuerier registra las consultas y falla todas; sirve para ver qué llega a la base.
type recordingQuerier struct {
	queries [][]any
}

func (q *recordingQuerier) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	q.queries = append(q.queries, args)
	return pgconn.CommandTag{}, errSinBase
}

func (q *recordingQuerier) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	q.queries = append(q.queries, args)
	return nil, errSinBase
}

func (q *recordingQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.queries = append(q.queries, args)
	return nil
}

const (
	kioscoUUID  = "6f1c2b0e-3d4a-4c5b-8e7f-0a1b2c3d4e5f"
	productUUID = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f2a3b4c5d"
)

func TestGetManyForUpdate_IDsNoUUIDNoLleganALaConsulta(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewProductRepository(q)

	got, err := repo.GetManyForUpdate(context.Background(), kioscoUUID, []string{
		"no-es-uuid",
		"{9a8b7c6d-5e4f-4a3b-9c2d-1e0f2a3b4c5d}",
		"9A8B7C6D-5E4F-4A3B-9C2D-1E0F2A3B4C5D",
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, q.queries)
}

func TestGetManyForUpdate_KioscoNoUUIDNoConsulta(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewProductRepository(q)

	got, err := repo.GetManyForUpdate(context.Background(), "k-1", []string{productUUID})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, q.queries)
}

func TestGetManyForUpdate_SoloEnviaLosIDsValidos(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewProductRepository(q)

	_, err := repo.GetManyForUpdate(context.Background(), kioscoUUID, []string{"no-es-uuid", productUUID})
	require.ErrorIs(t, err, errSinBase)
	require.Len(t, q.queries, 1)
	assert.Equal(t, kioscoUUID, q.queries[0][0])
	assert.Equal(t, []string{productUUID}, q.queries[0][1])
}
