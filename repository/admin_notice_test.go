package repository

import (
	"context"
	"testing"
	"time"

	"payexsync/dto/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminNoticeRepository_TakePending(t *testing.T) {
	repo := NewAdminNoticeRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	for i, message := range []string{"first", "second"} {
		require.NoError(t, repo.Create(ctx, &model.AdminNotice{
			ID:        uuid.NewString(),
			Level:     "error",
			Message:   message,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	notices, err := repo.TakePending(ctx)
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, "first", notices[0].Message)
	assert.Equal(t, "second", notices[1].Message)
	for _, n := range notices {
		assert.NotNil(t, n.ShownAt)
	}

	notices, err = repo.TakePending(ctx)
	require.NoError(t, err)
	assert.Empty(t, notices)

	require.NoError(t, repo.Create(ctx, &model.AdminNotice{ID: uuid.NewString(), Level: "warning", Message: "third"}))
	notices, err = repo.TakePending(ctx)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "third", notices[0].Message)
}
