package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tweetscrape/internal/model"
)

func TestInsertTopic_AssignsIncreasingIDs(t *testing.T) {
	tx := beginTestTx(t, createTestStore(t))
	ctx := context.Background()

	id1, err := tx.InsertTopic(ctx, "Movies", "#film")
	require.NoError(t, err)
	id2, err := tx.InsertTopic(ctx, "Music", "#nowplaying")
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	topics, err := tx.ListTopics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Topic{
		{ID: 1, Topic: "Movies", Query: "#film", Active: true},
		{ID: 2, Topic: "Music", Query: "#nowplaying", Active: true},
	}, topics)
}

func TestInsertTopic_UniqueConstraintReportsExistingID(t *testing.T) {
	tx := beginTestTx(t, createTestStore(t))
	ctx := context.Background()

	id, err := tx.InsertTopic(ctx, "Movies", "#film")
	require.NoError(t, err)

	_, err = tx.InsertTopic(ctx, "Movies", "#film")
	require.Error(t, err)

	var dup *model.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, id, dup.ExistingID)
}

func TestInsertTopic_SameQueryDifferentTopicAllowed(t *testing.T) {
	tx := beginTestTx(t, createTestStore(t))
	ctx := context.Background()

	_, err := tx.InsertTopic(ctx, "Movies", "#film")
	require.NoError(t, err)
	_, err = tx.InsertTopic(ctx, "Cinema", "#film")
	require.NoError(t, err)
}

func TestListTopics_EmptyIsNotNil(t *testing.T) {
	tx := beginTestTx(t, createTestStore(t))

	topics, err := tx.ListTopics(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestDeleteTopic(t *testing.T) {
	tx := beginTestTx(t, createTestStore(t))
	ctx := context.Background()

	id, err := tx.InsertTopic(ctx, "Movies", "#film")
	require.NoError(t, err)

	removed, err := tx.DeleteTopic(ctx, id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = tx.DeleteTopic(ctx, id)
	require.NoError(t, err)
	assert.False(t, removed, "second delete should report not found")
}

func TestDeleteAllTopics(t *testing.T) {
	tx := beginTestTx(t, createTestStore(t))
	ctx := context.Background()

	for _, q := range []string{"a", "b", "c"} {
		_, err := tx.InsertTopic(ctx, "T", q)
		require.NoError(t, err)
	}

	n, err := tx.DeleteAllTopics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	topics, err := tx.ListTopics(ctx)
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestSetTopicActive_AndActiveTopics(t *testing.T) {
	tx := beginTestTx(t, createTestStore(t))
	ctx := context.Background()

	id1, err := tx.InsertTopic(ctx, "Movies", "#film")
	require.NoError(t, err)
	id2, err := tx.InsertTopic(ctx, "Music", "#nowplaying")
	require.NoError(t, err)

	found, err := tx.SetTopicActive(ctx, id1, false)
	require.NoError(t, err)
	assert.True(t, found)

	// Setting the current value is still a hit.
	found, err = tx.SetTopicActive(ctx, id2, true)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = tx.SetTopicActive(ctx, 99, true)
	require.NoError(t, err)
	assert.False(t, found)

	active, err := tx.ActiveTopics(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, id2, active[0].ID)
}

func TestFindTopic(t *testing.T) {
	tx := beginTestTx(t, createTestStore(t))
	ctx := context.Background()

	id, err := tx.InsertTopic(ctx, "Movies", "#film")
	require.NoError(t, err)

	got, found, err := tx.FindTopic(ctx, "Movies", "#film")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, got)

	_, found, err = tx.FindTopic(ctx, "Movies", "#movie")
	require.NoError(t, err)
	assert.False(t, found)
}

// Two stores on the same file model two concurrent invocations. IMMEDIATE
// sessions serialise them; the loser sees the winner's row through the
// unique constraint instead of inserting a second copy.
func TestInsertTopic_ConcurrentSessionsInsertOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	ctx := context.Background()

	const workers = 4
	stores := make([]*Store, workers)
	for i := range stores {
		s, err := Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		stores[i] = s
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i, s := range stores {
		wg.Add(1)
		go func(i int, s *Store) {
			defer wg.Done()
			tx, err := s.Begin(ctx)
			if err != nil {
				errs[i] = err
				return
			}
			defer tx.Rollback()
			if _, err := tx.InsertTopic(ctx, "Movies", "#film"); err != nil {
				errs[i] = err
				return
			}
			errs[i] = tx.Commit()
		}(i, s)
	}
	wg.Wait()

	var inserted, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			inserted++
		case model.IsDuplicateError(err):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, inserted)
	assert.Equal(t, workers-1, duplicates)

	tx := beginTestTx(t, stores[0])
	topics, err := tx.ListTopics(ctx)
	require.NoError(t, err)
	assert.Len(t, topics, 1)
}
