package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-gin-event-map/config"
	"go-gin-event-map/internal/database"
	apperrors "go-gin-event-map/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDBOnce sync.Once
	testDB     *pgxpool.Pool
	testDBErr  error
)

// getTestDB 連到測試 DB（port 5433），連不上時略過整合測試
func getTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testDBOnce.Do(func() {
		cfg := config.LoadTestConfig()
		testDB, testDBErr = database.InitDatabase(&cfg.Database)
		if testDBErr == nil {
			testDBErr = database.EnsureSchema(context.Background(), testDB)
		}
	})
	if testDBErr != nil {
		t.Skipf("test database unavailable: %v", testDBErr)
	}
	return testDB
}

func setupTestWithTruncate(t *testing.T) *pgxpool.Pool {
	t.Helper()
	db := getTestDB(t)

	// 清空所有測試資料，保留 schema
	_, err := db.Exec(context.Background(), "TRUNCATE events, venues RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return db
}

func createTestVenue(t *testing.T, db *pgxpool.Pool, name string) int {
	t.Helper()
	query := `
		INSERT INTO venues (name, address, latitude, longitude, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int
	err := db.QueryRow(context.Background(), query, name, "1 Test St", 40.7829, -73.9654, "test venue").Scan(&id)
	require.NoError(t, err)
	return id
}

func createTestEvent(t *testing.T, db *pgxpool.Pool, title string, start time.Time, genres []string, venueID *int) int {
	t.Helper()
	query := `
		INSERT INTO events (title, description, start_utc, latitude, longitude, genres, venue_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int
	err := db.QueryRow(context.Background(), query, title, "", start, 40.75, -73.99, genres, venueID).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestEventRepository_Postgres(t *testing.T) {
	db := setupTestWithTruncate(t)
	repo := NewEventRepository(db)
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	venueID := createTestVenue(t, db, "Bandshell")
	id1 := createTestEvent(t, db, "Jazz", start, []string{"Jazz", "Music"}, &venueID)
	id2 := createTestEvent(t, db, "Art", start.Add(time.Hour), []string{}, nil)

	t.Run("List", func(t *testing.T) {
		events, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, id1, events[0].ID)
		assert.Equal(t, id2, events[1].ID)
		assert.Equal(t, []string{"Jazz", "Music"}, events[0].Genres)
		assert.True(t, events[0].StartUTC.Equal(start))
		require.NotNil(t, events[0].VenueID)
		assert.Equal(t, venueID, *events[0].VenueID)
		assert.Nil(t, events[1].VenueID)
	})

	t.Run("FindByID", func(t *testing.T) {
		e, err := repo.FindByID(ctx, id2)

		require.NoError(t, err)
		assert.Equal(t, "Art", e.Title)
	})

	t.Run("FindByID_NotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 99999)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("ListByVenue", func(t *testing.T) {
		events, err := repo.ListByVenue(ctx, venueID)

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, id1, events[0].ID)
	})

	t.Run("DeletingVenueKeepsEvents", func(t *testing.T) {
		_, err := db.Exec(ctx, "DELETE FROM venues WHERE id = $1", venueID)
		require.NoError(t, err)

		e, err := repo.FindByID(ctx, id1)

		require.NoError(t, err)
		assert.Nil(t, e.VenueID)
	})
}

func TestVenueRepository_Postgres(t *testing.T) {
	db := setupTestWithTruncate(t)
	repo := NewVenueRepository(db)
	ctx := context.Background()

	id := createTestVenue(t, db, "Coffee House")

	t.Run("FindByID", func(t *testing.T) {
		v, err := repo.FindByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "Coffee House", v.Name)
		require.NotNil(t, v.Description)
	})

	t.Run("FindByID_NotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 99999)

		assert.ErrorIs(t, err, apperrors.ErrVenueNotFound)
	})

	t.Run("FindByIDs", func(t *testing.T) {
		venues, err := repo.FindByIDs(ctx, []int{id, 99999})

		require.NoError(t, err)
		assert.Len(t, venues, 1)
		assert.Contains(t, venues, id)
	})

	t.Run("FindByIDs_Empty", func(t *testing.T) {
		venues, err := repo.FindByIDs(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, venues)
	})
}

func TestUnavailable(t *testing.T) {
	err := unavailable("list events", context.DeadlineExceeded)

	assert.ErrorIs(t, err, apperrors.ErrRepositoryUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Same(t, err, unavailable("again", err))
}
