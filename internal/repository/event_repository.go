package repository

import (
	"context"
	"errors"
	"fmt"

	"go-gin-event-map/internal/model"
	apperrors "go-gin-event-map/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository 唯讀的活動資料來源，實作必須可安全地並行讀取
type EventRepository interface {
	List(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	// ListByVenue 場地的活動清單是由活動的 venue_id 推導出來的反向關聯
	ListByVenue(ctx context.Context, venueID int) ([]*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, title, description, start_utc, end_utc, latitude, longitude, genres, venue_id, created_at, updated_at`

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY id ASC
	`
	return r.query(ctx, "list events", query)
}

func (r *EventRepositoryImpl) ListByVenue(ctx context.Context, venueID int) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE venue_id = $1
		ORDER BY id ASC
	`
	return r.query(ctx, "list events by venue", query, venueID)
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, unavailable("find event", err)
	}
	return event, nil
}

func (r *EventRepositoryImpl) query(ctx context.Context, op, query string, args ...any) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, unavailable(op, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return events, nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartUTC,
		&event.EndUTC,
		&event.Latitude,
		&event.Longitude,
		&event.Genres,
		&event.VenueID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.StartUTC = event.StartUTC.UTC()
	if event.EndUTC != nil {
		end := event.EndUTC.UTC()
		event.EndUTC = &end
	}
	return &event, nil
}

// unavailable 將底層錯誤包成 ErrRepositoryUnavailable，保留原始錯誤供 errors.Is 判斷
func unavailable(op string, err error) error {
	if errors.Is(err, apperrors.ErrRepositoryUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrRepositoryUnavailable, err)
}
