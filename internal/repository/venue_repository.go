package repository

import (
	"context"
	"errors"

	"go-gin-event-map/internal/model"
	apperrors "go-gin-event-map/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VenueRepository interface {
	FindByID(ctx context.Context, id int) (*model.Venue, error)
	// FindByIDs 批次查詢；找不到的 id 不會出現在回傳的 map 中
	FindByIDs(ctx context.Context, ids []int) (map[int]*model.Venue, error)
}

type VenueRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &VenueRepositoryImpl{
		pool: pool,
	}
}

const venueColumns = `id, name, address, latitude, longitude, description, created_at, updated_at`

func (r *VenueRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE id = $1
	`
	venue, err := scanVenue(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, unavailable("find venue", err)
	}
	return venue, nil
}

func (r *VenueRepositoryImpl) FindByIDs(ctx context.Context, ids []int) (map[int]*model.Venue, error) {
	venues := make(map[int]*model.Venue, len(ids))
	if len(ids) == 0 {
		return venues, nil
	}

	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, unavailable("find venues", err)
	}
	defer rows.Close()

	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, unavailable("find venues", err)
		}
		venues[venue.ID] = venue
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("find venues", err)
	}
	return venues, nil
}

func scanVenue(row pgx.Row) (*model.Venue, error) {
	var venue model.Venue
	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.Latitude,
		&venue.Longitude,
		&venue.Description,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}
