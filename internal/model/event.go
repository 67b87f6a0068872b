package model

import (
	"fmt"
	"math"
	"time"
)

// Event 活動模型；VenueID 僅為弱關聯，場地於投影時才查詢
type Event struct {
	ID          int        `json:"id" db:"id" yaml:"id"`
	Title       string     `json:"title" db:"title" yaml:"title"`
	Description string     `json:"description" db:"description" yaml:"description"`
	StartUTC    time.Time  `json:"start_utc" db:"start_utc" yaml:"start_utc"`
	EndUTC      *time.Time `json:"end_utc,omitempty" db:"end_utc" yaml:"end_utc"`
	Latitude    float64    `json:"latitude" db:"latitude" yaml:"latitude"`
	Longitude   float64    `json:"longitude" db:"longitude" yaml:"longitude"`
	Genres      []string   `json:"genres" db:"genres" yaml:"genres"`
	VenueID     *int       `json:"venue_id,omitempty" db:"venue_id" yaml:"venue_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at" yaml:"updated_at"`
}

// HasVenue 檢查活動是否有關聯場地
func (e *Event) HasVenue() bool {
	return e.VenueID != nil
}

// Validate 檢查活動的不變量
func (e *Event) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("event id must be positive, got %d", e.ID)
	}
	if e.EndUTC != nil && e.EndUTC.Before(e.StartUTC) {
		return fmt.Errorf("event %d: end %s is before start %s", e.ID, e.EndUTC.Format(time.RFC3339), e.StartUTC.Format(time.RFC3339))
	}
	if err := ValidateLocation(e.Latitude, e.Longitude); err != nil {
		return fmt.Errorf("event %d: %w", e.ID, err)
	}
	return nil
}

// Clone 回傳深拷貝，避免呼叫端修改 repository 內部的資料
func (e *Event) Clone() *Event {
	c := *e
	if e.EndUTC != nil {
		end := *e.EndUTC
		c.EndUTC = &end
	}
	if e.VenueID != nil {
		id := *e.VenueID
		c.VenueID = &id
	}
	if e.Genres != nil {
		c.Genres = append([]string(nil), e.Genres...)
	}
	return &c
}

func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

// ValidateLocation 檢查 WGS84 經緯度範圍
func ValidateLocation(lat, lng float64) error {
	if !ValidLatitude(lat) {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if !ValidLongitude(lng) {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}
