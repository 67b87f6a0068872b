package model

import (
	"fmt"
	"time"
)

// Venue 場地模型；不持有活動，場地的活動清單由 EventRepository.ListByVenue 推導
type Venue struct {
	ID          int       `json:"id" db:"id" yaml:"id"`
	Name        string    `json:"name" db:"name" yaml:"name"`
	Address     string    `json:"address" db:"address" yaml:"address"`
	Latitude    float64   `json:"latitude" db:"latitude" yaml:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude" yaml:"longitude"`
	Description *string   `json:"description,omitempty" db:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" yaml:"updated_at"`
}

func (v *Venue) Validate() error {
	if v.ID <= 0 {
		return fmt.Errorf("venue id must be positive, got %d", v.ID)
	}
	if err := ValidateLocation(v.Latitude, v.Longitude); err != nil {
		return fmt.Errorf("venue %d: %w", v.ID, err)
	}
	return nil
}

func (v *Venue) Clone() *Venue {
	c := *v
	if v.Description != nil {
		d := *v.Description
		c.Description = &d
	}
	return &c
}
