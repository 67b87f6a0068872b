package repository

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go-gin-event-map/internal/model"
	apperrors "go-gin-event-map/pkg/app_errors"

	"gopkg.in/yaml.v3"
)

// Dataset 記憶體模式的資料，通常由 YAML 檔載入
type Dataset struct {
	Venues []*model.Venue `yaml:"venues"`
	Events []*model.Event `yaml:"events"`
}

func LoadDataset(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return ParseDataset(b)
}

func ParseDataset(b []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate 檢查每筆資料的不變量以及 id 唯一性。
// 指向不存在場地的 venue_id 是允許的，投影時 venue 會是 null。
func (d *Dataset) Validate() error {
	venueIDs := make(map[int]struct{}, len(d.Venues))
	for _, v := range d.Venues {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid dataset: %w", err)
		}
		if _, dup := venueIDs[v.ID]; dup {
			return fmt.Errorf("invalid dataset: duplicate venue id %d", v.ID)
		}
		venueIDs[v.ID] = struct{}{}
	}

	eventIDs := make(map[int]struct{}, len(d.Events))
	for _, e := range d.Events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("invalid dataset: %w", err)
		}
		if _, dup := eventIDs[e.ID]; dup {
			return fmt.Errorf("invalid dataset: duplicate event id %d", e.ID)
		}
		eventIDs[e.ID] = struct{}{}
	}
	return nil
}

// MemoryStore 以 RWMutex 保護的唯讀快照；讀取時回傳複本，呼叫端無法修改內部資料
type MemoryStore struct {
	mu     sync.RWMutex
	events []*model.Event
	byID   map[int]*model.Event
	venues map[int]*model.Venue
}

func NewMemoryStore(d *Dataset) (*MemoryStore, error) {
	s := &MemoryStore{}
	if err := s.Load(d); err != nil {
		return nil, err
	}
	return s, nil
}

// Load 以新的資料集整批替換快照
func (s *MemoryStore) Load(d *Dataset) error {
	if err := d.Validate(); err != nil {
		return err
	}

	events := make([]*model.Event, 0, len(d.Events))
	byID := make(map[int]*model.Event, len(d.Events))
	for _, e := range d.Events {
		c := e.Clone()
		c.StartUTC = c.StartUTC.UTC()
		if c.EndUTC != nil {
			end := c.EndUTC.UTC()
			c.EndUTC = &end
		}
		events = append(events, c)
		byID[c.ID] = c
	}
	venues := make(map[int]*model.Venue, len(d.Venues))
	for _, v := range d.Venues {
		venues[v.ID] = v.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	s.byID = byID
	s.venues = venues
	return nil
}

func (s *MemoryStore) Events() EventRepository {
	return &MemoryEventRepository{store: s}
}

func (s *MemoryStore) Venues() VenueRepository {
	return &MemoryVenueRepository{store: s}
}

type MemoryEventRepository struct {
	store *MemoryStore
}

func (r *MemoryEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := make([]*model.Event, 0, len(r.store.events))
	for _, e := range r.store.events {
		events = append(events, e.Clone())
	}
	return events, nil
}

func (r *MemoryEventRepository) FindByID(ctx context.Context, id int) (*model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.byID[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return e.Clone(), nil
}

func (r *MemoryEventRepository) ListByVenue(ctx context.Context, venueID int) ([]*model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := make([]*model.Event, 0)
	for _, e := range r.store.events {
		if e.VenueID != nil && *e.VenueID == venueID {
			events = append(events, e.Clone())
		}
	}
	return events, nil
}

type MemoryVenueRepository struct {
	store *MemoryStore
}

func (r *MemoryVenueRepository) FindByID(ctx context.Context, id int) (*model.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	v, ok := r.store.venues[id]
	if !ok {
		return nil, apperrors.ErrVenueNotFound
	}
	return v.Clone(), nil
}

func (r *MemoryVenueRepository) FindByIDs(ctx context.Context, ids []int) (map[int]*model.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	venues := make(map[int]*model.Venue, len(ids))
	for _, id := range ids {
		if v, ok := r.store.venues[id]; ok {
			venues[id] = v.Clone()
		}
	}
	return venues, nil
}
