package query

import (
	"strings"
	"time"

	"go-gin-event-map/internal/model"

	"golang.org/x/text/cases"
)

// Filter 單一過濾條件；未生效的條件讓所有活動通過
type Filter interface {
	Name() string
	Active() bool
	Match(e *model.Event) bool
}

type BoundingBoxFilter struct {
	Box model.BoundingBox
}

func (f BoundingBoxFilter) Name() string { return "bbox" }
func (f BoundingBoxFilter) Active() bool { return f.Box.Active() }
func (f BoundingBoxFilter) Match(e *model.Event) bool {
	return f.Box.Contains(e.Latitude, e.Longitude)
}

// GenreFilter 活動類型與請求類型有交集即通過，比對不分大小寫
type GenreFilter struct {
	wanted map[string]struct{}
}

func NewGenreFilter(genres []string) GenreFilter {
	f := GenreFilter{}
	for _, g := range genres {
		key := foldGenre(g)
		if key == "" {
			continue
		}
		if f.wanted == nil {
			f.wanted = make(map[string]struct{}, len(genres))
		}
		f.wanted[key] = struct{}{}
	}
	return f
}

func (f GenreFilter) Name() string { return "genre" }
func (f GenreFilter) Active() bool { return len(f.wanted) > 0 }
func (f GenreFilter) Match(e *model.Event) bool {
	if !f.Active() {
		return true
	}
	for _, g := range e.Genres {
		if _, ok := f.wanted[foldGenre(g)]; ok {
			return true
		}
	}
	return false
}

// foldGenre 使用 Unicode case folding，不受語系影響。
// cases.Caser 不可跨 goroutine 共用，因此每次建立新的。
func foldGenre(g string) string {
	return cases.Fold().String(strings.TrimSpace(g))
}

// StartAfterFilter 活動開始時間 >= Bound
type StartAfterFilter struct {
	Bound *time.Time
}

func (f StartAfterFilter) Name() string { return "startAfter" }
func (f StartAfterFilter) Active() bool { return f.Bound != nil }
func (f StartAfterFilter) Match(e *model.Event) bool {
	return f.Bound == nil || !e.StartUTC.Before(*f.Bound)
}

// StartBeforeFilter 活動開始時間 <= Bound
type StartBeforeFilter struct {
	Bound *time.Time
}

func (f StartBeforeFilter) Name() string { return "startBefore" }
func (f StartBeforeFilter) Active() bool { return f.Bound != nil }
func (f StartBeforeFilter) Match(e *model.Event) bool {
	return f.Bound == nil || !e.StartUTC.After(*f.Bound)
}

// Pipeline 依序套用 bbox → genre → time 過濾，只保留生效的階段
type Pipeline struct {
	stages []Filter
}

func NewPipeline(req model.QueryRequest) *Pipeline {
	return NewPipelineOf(
		BoundingBoxFilter{Box: req.Box},
		NewGenreFilter(req.Genres),
		StartAfterFilter{Bound: req.StartAfter},
		StartBeforeFilter{Bound: req.StartBefore},
	)
}

func NewPipelineOf(filters ...Filter) *Pipeline {
	p := &Pipeline{}
	for _, f := range filters {
		if f.Active() {
			p.stages = append(p.stages, f)
		}
	}
	return p
}

// Stages 回傳生效階段的名稱，供 log 使用
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, f := range p.stages {
		names = append(names, f.Name())
	}
	return names
}

// Apply 回傳符合所有條件的活動，保持輸入順序，不修改輸入
func (p *Pipeline) Apply(events []*model.Event) []*model.Event {
	out := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if p.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (p *Pipeline) Match(e *model.Event) bool {
	for _, f := range p.stages {
		if !f.Match(e) {
			return false
		}
	}
	return true
}
