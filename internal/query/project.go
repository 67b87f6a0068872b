package query

import "go-gin-event-map/internal/model"

// Project 將活動與已解析的場地轉成響應格式。
// 只有當 venue 非 nil 且與活動的 VenueID 相符時才輸出 venue，否則為 null。
func Project(e *model.Event, venue *model.Venue) model.EventResponse {
	resp := model.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartUTC:    e.StartUTC.UTC(),
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		Genres:      make([]string, len(e.Genres)),
	}
	copy(resp.Genres, e.Genres)
	if e.EndUTC != nil {
		end := e.EndUTC.UTC()
		resp.EndUTC = &end
	}
	if venue != nil && e.VenueID != nil && *e.VenueID == venue.ID {
		resp.Venue = ProjectVenue(venue)
	}
	return resp
}

func ProjectVenue(v *model.Venue) *model.VenueResponse {
	resp := &model.VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
	}
	if v.Description != nil {
		d := *v.Description
		resp.Description = &d
	}
	return resp
}
