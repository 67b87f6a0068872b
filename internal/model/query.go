package model

import "time"

// Corner 邊界框的一個角；經緯度各自可選
type Corner struct {
	Lat *float64
	Lng *float64
}

func (c Corner) complete() bool {
	return c.Lat != nil && c.Lng != nil
}

// BoundingBox 以東北角、西南角描述的矩形範圍。
// 不處理跨越 ±180° 經線的範圍：假設 SouthWest.Lng <= NorthEast.Lng。
type BoundingBox struct {
	NorthEast Corner
	SouthWest Corner
}

// Active 只有四個座標都存在時邊界框才生效
func (b BoundingBox) Active() bool {
	return b.NorthEast.complete() && b.SouthWest.complete()
}

// Contains 檢查座標是否落在範圍內（含邊界）；未生效時一律回傳 true
func (b BoundingBox) Contains(lat, lng float64) bool {
	if !b.Active() {
		return true
	}
	return *b.SouthWest.Lat <= lat && lat <= *b.NorthEast.Lat &&
		*b.SouthWest.Lng <= lng && lng <= *b.NorthEast.Lng
}

// QueryRequest 單次查詢的過濾條件，解析後不再修改
type QueryRequest struct {
	Box         BoundingBox
	Genres      []string
	StartAfter  *time.Time
	StartBefore *time.Time
}

// EventResponse 活動響應
type EventResponse struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartUTC    time.Time      `json:"startUtc"`
	EndUTC      *time.Time     `json:"endUtc"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Genres      []string       `json:"genres"`
	Venue       *VenueResponse `json:"venue"`
}

// VenueResponse 場地響應
type VenueResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description *string `json:"description"`
}
