// Package query 實作活動查詢的核心：請求解析、過濾管線與 DTO 投影。
// 這裡的函式都不做 I/O，也不持有跨請求的狀態。
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go-gin-event-map/internal/model"
)

const (
	ParamNorthEastLat = "northEast_Lat"
	ParamNorthEastLng = "northEast_Lng"
	ParamSouthWestLat = "southWest_Lat"
	ParamSouthWestLng = "southWest_Lng"
	ParamGenres       = "genres"
	ParamStartAfter   = "startAfter"
	ParamStartBefore  = "startBefore"
)

// RawParams 未經驗證的查詢字串參數，空字串代表未提供
type RawParams struct {
	NorthEastLat string   `form:"northEast_Lat"`
	NorthEastLng string   `form:"northEast_Lng"`
	SouthWestLat string   `form:"southWest_Lat"`
	SouthWestLng string   `form:"southWest_Lng"`
	Genres       []string `form:"genres"`
	StartAfter   string   `form:"startAfter"`
	StartBefore  string   `form:"startBefore"`
}

// Issue 描述一個被拒絕的參數；被拒絕的參數只會停用對應的過濾階段
type Issue struct {
	Param  string
	Value  string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s=%q: %s", i.Param, i.Value, i.Reason)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseRequest 將原始參數轉成 QueryRequest。
// 採寬鬆策略：座標或時間格式錯誤不會讓整個請求失敗，只會停用該過濾條件並回報 Issue。
func ParseRequest(raw RawParams) (model.QueryRequest, []Issue) {
	var (
		req    model.QueryRequest
		issues []Issue
	)

	coords := []struct {
		param string
		value string
		valid func(float64) bool
		dst   **float64
	}{
		{ParamNorthEastLat, raw.NorthEastLat, model.ValidLatitude, &req.Box.NorthEast.Lat},
		{ParamNorthEastLng, raw.NorthEastLng, model.ValidLongitude, &req.Box.NorthEast.Lng},
		{ParamSouthWestLat, raw.SouthWestLat, model.ValidLatitude, &req.Box.SouthWest.Lat},
		{ParamSouthWestLng, raw.SouthWestLng, model.ValidLongitude, &req.Box.SouthWest.Lng},
	}
	boxRejected := false
	for _, c := range coords {
		if strings.TrimSpace(c.value) == "" {
			continue
		}
		v, err := parseCoordinate(c.value, c.valid)
		if err != nil {
			issues = append(issues, Issue{Param: c.param, Value: c.value, Reason: err.Error()})
			boxRejected = true
			continue
		}
		*c.dst = &v
	}
	if boxRejected {
		req.Box = model.BoundingBox{}
	}

	req.Genres = normalizeGenres(raw.Genres)

	if t, issue, ok := parseBound(ParamStartAfter, raw.StartAfter); ok {
		req.StartAfter = t
	} else if issue != nil {
		issues = append(issues, *issue)
	}
	if t, issue, ok := parseBound(ParamStartBefore, raw.StartBefore); ok {
		req.StartBefore = t
	} else if issue != nil {
		issues = append(issues, *issue)
	}

	return req, issues
}

func parseCoordinate(s string, valid func(float64) bool) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("not finite")
	}
	if !valid(v) {
		return 0, fmt.Errorf("out of range")
	}
	return v, nil
}

func normalizeGenres(in []string) []string {
	var out []string
	for _, g := range in {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		out = append(out, g)
	}
	return out
}

func parseBound(param, value string) (*time.Time, *Issue, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil, false
	}
	t, err := ParseTimestamp(value)
	if err != nil {
		return nil, &Issue{Param: param, Value: value, Reason: err.Error()}, false
	}
	return &t, nil, true
}

// ParseTimestamp 解析 ISO-8601 時間並轉成 UTC；沒有時區資訊時視為 UTC
func ParseTimestamp(s string) (time.Time, error) {
	for _, candidate := range []string{s, strings.ReplaceAll(s, " ", "+")} {
		for _, layout := range timeLayouts {
			// 未帶時區的格式 time.Parse 預設即為 UTC
			if t, err := time.Parse(layout, candidate); err == nil {
				return t.UTC(), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp")
}
