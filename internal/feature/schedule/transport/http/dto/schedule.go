// Package dto defines the request/response payloads for the schedule endpoints.
package dto

import "danset_exchange/internal/feature/schedule/domain/entity"

// ScheduleRequest is the JSON body for PUT /admin/market/schedule.
type ScheduleRequest struct {
	OpenTime            string `json:"open_time" binding:"required"`
	CloseTime           string `json:"close_time" binding:"required"`
	LunchBreakStart     string `json:"lunch_break_start" binding:"required"`
	LunchBreakEnd       string `json:"lunch_break_end" binding:"required"`
	AutoScheduleEnabled bool   `json:"auto_schedule_enabled"`
}

// StatusRequest is the JSON body for PUT /admin/market/status.
type StatusRequest struct {
	IsOpen  *bool  `json:"is_open" binding:"required"`
	Message string `json:"message"`
}

// ScheduleResponse is the public view of the market schedule.
type ScheduleResponse struct {
	OpenTime            string `json:"open_time"`
	CloseTime           string `json:"close_time"`
	LunchBreakStart     string `json:"lunch_break_start"`
	LunchBreakEnd       string `json:"lunch_break_end"`
	AutoScheduleEnabled bool   `json:"auto_schedule_enabled"`
}

// StatusResponse is the public view of the market open/closed state.
type StatusResponse struct {
	IsOpen  bool   `json:"is_open"`
	Message string `json:"message"`
}

// NewScheduleResponse maps a schedule entity to its public view.
func NewScheduleResponse(s *entity.MarketSchedule) ScheduleResponse {
	return ScheduleResponse{
		OpenTime:            s.OpenTime,
		CloseTime:           s.CloseTime,
		LunchBreakStart:     s.LunchBreakStart,
		LunchBreakEnd:       s.LunchBreakEnd,
		AutoScheduleEnabled: s.AutoScheduleEnabled,
	}
}

// NewStatusResponse maps a status entity to its public view.
func NewStatusResponse(st *entity.MarketStatus) StatusResponse {
	return StatusResponse{IsOpen: st.IsOpen, Message: st.Message}
}
