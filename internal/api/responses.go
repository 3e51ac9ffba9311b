// Package api holds the response envelopes shared across handlers.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"Pitch not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Booking cancelled"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
