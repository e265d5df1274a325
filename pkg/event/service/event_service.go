package service

import (
	"context"

	"carbonledger/entities"
)

type LogInput struct {
	PlotID       uint
	PracticeType string
	Quantity     float64
	MediaURI     string
	GPSLat       *float64
	GPSLng       *float64
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type EventService interface {
	// Log scores the practice through the adapter and persists the event
	// as pending. Nothing is persisted if scoring fails or is cancelled.
	Log(ctx context.Context, in LogInput) (*entities.PracticeEvent, error)
	// Verify applies an admin approve/reject decision. An event is
	// verified at most once; any non-pending event rejects the call.
	Verify(ctx context.Context, eventID uint, action string) (*entities.PracticeEvent, error)
	List(status string) ([]entities.PracticeEvent, error)
}
