package serviceImp

import (
	"context"

	"go.uber.org/zap"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
	"carbonledger/pkg/event/repository"
	"carbonledger/pkg/event/service"
	plotRepo "carbonledger/pkg/plot/repository"
	"carbonledger/pkg/scoring"
)

type eventSvc struct {
	events repository.EventRepository
	plots  plotRepo.PlotRepository
	scorer scoring.Adapter
	log    *zap.SugaredLogger
}

func New(events repository.EventRepository, plots plotRepo.PlotRepository, scorer scoring.Adapter, logger *zap.SugaredLogger) service.EventService {
	return &eventSvc{events: events, plots: plots, scorer: scorer, log: logger}
}

func (s *eventSvc) Log(ctx context.Context, in service.LogInput) (*entities.PracticeEvent, error) {
	if in.PracticeType != entities.PracticeAgroforestry && in.PracticeType != entities.PracticeCoverCrop {
		return nil, apperr.New(apperr.KindValidation, "practice_type must be agroforestry or cover_crop")
	}
	if in.Quantity <= 0 {
		return nil, apperr.New(apperr.KindValidation, "quantity must be positive")
	}
	if _, err := s.plots.FindByID(in.PlotID); err != nil {
		return nil, err
	}

	// Scoring is the only slow call here; no lock is held across it.
	res, err := s.scorer.Score(ctx, scoring.Input{
		PracticeType: in.PracticeType,
		Quantity:     in.Quantity,
		MediaURI:     in.MediaURI,
		GPSLat:       in.GPSLat,
		GPSLng:       in.GPSLng,
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Re-check after the await: the plot may have been removed while the
	// scoring call was in flight.
	if _, err := s.plots.FindByID(in.PlotID); err != nil {
		return nil, err
	}

	e := &entities.PracticeEvent{
		PlotID:             in.PlotID,
		PracticeType:       in.PracticeType,
		Quantity:           in.Quantity,
		MediaURI:           in.MediaURI,
		GPSLat:             in.GPSLat,
		GPSLng:             in.GPSLng,
		Status:             entities.EventPending,
		VerifiabilityScore: res.VerifiabilityScore,
		ProvisionalCredits: res.ProvisionalCredits,
	}
	if err := s.events.Create(e); err != nil {
		return nil, err
	}
	s.log.Infow("practice logged", "event_id", e.EventID, "plot_id", e.PlotID,
		"type", e.PracticeType, "score", e.VerifiabilityScore, "tco2e", e.ProvisionalCredits)
	return e, nil
}

func (s *eventSvc) Verify(_ context.Context, eventID uint, action string) (*entities.PracticeEvent, error) {
	var to string
	switch action {
	case service.ActionApprove:
		to = entities.EventVerified
	case service.ActionReject:
		to = entities.EventRejected
	default:
		return nil, apperr.New(apperr.KindValidation, "action must be approve or reject")
	}

	n, err := s.events.TransitionFromPending(eventID, to)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// distinguish missing from already-decided
		e, err := s.events.FindByID(eventID)
		if err != nil {
			return nil, err
		}
		return nil, apperr.New(apperr.KindInvalidState, "event %d is %s, not pending", eventID, e.Status)
	}

	e, err := s.events.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	s.log.Infow("event verified", "event_id", eventID, "decision", e.Status)
	return e, nil
}

func (s *eventSvc) List(status string) ([]entities.PracticeEvent, error) {
	return s.events.ListByStatus(status)
}
