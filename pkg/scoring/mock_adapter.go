package scoring

import (
	"context"
	"math"

	"carbonledger/entities"
	"carbonledger/pkg/apperr"
)

// Sequestration factors per unit of practice quantity.
const (
	factorAgroforestry = 0.046 // tCO2e per tree planted
	factorCoverCrop    = 3.6   // tCO2e per hectare covered
)

type mockAdapter struct{}

// NewMock returns the deterministic scorer used when no remote endpoint is
// configured. Score starts at 70 and gains 10 for photo evidence and 10
// for GPS coordinates; credits = quantity x factor x score/100.
func NewMock() Adapter { return &mockAdapter{} }

func (m *mockAdapter) Score(_ context.Context, in Input) (Result, error) {
	var factor float64
	switch in.PracticeType {
	case entities.PracticeAgroforestry:
		factor = factorAgroforestry
	case entities.PracticeCoverCrop:
		factor = factorCoverCrop
	default:
		return Result{}, apperr.New(apperr.KindValidation, "unknown practice type %q", in.PracticeType)
	}

	score := 70
	if in.MediaURI != "" {
		score += 10
	}
	if in.GPSLat != nil && in.GPSLng != nil {
		score += 10
	}

	credits := in.Quantity * factor * float64(score) / 100
	return Result{
		VerifiabilityScore: score,
		ProvisionalCredits: math.Round(credits*100) / 100,
	}, nil
}
