package dto

import (
	"fmt"
	"math"

	"model-serving-service/internal/core/domain"
)

// PredictRequest is the /predict_api payload. Pointer fields let binding
// tell a missing key from a zero value.
type PredictRequest struct {
	Gender             *string  `json:"Gender" binding:"required"`
	Age                *float64 `json:"Age" binding:"required"`
	DrivingLicense     *float64 `json:"Driving_License" binding:"required"`
	RegionCode         *float64 `json:"Region_Code" binding:"required"`
	PreviouslyInsured  *float64 `json:"Previously_Insured" binding:"required"`
	VehicleAge         *string  `json:"Vehicle_Age" binding:"required"`
	VehicleDamage      *string  `json:"Vehicle_Damage" binding:"required"`
	AnnualPremium      *float64 `json:"Annual_Premium" binding:"required"`
	PolicySalesChannel *float64 `json:"Policy_Sales_Channel" binding:"required"`
	Vintage            *float64 `json:"Vintage" binding:"required"`
}

// PredictResponse carries exactly one of Prediction or Error.
type PredictResponse struct {
	Prediction *int   `json:"prediction,omitempty"`
	Error      string `json:"error,omitempty"`
}

type ModelResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Stage   string `json:"stage"`
	RunID   string `json:"run_id,omitempty"`
	URI     string `json:"uri"`
}

func (r *PredictRequest) ToDomain() (*domain.PredictionRequest, error) {
	age, err := wholeNumber(domain.FieldAge, *r.Age)
	if err != nil {
		return nil, err
	}
	license, err := wholeNumber(domain.FieldDrivingLicense, *r.DrivingLicense)
	if err != nil {
		return nil, err
	}
	insured, err := wholeNumber(domain.FieldPreviouslyInsured, *r.PreviouslyInsured)
	if err != nil {
		return nil, err
	}
	vintage, err := wholeNumber(domain.FieldVintage, *r.Vintage)
	if err != nil {
		return nil, err
	}

	return &domain.PredictionRequest{
		Gender:             *r.Gender,
		Age:                age,
		DrivingLicense:     license,
		RegionCode:         *r.RegionCode,
		PreviouslyInsured:  insured,
		VehicleAge:         *r.VehicleAge,
		VehicleDamage:      *r.VehicleDamage,
		AnnualPremium:      *r.AnnualPremium,
		PolicySalesChannel: *r.PolicySalesChannel,
		Vintage:            vintage,
	}, nil
}

func wholeNumber(field string, v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", domain.ErrInvalidField, field, v)
	}
	if math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s is out of range, got %v", domain.ErrInvalidField, field, v)
	}
	return int(v), nil
}

func ToPredictResponse(p domain.Prediction) PredictResponse {
	v := int(p)
	return PredictResponse{Prediction: &v}
}

func ToModelResponse(v *domain.ModelVersion) ModelResponse {
	return ModelResponse{
		Name:    v.Name,
		Version: v.Version,
		Stage:   string(v.Stage),
		RunID:   v.RunID,
		URI:     v.URI(),
	}
}
