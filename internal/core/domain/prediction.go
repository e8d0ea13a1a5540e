package domain

import (
	"fmt"
)

// Field names as they appear on the wire and in the processed datasets.
const (
	FieldGender             = "Gender"
	FieldAge                = "Age"
	FieldDrivingLicense     = "Driving_License"
	FieldRegionCode         = "Region_Code"
	FieldPreviouslyInsured  = "Previously_Insured"
	FieldVehicleAge         = "Vehicle_Age"
	FieldVehicleDamage      = "Vehicle_Damage"
	FieldAnnualPremium      = "Annual_Premium"
	FieldPolicySalesChannel = "Policy_Sales_Channel"
	FieldVintage            = "Vintage"
)

// FeatureColumns is the column order the model expects.
var FeatureColumns = []string{
	FieldGender,
	FieldAge,
	FieldDrivingLicense,
	FieldRegionCode,
	FieldPreviouslyInsured,
	FieldVehicleAge,
	FieldVehicleDamage,
	FieldAnnualPremium,
	FieldPolicySalesChannel,
	FieldVintage,
}

var genderCodes = map[string]int{
	"Female": 0,
	"Male":   1,
}

var vehicleAgeCodes = map[string]int{
	"< 1 Year":  0,
	"1-2 Year":  1,
	"> 2 Years": 2,
}

var vehicleDamageCodes = map[string]int{
	"No":  0,
	"Yes": 1,
}

// PredictionRequest is a single customer record submitted for scoring.
type PredictionRequest struct {
	Gender             string
	Age                int
	DrivingLicense     int
	RegionCode         float64
	PreviouslyInsured  int
	VehicleAge         string
	VehicleDamage      string
	AnnualPremium      float64
	PolicySalesChannel float64
	Vintage            int
}

// Validate checks value domains. Presence is enforced by the transport layer.
func (r *PredictionRequest) Validate() error {
	if _, ok := genderCodes[r.Gender]; !ok {
		return fmt.Errorf("%w: %s must be Male or Female, got %q", ErrInvalidField, FieldGender, r.Gender)
	}
	if r.Age <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidField, FieldAge, r.Age)
	}
	if !isFlag(r.DrivingLicense) {
		return fmt.Errorf("%w: %s must be 0 or 1, got %d", ErrInvalidField, FieldDrivingLicense, r.DrivingLicense)
	}
	if !isFlag(r.PreviouslyInsured) {
		return fmt.Errorf("%w: %s must be 0 or 1, got %d", ErrInvalidField, FieldPreviouslyInsured, r.PreviouslyInsured)
	}
	if _, ok := vehicleAgeCodes[r.VehicleAge]; !ok {
		return fmt.Errorf("%w: %s must be one of \"< 1 Year\", \"1-2 Year\", \"> 2 Years\", got %q", ErrInvalidField, FieldVehicleAge, r.VehicleAge)
	}
	if _, ok := vehicleDamageCodes[r.VehicleDamage]; !ok {
		return fmt.Errorf("%w: %s must be Yes or No, got %q", ErrInvalidField, FieldVehicleDamage, r.VehicleDamage)
	}
	if r.AnnualPremium <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidField, FieldAnnualPremium, r.AnnualPremium)
	}
	if r.RegionCode < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidField, FieldRegionCode, r.RegionCode)
	}
	if r.PolicySalesChannel < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidField, FieldPolicySalesChannel, r.PolicySalesChannel)
	}
	if r.Vintage < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidField, FieldVintage, r.Vintage)
	}
	return nil
}

// Frame encodes the request as a single-row frame in FeatureColumns order.
// Call Validate first; unknown categories encode as -1.
func (r *PredictionRequest) Frame() *Frame {
	row := []any{
		code(genderCodes, r.Gender),
		r.Age,
		r.DrivingLicense,
		r.RegionCode,
		r.PreviouslyInsured,
		code(vehicleAgeCodes, r.VehicleAge),
		code(vehicleDamageCodes, r.VehicleDamage),
		r.AnnualPremium,
		r.PolicySalesChannel,
		r.Vintage,
	}
	columns := make([]string, len(FeatureColumns))
	copy(columns, FeatureColumns)
	return &Frame{Columns: columns, Rows: [][]any{row}}
}

func code(codes map[string]int, v string) int {
	if c, ok := codes[v]; ok {
		return c
	}
	return -1
}

func isFlag(v int) bool {
	return v == 0 || v == 1
}

// Prediction is a single binary class label.
type Prediction int

const (
	PredictionNegative Prediction = 0
	PredictionPositive Prediction = 1
)

// ToPrediction converts a raw model output to a class label.
func ToPrediction(v float64) (Prediction, error) {
	switch v {
	case 0:
		return PredictionNegative, nil
	case 1:
		return PredictionPositive, nil
	default:
		return 0, fmt.Errorf("%w: got %v", ErrNonBinaryOutput, v)
	}
}
