package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-serving-service/internal/core/domain"
)

const samplePayload = `{
	"Gender": "Male", "Age": 44, "Driving_License": 1, "Region_Code": 28.0,
	"Previously_Insured": 0, "Vehicle_Age": "> 2 Years", "Vehicle_Damage": "Yes",
	"Annual_Premium": 40454.0, "Policy_Sales_Channel": 26.0, "Vintage": 217
}`

func TestPredictRequest_ToDomain(t *testing.T) {
	var req PredictRequest
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &req))

	got, err := req.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, &domain.PredictionRequest{
		Gender: "Male", Age: 44, DrivingLicense: 1, RegionCode: 28,
		PreviouslyInsured: 0, VehicleAge: "> 2 Years", VehicleDamage: "Yes",
		AnnualPremium: 40454, PolicySalesChannel: 26, Vintage: 217,
	}, got)
}

func TestPredictRequest_ToDomain_FractionalInteger(t *testing.T) {
	var req PredictRequest
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &req))
	age := 44.5
	req.Age = &age

	_, err := req.ToDomain()
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	assert.ErrorContains(t, err, domain.FieldAge)
}

func TestPredictResponse_OneKey(t *testing.T) {
	b, err := json.Marshal(ToPredictResponse(domain.PredictionNegative))
	require.NoError(t, err)
	assert.JSONEq(t, `{"prediction":0}`, string(b))

	b, err = json.Marshal(PredictResponse{Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, string(b))
}

func TestPredictRequest_ToDomain_OutOfRange(t *testing.T) {
	var req PredictRequest
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &req))
	vintage := 1e12
	req.Vintage = &vintage

	_, err := req.ToDomain()
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	assert.ErrorContains(t, err, "Vintage is out of range")
	assert.NotContains(t, err.Error(), "whole number")
}
