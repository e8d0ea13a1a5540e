package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"model-serving-service/internal/core/domain"
	"model-serving-service/internal/testutil"
)

func TestModelLoaderService_LoadLatest(t *testing.T) {
	registry := new(testutil.MockModelRegistry)
	loader := new(testutil.MockModelLoader)
	predictor := new(testutil.MockPredictor)
	svc := NewModelLoaderService(registry, loader)

	version := &domain.ModelVersion{Name: "my_model", Version: "7", Stage: domain.StageNone}
	registry.On("GetLatestVersion", mock.Anything, "my_model", domain.StageNone).Return(version, nil)
	loader.On("Load", mock.Anything, version).Return(predictor, nil)

	v, p, err := svc.LoadLatest(context.Background(), "my_model", domain.StageNone)
	require.NoError(t, err)
	assert.Equal(t, "7", v.Version)
	assert.Equal(t, predictor, p)
}

func TestModelLoaderService_NoVersion(t *testing.T) {
	registry := new(testutil.MockModelRegistry)
	loader := new(testutil.MockModelLoader)
	svc := NewModelLoaderService(registry, loader)

	registry.On("GetLatestVersion", mock.Anything, "my_model", domain.StageProduction).Return(nil, domain.ErrNoModelVersion)

	_, _, err := svc.LoadLatest(context.Background(), "my_model", domain.StageProduction)
	assert.ErrorIs(t, err, domain.ErrNoModelVersion)
	loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestModelLoaderService_NilVersion(t *testing.T) {
	registry := new(testutil.MockModelRegistry)
	svc := NewModelLoaderService(registry, new(testutil.MockModelLoader))

	registry.On("GetLatestVersion", mock.Anything, "my_model", domain.StageNone).Return(nil, nil)

	_, _, err := svc.LoadLatest(context.Background(), "my_model", domain.StageNone)
	assert.ErrorIs(t, err, domain.ErrNoModelVersion)
}

func TestModelLoaderService_LoadFails(t *testing.T) {
	registry := new(testutil.MockModelRegistry)
	loader := new(testutil.MockModelLoader)
	svc := NewModelLoaderService(registry, loader)

	version := &domain.ModelVersion{Name: "my_model", Version: "2"}
	registry.On("GetLatestVersion", mock.Anything, "my_model", domain.StageNone).Return(version, nil)
	loader.On("Load", mock.Anything, version).Return(nil, errors.New("server down"))

	_, _, err := svc.LoadLatest(context.Background(), "my_model", domain.StageNone)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "models:/my_model/2")
}

func TestModelLoaderService_EmptyName(t *testing.T) {
	svc := NewModelLoaderService(new(testutil.MockModelRegistry), new(testutil.MockModelLoader))

	_, _, err := svc.LoadLatest(context.Background(), "", domain.StageNone)
	assert.ErrorIs(t, err, domain.ErrInvalidModelName)
}
