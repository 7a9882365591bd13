package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/application/port/mocks"
	"github.com/bnema/adshield/internal/application/usecase"
)

func TestGetConfigSchemaUseCase_Execute(t *testing.T) {
	t.Run("returns schema from provider", func(t *testing.T) {
		// Arrange
		mockProvider := mocks.NewMockConfigSchemaProvider(t)
		mockProvider.EXPECT().Schema().Return([]byte(`{"title":"adshield configuration"}`), nil)
		mockProvider.EXPECT().ConfigFile().Return("/home/u/.config/adshield/config.toml")

		uc := usecase.NewGetConfigSchemaUseCase(mockProvider)

		// Act
		result, err := uc.Execute(context.Background())

		// Assert
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"adshield configuration"}`, string(result.Schema))
		assert.Equal(t, "/home/u/.config/adshield/config.toml", result.ConfigFile)
	})

	t.Run("propagates provider errors", func(t *testing.T) {
		mockProvider := mocks.NewMockConfigSchemaProvider(t)
		mockProvider.EXPECT().Schema().Return(nil, errors.New("reflect failed"))

		_, err := usecase.NewGetConfigSchemaUseCase(mockProvider).Execute(context.Background())
		assert.Error(t, err)
	})
}
