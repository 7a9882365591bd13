package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/logging"
)

// GetConfigSchemaUseCase retrieves the configuration schema.
type GetConfigSchemaUseCase struct {
	provider port.ConfigSchemaProvider
}

// NewGetConfigSchemaUseCase creates a new GetConfigSchemaUseCase.
func NewGetConfigSchemaUseCase(provider port.ConfigSchemaProvider) *GetConfigSchemaUseCase {
	return &GetConfigSchemaUseCase{provider: provider}
}

// GetConfigSchemaOutput contains the schema and the file it describes.
type GetConfigSchemaOutput struct {
	Schema     []byte
	ConfigFile string
}

// Execute retrieves the configuration schema.
func (uc *GetConfigSchemaUseCase) Execute(ctx context.Context) (*GetConfigSchemaOutput, error) {
	log := logging.FromContext(ctx)

	schema, err := uc.provider.Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to build config schema: %w", err)
	}
	log.Debug().Int("bytes", len(schema)).Msg("config schema generated")

	return &GetConfigSchemaOutput{
		Schema:     schema,
		ConfigFile: uc.provider.ConfigFile(),
	}, nil
}
