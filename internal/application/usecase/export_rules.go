package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/converter"
	"github.com/bnema/adshield/internal/filtering/cosmetic"
	"github.com/bnema/adshield/internal/logging"
)

// ExportRulesUseCase renders the active rule tables for other engines.
type ExportRulesUseCase struct {
	exporter     *converter.Exporter
	specialHosts []string
}

// NewExportRulesUseCase creates a new rule exporter.
func NewExportRulesUseCase(rules *entity.RuleSet, sheet *cosmetic.Stylesheet, specialHosts []string) *ExportRulesUseCase {
	return &ExportRulesUseCase{
		exporter:     converter.NewExporter(rules, sheet, specialHosts),
		specialHosts: append([]string(nil), specialHosts...),
	}
}

// ExportInput selects the output format. PageURL scopes the css format
// to one site; the other formats ignore it.
type ExportInput struct {
	Format  string
	PageURL string
}

// Execute writes the export to w.
func (uc *ExportRulesUseCase) Execute(ctx context.Context, w io.Writer, input ExportInput) error {
	format, err := converter.ParseFormat(input.Format)
	if err != nil {
		return err
	}
	site := entity.SiteFromURL(input.PageURL, entity.ReadyStateComplete, uc.specialHosts)

	if err := uc.exporter.Export(w, format, site); err != nil {
		return fmt.Errorf("failed to export %s rules: %w", format, err)
	}
	logging.FromContext(ctx).Debug().Str("format", string(format)).Str("site", site.Hostname).Msg("rules exported")
	return nil
}
