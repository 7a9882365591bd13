package cli

import (
	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/service"
	"github.com/bnema/adshield/internal/filtering/cosmetic"
	"github.com/bnema/adshield/internal/filtering/countermeasure"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/filtering/rules"
	"github.com/bnema/adshield/internal/infrastructure/config"
)

// Shield is the filtering engine built from one configuration snapshot.
type Shield struct {
	Rules      *entity.RuleSet
	Classifier *service.Classifier
	Stylesheet *cosmetic.Stylesheet
	Registry   *countermeasure.Registry
	Payload    *payload.Sanitizer
	Settings   usecase.ShieldSettings
}

// NewShield builds the engine for cfg.
func NewShield(cfg *config.Config, logger zerolog.Logger) *Shield {
	ruleSet := cfg.RuleSet()

	baits := cfg.Shield.Countermeasures.BaitClasses
	if len(baits) == 0 {
		baits = rules.BaitClasses
	}
	sheet := cosmetic.New(logger)
	sheet.AddGeneric(rules.AdSelectors...)
	for _, host := range cfg.Shield.SpecialHosts {
		sheet.AddHost(host, rules.SpecialSiteSelectors...)
	}

	return &Shield{
		Rules:      ruleSet,
		Classifier: service.NewClassifier(ruleSet),
		Stylesheet: sheet,
		Registry:   countermeasure.DefaultRegistry(),
		Payload:    payload.New(logger, cfg.PayloadOptions()...),
		Settings: usecase.ShieldSettings{
			Enabled:         cfg.Shield.Enabled,
			SpecialHosts:    cfg.Shield.SpecialHosts,
			BypassHosts:     cfg.Shield.BypassHosts,
			Guard:           cfg.GuardConfig(),
			VideoAd:         cfg.Shield.VideoAd.Enabled,
			VideoAdOptions:  cfg.VideoAdOptions(),
			Countermeasures: cfg.Shield.Countermeasures.Enabled,
			BaitClasses:     baits,
		},
	}
}
