package usecase_test

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/domain/service"
	"github.com/bnema/adshield/internal/filtering/cosmetic"
	"github.com/bnema/adshield/internal/filtering/rules"
	"github.com/bnema/adshield/internal/logging"
)

const (
	trackerURL = "https://www.google-analytics.com/collect?v=1"
	bannerURL  = "https://cdn.news.example/img/728x90.png"
	cleanURL   = "https://news.example/api/articles"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newClassifier() *service.Classifier {
	return service.NewClassifier(rules.Default())
}

func newStylesheet() *cosmetic.Stylesheet {
	return cosmetic.Default(zerolog.Nop())
}
