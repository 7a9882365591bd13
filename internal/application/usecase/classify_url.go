package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/service"
	urlutil "github.com/bnema/adshield/internal/domain/url"
	"github.com/bnema/adshield/internal/logging"
)

// ClassifyURLUseCase explains classifier decisions.
type ClassifyURLUseCase struct {
	classifier   *service.Classifier
	specialHosts []string
}

// NewClassifyURLUseCase creates a new classification use case.
func NewClassifyURLUseCase(classifier *service.Classifier, specialHosts []string) *ClassifyURLUseCase {
	return &ClassifyURLUseCase{
		classifier:   classifier,
		specialHosts: append([]string(nil), specialHosts...),
	}
}

// ClassifyInput contains the URL to classify and the page it loads on.
type ClassifyInput struct {
	URL string
	// PageURL is the embedding page; empty means the URL itself.
	PageURL string
}

// ClassifyOutput is the verdict and the rule that produced it.
type ClassifyOutput struct {
	URL   string
	Site  entity.SiteContext
	Match entity.Match
}

// Execute classifies input.URL.
func (uc *ClassifyURLUseCase) Execute(ctx context.Context, input ClassifyInput) (*ClassifyOutput, error) {
	rawURL := strings.TrimSpace(input.URL)
	if rawURL == "" {
		return nil, fmt.Errorf("url is required")
	}
	page := urlutil.Normalize(input.PageURL)
	if page == "" {
		page = urlutil.Normalize(rawURL)
	}

	site := entity.SiteFromURL(page, entity.ReadyStateComplete, uc.specialHosts)
	match := uc.classifier.Explain(rawURL, site)

	logging.FromContext(ctx).Debug().
		Str("url", rawURL).
		Str("verdict", match.Verdict.String()).
		Str("pattern", match.Pattern).
		Msg("classified")

	return &ClassifyOutput{URL: rawURL, Site: site, Match: match}, nil
}
