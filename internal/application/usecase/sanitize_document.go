package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/service"
	"github.com/bnema/adshield/internal/filtering/cosmetic"
	"github.com/bnema/adshield/internal/filtering/domguard"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/infrastructure/htmldom"
	"github.com/bnema/adshield/internal/infrastructure/loop"
	"github.com/bnema/adshield/internal/logging"
)

// DocumentKind selects how a body is sanitized.
type DocumentKind string

const (
	KindAuto DocumentKind = ""
	KindHTML DocumentKind = "html"
	KindJSON DocumentKind = "json"
)

// SanitizeInput is one served document.
type SanitizeInput struct {
	URL  string
	Body []byte
	Kind DocumentKind
}

// SanitizeOutput is the rewritten document. Body is the input when
// nothing changed.
type SanitizeOutput struct {
	Body        []byte
	Kind        DocumentKind
	Changed     bool
	Neutralized int
	Buried      int
	Skipped     bool
}

// SanitizeDocumentUseCase runs the shield over a complete document
// outside a live page: HTML through a one-shot DOM guard pass, player
// JSON through the payload sanitizer.
type SanitizeDocumentUseCase struct {
	classifier   *service.Classifier
	sheet        *cosmetic.Stylesheet
	payload      *payload.Sanitizer
	guard        domguard.Config
	specialHosts []string
	skip         func(ctx context.Context, rawURL string, site entity.SiteContext) error
}

// NewSanitizeDocumentUseCase creates a document sanitizer. inject, when
// non-nil, supplies the same bypass rules live pages get.
func NewSanitizeDocumentUseCase(
	classifier *service.Classifier,
	sheet *cosmetic.Stylesheet,
	sanitizer *payload.Sanitizer,
	settings ShieldSettings,
	inject *InjectShieldUseCase,
) *SanitizeDocumentUseCase {
	uc := &SanitizeDocumentUseCase{
		classifier:   classifier,
		sheet:        sheet,
		payload:      sanitizer,
		guard:        settings.Guard,
		specialHosts: append([]string(nil), settings.SpecialHosts...),
	}
	if inject != nil {
		uc.skip = inject.skipReason
	}
	return uc
}

// Sanitize rewrites input.Body.
func (uc *SanitizeDocumentUseCase) Sanitize(ctx context.Context, input SanitizeInput) (*SanitizeOutput, error) {
	log := logging.FromContext(ctx)
	out := &SanitizeOutput{Body: input.Body, Kind: input.Kind}
	if out.Kind == KindAuto {
		out.Kind = detectKind(input.Body)
	}

	site := entity.SiteFromURL(input.URL, entity.ReadyStateComplete, uc.specialHosts)
	if uc.skip != nil {
		if reason := uc.skip(ctx, input.URL, site); reason != nil {
			log.Debug().Err(reason).Str("url", input.URL).Msg("document left untouched")
			out.Skipped = true
			return out, nil
		}
	}

	switch out.Kind {
	case KindJSON:
		if uc.payload == nil {
			return out, nil
		}
		body, changed := uc.payload.SanitizeBody(input.Body)
		out.Body, out.Changed = body, changed
		return out, nil
	case KindHTML:
		return uc.sanitizeHTML(ctx, site, out, input.Body)
	default:
		return nil, fmt.Errorf("unknown document kind %q", out.Kind)
	}
}

func (uc *SanitizeDocumentUseCase) sanitizeHTML(ctx context.Context, site entity.SiteContext, out *SanitizeOutput, body []byte) (*SanitizeOutput, error) {
	log := logging.FromContext(ctx)
	sched := loop.NewVirtual(time.Now())
	env, err := htmldom.Parse(bytes.NewReader(body), sched, htmldom.WithLogger(*log))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	guard := domguard.New(uc.classifier, site, sched, uc.sheet, *log, domguard.WithConfig(uc.guard))
	report := guard.Sanitize(env.Document().DocumentElement())
	out.Neutralized, out.Buried = report.Neutralized, report.Buried

	injected := false
	if uc.sheet != nil {
		injected, err = uc.sheet.Inject(env.Document(), site)
		if err != nil {
			log.Debug().Err(err).Msg("stylesheet not injected")
		}
	}
	if report.Neutralized == 0 && report.Buried == 0 && !injected {
		return out, nil
	}

	rendered, err := env.HTML()
	if err != nil {
		return nil, err
	}
	out.Body, out.Changed = []byte(rendered), true
	return out, nil
}

// SanitizeHTML adapts Sanitize to the proxy's document hook.
func (uc *SanitizeDocumentUseCase) SanitizeHTML(ctx context.Context, pageURL string, body []byte) ([]byte, bool, error) {
	out, err := uc.Sanitize(ctx, SanitizeInput{URL: pageURL, Body: body, Kind: KindHTML})
	if err != nil {
		return body, false, err
	}
	return out.Body, out.Changed, nil
}

func detectKind(body []byte) DocumentKind {
	trimmed := strings.TrimSpace(string(body[:min(len(body), 512)]))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return KindJSON
	}
	return KindHTML
}
