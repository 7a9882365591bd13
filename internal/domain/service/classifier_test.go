package service_test

import (
	"fmt"
	"testing"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/service"
	"github.com/bnema/adshield/internal/filtering/rules"
	"github.com/stretchr/testify/assert"
)

var (
	generic = entity.SiteContext{Hostname: "example.com", ReadyState: entity.ReadyStateComplete}
	special = entity.SiteContext{Hostname: "youtube.com", IsSpecialSite: true, ReadyState: entity.ReadyStateComplete}
)

func TestClassify_Scenarios(t *testing.T) {
	c := service.NewClassifier(rules.Default())

	tests := []struct {
		name string
		url  string
		site entity.SiteContext
		want entity.Verdict
	}{
		{"tag manager", "https://googletagmanager.com/gtm.js", generic, entity.VerdictBlockedTracker},
		{"special site video", "https://googlevideo.com/videoplayback?id=1", special, entity.VerdictAllowed},
		{"banner image", "https://example.com/ads/banner.gif", generic, entity.VerdictBlockedBanner},
		{"data uri", "data:image/png;base64,AAAA", generic, entity.VerdictAllowed},
		{"blob uri", "blob:https://example.com/1234", generic, entity.VerdictAllowed},
		{"javascript uri", "JavaScript:void(0)", generic, entity.VerdictAllowed},
		{"empty", "", generic, entity.VerdictAllowed},
		{"whitespace", "   ", generic, entity.VerdictAllowed},
		{"path table", "https://cdn.example.org/js/adsbygoogle.js", generic, entity.VerdictBlockedTracker},
		{"case insensitive", "HTTPS://WWW.DOUBLECLICK.NET/x", generic, entity.VerdictBlockedTracker},
		{"plain page", "https://example.com/article/42", generic, entity.VerdictAllowed},
		{"fonts allowed", "https://fonts.googleapis.com/css?family=Roboto", generic, entity.VerdictAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.url, tt.site))
		})
	}
}

func TestClassify_AllowListWinsOverEveryTable(t *testing.T) {
	rs := entity.NewRuleSet(entity.RuleTables{
		Domains:        []string{"tracker.test"},
		Paths:          []string{"/collect"},
		BannerKeywords: []string{"banner"},
		Allow:          []string{"safe.test"},
	})
	c := service.NewClassifier(rs)

	for _, block := range []string{"tracker.test", "/collect", "banner"} {
		for _, site := range []entity.SiteContext{generic, special} {
			url := fmt.Sprintf("https://safe.test/%s", block)
			assert.Equal(t, entity.VerdictAllowed, c.Classify(url, site), url)

			url = fmt.Sprintf("https://%s/x?ref=safe.test", block)
			assert.Equal(t, entity.VerdictAllowed, c.Classify(url, site), url)
		}
	}
}

func TestClassify_AllowListPrecedenceOnDefaults(t *testing.T) {
	rs := rules.Default()
	c := service.NewClassifier(rs)

	for _, allow := range rs.Allow() {
		for _, domain := range rs.Domains()[:10] {
			url := "https://" + domain + "/" + allow
			assert.Equal(t, entity.VerdictAllowed, c.Classify(url, generic), url)
		}
	}
}

func TestClassify_DomainTableWithoutAllowIsTracker(t *testing.T) {
	rs := rules.Default()
	c := service.NewClassifier(rs)

	for _, domain := range rs.Domains() {
		url := "https://" + domain + "/x"
		assert.Equal(t, entity.VerdictBlockedTracker, c.Classify(url, generic), url)
	}
}

func TestClassify_SpecialFirstPartyOnlyOnSpecialSite(t *testing.T) {
	rs := entity.NewRuleSet(entity.RuleTables{
		Domains:           []string{"stats.videosite.test"},
		SpecialFirstParty: []string{"videosite.test"},
	})
	c := service.NewClassifier(rs)
	url := "https://stats.videosite.test/ping"

	assert.Equal(t, entity.VerdictBlockedTracker, c.Classify(url, generic))
	assert.Equal(t, entity.VerdictAllowed, c.Classify(url, special))
}

func TestClassify_IsPure(t *testing.T) {
	c := service.NewClassifier(rules.Default())
	urls := []string{
		"https://googletagmanager.com/gtm.js",
		"https://example.com/ads/banner.gif",
		"https://example.com/",
	}
	for _, u := range urls {
		first := c.Classify(u, generic)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Classify(u, generic))
		}
	}
}

func TestExplain_ReportsTableAndPattern(t *testing.T) {
	c := service.NewClassifier(rules.Default())

	m := c.Explain("https://googletagmanager.com/gtm.js", generic)
	assert.Equal(t, entity.TableDomain, m.Table)
	assert.Equal(t, "googletagmanager.com", m.Pattern)

	m = c.Explain("https://www.gstatic.com/doubleclick/x.js", generic)
	assert.Equal(t, entity.VerdictAllowed, m.Verdict)
	assert.Equal(t, entity.TableAllow, m.Table)
}

func TestHelpers(t *testing.T) {
	c := service.NewClassifier(rules.Default())

	assert.True(t, c.IsBlocked("https://doubleclick.net/x", generic))
	assert.False(t, c.IsBlocked("https://example.com/ads/banner.gif", generic))
	assert.True(t, c.IsAdResource("https://example.com/ads/banner.gif", generic))
	assert.False(t, c.IsAdResource("https://example.com/logo.svg", generic))
}

func TestNewClassifier_NilRules(t *testing.T) {
	c := service.NewClassifier(nil)
	assert.Equal(t, entity.VerdictAllowed, c.Classify("https://doubleclick.net", generic))
}
