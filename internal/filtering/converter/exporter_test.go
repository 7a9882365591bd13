package converter_test

import (
	"bytes"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/converter"
	"github.com/bnema/adshield/internal/filtering/cosmetic"
)

func fixture() *converter.Exporter {
	rules := entity.NewRuleSet(entity.RuleTables{
		Domains:           []string{"doubleclick.net"},
		Paths:             []string{"/collect?"},
		BannerKeywords:    []string{"728x90"},
		Allow:             []string{"youtube.com/s/player"},
		SpecialFirstParty: []string{"googlevideo.com"},
	})
	sheet := cosmetic.New(zerolog.Nop())
	sheet.AddGeneric(".ad-slot")
	sheet.AddHost("youtube.com", ".video-ads", ".video-ads")
	return converter.NewExporter(rules, sheet, []string{"youtube.com"})
}

func TestParseFormat(t *testing.T) {
	f, err := converter.ParseFormat(" WebKit ")
	require.NoError(t, err)
	assert.Equal(t, converter.FormatWebKit, f)

	_, err = converter.ParseFormat("pac")
	assert.Error(t, err)
}

func TestWebKitRules_Order(t *testing.T) {
	rules := fixture().WebKitRules()
	require.Len(t, rules, 7)

	assert.Equal(t, converter.ActionTypeBlock, rules[0].Action.Type)
	assert.Equal(t, `doubleclick\.net`, rules[0].Trigger.URLFilter)
	assert.Equal(t, `/collect\?`, rules[1].Trigger.URLFilter)

	assert.Equal(t, converter.ActionTypeIgnorePreviousRules, rules[2].Action.Type)
	assert.Equal(t, []string{"*youtube.com"}, rules[2].Trigger.IfDomain)

	assert.Equal(t, converter.ActionTypeIgnorePreviousRules, rules[3].Action.Type)
	assert.Empty(t, rules[3].Trigger.IfDomain)

	assert.Equal(t, ".ad-slot", rules[4].Action.Selector)
	assert.Equal(t, `img[src*="728x90"]`, rules[5].Action.Selector)
	assert.Equal(t, ".video-ads", rules[6].Action.Selector)
	assert.Equal(t, []string{"*youtube.com"}, rules[6].Trigger.IfDomain)
}

func TestWebKitRules_FiltersMatchLikeSubstrings(t *testing.T) {
	rules := fixture().WebKitRules()
	re := regexp.MustCompile(rules[1].Trigger.URLFilter)
	assert.True(t, re.MatchString("https://x.test/g/collect?v=1"))
	assert.False(t, re.MatchString("https://x.test/g/collectv=1"))
}

func TestWebKitJSON(t *testing.T) {
	data, err := fixture().WebKitJSON()
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 7)
	assert.Contains(t, string(data), `"url-filter": "doubleclick\\.net"`)

	empty := converter.NewExporter(entity.NewRuleSet(entity.RuleTables{}), nil, nil)
	data, err = empty.WebKitJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFilterList(t *testing.T) {
	list := fixture().FilterList()
	assert.Contains(t, list, "\ndoubleclick.net\n")
	assert.Contains(t, list, "\n@@googlevideo.com$domain=youtube.com\n")
	assert.Contains(t, list, "\n@@youtube.com/s/player\n")
	assert.Contains(t, list, "\n##.ad-slot\n")
	assert.Contains(t, list, "\nyoutube.com##.video-ads\n")
}

func TestExport(t *testing.T) {
	site := entity.NewSiteContext("www.youtube.com", entity.ReadyStateComplete, []string{"youtube.com"})

	var buf bytes.Buffer
	require.NoError(t, fixture().Export(&buf, converter.FormatCSS, site))
	assert.Equal(t, ".ad-slot:not([data-adshield-bait]) { display: none !important; }\n.video-ads:not([data-adshield-bait]) { display: none !important; }\n", buf.String())

	buf.Reset()
	require.NoError(t, fixture().Export(&buf, converter.FormatText, site))
	assert.Contains(t, buf.String(), "[Adblock Plus 2.0]")

	assert.Error(t, fixture().Export(&buf, converter.Format("pac"), site))
}
