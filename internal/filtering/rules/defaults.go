// Package rules holds the built-in rule tables and selector lists.
// Everything here is configuration data; behavior lives in the
// classifier and guard packages.
package rules

import "github.com/bnema/adshield/internal/domain/entity"

// DefaultSpecialHosts is the special site and its short domains.
var DefaultSpecialHosts = []string{"youtube.com", "youtube-nocookie.com", "youtu.be"}

// DefaultBypassHosts are pages where the shield never runs (benchmarks).
var DefaultBypassHosts = []string{"browserbench.org", "speedometer"}

var defaultDomains = []string{
	"doubleclick.net", "googlesyndication.com", "googleadservices.com",
	"googletagmanager.com", "google-analytics.com", "pagead2.googlesyndication",
	"adservice.google", "googletagservices.com", "partner.googleadservices",
	"tpc.googlesyndication",
	"amazon-adsystem.com", "aax.amazon",
	"facebook.net/en_us/fbevents", "connect.facebook.net",
	"advmaker", "adroll.com", "taboola.com", "outbrain.com",
	"popads.net", "popcash.net", "mgid.com", "adblade.com",
	"adnxs.com", "adsrvr.org", "ad-delivery", "adform.net",
	"bidswitch.net", "casalemedia.com", "contextweb.com",
	"criteo.com", "criteo.net", "dotomi.com", "eyereturn.com",
	"fastclick.net", "flashtalking.com", "freewheel.tv",
	"gumgum.com", "indexww.com",
	"lijit.com", "mathtag.com", "media.net", "mediamath.com",
	"moatads.com", "mookie1.com", "nativo.com",
	"openx.net", "pubmatic.com", "pulsepoint.com",
	"rfihub.com", "richrelevance.com", "rubiconproject.com",
	"scorecardresearch.com", "sharethrough.com",
	"simpli.fi", "smaato.net", "smartadserver.com",
	"sonobi.com", "spotxchange.com", "steelhousemedia.com",
	"stickyadstv.com", "teads.tv", "tidaltv.com",
	"trafficjunky.com", "tribalfusion.com", "turn.com",
	"undertone.com", "yieldmo.com", "yieldoptimizer.com",
	"zemanta.com", "zergnet.com",
	"2mdn.net", "serving-sys.com", "innovid.com",
	"aniview.com", "springserve.com", "connatix.com",
	"adsafeprotected.com",
	"hotjar.com", "mixpanel.com", "cdn.mxpnl.com",
	"segment.com", "api.segment.io",
	"amplitude.com", "heapanalytics.com", "heap.io",
	"fullstory.com", "mouseflow.com", "crazyegg.com",
	"optimizely.com", "quantserve.com", "chartbeat.com",
	"parsely.com", "matomo.cloud", "piwik.pro", "kissmetrics.com",
	"clarity.ms",
	"newrelic.com", "bam.nr-data.net",
	"stats.wp.com",
	"mc.yandex.ru", "yandex.ru/metrika",
	"top-fwz1.mail.ru",
	"statcounter.com",
	"clicky.com", "static.getclicky.com",
	"woopra.com", "gauges.com", "histats.com",
	"counter.yadro.ru", "liveinternet.ru", "tns-counter.ru",
	"omtrdc.net", "demdex.net", "everesttech.net",
	"2o7.net", "omniture.com",
	"bluekai.com", "exelator.com", "krxd.net",
	"sentry.io", "sentry-cdn.com",
	"bugsnag.com", "d2wy8f7a9ursnm.cloudfront.net",
	"raygun.com", "raygun.io", "rollbar.com",
	"logrocket.com", "cdn.logrocket.io", "cdn.lr-ingest.io",
	"trackjs.com", "errorception.com",
	"airbrake.io", "honeybadger.io", "atatus.com",
	"pixel.facebook.com", "www.facebook.com/tr",
	"analytics.twitter.com", "static.ads-twitter.com",
	"platform.linkedin.com", "snap.licdn.com",
	"sc-static.net", "tr.snapchat.com",
	"analytics.tiktok.com",
	"widgets.pinterest.com", "ct.pinterest.com",
	"metric.gstatic.com", "beacons.gcp.gvt2.com",
	"adsymptotic.com", "plausible.io", "comscore.com",
}

// "/ads/banner" is deliberately absent: banner images under /ads/ are a
// cosmetic (banner) signal, caught by the banner keyword "/ads/".
var defaultPaths = []string{
	"/pagead.js", "/pagead/", "/pagead2.",
	"/ad_status", "/pcs/activeview",
	"/widget/ads", "/ads.js", "/ad.js",
	"/adsbygoogle.js", "/adsbygoogle.",
	"/show_ads", "/show_ad.",
	"/google_ads", "/gpt/pubads",
	"/adsense", "/afs/ads",
	"/gtag/js", "/gtm.js",
	"/analytics.js", "/ga.js",
	"/collect?", "/__utm.",
	"/hotjar", "/sentry.", "/bugsnag.",
	"/rollbar.", "/logrocket.", "/trackjs.",
	"/raygun.", "/mixpanel.", "/segment.",
	"/amplitude.", "/fullstory.", "/crazyegg.",
	"/clarity.", "/optimizely.", "/chartbeat.",
	"/newrelic.", "/metrika/",
	"/fbevents.js", "/fbpixel",
	"/banners/advmaker",
	"/ad_unit", "/ads/flash",
	"/adserver", "/doubleclick", "/adsystem",
}

var defaultBannerKeywords = []string{
	"advmaker", "468x60", "728x90", "300x250", "160x600",
	"970x250", "320x50", "336x280", "300x600", "970x90", "320x100",
	"ad_banner", "ad-banner", "ad_image", "banner_ad", "banner-ad",
	"/ads/", "/ad/", "/banner/", "/banners/", "advert", "sponsor",
	"_ad.", "-ad.", "_ads.", "-ads.", "_banner.", "-banner.",
	"adsense", "adtech", "adx.",
	"flash_ad", "flashad", "swf_ad", "ad.swf", "banner.swf",
	"ad.gif", "ad.jpg", "ad.png", "banner.gif", "banner.jpg", "banner.png",
	"adv.", "advs.", "promo.", "promotional",
	"impression", "beacon", "pixel", "1x1.", "spacer.",
}

var defaultAllow = []string{
	"youtube.com/s/player", "youtube.com/iframe_api",
	"youtube.com/get_video_info", "youtube.com/youtubei",
	"youtube.com/api/", "youtube.com/ptracking",
	"youtube.com/_/",
	"youtube.com/generate_204", "youtube.com/sw.js",
	"youtube.com/videoplayback", "youtube.com/watch",
	"youtube.com/embed",
	"ytimg.com", "yt3.googleusercontent.com",
	"googlevideo.com", "ggpht.com",
	"accounts.google.com", "apis.google.com",
	"fonts.googleapis.com", "fonts.gstatic.com",
	"gstatic.com/cv", "gstatic.com/og",
	"www.gstatic.com", "ssl.gstatic.com",
}

var defaultSpecialFirstParty = []string{
	"youtube.com", "youtube-nocookie.com", "googlevideo.com",
	"ytimg.com", "ggpht.com", "gstatic.com",
}

// DefaultTables returns a fresh copy of the built-in rule tables.
func DefaultTables() entity.RuleTables {
	return entity.RuleTables{
		Domains:           clone(defaultDomains),
		Paths:             clone(defaultPaths),
		BannerKeywords:    clone(defaultBannerKeywords),
		Allow:             clone(defaultAllow),
		SpecialFirstParty: clone(defaultSpecialFirstParty),
	}
}

// Default builds the built-in RuleSet.
func Default() *entity.RuleSet {
	return entity.NewRuleSet(DefaultTables())
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
