package rules

// AdSelectors are the generic cosmetic selectors for ad containers.
var AdSelectors = []string{
	".ad-unit", ".ad-zone", ".ad-area", ".ad-wrap", ".ad-wrapper",
	".ad-container", ".ad-holder", ".ad-frame", ".ad-space",
	".ad-slot", ".ad-block", ".ad-banner", ".ad-box",
	".adbox", ".adsbox", ".adsbygoogle",
	".banner-ads", ".banner_ads",
	".textads", ".text-ads", ".text_ads",
	"#ads", "#ad-container", "#ad-wrapper",
	".advertisement", ".advertorial", ".afs_ads", ".textad",
	"ins.adsbygoogle",
	`iframe[src*="doubleclick"]`, `iframe[src*="googlesyndication"]`,
	`iframe[src*="pagead"]`, `iframe[id*="google_ads"]`, `iframe[name*="google_ads"]`,
	"div[data-ad-slot]", "div[data-google-query-id]", "div[data-ad]",
	"div[data-ad-client]", `div[class*="content_ad"]`, `div[class*="sponsor"]`,
	`[id^="google_ads"]`, `[id^="div-gpt-ad"]`,
	`a[href*="/ad/"]`,
	`object[data*="banner"]`, `object[type*="shockwave-flash"]`,
	`embed[src*="banner"]`, `embed[type*="shockwave-flash"]`,
	`img[src*="advmaker"]`, `img[src*="/banners/"]`,
	`img[src*="/ads/"]`, `img[src*="468x60"]`,
	`img[src*="728x90"]`, `img[src*="300x250"]`,
	`img[src*="pixel"]`, `img[src*="beacon"]`,
	`img[width="1"][height="1"]`,
}

// SpecialSiteSelectors target the special site's own ad renderers.
var SpecialSiteSelectors = []string{
	".video-ads", ".ytp-ad-module",
	".ytp-ad-overlay-container", ".ytp-ad-text-overlay",
	".ytp-ad-player-overlay", ".ytp-ad-image-overlay",
	"ytd-ad-slot-renderer",
	"ytd-rich-item-renderer[is-ad]",
	"ytd-in-feed-ad-layout-renderer",
	"ytd-promoted-sparkles-web-renderer",
	"ytd-promoted-video-renderer",
	"ytd-display-ad-renderer",
	"ytd-companion-slot-renderer",
	"#player-ads",
	`#panels > ytd-engagement-panel-section-list-renderer[target-id="engagement-panel-ads"]`,
	"ytd-action-companion-ad-renderer",
	"#above-the-fold #panels ytd-ads-engagement-panel-content-renderer",
	"ytd-banner-promo-renderer",
	"ytd-statement-banner-renderer",
	"#masthead-ad",
	".ytd-mealbar-promo-renderer",
	"ytd-popup-container ytd-mealbar-promo-renderer",
	"ytd-merch-shelf-renderer",
	"ytd-brand-video-singleton-renderer",
	"ytd-brand-video-shelf-renderer",
}

// ContainerSelectors hide wrappers of plugin content. They are stylesheet
// only; the guard handles the same case by walking up from the plugin.
var ContainerSelectors = []string{
	"div:has(> object)", "div:has(> embed)", `div:has(> iframe[src*="ads"])`,
}

// SpecialFeedSelectors are feed items scanned for sponsored labels.
var SpecialFeedSelectors = []string{
	"ytd-rich-item-renderer", "ytd-video-renderer", "ytd-compact-video-renderer",
}

// SponsoredMarkers are upper-cased labels marking a sponsored feed item.
var SponsoredMarkers = []string{"PATROCINADO", "SPONSORED", "PUBLICIDAD", "GESPONSERT", "SPONSORISÉ"}

// EnforcementSelectors match the special site's adblock enforcement dialogs.
var EnforcementSelectors = []string{
	"ytd-enforcement-message-view-model",
	"tp-yt-paper-dialog:has(ytd-enforcement-message-view-model)",
	"#dialog.ytd-enforcement-message-view-model",
	"ytd-ads-enforcement-message-view-model",
}

// EnforcementBackdrops are overlays left behind by enforcement dialogs.
var EnforcementBackdrops = []string{"tp-yt-iron-overlay-backdrop"}

// EnforcementDialogs are generic dialogs hidden only when their text
// contains one of EnforcementKeywords.
var EnforcementDialogs = []string{"tp-yt-paper-dialog", "ytd-mealbar-promo-renderer", "#enforcement-message"}

// EnforcementKeywords are lower-cased phrases of adblock enforcement dialogs.
var EnforcementKeywords = []string{
	"ad blocker", "ad blockers", "ad blocking", "allow youtube ads",
	"bloqueador", "permite los anuncios", "desactiva", "incumplen", "violate",
}

// AdLabels are whole-text labels marking an ad slot.
var AdLabels = []string{
	"advertisement", "sponsored", "ad", "ads",
	"patrocinado", "publicidad", "anuncio",
	"anzeige", "werbung", "publicité", "pubblicità", "реклама",
}

// Player selectors for the special-site inline video ad state machine.
var (
	PlayerSelector     = "#movie_player"
	VideoSelector      = "video"
	AdShowingClasses   = []string{"ad-showing", "ad-interrupting"}
	AdMarkerSelectors  = []string{".ytp-ad-player-overlay", ".ytp-ad-text", ".ad-interrupting"}
	SkipButtonSelector = ".ytp-ad-skip-button, .ytp-ad-skip-button-modern, .ytp-skip-ad-button, " +
		".ytp-ad-skip-button-slot, .ytp-ad-skip-button-container button"
	OverlayCloseSelector = ".ytp-ad-overlay-close-button"
)

// AccelerationRates are tried in order when an ad cannot be skipped.
var AccelerationRates = []float64{16, 8, 4}

// PlayerEndpoints are the special-site API paths whose JSON is sanitized.
var PlayerEndpoints = []string{"/youtubei/v1/player", "/youtubei/v1/next", "/youtubei/v1/browse"}

// TrappedGlobals are the inline bootstrap payloads sanitized on assignment.
var TrappedGlobals = []string{"ytInitialPlayerResponse", "ytInitialData"}

// BaitAttribute marks planted decoys. Hiding rules never match elements
// carrying it.
const BaitAttribute = "data-adshield-bait"

// BaitClasses are the decoy class names created for adblock detectors.
var BaitClasses = []string{
	"ad_banner", "ad-banner", "ad_wrapper", "adsbox",
	"ad-placeholder", "ad-unit", "ad-slot", "banner_ad",
	"pub_300x250", "pub_728x90", "textad", "sponsoredAd",
}
