// Package countermeasure installs script-realm stubs for tracker and ad
// SDK globals, defeats ad-block detectors and plants bait elements.
package countermeasure

import "github.com/bnema/adshield/internal/domain/entity"

func noop(name string) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubNoop}
}

func value(name string, v any) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubValue, Value: v}
}

func object(name string, members ...entity.Stub) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubObject, Members: members}
}

func fnObject(name string, members ...entity.Stub) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubFunctionObject, Members: members}
}

func returns(name string, v any) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubReturns, Value: v}
}

func self(name string) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubSelf}
}

func factory(name string, members ...entity.Stub) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubFactory, Members: members}
}

func shared(name string, members ...entity.Stub) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubShared, Members: members}
}

func invokeArg(name string, arg int) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubInvokeArg, Arg: arg}
}

func onEvent(name string, events ...string) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubInvokeOnEvent, Value: events}
}

func queue(name string) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubCommandQueue}
}

func sink(name string) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubSinkArray}
}

func promise(name string, v any) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubPromise, Value: v}
}

func alias(name, target string) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubAlias, Value: target}
}

func returnsGlobal(name, target string) entity.Stub {
	return entity.Stub{Name: name, Kind: entity.StubReturnsGlobal, Value: target}
}

func generic(stubs ...entity.Stub) []entity.Stub {
	for i := range stubs {
		stubs[i].Scope = entity.ScopeGeneric
	}
	return stubs
}

func keep(s entity.Stub) entity.Stub {
	s.Mode = entity.ModeKeep
	return s
}

func merge(s entity.Stub) entity.Stub {
	s.Mode = entity.ModeMerge
	return s
}

func noops(names ...string) []entity.Stub {
	out := make([]entity.Stub, len(names))
	for i, n := range names {
		out[i] = noop(n)
	}
	return out
}

func selfs(names ...string) []entity.Stub {
	out := make([]entity.Stub, len(names))
	for i, n := range names {
		out[i] = self(n)
	}
	return out
}

// DefaultCatalog returns the built-in stubs: analytics and error reporting
// on every site, ad SDKs and detector defeats on generic sites only.
func DefaultCatalog() []entity.Stub {
	var out []entity.Stub
	out = append(out, Analytics()...)
	out = append(out, ErrorReporting()...)
	out = append(out, AdSDKs()...)
	out = append(out, Detectors()...)
	return out
}

// Analytics covers tag managers, analytics and session recording globals.
func Analytics() []entity.Stub {
	return []entity.Stub{
		noop("ga"),
		noop("gtag"),
		keep(sink("dataLayer")),
		fnObject("fbq", noop("callMethod"), sink("queue"), value("loaded", true), value("version", "2.0")),
		alias("_fbq", "fbq"),
		noop("hj"),
		noop("ym"),
		object("Ya", factory("Metrika", noops("reachGoal", "hit", "params")...), factory("Metrika2", noops("reachGoal", "hit", "params")...)),
		object("mixpanel", noops("init", "track", "identify", "register", "people", "track_links", "time_event", "reset")...),
		object("analytics", noops("track", "identify", "page", "group", "alias", "reset", "ready", "load")...),
		noop("clarity"),
		object("heap", noops("track", "identify", "addUserProperties", "addEventProperties", "load")...),
		object("amplitude", factory("getInstance", noops("init", "logEvent", "setUserId", "setUserProperties", "identify")...)),
		fnObject("FS", noops("identify", "event", "setUserVars", "shutdown", "restart")...),
		keep(sink("optimizely")),
		noop("twq"),
		noop("pintrk"),
		noop("lintrk"),
		sink("_linkedin_data_partner_ids"),
		sink("COMSCORE"),
		sink("_comscore"),
		noop("Intercom"),
		object("drift", noops("on", "identify", "track", "load", "api")...),
		sink("$crisp"),
		sink("_hmt"),
		sink("_paq"),
		sink("_gaq"),
		fnObject("__tcfapi"),
		noop("__cmp"),
		object("_hsq", noop("push")),
		noop("uetq"),
		noop("snaptr"),
		noop("ttq"),
		object("Yandex", noop("Metrika")),
	}
}

// ErrorReporting covers crash and session-replay reporters.
func ErrorReporting() []entity.Stub {
	return []entity.Stub{
		object("Sentry", append(noops("init", "captureException", "captureMessage", "configureScope", "setUser", "setTag", "setExtra", "addBreadcrumb", "withScope"), factory("getCurrentHub", noops("captureException", "configureScope")...))...),
		object("Bugsnag", append(noops("start", "notify", "leaveBreadcrumb", "setUser"), invokeArg("init", 0))...),
		object("Rollbar", noops("init", "error", "warning", "info", "debug", "critical", "configure")...),
		object("LogRocket", noops("init", "identify", "track", "captureException", "getSessionURL")...),
		fnObject("trackJs", noops("track", "configure", "addMetadata")...),
		alias("TrackJS", "trackJs"),
		object("newrelic", noops("addPageAction", "setCustomAttribute", "noticeError", "setErrorHandler", "finished", "addToTrace")...),
		object("NREUM", object("info"), object("init"), object("loader_config")),
	}
}

var slotMethods = selfs(
	"addService", "setTargeting", "setCollapseEmptyDiv", "defineSizeMapping",
	"setClickUrl", "setForceSafeFrame", "setSafeFrameConfig", "clearTargeting",
	"setCategoryExclusion", "updateTargetingFromMap",
)

func slot(name string) entity.Stub {
	members := append([]entity.Stub{}, slotMethods...)
	members = append(members,
		returns("getSlotElementId", ""),
		returns("getAdUnitPath", ""),
		returns("getTargeting", []any{}),
		returns("getTargetingKeys", []any{}),
		returns("getResponseInformation", nil),
	)
	return shared(name, members...)
}

func googletag() entity.Stub {
	pubads := append(selfs(
		"addEventListener", "removeEventListener", "enableSingleRequest",
		"collapseEmptyDivs", "disableInitialLoad", "enableAsyncRendering",
		"setTargeting", "clearTargeting", "setRequestNonPersonalizedAds",
		"setPrivacySettings", "enableLazyLoad", "setCentering", "refresh",
		"clear", "updateCorrelator", "setForceSafeFrame", "setPublisherProvidedId",
		"enableVideoAds", "set",
	), returns("getSlots", []any{}), returns("getTargeting", []any{}), returns("isInitialLoadDisabled", false))

	return merge(object("googletag",
		value("apiReady", true),
		value("pubadsReady", true),
		queue("cmd"),
		slot("defineSlot"),
		slot("defineOutOfPageSlot"),
		shared("pubads", pubads...),
		shared("companionAds", selfs("setRefreshUnfilledSlots", "addEventListener")...),
		shared("content", selfs("setContent", "addEventListener")...),
		factory("sizeMapping", append(selfs("addSize"), returns("build", []any{}))...),
		noop("enableServices"),
		noop("display"),
		returns("destroySlots", true),
		noop("openConsole"),
		returns("getVersion", ""),
		noop("setAdIframeTitle"),
	))
}

func ima() entity.Stub {
	return object("google.ima",
		factory("AdDisplayContainer", noops("initialize", "destroy")...),
		factory("AdsLoader", append(noops("addEventListener", "removeEventListener", "requestAds", "contentComplete", "destroy"), returns("getSettings", map[string]any{}))...),
		factory("AdsRequest"),
		factory("AdsRenderingSettings"),
		object("AdsManagerLoadedEvent", object("Type", value("ADS_MANAGER_LOADED", "adsManagerLoaded"))),
		object("AdErrorEvent", object("Type", value("AD_ERROR", "adError"))),
		object("AdEvent", object("Type",
			value("CONTENT_PAUSE_REQUESTED", "contentPauseRequested"),
			value("CONTENT_RESUME_REQUESTED", "contentResumeRequested"),
			value("ALL_ADS_COMPLETED", "allAdsCompleted"),
			value("LOADED", "loaded"),
			value("STARTED", "start"),
			value("COMPLETE", "complete"),
		)),
		object("ViewMode", value("NORMAL", "normal"), value("FULLSCREEN", "fullscreen")),
		object("settings", noops("setVpaidMode", "setLocale", "setDisableCustomPlaybackForIOS10Plus", "setPlayerType", "setPlayerVersion")...),
		object("ImaSdkSettings", object("VpaidMode", value("DISABLED", 0), value("ENABLED", 1), value("INSECURE", 2))),
		value("VERSION", "3.0.0"),
	)
}

// AdSDKs covers publisher ad tags, header bidding and native widgets.
func AdSDKs() []entity.Stub {
	return generic(
		googletag(),
		keep(object("adsbygoogle", value("loaded", true), noop("push"))),
		ima(),
		object("amznads", append(noops("getAds", "setTargeting", "renderAd", "doGetAdsAsync", "setTargetingForGPTAsync"), returns("getTargeting", map[string]any{}))...),
		fnObject("apstag", append(noops("init", "setDisplayBids", "targetingKeys"), invokeArg("fetchBids", 1))...),
		sink("_taboola"),
		object("OBR", object("extern", noops("researchWidget", "refreshWidget", "callClick")...)),
		merge(object("pbjs", append(
			noops("requestBids", "setConfig", "addAdUnits", "setTargetingForGPTAsync", "enableAnalytics", "onEvent", "renderAd", "removeAdUnit"),
			queue("que"),
		)...)),
		sink("_mgq"),
		value("google_ad_client", ""),
		value("google_ad_slot", ""),
		value("google_ad_width", 0),
		value("google_ad_height", 0),
		value("google_ad_format", ""),
		value("google_adtest", "off"),
		value("google_ad_status", 1),
		value("google_ad_region", ""),
		noop("google_render_ad"),
		promise("__uspapi", nil),
	)
}

func detectorMethods() []entity.Stub {
	return []entity.Stub{
		onEvent("on", "notDetected", "adNotDetected"),
		invokeArg("onNotDetected", 0),
		self("onDetected"),
		self("check"),
		self("emitEvent"),
		self("clearEvent"),
		self("setOption"),
		self("setOptions"),
		returns("getStatus", false),
	}
}

// Detectors defeats ad-block detection libraries and flag checks.
func Detectors() []entity.Stub {
	return generic(
		object("fuckAdBlock", detectorMethods()...),
		object("blockAdBlock", detectorMethods()...),
		object("sniffAdBlock", detectorMethods()...),
		returnsGlobal("FuckAdBlock", "fuckAdBlock"),
		returnsGlobal("BlockAdBlock", "blockAdBlock"),
		value("adBlockEnabled", false),
		value("adBlockDetected", false),
		value("adsBlocked", false),
		value("canRunAds", true),
		value("isAdBlockActive", false),
		value("__ads_blocked", false),
		value("adBlockDisabled", true),
	)
}
