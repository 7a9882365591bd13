package entity

import "math"

// Rect is the rendered box of an element, in CSS pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the box has no rendered area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// BannerSize is a standard ad creative size.
type BannerSize struct {
	Width  int `json:"width" mapstructure:"width" toml:"width"`
	Height int `json:"height" mapstructure:"height" toml:"height"`
}

// Matches reports whether w x h is within tolerance pixels of the size
// on both axes (strictly less than tolerance).
func (s BannerSize) Matches(w, h, tolerance float64) bool {
	return math.Abs(w-float64(s.Width)) < tolerance && math.Abs(h-float64(s.Height)) < tolerance
}

// MatchBannerSize returns the first size in sizes matching w x h.
func MatchBannerSize(sizes []BannerSize, w, h, tolerance float64) (BannerSize, bool) {
	for _, s := range sizes {
		if s.Matches(w, h, tolerance) {
			return s, true
		}
	}
	return BannerSize{}, false
}

// DefaultBannerSizes are the IAB sizes watched by the sweep.
func DefaultBannerSizes() []BannerSize {
	return []BannerSize{
		{728, 90}, {300, 250}, {160, 600}, {468, 60},
		{970, 250}, {320, 50}, {336, 280}, {300, 600},
		{970, 90}, {320, 100}, {300, 50}, {250, 250},
		{200, 200}, {120, 600},
	}
}
