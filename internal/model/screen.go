package model

import "encoding/json"

// Screen is a single shareable landing page: a theme plus an ordered list of
// links, addressed publicly by its slug.
//
// The struct tags use snake_case because the persisted document and the
// frontend both speak that dialect — the JSON on disk IS the schema, and older
// documents must keep decoding as the shape evolves.
//
// Brand appears twice on purpose. The canonical copy lives in Theme.Brand;
// the top-level Brand field is a convenience mirror for templates so they can
// write .Brand.Title instead of .Theme.Brand.Title. NormalizeScreen keeps the
// two equal.
type Screen struct {
	ID       string `json:"id"`
	FolderID string `json:"folder_id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Theme    Theme  `json:"theme"`
	Links    []Link `json:"links"`
	Brand    Brand  `json:"brand"`
}

// Theme holds the visual styling of a screen. Every field has a fixed default
// (see DefaultTheme) so templates never have to null-check.
type Theme struct {
	TextColor        string  `json:"text_color"`
	Brand            Brand   `json:"brand"`
	BgType           string  `json:"bg_type"`
	BgValue          string  `json:"bg_value"`
	BgOverlayOpacity float64 `json:"bg_overlay_opacity"`
	BgOverlayColor   string  `json:"bg_overlay_color"`
	BgBlurPx         float64 `json:"bg_blur_px"`
	BgZoom           float64 `json:"bg_zoom"`
	CardColor        string  `json:"card_color"`
	CardBorder       string  `json:"card_border"`
	CardRadius       float64 `json:"card_radius"`
	BtnBg            string  `json:"btn_bg"`
	BtnText          string  `json:"btn_text"`
	BtnBorder        string  `json:"btn_border"`
	BtnRadius        float64 `json:"btn_radius"`
}

// Brand is the logo/title/subtitle block shown at the top of a rendered screen.
// LogoType is "emoji", "asset" or "image_url"; LogoValue is the emoji itself or
// a URL depending on the type.
type Brand struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	LogoType  string `json:"logo_type"`
	LogoValue string `json:"logo_value"`
}

// Link is one entry of a screen. Order within Screen.Links is display order.
type Link struct {
	Label     string         `json:"label"`
	URL       string         `json:"url"`
	IconType  string         `json:"icon_type"`
	IconValue string         `json:"icon_value"`
	Style     map[string]any `json:"style"`
}

// RawScreen is the loosely-typed shape accepted from clients and from old
// documents. Screens have been saved by several schema versions over time, so
// the decode side must tolerate missing fields, a brand stored at the top
// level instead of inside the theme, and wrongly-typed brand/link entries.
//
// WHY json.RawMessage FOR BRAND AND LINKS?
// Decoding those straight into typed structs would reject a payload where an
// old client sent e.g. "brand": "acme". RawMessage defers decoding so
// NormalizeScreen can attempt it per-field and fall back to defaults instead
// of failing the whole request.
type RawScreen struct {
	ID       string            `json:"id"`
	FolderID string            `json:"folder_id"`
	Slug     string            `json:"slug"`
	Title    string            `json:"title"`
	Theme    RawTheme          `json:"theme"`
	Links    []json.RawMessage `json:"links"`
	Brand    json.RawMessage   `json:"brand"` // legacy location, migrated into Theme.Brand
}

// RawTheme mirrors Theme but keeps the nested brand undecoded. A present key
// overrides the default, an absent key falls back to DefaultTheme. For the
// numeric fields that distinction needs pointers: zero is a legitimate value
// (overlay off, square corners, no zoom) and must survive normalization, so
// nil means "absent" and a non-nil zero means "explicitly zero". Empty
// strings still fall back — no theme field has a meaningful empty string.
type RawTheme struct {
	TextColor        string          `json:"text_color"`
	Brand            json.RawMessage `json:"brand"`
	BgType           string          `json:"bg_type"`
	BgValue          string          `json:"bg_value"`
	BgOverlayOpacity *float64        `json:"bg_overlay_opacity"`
	BgOverlayColor   string          `json:"bg_overlay_color"`
	BgBlurPx         *float64        `json:"bg_blur_px"`
	BgZoom           *float64        `json:"bg_zoom"`
	CardColor        string          `json:"card_color"`
	CardBorder       string          `json:"card_border"`
	CardRadius       *float64        `json:"card_radius"`
	BtnBg            string          `json:"btn_bg"`
	BtnText          string          `json:"btn_text"`
	BtnBorder        string          `json:"btn_border"`
	BtnRadius        *float64        `json:"btn_radius"`
}
