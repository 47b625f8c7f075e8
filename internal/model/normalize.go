package model

import (
	"encoding/json"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/xid"
)

// Defaults applied by NormalizeScreen. Changing these changes what every
// incomplete stored screen renders as, so treat them as part of the schema.
const (
	DefaultScreenTitle   = "Untitled"
	DefaultBrandSubtitle = "Quick links"
	DefaultLogoType      = "emoji"
	DefaultLogoValue     = "✨"
	DefaultLinkLabel     = "Link"
	DefaultLinkURL       = "#"
	DefaultLinkIconType  = "emoji"
	DefaultLinkIconValue = "🔗"
)

// slugAlphabet deliberately excludes uppercase so generated slugs survive the
// lowercase pass in slugify unchanged.
const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewSlugToken returns a short random URL-safe token used when a screen is
// saved without a slug.
func NewSlugToken() string {
	return gonanoid.MustGenerate(slugAlphabet, 6)
}

// NewSlugSuffix returns the short random token appended to a slug that
// collides with an existing one.
func NewSlugSuffix() string {
	return gonanoid.MustGenerate(slugAlphabet, 4)
}

// DefaultTheme returns the fixed base theme every screen starts from.
// Input themes override these values at the top level only.
func DefaultTheme() Theme {
	return Theme{
		TextColor:        "#ffffff",
		BgType:           "color",
		BgValue:          "#0f172a",
		BgOverlayOpacity: 0.35,
		BgOverlayColor:   "#000000",
		BgBlurPx:         0,
		BgZoom:           1.0,
		CardColor:        "rgba(255,255,255,0.10)",
		CardBorder:       "rgba(255,255,255,0.12)",
		CardRadius:       16,
		BtnBg:            "rgba(255,255,255,0.12)",
		BtnText:          "#ffffff",
		BtnBorder:        "rgba(255,255,255,0.14)",
		BtnRadius:        16,
	}
}

// NormalizeScreen turns a loosely-typed screen record into a fully-populated
// Screen. It is total over arbitrary input and idempotent: normalizing the
// output of a previous normalization (via AsRaw) changes nothing. A record
// that already carries an id and slug is a fixed point; only missing ids and
// slugs receive fresh random values.
//
// The steps, in order:
//  1. Default id, folder_id, slug and title.
//  2. Migrate a legacy top-level brand into theme.brand when the theme has none.
//  3. Merge the input theme over DefaultTheme: present keys win (an explicit
//     numeric zero included), absent keys fall back.
//  4. Fill the brand (title falls back to the screen title) and mirror it onto
//     both theme.brand and the top-level convenience field.
//  5. Fill per-link defaults, preserving order and dropping nothing.
func NormalizeScreen(raw RawScreen) Screen {
	s := Screen{
		ID:       raw.ID,
		FolderID: orDefault(raw.FolderID, DefaultFolderID),
		Slug:     raw.Slug,
		Title:    orDefault(raw.Title, DefaultScreenTitle),
	}
	if s.ID == "" {
		s.ID = xid.New().String()
	}
	if s.Slug == "" {
		s.Slug = NewSlugToken()
	}

	// Legacy shape: brand stored directly on the screen. Honor it only when
	// the theme carries no brand of its own.
	brandJSON := raw.Theme.Brand
	if len(brandJSON) == 0 && len(raw.Brand) > 0 {
		brandJSON = raw.Brand
	}
	brand := decodeBrand(brandJSON)
	brand.Title = orDefault(brand.Title, s.Title)
	brand.Subtitle = orDefault(brand.Subtitle, DefaultBrandSubtitle)
	brand.LogoType = orDefault(brand.LogoType, DefaultLogoType)
	brand.LogoValue = orDefault(brand.LogoValue, DefaultLogoValue)

	theme := DefaultTheme()
	rt := raw.Theme
	theme.TextColor = orDefault(rt.TextColor, theme.TextColor)
	theme.BgType = orDefault(rt.BgType, theme.BgType)
	theme.BgValue = orDefault(rt.BgValue, theme.BgValue)
	theme.BgOverlayOpacity = floatOr(rt.BgOverlayOpacity, theme.BgOverlayOpacity)
	theme.BgOverlayColor = orDefault(rt.BgOverlayColor, theme.BgOverlayColor)
	theme.BgBlurPx = floatOr(rt.BgBlurPx, theme.BgBlurPx)
	theme.BgZoom = floatOr(rt.BgZoom, theme.BgZoom)
	theme.CardColor = orDefault(rt.CardColor, theme.CardColor)
	theme.CardBorder = orDefault(rt.CardBorder, theme.CardBorder)
	theme.CardRadius = floatOr(rt.CardRadius, theme.CardRadius)
	theme.BtnBg = orDefault(rt.BtnBg, theme.BtnBg)
	theme.BtnText = orDefault(rt.BtnText, theme.BtnText)
	theme.BtnBorder = orDefault(rt.BtnBorder, theme.BtnBorder)
	theme.BtnRadius = floatOr(rt.BtnRadius, theme.BtnRadius)

	theme.Brand = brand
	s.Theme = theme
	s.Brand = brand

	s.Links = make([]Link, 0, len(raw.Links))
	for _, rawLink := range raw.Links {
		var l Link
		// A wrongly-typed entry decodes to the zero Link and picks up every
		// default below. Entries are never dropped — order is display order.
		_ = json.Unmarshal(rawLink, &l)
		l.Label = orDefault(l.Label, DefaultLinkLabel)
		l.URL = orDefault(l.URL, DefaultLinkURL)
		l.IconType = orDefault(l.IconType, DefaultLinkIconType)
		l.IconValue = orDefault(l.IconValue, DefaultLinkIconValue)
		if l.Style == nil {
			l.Style = map[string]any{}
		}
		s.Links = append(s.Links, l)
	}

	return s
}

// AsRaw converts a typed Screen back into the loose shape NormalizeScreen
// accepts. The store uses it to re-run normalization over screens decoded
// from disk, and tests use it to check idempotence.
func (s Screen) AsRaw() RawScreen {
	raw := RawScreen{
		ID:       s.ID,
		FolderID: s.FolderID,
		Slug:     s.Slug,
		Title:    s.Title,
		Theme: RawTheme{
			TextColor:        s.Theme.TextColor,
			BgType:           s.Theme.BgType,
			BgValue:          s.Theme.BgValue,
			BgOverlayOpacity: fptr(s.Theme.BgOverlayOpacity),
			BgOverlayColor:   s.Theme.BgOverlayColor,
			BgBlurPx:         fptr(s.Theme.BgBlurPx),
			BgZoom:           fptr(s.Theme.BgZoom),
			CardColor:        s.Theme.CardColor,
			CardBorder:       s.Theme.CardBorder,
			CardRadius:       fptr(s.Theme.CardRadius),
			BtnBg:            s.Theme.BtnBg,
			BtnText:          s.Theme.BtnText,
			BtnBorder:        s.Theme.BtnBorder,
			BtnRadius:        fptr(s.Theme.BtnRadius),
		},
	}
	if s.Theme.Brand != (Brand{}) {
		raw.Theme.Brand, _ = json.Marshal(s.Theme.Brand)
	}
	if s.Brand != (Brand{}) {
		raw.Brand, _ = json.Marshal(s.Brand)
	}
	if s.Links != nil {
		raw.Links = make([]json.RawMessage, 0, len(s.Links))
		for _, l := range s.Links {
			entry, _ := json.Marshal(l)
			raw.Links = append(raw.Links, entry)
		}
	}
	return raw
}

// decodeBrand decodes a brand object, tolerating absent or wrongly-typed
// input by returning the zero Brand.
func decodeBrand(data json.RawMessage) Brand {
	var b Brand
	if len(data) == 0 {
		return b
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return Brand{}
	}
	return b
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// floatOr resolves an optional numeric theme field: nil means the key was
// absent and the default applies; a non-nil value wins even when it is zero.
func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func fptr(v float64) *float64 {
	return &v
}
