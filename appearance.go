// FILE: shelldeck/settings/appearance.go
package settings

import (
	"os"

	"github.com/tidwall/gjson"
)

// Appearance holds the visual settings of a profile. Every profile owns a
// default appearance whose keys live inline on the profile object, and may
// own an unfocused appearance parsed from a nested "unfocusedAppearance"
// object. An unfocused appearance additionally inherits from its own
// profile's default appearance, so unset keys fall back to the focused
// look before consulting other ancestors.
type Appearance struct {
	parents []*Appearance
	origin  Origin

	colorSchemeName            Field[string]
	foreground                 Field[string]
	background                 Field[string]
	selectionBackground        Field[string]
	cursorColor                Field[string]
	cursorShape                Field[string]
	cursorHeight               Field[int]
	backgroundImagePath        Field[string]
	backgroundImageOpacity     Field[float64]
	backgroundImageStretchMode Field[string]
	retroTerminalEffect        Field[bool]
}

func newAppearance(origin Origin) *Appearance {
	return &Appearance{origin: origin}
}

func appearanceParents(a *Appearance) []*Appearance { return a.parents }

// insertParent adds a lower-priority appearance at the given position.
func (a *Appearance) insertParent(index int, parent *Appearance) {
	a.parents = insertAt(a.parents, index, parent)
}

// Origin reports which layer produced this appearance object.
func (a *Appearance) Origin() Origin { return a.origin }

func (a *Appearance) layerJSON(json gjson.Result) error {
	if err := decodeField(json, "colorScheme", &a.colorSchemeName); err != nil {
		return err
	}
	if err := decodeField(json, "foreground", &a.foreground); err != nil {
		return err
	}
	if err := decodeField(json, "background", &a.background); err != nil {
		return err
	}
	if err := decodeField(json, "selectionBackground", &a.selectionBackground); err != nil {
		return err
	}
	if err := decodeField(json, "cursorColor", &a.cursorColor); err != nil {
		return err
	}
	if err := decodeField(json, "cursorShape", &a.cursorShape); err != nil {
		return err
	}
	if err := decodeField(json, "cursorHeight", &a.cursorHeight); err != nil {
		return err
	}
	if err := decodeField(json, "backgroundImage", &a.backgroundImagePath); err != nil {
		return err
	}
	if err := decodeField(json, "backgroundImageOpacity", &a.backgroundImageOpacity); err != nil {
		return err
	}
	if err := decodeField(json, "backgroundImageStretchMode", &a.backgroundImageStretchMode); err != nil {
		return err
	}
	return decodeField(json, "experimental.retroTerminalEffect", &a.retroTerminalEffect)
}

// emitJSON writes the locally-set appearance keys onto doc.
func (a *Appearance) emitJSON(doc string) string {
	doc = setIfString(doc, "colorScheme", &a.colorSchemeName)
	doc = setIfString(doc, "foreground", &a.foreground)
	doc = setIfString(doc, "background", &a.background)
	doc = setIfString(doc, "selectionBackground", &a.selectionBackground)
	doc = setIfString(doc, "cursorColor", &a.cursorColor)
	doc = setIfString(doc, "cursorShape", &a.cursorShape)
	doc = setIfInt(doc, "cursorHeight", &a.cursorHeight)
	doc = setIfString(doc, "backgroundImage", &a.backgroundImagePath)
	doc = setIfFloat(doc, "backgroundImageOpacity", &a.backgroundImageOpacity)
	doc = setIfString(doc, "backgroundImageStretchMode", &a.backgroundImageStretchMode)
	doc = setIfBool(doc, "experimental.retroTerminalEffect", &a.retroTerminalEffect)
	return doc
}

// ColorSchemeName resolves the effective scheme name for this appearance.
func (a *Appearance) ColorSchemeName() string {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.colorSchemeName }, "")
}

// HasColorSchemeName reports whether the scheme name is set locally.
func (a *Appearance) HasColorSchemeName() bool { return a.colorSchemeName.IsSet() }

// SetColorSchemeName sets the scheme name on this appearance.
func (a *Appearance) SetColorSchemeName(name string) { a.colorSchemeName.Set(name) }

// ClearColorSchemeName removes the local scheme name so rendering falls
// back to the built-in default scheme.
func (a *Appearance) ClearColorSchemeName() { a.colorSchemeName.Clear() }

// ColorSchemeNameOverrideSource reports which appearance in the ancestry
// supplies the effective scheme name, or nil if it is unset everywhere.
func (a *Appearance) ColorSchemeNameOverrideSource() *Appearance {
	_, src, ok := resolveField(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.colorSchemeName })
	if !ok {
		return nil
	}
	return src
}

// Foreground resolves the effective foreground color.
func (a *Appearance) Foreground() string {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.foreground }, "")
}

// Background resolves the effective background color.
func (a *Appearance) Background() string {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.background }, "")
}

// SelectionBackground resolves the effective selection background color.
func (a *Appearance) SelectionBackground() string {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.selectionBackground }, "")
}

// CursorColor resolves the effective cursor color.
func (a *Appearance) CursorColor() string {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.cursorColor }, "")
}

// CursorShape resolves the effective cursor shape.
func (a *Appearance) CursorShape() string {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.cursorShape }, "bar")
}

// CursorHeight resolves the effective cursor height percentage.
func (a *Appearance) CursorHeight() int {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[int] { return &n.cursorHeight }, 20)
}

// BackgroundImagePath resolves the effective background image path, with
// environment variables unexpanded.
func (a *Appearance) BackgroundImagePath() string {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.backgroundImagePath }, "")
}

// ExpandedBackgroundImagePath is BackgroundImagePath with environment
// variables expanded.
func (a *Appearance) ExpandedBackgroundImagePath() string {
	return os.ExpandEnv(a.BackgroundImagePath())
}

// ClearBackgroundImagePath removes the local background image path.
func (a *Appearance) ClearBackgroundImagePath() { a.backgroundImagePath.Clear() }

// BackgroundImageOpacity resolves the effective background image opacity.
func (a *Appearance) BackgroundImageOpacity() float64 {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[float64] { return &n.backgroundImageOpacity }, 1.0)
}

// BackgroundImageStretchMode resolves the effective stretch mode.
func (a *Appearance) BackgroundImageStretchMode() string {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.backgroundImageStretchMode }, "uniformToFill")
}

// RetroTerminalEffect resolves the retro effect toggle.
func (a *Appearance) RetroTerminalEffect() bool {
	return resolveOr(a, appearanceParents, func(n *Appearance) *Field[bool] { return &n.retroTerminalEffect }, false)
}

// copyAppearance clones the local fields of an appearance without its
// parent links; callers rewire parents to match the destination graph.
func copyAppearance(src *Appearance) *Appearance {
	dup := *src
	dup.parents = nil
	return &dup
}

// FontConfig holds the font settings of a profile, inheritable alongside
// the profile itself.
type FontConfig struct {
	parents []*FontConfig
	origin  Origin

	fontFace     Field[string]
	fontSize     Field[float64]
	fontWeight   Field[int]
	fontFeatures Field[[]string]
}

func newFontConfig(origin Origin) *FontConfig {
	return &FontConfig{origin: origin}
}

func fontParents(f *FontConfig) []*FontConfig { return f.parents }

func (f *FontConfig) insertParent(index int, parent *FontConfig) {
	f.parents = insertAt(f.parents, index, parent)
}

// Origin reports which layer produced this font object.
func (f *FontConfig) Origin() Origin { return f.origin }

// layerJSON reads the nested "font" object, tolerating the legacy inline
// keys (fontFace, fontSize, fontWeight) from older documents.
func (f *FontConfig) layerJSON(profileJSON gjson.Result) error {
	if err := decodeField(profileJSON, "fontFace", &f.fontFace); err != nil {
		return err
	}
	if err := decodeField(profileJSON, "fontSize", &f.fontSize); err != nil {
		return err
	}
	if err := decodeField(profileJSON, "fontWeight", &f.fontWeight); err != nil {
		return err
	}

	font := member(profileJSON, "font")
	if !font.IsObject() {
		return nil
	}
	if err := decodeField(font, "face", &f.fontFace); err != nil {
		return err
	}
	if err := decodeField(font, "size", &f.fontSize); err != nil {
		return err
	}
	if err := decodeField(font, "weight", &f.fontWeight); err != nil {
		return err
	}
	return decodeField(font, "features", &f.fontFeatures)
}

// emitJSON writes the locally-set font keys as a nested "font" object.
func (f *FontConfig) emitJSON(doc string) string {
	if !f.fontFace.IsSet() && !f.fontSize.IsSet() && !f.fontWeight.IsSet() && !f.fontFeatures.IsSet() {
		return doc
	}
	font := "{}"
	font = setIfString(font, "face", &f.fontFace)
	font = setIfFloat(font, "size", &f.fontSize)
	font = setIfInt(font, "weight", &f.fontWeight)
	if f.fontFeatures.IsSet() {
		font = setStringSlice(font, "features", f.fontFeatures.Value())
	}
	return setRaw(doc, "font", font)
}

// FontFace resolves the effective font face.
func (f *FontConfig) FontFace() string {
	return resolveOr(f, fontParents, func(n *FontConfig) *Field[string] { return &n.fontFace }, "monospace")
}

// HasFontFace reports whether the font face is set locally.
func (f *FontConfig) HasFontFace() bool { return f.fontFace.IsSet() }

// SetFontFace sets the font face locally.
func (f *FontConfig) SetFontFace(face string) { f.fontFace.Set(face) }

// FontFaceOverrideSource reports which font config supplies the face.
func (f *FontConfig) FontFaceOverrideSource() *FontConfig {
	_, src, ok := resolveField(f, fontParents, func(n *FontConfig) *Field[string] { return &n.fontFace })
	if !ok {
		return nil
	}
	return src
}

// FontSize resolves the effective font size in points.
func (f *FontConfig) FontSize() float64 {
	return resolveOr(f, fontParents, func(n *FontConfig) *Field[float64] { return &n.fontSize }, 12)
}

// FontWeight resolves the effective font weight.
func (f *FontConfig) FontWeight() int {
	return resolveOr(f, fontParents, func(n *FontConfig) *Field[int] { return &n.fontWeight }, 400)
}

// FontFeatures resolves the effective OpenType feature list.
func (f *FontConfig) FontFeatures() []string {
	return resolveOr(f, fontParents, func(n *FontConfig) *Field[[]string] { return &n.fontFeatures }, nil)
}

func copyFontConfig(src *FontConfig) *FontConfig {
	dup := *src
	dup.parents = nil
	if src.fontFeatures.IsSet() {
		dup.fontFeatures.Set(append([]string(nil), src.fontFeatures.Value()...))
	}
	return &dup
}
