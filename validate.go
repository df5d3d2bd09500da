// FILE: shelldeck/settings/validate.go
package settings

import (
	"net/url"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// validate runs the post-layering checks. Every check repairs what it
// can and reports a warning; validation never fails a load.
func (s *Settings) validate() {
	s.validateDefaultProfile()
	s.validateColorSchemes()
	s.validateMediaResources()
	s.validateKeybindings()
	s.validateColorSchemesInCommands()
	s.validateTheme()
	s.validateSplitSizes()
}

var knownThemes = map[string]bool{
	"system": true,
	"dark":   true,
	"light":  true,
}

// validateTheme warns about a theme name the application does not ship.
// The value is left in place: a later release may know the theme, and
// rendering falls back to the system theme either way.
func (s *Settings) validateTheme() {
	if !knownThemes[s.globals.Theme()] {
		s.warnings = append(s.warnings, WarnUnknownTheme)
	}
}

// validateSplitSizes warns about splitPane actions whose size argument is
// outside the open interval (0, 1).
func (s *Settings) validateSplitSizes() {
	for _, cmd := range s.ActionMap().NameMap() {
		if hasInvalidSplitSize(cmd) {
			s.warnings = append(s.warnings, WarnInvalidSplitSize)
			return
		}
	}
}

func hasInvalidSplitSize(cmd *Command) bool {
	for _, nested := range cmd.Nested {
		if hasInvalidSplitSize(nested) {
			return true
		}
	}
	if cmd.Action != "splitPane" || cmd.Args == nil {
		return false
	}
	if size, ok := cmd.Args["size"].(float64); ok {
		return size <= 0 || size >= 1
	}
	return false
}

// validateDefaultProfile resolves the document's defaultProfile value,
// which may be a guid or a profile name, into a live profile. An
// unresolvable value falls back to the first profile in the list.
func (s *Settings) validateDefaultProfile() {
	unparsed := s.globals.UnparsedDefaultProfile()

	if unparsed != "" {
		if guid, err := uuid.Parse(unparsed); err == nil {
			if s.FindProfile(guid) != nil {
				s.globals.SetDefaultProfile(guid)
				return
			}
		} else if p := s.ProfileByName(unparsed); p != nil {
			s.globals.SetDefaultProfile(p.Guid())
			return
		}
	}

	s.warnings = append(s.warnings, WarnMissingDefaultProfile)
	s.globals.SetDefaultProfile(s.allProfiles[0].Guid())
}

// validateColorSchemes clears appearance references to schemes that do
// not exist, so rendering falls back to the default scheme instead of
// failing to resolve colors mid-session.
func (s *Settings) validateColorSchemes() {
	valid := true

	check := func(a *Appearance) {
		if a == nil {
			return
		}
		name, src, ok := resolveField(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.colorSchemeName })
		if !ok || name == "" {
			return
		}
		if s.globals.ColorScheme(name) == nil {
			src.colorSchemeName.Clear()
			valid = false
		}
	}

	check(s.baseLayerProfile.defaultAppearance)
	check(s.baseLayerProfile.unfocusedAppearance)
	for _, p := range s.allProfiles {
		check(p.defaultAppearance)
		check(p.unfocusedAppearance)
	}

	if !valid {
		s.warnings = append(s.warnings, WarnUnknownColorScheme)
	}
}

// validateMediaResources checks that background images and icons are
// usable paths or URIs after environment variable expansion. Bad values
// are cleared on whichever layer set them, so a profile inheriting one
// from the defaults layer stops resolving to it. Icons of up to two
// runes pass: they are emoji or glyph icons, not paths.
func (s *Settings) validateMediaResources() {
	invalidBackground := false
	invalidIcon := false

	checkBackground := func(a *Appearance) {
		if a == nil {
			return
		}
		path, src, ok := resolveField(a, appearanceParents, func(n *Appearance) *Field[string] { return &n.backgroundImagePath })
		if !ok {
			return
		}
		if expanded := os.ExpandEnv(path); expanded != "" && !validResourcePath(expanded) {
			src.ClearBackgroundImagePath()
			invalidBackground = true
		}
	}

	checkBackground(s.baseLayerProfile.defaultAppearance)
	checkBackground(s.baseLayerProfile.unfocusedAppearance)
	for _, p := range s.allProfiles {
		checkBackground(p.defaultAppearance)
		checkBackground(p.unfocusedAppearance)

		icon, src, ok := resolveField(p, profileParents, func(n *Profile) *Field[string] { return &n.icon })
		if !ok {
			continue
		}
		if expanded := os.ExpandEnv(icon); expanded != "" && utf8.RuneCountInString(expanded) > 2 && !validResourcePath(expanded) {
			src.clearIcon()
			invalidIcon = true
		}
	}

	if invalidBackground {
		s.warnings = append(s.warnings, WarnInvalidBackgroundImage)
	}
	if invalidIcon {
		s.warnings = append(s.warnings, WarnInvalidIcon)
	}
}

// validResourcePath accepts absolute or relative file paths and
// parseable URIs; it rejects strings with control characters and
// unparseable URI forms.
func validResourcePath(path string) bool {
	if strings.ContainsFunc(path, func(r rune) bool { return r < 0x20 }) {
		return false
	}
	if strings.Contains(path, "://") {
		_, err := url.Parse(path)
		return err == nil
	}
	return true
}

// validateKeybindings surfaces the warnings collected while layering
// actions, behind a leading marker warning.
func (s *Settings) validateKeybindings() {
	kw := s.globals.KeybindingsWarnings()
	if len(kw) == 0 {
		return
	}
	s.warnings = append(s.warnings, WarnAtLeastOneKeybinding)
	s.warnings = append(s.warnings, kw...)
}

// validateColorSchemesInCommands warns when any action, including nested
// ones, names a scheme that does not exist.
func (s *Settings) validateColorSchemesInCommands() {
	schemes := s.globals.ColorSchemes()
	for _, cmd := range s.ActionMap().NameMap() {
		if hasInvalidColorScheme(cmd, schemes) {
			s.warnings = append(s.warnings, WarnInvalidColorSchemeInCmd)
			return
		}
	}
}
