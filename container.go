// FILE: shelldeck/settings/container.go
package settings

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Settings is the fully layered, validated settings tree: globals, the
// resolved profile list, color schemes, and actions. A Settings value is
// immutable in the sense that loading again produces a new tree; the
// mutating operations below edit only user-layer state, which the
// serializer then writes back.
type Settings struct {
	globals          *GlobalSettings
	baseLayerProfile *Profile

	// allProfiles keeps hidden and tombstoned profiles; activeProfiles
	// is the user-visible subset. Tombstoned profiles never serialize.
	allProfiles    []*Profile
	activeProfiles []*Profile

	warnings []Warning
}

// newSettings assembles the container from a finished loader run,
// validates it, and rejects structurally unusable trees.
func newSettings(l *Loader) (*Settings, error) {
	s := &Settings{
		globals:          l.user.globals,
		baseLayerProfile: l.user.baseLayerProfile,
		warnings:         l.warnings,
	}

	for _, p := range l.user.profiles {
		s.allProfiles = append(s.allProfiles, p)
		if !p.Hidden() && !p.Deleted() {
			s.activeProfiles = append(s.activeProfiles, p)
		}
	}

	if len(s.allProfiles) == 0 {
		return nil, &LoadError{Reason: NoProfiles}
	}
	if len(s.activeProfiles) == 0 {
		return nil, &LoadError{Reason: AllProfilesHidden}
	}

	s.validate()
	s.warnings = dedupeWarnings(s.warnings)
	return s, nil
}

// dedupeWarnings keeps the first occurrence of each warning category.
func dedupeWarnings(warnings []Warning) []Warning {
	seen := make(map[Warning]struct{}, len(warnings))
	out := warnings[:0]
	for _, w := range warnings {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Globals returns the application-wide settings.
func (s *Settings) Globals() *GlobalSettings { return s.globals }

// ActionMap returns the finalized action map.
func (s *Settings) ActionMap() *ActionMap { return s.globals.ActionMap() }

// ColorSchemes returns the finalized scheme registry.
func (s *Settings) ColorSchemes() map[string]*ColorScheme { return s.globals.ColorSchemes() }

// AllProfiles returns every profile, hidden and tombstoned ones included.
func (s *Settings) AllProfiles() []*Profile { return s.allProfiles }

// ActiveProfiles returns the profiles shown to the user, in list order.
func (s *Settings) ActiveProfiles() []*Profile { return s.activeProfiles }

// Warnings returns the deduplicated warnings from loading and validation.
func (s *Settings) Warnings() []Warning { return s.warnings }

// FindProfile returns the profile with the given guid, or nil.
func (s *Settings) FindProfile(guid uuid.UUID) *Profile {
	return findProfileByGuid(s.allProfiles, guid)
}

// DefaultProfile returns the profile validation resolved as the default.
func (s *Settings) DefaultProfile() *Profile {
	return s.FindProfile(s.globals.DefaultProfile())
}

// ProfileByName looks a profile up by the user-facing string form, which
// may be a name or a guid. A 38-character string wrapped in braces is
// tried as a guid first, so a profile literally named like a guid cannot
// shadow the profile carrying that guid.
func (s *Settings) ProfileByName(name string) *Profile {
	if len(name) == 38 && name[0] == '{' {
		if guid, err := uuid.Parse(name); err == nil {
			if p := s.FindProfile(guid); p != nil {
				return p
			}
		}
	}
	for _, p := range s.allProfiles {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// ProfileByIndex returns the i-th active profile, or nil when out of
// range.
func (s *Settings) ProfileByIndex(i int) *Profile {
	if i < 0 || i >= len(s.activeProfiles) {
		return nil
	}
	return s.activeProfiles[i]
}

// NewTerminalArgs carries the profile selectors of a "new tab" or "new
// window" invocation.
type NewTerminalArgs struct {
	// Profile is a profile name or guid string; it wins over the index.
	Profile string
	// ProfileIndex selects from the active list when non-nil. A negative
	// index requests the default profile.
	ProfileIndex *int
}

// ProfileForArgs resolves the profile a new terminal should use: the
// named profile if given, then the indexed one, then the default
// profile.
func (s *Settings) ProfileForArgs(args NewTerminalArgs) *Profile {
	if args.Profile != "" {
		if p := s.ProfileByName(args.Profile); p != nil {
			return p
		}
	}
	if args.ProfileIndex != nil {
		if *args.ProfileIndex < 0 {
			return s.DefaultProfile()
		}
		return s.ProfileByIndex(*args.ProfileIndex)
	}
	return s.DefaultProfile()
}

// ColorSchemeForProfile returns the scheme the profile's focused
// appearance resolves to, or nil when it references nothing or an
// unknown name.
func (s *Settings) ColorSchemeForProfile(p *Profile) *ColorScheme {
	name := p.DefaultAppearance().ColorSchemeName()
	if name == "" {
		return nil
	}
	return s.globals.ColorScheme(name)
}

// CreateNewProfile appends a blank user profile named "Profile N", with
// the first free N, inheriting only from the user defaults layer.
func (s *Settings) CreateNewProfile() *Profile {
	name := ""
	for n := len(s.allProfiles) + 1; ; n++ {
		name = fmt.Sprintf("Profile %d", n)
		if s.profileNameTaken(name) {
			continue
		}
		break
	}

	p := NewProfile(OriginUser)
	p.SetName(name)
	p.SetGuid(uuid.New())
	p.InsertParent(s.baseLayerProfile)

	s.allProfiles = append(s.allProfiles, p)
	s.activeProfiles = append(s.activeProfiles, p)
	return p
}

// DuplicateProfile appends a standalone copy of source named
// "<name> (Copy)". The copy materializes every setting the user or an
// extension chose, but not values that merely fell through from the
// defaults layer, and never the hidden flag, so duplicating a hidden
// profile yields a visible one.
func (s *Settings) DuplicateProfile(source *Profile) *Profile {
	name := source.Name() + " (Copy)"
	for s.profileNameTaken(name) {
		name += " (Copy)"
	}

	dup := NewProfile(OriginUser)
	dup.SetName(name)
	dup.SetGuid(uuid.New())

	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.commandline })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.startingDirectory })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.tabTitle })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.tabColor })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.icon })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.closeOnExit })
	copyResolvedField(dup, source, func(p *Profile) *Field[int] { return &p.historySize })
	copyResolvedField(dup, source, func(p *Profile) *Field[bool] { return &p.snapOnInput })
	copyResolvedField(dup, source, func(p *Profile) *Field[bool] { return &p.altGrAliasing })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.antialiasingMode })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.padding })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.scrollbarState })
	copyResolvedField(dup, source, func(p *Profile) *Field[string] { return &p.bellStyle })
	copyResolvedField(dup, source, func(p *Profile) *Field[bool] { return &p.elevate })
	copyResolvedField(dup, source, func(p *Profile) *Field[bool] { return &p.useAcrylic })
	copyResolvedField(dup, source, func(p *Profile) *Field[float64] { return &p.opacity })
	copyResolvedField(dup, source, func(p *Profile) *Field[bool] { return &p.suppressApplicationTitle })
	copyResolvedField(dup, source, func(p *Profile) *Field[map[string]string] { return &p.environment })

	copyResolvedFontField(dup.font, source.font, func(f *FontConfig) *Field[string] { return &f.fontFace })
	copyResolvedFontField(dup.font, source.font, func(f *FontConfig) *Field[float64] { return &f.fontSize })
	copyResolvedFontField(dup.font, source.font, func(f *FontConfig) *Field[int] { return &f.fontWeight })
	copyResolvedFontField(dup.font, source.font, func(f *FontConfig) *Field[[]string] { return &f.fontFeatures })

	copyResolvedAppearance(dup.defaultAppearance, source.defaultAppearance)

	// an unfocused appearance is copied whole rather than key by key
	if ua := source.unfocusedAppearance; ua != nil {
		dup.unfocusedAppearance = copyAppearance(ua)
		dup.unfocusedAppearance.insertParent(0, dup.defaultAppearance)
	}

	dup.InsertParent(s.baseLayerProfile)

	s.allProfiles = append(s.allProfiles, dup)
	s.activeProfiles = append(s.activeProfiles, dup)
	return dup
}

func (s *Settings) profileNameTaken(name string) bool {
	for _, p := range s.allProfiles {
		if p.Name() == name {
			return true
		}
	}
	return false
}

// copyResolvedField copies the resolved value of one field into dst when
// the value was chosen by the user, an extension, or the inbox profile
// itself, but not when it only fell through from a defaults layer.
func copyResolvedField[T any](dst, src *Profile, field func(*Profile) *Field[T]) {
	v, node, ok := resolveField(src, profileParents, field)
	if !ok || node.origin == OriginProfilesDefaults {
		return
	}
	field(dst).Set(v)
}

func copyResolvedFontField[T any](dst, src *FontConfig, field func(*FontConfig) *Field[T]) {
	v, node, ok := resolveField(src, fontParents, field)
	if !ok || node.origin == OriginProfilesDefaults {
		return
	}
	field(dst).Set(v)
}

func copyResolvedAppearanceField[T any](dst, src *Appearance, field func(*Appearance) *Field[T]) {
	v, node, ok := resolveField(src, appearanceParents, field)
	if !ok || node.origin == OriginProfilesDefaults {
		return
	}
	field(dst).Set(v)
}

func copyResolvedAppearance(dst, src *Appearance) {
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[string] { return &a.colorSchemeName })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[string] { return &a.foreground })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[string] { return &a.background })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[string] { return &a.selectionBackground })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[string] { return &a.cursorColor })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[string] { return &a.cursorShape })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[int] { return &a.cursorHeight })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[string] { return &a.backgroundImagePath })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[float64] { return &a.backgroundImageOpacity })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[string] { return &a.backgroundImageStretchMode })
	copyResolvedAppearanceField(dst, src, func(a *Appearance) *Field[bool] { return &a.retroTerminalEffect })
}

// Copy deep-copies the whole tree. Profiles that share ancestors in the
// original share the single corresponding clone in the copy, so the
// inheritance graph keeps its shape instead of exploding into a forest.
func (s *Settings) Copy() *Settings {
	visited := make(map[*Profile]*Profile, len(s.allProfiles)+1)

	dup := &Settings{
		globals:          s.globals.Copy(),
		baseLayerProfile: s.baseLayerProfile.copyInterned(visited),
		warnings:         append([]Warning(nil), s.warnings...),
	}
	for _, p := range s.allProfiles {
		clone := p.copyInterned(visited)
		dup.allProfiles = append(dup.allProfiles, clone)
		if !clone.Hidden() && !clone.Deleted() {
			dup.activeProfiles = append(dup.activeProfiles, clone)
		}
	}
	return dup
}

// UpdateColorSchemeReferences renames a scheme and rewrites every local
// reference to it: profile appearances, the defaults layer, and
// setColorScheme actions. Inherited references follow automatically once
// their source is rewritten.
func (s *Settings) UpdateColorSchemeReferences(oldName, newName string) {
	if scheme := s.globals.ColorScheme(oldName); scheme != nil {
		s.globals.RemoveColorScheme(oldName)
		renamed := scheme.Copy()
		renamed.Name = newName
		s.globals.AddColorScheme(renamed)
	}

	rewrite := func(a *Appearance) {
		if a != nil && a.colorSchemeName.IsSet() && a.colorSchemeName.Value() == oldName {
			a.colorSchemeName.Set(newName)
		}
	}
	rewrite(s.baseLayerProfile.defaultAppearance)
	rewrite(s.baseLayerProfile.unfocusedAppearance)
	for _, p := range s.allProfiles {
		rewrite(p.defaultAppearance)
		rewrite(p.unfocusedAppearance)
	}

	for _, cmd := range s.ActionMap().NameMap() {
		rewriteCommandScheme(cmd, oldName, newName)
	}
}

func rewriteCommandScheme(cmd *Command, oldName, newName string) {
	for _, nested := range cmd.Nested {
		rewriteCommandScheme(nested, oldName, newName)
	}
	if name, ok := schemeNameFromCommand(cmd); ok && name == oldName {
		cmd.Args["colorScheme"] = newName
	}
}

// ApplicationDisplayName is the name shown in the UI title and the
// about dialog.
func ApplicationDisplayName() string { return "ShellDeck" }

// ApplicationVersion reports the library version.
func ApplicationVersion() string { return moduleVersion }

const moduleVersion = "1.2.0"

// DisabledProfileSourcesContain is a convenience for hosts deciding
// whether to offer re-enabling a generator namespace.
func (s *Settings) DisabledProfileSourcesContain(namespace string) bool {
	for _, src := range s.globals.DisabledProfileSources() {
		if strings.EqualFold(src, namespace) {
			return true
		}
	}
	return false
}
