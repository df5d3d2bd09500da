// FILE: shelldeck/settings/loader.go
package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// ParsedSettings is one settings source after parsing: its globals, its
// profiles.defaults layer, and its profile list, not yet wired to any
// other source.
type ParsedSettings struct {
	globals          *GlobalSettings
	baseLayerProfile *Profile
	profiles         []*Profile
}

// Loader assembles a Settings tree from the built-in defaults document,
// the user document, dynamic profile generators, and fragments. The
// phases run in a fixed order; each phase only sees the output of the
// ones before it.
type Loader struct {
	generators    []ProfileGenerator
	fragmentRoots []string
	catalog       ExtensionCatalog
	state         *ApplicationState
	localizeName  func(string) string

	inbox *ParsedSettings
	user  *ParsedSettings

	warnings []Warning

	// userProfileCount is the watermark between profiles the user document
	// actually contains and reproductions appended by the merge phases.
	userProfileCount int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithGenerators registers dynamic profile generators.
func WithGenerators(gens ...ProfileGenerator) LoaderOption {
	return func(l *Loader) { l.generators = append(l.generators, gens...) }
}

// WithFragmentRoots adds directories scanned for fragment extensions.
func WithFragmentRoots(roots ...string) LoaderOption {
	return func(l *Loader) { l.fragmentRoots = append(l.fragmentRoots, roots...) }
}

// WithExtensionCatalog registers an extension catalog queried for
// fragments in addition to the fragment roots.
func WithExtensionCatalog(catalog ExtensionCatalog) LoaderOption {
	return func(l *Loader) { l.catalog = catalog }
}

// WithApplicationState attaches the persistent state used to tell
// deleted profiles apart from newly generated ones.
func WithApplicationState(state *ApplicationState) LoaderOption {
	return func(l *Loader) { l.state = state }
}

// WithNameLocalizer sets the translation hook applied to built-in
// profile names when the user document is first created.
func WithNameLocalizer(localize func(string) string) LoaderOption {
	return func(l *Loader) { l.localizeName = localize }
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs the full pipeline over the defaults and user documents and
// returns the finished settings. firstRun marks a user document that was
// just created from the stock template, which gets its blanks filled
// before layering.
func (l *Loader) Load(defaultsContent, userContent string, firstRun bool) (*Settings, error) {
	if err := l.parse(defaultsContent, userContent); err != nil {
		return nil, err
	}
	l.generateProfiles()
	if firstRun {
		l.fillBlanksInDefaults()
	}
	l.mergeInboxIntoUserProfiles()
	l.mergeFragmentsIntoUserProfiles()
	l.disableDeletedProfiles()
	l.finalizeLayering()

	return newSettings(l)
}

// parse reads both documents into ParsedSettings. Errors in either are
// fatal: the built-in document failing means a broken installation, and
// a user document that cannot be deserialized must not be silently
// dropped and later overwritten.
func (l *Loader) parse(defaultsContent, userContent string) error {
	inbox, err := parseSource(defaultsContent, OriginInbox, &l.warnings)
	if err != nil {
		return err
	}
	user, err := parseSource(userContent, OriginUser, &l.warnings)
	if err != nil {
		return err
	}
	l.inbox = inbox
	l.user = user
	l.userProfileCount = len(user.profiles)
	return nil
}

// parseSource parses one settings document into its globals, base layer,
// and profile list.
func parseSource(content string, origin Origin, warnings *[]Warning) (*ParsedSettings, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedSettings{
		globals:          NewGlobalSettings(),
		baseLayerProfile: NewProfile(OriginProfilesDefaults),
	}
	if err := parsed.globals.layerJSON(doc); err != nil {
		return nil, err
	}

	profiles := member(doc, "profiles")
	list := profiles
	if profiles.IsObject() {
		if defaults := member(profiles, "defaults"); defaults.IsObject() {
			if err := parsed.baseLayerProfile.layerJSON(defaults); err != nil {
				return nil, err
			}
			// the defaults layer is anonymous; a guid here would leak
			// into every profile that inherits from it
			parsed.baseLayerProfile.clearGuid()
		}
		list = member(profiles, "list")
	}

	if !list.IsArray() {
		return parsed, nil
	}

	seen := make(map[uuid.UUID]struct{})
	var loopErr error
	list.ForEach(func(_, entry gjson.Result) bool {
		if !entry.IsObject() {
			return true
		}
		p := NewProfile(origin)
		if err := p.layerJSON(entry); err != nil {
			loopErr = err
			return false
		}
		if !p.HasName() && !p.HasGuid() {
			logger.Warn("skipping profile with neither name nor guid")
			return true
		}
		guid := p.Guid()
		if _, dup := seen[guid]; dup {
			*warnings = append(*warnings, WarnDuplicateProfile)
			return true
		}
		seen[guid] = struct{}{}
		parsed.profiles = append(parsed.profiles, p)
		return true
	})
	if loopErr != nil {
		return nil, loopErr
	}

	return parsed, nil
}

// generateProfiles runs every enabled generator and appends its output
// to the inbox list. Generator failures cost only their own profiles.
func (l *Loader) generateProfiles() {
	disabled := l.user.globals.DisabledProfileSources()

	for _, gen := range l.generators {
		if generatorDisabled(gen.Namespace(), disabled) {
			continue
		}
		profiles, err := runGenerator(gen)
		if err != nil {
			logger.Warn("profile generation failed", "error", err)
			continue
		}
		for _, p := range profiles {
			if findProfileByGuid(l.inbox.profiles, p.Guid()) != nil {
				logger.Warn("generator produced duplicate profile guid",
					"source", gen.Namespace(), "guid", p.Guid())
				continue
			}
			l.inbox.profiles = append(l.inbox.profiles, p)
		}
	}
}

// fillBlanksInDefaults finishes a freshly created user document: the
// default profile points at the best available profile, and built-in
// profile names pass through the localizer.
func (l *Loader) fillBlanksInDefaults() {
	if l.user.globals.UnparsedDefaultProfile() == "" {
		if p := l.preferredDefaultProfile(); p != nil {
			l.user.globals.SetUnparsedDefaultProfile(formatGuid(p.Guid()))
		}
	}
	if l.localizeName != nil {
		for _, p := range l.inbox.profiles {
			if p.HasName() {
				p.SetName(l.localizeName(p.Name()))
			}
		}
	}
}

// preferredDefaultProfile picks the default for a brand-new user
// document: a generated profile matching the login shell if one exists,
// otherwise the first built-in.
func (l *Loader) preferredDefaultProfile() *Profile {
	if shell := filepath.Base(os.Getenv("SHELL")); shell != "" && shell != "." {
		for _, p := range l.inbox.profiles {
			if p.Source() != "" && strings.EqualFold(p.Name(), shell) {
				return p
			}
		}
	}
	if len(l.inbox.profiles) > 0 {
		return l.inbox.profiles[0]
	}
	return nil
}

// mergeInboxIntoUserProfiles attaches each inbox profile to the user's
// profile with the same guid, or appends a user-layer reproduction when
// the user document never mentioned it.
func (l *Loader) mergeInboxIntoUserProfiles() {
	for _, inboxProfile := range l.inbox.profiles {
		if userProfile := findProfileByGuid(l.user.profiles[:l.userProfileCount], inboxProfile.Guid()); userProfile != nil {
			userProfile.InsertParent(inboxProfile)
			continue
		}
		l.user.profiles = append(l.user.profiles, reproduceProfile(inboxProfile))
	}
}

// mergeFragmentsIntoUserProfiles layers fragment extensions in. An
// update targeting an existing profile becomes its highest-priority
// parent, beating the inbox original while still losing to the user's
// own keys. New fragment profiles are reproduced like inbox ones, and
// fragment schemes join the inbox registry, replacing same-named
// definitions.
func (l *Loader) mergeFragmentsIntoUserProfiles() {
	disabled := l.user.globals.DisabledProfileSources()
	fragments := collectFragments(l.fragmentRoots, l.catalog, disabled)

	for _, frag := range fragments {
		parsed, err := parseFragment(frag)
		if err != nil {
			logger.Warn("skipping fragment", "error", err)
			continue
		}

		for _, update := range parsed.updates {
			target := findProfileByGuid(l.user.profiles, update.target)
			if target == nil {
				continue
			}
			target.insertParentAt(0, update.profile)
		}
		for _, p := range parsed.profiles {
			if findProfileByGuid(l.user.profiles, p.Guid()) != nil {
				logger.Warn("fragment profile collides with existing guid",
					"source", parsed.source, "guid", p.Guid())
				continue
			}
			l.user.profiles = append(l.user.profiles, reproduceProfile(p))
		}
		for _, scheme := range parsed.schemes {
			if l.inbox.globals.ColorScheme(scheme.Name) != nil || l.user.globals.ColorScheme(scheme.Name) != nil {
				l.warnings = append(l.warnings, WarnDuplicateRemappedScheme)
			}
			l.inbox.globals.AddColorScheme(scheme)
		}
	}
}

// disableDeletedProfiles tombstones reproductions of profiles this
// machine has seen before: if a previously recorded profile is absent
// from the user document, the user removed it, and regenerating it every
// load would undo that choice. First-time profiles are recorded instead.
func (l *Loader) disableDeletedProfiles() {
	if l.state == nil {
		return
	}

	var newlySeen []uuid.UUID
	for _, p := range l.user.profiles[l.userProfileCount:] {
		// only sourced profiles participate: a generator or fragment can
		// reappear on every load, but built-in profiles are never culled
		if p.Source() == "" {
			continue
		}
		guid := p.Guid()
		if l.state.ProfileSeen(guid) {
			p.deleted = true
			p.SetHidden(true)
			continue
		}
		newlySeen = append(newlySeen, guid)
	}
	l.state.RecordProfiles(newlySeen)

	if err := l.state.Flush(); err != nil {
		logger.Warn("failed to persist application state", "error", err)
	}
}

// finalizeLayering wires the inbox source underneath the user source:
// globals inherit, the profiles.defaults layers chain, and every user
// profile gets the user defaults layer as its highest-priority parent.
func (l *Loader) finalizeLayering() {
	l.user.globals.InsertParent(l.inbox.globals)
	l.user.globals.FinalizeInheritance()

	l.user.baseLayerProfile.InsertParent(l.inbox.baseLayerProfile)

	for _, p := range l.user.profiles {
		p.insertParentAt(0, l.user.baseLayerProfile)
	}
}

// findProfileByGuid returns the first profile resolving to guid, or nil.
func findProfileByGuid(profiles []*Profile, guid uuid.UUID) *Profile {
	for _, p := range profiles {
		if p.Guid() == guid {
			return p
		}
	}
	return nil
}
