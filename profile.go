// FILE: shelldeck/settings/profile.go
package settings

import (
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Origin identifies the settings layer an entity was created by. It is
// fixed at construction and survives copying, so callers can always tell
// a user-authored object from a generated or fragment one.
type Origin int

const (
	OriginNone Origin = iota
	OriginInbox
	OriginUser
	OriginGenerated
	OriginFragment
	OriginProfilesDefaults
)

func (o Origin) String() string {
	switch o {
	case OriginInbox:
		return "inbox"
	case OriginUser:
		return "user"
	case OriginGenerated:
		return "generated"
	case OriginFragment:
		return "fragment"
	case OriginProfilesDefaults:
		return "profilesDefaults"
	default:
		return "none"
	}
}

// profileGuidNamespace seeds name-derived guids for profiles that never
// declared one, so the same profile name always maps to the same guid
// across loads.
var profileGuidNamespace = uuid.MustParse("2bde4a90-d05f-401c-9492-e40884ead1d8")

// Profile is a single terminal profile node in the inheritance graph.
// Parents are ordered by priority: a field unset here resolves through
// parent 0 and its full ancestry before parent 1 is consulted.
type Profile struct {
	parents []*Profile
	origin  Origin

	// deleted profiles stay in the graph for layering but are excluded
	// from the active list and from serialization.
	deleted bool

	name                     Field[string]
	guid                     Field[uuid.UUID]
	source                   Field[string]
	hidden                   Field[bool]
	commandline              Field[string]
	startingDirectory        Field[string]
	tabTitle                 Field[string]
	tabColor                 Field[string]
	icon                     Field[string]
	closeOnExit              Field[string]
	historySize              Field[int]
	snapOnInput              Field[bool]
	altGrAliasing            Field[bool]
	antialiasingMode         Field[string]
	padding                  Field[string]
	scrollbarState           Field[string]
	bellStyle                Field[string]
	elevate                  Field[bool]
	useAcrylic               Field[bool]
	opacity                  Field[float64]
	suppressApplicationTitle Field[bool]
	environment              Field[map[string]string]

	font              *FontConfig
	defaultAppearance *Appearance

	// unfocusedAppearance is nil until the document sets one. Its first
	// parent is always this profile's defaultAppearance.
	unfocusedAppearance *Appearance
}

// NewProfile creates an empty profile attributed to the given layer.
func NewProfile(origin Origin) *Profile {
	return &Profile{
		origin:            origin,
		font:              newFontConfig(origin),
		defaultAppearance: newAppearance(origin),
	}
}

func profileParents(p *Profile) []*Profile { return p.parents }

// InsertParent appends a lower-priority profile, wiring the font and
// appearance sub-entities to their counterparts at the same position.
func (p *Profile) InsertParent(parent *Profile) {
	p.insertParentAt(len(p.parents), parent)
}

// insertParentAt inserts parent at the given priority index.
func (p *Profile) insertParentAt(index int, parent *Profile) {
	p.parents = insertAt(p.parents, index, parent)
	p.font.insertParent(index, parent.font)
	p.defaultAppearance.insertParent(index, parent.defaultAppearance)
	if p.unfocusedAppearance != nil {
		// slot 0 is reserved for the profile's own default appearance
		p.unfocusedAppearance.insertParent(index+1, parent.defaultAppearance)
	}
}

// Origin reports which layer created this profile.
func (p *Profile) Origin() Origin { return p.origin }

// Deleted reports whether the profile was tombstoned by the loader.
func (p *Profile) Deleted() bool { return p.deleted }

// Name resolves the effective profile name.
func (p *Profile) Name() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.name }, "")
}

// SetName sets the name locally.
func (p *Profile) SetName(name string) { p.name.Set(name) }

// HasName reports whether the name is set locally.
func (p *Profile) HasName() bool { return p.name.IsSet() }

// HasGuid reports whether a guid is set anywhere in the ancestry.
func (p *Profile) HasGuid() bool {
	_, _, ok := resolveField(p, profileParents, func(n *Profile) *Field[uuid.UUID] { return &n.guid })
	return ok
}

// Guid resolves the profile's guid. A profile without one anywhere in its
// ancestry gets a stable guid derived from its name, optionally qualified
// by its source, matching how generated profiles are identified.
func (p *Profile) Guid() uuid.UUID {
	if g, _, ok := resolveField(p, profileParents, func(n *Profile) *Field[uuid.UUID] { return &n.guid }); ok {
		return g
	}
	seed := p.Name()
	if src := p.Source(); src != "" {
		seed = src + "#" + seed
	}
	return uuid.NewSHA1(profileGuidNamespace, []byte(seed))
}

// SetGuid sets the guid locally.
func (p *Profile) SetGuid(g uuid.UUID) { p.guid.Set(g) }

// clearGuid removes the local guid. The loader uses it to keep the
// profile defaults layer anonymous.
func (p *Profile) clearGuid() { p.guid.Clear() }

// Source resolves the namespace that generated or contributed this
// profile, or "" for hand-authored ones.
func (p *Profile) Source() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.source }, "")
}

// SetSource sets the source namespace locally.
func (p *Profile) SetSource(source string) { p.source.Set(source) }

// Hidden resolves whether the profile is omitted from the active list.
func (p *Profile) Hidden() bool {
	return resolveOr(p, profileParents, func(n *Profile) *Field[bool] { return &n.hidden }, false)
}

// SetHidden sets the hidden flag locally.
func (p *Profile) SetHidden(hidden bool) { p.hidden.Set(hidden) }

// Commandline resolves the effective command line.
func (p *Profile) Commandline() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.commandline }, "")
}

// SetCommandline sets the command line locally.
func (p *Profile) SetCommandline(cmd string) { p.commandline.Set(cmd) }

// CommandlineOverrideSource reports which profile in the ancestry supplies
// the effective command line, or nil if it is unset everywhere.
func (p *Profile) CommandlineOverrideSource() *Profile {
	_, src, ok := resolveField(p, profileParents, func(n *Profile) *Field[string] { return &n.commandline })
	if !ok {
		return nil
	}
	return src
}

// StartingDirectory resolves the effective starting directory.
func (p *Profile) StartingDirectory() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.startingDirectory }, "")
}

// SetStartingDirectory sets the starting directory locally.
func (p *Profile) SetStartingDirectory(dir string) { p.startingDirectory.Set(dir) }

// TabTitle resolves the effective tab title override.
func (p *Profile) TabTitle() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.tabTitle }, "")
}

// TabColor resolves the effective tab color.
func (p *Profile) TabColor() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.tabColor }, "")
}

// Icon resolves the effective icon path or glyph.
func (p *Profile) Icon() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.icon }, "")
}

// SetIcon sets the icon locally.
func (p *Profile) SetIcon(icon string) { p.icon.Set(icon) }

// clearIcon removes the locally set icon.
func (p *Profile) clearIcon() { p.icon.Clear() }

// CloseOnExit resolves the close-on-exit mode.
func (p *Profile) CloseOnExit() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.closeOnExit }, "graceful")
}

// HistorySize resolves the scrollback history size.
func (p *Profile) HistorySize() int {
	return resolveOr(p, profileParents, func(n *Profile) *Field[int] { return &n.historySize }, 9001)
}

// SnapOnInput resolves the snap-on-input flag.
func (p *Profile) SnapOnInput() bool {
	return resolveOr(p, profileParents, func(n *Profile) *Field[bool] { return &n.snapOnInput }, true)
}

// AltGrAliasing resolves the AltGr aliasing flag.
func (p *Profile) AltGrAliasing() bool {
	return resolveOr(p, profileParents, func(n *Profile) *Field[bool] { return &n.altGrAliasing }, true)
}

// AntialiasingMode resolves the text antialiasing mode.
func (p *Profile) AntialiasingMode() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.antialiasingMode }, "grayscale")
}

// Padding resolves the window padding string.
func (p *Profile) Padding() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.padding }, "8, 8, 8, 8")
}

// ScrollbarState resolves the scrollbar visibility.
func (p *Profile) ScrollbarState() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.scrollbarState }, "visible")
}

// BellStyle resolves the bell style.
func (p *Profile) BellStyle() string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[string] { return &n.bellStyle }, "audible")
}

// Elevate resolves the elevation request flag.
func (p *Profile) Elevate() bool {
	return resolveOr(p, profileParents, func(n *Profile) *Field[bool] { return &n.elevate }, false)
}

// UseAcrylic resolves the acrylic background flag.
func (p *Profile) UseAcrylic() bool {
	return resolveOr(p, profileParents, func(n *Profile) *Field[bool] { return &n.useAcrylic }, false)
}

// Opacity resolves the background opacity.
func (p *Profile) Opacity() float64 {
	return resolveOr(p, profileParents, func(n *Profile) *Field[float64] { return &n.opacity }, 1.0)
}

// SuppressApplicationTitle resolves whether title changes from the child
// process are ignored.
func (p *Profile) SuppressApplicationTitle() bool {
	return resolveOr(p, profileParents, func(n *Profile) *Field[bool] { return &n.suppressApplicationTitle }, false)
}

// Environment resolves the extra environment variables for the profile.
func (p *Profile) Environment() map[string]string {
	return resolveOr(p, profileParents, func(n *Profile) *Field[map[string]string] { return &n.environment }, nil)
}

// Font returns the profile's font configuration.
func (p *Profile) Font() *FontConfig { return p.font }

// DefaultAppearance returns the focused appearance.
func (p *Profile) DefaultAppearance() *Appearance { return p.defaultAppearance }

// UnfocusedAppearance returns the unfocused appearance, or nil when the
// profile renders the same focused and unfocused.
func (p *Profile) UnfocusedAppearance() *Appearance { return p.unfocusedAppearance }

// ensureUnfocusedAppearance creates the unfocused appearance on demand,
// chained first to the profile's own default appearance and then to every
// existing parent's default appearance.
func (p *Profile) ensureUnfocusedAppearance() *Appearance {
	if p.unfocusedAppearance == nil {
		ua := newAppearance(p.origin)
		ua.insertParent(0, p.defaultAppearance)
		for i, parent := range p.parents {
			ua.insertParent(i+1, parent.defaultAppearance)
		}
		p.unfocusedAppearance = ua
	}
	return p.unfocusedAppearance
}

// layerJSON merges a profile document object into the node. Key order in
// the document does not matter; each recognized key overrides the local
// field when present.
func (p *Profile) layerJSON(json gjson.Result) error {
	if err := decodeField(json, "name", &p.name); err != nil {
		return err
	}
	if err := decodeField(json, "guid", &p.guid); err != nil {
		return err
	}
	if err := decodeField(json, "source", &p.source); err != nil {
		return err
	}
	if err := decodeField(json, "hidden", &p.hidden); err != nil {
		return err
	}
	if err := decodeField(json, "commandline", &p.commandline); err != nil {
		return err
	}
	if err := decodeField(json, "startingDirectory", &p.startingDirectory); err != nil {
		return err
	}
	if err := decodeField(json, "tabTitle", &p.tabTitle); err != nil {
		return err
	}
	if err := decodeField(json, "tabColor", &p.tabColor); err != nil {
		return err
	}
	if err := decodeField(json, "icon", &p.icon); err != nil {
		return err
	}
	if err := decodeField(json, "closeOnExit", &p.closeOnExit); err != nil {
		return err
	}
	if err := decodeField(json, "historySize", &p.historySize); err != nil {
		return err
	}
	if err := decodeField(json, "snapOnInput", &p.snapOnInput); err != nil {
		return err
	}
	if err := decodeField(json, "altGrAliasing", &p.altGrAliasing); err != nil {
		return err
	}
	if err := decodeField(json, "antialiasingMode", &p.antialiasingMode); err != nil {
		return err
	}
	if err := decodeField(json, "padding", &p.padding); err != nil {
		return err
	}
	if err := decodeField(json, "scrollbarState", &p.scrollbarState); err != nil {
		return err
	}
	if err := decodeField(json, "bellStyle", &p.bellStyle); err != nil {
		return err
	}
	if err := decodeField(json, "elevate", &p.elevate); err != nil {
		return err
	}
	if err := decodeField(json, "useAcrylic", &p.useAcrylic); err != nil {
		return err
	}
	if err := decodeField(json, "opacity", &p.opacity); err != nil {
		return err
	}
	if err := decodeField(json, "suppressApplicationTitle", &p.suppressApplicationTitle); err != nil {
		return err
	}
	if err := decodeField(json, "environment", &p.environment); err != nil {
		return err
	}

	if err := p.font.layerJSON(json); err != nil {
		return err
	}
	if err := p.defaultAppearance.layerJSON(json); err != nil {
		return err
	}
	if ua := member(json, "unfocusedAppearance"); ua.IsObject() {
		if err := p.ensureUnfocusedAppearance().layerJSON(ua); err != nil {
			return err
		}
	}
	return nil
}

// toJSON renders only the fields set on this profile itself, preserving
// the round-trip property that loading and saving changes nothing the
// user did not change.
func (p *Profile) toJSON() string {
	doc := "{}"
	doc = setIfString(doc, "name", &p.name)
	if p.guid.IsSet() {
		doc = setString(doc, "guid", formatGuid(p.guid.Value()))
	}
	doc = setIfString(doc, "source", &p.source)
	doc = setIfBool(doc, "hidden", &p.hidden)
	doc = setIfString(doc, "commandline", &p.commandline)
	doc = setIfString(doc, "startingDirectory", &p.startingDirectory)
	doc = setIfString(doc, "tabTitle", &p.tabTitle)
	doc = setIfString(doc, "tabColor", &p.tabColor)
	doc = setIfString(doc, "icon", &p.icon)
	doc = setIfString(doc, "closeOnExit", &p.closeOnExit)
	doc = setIfInt(doc, "historySize", &p.historySize)
	doc = setIfBool(doc, "snapOnInput", &p.snapOnInput)
	doc = setIfBool(doc, "altGrAliasing", &p.altGrAliasing)
	doc = setIfString(doc, "antialiasingMode", &p.antialiasingMode)
	doc = setIfString(doc, "padding", &p.padding)
	doc = setIfString(doc, "scrollbarState", &p.scrollbarState)
	doc = setIfString(doc, "bellStyle", &p.bellStyle)
	doc = setIfBool(doc, "elevate", &p.elevate)
	doc = setIfBool(doc, "useAcrylic", &p.useAcrylic)
	doc = setIfFloat(doc, "opacity", &p.opacity)
	doc = setIfBool(doc, "suppressApplicationTitle", &p.suppressApplicationTitle)
	if p.environment.IsSet() {
		doc = setAny(doc, "environment", p.environment.Value())
	}
	doc = p.font.emitJSON(doc)
	doc = p.defaultAppearance.emitJSON(doc)
	if p.unfocusedAppearance != nil {
		doc = setRaw(doc, "unfocusedAppearance", p.unfocusedAppearance.emitJSON("{}"))
	}
	return doc
}

// formatGuid renders a guid in the brace-wrapped document form.
func formatGuid(g uuid.UUID) string {
	return "{" + g.String() + "}"
}

// reproduceProfile creates a user-layer stand-in for source: a thin child
// carrying only the identity fields, with source as its parent. The
// serializer then emits just the stub, and every other field keeps
// resolving through the original.
func reproduceProfile(source *Profile) *Profile {
	child := NewProfile(OriginUser)
	if source.HasGuid() {
		child.guid.Set(source.Guid())
	}
	if name := source.Name(); name != "" {
		child.name.Set(name)
	}
	if src := source.Source(); src != "" {
		child.source.Set(src)
	}
	if source.Hidden() {
		child.hidden.Set(true)
	}
	child.InsertParent(source)
	return child
}

// copyInterned clones the profile graph rooted at p. The visited map
// interns clones by source identity, so two profiles sharing an ancestor
// share the ancestor's single clone, preserving the graph shape.
func (p *Profile) copyInterned(visited map[*Profile]*Profile) *Profile {
	if dup, seen := visited[p]; seen {
		return dup
	}

	dup := &Profile{
		origin:  p.origin,
		deleted: p.deleted,

		name:                     p.name,
		guid:                     p.guid,
		source:                   p.source,
		hidden:                   p.hidden,
		commandline:              p.commandline,
		startingDirectory:        p.startingDirectory,
		tabTitle:                 p.tabTitle,
		tabColor:                 p.tabColor,
		icon:                     p.icon,
		closeOnExit:              p.closeOnExit,
		historySize:              p.historySize,
		snapOnInput:              p.snapOnInput,
		altGrAliasing:            p.altGrAliasing,
		antialiasingMode:         p.antialiasingMode,
		padding:                  p.padding,
		scrollbarState:           p.scrollbarState,
		bellStyle:                p.bellStyle,
		elevate:                  p.elevate,
		useAcrylic:               p.useAcrylic,
		opacity:                  p.opacity,
		suppressApplicationTitle: p.suppressApplicationTitle,

		font:              copyFontConfig(p.font),
		defaultAppearance: copyAppearance(p.defaultAppearance),
	}
	if p.environment.IsSet() {
		env := make(map[string]string, len(p.environment.Value()))
		for k, v := range p.environment.Value() {
			env[k] = v
		}
		dup.environment.Set(env)
	}
	if p.unfocusedAppearance != nil {
		ua := copyAppearance(p.unfocusedAppearance)
		ua.insertParent(0, dup.defaultAppearance)
		dup.unfocusedAppearance = ua
	}
	visited[p] = dup

	for _, parent := range p.parents {
		dup.InsertParent(parent.copyInterned(visited))
	}
	return dup
}
