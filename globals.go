// FILE: shelldeck/settings/globals.go
package settings

import (
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// GlobalSettings holds application-wide settings: window behavior,
// interaction defaults, the color scheme registry, and the action map.
// Like profiles it is an inheritance node; the user layer keeps the inbox
// layer as its parent after finalization.
type GlobalSettings struct {
	parents []*GlobalSettings

	actionMap           *ActionMap
	keybindingsWarnings []Warning

	// colorSchemes is the flattened registry after finalization.
	// schemeOrder tracks only schemes defined on this layer, so
	// serialization emits exactly what the document contained.
	colorSchemes map[string]*ColorScheme
	schemeOrder  []string

	// defaultProfile is the resolved guid; the unparsed form is kept for
	// round-tripping and may be a name, a bare guid, or a braced guid.
	defaultProfile         uuid.UUID
	unparsedDefaultProfile Field[string]

	alwaysShowTabs             Field[bool]
	initialRows                Field[int]
	initialCols                Field[int]
	initialPosition            Field[string]
	centerOnLaunch             Field[bool]
	launchMode                 Field[string]
	showTitleInTitlebar        Field[bool]
	showTabsInTitlebar         Field[bool]
	useAcrylicInTabRow         Field[bool]
	language                   Field[string]
	theme                      Field[string]
	tabWidthMode               Field[string]
	wordDelimiters             Field[string]
	inputServiceWarning        Field[bool]
	copyOnSelect               Field[bool]
	copyFormatting             Field[bool]
	largePasteWarning          Field[bool]
	multiLinePasteWarning      Field[bool]
	confirmCloseAllTabs        Field[bool]
	snapToGridOnResize         Field[bool]
	startOnUserLogin           Field[bool]
	alwaysOnTop                Field[bool]
	tabSwitcherMode            Field[string]
	disableAnimations          Field[bool]
	startupActions             Field[string]
	focusFollowMouse           Field[bool]
	windowingBehavior          Field[string]
	trimBlockSelection         Field[bool]
	alwaysShowNotificationIcon Field[bool]
	minimizeToNotificationArea Field[bool]
	disabledProfileSources     Field[[]string]
	forceFullRepaintRendering  Field[bool]
	softwareRendering          Field[bool]
	forceVTInput               Field[bool]
	detectURLs                 Field[bool]
}

// NewGlobalSettings creates an empty globals node.
func NewGlobalSettings() *GlobalSettings {
	return &GlobalSettings{
		actionMap:    newActionMap(),
		colorSchemes: make(map[string]*ColorScheme),
	}
}

func globalParents(g *GlobalSettings) []*GlobalSettings { return g.parents }

// InsertParent appends a lower-priority globals node.
func (g *GlobalSettings) InsertParent(parent *GlobalSettings) {
	g.parents = append(g.parents, parent)
}

// ActionMap returns the action and keybinding map.
func (g *GlobalSettings) ActionMap() *ActionMap { return g.actionMap }

// KeybindingsWarnings returns warnings collected while layering actions.
func (g *GlobalSettings) KeybindingsWarnings() []Warning { return g.keybindingsWarnings }

// ColorSchemes returns the scheme registry keyed by name. After
// finalization it includes inherited schemes.
func (g *GlobalSettings) ColorSchemes() map[string]*ColorScheme { return g.colorSchemes }

// ColorScheme returns the named scheme, or nil.
func (g *GlobalSettings) ColorScheme(name string) *ColorScheme { return g.colorSchemes[name] }

// AddColorScheme registers a scheme on this layer. It replaces any scheme
// of the same name and joins the serialization order.
func (g *GlobalSettings) AddColorScheme(scheme *ColorScheme) {
	if _, exists := g.colorSchemes[scheme.Name]; !exists {
		g.schemeOrder = append(g.schemeOrder, scheme.Name)
	} else if !g.ownsScheme(scheme.Name) {
		g.schemeOrder = append(g.schemeOrder, scheme.Name)
	}
	g.colorSchemes[scheme.Name] = scheme
}

// addInheritedColorScheme registers a scheme without claiming it for this
// layer's serialization.
func (g *GlobalSettings) addInheritedColorScheme(scheme *ColorScheme) {
	g.colorSchemes[scheme.Name] = scheme
}

// RemoveColorScheme unregisters a scheme defined on this layer.
func (g *GlobalSettings) RemoveColorScheme(name string) {
	delete(g.colorSchemes, name)
	for i, n := range g.schemeOrder {
		if n == name {
			g.schemeOrder = append(g.schemeOrder[:i], g.schemeOrder[i+1:]...)
			break
		}
	}
}

func (g *GlobalSettings) ownsScheme(name string) bool {
	for _, n := range g.schemeOrder {
		if n == name {
			return true
		}
	}
	return false
}

// DefaultProfile returns the resolved default profile guid. It is the
// zero guid until validation resolves the unparsed form.
func (g *GlobalSettings) DefaultProfile() uuid.UUID { return g.defaultProfile }

// SetDefaultProfile stores the resolved default profile guid.
func (g *GlobalSettings) SetDefaultProfile(guid uuid.UUID) { g.defaultProfile = guid }

// UnparsedDefaultProfile resolves the document form of defaultProfile.
func (g *GlobalSettings) UnparsedDefaultProfile() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.unparsedDefaultProfile }, "")
}

// SetUnparsedDefaultProfile sets the document form locally, so the next
// save reflects a default-profile change made through the API.
func (g *GlobalSettings) SetUnparsedDefaultProfile(value string) {
	g.unparsedDefaultProfile.Set(value)
}

// AlwaysShowTabs resolves whether the tab row is always visible.
func (g *GlobalSettings) AlwaysShowTabs() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.alwaysShowTabs }, true)
}

// InitialRows resolves the initial window height in cells.
func (g *GlobalSettings) InitialRows() int {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[int] { return &n.initialRows }, 30)
}

// InitialCols resolves the initial window width in cells.
func (g *GlobalSettings) InitialCols() int {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[int] { return &n.initialCols }, 120)
}

// InitialPosition resolves the "x,y" launch position.
func (g *GlobalSettings) InitialPosition() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.initialPosition }, "")
}

// CenterOnLaunch resolves whether the window centers itself at launch.
func (g *GlobalSettings) CenterOnLaunch() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.centerOnLaunch }, false)
}

// LaunchMode resolves the launch mode.
func (g *GlobalSettings) LaunchMode() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.launchMode }, "default")
}

// ShowTitleInTitlebar resolves whether the terminal title shows in the
// titlebar.
func (g *GlobalSettings) ShowTitleInTitlebar() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.showTitleInTitlebar }, true)
}

// ShowTabsInTitlebar resolves whether tabs render in the titlebar.
func (g *GlobalSettings) ShowTabsInTitlebar() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.showTabsInTitlebar }, true)
}

// UseAcrylicInTabRow resolves the acrylic tab row toggle.
func (g *GlobalSettings) UseAcrylicInTabRow() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.useAcrylicInTabRow }, false)
}

// Language resolves the UI language override.
func (g *GlobalSettings) Language() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.language }, "")
}

// Theme resolves the UI theme name.
func (g *GlobalSettings) Theme() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.theme }, "system")
}

// TabWidthMode resolves the tab sizing mode.
func (g *GlobalSettings) TabWidthMode() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.tabWidthMode }, "equal")
}

// WordDelimiters resolves the double-click selection delimiters.
func (g *GlobalSettings) WordDelimiters() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.wordDelimiters }, " /\\()\"'-.,:;<>~!@#$%^&*|+=[]{}~?│")
}

// InputServiceWarning resolves whether the missing-input-service warning
// is shown.
func (g *GlobalSettings) InputServiceWarning() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.inputServiceWarning }, true)
}

// CopyOnSelect resolves the copy-on-select toggle.
func (g *GlobalSettings) CopyOnSelect() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.copyOnSelect }, false)
}

// CopyFormatting resolves whether copied text keeps formatting.
func (g *GlobalSettings) CopyFormatting() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.copyFormatting }, false)
}

// LargePasteWarning resolves the large paste confirmation toggle.
func (g *GlobalSettings) LargePasteWarning() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.largePasteWarning }, true)
}

// MultiLinePasteWarning resolves the multi-line paste confirmation toggle.
func (g *GlobalSettings) MultiLinePasteWarning() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.multiLinePasteWarning }, true)
}

// ConfirmCloseAllTabs resolves the close-all confirmation toggle.
func (g *GlobalSettings) ConfirmCloseAllTabs() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.confirmCloseAllTabs }, true)
}

// SnapToGridOnResize resolves whether resizing snaps to the cell grid.
func (g *GlobalSettings) SnapToGridOnResize() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.snapToGridOnResize }, true)
}

// StartOnUserLogin resolves the login autostart toggle.
func (g *GlobalSettings) StartOnUserLogin() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.startOnUserLogin }, false)
}

// AlwaysOnTop resolves the always-on-top toggle.
func (g *GlobalSettings) AlwaysOnTop() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.alwaysOnTop }, false)
}

// TabSwitcherMode resolves the tab switcher mode.
func (g *GlobalSettings) TabSwitcherMode() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.tabSwitcherMode }, "inOrder")
}

// DisableAnimations resolves the animation kill switch.
func (g *GlobalSettings) DisableAnimations() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.disableAnimations }, false)
}

// StartupActions resolves the action string executed at startup.
func (g *GlobalSettings) StartupActions() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.startupActions }, "")
}

// FocusFollowMouse resolves the focus-follows-mouse toggle.
func (g *GlobalSettings) FocusFollowMouse() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.focusFollowMouse }, false)
}

// WindowingBehavior resolves how new invocations pick a window.
func (g *GlobalSettings) WindowingBehavior() string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[string] { return &n.windowingBehavior }, "useNew")
}

// TrimBlockSelection resolves whether block selections trim trailing
// whitespace.
func (g *GlobalSettings) TrimBlockSelection() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.trimBlockSelection }, false)
}

// AlwaysShowNotificationIcon resolves the notification area icon toggle.
func (g *GlobalSettings) AlwaysShowNotificationIcon() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.alwaysShowNotificationIcon }, false)
}

// MinimizeToNotificationArea resolves minimizing to the notification area.
func (g *GlobalSettings) MinimizeToNotificationArea() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.minimizeToNotificationArea }, false)
}

// DisabledProfileSources resolves the generator namespaces the user
// switched off.
func (g *GlobalSettings) DisabledProfileSources() []string {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[[]string] { return &n.disabledProfileSources }, nil)
}

// ForceFullRepaintRendering resolves the full-repaint rendering toggle.
func (g *GlobalSettings) ForceFullRepaintRendering() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.forceFullRepaintRendering }, false)
}

// SoftwareRendering resolves the software rendering toggle.
func (g *GlobalSettings) SoftwareRendering() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.softwareRendering }, false)
}

// ForceVTInput resolves the forced VT input toggle.
func (g *GlobalSettings) ForceVTInput() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.forceVTInput }, false)
}

// DetectURLs resolves the hyperlink auto-detection toggle.
func (g *GlobalSettings) DetectURLs() bool {
	return resolveOr(g, globalParents, func(n *GlobalSettings) *Field[bool] { return &n.detectURLs }, true)
}

// layerJSON merges a document's top-level keys into the node. Legacy
// spellings are read before their replacements so a document carrying
// both resolves to the modern key.
func (g *GlobalSettings) layerJSON(json gjson.Result) error {
	if err := decodeField(json, "defaultProfile", &g.unparsedDefaultProfile); err != nil {
		return err
	}
	if err := decodeField(json, "alwaysShowTabs", &g.alwaysShowTabs); err != nil {
		return err
	}
	if err := decodeField(json, "initialRows", &g.initialRows); err != nil {
		return err
	}
	if err := decodeField(json, "initialCols", &g.initialCols); err != nil {
		return err
	}
	if err := decodeField(json, "initialPosition", &g.initialPosition); err != nil {
		return err
	}
	if err := decodeField(json, "centerOnLaunch", &g.centerOnLaunch); err != nil {
		return err
	}
	if err := decodeField(json, "launchMode", &g.launchMode); err != nil {
		return err
	}
	if err := decodeField(json, "showTerminalTitleInTitlebar", &g.showTitleInTitlebar); err != nil {
		return err
	}
	if err := decodeField(json, "showTabsInTitlebar", &g.showTabsInTitlebar); err != nil {
		return err
	}
	if err := decodeField(json, "useAcrylicInTabRow", &g.useAcrylicInTabRow); err != nil {
		return err
	}
	if err := decodeField(json, "language", &g.language); err != nil {
		return err
	}
	if err := decodeField(json, "theme", &g.theme); err != nil {
		return err
	}
	if err := decodeField(json, "tabWidthMode", &g.tabWidthMode); err != nil {
		return err
	}
	if err := decodeField(json, "wordDelimiters", &g.wordDelimiters); err != nil {
		return err
	}
	if err := decodeField(json, "inputServiceWarning", &g.inputServiceWarning); err != nil {
		return err
	}
	if err := decodeField(json, "copyOnSelect", &g.copyOnSelect); err != nil {
		return err
	}
	if err := decodeField(json, "copyFormatting", &g.copyFormatting); err != nil {
		return err
	}
	if err := decodeField(json, "largePasteWarning", &g.largePasteWarning); err != nil {
		return err
	}
	if err := decodeField(json, "multiLinePasteWarning", &g.multiLinePasteWarning); err != nil {
		return err
	}
	if err := decodeField(json, "confirmCloseAllTabs", &g.confirmCloseAllTabs); err != nil {
		return err
	}
	if err := decodeField(json, "snapToGridOnResize", &g.snapToGridOnResize); err != nil {
		return err
	}
	if err := decodeField(json, "startOnUserLogin", &g.startOnUserLogin); err != nil {
		return err
	}
	if err := decodeField(json, "alwaysOnTop", &g.alwaysOnTop); err != nil {
		return err
	}
	// legacy bool spelling, superseded by tabSwitcherMode below
	var useTabSwitcher Field[bool]
	if err := decodeField(json, "useTabSwitcher", &useTabSwitcher); err != nil {
		return err
	}
	if useTabSwitcher.IsSet() {
		if useTabSwitcher.Value() {
			g.tabSwitcherMode.Set("inOrder")
		} else {
			g.tabSwitcherMode.Set("disabled")
		}
	}
	if err := decodeField(json, "tabSwitcherMode", &g.tabSwitcherMode); err != nil {
		return err
	}
	if err := decodeField(json, "disableAnimations", &g.disableAnimations); err != nil {
		return err
	}
	if err := decodeField(json, "startupActions", &g.startupActions); err != nil {
		return err
	}
	if err := decodeField(json, "focusFollowMouse", &g.focusFollowMouse); err != nil {
		return err
	}
	if err := decodeField(json, "windowingBehavior", &g.windowingBehavior); err != nil {
		return err
	}
	if err := decodeField(json, "trimBlockSelection", &g.trimBlockSelection); err != nil {
		return err
	}
	if err := decodeField(json, "alwaysShowNotificationIcon", &g.alwaysShowNotificationIcon); err != nil {
		return err
	}
	if err := decodeField(json, "minimizeToNotificationArea", &g.minimizeToNotificationArea); err != nil {
		return err
	}
	if err := decodeField(json, "disabledProfileSources", &g.disabledProfileSources); err != nil {
		return err
	}
	if err := decodeField(json, "experimental.rendering.forceFullRepaint", &g.forceFullRepaintRendering); err != nil {
		return err
	}
	if err := decodeField(json, "experimental.rendering.software", &g.softwareRendering); err != nil {
		return err
	}
	if err := decodeField(json, "experimental.input.forceVT", &g.forceVTInput); err != nil {
		return err
	}
	if err := decodeField(json, "experimental.detectURLs", &g.detectURLs); err != nil {
		return err
	}

	g.layerSchemes(member(json, "schemes"))

	// legacy key first, so "actions" wins when both are present
	g.keybindingsWarnings = append(g.keybindingsWarnings, g.actionMap.layerJSON(member(json, "keybindings"))...)
	g.keybindingsWarnings = append(g.keybindingsWarnings, g.actionMap.layerJSON(member(json, "actions"))...)

	return nil
}

// layerSchemes reads a "schemes" array, skipping malformed entries.
func (g *GlobalSettings) layerSchemes(schemes gjson.Result) {
	if !schemes.IsArray() {
		return
	}
	schemes.ForEach(func(_, entry gjson.Result) bool {
		if !validColorSchemeObject(entry) {
			logger.Warn("skipping malformed color scheme", "value", entry.Raw)
			return true
		}
		scheme, err := colorSchemeFromJSON(entry)
		if err != nil {
			logger.Warn("skipping color scheme", "error", err)
			return true
		}
		g.AddColorScheme(scheme)
		return true
	})
}

// FinalizeInheritance flattens each parent into this node: the parent's
// action map becomes an inherited layer, its layering warnings are
// surfaced here, and its color schemes are folded into the registry. A
// parent scheme replaces a same-named local one, keeping built-in scheme
// definitions authoritative. Call once, after all parents are inserted.
func (g *GlobalSettings) FinalizeInheritance() {
	for _, parent := range g.parents {
		g.actionMap.InsertParent(parent.actionMap)
		g.keybindingsWarnings = append(g.keybindingsWarnings, parent.keybindingsWarnings...)
		for _, scheme := range parent.colorSchemes {
			g.addInheritedColorScheme(scheme)
		}
	}
	g.actionMap.finalizeInheritance()
}

// Copy deep-copies the globals node and its parent chain.
func (g *GlobalSettings) Copy() *GlobalSettings {
	dup := &GlobalSettings{
		actionMap:      g.actionMap.Copy(),
		colorSchemes:   make(map[string]*ColorScheme, len(g.colorSchemes)),
		schemeOrder:    append([]string(nil), g.schemeOrder...),
		defaultProfile: g.defaultProfile,

		unparsedDefaultProfile:     g.unparsedDefaultProfile,
		alwaysShowTabs:             g.alwaysShowTabs,
		initialRows:                g.initialRows,
		initialCols:                g.initialCols,
		initialPosition:            g.initialPosition,
		centerOnLaunch:             g.centerOnLaunch,
		launchMode:                 g.launchMode,
		showTitleInTitlebar:        g.showTitleInTitlebar,
		showTabsInTitlebar:         g.showTabsInTitlebar,
		useAcrylicInTabRow:         g.useAcrylicInTabRow,
		language:                   g.language,
		theme:                      g.theme,
		tabWidthMode:               g.tabWidthMode,
		wordDelimiters:             g.wordDelimiters,
		inputServiceWarning:        g.inputServiceWarning,
		copyOnSelect:               g.copyOnSelect,
		copyFormatting:             g.copyFormatting,
		largePasteWarning:          g.largePasteWarning,
		multiLinePasteWarning:      g.multiLinePasteWarning,
		confirmCloseAllTabs:        g.confirmCloseAllTabs,
		snapToGridOnResize:         g.snapToGridOnResize,
		startOnUserLogin:           g.startOnUserLogin,
		alwaysOnTop:                g.alwaysOnTop,
		tabSwitcherMode:            g.tabSwitcherMode,
		disableAnimations:          g.disableAnimations,
		startupActions:             g.startupActions,
		focusFollowMouse:           g.focusFollowMouse,
		windowingBehavior:          g.windowingBehavior,
		trimBlockSelection:         g.trimBlockSelection,
		alwaysShowNotificationIcon: g.alwaysShowNotificationIcon,
		minimizeToNotificationArea: g.minimizeToNotificationArea,
		disabledProfileSources:     g.disabledProfileSources,
		forceFullRepaintRendering:  g.forceFullRepaintRendering,
		softwareRendering:          g.softwareRendering,
		forceVTInput:               g.forceVTInput,
		detectURLs:                 g.detectURLs,
	}
	dup.keybindingsWarnings = append([]Warning(nil), g.keybindingsWarnings...)
	for name, scheme := range g.colorSchemes {
		dup.colorSchemes[name] = scheme.Copy()
	}
	if g.disabledProfileSources.IsSet() {
		dup.disabledProfileSources.Set(append([]string(nil), g.disabledProfileSources.Value()...))
	}
	for _, parent := range g.parents {
		dup.parents = append(dup.parents, parent.Copy())
	}
	// FinalizeInheritance wired the action map's parents to the globals
	// parents' maps; restore that shape with the copied parents' maps
	// instead of cloning the chain a second time.
	for i := range g.actionMap.parents {
		dup.actionMap.InsertParent(dup.parents[i].actionMap)
	}
	return dup
}

// emitJSON writes the locally-set global keys onto doc. Schemes and
// actions are emitted by the serializer as their own top-level sections.
func (g *GlobalSettings) emitJSON(doc string) string {
	doc = setIfString(doc, "defaultProfile", &g.unparsedDefaultProfile)
	doc = setIfBool(doc, "alwaysShowTabs", &g.alwaysShowTabs)
	doc = setIfInt(doc, "initialRows", &g.initialRows)
	doc = setIfInt(doc, "initialCols", &g.initialCols)
	doc = setIfString(doc, "initialPosition", &g.initialPosition)
	doc = setIfBool(doc, "centerOnLaunch", &g.centerOnLaunch)
	doc = setIfString(doc, "launchMode", &g.launchMode)
	doc = setIfBool(doc, "showTerminalTitleInTitlebar", &g.showTitleInTitlebar)
	doc = setIfBool(doc, "showTabsInTitlebar", &g.showTabsInTitlebar)
	doc = setIfBool(doc, "useAcrylicInTabRow", &g.useAcrylicInTabRow)
	doc = setIfString(doc, "language", &g.language)
	doc = setIfString(doc, "theme", &g.theme)
	doc = setIfString(doc, "tabWidthMode", &g.tabWidthMode)
	doc = setIfString(doc, "wordDelimiters", &g.wordDelimiters)
	doc = setIfBool(doc, "inputServiceWarning", &g.inputServiceWarning)
	doc = setIfBool(doc, "copyOnSelect", &g.copyOnSelect)
	doc = setIfBool(doc, "copyFormatting", &g.copyFormatting)
	doc = setIfBool(doc, "largePasteWarning", &g.largePasteWarning)
	doc = setIfBool(doc, "multiLinePasteWarning", &g.multiLinePasteWarning)
	doc = setIfBool(doc, "confirmCloseAllTabs", &g.confirmCloseAllTabs)
	doc = setIfBool(doc, "snapToGridOnResize", &g.snapToGridOnResize)
	doc = setIfBool(doc, "startOnUserLogin", &g.startOnUserLogin)
	doc = setIfBool(doc, "alwaysOnTop", &g.alwaysOnTop)
	doc = setIfString(doc, "tabSwitcherMode", &g.tabSwitcherMode)
	doc = setIfBool(doc, "disableAnimations", &g.disableAnimations)
	doc = setIfString(doc, "startupActions", &g.startupActions)
	doc = setIfBool(doc, "focusFollowMouse", &g.focusFollowMouse)
	doc = setIfString(doc, "windowingBehavior", &g.windowingBehavior)
	doc = setIfBool(doc, "trimBlockSelection", &g.trimBlockSelection)
	doc = setIfBool(doc, "alwaysShowNotificationIcon", &g.alwaysShowNotificationIcon)
	doc = setIfBool(doc, "minimizeToNotificationArea", &g.minimizeToNotificationArea)
	if g.disabledProfileSources.IsSet() {
		doc = setStringSlice(doc, "disabledProfileSources", g.disabledProfileSources.Value())
	}
	doc = setIfBool(doc, "experimental.rendering.forceFullRepaint", &g.forceFullRepaintRendering)
	doc = setIfBool(doc, "experimental.rendering.software", &g.softwareRendering)
	doc = setIfBool(doc, "experimental.input.forceVT", &g.forceVTInput)
	doc = setIfBool(doc, "experimental.detectURLs", &g.detectURLs)
	return doc
}
