// FILE: shelldeck/settings/actions.go
package settings

import (
	"github.com/tidwall/gjson"
)

// iterateOnColorSchemes marks a command template that is expanded once per
// color scheme; its scheme argument is a placeholder, not a reference.
const iterateOnColorSchemes = "schemes"

// Command is a single named action binding: what to run, the arguments it
// carries, and the key chords bound to it. A command may instead hold a
// submenu of nested commands.
type Command struct {
	Name      string
	Action    string
	Args      map[string]any
	Keys      []string
	IterateOn string
	Nested    map[string]*Command
}

// Copy returns a deep copy of the command and its nested commands.
func (c *Command) Copy() *Command {
	dup := &Command{
		Name:      c.Name,
		Action:    c.Action,
		IterateOn: c.IterateOn,
	}
	if c.Args != nil {
		dup.Args = make(map[string]any, len(c.Args))
		for k, v := range c.Args {
			dup.Args[k] = v
		}
	}
	if c.Keys != nil {
		dup.Keys = append([]string(nil), c.Keys...)
	}
	if c.Nested != nil {
		dup.Nested = make(map[string]*Command, len(c.Nested))
		for k, v := range c.Nested {
			dup.Nested[k] = v.Copy()
		}
	}
	return dup
}

// ActionMap is the inheritable, name-keyed map of commands and
// keybindings. Layering warnings are collected here and surfaced by the
// container after load.
//
// order tracks only commands set on this layer; finalizeInheritance folds
// ancestor commands into the lookup map but keeps them out of order, so
// serialization emits exactly what this layer defined.
type ActionMap struct {
	parents   []*ActionMap
	commands  map[string]*Command
	order     []string
	inherited []string
}

func newActionMap() *ActionMap {
	return &ActionMap{commands: make(map[string]*Command)}
}

// InsertParent appends a lower-priority action map.
func (m *ActionMap) InsertParent(parent *ActionMap) {
	m.parents = append(m.parents, parent)
}

// layerJSON merges an array of command objects into the map. Invalid
// entries produce warnings and are skipped; they never abort the load.
func (m *ActionMap) layerJSON(bindings gjson.Result) []Warning {
	var warnings []Warning

	if !bindings.IsArray() {
		return warnings
	}

	bindings.ForEach(func(_, entry gjson.Result) bool {
		cmd, warn := commandFromJSON(entry)
		if warn != "" {
			warnings = append(warnings, warn)
			return true
		}
		m.set(cmd)
		return true
	})

	return warnings
}

// set stores cmd under its name, keeping first-insertion order for
// serialization. A later entry with the same name replaces the earlier
// one in place.
func (m *ActionMap) set(cmd *Command) {
	if _, exists := m.commands[cmd.Name]; !exists {
		m.order = append(m.order, cmd.Name)
	}
	m.commands[cmd.Name] = cmd
}

// commandFromJSON parses one entry of an actions/keybindings array.
// The "command" key is either a bare action name or an object holding the
// action plus its arguments. A nested "commands" array turns the entry
// into a submenu.
func commandFromJSON(entry gjson.Result) (*Command, Warning) {
	if !entry.IsObject() {
		return nil, WarnFailedToParseCommandJSON
	}

	cmd := &Command{}

	if keys := member(entry, "keys"); keys.Exists() {
		switch {
		case keys.Type == gjson.String:
			cmd.Keys = []string{keys.String()}
		case keys.IsArray():
			for _, k := range keys.Array() {
				cmd.Keys = append(cmd.Keys, k.String())
			}
			if len(cmd.Keys) > 1 {
				return nil, WarnTooManyKeysForChord
			}
		}
	}

	if name := member(entry, "name"); name.Type == gjson.String {
		cmd.Name = name.String()
	}
	if iter := member(entry, "iterateOn"); iter.Type == gjson.String {
		cmd.IterateOn = iter.String()
	}

	if nested := member(entry, "commands"); nested.IsArray() {
		cmd.Nested = make(map[string]*Command)
		nested.ForEach(func(_, sub gjson.Result) bool {
			subCmd, warn := commandFromJSON(sub)
			if warn == "" {
				cmd.Nested[subCmd.Name] = subCmd
			}
			return true
		})
		if cmd.Name == "" {
			return nil, WarnFailedToParseCommandJSON
		}
		return cmd, ""
	}

	action := member(entry, "command")
	switch {
	case action.Type == gjson.String:
		cmd.Action = action.String()
	case action.IsObject():
		cmd.Action = member(action, "action").String()
		cmd.Args = make(map[string]any)
		action.ForEach(func(key, value gjson.Result) bool {
			if key.String() != "action" {
				cmd.Args[key.String()] = value.Value()
			}
			return true
		})
	default:
		return nil, WarnMissingRequiredParameter
	}

	if cmd.Action == "" {
		return nil, WarnMissingRequiredParameter
	}
	if cmd.Name == "" {
		cmd.Name = cmd.Action
	}

	return cmd, ""
}

// finalizeInheritance folds every parent's commands into this map. Parents
// must already be finalized. Local commands win over inherited ones, and
// earlier-inserted parents win over later ones. Calling this twice
// double-inserts; the loader calls it exactly once per node.
func (m *ActionMap) finalizeInheritance() {
	for _, parent := range m.parents {
		for _, name := range parent.allNames() {
			if _, exists := m.commands[name]; !exists {
				m.commands[name] = parent.commands[name]
				m.inherited = append(m.inherited, name)
			}
		}
	}
}

// allNames returns local then inherited command names in insertion order.
func (m *ActionMap) allNames() []string {
	names := make([]string, 0, len(m.order)+len(m.inherited))
	names = append(names, m.order...)
	names = append(names, m.inherited...)
	return names
}

// NameMap returns the flattened view of all commands by name.
func (m *ActionMap) NameMap() map[string]*Command {
	view := make(map[string]*Command, len(m.commands))
	for name, cmd := range m.commands {
		view[name] = cmd
	}
	return view
}

// Command returns the command with the given name, or nil.
func (m *ActionMap) Command(name string) *Command {
	return m.commands[name]
}

// Copy deep-copies the map's own entries. Inherited entries folded in by
// finalizeInheritance stay inherited in the copy. The parent chain is not
// cloned: it mirrors the globals parent chain, and GlobalSettings.Copy
// rewires the copy to the copied parents' maps.
func (m *ActionMap) Copy() *ActionMap {
	dup := newActionMap()
	for _, name := range m.order {
		dup.set(m.commands[name].Copy())
	}
	for _, name := range m.inherited {
		dup.commands[name] = m.commands[name].Copy()
		dup.inherited = append(dup.inherited, name)
	}
	return dup
}

// toJSON renders the commands defined on this layer as a JSON array.
func (m *ActionMap) toJSON() string {
	doc := "[]"
	for _, name := range m.order {
		doc = appendRaw(doc, commandToJSON(m.commands[name]))
	}
	return doc
}

// commandToJSON renders one command entry in the actions-array form.
func commandToJSON(cmd *Command) string {
	doc := "{}"
	if cmd.Name != "" && cmd.Name != cmd.Action {
		doc = setString(doc, "name", cmd.Name)
	}
	if cmd.IterateOn != "" {
		doc = setString(doc, "iterateOn", cmd.IterateOn)
	}
	if len(cmd.Nested) > 0 {
		nested := "[]"
		for _, sub := range cmd.Nested {
			nested = appendRaw(nested, commandToJSON(sub))
		}
		return setRaw(doc, "commands", nested)
	}
	if len(cmd.Args) == 0 {
		doc = setString(doc, "command", cmd.Action)
	} else {
		action := setString("{}", "action", cmd.Action)
		for k, v := range cmd.Args {
			action = setAny(action, k, v)
		}
		doc = setRaw(doc, "command", action)
	}
	if len(cmd.Keys) == 1 {
		doc = setString(doc, "keys", cmd.Keys[0])
	}
	return doc
}

// schemeNameFromCommand extracts the color scheme referenced by a
// setColorScheme action, if any.
func schemeNameFromCommand(cmd *Command) (string, bool) {
	if cmd.Action != "setColorScheme" || cmd.Args == nil {
		return "", false
	}
	name, ok := cmd.Args["colorScheme"].(string)
	return name, ok
}

// hasInvalidColorScheme reports whether the command, or any command nested
// beneath it, references a scheme name missing from schemes. Commands
// templated to iterate over all color schemes are exempt: they expand to
// concrete scheme names later.
func hasInvalidColorScheme(cmd *Command, schemes map[string]*ColorScheme) bool {
	if len(cmd.Nested) > 0 {
		for _, nested := range cmd.Nested {
			if hasInvalidColorScheme(nested, schemes) {
				return true
			}
		}
		return false
	}
	if cmd.IterateOn == iterateOnColorSchemes {
		return false
	}
	if name, ok := schemeNameFromCommand(cmd); ok {
		if _, exists := schemes[name]; !exists {
			return true
		}
	}
	return false
}
