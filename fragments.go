// FILE: shelldeck/settings/fragments.go
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// A Fragment is one extension-supplied settings snippet: new profiles,
// tweaks to existing profiles, and extra color schemes. Fragments come
// from files under the fragment roots, where each subdirectory names the
// publishing source, or from an ExtensionCatalog.
type Fragment struct {
	Source  string
	Path    string
	Content []byte
}

// ExtensionCatalog supplies fragments from installed extensions, for
// hosts that track extensions somewhere other than the fragment
// directories. Implementations must be safe for concurrent use.
type ExtensionCatalog interface {
	FragmentExtensions() ([]Fragment, error)
}

var fragmentExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// collectFragments gathers fragment documents from the given root
// directories and the optional catalog. Sources the user disabled are
// skipped entirely. Unreadable roots or files are logged and skipped;
// fragments never abort a load.
func collectFragments(roots []string, catalog ExtensionCatalog, disabled []string) []Fragment {
	var fragments []Fragment

	for _, root := range roots {
		sources, err := os.ReadDir(root)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("failed to read fragment root", "path", root, "error", err)
			}
			continue
		}
		for _, sourceDir := range sources {
			if !sourceDir.IsDir() {
				continue
			}
			source := sourceDir.Name()
			if generatorDisabled(source, disabled) {
				continue
			}
			dir := filepath.Join(root, source)
			files, err := os.ReadDir(dir)
			if err != nil {
				logger.Warn("failed to read fragment directory", "path", dir, "error", err)
				continue
			}
			for _, file := range files {
				if file.IsDir() || !fragmentExtensions[strings.ToLower(filepath.Ext(file.Name()))] {
					continue
				}
				path := filepath.Join(dir, file.Name())
				content, err := os.ReadFile(path)
				if err != nil {
					logger.Warn("failed to read fragment file", "path", path, "error", err)
					continue
				}
				fragments = append(fragments, Fragment{Source: source, Path: path, Content: content})
			}
		}
	}

	if catalog != nil {
		extra, err := catalog.FragmentExtensions()
		if err != nil {
			logger.Warn("extension catalog failed", "error", err)
		}
		for _, frag := range extra {
			if frag.Source == "" || generatorDisabled(frag.Source, disabled) {
				continue
			}
			fragments = append(fragments, frag)
		}
	}

	return fragments
}

// parsedFragment is the digested form of one fragment document.
type parsedFragment struct {
	source   string
	profiles []*Profile
	updates  []fragmentUpdate
	schemes  []*ColorScheme
}

// fragmentUpdate modifies an existing profile identified by guid.
type fragmentUpdate struct {
	target  uuid.UUID
	profile *Profile
}

// parseFragment digests one fragment document. YAML fragments are
// converted to JSON first so the same layering code handles both. Any
// parse failure rejects the whole file; malformed individual entries are
// logged and skipped.
func parseFragment(frag Fragment) (*parsedFragment, error) {
	content := string(frag.Content)

	ext := strings.ToLower(filepath.Ext(frag.Path))
	if ext == ".yaml" || ext == ".yml" {
		converted, err := yamlToJSON(frag.Content)
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", frag.Path, err)
		}
		content = converted
	}

	doc, err := parseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("fragment %s: %w", frag.Path, err)
	}

	parsed := &parsedFragment{source: frag.Source}

	if profiles := member(doc, "profiles"); profiles.IsArray() {
		profiles.ForEach(func(_, entry gjson.Result) bool {
			if !entry.IsObject() {
				return true
			}
			if updates := member(entry, "updates"); updates.Exists() {
				target, err := uuid.Parse(updates.String())
				if err != nil {
					logger.Warn("fragment profile has invalid updates guid",
						"source", frag.Source, "value", updates.String())
					return true
				}
				p := NewProfile(OriginFragment)
				p.SetSource(frag.Source)
				if err := p.layerJSON(entry); err != nil {
					logger.Warn("skipping fragment profile", "source", frag.Source, "error", err)
					return true
				}
				// the updates key is addressing, not identity
				p.clearGuid()
				parsed.updates = append(parsed.updates, fragmentUpdate{target: target, profile: p})
				return true
			}

			p := NewProfile(OriginFragment)
			p.SetSource(frag.Source)
			if err := p.layerJSON(entry); err != nil {
				logger.Warn("skipping fragment profile", "source", frag.Source, "error", err)
				return true
			}
			if !p.HasName() {
				logger.Warn("skipping fragment profile without name", "source", frag.Source)
				return true
			}
			parsed.profiles = append(parsed.profiles, p)
			return true
		})
	}

	if schemes := member(doc, "schemes"); schemes.IsArray() {
		schemes.ForEach(func(_, entry gjson.Result) bool {
			if !validColorSchemeObject(entry) {
				logger.Warn("skipping malformed fragment scheme", "source", frag.Source)
				return true
			}
			scheme, err := colorSchemeFromJSON(entry)
			if err != nil {
				logger.Warn("skipping fragment scheme", "source", frag.Source, "error", err)
				return true
			}
			parsed.schemes = append(parsed.schemes, scheme)
			return true
		})
	}

	return parsed, nil
}

// yamlToJSON converts a YAML document to its JSON equivalent.
func yamlToJSON(content []byte) (string, error) {
	var tree any
	if err := yaml.Unmarshal(content, &tree); err != nil {
		return "", fmt.Errorf("invalid YAML: %w", err)
	}
	tree = normalizeYAML(tree)
	out, err := json.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("YAML does not map to JSON: %w", err)
	}
	return string(out), nil
}

// normalizeYAML rewrites map[any]any trees, which older YAML emitters
// produce, into the map[string]any form encoding/json accepts.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
