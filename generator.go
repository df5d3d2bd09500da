// FILE: shelldeck/settings/generator.go
package settings

import "fmt"

// ProfileGenerator produces dynamic profiles for an installed toolchain
// or subsystem. Generated profiles are identified by the generator's
// namespace, which also keys the user's disabledProfileSources entry and
// the seen-profile bookkeeping in application state.
type ProfileGenerator interface {
	// Namespace returns the stable source identifier for the generator,
	// e.g. "Local.WslGenerator".
	Namespace() string

	// GenerateProfiles returns freshly built profiles. Implementations
	// probe the local machine, so results vary between hosts and runs.
	GenerateProfiles() ([]*Profile, error)
}

// runGenerator invokes one generator with error and panic isolation. A
// broken generator loses only its own profiles; the rest of the load
// proceeds.
func runGenerator(gen ProfileGenerator) (profiles []*Profile, err error) {
	defer func() {
		if r := recover(); r != nil {
			profiles = nil
			err = fmt.Errorf("profile generator %s panicked: %v", gen.Namespace(), r)
		}
	}()

	profiles, err = gen.GenerateProfiles()
	if err != nil {
		return nil, fmt.Errorf("profile generator %s: %w", gen.Namespace(), err)
	}

	for _, p := range profiles {
		p.SetSource(gen.Namespace())
	}
	return profiles, nil
}

// generatorDisabled reports whether the user listed the namespace in
// disabledProfileSources.
func generatorDisabled(namespace string, disabled []string) bool {
	for _, d := range disabled {
		if d == namespace {
			return true
		}
	}
	return false
}
