// FILE: shelldeck/settings/doc.go

// Package settings implements the layered settings model for a terminal
// emulator: in-box defaults, dynamically generated profiles, third-party
// fragment extensions, and the user's own settings file are merged into a
// single validated Settings object with deterministic override precedence.
//
// Profiles and global settings form an acyclic multi-parent inheritance
// graph. A value that is not set on a node is resolved by a depth-first
// walk over its parents in insertion order; the first node that carries
// the value anywhere in its ancestry wins. The whole graph can be cloned
// with shared ancestors interned, and serialized back to a settings
// document losslessly.
//
// Loading:
//
//	s, err := settings.LoadAll(userPath,
//	    settings.WithGenerators(gen),
//	    settings.WithFragmentRoots(fragDir),
//	    settings.WithApplicationState(state),
//	)
//	if err != nil {
//	    // fall back to settings.LoadDefaults()
//	}
//	for _, w := range s.Warnings() { ... }
//
// Layering order (lowest to highest priority for a user profile):
//
//  1. the in-box or generated original of the profile (appended parent)
//  2. fragment profiles carrying an "updates" guid (inserted in front
//     of the original)
//  3. the shared profiles.defaults base layer (parent index 0, wired in
//     last so it outranks fragments)
//  4. the values written in the user's own profile object
//
// A load that produces any usable profile set succeeds; per-item problems
// (a broken fragment file, a failing generator, an unknown color scheme)
// are downgraded to warnings. Only structural failures are fatal: malformed
// user JSON, a type mismatch, or zero profiles after layering.
//
// The package is not internally synchronized. The loader runs to
// completion before anyone observes the container, and mutation methods
// (CreateNewProfile, DuplicateProfile, rename propagation) must be
// serialized by the caller.
package settings
