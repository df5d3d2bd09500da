// FILE: shelldeck/settings/example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/shelldeck/settings"
)

// zshGenerator is a minimal dynamic profile generator: it offers a zsh
// profile when a zsh binary is installed.
type zshGenerator struct{}

func (zshGenerator) Namespace() string { return "Local.ZshGenerator" }

func (zshGenerator) GenerateProfiles() ([]*settings.Profile, error) {
	path, err := exec.LookPath("zsh")
	if err != nil {
		return nil, nil
	}
	p := settings.NewProfile(settings.OriginGenerated)
	p.SetName("Zsh")
	p.SetCommandline(path + " -l")
	return []*settings.Profile{p}, nil
}

func main() {
	dir, err := os.MkdirTemp("", "settings-example")
	if err != nil {
		log.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	settingsPath := filepath.Join(dir, "settings.json")
	statePath := filepath.Join(dir, "state.toml")

	state, err := settings.OpenApplicationState(statePath)
	if err != nil {
		log.Fatalf("failed to open application state: %v", err)
	}

	// First load creates the settings file from the stock template and
	// fills in the default profile.
	s, err := settings.LoadAll(settingsPath,
		settings.WithGenerators(zshGenerator{}),
		settings.WithApplicationState(state),
		settings.WithFragmentRoots(filepath.Join(dir, "fragments")),
	)
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	fmt.Println("profiles:")
	for i, p := range s.ActiveProfiles() {
		marker := " "
		if p == s.DefaultProfile() {
			marker = "*"
		}
		fmt.Printf("  %s [%d] %-16s %s\n", marker, i, p.Name(), p.Commandline())
	}

	fmt.Println("color schemes:")
	for name := range s.ColorSchemes() {
		fmt.Printf("    %s\n", name)
	}

	for _, w := range s.Warnings() {
		fmt.Printf("warning: %s\n", w)
	}

	// Duplicate the default profile and tweak the copy.
	dup := s.DuplicateProfile(s.DefaultProfile())
	dup.SetStartingDirectory(dir)
	dup.DefaultAppearance().SetColorSchemeName("One Half Dark")

	if err := settings.Save(s, settingsPath); err != nil {
		log.Fatalf("failed to save settings: %v", err)
	}
	fmt.Printf("saved %s with %d profiles\n", settingsPath, len(s.AllProfiles()))
}
