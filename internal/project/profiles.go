package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/FabricCut/internal/model"
)

// profilesFile is the YAML document holding custom machine profiles.
type profilesFile struct {
	Profiles []model.MachineProfile `yaml:"profiles"`
}

// DefaultProfilesPath returns the default file path for custom machine profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.yaml")
}

// SaveCustomProfiles saves custom profiles to a YAML file.
func SaveCustomProfiles(path string, profiles []model.MachineProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(profilesFile{Profiles: profiles})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a YAML file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.MachineProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.MachineProfile{}, nil
		}
		return nil, err
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
	}

	for i, p := range file.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d in %s has no name", i+1, path)
		}
		if err := checkRoles(p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		// Ensure loaded profiles are not marked as built-in
		file.Profiles[i].IsBuiltIn = false
	}
	if file.Profiles == nil {
		file.Profiles = []model.MachineProfile{}
	}
	return file.Profiles, nil
}

// ExportProfile exports a single profile to a YAML file (for sharing).
func ExportProfile(path string, profile model.MachineProfile) error {
	profile.IsBuiltIn = false
	data, err := yaml.Marshal(profile)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a YAML file.
func ImportProfile(path string) (model.MachineProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.MachineProfile{}, err
	}

	var profile model.MachineProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return model.MachineProfile{}, err
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.MachineProfile{}, errors.New("imported profile has no name")
	}
	if err := checkRoles(profile); err != nil {
		return model.MachineProfile{}, err
	}
	return profile, nil
}

// checkRoles rejects snippet entries for roles the generator does not know.
func checkRoles(p model.MachineProfile) error {
	known := make(map[model.SnippetRole]bool, len(model.SnippetRoles))
	for _, r := range model.SnippetRoles {
		known[r] = true
	}
	for role := range p.Snippets {
		if !known[role] {
			return fmt.Errorf("unknown snippet role %q", role)
		}
	}
	return nil
}
