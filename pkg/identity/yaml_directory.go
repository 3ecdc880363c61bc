package identity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// directoryFile is the on-disk shape accepted by LoadDirectory.
type directoryFile struct {
	Roles map[string][]string `yaml:"roles"`
	Users map[string]struct {
		Email string `yaml:"email"`
	} `yaml:"users"`
}

// LoadDirectory reads a YAML directory fixture into a MemoryDirectory.
// The expected shape is:
//
//	roles:
//	  oncall: [u1, u2]
//	users:
//	  u1:
//	    email: u1@example.com
//
// Useful for demos and deployments where role membership is provisioned
// as configuration rather than served by a live identity store.
func LoadDirectory(path string) (*MemoryDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("identity: read directory file: %w", err)
	}

	var f directoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("identity: parse directory file: %w", err)
	}

	d := NewMemoryDirectory()
	for role, members := range f.Roles {
		d.SetRole(role, members...)
	}
	for userID, u := range f.Users {
		if u.Email != "" {
			d.SetEmail(userID, u.Email)
		}
	}
	return d, nil
}
