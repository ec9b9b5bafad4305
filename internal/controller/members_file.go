package controller

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// MembersFile is the on-disk form of a desired membership:
//
//	listId: 8a2b1c
//	members:
//	  - email: ada@example.com
//	    mergeVars:
//	      FNAME: Ada
type MembersFile struct {
	ListID  string          `json:"listId,omitempty"`
	Members []DesiredMember `json:"members"`
}

// LoadMembersFile reads a YAML or JSON members file.
func LoadMembersFile(path string) (*MembersFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read members file: %w", err)
	}

	var file MembersFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode members file %s: %w", path, err)
	}
	for i, m := range file.Members {
		if emailKey(m.Email) == "" {
			return nil, fmt.Errorf("members file %s: entry %d has no email", path, i)
		}
	}
	return &file, nil
}
