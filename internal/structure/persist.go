// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/jacobe603/dst-submittals-v2/pkg/types"
)

// structureFile is the on-disk JSON document. The structure itself
// round-trips losslessly; the envelope adds audit metadata a human
// editor can ignore.
type structureFile struct {
	SavedAt   time.Time        `json:"saved_at" yaml:"saved_at"`
	Version   string           `json:"version" yaml:"version"`
	Structure *types.Structure `json:"structure" yaml:"structure"`
}

const fileVersion = "v2"

// isYAML selects the encoding by file extension; everything else is JSON.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Save writes the structure as indented JSON (or YAML for .yaml/.yml
// paths) so a human can reorder groups or retitle documents between
// extraction and assembly.
func Save(s *types.Structure, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating structure directory: %w", err)
		}
	}

	doc := structureFile{SavedAt: time.Now().UTC(), Version: fileVersion, Structure: s}
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("marshaling structure: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing structure file %s: %w", path, err)
	}
	return nil
}

// Read parses a structure file without validating it, so callers that
// want to report every problem in an edited file can run Validate
// themselves.
func Read(path string) (*types.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading structure file %s: %w", path, err)
	}

	var doc structureFile
	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing structure file %s: %w", path, err)
	}
	if doc.Structure == nil {
		return nil, fmt.Errorf("structure file %s has no structure document", path)
	}
	return doc.Structure, nil
}

// Load reads a structure file back, validating it before use so an
// edited file fails loudly instead of assembling garbage.
func Load(path string) (*types.Structure, error) {
	st, err := Read(path)
	if err != nil {
		return nil, err
	}
	if errs := Validate(st); len(errs) > 0 {
		return nil, fmt.Errorf("structure file %s invalid: %s", path, errs[0])
	}
	return st, nil
}

// Validate checks invariants an edited structure file can break:
// duplicate tags, unknown roles, cut sheets not in last place, and
// entries with no backing file path.
func Validate(s *types.Structure) []string {
	var errs []string
	seen := make(map[string]bool)

	for i := range s.Groups {
		g := &s.Groups[i]
		if g.Tag == "" {
			errs = append(errs, fmt.Sprintf("group %d has an empty tag", i))
			continue
		}
		if seen[g.Tag] {
			errs = append(errs, fmt.Sprintf("tag %s appears in more than one group", g.Tag))
		}
		seen[g.Tag] = true

		if g.IsCutSheets() && i != len(s.Groups)-1 {
			errs = append(errs, "cut sheets group must be the last group")
		}

		for _, d := range g.Documents {
			switch d.Role {
			case types.RoleTechnicalData, types.RoleFanCurve, types.RoleDrawing,
				types.RoleItemSummary, types.RoleSpecification,
				types.RoleCutsheet, types.RoleUnknown:
			default:
				errs = append(errs, fmt.Sprintf("%s: unknown role %q for %s", g.Tag, d.Role, d.File.Name))
			}
			if d.File.Path == "" {
				errs = append(errs, fmt.Sprintf("%s: document %s has no file path", g.Tag, d.File.Name))
			}
		}
	}

	return errs
}
