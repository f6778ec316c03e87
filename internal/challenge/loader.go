// Package challenge loads challenge definitions and orchestrates
// submissions: definitions + user code + validator + progress tracker.
package challenge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codequest-dev/codequest/internal/domain"
	"gopkg.in/yaml.v3"
)

// PackFile is the YAML structure for a challenge pack.
type PackFile struct {
	ID          string                       `yaml:"id"`
	Name        string                       `yaml:"name"`
	Version     string                       `yaml:"version"`
	Description string                       `yaml:"description"`
	Challenges  []domain.ChallengeDefinition `yaml:"challenges"`
}

// Loader reads challenge definitions from a directory. YAML files are packs,
// JSON files are plain definition arrays.
type Loader struct {
	basePath string
}

// NewLoader creates a loader rooted at basePath.
func NewLoader(basePath string) *Loader {
	return &Loader{basePath: basePath}
}

// LoadAll loads every challenge file in the base directory, sorted by
// filename for a stable catalog order.
func (l *Loader) LoadAll() ([]*domain.ChallengeDefinition, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("read challenges directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var all []*domain.ChallengeDefinition
	for _, name := range names {
		defs, err := l.loadFile(filepath.Join(l.basePath, name))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		all = append(all, defs...)
	}
	return all, nil
}

func (l *Loader) loadFile(path string) ([]*domain.ChallengeDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var defs []domain.ChallengeDefinition
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	} else {
		var pack PackFile
		if err := yaml.Unmarshal(data, &pack); err != nil {
			return nil, fmt.Errorf("parse pack: %w", err)
		}
		defs = pack.Challenges
	}

	out := make([]*domain.ChallengeDefinition, 0, len(defs))
	for i := range defs {
		def := defs[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if len(def.Requirements) == 0 {
			// degenerate but allowed: scores 1.0 on any submission
			slog.Warn("challenge has no requirements", "id", def.ID)
		}
		if def.Hints == nil {
			def.Hints = []string{}
		}
		out = append(out, &def)
	}
	return out, nil
}
