package knowledge

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Entries []Entry `yaml:"entries"`
}

// Seed loads the curated starter entries into the store.
func Seed(ctx context.Context, store *Store) error {
	var file seedFile
	if err := yaml.Unmarshal(seedYAML, &file); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}
	for _, entry := range file.Entries {
		if err := store.AddEntry(ctx, entry); err != nil {
			return fmt.Errorf("seed entry %s: %w", entry.ID, err)
		}
	}
	return nil
}
