package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshdeandev/sams/internal/database"
)

// Document is an intake file holding applicants and scholarships
type Document struct {
	Applicants   []database.Applicant   `json:"applicants" yaml:"applicants"`
	Scholarships []database.Scholarship `json:"scholarships" yaml:"scholarships"`
}

// Store is where imported records are written
type Store interface {
	UpsertApplicant(ctx context.Context, a *database.Applicant) error
	UpsertScholarship(ctx context.Context, s *database.Scholarship) error
}

// Result counts the records written by Import
type Result struct {
	Applicants   int `json:"applicants"`
	Scholarships int `json:"scholarships"`
}

// Parse decodes an intake document. JSON is used for ".json" files, YAML otherwise.
func Parse(data []byte, filename string) (*Document, error) {
	doc := &Document{}

	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	} else {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	}

	for i := range doc.Applicants {
		if doc.Applicants[i].Name == "" {
			return nil, fmt.Errorf("applicant %d: name is required", i+1)
		}
		doc.Applicants[i].FillDefaults()
	}
	for i, s := range doc.Scholarships {
		if s.Name == "" {
			return nil, fmt.Errorf("scholarship %d: name is required", i+1)
		}
	}

	return doc, nil
}

// LoadFile reads and parses an intake document from disk
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intake file: %w", err)
	}
	return Parse(data, path)
}

// Import upserts every record in doc. Applicants are keyed by student ID and
// scholarships by name, so re-importing a file updates rather than duplicates.
func Import(ctx context.Context, store Store, doc *Document) (Result, error) {
	var res Result

	for i := range doc.Scholarships {
		if err := store.UpsertScholarship(ctx, &doc.Scholarships[i]); err != nil {
			return res, fmt.Errorf("scholarship %q: %w", doc.Scholarships[i].Name, err)
		}
		res.Scholarships++
	}

	for i := range doc.Applicants {
		if err := store.UpsertApplicant(ctx, &doc.Applicants[i]); err != nil {
			return res, fmt.Errorf("applicant %q: %w", doc.Applicants[i].Name, err)
		}
		res.Applicants++
	}

	return res, nil
}
