package restriction

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the on-disk schema for static restriction configs:
//
//	terms:
//	  - id: 10
//	    paid_only: true
//	    subscription_ids: [1, 2]
//	    access_level: 0
//	content:
//	  - id: 55
//	    terms:
//	      category: [10, 11]
type yamlDocument struct {
	Terms []struct {
		ID              int64 `yaml:"id"`
		PaidOnly        bool  `yaml:"paid_only"`
		SubscriptionIDs []int `yaml:"subscription_ids"`
		AccessLevel     int   `yaml:"access_level"`
	} `yaml:"terms"`
	Content []struct {
		ID    int64             `yaml:"id"`
		Terms map[string][]int64 `yaml:"terms"`
	} `yaml:"content"`
}

// LoadYAML reads a static restriction config into a MemoryStore.
// Intended for sites that manage term restrictions as configuration rather
// than through an admin UI.
func LoadYAML(r io.Reader) (*MemoryStore, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}

	store := NewMemoryStore()

	seenTerms := make(map[int64]struct{}, len(doc.Terms))
	for _, t := range doc.Terms {
		if _, dup := seenTerms[t.ID]; dup {
			return nil, errors.Join(ErrDuplicateTerm, fmt.Errorf("term id %d", t.ID))
		}
		seenTerms[t.ID] = struct{}{}

		store.SetRestriction(TermRestriction{
			TermID:          t.ID,
			PaidOnly:        t.PaidOnly,
			SubscriptionIDs: t.SubscriptionIDs,
			AccessLevel:     t.AccessLevel,
		})
	}

	seenContent := make(map[int64]struct{}, len(doc.Content))
	for _, c := range doc.Content {
		if _, dup := seenContent[c.ID]; dup {
			return nil, errors.Join(ErrDuplicateContent, fmt.Errorf("content id %d", c.ID))
		}
		seenContent[c.ID] = struct{}{}

		for taxonomy, termIDs := range c.Terms {
			store.AttachTerms(c.ID, taxonomy, termIDs...)
		}
	}

	return store, nil
}

// LoadYAMLFile is a convenience wrapper around LoadYAML for file paths.
func LoadYAMLFile(path string) (*MemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}
	defer f.Close()

	return LoadYAML(f)
}
