package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/bburn/internal/model"
)

// ErrInvalidCategory is wrapped by every category validation failure.
var ErrInvalidCategory = errors.New("invalid category")

// categoryFile is the on-disk YAML shape.
type categoryFile struct {
	Categories []categoryDef `yaml:"categories"`
}

type categoryDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Group    string `yaml:"group"`
	Subgroup string `yaml:"subgroup,omitempty"`
	Contra   bool   `yaml:"contra,omitempty"`
}

// DefaultCategories is the chart used when no categories file is configured.
func DefaultCategories() []model.Category {
	comp := model.SubgroupCompensation
	other := model.SubgroupOther
	return []model.Category{
		{ID: "hosting", Name: "Hosting & Infrastructure", Group: model.GroupCostOfSales, Subgroup: other},
		{ID: "support-staff", Name: "Support Staff", Group: model.GroupCostOfSales, Subgroup: comp},
		{ID: "payment-fees", Name: "Payment Processing", Group: model.GroupCostOfSales, Subgroup: other},
		{ID: "salaries", Name: "Salaries", Group: model.GroupOpex, Subgroup: comp},
		{ID: "payroll-taxes", Name: "Payroll Taxes", Group: model.GroupOpex, Subgroup: comp},
		{ID: "benefits", Name: "Benefits", Group: model.GroupOpex, Subgroup: comp},
		{ID: "rent", Name: "Rent & Facilities", Group: model.GroupOpex, Subgroup: other},
		{ID: "software", Name: "Software & Subscriptions", Group: model.GroupOpex, Subgroup: other},
		{ID: "marketing", Name: "Marketing", Group: model.GroupOpex, Subgroup: other},
		{ID: "travel", Name: "Travel", Group: model.GroupOpex, Subgroup: other},
		{ID: "professional-fees", Name: "Professional Fees", Group: model.GroupOpex, Subgroup: other},
		{ID: "capitalized-labor", Name: "Capitalized Labor", Group: model.GroupOpex, Subgroup: comp, Contra: true},
	}
}

// LoadCategories reads a YAML categories file.
func LoadCategories(path string) ([]model.Category, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied categories path
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return ParseCategories(data)
}

// ParseCategories decodes and validates a YAML category list.
func ParseCategories(data []byte) ([]model.Category, error) {
	var f categoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("%w: file defines no categories", ErrInvalidCategory)
	}

	seen := make(map[string]struct{}, len(f.Categories))
	out := make([]model.Category, 0, len(f.Categories))
	for i, def := range f.Categories {
		id := strings.TrimSpace(def.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidCategory, i+1)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCategory, id)
		}
		seen[id] = struct{}{}

		group, err := model.ParseGroup(strings.TrimSpace(def.Group))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCategory, id, err)
		}

		name := strings.TrimSpace(def.Name)
		if name == "" {
			name = id
		}
		subgroup := strings.TrimSpace(def.Subgroup)
		if subgroup == "" {
			subgroup = model.SubgroupOther
		}
		out = append(out, model.Category{
			ID:       id,
			Name:     name,
			Group:    group,
			Subgroup: subgroup,
			Contra:   def.Contra,
		})
	}
	return out, nil
}

// MarshalCategories renders categories in the file format LoadCategories reads.
func MarshalCategories(categories []model.Category) ([]byte, error) {
	f := categoryFile{Categories: make([]categoryDef, len(categories))}
	for i, c := range categories {
		f.Categories[i] = categoryDef{
			ID:       c.ID,
			Name:     c.Name,
			Group:    string(c.Group),
			Subgroup: c.Subgroup,
			Contra:   c.Contra,
		}
	}
	return yaml.Marshal(f)
}

// ResolveCategories loads the configured categories file, or the defaults
// when none is set. override takes precedence over the config.
func ResolveCategories(cfg Config, override string) ([]model.Category, error) {
	path := override
	if path == "" {
		path = cfg.General.CategoriesFile
	}
	if path == "" {
		return DefaultCategories(), nil
	}
	return LoadCategories(path)
}
