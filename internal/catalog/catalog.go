// Package catalog loads the survey question catalog: the wellness categories
// and the questions asked in each.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

var (
	ErrEmptyCatalog      = errors.New("catalog has no categories")
	ErrDuplicateCategory = errors.New("duplicate category in catalog")
	ErrDuplicateQuestion = errors.New("duplicate question id in catalog")
	ErrReservedCategory  = errors.New("category name is reserved")
)

// reservedNames collide with fixed API path segments such as /scores/history.
var reservedNames = map[string]bool{"history": true}

type Question struct {
	ID   string `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

type Category struct {
	Name      string     `yaml:"name" json:"name"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

type file struct {
	Categories []Category `yaml:"categories"`
}

type Catalog struct {
	order      []string
	categories map[string]*Category
}

func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Categories)
}

func New(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{categories: make(map[string]*Category, len(categories))}
	seenQuestions := make(map[string]bool)

	for i := range categories {
		cat := categories[i]
		cat.Name = strings.TrimSpace(cat.Name)
		if cat.Name == "" {
			return nil, fmt.Errorf("category #%d has no name", i+1)
		}
		if reservedNames[cat.Name] {
			return nil, fmt.Errorf("%w: %s", ErrReservedCategory, cat.Name)
		}
		if _, exists := c.categories[cat.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, cat.Name)
		}
		for _, q := range cat.Questions {
			if seenQuestions[q.ID] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
			}
			seenQuestions[q.ID] = true
		}

		c.categories[cat.Name] = &cat
		c.order = append(c.order, cat.Name)
	}

	return c, nil
}

// Categories returns category names in file order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.order...)
}

// QuestionCount returns how many questions a category has, or
// domain.ErrUnknownCategory when the name is not in the catalog.
func (c *Catalog) QuestionCount(category string) (int, error) {
	cat, ok := c.categories[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	return len(cat.Questions), nil
}

func (c *Catalog) Get(category string) (Category, bool) {
	cat, ok := c.categories[category]
	if !ok {
		return Category{}, false
	}
	return *cat, true
}
