package catalog

import (
	_ "embed"
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

type builtinData struct {
	Exercises []builtinExercise `yaml:"exercises"`
	Gadgets   []builtinGadget   `yaml:"gadgets"`
}

type builtinExercise struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Muscles     []string `yaml:"muscles"`
	Gadgets     []string `yaml:"gadgets"`
}

type builtinGadget struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// loadBuiltin parses the embedded catalog data.
func loadBuiltin() ([]models.Exercise, []models.Gadget, error) {
	var data builtinData
	if err := yaml.Unmarshal(builtinYAML, &data); err != nil {
		return nil, nil, fmt.Errorf("parsing built-in catalog: %w", err)
	}

	exercises := make([]models.Exercise, 0, len(data.Exercises))
	for _, e := range data.Exercises {
		muscles := e.Muscles
		if muscles == nil {
			muscles = []string{}
		}
		gadgets := e.Gadgets
		if gadgets == nil {
			gadgets = []string{}
		}
		exercises = append(exercises, models.Exercise{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Muscles:     muscles,
			Gadgets:     gadgets,
		})
	}

	gadgets := make([]models.Gadget, 0, len(data.Gadgets))
	for _, g := range data.Gadgets {
		gadgets = append(gadgets, models.Gadget{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
		})
	}

	return exercises, gadgets, nil
}
