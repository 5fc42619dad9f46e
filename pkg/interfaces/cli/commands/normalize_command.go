package commands

import (
	"context"
	"fmt"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/domain/services/valuenorm"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// NormalizeConfig holds configuration for the normalize command
type NormalizeConfig struct {
	Values     []string
	Category   string
	TablesFile string
}

// NormalizeCommand resolves raw value tokens to their canonical form,
// useful for debugging how a BOM line will be merged.
type NormalizeCommand struct {
	config NormalizeConfig
}

// NewNormalizeCommand creates a new normalize command with the given configuration
func NewNormalizeCommand(config NormalizeConfig) *NormalizeCommand {
	return &NormalizeCommand{
		config: config,
	}
}

// Execute runs the normalize command
func (c *NormalizeCommand) Execute(ctx context.Context) error {
	if len(c.config.Values) == 0 {
		return fmt.Errorf("at least one value is required")
	}

	tables, err := config.Load(c.config.TablesFile)
	if err != nil {
		return fmt.Errorf("error loading tables: %w", err)
	}

	category := entities.Unknown
	if c.config.Category != "" {
		cat, ok := entities.ParseCategory(c.config.Category)
		if !ok {
			return fmt.Errorf("unknown category: %s", c.config.Category)
		}
		category = cat
	}

	normalizer := valuenorm.New(tables)

	fmt.Printf("%-14s %-18s %-14s %-12s\n", "Raw", "Canonical", "Display", "Magnitude")
	for _, raw := range c.config.Values {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := normalizer.NormalizeFor(raw, category)
		if err != nil {
			fmt.Printf("%-14s ERROR: %v\n", raw, err)
			continue
		}
		fmt.Printf("%-14s %-18s %-14s %-12s\n",
			raw, normalizer.RenderWithUnit(v), normalizer.Display(v), v.Magnitude.String())
	}

	return nil
}
