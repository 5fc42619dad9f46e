package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pedalbuild/bomkit/pkg/application/services/aggregate"
	"github.com/pedalbuild/bomkit/pkg/application/services/extract"
	"github.com/pedalbuild/bomkit/pkg/application/services/sourcing"
	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/repositories/csv"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/repositories/memory"
	"github.com/pedalbuild/bomkit/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	BOMFiles      []string
	CSVFiles      []string
	InventoryFile string
	TablesFile    string
	Builds        int
	Format        string
	OutputDir     string
	NoInject      bool
	NoHardware    bool
	Verbose       bool
	Logger        *zap.Logger
}

// PlanCommand merges one or more BOM sources, nets them against
// inventory, and produces an enriched shopping list.
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{
		config: config,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	tables, err := config.Load(c.config.TablesFile)
	if err != nil {
		return fmt.Errorf("error loading tables: %w", err)
	}

	log := c.config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	session := aggregate.NewSession(tables, log)
	loader := csv.NewLoader(tables)

	if c.config.Verbose {
		fmt.Println("📂 Loading BOM sources...")
	}

	startTime := time.Now()

	for _, file := range c.config.BOMFiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading BOM %s: %w", file, err)
		}
		src := extract.NewTextSource(sourceName(file), string(data))
		stats, err := session.IngestSource(src)
		if err != nil {
			return fmt.Errorf("error ingesting %s: %w", file, err)
		}
		if c.config.Verbose {
			fmt.Printf("  %s: %d lines, %d parts, %d residuals\n",
				stats.Source, stats.LinesRead, stats.PartsFound, stats.Residuals)
		}
	}

	for _, file := range c.config.CSVFiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		records, err := loader.LoadBOMRows(file)
		if err != nil {
			return fmt.Errorf("error reading BOM %s: %w", file, err)
		}
		src := extract.NewCSVRowSource(sourceName(file), records)
		stats, err := session.IngestSource(src)
		if err != nil {
			return fmt.Errorf("error ingesting %s: %w", file, err)
		}
		if c.config.Verbose {
			fmt.Printf("  %s: %d lines, %d parts, %d residuals\n",
				stats.Source, stats.LinesRead, stats.PartsFound, stats.Residuals)
		}
	}

	engine := sourcing.New(tables, log)

	if !c.config.NoInject {
		if c.config.Verbose {
			fmt.Println("🔄 Injecting support components...")
		}
		session.MergeInjected(engine.Inject(session.Parts()))
	}

	if !c.config.NoHardware && c.config.Builds > 0 {
		if c.config.Verbose {
			fmt.Printf("🔄 Adding standard hardware for %d build(s)...\n", c.config.Builds)
		}
		session.MergeInjected(engine.StandardHardware(session.Parts(), c.config.Builds))
	}

	inventoryRepo := memory.NewInventoryRepository()
	if c.config.InventoryFile != "" {
		records, err := loader.LoadInventory(c.config.InventoryFile)
		if err != nil {
			return fmt.Errorf("error loading inventory: %w", err)
		}
		if err := inventoryRepo.LoadRecords(records); err != nil {
			return fmt.Errorf("failed to load inventory into repository: %w", err)
		}
		if c.config.Verbose {
			fmt.Printf("  Inventory records: %d\n", len(records))
		}
	}

	snapshot, err := inventoryRepo.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot inventory: %w", err)
	}

	results := engine.Enrich(session.ComputeNetNeeds(snapshot))
	elapsed := time.Since(startTime)

	if c.config.Verbose {
		fmt.Printf("✅ Plan computed in %v\n\n", elapsed)
	}

	if err := c.writeOutput(session, results); err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Println("🏁 Plan complete!")
	}

	return nil
}

func (c *PlanCommand) writeOutput(session *aggregate.Session, results []entities.NetNeedsResult) error {
	switch c.config.Format {
	case "csv":
		if err := writeCSVFile(filepath.Join(c.config.OutputDir, "parts.csv"), func(f *os.File) error {
			return output.WritePartsCSV(f, session.Parts())
		}); err != nil {
			return err
		}
		if err := writeCSVFile(filepath.Join(c.config.OutputDir, "shopping_list.csv"), func(f *os.File) error {
			return output.WriteShoppingListCSV(f, results)
		}); err != nil {
			return err
		}
		if c.config.Verbose {
			fmt.Printf("Wrote parts.csv and shopping_list.csv to %s\n", c.config.OutputDir)
		}
	case "text", "":
		output.WriteParts(os.Stdout, session.Parts())
		fmt.Println()
		output.WriteShoppingList(os.Stdout, results)
		if residuals := session.Residuals(); len(residuals) > 0 {
			fmt.Println()
			output.WriteResiduals(os.Stdout, residuals)
		}
		if c.config.Verbose {
			fmt.Println()
			output.WriteStats(os.Stdout, session.Stats())
		}
	default:
		return fmt.Errorf("unknown output format: %s", c.config.Format)
	}
	return nil
}

func (c *PlanCommand) validateInputs() error {
	if len(c.config.BOMFiles)+len(c.config.CSVFiles) == 0 {
		return fmt.Errorf("at least one BOM file is required")
	}
	for _, file := range append(append([]string{}, c.config.BOMFiles...), c.config.CSVFiles...) {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("BOM file not found: %s", file)
		}
	}
	if c.config.InventoryFile != "" {
		if _, err := os.Stat(c.config.InventoryFile); err != nil {
			return fmt.Errorf("inventory file not found: %s", c.config.InventoryFile)
		}
	}
	if c.config.Builds < 0 {
		return fmt.Errorf("builds must be non-negative")
	}
	return nil
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// sourceName derives a human-readable source label from a file path.
func sourceName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
