package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
	"github.com/pedalbuild/bomkit/pkg/domain/services/classify"
	"github.com/pedalbuild/bomkit/pkg/domain/services/valuenorm"
	"github.com/pedalbuild/bomkit/pkg/infrastructure/config"
)

// Loader handles loading BOM and stock data from CSV files
type Loader struct {
	normalizer *valuenorm.Normalizer
	classifier *classify.Classifier
}

// NewLoader creates a new CSV loader over the lookup tables.
func NewLoader(tables *config.Tables) *Loader {
	return &Loader{
		normalizer: valuenorm.New(tables),
		classifier: classify.New(tables, nil),
	}
}

// LoadBOMRows reads a BOM CSV file and returns its raw records for the
// extractor's CSV source. Column interpretation (header guessing,
// designator ranges) is the extractor's concern, not the loader's.
func (l *Loader) LoadBOMRows(filename string) ([][]string, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read BOM CSV: %w", err)
	}
	return records, nil
}

// LoadInventory reads a user stock CSV with columns Category, Part,
// Qty. Part values are normalized with the same pipeline as BOM values
// so that stock keys match part-map keys exactly. Rows with an unknown
// category or unparseable quantity are skipped.
func (l *Loader) LoadInventory(filename string) ([]entities.InventoryRecord, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("inventory CSV must have header and at least one data row")
	}

	catIdx, partIdx, qtyIdx := -1, -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "category":
			catIdx = i
		case "part", "value":
			partIdx = i
		case "qty", "quantity":
			qtyIdx = i
		}
	}
	if catIdx < 0 || partIdx < 0 || qtyIdx < 0 {
		return nil, fmt.Errorf("inventory CSV header must name category, part and qty columns, got: %v", records[0])
	}

	var out []entities.InventoryRecord
	for _, rec := range records[1:] {
		if len(rec) <= catIdx || len(rec) <= partIdx || len(rec) <= qtyIdx {
			continue
		}
		cat, ok := entities.ParseCategory(strings.TrimSpace(rec[catIdx]))
		if !ok {
			continue
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(rec[qtyIdx]), 10, 64)
		if err != nil || qty < 0 {
			continue
		}
		part := strings.TrimSpace(rec[partIdx])
		if part == "" {
			continue
		}

		// Stock keys must derive exactly like part-map keys so that
		// "10,000" in a stock file matches "10k" from a BOM.
		key := entities.PartKey{Category: cat, Value: strings.ToUpper(part)}
		switch {
		case cat.IsPassive():
			if v, err := l.normalizer.NormalizeFor(part, cat); err == nil {
				key.Value = l.normalizer.Render(v)
			}
		case cat == entities.Potentiometer:
			clean := l.classifier.CleanPotValue(part)
			if v, err := l.normalizer.NormalizeFor(clean, cat); err == nil {
				key.Value = l.normalizer.Render(v)
				key.Token = l.classifier.TaperName(part)
			}
		}
		out = append(out, entities.InventoryRecord{Key: key, OnHand: entities.Quantity(qty)})
	}
	return out, nil
}

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}
