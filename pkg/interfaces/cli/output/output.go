package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
)

// WriteParts renders the merged part map as a human-readable table
// with per-source provenance.
func WriteParts(w io.Writer, parts []*entities.PartRecord) {
	fmt.Fprintf(w, "Merged Parts\n")
	fmt.Fprintf(w, "============\n\n")
	fmt.Fprintf(w, "%-22s %-18s %6s  %-8s  %s\n", "Category", "Value", "Qty", "Origin", "Designators")
	fmt.Fprintf(w, "%-22s %-18s %6s  %-8s  %s\n", strings.Repeat("-", 22), strings.Repeat("-", 18), "------", "--------", "-----------")

	for _, rec := range parts {
		origin := ""
		if rec.Origin == entities.SystemGenerated {
			origin = "[AUTO]"
		}
		fmt.Fprintf(w, "%-22s %-18s %6d  %-8s  %s\n",
			rec.Key.Category,
			displayValue(rec),
			rec.Quantity,
			origin,
			strings.Join(entities.DeduplicateRefs(rec.Refs), ", "),
		)
		for _, src := range sortedSources(rec) {
			fmt.Fprintf(w, "%-22s   from %s: %s\n", "", src, strings.Join(rec.Sources[src], ", "))
		}
	}
}

// WriteShoppingList renders net needs with buffers and rationales.
func WriteShoppingList(w io.Writer, results []entities.NetNeedsResult) {
	fmt.Fprintf(w, "Shopping List\n")
	fmt.Fprintf(w, "=============\n\n")
	fmt.Fprintf(w, "%-22s %-18s %5s %5s %5s %5s  %s\n", "Category", "Value", "Need", "Have", "Short", "Buy", "Notes")
	fmt.Fprintf(w, "%-22s %-18s %5s %5s %5s %5s  %s\n", strings.Repeat("-", 22), strings.Repeat("-", 18), "-----", "-----", "-----", "-----", "-----")

	for _, r := range results {
		fmt.Fprintf(w, "%-22s %-18s %5d %5d %5d %5d  %s\n",
			r.Part.Key.Category,
			displayValue(r.Part),
			r.Required,
			r.OnHand,
			r.Deficit,
			r.BuyQuantity,
			r.Rationale,
		)
	}
}

// WriteResiduals renders the diagnostic report of unresolved lines.
func WriteResiduals(w io.Writer, residuals []entities.Residual) {
	if len(residuals) == 0 {
		return
	}
	fmt.Fprintf(w, "Residual Lines (review manually)\n")
	fmt.Fprintf(w, "================================\n\n")
	for _, r := range residuals {
		flag := " "
		if r.Suspicious {
			flag = "!"
		}
		fmt.Fprintf(w, "%s [%s] %s  (%s)\n", flag, r.Source, r.Line, r.Reason)
	}
}

// WriteStats renders per-source ingestion statistics.
func WriteStats(w io.Writer, stats []entities.SourceStats) {
	for _, s := range stats {
		fmt.Fprintf(w, "%s: %d lines read, %d parts found, %d residuals\n",
			s.Source, s.LinesRead, s.PartsFound, s.Residuals)
	}
}

// WritePartsCSV writes the part map in CSV form for spreadsheet use.
func WritePartsCSV(w io.Writer, parts []*entities.PartRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "value", "qty", "origin", "designators", "sources"}); err != nil {
		return err
	}
	for _, rec := range parts {
		var srcParts []string
		for _, src := range sortedSources(rec) {
			srcParts = append(srcParts, src+": "+strings.Join(rec.Sources[src], " "))
		}
		row := []string{
			rec.Key.Category.String(),
			displayValue(rec),
			strconv.FormatInt(int64(rec.Quantity), 10),
			rec.Origin.String(),
			strings.Join(entities.DeduplicateRefs(rec.Refs), " "),
			strings.Join(srcParts, "; "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteShoppingListCSV writes the purchasing list in CSV form.
func WriteShoppingListCSV(w io.Writer, results []entities.NetNeedsResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "value", "required", "on_hand", "deficit", "buy", "rationale", "search_term", "url"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Part.Key.Category.String(),
			displayValue(r.Part),
			strconv.FormatInt(int64(r.Required), 10),
			strconv.FormatInt(int64(r.OnHand), 10),
			strconv.FormatInt(int64(r.Deficit), 10),
			strconv.FormatInt(int64(r.BuyQuantity), 10),
			r.Rationale,
			r.SearchTerm,
			r.SupplierURL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func displayValue(rec *entities.PartRecord) string {
	v := rec.Display
	if rec.Key.Token != "" && rec.Key.Category != entities.Potentiometer {
		v += " " + rec.Key.Token
	}
	return v
}

func sortedSources(rec *entities.PartRecord) []string {
	keys := make([]string, 0, len(rec.Sources))
	for src := range rec.Sources {
		keys = append(keys, src)
	}
	// Deterministic output regardless of map iteration order.
	sort.Strings(keys)
	return keys
}
