package aggregate

import (
	"fmt"
	"strings"

	"github.com/pedalbuild/bomkit/pkg/domain/entities"
)

// Serialize renders the source-derived part map back into the
// standardized "R1 10k" text format, one designator per line, suitable
// for re-ingestion as a manual-input source. System-generated records
// are excluded so the round trip reproduces only what the sources said.
func (s *Session) Serialize() string {
	var lines []string
	for _, rec := range s.Parts() {
		if rec.Origin == entities.SystemGenerated {
			continue
		}
		display := rec.Display
		if rec.Key.Token != "" && rec.Key.Category != entities.Potentiometer {
			display = display + " " + rec.Key.Token
		}
		if len(rec.Refs) > 0 {
			emitted := false
			for _, ref := range rec.Refs {
				if ref == "HW" {
					continue // generic hardware adds are not source lines
				}
				lines = append(lines, ref+" "+display)
				emitted = true
			}
			if emitted {
				continue
			}
		}
		lines = append(lines, fmt.Sprintf("%s (Qty: %d)", display, rec.Quantity))
	}
	return strings.Join(lines, "\n")
}
