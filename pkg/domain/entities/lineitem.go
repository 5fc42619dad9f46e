package entities

// LineItem represents one extracted BOM row before aggregation
type LineItem struct {
	Designator  string
	RawValue    string
	Description string
	Source      string
}

// Residual represents an input line that did not resolve to a
// classified component. Residuals are retained for human review and are
// never silently discarded.
type Residual struct {
	Source     string
	Line       string
	Reason     string
	Suspicious bool
}

// SourceStats tracks ingestion metrics for a single source document
type SourceStats struct {
	Source     string
	LinesRead  int
	PartsFound int
	Residuals  int
}
