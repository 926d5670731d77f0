package dataprocessing

import (
	"cbxreport/internal/config"
	"cbxreport/internal/xmltree"
	"cbxreport/pkg/contracts/domain"
)

// Processor defines the interface for turning a parsed take-off document into report rows
type Processor interface {
	// Process flattens and unpivots a single document
	Process(root *xmltree.Element) (*Result, error)
}

// ProcessingOptions configures processing behavior
type ProcessingOptions struct {
	// MaxDepth limits trade-node nesting; deeper documents fail
	MaxDepth int
}

// DefaultOptions returns default processing options
func DefaultOptions() ProcessingOptions {
	return ProcessingOptions{
		MaxDepth: config.DefaultMaxDepth,
	}
}

// Result holds the rows produced from one document.
type Result struct {
	Records   []domain.FlatRecord
	Unpivoted []domain.UnpivotedRecord
}
