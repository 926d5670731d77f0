package dataprocessing

import (
	"fmt"

	"cbxreport/internal/config"
	apperrors "cbxreport/internal/errors"
	"cbxreport/pkg/contracts/domain"
)

// Component field names that feed the rate context.
const (
	fieldQuantity = "Quantity"
	fieldUnit     = "Unit"
)

// RateContext is the quantity/unit most recently seen on an estimating
// component. It is handed to rate items of the next leaf as their parent
// quantity and unit.
type RateContext struct {
	Quantity string
	Unit     string
}

// Update returns the context after visiting comp. Each value is replaced
// only when the component states a non-empty one, so a value set by an
// earlier sibling survives until overwritten.
func (c RateContext) Update(comp domain.EstimatingComponent) RateContext {
	if q, ok := comp.Get(fieldQuantity); ok && q != "" {
		c.Quantity = q
	}
	if u, ok := comp.Get(fieldUnit); ok && u != "" {
		c.Unit = u
	}
	return c
}

// JoinPath appends code to a parent path.
func JoinPath(path, code string) string {
	if path == "" {
		return code
	}
	return path + domain.PathSeparator + code
}

// Flattener turns a trade hierarchy into report rows in document order.
type Flattener struct {
	maxDepth int
}

// NewFlattener creates a flattener that fails on hierarchies nested deeper than maxDepth.
func NewFlattener(maxDepth int) *Flattener {
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	return &Flattener{maxDepth: maxDepth}
}

// Flatten walks the top-level trade nodes depth-first and returns one
// record per estimating component and per rate item.
func (f *Flattener) Flatten(nodes []domain.TradeNode) ([]domain.FlatRecord, error) {
	return f.flatten(nodes, 0, "", RateContext{})
}

func (f *Flattener) flatten(nodes []domain.TradeNode, level int, path string, rc RateContext) ([]domain.FlatRecord, error) {
	if level > f.maxDepth {
		return nil, apperrors.NewStructureError(fmt.Sprintf("trade hierarchy exceeds maximum depth %d", f.maxDepth)).
			WithContext("path", path)
	}

	var records []domain.FlatRecord
	for _, node := range nodes {
		newPath := JoinPath(path, node.Code)

		for _, comp := range node.Components {
			records = append(records, componentRecord(node, comp, level, newPath))
			rc = rc.Update(comp)
		}

		if !node.IsLeaf() {
			children, err := f.flatten(node.Children, level+1, newPath, rc)
			if err != nil {
				return nil, err
			}
			records = append(records, children...)
			continue
		}

		if node.RateSheet != nil {
			records = append(records, ExtractRateItems(*node.RateSheet, newPath, domain.RateItemLevel, rc)...)
		}
	}
	return records, nil
}

func componentRecord(node domain.TradeNode, comp domain.EstimatingComponent, level int, path string) domain.FlatRecord {
	// A repeated field name keeps its first position and its last value.
	fields := make([]domain.Field, 0, len(comp.Fields))
	index := make(map[string]int, len(comp.Fields))
	for _, field := range comp.Fields {
		if domain.IsReservedColumn(field.Name) {
			field.Name = domain.ComponentFieldPrefix + field.Name
		}
		if i, seen := index[field.Name]; seen {
			fields[i].Value = field.Value
			continue
		}
		index[field.Name] = len(fields)
		fields = append(fields, field)
	}

	return domain.FlatRecord{
		Source:        domain.SourceComponent,
		Level:         level,
		Path:          path,
		Code:          node.Code,
		Description:   node.Description,
		BillReference: node.BillReference,
		Fields:        fields,
	}
}
