package domain

import (
	"strconv"
	"strings"
)

// PathSeparator joins ancestor codes in FlatRecord.Path.
const PathSeparator = "/"

// RateItemLevel is the level reported for every rate-item record, whatever
// the depth of the leaf that owns the rate sheet.
const RateItemLevel = 99

// Column names shared by both output sheets.
const (
	ColumnLevel          = "Level"
	ColumnPath           = "Path"
	ColumnCode           = "Code"
	ColumnDescription    = "Description"
	ColumnBillReference  = "Bill Reference"
	ColumnAssignedCode   = "Assigned Code"
	ColumnRate           = "Rate"
	ColumnQuantity       = "Quantity"
	ColumnUnit           = "Unit"
	ColumnTotal          = "Total"
	ColumnParentQuantity = "Parent Quantity"
	ColumnParentUnit     = "Parent Unit"
	ColumnWastageFactor  = "WastageFactor"
	ColumnFactor         = "Factor"
	ColumnSourceFile     = "CBX File"
)

// ComponentFieldPrefix is prepended to open component fields whose name
// collides with a fixed record column.
const ComponentFieldPrefix = "Component "

// TradeNode is a work category in the estimate hierarchy.
type TradeNode struct {
	Code          string                `json:"code"`
	Description   string                `json:"description"`
	BillReference string                `json:"bill_reference,omitempty"`
	Children      []TradeNode           `json:"children,omitempty"`
	Components    []EstimatingComponent `json:"components,omitempty"`
	RateSheet     *RateSheet            `json:"rate_sheet,omitempty"`
}

// IsLeaf reports whether the node has no child trade nodes.
func (n TradeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Field is a named scalar value.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EstimatingComponent is an open bag of named fields attached to a trade node.
type EstimatingComponent struct {
	Fields []Field `json:"fields"`
}

// Get returns the value of the last field called name.
func (c EstimatingComponent) Get(name string) (string, bool) {
	for i := len(c.Fields) - 1; i >= 0; i-- {
		if c.Fields[i].Name == name {
			return c.Fields[i].Value, true
		}
	}
	return "", false
}

// RateSheet holds the priced line items of a leaf trade node.
type RateSheet struct {
	Items []RateItem `json:"items"`
}

// RateItem is a single priced line in a rate sheet.
type RateItem struct {
	Description     string `json:"description"`
	Rate            string `json:"rate"`
	Quantity        string `json:"quantity"`
	Unit            string `json:"unit"`
	Total           string `json:"total"`
	WastageFactor   string `json:"wastage_factor"`
	Factor          string `json:"factor"`
	AssignedCode    string `json:"assigned_code,omitempty"`
	HasAssignedCode bool   `json:"has_assigned_code"`
}

// RecordSource tells which kind of source element produced a FlatRecord.
type RecordSource int

const (
	SourceComponent RecordSource = iota
	SourceRateItem
)

// RateValues carries the fixed fields of a rate-item record.
type RateValues struct {
	Rate           string `json:"rate"`
	Quantity       string `json:"quantity"`
	Unit           string `json:"unit"`
	Total          string `json:"total"`
	ParentQuantity string `json:"parent_quantity"`
	ParentUnit     string `json:"parent_unit"`
	WastageFactor  string `json:"wastage_factor"`
	Factor         string `json:"factor"`
}

// FlatRecord is one row of the "Original Data" sheet.
//
// Component records carry the open component fields in Fields and never set
// Rate. Rate-item records set Rate, leave Code empty and report Level 99.
type FlatRecord struct {
	Source          RecordSource `json:"source"`
	Level           int          `json:"level"`
	Path            string       `json:"path"`
	Code            string       `json:"code,omitempty"`
	Description     string       `json:"description"`
	BillReference   string       `json:"bill_reference,omitempty"`
	AssignedCode    string       `json:"assigned_code,omitempty"`
	HasAssignedCode bool         `json:"has_assigned_code"`
	Rate            *RateValues  `json:"rate,omitempty"`
	Fields          []Field      `json:"fields,omitempty"`
	SourceFile      string       `json:"source_file,omitempty"`
}

// PathSegments splits Path back into the ancestor code chain.
func (r FlatRecord) PathSegments() []string {
	return strings.Split(r.Path, PathSeparator)
}

// HasCode reports whether the record can answer a code lookup.
func (r FlatRecord) HasCode() bool {
	return r.Source == SourceComponent
}

// IsKeyed reports whether the record carries a bill reference or an assigned code.
func (r FlatRecord) IsKeyed() bool {
	return r.BillReference != "" || (r.HasAssignedCode && r.AssignedCode != "")
}

// Cells returns the record as ordered column/value pairs, without the
// source file column.
func (r FlatRecord) Cells() []Field {
	switch r.Source {
	case SourceRateItem:
		rate := r.Rate
		if rate == nil {
			rate = &RateValues{}
		}
		cells := []Field{
			{Name: ColumnLevel, Value: strconv.Itoa(r.Level)},
			{Name: ColumnPath, Value: r.Path},
			{Name: ColumnDescription, Value: r.Description},
			{Name: ColumnRate, Value: rate.Rate},
			{Name: ColumnQuantity, Value: rate.Quantity},
			{Name: ColumnUnit, Value: rate.Unit},
			{Name: ColumnTotal, Value: rate.Total},
			{Name: ColumnParentQuantity, Value: rate.ParentQuantity},
			{Name: ColumnParentUnit, Value: rate.ParentUnit},
			{Name: ColumnWastageFactor, Value: rate.WastageFactor},
			{Name: ColumnFactor, Value: rate.Factor},
		}
		if r.HasAssignedCode {
			cells = append(cells, Field{Name: ColumnAssignedCode, Value: r.AssignedCode})
		}
		return cells
	default:
		cells := make([]Field, 0, 5+len(r.Fields))
		cells = append(cells,
			Field{Name: ColumnLevel, Value: strconv.Itoa(r.Level)},
			Field{Name: ColumnPath, Value: r.Path},
			Field{Name: ColumnCode, Value: r.Code},
			Field{Name: ColumnDescription, Value: r.Description},
			Field{Name: ColumnBillReference, Value: r.BillReference},
		)
		return append(cells, r.Fields...)
	}
}

// UnpivotedRecord is one row of the "Unpivoted Data" sheet.
type UnpivotedRecord struct {
	SourceFile    string   `json:"source_file,omitempty"`
	BillReference string   `json:"bill_reference"`
	AssignedCode  string   `json:"assigned_code"`
	Levels        []string `json:"levels"`
	Fields        []Field  `json:"fields,omitempty"`
}

// LevelColumn returns the header used for hierarchy depth i (1-based).
func LevelColumn(i int) string {
	return "Level " + strconv.Itoa(i)
}

// IsReservedColumn reports whether name is a fixed component-record column.
func IsReservedColumn(name string) bool {
	switch name {
	case ColumnLevel, ColumnPath, ColumnCode, ColumnDescription:
		return true
	}
	return false
}
