// Package dataprocessing turns parsed Buildsoft take-off documents into report rows.
//
// # Architecture
//
// The package is organized into four steps:
//
// 1. Parser: decodes the document tree into domain.TradeNode values
// 2. Flattener: walks the hierarchy depth-first and emits one FlatRecord per
// estimating component and per rate item
// 3. ExtractRateItems: converts a leaf's rate sheet into records at level 99
// 4. Unpivot: spreads keyed records over Level columns
//
// # Usage
//
//	root, err := xmltree.Parse(r, xmltree.Limits{})
//	if err != nil {
//	    return err
//	}
//	result, err := dataprocessing.NewTakeoffProcessor(dataprocessing.DefaultOptions()).Process(root)
//
// # Data Flow
//
//	TakeoffJob.xml → Parser → TradeNodes → Flattener → FlatRecords → Unpivot → UnpivotedRecords
//
// # Rate context
//
// Rate items report a parent quantity and unit taken from the last estimating
// component, in traversal order, that had a non-empty value for each. The
// context is carried across siblings and handed down to children, but a
// child's updates never flow back up to its parent's loop.
//
// # Error Handling
//
// Missing document structure yields an ErrTypeStructure AppError. A rate item
// missing one of its fixed fields yields ErrTypeMissingField. Optional values
// (codes, descriptions, bill references, assigned codes) resolve to "".
package dataprocessing
