package dataprocessing

import (
	"cbxreport/internal/xmltree"
)

// TakeoffProcessor runs parse, flatten and unpivot over one document.
type TakeoffProcessor struct {
	parser    *Parser
	flattener *Flattener
}

// NewTakeoffProcessor creates a processor with the given options
func NewTakeoffProcessor(opts ProcessingOptions) *TakeoffProcessor {
	return &TakeoffProcessor{
		parser:    NewParser(opts.MaxDepth),
		flattener: NewFlattener(opts.MaxDepth),
	}
}

// Process implements Processor.
func (p *TakeoffProcessor) Process(root *xmltree.Element) (*Result, error) {
	nodes, err := p.parser.ParseDocument(root)
	if err != nil {
		return nil, err
	}

	records, err := p.flattener.Flatten(nodes)
	if err != nil {
		return nil, err
	}

	return &Result{
		Records:   records,
		Unpivoted: Unpivot(records),
	}, nil
}
