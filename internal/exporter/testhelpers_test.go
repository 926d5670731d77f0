package exporter

import "cbxreport/pkg/contracts/domain"

func sampleReport() Report {
	records := []domain.FlatRecord{
		{
			Source:        domain.SourceComponent,
			Level:         1,
			Path:          "A",
			Code:          "A",
			Description:   "Alpha",
			BillReference: "B1",
			Fields:        []domain.Field{{Name: "Qty", Value: "3"}},
			SourceFile:    "one.CBX",
		},
		{
			Source:      domain.SourceComponent,
			Level:       2,
			Path:        "A/B",
			Code:        "B",
			Description: "=HYPERLINK(\"x\")",
			Fields:      []domain.Field{{Name: "Qty", Value: "-5"}, {Name: "Colour", Value: "red"}},
			SourceFile:  "one.CBX",
		},
		{
			Source:      domain.SourceRateItem,
			Level:       domain.RateItemLevel,
			Path:        "A/B",
			Description: "Bricks",
			Rate: &domain.RateValues{
				Rate: "1.5", Quantity: "10", Unit: "m2", Total: "15",
				ParentQuantity: "3", ParentUnit: "m", WastageFactor: "1", Factor: "1",
			},
			AssignedCode:    "X1",
			HasAssignedCode: true,
			SourceFile:      "two.CBX",
		},
	}
	unpivoted := []domain.UnpivotedRecord{
		{
			SourceFile:    "one.CBX",
			BillReference: "B1",
			Levels:        []string{"Alpha"},
			Fields:        []domain.Field{{Name: "Qty", Value: "3"}},
		},
		{
			SourceFile:   "two.CBX",
			AssignedCode: "X1",
			Levels:       []string{"Alpha", "=HYPERLINK(\"x\")"},
			Fields:       []domain.Field{{Name: "Rate", Value: "1.5"}, {Name: "Qty", Value: "10"}},
		},
	}
	return Report{Records: records, Unpivoted: unpivoted}
}
