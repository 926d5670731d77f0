package dataprocessing

import (
	"cbxreport/pkg/contracts/domain"
)

// ExtractRateItems converts the items of a rate sheet into records at the
// given path and level, in sheet order. The parent quantity and unit come
// from rc unchanged.
func ExtractRateItems(sheet domain.RateSheet, path string, level int, rc RateContext) []domain.FlatRecord {
	records := make([]domain.FlatRecord, 0, len(sheet.Items))
	for _, item := range sheet.Items {
		records = append(records, domain.FlatRecord{
			Source:          domain.SourceRateItem,
			Level:           level,
			Path:            path,
			Description:     item.Description,
			AssignedCode:    item.AssignedCode,
			HasAssignedCode: item.HasAssignedCode,
			Rate: &domain.RateValues{
				Rate:           item.Rate,
				Quantity:       item.Quantity,
				Unit:           item.Unit,
				Total:          item.Total,
				ParentQuantity: rc.Quantity,
				ParentUnit:     rc.Unit,
				WastageFactor:  item.WastageFactor,
				Factor:         item.Factor,
			},
		})
	}
	return records
}
