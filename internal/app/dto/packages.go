package dto

import (
	"strconv"

	"tripquote/internal/domain/catalog"
	"tripquote/internal/domain/pricing"
	"tripquote/internal/domain/shared/money"
)

// PackageRow is one line of the pricing table.
type PackageRow struct {
	ID              string `json:"id"`
	Destination     string `json:"destination"`
	DurationDays    int    `json:"duration_days"`
	DurationLabel   string `json:"duration_label"`
	BasePrice       int64  `json:"base_price_amount"`
	BasePriceLabel  string `json:"base_price"`
	Season          string `json:"season"`
	FinalPrice      int64  `json:"final_price_amount"`
	FinalPriceLabel string `json:"final_price"`
	Highlights      string `json:"highlights"`
}

type PackageTable struct {
	Items []PackageRow `json:"items"`
	Total int          `json:"total"`
}

// MapPackageTable prices every catalog entry, keeping catalog order.
func MapPackageTable(packages []catalog.Package) PackageTable {
	rows := make([]PackageRow, 0, len(packages))
	for _, p := range packages {
		final := pricing.PackagePrice(p)
		rows = append(rows, PackageRow{
			ID:              string(p.ID),
			Destination:     p.Destination,
			DurationDays:    p.DurationDays,
			DurationLabel:   strconv.Itoa(p.DurationDays) + " Days",
			BasePrice:       p.BasePrice,
			BasePriceLabel:  money.FormatAmount(p.BasePrice),
			Season:          p.Season.String(),
			FinalPrice:      final.Amount,
			FinalPriceLabel: final.Label(),
			Highlights:      p.Highlights,
		})
	}
	return PackageTable{Items: rows, Total: len(rows)}
}
