// Package report renders the audit registry workbook downloaded from the
// admin panel: one sheet of lots, one of payouts.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"carbonledger/entities"
)

func BuildRegistry(db *gorm.DB) (*excelize.File, error) {
	var lots []entities.CreditLot
	if err := db.Order("lot_id asc").Find(&lots).Error; err != nil {
		return nil, err
	}
	var payouts []entities.Payout
	if err := db.Order("lot_id asc, farmer_id asc").Find(&payouts).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const lotSheet = "Lots"
	f.SetSheetName("Sheet1", lotSheet)

	head := []any{"Lot ID", "Total tCO2e", "Price KES/tCO2e", "Status", "Events", "Created"}
	if err := f.SetSheetRow(lotSheet, "A1", &head); err != nil {
		return nil, err
	}
	for i, l := range lots {
		row := []any{l.LotID, l.TotalTCO2e, l.PricePerTCO2eKES, l.Status, l.EventCount, l.CreatedAt.Format("2006-01-02")}
		if err := f.SetSheetRow(lotSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	const paySheet = "Payouts"
	if _, err := f.NewSheet(paySheet); err != nil {
		return nil, err
	}
	head = []any{"Payout ID", "Lot ID", "Farmer ID", "Credits tCO2e", "Amount KES", "Status", "Payment Ref"}
	if err := f.SetSheetRow(paySheet, "A1", &head); err != nil {
		return nil, err
	}
	for i, p := range payouts {
		row := []any{p.PayoutID, p.LotID, p.FarmerID, p.CreditsTCO2e, p.AmountKES, p.Status, p.PaymentRef}
		if err := f.SetSheetRow(paySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
