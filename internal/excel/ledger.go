package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gestimo/rentd/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the contract ledger workbook: a summary sheet, the payment
// history and the deposit transactions.
func (g *Generator) Generate(export model.LedgerExport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, export); err != nil {
		return nil, err
	}

	file.NewSheet("Payments")
	if err := g.writePayments(file, "Payments", export.Contract.Payments); err != nil {
		return nil, err
	}

	if export.Deposit != nil {
		file.NewSheet("Deposit")
		if err := g.writeDeposit(file, "Deposit", export.Deposit); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, export model.LedgerExport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Organization")
	set("B1", export.Organization.Name)
	set("A2", "Tenant")
	set("B2", export.Tenant.FullName())
	set("A3", "Contract status")
	set("B3", string(export.Contract.Status))
	set("A4", "Start date")
	set("B4", formatDate(export.Contract.StartDate))
	set("A5", "End date")
	set("B5", formatDate(export.Contract.EndDate))
	set("A6", "Monthly rent")
	set("B6", export.Contract.RentAmount)
	set("A7", "Monthly charges")
	set("B7", export.Contract.Charges)

	var totalPaid float64
	for _, payment := range export.Contract.Payments {
		if !payment.Voided {
			totalPaid += payment.Amount
		}
	}
	set("A8", "Total paid")
	set("B8", totalPaid)

	if export.Deposit != nil {
		set("A9", "Deposit status")
		set("B9", string(export.Deposit.Status))
		set("A10", "Deposit held")
		set("B10", export.Deposit.BalanceHeld())
		set("A11", "Deposit outstanding")
		set("B11", export.Deposit.Outstanding())
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	return nil
}

func (g *Generator) writePayments(file *excelize.File, sheet string, payments []model.Payment) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Paid at")
	set("B1", "Amount")
	set("C1", "Method")
	set("D1", "Reference")
	set("E1", "Voided")

	for i, payment := range payments {
		row := i + 2
		set(fmt.Sprintf("A%d", row), formatDate(payment.PaidAt))
		set(fmt.Sprintf("B%d", row), payment.Amount)
		set(fmt.Sprintf("C%d", row), string(payment.Method))
		set(fmt.Sprintf("D%d", row), payment.Reference)
		set(fmt.Sprintf("E%d", row), payment.Voided)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 12)
	_ = file.SetColWidth(sheet, "D", "D", 24)
	return nil
}

func (g *Generator) writeDeposit(file *excelize.File, sheet string, deposit *model.Deposit) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Expected")
	set("B1", deposit.AmountExpected)
	set("A2", "Received")
	set("B2", deposit.TotalReceived())
	set("A3", "Refunded")
	set("B3", deposit.TotalRefunded())
	set("A4", "Deducted")
	set("B4", deposit.TotalDeducted())
	set("A5", "Held")
	set("B5", deposit.BalanceHeld())

	headerRow := 7
	set(fmt.Sprintf("A%d", headerRow), "Date")
	set(fmt.Sprintf("B%d", headerRow), "Kind")
	set(fmt.Sprintf("C%d", headerRow), "Amount")
	set(fmt.Sprintf("D%d", headerRow), "Reference")

	for i, tx := range deposit.Transactions {
		row := headerRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatDate(tx.DateUTC))
		set(fmt.Sprintf("B%d", row), string(tx.Kind))
		set(fmt.Sprintf("C%d", row), tx.Amount)
		set(fmt.Sprintf("D%d", row), tx.Reference)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "D", "D", 24)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
