package service

import (
	"fmt"
	"strconv"
	"time"

	"payexsync/config"
	"payexsync/dto/model"

	"github.com/xuri/excelize/v2"
)

const authorizationSheet = "Authorizations"

// GenerateAuthorizationReport renders authorizations that still wait for a
// capture or cancel as an XLSX workbook.
func GenerateAuthorizationReport(rows []model.PendingAuthorization, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(authorizationSheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")

	headers := []string{"Order ID", "Payment Method", "Transaction Number", "Total", "Currency", "Order Status", "Authorized At", "Age (days)"}
	for i, header := range headers {
		f.SetCellValue(authorizationSheet, getColumnName(i+1)+"1", header)
	}

	loc := reportLocation()
	for rowIndex, auth := range rows {
		row := strconv.Itoa(rowIndex + 2)
		total, _ := auth.Total.Float64()
		age := int(now.Sub(auth.AuthorizedAt).Hours() / 24)

		f.SetCellValue(authorizationSheet, "A"+row, auth.OrderID)
		f.SetCellValue(authorizationSheet, "B"+row, auth.PaymentMethod)
		f.SetCellValue(authorizationSheet, "C"+row, auth.TransactionNumber)
		f.SetCellValue(authorizationSheet, "D"+row, total)
		f.SetCellValue(authorizationSheet, "E"+row, auth.Currency)
		f.SetCellValue(authorizationSheet, "F"+row, string(auth.OrderStatus))
		f.SetCellValue(authorizationSheet, "G"+row, auth.AuthorizedAt.In(loc).Format("2006-01-02 15:04:05"))
		f.SetCellValue(authorizationSheet, "H"+row, age)
	}

	f.SetActiveSheet(index)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

// AuthorizationReportName is the file name of a report generated at now.
func AuthorizationReportName(now time.Time) string {
	return fmt.Sprintf("payex-authorizations-%s.xlsx", now.In(reportLocation()).Format("2006-01-02"))
}

func reportLocation() *time.Location {
	loc, err := time.LoadLocation(config.Config("REPORT_TIMEZONE", "Europe/Stockholm"))
	if err != nil {
		return time.UTC
	}
	return loc
}

// getColumnName converts a 1-based column index to its letter name.
func getColumnName(index int) string {
	columnName := ""
	for index > 0 {
		index--
		columnName = string(rune('A'+(index%26))) + columnName
		index /= 26
	}
	return columnName
}
