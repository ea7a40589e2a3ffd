package lib

import (
	"encoding/xml"
	"fmt"

	"payexsync/dto/model"
	"payexsync/helper"
)

// FactoringGateway is the financing invoice method. Its invoices list the
// order lines, sent as additional values on capture.
type FactoringGateway struct {
	*Gateway
}

type invoiceOrderLine struct {
	Product   string `xml:"Product"`
	Qty       int    `xml:"Qty"`
	UnitPrice string `xml:"UnitPrice"`
	VatRate   string `xml:"VatRate"`
	VatAmount string `xml:"VatAmount"`
	Amount    string `xml:"Amount"`
}

type onlineInvoice struct {
	XMLName    xml.Name           `xml:"OnlineInvoice"`
	OrderLines []invoiceOrderLine `xml:"OrderLines>OrderLine"`
}

// OrderLines renders the order items as the OnlineInvoice XML document.
func (g *FactoringGateway) OrderLines(order *model.Order) (string, error) {
	invoice := onlineInvoice{OrderLines: make([]invoiceOrderLine, 0, len(order.Items))}
	for _, item := range order.Items {
		invoice.OrderLines = append(invoice.OrderLines, invoiceOrderLine{
			Product:   item.Name,
			Qty:       item.Qty,
			UnitPrice: helper.FormatAmount(item.UnitPrice),
			VatRate:   helper.FormatAmount(item.VatRate),
			VatAmount: helper.FormatAmount(item.VatAmount),
			Amount:    helper.FormatAmount(item.Total),
		})
	}

	body, err := xml.Marshal(invoice)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order lines: %w", err)
	}
	return xml.Header[:len(xml.Header)-1] + string(body), nil
}
