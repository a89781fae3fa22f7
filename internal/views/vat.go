package views

import "github.com/shopspring/decimal"

// VATRate is the Thai value added tax rate.
var VATRate = decimal.RequireFromString("0.07")

type VATBreakdown struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	VAT        decimal.Decimal `json:"vat"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// CalculateVAT prices quantity units at unitPrice. When inclusive the unit
// price already contains VAT and the grand total equals the subtotal.
func CalculateVAT(quantity, unitPrice float64, inclusive bool) VATBreakdown {
	subtotal := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice))
	if inclusive {
		net := subtotal.Div(decimal.NewFromInt(1).Add(VATRate))
		return VATBreakdown{
			Subtotal:   subtotal,
			VAT:        subtotal.Sub(net),
			GrandTotal: subtotal,
		}
	}
	vat := subtotal.Mul(VATRate)
	return VATBreakdown{
		Subtotal:   subtotal,
		VAT:        vat,
		GrandTotal: subtotal.Add(vat),
	}
}

// TotalPrice is the grand total rounded to satang, as stored on a ticket.
func (b VATBreakdown) TotalPrice() float64 {
	return b.GrandTotal.Round(2).InexactFloat64()
}
