package domain

import (
	"encoding/json"
	"time"
)

// ticketJSON is the flat wire layout of a ticket, shared with backup files
// written by earlier versions of the dashboard.
type ticketJSON struct {
	ID                string     `json:"id"`
	Type              TicketType `json:"type"`
	Subject           string     `json:"subject"`
	Details           string     `json:"details"`
	Location          string     `json:"location"`
	Status            TaskStatus `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	Images            []string   `json:"images,omitempty"`
	RequesterName     string     `json:"requesterName,omitempty"`
	RequesterPosition string     `json:"requesterPosition,omitempty"`
	CompanyName       string     `json:"companyName,omitempty"`
	Quantity          *float64   `json:"quantity,omitempty"`
	Price             *float64   `json:"price,omitempty"`
	TotalPrice        *float64   `json:"totalPrice,omitempty"`
	IsVatInclusive    *bool      `json:"isVatInclusive,omitempty"`
}

func (t Ticket) MarshalJSON() ([]byte, error) {
	out := ticketJSON{
		ID:                t.ID,
		Type:              t.Type(),
		Subject:           t.Subject,
		Details:           t.Details,
		Location:          t.Location,
		Status:            t.Status,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		Images:            t.Images,
		RequesterName:     t.RequesterName,
		RequesterPosition: t.RequesterPosition,
	}
	if p := t.Purchase; p != nil {
		out.CompanyName = p.CompanyName
		out.Quantity = &p.Quantity
		out.Price = &p.Price
		out.TotalPrice = &p.TotalPrice
		out.IsVatInclusive = &p.IsVatInclusive
	}
	return json.Marshal(out)
}

func (t *Ticket) UnmarshalJSON(data []byte) error {
	var in ticketJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*t = Ticket{
		ID:                in.ID,
		Subject:           in.Subject,
		Details:           in.Details,
		Location:          in.Location,
		Status:            in.Status,
		CreatedAt:         in.CreatedAt,
		UpdatedAt:         in.UpdatedAt,
		Images:            nilIfEmpty(in.Images),
		RequesterName:     in.RequesterName,
		RequesterPosition: in.RequesterPosition,
	}
	if in.Type == TicketPurchase {
		t.Purchase = &PurchaseDetails{
			CompanyName:    in.CompanyName,
			Quantity:       deref(in.Quantity),
			Price:          deref(in.Price),
			TotalPrice:     deref(in.TotalPrice),
			IsVatInclusive: deref(in.IsVatInclusive),
		}
	}
	return nil
}

// nilIfEmpty maps "images": [] to nil so a ticket decodes the same whether
// the list was written empty or left out.
func nilIfEmpty(images []string) []string {
	if len(images) == 0 {
		return nil
	}
	return images
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
