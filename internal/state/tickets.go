package state

import (
	"slices"
	"time"

	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/views"
)

type TicketInput struct {
	Subject           string
	Details           string
	Location          string
	Status            domain.TaskStatus
	Images            []string
	RequesterName     string
	RequesterPosition string
}

type PurchaseInput struct {
	CompanyName    string
	Quantity       float64
	Price          float64
	IsVatInclusive bool
}

func (s *Store) AddRepairTicket(in TicketInput) (domain.Ticket, domain.AppData) {
	return s.addTicket(in, nil)
}

// AddPurchaseTicket creates a purchase ticket whose total price is computed
// from the quantity, unit price and VAT mode.
func (s *Store) AddPurchaseTicket(in TicketInput, p PurchaseInput) (domain.Ticket, domain.AppData) {
	return s.addTicket(in, &domain.PurchaseDetails{
		CompanyName:    p.CompanyName,
		Quantity:       p.Quantity,
		Price:          p.Price,
		IsVatInclusive: p.IsVatInclusive,
	})
}

func (s *Store) addTicket(in TicketInput, purchase *domain.PurchaseDetails) (domain.Ticket, domain.AppData) {
	now := s.now()
	ticket := domain.Ticket{
		ID:                s.newID("tk"),
		Subject:           in.Subject,
		Details:           in.Details,
		Location:          in.Location,
		Status:            in.Status,
		CreatedAt:         now,
		UpdatedAt:         now,
		Images:            cloneImages(in.Images),
		RequesterName:     in.RequesterName,
		RequesterPosition: in.RequesterPosition,
		Purchase:          withTotal(purchase),
	}
	if ticket.Status == "" {
		ticket.Status = domain.StatusPending
	}
	snap := s.commit(ChangeCreate, CollectionTickets, ticket.ID, func(cur domain.AppData) (domain.AppData, bool) {
		cur.Tickets = prepend(cur.Tickets, ticket)
		return cur, true
	})
	return ticket, snap
}

// UpdateTicket replaces the ticket with the same id. The stored creation time
// is kept, updatedAt is refreshed and a purchase total is recomputed from the
// submitted quantity, price and VAT mode. Unknown ids are ignored.
func (s *Store) UpdateTicket(updated domain.Ticket) domain.AppData {
	return s.EditTicket(updated.ID, func(domain.Ticket) domain.Ticket { return updated })
}

// EditTicket rewrites the stored ticket through edit within one commit. The
// id and creation time survive any edit and the bookkeeping of UpdateTicket
// applies to the result.
func (s *Store) EditTicket(id string, edit func(old domain.Ticket) domain.Ticket) domain.AppData {
	return s.commit(ChangeUpdate, CollectionTickets, id, func(cur domain.AppData) (domain.AppData, bool) {
		now := s.now()
		tickets, ok := replaceWhere(cur.Tickets, ticketID(id), func(old domain.Ticket) domain.Ticket {
			t := edit(old)
			t.ID = id
			t.CreatedAt = old.CreatedAt
			t.UpdatedAt = touched(old.CreatedAt, now)
			t.Images = cloneImages(t.Images)
			t.Purchase = withTotal(t.Purchase)
			return t
		})
		cur.Tickets = tickets
		return cur, ok
	})
}

func (s *Store) SetTicketStatus(id string, status domain.TaskStatus) domain.AppData {
	return s.commit(ChangeStatus, CollectionTickets, id, func(cur domain.AppData) (domain.AppData, bool) {
		now := s.now()
		tickets, ok := replaceWhere(cur.Tickets, ticketID(id), func(t domain.Ticket) domain.Ticket {
			t.Status = status
			t.UpdatedAt = touched(t.CreatedAt, now)
			return t
		})
		cur.Tickets = tickets
		return cur, ok
	})
}

// AddTicketImages appends encoded images to a ticket's attachments.
func (s *Store) AddTicketImages(id string, urls ...string) domain.AppData {
	return s.commit(ChangeUpdate, CollectionTickets, id, func(cur domain.AppData) (domain.AppData, bool) {
		now := s.now()
		tickets, ok := replaceWhere(cur.Tickets, ticketID(id), func(t domain.Ticket) domain.Ticket {
			t.Images = cloneImages(append(slices.Clone(t.Images), urls...))
			t.UpdatedAt = touched(t.CreatedAt, now)
			return t
		})
		cur.Tickets = tickets
		return cur, ok && len(urls) > 0
	})
}

func (s *Store) DeleteTicket(id string) domain.AppData {
	return s.commit(ChangeDelete, CollectionTickets, id, func(cur domain.AppData) (domain.AppData, bool) {
		tickets, ok := removeWhere(cur.Tickets, ticketID(id))
		cur.Tickets = tickets
		return cur, ok
	})
}

func ticketID(id string) func(domain.Ticket) bool {
	return func(t domain.Ticket) bool { return t.ID == id }
}

// withTotal returns a copy of p with TotalPrice recomputed.
func withTotal(p *domain.PurchaseDetails) *domain.PurchaseDetails {
	if p == nil {
		return nil
	}
	out := *p
	out.TotalPrice = views.CalculateVAT(out.Quantity, out.Price, out.IsVatInclusive).TotalPrice()
	return &out
}

// touched keeps updatedAt from falling behind createdAt when the clock moves
// backwards.
func touched(createdAt, now time.Time) time.Time {
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}

func cloneImages(images []string) []string {
	if len(images) == 0 {
		return nil
	}
	return slices.Clone(images)
}
