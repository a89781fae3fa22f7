package web

import (
	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/state"
)

type workLogRequest struct {
	Date            string            `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string            `json:"time" validate:"omitempty,datetime=15:04"`
	StaffName       string            `json:"staffName"`
	Location        string            `json:"location" validate:"required"`
	TaskDescription string            `json:"taskDescription" validate:"required"`
	Status          domain.TaskStatus `json:"status" validate:"omitempty,taskstatus"`
}

func (r workLogRequest) input() state.WorkLogInput {
	return state.WorkLogInput{
		Date:            r.Date,
		Time:            r.Time,
		Location:        r.Location,
		TaskDescription: r.TaskDescription,
		Status:          r.Status,
	}
}

type taskStatusRequest struct {
	Status domain.TaskStatus `json:"status" validate:"required,taskstatus"`
}

// ticketRequest mirrors the flat ticket layout: purchase fields sit next to
// the common ones and are ignored for repairs.
type ticketRequest struct {
	Type              domain.TicketType `json:"type" validate:"required,tickettype"`
	Subject           string            `json:"subject" validate:"required"`
	Details           string            `json:"details"`
	Location          string            `json:"location"`
	Status            domain.TaskStatus `json:"status" validate:"omitempty,taskstatus"`
	Images            []string          `json:"images" validate:"omitempty,dive,jpegdatauri"`
	RequesterName     string            `json:"requesterName"`
	RequesterPosition string            `json:"requesterPosition"`
	CompanyName       string            `json:"companyName"`
	Quantity          float64           `json:"quantity" validate:"required_if=Type Purchase,gte=0"`
	Price             float64           `json:"price" validate:"gte=0"`
	IsVatInclusive    bool              `json:"isVatInclusive"`
}

func (r ticketRequest) input() state.TicketInput {
	return state.TicketInput{
		Subject:           r.Subject,
		Details:           r.Details,
		Location:          r.Location,
		Status:            r.Status,
		Images:            r.Images,
		RequesterName:     r.RequesterName,
		RequesterPosition: r.RequesterPosition,
	}
}

// purchase returns the purchase fields for purchase tickets and nil for
// repairs.
func (r ticketRequest) purchase() *state.PurchaseInput {
	if r.Type != domain.TicketPurchase {
		return nil
	}
	return &state.PurchaseInput{
		CompanyName:    r.CompanyName,
		Quantity:       r.Quantity,
		Price:          r.Price,
		IsVatInclusive: r.IsVatInclusive,
	}
}

// ticket builds the replacement record for an update. CreatedAt, UpdatedAt
// and the purchase total are owned by the store.
func (r ticketRequest) ticket(id string) domain.Ticket {
	t := domain.Ticket{
		ID:                id,
		Subject:           r.Subject,
		Details:           r.Details,
		Location:          r.Location,
		Status:            r.Status,
		Images:            r.Images,
		RequesterName:     r.RequesterName,
		RequesterPosition: r.RequesterPosition,
	}
	if p := r.purchase(); p != nil {
		t.Purchase = &domain.PurchaseDetails{
			CompanyName:    p.CompanyName,
			Quantity:       p.Quantity,
			Price:          p.Price,
			IsVatInclusive: p.IsVatInclusive,
		}
	}
	return t
}

type assetRequest struct {
	Name             string                  `json:"name" validate:"required"`
	SerialNumber     string                  `json:"serialNumber"`
	Category         string                  `json:"category" validate:"required"`
	LocationCategory domain.LocationCategory `json:"locationCategory" validate:"required,locationcategory"`
	LocationName     string                  `json:"locationName" validate:"required"`
	Position         string                  `json:"position"`
	Description      string                  `json:"description"`
	Status           domain.AssetStatus      `json:"status" validate:"omitempty,assetstatus"`
	LastChecked      string                  `json:"lastChecked" validate:"omitempty,datetime=2006-01-02"`
	StaffName        string                  `json:"staffName"`
	ImageURL         string                  `json:"imageUrl" validate:"omitempty,jpegdatauri"`
}

func (r assetRequest) input() state.AssetInput {
	return state.AssetInput{
		Name:             r.Name,
		SerialNumber:     r.SerialNumber,
		Category:         r.Category,
		LocationCategory: r.LocationCategory,
		LocationName:     r.LocationName,
		Position:         r.Position,
		Description:      r.Description,
		LastChecked:      r.LastChecked,
		StaffName:        r.StaffName,
		ImageURL:         r.ImageURL,
	}
}

type assetStatusRequest struct {
	Status domain.AssetStatus `json:"status" validate:"required,assetstatus"`
}

type slotRequest struct {
	ID      string                  `json:"id"`
	Label   string                  `json:"label" validate:"required"`
	URL     *string                 `json:"url" validate:"omitempty,jpegdatauri"`
	Status  domain.InspectionStatus `json:"status" validate:"omitempty,inspectionstatus"`
	Details string                  `json:"details"`
}

type inspectionRequest struct {
	ShipName  string        `json:"shipName" validate:"required"`
	Date      string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Inspector string        `json:"inspector"`
	Images    []slotRequest `json:"images" validate:"dive"`
}

func (r inspectionRequest) slots() []domain.InspectionImage {
	out := make([]domain.InspectionImage, 0, len(r.Images))
	for _, s := range r.Images {
		out = append(out, domain.InspectionImage{
			ID:      s.ID,
			Label:   s.Label,
			URL:     s.URL,
			Status:  s.Status,
			Details: s.Details,
		})
	}
	return out
}

type slotStatusRequest struct {
	Status  domain.InspectionStatus `json:"status" validate:"required,inspectionstatus"`
	Details *string                 `json:"details"`
}
