package domain

import "time"

// DateLayout is the calendar date format used by every date-only field.
const DateLayout = "2006-01-02"

// TimeLayout is the wall clock format of WorkLog.Time.
const TimeLayout = "15:04"

type WorkLog struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	StaffName       string     `json:"staffName"`
	Location        string     `json:"location"`
	TaskDescription string     `json:"taskDescription"`
	Status          TaskStatus `json:"status"`
}

// Ticket is a repair or purchase request. The ticket type is carried by
// Purchase: a non-nil Purchase makes it a purchase ticket, nil a repair ticket.
type Ticket struct {
	ID                string
	Subject           string
	Details           string
	Location          string
	Status            TaskStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Images            []string
	RequesterName     string
	RequesterPosition string
	Purchase          *PurchaseDetails
}

type PurchaseDetails struct {
	CompanyName    string
	Quantity       float64
	Price          float64
	TotalPrice     float64
	IsVatInclusive bool
}

func (t Ticket) Type() TicketType {
	if t.Purchase != nil {
		return TicketPurchase
	}
	return TicketRepair
}

type Asset struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	SerialNumber     string           `json:"serialNumber"`
	Category         string           `json:"category"`
	LocationCategory LocationCategory `json:"locationCategory"`
	LocationName     string           `json:"locationName"`
	Position         string           `json:"position,omitempty"`
	Description      string           `json:"description,omitempty"`
	Status           AssetStatus      `json:"status"`
	LastChecked      string           `json:"lastChecked"`
	StaffName        string           `json:"staffName"`
	ImageURL         string           `json:"imageUrl,omitempty"`
}

// InspectionImage is one checklist slot of a ship inspection. URL is nil until
// a photo has been taken for the slot.
type InspectionImage struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	URL     *string          `json:"url"`
	Status  InspectionStatus `json:"status,omitempty"`
	Details string           `json:"details,omitempty"`
}

type ShipInspection struct {
	ID        string            `json:"id"`
	ShipName  string            `json:"shipName"`
	Date      string            `json:"date"`
	Inspector string            `json:"inspector"`
	Images    []InspectionImage `json:"images"`
}

// AppData is the aggregate root: the whole application state and the single
// unit of persistence.
type AppData struct {
	WorkLogs        []WorkLog        `json:"workLogs"`
	Tickets         []Ticket         `json:"tickets"`
	Assets          []Asset          `json:"assets"`
	ShipInspections []ShipInspection `json:"shipInspections"`
}

// Normalize replaces nil collections with empty ones so that the JSON form
// always carries all four arrays.
func (d AppData) Normalize() AppData {
	if d.WorkLogs == nil {
		d.WorkLogs = []WorkLog{}
	}
	if d.Tickets == nil {
		d.Tickets = []Ticket{}
	}
	if d.Assets == nil {
		d.Assets = []Asset{}
	}
	if d.ShipInspections == nil {
		d.ShipInspections = []ShipInspection{}
	}
	return d
}
