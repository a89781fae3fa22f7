package domain

type TaskStatus string

const (
	StatusPending         TaskStatus = "Pending"
	StatusWaitingPurchase TaskStatus = "Waiting Purchase"
	StatusInProgress      TaskStatus = "In Progress"
	StatusCompleted       TaskStatus = "Completed"
	StatusCancelled       TaskStatus = "Cancelled"
)

// Terminal reports whether no further work is expected for the status.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Label returns the Thai display label used on screen and in printed reports.
func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "รอดำเนินการ"
	case StatusWaitingPurchase:
		return "รอจัดซื้อ"
	case StatusInProgress:
		return "กำลังทำ"
	case StatusCompleted:
		return "เสร็จสิ้น"
	case StatusCancelled:
		return "ยกเลิก"
	default:
		return string(s)
	}
}

type TicketType string

const (
	TicketRepair   TicketType = "Repair"
	TicketPurchase TicketType = "Purchase"
)

type LocationCategory string

const (
	LocationShip           LocationCategory = "Ship"
	LocationPort           LocationCategory = "Port"
	LocationOffice         LocationCategory = "Office"
	LocationShipyard       LocationCategory = "Shipyard"
	LocationWatRajsingkorn LocationCategory = "Wat Rajsingkorn"
	LocationGasStation     LocationCategory = "Gas Station"
)

// LocationCategories lists every location category in display order.
var LocationCategories = []LocationCategory{
	LocationShip,
	LocationPort,
	LocationOffice,
	LocationShipyard,
	LocationWatRajsingkorn,
	LocationGasStation,
}

type AssetStatus string

const (
	AssetActive      AssetStatus = "Active"
	AssetMaintenance AssetStatus = "Maintenance"
	AssetRetired     AssetStatus = "Retired"
	AssetLost        AssetStatus = "Lost"
)

var AssetStatuses = []AssetStatus{AssetActive, AssetMaintenance, AssetLost, AssetRetired}

type InspectionStatus string

const (
	InspectionNormal          InspectionStatus = "Normal"
	InspectionBroken          InspectionStatus = "Broken"
	InspectionLost            InspectionStatus = "Lost"
	InspectionClaiming        InspectionStatus = "Claiming"
	InspectionWaitingPurchase InspectionStatus = "WaitingPurchase"
)

func (s InspectionStatus) Label() string {
	switch s {
	case InspectionNormal:
		return "ปกติ"
	case InspectionBroken:
		return "ชำรุด"
	case InspectionLost:
		return "สูญหาย"
	case InspectionClaiming:
		return "ส่งเคลม"
	case InspectionWaitingPurchase:
		return "รอจัดซื้อ"
	default:
		return "ไม่ระบุ"
	}
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusWaitingPurchase, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (t TicketType) Valid() bool {
	return t == TicketRepair || t == TicketPurchase
}

func (c LocationCategory) Valid() bool {
	for _, known := range LocationCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (s AssetStatus) Valid() bool {
	for _, known := range AssetStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s InspectionStatus) Valid() bool {
	switch s {
	case InspectionNormal, InspectionBroken, InspectionLost, InspectionClaiming, InspectionWaitingPurchase:
		return true
	}
	return false
}
