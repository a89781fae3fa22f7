package domain

import "time"

// DefaultOperator is the staff member recorded on work logs and inspections
// when no operator is configured.
const DefaultOperator = "มนชัย เจริญอินทร์"

// DefaultData returns the dataset used on first start and whenever the stored
// state cannot be read. Timestamps are UTC, truncated to milliseconds.
func DefaultData(now time.Time, operator string) AppData {
	today := now.Format(DateLayout)
	stamp := now.UTC().Truncate(time.Millisecond)
	return AppData{
		WorkLogs: []WorkLog{{
			ID:              "wl-1",
			Date:            today,
			Time:            "09:00",
			StaffName:       operator,
			Location:        "ท่าเรือสาทร",
			TaskDescription: "ตรวจสอบความเรียบร้อยระบบเครือข่ายและเครื่องขายตั๋วอัตโนมัติ",
			Status:          StatusCompleted,
		}},
		Tickets: []Ticket{{
			ID:        "tk-1",
			Subject:   "เราเตอร์ขัดข้อง - เรือด่วนลำที่ 105",
			Details:   "สัญญาณ Wi-Fi หลุดบ่อยครั้งในระหว่างเดินทาง คาดว่าเกิดจากสายสัญญาณหลวม",
			Location:  "เรือด่วนลำที่ 105",
			Status:    StatusInProgress,
			CreatedAt: stamp,
			UpdatedAt: stamp,
		}},
		Assets: []Asset{
			{
				ID:               "as-1",
				Name:             "เซิร์ฟเวอร์หลัก CPX-DATA-01",
				SerialNumber:     "CPX-HQ-SV9921",
				Category:         "เซิร์ฟเวอร์",
				LocationCategory: LocationOffice,
				LocationName:     "ห้องไอที ชั้น 2 สำนักงานใหญ่",
				Status:           AssetActive,
				LastChecked:      today,
				StaffName:        operator,
			},
			{
				ID:               "as-2",
				Name:             "เครื่องรับสัญญาณดาวเทียม Marine-V3",
				SerialNumber:     "SAT-BOAT-002",
				Category:         "อุปกรณ์สื่อสาร",
				LocationCategory: LocationShip,
				LocationName:     "เรือด่วนลำที่ 202",
				Status:           AssetActive,
				LastChecked:      today,
				StaffName:        operator,
			},
		},
		ShipInspections: []ShipInspection{},
	}
}
