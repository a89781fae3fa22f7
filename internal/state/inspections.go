package state

import (
	"slices"

	"github.com/vbonduro/marineit/internal/domain"
)

// AddInspection records an inspection of shipName dated today and signed by
// the operator. Slots without an id get one.
func (s *Store) AddInspection(shipName string, slots []domain.InspectionImage) (domain.ShipInspection, domain.AppData) {
	ins := domain.ShipInspection{
		ID:        s.newID("ins"),
		ShipName:  shipName,
		Date:      s.today(),
		Inspector: s.operator,
		Images:    s.slots(slots),
	}
	snap := s.commit(ChangeCreate, CollectionInspections, ins.ID, func(cur domain.AppData) (domain.AppData, bool) {
		cur.ShipInspections = prepend(cur.ShipInspections, ins)
		return cur, true
	})
	return ins, snap
}

func (s *Store) UpdateInspection(updated domain.ShipInspection) domain.AppData {
	return s.EditInspection(updated.ID, func(domain.ShipInspection) domain.ShipInspection { return updated })
}

// EditInspection rewrites the stored inspection through edit within one
// commit. Slots without an id get one.
func (s *Store) EditInspection(id string, edit func(old domain.ShipInspection) domain.ShipInspection) domain.AppData {
	return s.commit(ChangeUpdate, CollectionInspections, id, func(cur domain.AppData) (domain.AppData, bool) {
		list, ok := replaceWhere(cur.ShipInspections, inspectionID(id), func(old domain.ShipInspection) domain.ShipInspection {
			ins := edit(old)
			ins.ID = id
			ins.Images = s.slots(ins.Images)
			return ins
		})
		cur.ShipInspections = list
		return cur, ok
	})
}

func (s *Store) SetInspectionSlotStatus(id, slotID string, status domain.InspectionStatus) domain.AppData {
	return s.updateSlot(id, slotID, ChangeStatus, func(img *domain.InspectionImage) {
		img.Status = status
	})
}

// SetInspectionSlotPhoto attaches an encoded photo to one checklist slot.
func (s *Store) SetInspectionSlotPhoto(id, slotID, url string) domain.AppData {
	return s.updateSlot(id, slotID, ChangeUpdate, func(img *domain.InspectionImage) {
		img.URL = &url
	})
}

func (s *Store) SetInspectionSlotDetails(id, slotID, details string) domain.AppData {
	return s.updateSlot(id, slotID, ChangeUpdate, func(img *domain.InspectionImage) {
		img.Details = details
	})
}

func (s *Store) DeleteInspection(id string) domain.AppData {
	return s.commit(ChangeDelete, CollectionInspections, id, func(cur domain.AppData) (domain.AppData, bool) {
		list, ok := removeWhere(cur.ShipInspections, inspectionID(id))
		cur.ShipInspections = list
		return cur, ok
	})
}

func (s *Store) updateSlot(id, slotID string, kind ChangeKind, fn func(*domain.InspectionImage)) domain.AppData {
	return s.commit(kind, CollectionInspections, id, func(cur domain.AppData) (domain.AppData, bool) {
		found := false
		list, ok := replaceWhere(cur.ShipInspections, inspectionID(id), func(ins domain.ShipInspection) domain.ShipInspection {
			i := slices.IndexFunc(ins.Images, func(img domain.InspectionImage) bool { return img.ID == slotID })
			if i < 0 {
				return ins
			}
			found = true
			ins.Images = slices.Clone(ins.Images)
			fn(&ins.Images[i])
			return ins
		})
		if !ok || !found {
			return cur, false
		}
		cur.ShipInspections = list
		return cur, true
	})
}

// slots returns a copy of images with missing slot ids assigned.
func (s *Store) slots(images []domain.InspectionImage) []domain.InspectionImage {
	out := make([]domain.InspectionImage, len(images))
	for i, img := range images {
		if img.ID == "" {
			img.ID = s.newID("img")
		}
		out[i] = img
	}
	return out
}

func inspectionID(id string) func(domain.ShipInspection) bool {
	return func(ins domain.ShipInspection) bool { return ins.ID == id }
}
