package web

import (
	"cmp"
	"net/http"

	"github.com/vbonduro/marineit/internal/domain"
)

func (s *Server) handleListInspections(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r, s.service.DefaultFilter())
	writeJSON(w, http.StatusOK, s.service.Inspections(f), s.logger)
}

func (s *Server) handleCreateInspection(w http.ResponseWriter, r *http.Request) {
	var req inspectionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	ins, _ := s.service.Store().AddInspection(req.ShipName, req.slots())
	writeJSON(w, http.StatusCreated, ins, s.logger)
}

func (s *Server) handleUpdateInspection(w http.ResponseWriter, r *http.Request) {
	var req inspectionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	snap := s.service.Store().EditInspection(r.PathValue("id"), func(old domain.ShipInspection) domain.ShipInspection {
		return domain.ShipInspection{
			ShipName:  req.ShipName,
			Date:      cmp.Or(req.Date, old.Date),
			Inspector: cmp.Or(req.Inspector, old.Inspector),
			Images:    req.slots(),
		}
	})
	writeJSON(w, http.StatusOK, snap.ShipInspections, s.logger)
}

func (s *Server) handleDeleteInspection(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Store().DeleteInspection(r.PathValue("id"))
	writeJSON(w, http.StatusOK, snap.ShipInspections, s.logger)
}

func (s *Server) handleSlotStatus(w http.ResponseWriter, r *http.Request) {
	var req slotStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	id, slotID := r.PathValue("id"), r.PathValue("slotID")
	snap := s.service.Store().SetInspectionSlotStatus(id, slotID, req.Status)
	if req.Details != nil {
		snap = s.service.Store().SetInspectionSlotDetails(id, slotID, *req.Details)
	}
	writeJSON(w, http.StatusOK, snap.ShipInspections, s.logger)
}

func (s *Server) handleSlotPhoto(w http.ResponseWriter, r *http.Request) {
	uploads, err := readUploads(r, "photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), s.logger)
		return
	}
	snap, err := s.service.SetInspectionSlotPhoto(r.PathValue("id"), r.PathValue("slotID"), uploads[0])
	if err != nil {
		s.writeImageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.ShipInspections, s.logger)
}
