package web

import (
	"cmp"
	"errors"
	"net/http"

	"github.com/vbonduro/marineit/internal/domain"
	"github.com/vbonduro/marineit/internal/imageenc"
)

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	typ := domain.TicketType(r.URL.Query().Get("type"))
	if typ == "" {
		typ = domain.TicketRepair
	}
	if !typ.Valid() {
		writeError(w, http.StatusBadRequest, "unknown ticket type", s.logger)
		return
	}
	f := filterFromQuery(r, s.service.DefaultFilter())
	writeJSON(w, http.StatusOK, s.service.Tickets(typ, f), s.logger)
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	var ticket domain.Ticket
	if p := req.purchase(); p != nil {
		ticket, _ = s.service.Store().AddPurchaseTicket(req.input(), *p)
	} else {
		ticket, _ = s.service.Store().AddRepairTicket(req.input())
	}
	writeJSON(w, http.StatusCreated, ticket, s.logger)
}

// handleUpdateTicket replaces a ticket. An omitted status or image list keeps
// the stored one.
func (s *Server) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req ticketRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	snap := s.service.Store().EditTicket(id, func(old domain.Ticket) domain.Ticket {
		t := req.ticket(id)
		t.Status = cmp.Or(t.Status, old.Status)
		if req.Images == nil {
			t.Images = old.Images
		}
		return t
	})
	writeJSON(w, http.StatusOK, snap.Tickets, s.logger)
}

func (s *Server) handleTicketStatus(w http.ResponseWriter, r *http.Request) {
	var req taskStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	snap := s.service.Store().SetTicketStatus(r.PathValue("id"), req.Status)
	writeJSON(w, http.StatusOK, snap.Tickets, s.logger)
}

func (s *Server) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Store().DeleteTicket(r.PathValue("id"))
	writeJSON(w, http.StatusOK, snap.Tickets, s.logger)
}

func (s *Server) handleTicketImages(w http.ResponseWriter, r *http.Request) {
	uploads, err := readUploads(r, "images")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), s.logger)
		return
	}
	snap, err := s.service.AttachTicketImages(r.PathValue("id"), uploads)
	if err != nil {
		s.writeImageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Tickets, s.logger)
}

func (s *Server) writeImageError(w http.ResponseWriter, err error) {
	if errors.Is(err, imageenc.ErrUnsupportedImage) {
		writeError(w, http.StatusBadRequest, "only JPEG images are accepted", s.logger)
		return
	}
	s.logger.Error("image upload failed", "error", err)
	writeError(w, http.StatusInternalServerError, "failed to process image", s.logger)
}
