package web

import (
	"cmp"
	"net/http"

	"github.com/vbonduro/marineit/internal/domain"
)

func (s *Server) handleListWorkLogs(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r, s.service.DefaultFilter())
	writeJSON(w, http.StatusOK, s.service.WorkLogs(f), s.logger)
}

func (s *Server) handleCreateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req workLogRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	log, _ := s.service.Store().AddWorkLog(req.input())
	writeJSON(w, http.StatusCreated, log, s.logger)
}

// handleUpdateWorkLog replaces a work log. An omitted status or staff name
// keeps the stored one.
func (s *Server) handleUpdateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req workLogRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	snap := s.service.Store().EditWorkLog(r.PathValue("id"), func(old domain.WorkLog) domain.WorkLog {
		return domain.WorkLog{
			Date:            req.Date,
			Time:            req.Time,
			StaffName:       cmp.Or(req.StaffName, old.StaffName),
			Location:        req.Location,
			TaskDescription: req.TaskDescription,
			Status:          cmp.Or(req.Status, old.Status),
		}
	})
	writeJSON(w, http.StatusOK, snap.WorkLogs, s.logger)
}

func (s *Server) handleWorkLogStatus(w http.ResponseWriter, r *http.Request) {
	var req taskStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	snap := s.service.Store().SetWorkLogStatus(r.PathValue("id"), req.Status)
	writeJSON(w, http.StatusOK, snap.WorkLogs, s.logger)
}

func (s *Server) handleDeleteWorkLog(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Store().DeleteWorkLog(r.PathValue("id"))
	writeJSON(w, http.StatusOK, snap.WorkLogs, s.logger)
}
