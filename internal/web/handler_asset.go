package web

import (
	"cmp"
	"net/http"

	"github.com/vbonduro/marineit/internal/domain"
)

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r, s.service.DefaultFilter())
	writeJSON(w, http.StatusOK, s.service.Assets(f), s.logger)
}

func (s *Server) handleAssetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.AssetSummary(), s.logger)
}

func (s *Server) handleAssetDrillDown(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "category required", s.logger)
		return
	}
	writeJSON(w, http.StatusOK, s.service.DrillDown(category), s.logger)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	asset, _ := s.service.Store().AddAsset(req.input())
	writeJSON(w, http.StatusCreated, asset, s.logger)
}

// handleUpdateAsset replaces an asset. Fields the form leaves empty keep
// their stored value where the registry has one.
func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	snap := s.service.Store().EditAsset(r.PathValue("id"), func(old domain.Asset) domain.Asset {
		return domain.Asset{
			Name:             req.Name,
			SerialNumber:     req.SerialNumber,
			Category:         req.Category,
			LocationCategory: req.LocationCategory,
			LocationName:     req.LocationName,
			Position:         req.Position,
			Description:      req.Description,
			Status:           cmp.Or(req.Status, old.Status),
			LastChecked:      cmp.Or(req.LastChecked, old.LastChecked),
			StaffName:        cmp.Or(req.StaffName, old.StaffName),
			ImageURL:         cmp.Or(req.ImageURL, old.ImageURL),
		}
	})
	writeJSON(w, http.StatusOK, snap.Assets, s.logger)
}

func (s *Server) handleAssetStatus(w http.ResponseWriter, r *http.Request) {
	var req assetStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	snap := s.service.Store().SetAssetStatus(r.PathValue("id"), req.Status)
	writeJSON(w, http.StatusOK, snap.Assets, s.logger)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Store().DeleteAsset(r.PathValue("id"))
	writeJSON(w, http.StatusOK, snap.Assets, s.logger)
}

func (s *Server) handleAssetPhoto(w http.ResponseWriter, r *http.Request) {
	uploads, err := readUploads(r, "photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), s.logger)
		return
	}
	snap, err := s.service.SetAssetPhoto(r.PathValue("id"), uploads[0])
	if err != nil {
		s.writeImageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Assets, s.logger)
}

func (s *Server) handleGetAssetPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	photo, err := s.service.AssetPhoto(id)
	if err != nil {
		s.logger.Error("get asset photo failed", "asset_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read photo", s.logger)
		return
	}
	if photo == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := w.Write(photo); err != nil {
		s.logger.Error("write photo failed", "asset_id", id, "error", err)
	}
}
