package state

import "github.com/vbonduro/marineit/internal/domain"

type AssetInput struct {
	Name             string
	SerialNumber     string
	Category         string
	LocationCategory domain.LocationCategory
	LocationName     string
	Position         string
	Description      string
	LastChecked      string
	StaffName        string
	ImageURL         string
}

// AddAsset registers a new asset. New assets start Active; an empty
// LastChecked defaults to today and an empty StaffName to the operator.
func (s *Store) AddAsset(in AssetInput) (domain.Asset, domain.AppData) {
	asset := domain.Asset{
		ID:               s.newID("as"),
		Name:             in.Name,
		SerialNumber:     in.SerialNumber,
		Category:         in.Category,
		LocationCategory: in.LocationCategory,
		LocationName:     in.LocationName,
		Position:         in.Position,
		Description:      in.Description,
		Status:           domain.AssetActive,
		LastChecked:      in.LastChecked,
		StaffName:        in.StaffName,
		ImageURL:         in.ImageURL,
	}
	if asset.LastChecked == "" {
		asset.LastChecked = s.today()
	}
	if asset.StaffName == "" {
		asset.StaffName = s.operator
	}
	snap := s.commit(ChangeCreate, CollectionAssets, asset.ID, func(cur domain.AppData) (domain.AppData, bool) {
		cur.Assets = prepend(cur.Assets, asset)
		return cur, true
	})
	return asset, snap
}

func (s *Store) UpdateAsset(updated domain.Asset) domain.AppData {
	return s.EditAsset(updated.ID, func(domain.Asset) domain.Asset { return updated })
}

// EditAsset rewrites the stored asset through edit within one commit.
func (s *Store) EditAsset(id string, edit func(old domain.Asset) domain.Asset) domain.AppData {
	return s.commit(ChangeUpdate, CollectionAssets, id, func(cur domain.AppData) (domain.AppData, bool) {
		assets, ok := replaceWhere(cur.Assets, assetID(id), func(old domain.Asset) domain.Asset {
			a := edit(old)
			a.ID = id
			return a
		})
		cur.Assets = assets
		return cur, ok
	})
}

func (s *Store) SetAssetStatus(id string, status domain.AssetStatus) domain.AppData {
	return s.commit(ChangeStatus, CollectionAssets, id, func(cur domain.AppData) (domain.AppData, bool) {
		assets, ok := replaceWhere(cur.Assets, assetID(id), func(a domain.Asset) domain.Asset {
			a.Status = status
			return a
		})
		cur.Assets = assets
		return cur, ok
	})
}

// SetAssetImage replaces the asset photo with an encoded image.
func (s *Store) SetAssetImage(id, url string) domain.AppData {
	return s.commit(ChangeUpdate, CollectionAssets, id, func(cur domain.AppData) (domain.AppData, bool) {
		assets, ok := replaceWhere(cur.Assets, assetID(id), func(a domain.Asset) domain.Asset {
			a.ImageURL = url
			return a
		})
		cur.Assets = assets
		return cur, ok
	})
}

func (s *Store) DeleteAsset(id string) domain.AppData {
	return s.commit(ChangeDelete, CollectionAssets, id, func(cur domain.AppData) (domain.AppData, bool) {
		assets, ok := removeWhere(cur.Assets, assetID(id))
		cur.Assets = assets
		return cur, ok
	})
}

func assetID(id string) func(domain.Asset) bool {
	return func(a domain.Asset) bool { return a.ID == id }
}
