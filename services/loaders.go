package services

import (
	"context"

	"spotbook/models"
	"spotbook/store"
)

func unique(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func loadUsers(ctx context.Context, st store.Store, ids []uint) (map[uint]*models.User, error) {
	users, err := st.FindUsers(ctx, unique(ids)...)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]*models.User, len(users))
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

// previewImages maps each spot id to its preview image URL.
func previewImages(ctx context.Context, st store.Store, spotIDs []uint) (map[uint]*string, error) {
	images, err := st.ListSpotImages(ctx, unique(spotIDs)...)
	if err != nil {
		return nil, err
	}
	bySpot := make(map[uint][]models.SpotImage)
	for _, img := range images {
		bySpot[img.SpotID] = append(bySpot[img.SpotID], img)
	}
	out := make(map[uint]*string, len(bySpot))
	for id, imgs := range bySpot {
		out[id] = models.PreviewImage(imgs)
	}
	return out, nil
}

// loadSpotSummaries loads the given spots and their preview images. Spots
// that no longer exist are left out of the map.
func loadSpotSummaries(ctx context.Context, st store.Store, spotIDs []uint) (map[uint]*models.Spot, map[uint]*string, error) {
	ids := unique(spotIDs)
	spots := make(map[uint]*models.Spot, len(ids))
	for _, id := range ids {
		spot, err := optional(st.FindSpot(ctx, id))
		if err != nil {
			return nil, nil, err
		}
		if spot != nil {
			spots[id] = spot
		}
	}
	previews, err := previewImages(ctx, st, ids)
	if err != nil {
		return nil, nil, err
	}
	return spots, previews, nil
}
