// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package api

import (
	"github.com/cinefuzz/cinefuzz/internal/models"
)

// MovieInput is the wire form of an item to score. Only the title is
// mandatory: it anchors the cache fingerprint. Out-of-range numerics
// are clamped by the pipeline, not rejected here.
type MovieInput struct {
	Title      string   `json:"title" validate:"required"`
	Genres     []string `json:"genres"`
	Popularity float64  `json:"popularity"`
	Year       int      `json:"year"`
	Runtime    int      `json:"runtime"`
	Budget     float64  `json:"budget"`
	Revenue    float64  `json:"revenue"`
}

// WatchHistoryInput is the wire form of a watch-history summary.
type WatchHistoryInput struct {
	LikedRatio    float64 `json:"liked_ratio" validate:"min=0,max=1"`
	DislikedRatio float64 `json:"disliked_ratio" validate:"min=0,max=1"`
	WatchCount    int     `json:"watch_count" validate:"min=0"`
}

// ScoreRequest scores a single movie.
type ScoreRequest struct {
	Preferences  map[string]float64 `json:"preferences" validate:"required"`
	Movie        MovieInput         `json:"movie" validate:"required"`
	WatchHistory *WatchHistoryInput `json:"watch_history"`
	Strategy     string             `json:"strategy"`
}

// BatchScoreRequest scores an ordered list of movies.
type BatchScoreRequest struct {
	Preferences  map[string]float64 `json:"preferences" validate:"required"`
	Movies       []MovieInput       `json:"movies" validate:"required,min=1,max=500,dive"`
	WatchHistory *WatchHistoryInput `json:"watch_history"`
	Strategy     string             `json:"strategy"`
}

func (m MovieInput) toModel() models.ItemDescriptor {
	return models.ItemDescriptor{
		Title:      m.Title,
		Genres:     m.Genres,
		Popularity: m.Popularity,
		Year:       m.Year,
		Runtime:    m.Runtime,
		Budget:     m.Budget,
		Revenue:    m.Revenue,
	}
}

func toDescriptors(movies []MovieInput) []models.ItemDescriptor {
	out := make([]models.ItemDescriptor, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.toModel())
	}
	return out
}

func (h *WatchHistoryInput) toModel() *models.WatchHistory {
	if h == nil {
		return nil
	}
	return &models.WatchHistory{
		LikedRatio:    h.LikedRatio,
		DislikedRatio: h.DislikedRatio,
		WatchCount:    h.WatchCount,
	}
}
