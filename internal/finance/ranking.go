package finance

import (
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PhotographerTotals are the per-photographer sums over assignment rows,
// optionally already filtered to a single race by the caller. Photographers
// without any matching assignment row must not be passed in: they do not
// take part in the ranking.
type PhotographerTotals struct {
	PhotographerID  uuid.UUID
	Name            string
	PhotosTaken     int64
	Downloads       int64
	UniqueDownloads int64
}

// Components toggles the four score components.
type Components struct {
	Volume     bool
	Downloads  bool
	Efficiency bool
	Reach      bool
}

// AllComponents enables every score component, the default for ranking
// requests that do not switch any off.
func AllComponents() Components {
	return Components{Volume: true, Downloads: true, Efficiency: true, Reach: true}
}

// RankingEntry is one photographer's scored ranking row.
type RankingEntry struct {
	PhotographerID  uuid.UUID `json:"photographerId"`
	Name            string    `json:"name"`
	PhotosTaken     int64     `json:"photosTaken"`
	Downloads       int64     `json:"downloads"`
	UniqueDownloads int64     `json:"uniqueDownloads"`

	DownloadRate float64 `json:"downloadRate"` // downloads per photo taken
	Reach        float64 `json:"reach"`        // unique downloads per download

	VolumeScore     float64 `json:"volumeScore"`
	DownloadsScore  float64 `json:"downloadsScore"`
	EfficiencyScore float64 `json:"efficiencyScore"`
	ReachScore      float64 `json:"reachScore"`
	Score           float64 `json:"score"`
}

var rankingCollator = collate.New(language.Spanish)

// Rank scores and orders photographers.
//
// Each of the four raw metrics is normalized against the maximum over the
// whole result set, the composite score is the mean of the enabled
// components, and the result is ordered by score descending with ties broken
// by collated name ascending.
func Rank(rows []PhotographerTotals, components Components) []RankingEntry {
	// An empty JSON array, not null, when there is nothing to rank
	entries := make([]RankingEntry, 0, len(rows))

	var maxVolume, maxDownloads, maxRate, maxReach float64
	for _, r := range rows {
		e := RankingEntry{
			PhotographerID:  r.PhotographerID,
			Name:            r.Name,
			PhotosTaken:     r.PhotosTaken,
			Downloads:       r.Downloads,
			UniqueDownloads: r.UniqueDownloads,
		}

		if r.PhotosTaken > 0 {
			e.DownloadRate = float64(r.Downloads) / float64(r.PhotosTaken)
		}
		if r.Downloads > 0 {
			e.Reach = float64(r.UniqueDownloads) / float64(r.Downloads)
		}

		maxVolume = max(maxVolume, float64(e.PhotosTaken))
		maxDownloads = max(maxDownloads, float64(e.Downloads))
		maxRate = max(maxRate, e.DownloadRate)
		maxReach = max(maxReach, e.Reach)

		entries = append(entries, e)
	}

	normalize := func(v, max float64) float64 {
		if max == 0 {
			return 0
		}
		return v / max
	}

	for i := range entries {
		e := &entries[i]
		e.VolumeScore = normalize(float64(e.PhotosTaken), maxVolume)
		e.DownloadsScore = normalize(float64(e.Downloads), maxDownloads)
		e.EfficiencyScore = normalize(e.DownloadRate, maxRate)
		e.ReachScore = normalize(e.Reach, maxReach)

		var sum float64
		var n int
		for _, c := range []struct {
			enabled bool
			score   float64
		}{
			{components.Volume, e.VolumeScore},
			{components.Downloads, e.DownloadsScore},
			{components.Efficiency, e.EfficiencyScore},
			{components.Reach, e.ReachScore},
		} {
			if c.enabled {
				sum += c.score
				n++
			}
		}

		if n > 0 {
			e.Score = sum / float64(n)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return rankingCollator.CompareString(entries[i].Name, entries[j].Name) < 0
	})

	return entries
}
