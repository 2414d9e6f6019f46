package dto

import "github.com/uniem/uniem-api/internal/repository"

// LeaderboardsDTO carries the five raw leaderboard dimensions returned by the
// synchronous read path. Nothing here is persisted.
type LeaderboardsDTO struct {
	TopUploaders         []repository.DimensionEntry `json:"top_uploaders"`
	TopRatedNoteOwners   []repository.DimensionEntry `json:"top_rated_note_owners"`
	TopCommunityCreators []repository.DimensionEntry `json:"top_community_creators"`
	TopCommenters        []repository.DimensionEntry `json:"top_commenters"`
	TopLikedOwners       []repository.DimensionEntry `json:"top_liked_owners"`
}
