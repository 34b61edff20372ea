package model

import "time"

// Entry represents a submitted creative work in the gallery.
type Entry struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type"` // image | video | audio | website
	Prompt       string    `json:"prompt"`
	ToolUsed     string    `json:"tool_used"`
	ShareLink    *string   `json:"share_link"`
	Description  string    `json:"description"`
	CreatorName  string    `json:"creator_name"`
	CreatorEmail string    `json:"creator_email,omitempty"`
	UserID       *string   `json:"user_id,omitempty"`
	Votes        int       `json:"votes"`
	IsFeatured   bool      `json:"is_featured"`
	IsWinner     bool      `json:"is_winner"`
	CreatedAt    time.Time `json:"created_at"`
}

// EntryFilters describes a gallery/admin listing request after
// normalization (limits clamped, defaults applied).
type EntryFilters struct {
	Category  string
	Search    string
	SortBy    string // created_at | votes | title
	SortOrder string // asc | desc
	Page      int
	Limit     int
	// AdminSearch switches the search fields from the public gallery set
	// (title, description, creator name, tool) to the admin set
	// (title, creator name, creator email).
	AdminSearch bool
	// WinnersOnly restricts results to winner-flagged entries (hall of fame).
	WinnersOnly bool
}

// PaginatedEntries is the API response for paginated entry listings.
type PaginatedEntries struct {
	Data    []Entry `json:"data"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
	HasMore bool    `json:"hasMore"`
}

// LeaderboardEntry is an Entry augmented with rank information.
type LeaderboardEntry struct {
	Entry
	Rank int `json:"rank"`
	// RankChange is always "same": computing a delta needs a historical
	// rank snapshot table that does not exist yet.
	RankChange string `json:"rankChange"`
}

// HallOfFameEntry is a winner-flagged Entry with a synthesized award.
type HallOfFameEntry struct {
	Entry
	AwardTitle string `json:"award_title"`
	AwardDate  string `json:"award_date"`
}

// AdminStats is the API response for the admin statistics dashboard.
type AdminStats struct {
	TotalEntries      int            `json:"totalEntries"`
	TotalVotes        int            `json:"totalVotes"`
	FeaturedCount     int            `json:"featuredCount"`
	WinnersCount      int            `json:"winnersCount"`
	RecentSubmissions int            `json:"recentSubmissions"`
	CategoryCounts    map[string]int `json:"categoryCounts"`
	TopEntries        []TopEntry     `json:"topEntries"`
}

// TopEntry is a compact projection used in the admin top-5 listing.
type TopEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CreatorName string `json:"creator_name"`
	Votes       int    `json:"votes"`
	Category    string `json:"category"`
}

// DeleteEntriesRequest is the API request body for admin bulk deletion.
type DeleteEntriesRequest struct {
	EntryIDs  []string `json:"entryIds,omitempty"`
	DeleteAll bool     `json:"deleteAll,omitempty"`
}

// DeleteEntriesResponse reports the outcome of an admin bulk deletion.
type DeleteEntriesResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}
