package model

import "time"

// Vote represents one row in the vote ledger: proof that a single device
// identity voted for a single entry. Rows are never updated.
type Vote struct {
	ID         string    `json:"id"`
	EntryID    string    `json:"entry_id"`
	DeviceHash string    `json:"-"`
	// IPAddress holds the salted hash of the voter's network address,
	// never the raw address.
	IPAddress string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// VoteRequest is the API request body for casting a vote.
type VoteRequest struct {
	EntryID    string `json:"entryId"`
	DeviceHash string `json:"deviceHash"`
}

// VoteResponse is the API response after a successful vote.
type VoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Votes   int    `json:"votes"`
}

// HasVotedResponse is the API response for a vote-status check.
type HasVotedResponse struct {
	Success  bool `json:"success"`
	HasVoted bool `json:"hasVoted"`
}
