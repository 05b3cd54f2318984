package models

// Counts holds the aggregate statistics shown on the landing page.
type Counts struct {
	Pools   int64 `json:"poolCount"`
	Users   int64 `json:"userCount"`
	Guesses int64 `json:"guessCount"`
}
