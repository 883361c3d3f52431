package models

// AccountSnapshot is the externally visible state of one account at the end
// of a run.
type AccountSnapshot struct {
	Client    ClientID `json:"client"`
	Available Amount   `json:"available"`
	Held      Amount   `json:"held"`
	Total     Amount   `json:"total"`
	Locked    bool     `json:"locked"`
}
