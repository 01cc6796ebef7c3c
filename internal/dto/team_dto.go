package dto

type AddPlayerRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

type PlayerResponse struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// PlayerRatingsEntry is one player's four ratings in a match save.
type PlayerRatingsEntry struct {
	Player        string `json:"player"`
	Boldholder    string `json:"boldholder"`
	Medspiller    string `json:"medspiller"`
	Presspiller   string `json:"presspiller"`
	Stottespiller string `json:"stottespiller"`
}

type RecordMatchRequest struct {
	Date     string               `json:"date"`
	Time     string               `json:"time"`
	Opponent string               `json:"opponent"`
	Players  []PlayerRatingsEntry `json:"players"`
}

type PerformanceRow struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	Opponent      string `json:"opponent,omitempty"`
	Boldholder    string `json:"boldholder"`
	Medspiller    string `json:"medspiller"`
	Presspiller   string `json:"presspiller"`
	Stottespiller string `json:"stottespiller"`
}

type SeasonsResponse struct {
	Seasons []int `json:"seasons"`
}
