package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is an ordinal match rating, ordered D < C < B < A.
type Rating string

const (
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
)

var ratingScores = map[Rating]int{
	RatingA: 4,
	RatingB: 3,
	RatingC: 2,
	RatingD: 1,
}

func (r Rating) Valid() bool {
	_, ok := ratingScores[r]
	return ok
}

// Score maps the letter onto its numeric value (A=4 .. D=1).
func (r Rating) Score() int {
	return ratingScores[r]
}

// Less reports ordinal order: D < C < B < A.
func (r Rating) Less(other Rating) bool {
	return r.Score() < other.Score()
}

// RatingFromScore rounds an averaged score back onto the letter scale:
// >= 3.5 is A, >= 2.5 is B, >= 1.5 is C, anything lower is D.
func RatingFromScore(avg float64) Rating {
	switch {
	case avg >= 3.5:
		return RatingA
	case avg >= 2.5:
		return RatingB
	case avg >= 1.5:
		return RatingC
	default:
		return RatingD
	}
}

// MatchRecord holds one player's four per-role ratings for one match.
// Ownership is transitive through the player row.
type MatchRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`
	Kickoff  string    `gorm:"size:8;not null" json:"kickoff"`
	Opponent string    `gorm:"size:100;not null" json:"opponent"`
	PlayerID uuid.UUID `gorm:"type:uuid;not null;index" json:"player_id"`

	Boldholder    Rating `gorm:"size:1;not null" json:"boldholder"`
	Medspiller    Rating `gorm:"size:1;not null" json:"medspiller"`
	Presspiller   Rating `gorm:"size:1;not null" json:"presspiller"`
	Stottespiller Rating `gorm:"size:1;not null" json:"stottespiller"`

	CreatedAt time.Time `json:"created_at"`
}
