package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sorofreja/playerdev-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNoPlayersSelected = errors.New("at least one player must be selected")
	ErrInvalidRating     = errors.New("ratings must be one of A, B, C, D")
)

const defaultOpponent = "Not specified"

// PlayerRatings is one player's four ratings for a match being saved.
type PlayerRatings struct {
	PlayerName    string
	Boldholder    models.Rating
	Medspiller    models.Rating
	Presspiller   models.Rating
	Stottespiller models.Rating
}

func (pr PlayerRatings) valid() bool {
	return pr.Boldholder.Valid() && pr.Medspiller.Valid() &&
		pr.Presspiller.Valid() && pr.Stottespiller.Valid()
}

// PerformanceRow is one match line in a player's history.
type PerformanceRow struct {
	Date          time.Time
	Kickoff       string
	Opponent      string
	Boldholder    models.Rating
	Medspiller    models.Rating
	Presspiller   models.Rating
	Stottespiller models.Rating
}

// TeamRow is one (date, kickoff) aggregate across all rated players.
type TeamRow struct {
	Date          time.Time
	Kickoff       string
	Boldholder    models.Rating
	Medspiller    models.Rating
	Presspiller   models.Rating
	Stottespiller models.Rating
}

// MatchService records and queries match ratings within one owner's
// data scope.
type MatchService struct {
	db     *gorm.DB
	roster *RosterService
}

func NewMatchService(db *gorm.DB, roster *RosterService) *MatchService {
	return &MatchService{db: db, roster: roster}
}

// RecordMatch persists ratings for every selected player in a single
// transaction: either all players' rows are written or none are.
func (s *MatchService) RecordMatch(owner uuid.UUID, date time.Time, kickoff, opponent string, entries []PlayerRatings) error {
	if len(entries) == 0 {
		return ErrNoPlayersSelected
	}
	for _, e := range entries {
		if !e.valid() {
			return ErrInvalidRating
		}
	}
	if opponent == "" {
		opponent = defaultOpponent
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			var player models.Player
			err := tx.Where("user_id = ? AND name = ?", owner, e.PlayerName).First(&player).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to look up player: %w", err)
			}

			record := models.MatchRecord{
				ID:            uuid.New(),
				Date:          date,
				Kickoff:       kickoff,
				Opponent:      opponent,
				PlayerID:      player.ID,
				Boldholder:    e.Boldholder,
				Medspiller:    e.Medspiller,
				Presspiller:   e.Presspiller,
				Stottespiller: e.Stottespiller,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to save match record: %w", err)
			}
		}
		return nil
	})
}

// PlayerPerformance returns one player's rating history in the owner's
// scope, ordered by date then kickoff, optionally bounded by dates.
func (s *MatchService) PlayerPerformance(owner uuid.UUID, playerName string, from, to *time.Time) ([]PerformanceRow, error) {
	player, err := s.roster.playerByName(owner, playerName)
	if err != nil {
		return nil, err
	}

	q := s.db.Where("player_id = ?", player.ID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	var records []models.MatchRecord
	if err := q.Order("date, kickoff").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load performance: %w", err)
	}

	rows := make([]PerformanceRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, PerformanceRow{
			Date:          r.Date,
			Kickoff:       r.Kickoff,
			Opponent:      r.Opponent,
			Boldholder:    r.Boldholder,
			Medspiller:    r.Medspiller,
			Presspiller:   r.Presspiller,
			Stottespiller: r.Stottespiller,
		})
	}
	return rows, nil
}

// TeamPerformance aggregates all of the owner's match records per
// (date, kickoff): each category is the mean of the mapped scores
// (A=4..D=1), rounded back to a letter at the .5 boundaries.
func (s *MatchService) TeamPerformance(owner uuid.UUID, from, to *time.Time) ([]TeamRow, error) {
	records, err := s.ownerRecords(owner, from, to)
	if err != nil {
		return nil, err
	}
	return aggregateTeam(records), nil
}

// Seasons returns the distinct years the owner has match data for,
// ascending.
func (s *MatchService) Seasons(owner uuid.UUID) ([]int, error) {
	records, err := s.ownerRecords(owner, nil, nil)
	if err != nil {
		return nil, err
	}

	seen := map[int]bool{}
	for _, r := range records {
		seen[r.Date.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func (s *MatchService) ownerRecords(owner uuid.UUID, from, to *time.Time) ([]models.MatchRecord, error) {
	q := s.db.
		Joins("JOIN players ON players.id = match_records.player_id").
		Where("players.user_id = ?", owner)
	if from != nil {
		q = q.Where("match_records.date >= ?", *from)
	}
	if to != nil {
		q = q.Where("match_records.date <= ?", *to)
	}

	var records []models.MatchRecord
	if err := q.Order("match_records.date, match_records.kickoff").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load match records: %w", err)
	}
	return records, nil
}

type matchKey struct {
	date    string
	kickoff string
}

func aggregateTeam(records []models.MatchRecord) []TeamRow {
	type sums struct {
		date       time.Time
		kickoff    string
		bold, med  int
		press, sup int
		n          int
	}

	groups := map[matchKey]*sums{}
	order := []matchKey{}
	for _, r := range records {
		key := matchKey{r.Date.Format("2006-01-02"), r.Kickoff}
		g, ok := groups[key]
		if !ok {
			g = &sums{date: r.Date, kickoff: r.Kickoff}
			groups[key] = g
			order = append(order, key)
		}
		g.bold += r.Boldholder.Score()
		g.med += r.Medspiller.Score()
		g.press += r.Presspiller.Score()
		g.sup += r.Stottespiller.Score()
		g.n++
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date < order[j].date
		}
		return order[i].kickoff < order[j].kickoff
	})

	rows := make([]TeamRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		n := float64(g.n)
		rows = append(rows, TeamRow{
			Date:          g.date,
			Kickoff:       g.kickoff,
			Boldholder:    models.RatingFromScore(float64(g.bold) / n),
			Medspiller:    models.RatingFromScore(float64(g.med) / n),
			Presspiller:   models.RatingFromScore(float64(g.press) / n),
			Stottespiller: models.RatingFromScore(float64(g.sup) / n),
		})
	}
	return rows
}
