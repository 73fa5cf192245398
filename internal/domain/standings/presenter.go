package standings

import (
	"cmp"
	"slices"
	"time"

	"github.com/midex/tourboard/internal/domain/eligibility"
	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/scoring"
	"github.com/midex/tourboard/internal/domain/types"
)

// DateLayout is how event dates are rendered.
const DateLayout = "2006-01-02"

var podium = map[int]types.Medal{
	1: types.MedalGold,
	2: types.MedalSilver,
	3: types.MedalBronze,
}

// Present annotates a leaderboard for display. A positive limit keeps only the
// top entries.
func Present(board model.Leaderboard, unavailable []string, generatedAt time.Time, limit int) types.Standings {
	entries := make([]types.Entry, len(board))
	for i, p := range board {
		entries[i] = types.Entry{
			Rank:   p.Rank,
			Name:   p.Name,
			Points: p.TotalPoints,
			Medal:  podium[p.Rank],
			Tied: (i > 0 && board[i-1].TotalPoints == p.TotalPoints) ||
				(i+1 < len(board) && board[i+1].TotalPoints == p.TotalPoints),
		}
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return types.Standings{
		GeneratedAt:       generatedAt,
		Entries:           entries,
		UnavailableEvents: append([]string(nil), unavailable...),
	}
}

// Calendar renders the configured events in order.
func Calendar(events []model.EventDefinition) []types.EventInfo {
	out := make([]types.EventInfo, len(events))
	for i, ev := range events {
		out[i] = eventInfo(ev)
	}
	return out
}

func eventInfo(ev model.EventDefinition) types.EventInfo {
	return types.EventInfo{Date: ev.Date.Format(DateLayout), Name: ev.Name, Tier: ev.Tier.Label()}
}

// EventDetail lists one event's results by finishing position with the points
// each earned.
func EventDetail(ev model.EventDefinition, results []model.NormalizedResult, schedule scoring.Schedule) types.EventResults {
	rows := make([]types.EventRow, len(results))
	for i, r := range results {
		rows[i] = types.EventRow{
			Position: r.Position,
			Name:     r.PlayerName,
			Handicap: r.Handicap,
			Score:    r.Score,
			Points:   schedule.Points(ev.Tier, r.Position),
		}
	}
	slices.SortStableFunc(rows, func(a, b types.EventRow) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return types.EventResults{Event: eventInfo(ev), Rows: rows}
}

// EntrantsView lists every registered entrant with their season points,
// zero scorers included, best first.
func EntrantsView(reg *eligibility.Registry, board model.Leaderboard) types.Entrants {
	names := reg.Names()
	rows := make([]types.EntrantRow, len(names))
	for i, name := range names {
		row := types.EntrantRow{Name: name}
		if p, ok := board.Find(name); ok {
			row.Points = p.TotalPoints
			row.Rank = p.Rank
		}
		rows[i] = row
	}
	slices.SortStableFunc(rows, func(a, b types.EntrantRow) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return types.Entrants{Metrics: reg.Metrics(), Entrants: rows, Available: true}
}
