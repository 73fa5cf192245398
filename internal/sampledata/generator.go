package sampledata

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/midex/tourboard/internal/config"
)

// Generation ranges.
const (
	minField      = 6
	maxHandicap   = 28
	bestScore     = 44
	nonMemberStep = 7 // every 7th rostered player has not paid an entry
)

// sheet layouts rotate per event so every column shape gets exercised.
const (
	layoutNamePosition = iota
	layoutEmbedded
	layoutSeparate
	layoutCount
)

// Generate builds a season for tour. The same seed always yields the same season.
func Generate(tour *config.Tour, cfg *Config) (*Season, error) {
	if cfg.Players < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", cfg.Players)
	}
	f := gofakeit.New(cfg.Seed)

	roster := uniqueNames(f, cfg.Players)
	handicaps := make(map[string]int, len(roster))
	for _, name := range roster {
		handicaps[name] = f.IntRange(0, maxHandicap)
	}

	s := &Season{Roster: roster, Tables: make(map[string][][]string)}
	for i, ev := range tour.Events {
		if slices.Contains(cfg.Unplayed, ev.Name) {
			continue
		}
		field := shuffled(f, roster)
		size := f.IntRange(min(minField, len(field)-1), len(field)-1)
		finishers, rest := field[:size], field[size:]
		s.Tables[ev.Name] = sheet(i%layoutCount, finishers, rest, handicaps)
	}

	if cfg.Entrants != "" {
		rows := [][]string{{"Name"}}
		for i, name := range roster {
			if (i+1)%nonMemberStep == 0 {
				continue
			}
			s.Entrants = append(s.Entrants, name)
			rows = append(rows, []string{name})
		}
		s.Tables[cfg.Entrants] = rows
	}
	return s, nil
}

func uniqueNames(f *gofakeit.Faker, n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := f.FirstName() + " " + f.LastName()
		if seen[name] {
			name = fmt.Sprintf("%s %d", name, len(names))
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func shuffled(f *gofakeit.Faker, names []string) []string {
	out := slices.Clone(names)
	for i := len(out) - 1; i > 0; i-- {
		j := f.IntRange(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// sheet renders finishers in position order plus one non-finisher row, which
// the normalizer drops for its unusable position.
func sheet(layout int, finishers, rest []string, handicaps map[string]int) [][]string {
	var rows [][]string
	switch layout {
	case layoutNamePosition:
		rows = append(rows, []string{"Name", "Position"})
	case layoutSeparate:
		rows = append(rows, []string{"Player", "Pos", "Hcp", "Score"})
	}
	for i, name := range finishers {
		pos := i + 1
		score := strconv.Itoa(max(bestScore-i, 1))
		hcp := strconv.Itoa(handicaps[name])
		switch layout {
		case layoutNamePosition:
			rows = append(rows, []string{name, ordinal(pos)})
		case layoutEmbedded:
			rows = append(rows, []string{name + "(" + hcp + ")", strconv.Itoa(pos), score})
		default:
			rows = append(rows, []string{name, strconv.Itoa(pos), hcp, score})
		}
	}
	if len(rest) > 0 {
		switch layout {
		case layoutNamePosition:
			rows = append(rows, []string{rest[0], "DNF"})
		case layoutEmbedded:
			rows = append(rows, []string{rest[0], "NR", ""})
		default:
			rows = append(rows, []string{rest[0], "DQ", "", ""})
		}
	}
	return rows
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	if n%100 >= 11 && n%100 <= 13 {
		suffix = "th"
	}
	return strconv.Itoa(n) + suffix
}
