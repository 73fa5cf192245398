package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/types"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", s)
	}
}

// Write renders v in the requested format.
func Write(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, v)
	}
}

func writeText(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch v := v.(type) {
	case types.Standings:
		textStandings(tw, v)
	case []types.EventInfo:
		fmt.Fprintln(tw, "DATE\tEVENT\tTIER")
		for _, e := range v {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Date, e.Name, e.Tier)
		}
	case types.EventResults:
		textEvent(tw, v)
	case types.PointsTable:
		textPoints(tw, v)
	case types.Entrants:
		textEntrants(tw, v)
	case model.PlayerAggregate:
		fmt.Fprintf(tw, "%d. %s\t%d pts\n\n", v.Rank, v.Name, v.TotalPoints)
		fmt.Fprintln(tw, "EVENT\tPOINTS")
		for _, ep := range v.PerEventPoints {
			fmt.Fprintf(tw, "%s\t%d\n", ep.EventName, ep.Points)
		}
	default:
		return fmt.Errorf("no text rendering for %T", v)
	}
	return tw.Flush()
}

func textStandings(w io.Writer, st types.Standings) {
	fmt.Fprintln(w, "RANK\tPLAYER\tPOINTS")
	for _, e := range st.Entries {
		rank := strconv.Itoa(e.Rank)
		if e.Tied {
			rank = "=" + rank
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", rank, e.Name, e.Points)
	}
	if len(st.Entries) == 0 {
		fmt.Fprintln(w, "-\tno points scored yet\t")
	}
	if len(st.UnavailableEvents) > 0 {
		fmt.Fprintf(w, "\nResults unavailable for: %s\n", strings.Join(st.UnavailableEvents, ", "))
	}
}

func textEvent(w io.Writer, v types.EventResults) {
	fmt.Fprintf(w, "%s (%s, %s)\n", v.Event.Name, v.Event.Tier, v.Event.Date)
	if v.Unavailable {
		fmt.Fprintf(w, "Results unavailable: %s\n", v.Warning)
		return
	}
	fmt.Fprintln(w, "POS\tPLAYER\tHCP\tSCORE\tPOINTS")
	for _, r := range v.Rows {
		hcp, score := "", ""
		if r.Handicap != nil {
			hcp = strconv.Itoa(*r.Handicap)
		}
		if r.Score != nil {
			score = strconv.FormatFloat(*r.Score, 'f', -1, 64)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", r.Position, r.Name, hcp, score, r.Points)
	}
}

func textPoints(w io.Writer, v types.PointsTable) {
	header := append([]string{"PLACE"}, v.Tiers...)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(header, "\t")))
	for _, row := range v.Rows {
		cells := []string{strconv.Itoa(row.Place)}
		for _, p := range row.Points {
			cells = append(cells, strconv.Itoa(p))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
}

func textEntrants(w io.Writer, v types.Entrants) {
	if !v.Available {
		fmt.Fprintln(w, "Entrants listing unavailable; standings are unfiltered.")
	}
	m := v.Metrics
	fmt.Fprintf(w, "Entries:\t%d\n", m.EntryCount)
	fmt.Fprintf(w, "Entry fee:\t%s\n", m.EntryFee.StringFixed(2))
	fmt.Fprintf(w, "Prize pool:\t%s\n", m.PrizePool.StringFixed(2))
	for _, p := range m.Payouts {
		fmt.Fprintf(w, "Place %d:\t%s\n", p.Place, p.Amount.StringFixed(2))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PLAYER\tPOINTS")
	for _, e := range v.Entrants {
		fmt.Fprintf(w, "%s\t%d\n", e.Name, e.Points)
	}
}
