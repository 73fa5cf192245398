package standings_test

import (
	"testing"
	"time"

	"github.com/midex/tourboard/internal/domain/eligibility"
	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/standings"
	"github.com/midex/tourboard/internal/domain/types"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleBoard() model.Leaderboard {
	return model.Leaderboard{
		{Rank: 1, Name: "Alice", TotalPoints: 500},
		{Rank: 2, Name: "Bob", TotalPoints: 300},
		{Rank: 3, Name: "Dan", TotalPoints: 300},
		{Rank: 4, Name: "Eve", TotalPoints: 100},
	}
}

func TestPresent(t *testing.T) {
	Convey("Given a ranked leaderboard", t, func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		Convey("When presented in full", func() {
			s := standings.Present(sampleBoard(), []string{"May Medal"}, now, 0)

			Convey("Then the podium carries medals", func() {
				So(s.Entries[0].Medal, ShouldEqual, types.MedalGold)
				So(s.Entries[1].Medal, ShouldEqual, types.MedalSilver)
				So(s.Entries[2].Medal, ShouldEqual, types.MedalBronze)
				So(s.Entries[3].Medal, ShouldEqual, types.MedalNone)
			})

			Convey("And level totals are flagged as tied", func() {
				So(s.Entries[0].Tied, ShouldBeFalse)
				So(s.Entries[1].Tied, ShouldBeTrue)
				So(s.Entries[2].Tied, ShouldBeTrue)
				So(s.Entries[3].Tied, ShouldBeFalse)
			})

			Convey("And the advisory notice is attached", func() {
				So(s.UnavailableEvents, ShouldResemble, []string{"May Medal"})
				So(s.GeneratedAt, ShouldEqual, now)
			})
		})

		Convey("When limited to the top two", func() {
			s := standings.Present(sampleBoard(), nil, now, 2)
			So(len(s.Entries), ShouldEqual, 2)
			So(s.Entries[1].Tied, ShouldBeTrue)
		})
	})
}

func TestCalendarAndDetail(t *testing.T) {
	Convey("Given a configured event and its results", t, func() {
		ev := model.EventDefinition{Name: "Club Champs", Tier: model.TierMajor, Date: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)}
		hcp := 12
		res := []model.NormalizedResult{
			{EventName: ev.Name, PlayerName: "Bob", Position: 2, Handicap: &hcp},
			{EventName: ev.Name, PlayerName: "Zoe", Position: 1},
			{EventName: ev.Name, PlayerName: "Amy", Position: 2},
		}

		Convey("Then the calendar renders date and tier label", func() {
			cal := standings.Calendar([]model.EventDefinition{ev})
			So(cal, ShouldResemble, []types.EventInfo{{Date: "2025-08-10", Name: "Club Champs", Tier: "Major"}})
		})

		Convey("Then the detail is sorted by position with points", func() {
			d := standings.EventDetail(ev, res, testSchedule(t))
			So(d.Event.Name, ShouldEqual, "Club Champs")
			So(d.Rows[0].Name, ShouldEqual, "Zoe")
			So(d.Rows[0].Points, ShouldEqual, 750)
			So(d.Rows[1].Name, ShouldEqual, "Amy")
			So(d.Rows[2].Name, ShouldEqual, "Bob")
			So(*d.Rows[2].Handicap, ShouldEqual, 12)
			So(d.Rows[2].Points, ShouldEqual, 400)
		})
	})
}

func TestEntrantsView(t *testing.T) {
	Convey("Given registered entrants, some without points", t, func() {
		reg := eligibility.New([]string{"Eve", "Zach", "Alice", "Carl"}, eligibility.WithEntryFee(decimal.NewFromInt(20)))
		v := standings.EntrantsView(reg, sampleBoard())

		Convey("Then every entrant is listed, zero scorers last", func() {
			So(v.Available, ShouldBeTrue)
			So(len(v.Entrants), ShouldEqual, 4)
			So(v.Entrants[0], ShouldResemble, types.EntrantRow{Name: "Alice", Points: 500, Rank: 1})
			So(v.Entrants[1], ShouldResemble, types.EntrantRow{Name: "Eve", Points: 100, Rank: 4})
			So(v.Entrants[2], ShouldResemble, types.EntrantRow{Name: "Carl"})
			So(v.Entrants[3], ShouldResemble, types.EntrantRow{Name: "Zach"})
		})

		Convey("And metrics come from the registry", func() {
			So(v.Metrics.EntryCount, ShouldEqual, 4)
			So(v.Metrics.PrizePool.String(), ShouldEqual, "80")
		})
	})
}
