package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/midex/tourboard/internal/adapters/loader"
	"github.com/midex/tourboard/internal/adapters/tabular"
	service "github.com/midex/tourboard/internal/app"
	"github.com/midex/tourboard/internal/config"
	"github.com/midex/tourboard/internal/domain/model"
	"github.com/midex/tourboard/internal/domain/types"
	"github.com/midex/tourboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2025, 6, 30, 18, 0, 0, 0, time.UTC)

func testTour(t *testing.T) *config.Tour {
	t.Helper()
	cfg := config.New(context.Background())
	cfg.Events = []config.EventConfig{
		{Name: "Spring Open", Tier: "standard", Date: "2025-04-06"},
		{Name: "May Medal", Tier: "elevated", Date: "2025-05-19"},
		{Name: "Club Champs", Tier: "major", Date: "2025-07-06"},
	}
	tour, err := cfg.BuildTour()
	if err != nil {
		t.Fatalf("tour: %v", err)
	}
	return tour
}

func newService(t *testing.T, tables map[string][][]string, opts ...service.Option) *service.Service {
	src := tabular.NewMemorySource(tables)
	opts = append([]service.Option{service.WithClock(func() time.Time { return fixedNow })}, opts...)
	return service.New(testTour(t), loader.New(src), opts...)
}

func TestCompute(t *testing.T) {
	Convey("Given a tour where one event sheet is missing", t, func() {
		svc := newService(t, map[string][][]string{
			"Spring Open": {{"Name", "Position"}, {"Alice", "1st"}, {"Bob", "2nd"}, {"Carol", "99th"}},
			"May Medal":   {{"Bob", "1"}, {"Alice", "3"}},
		})
		ctx := context.Background()

		Convey("When standings are computed", func() {
			snap, err := svc.Compute(ctx)

			Convey("Then the missing event degrades the board without failing it", func() {
				So(err, ShouldBeNil)
				So(snap.RunID, ShouldNotBeEmpty)
				So(snap.Unavailable(), ShouldResemble, []string{"Club Champs"})
				So(len(snap.Outcomes), ShouldEqual, 3)
				So(snap.Outcomes[2].Event.Name, ShouldEqual, "Club Champs")
			})

			Convey("And totals cover the events that loaded", func() {
				So(len(snap.Board), ShouldEqual, 2)
				So(snap.Board[0].Name, ShouldEqual, "Bob")
				So(snap.Board[0].TotalPoints, ShouldEqual, 180+550)
				So(snap.Board[1].Name, ShouldEqual, "Alice")
				So(snap.Board[1].TotalPoints, ShouldEqual, 300+209)
			})
		})

		Convey("When computed twice", func() {
			a, _ := svc.Compute(ctx)
			b, _ := svc.Compute(ctx)

			Convey("Then the boards are identical and run ids differ", func() {
				So(cmp.Diff(a.Board, b.Board), ShouldBeEmpty)
				So(a.RunID, ShouldNotEqual, b.RunID)
			})
		})

		Convey("When the leaderboard view is requested", func() {
			st, err := svc.Leaderboard(ctx, 0)

			Convey("Then entries carry medals and the advisory notice", func() {
				So(err, ShouldBeNil)
				So(st.GeneratedAt, ShouldEqual, fixedNow)
				So(st.UnavailableEvents, ShouldResemble, []string{"Club Champs"})
				So(st.Entries[0], ShouldResemble, types.Entry{Rank: 1, Name: "Bob", Points: 730, Medal: types.MedalGold})
			})

			Convey("And TopN trims to the limit", func() {
				top, err := svc.TopN(ctx, 1)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 1)
			})
		})

		Convey("When a player is looked up", func() {
			p, err := svc.Rank(ctx, "Alice")
			So(err, ShouldBeNil)
			So(p.Rank, ShouldEqual, 2)
			So(p.PerEventPoints, ShouldResemble, []model.EventPoints{
				{EventName: "Spring Open", Points: 300},
				{EventName: "May Medal", Points: 209},
			})

			_, err = svc.Rank(ctx, "Carol")
			So(errors.Is(err, service.ErrPlayerNotFound), ShouldBeTrue)
		})

		Convey("When stats are read after a run", func() {
			_, _ = svc.Compute(ctx)
			stats := svc.Stats()
			So(stats.Computed, ShouldBeTrue)
			So(stats.Players, ShouldEqual, 2)
			So(stats.UnavailableEvents, ShouldResemble, []string{"Club Champs"})
			So(stats.UnavailableCount, ShouldEqual, 1)
			So(stats.LastComputedAt, ShouldNotBeNil)
			So(stats.Cache, ShouldBeNil)
		})

		Convey("When stats are read before any run", func() {
			stats := svc.Stats()
			So(stats.Computed, ShouldBeFalse)
			So(stats.LastComputedAt, ShouldBeNil)
			So(stats.UnavailableCount, ShouldEqual, 0)
		})
	})
}

func TestEligibilityFiltering(t *testing.T) {
	Convey("Given an entrants table that omits a scorer", t, func() {
		svc := newService(t, map[string][][]string{
			"Spring Open": {{"Alice", "1"}, {"Bob", "2"}},
			"Entrants":    {{"Name"}, {"Bob"}, {"Dora"}},
		}, service.WithEntrantsTable("Entrants"))
		ctx := context.Background()

		Convey("Then only entrants are ranked", func() {
			snap, err := svc.Compute(ctx)
			So(err, ShouldBeNil)
			So(len(snap.Board), ShouldEqual, 1)
			So(snap.Board[0].Name, ShouldEqual, "Bob")
			So(snap.Board[0].Rank, ShouldEqual, 1)
		})

		Convey("Then the entrants view lists zero scorers and prize money", func() {
			v, err := svc.Entrants(ctx)
			So(err, ShouldBeNil)
			So(v.Available, ShouldBeTrue)
			So(v.Entrants, ShouldResemble, []types.EntrantRow{
				{Name: "Bob", Points: 180, Rank: 1},
				{Name: "Dora"},
			})
			So(v.Metrics.PrizePool.String(), ShouldEqual, "40")
			So(v.Metrics.Payouts[0].Amount.String(), ShouldEqual, "20")
		})
	})

	Convey("Given an entrants table that cannot be read", t, func() {
		svc := newService(t, map[string][][]string{
			"Spring Open": {{"Alice", "1"}, {"Bob", "2"}},
		}, service.WithEntrantsTable("Entrants"))
		ctx := context.Background()

		Convey("Then standings are computed unfiltered", func() {
			snap, err := svc.Compute(ctx)
			So(err, ShouldBeNil)
			So(snap.RegistryErr, ShouldNotBeNil)
			So(len(snap.Board), ShouldEqual, 2)
		})

		Convey("Then the entrants view reports itself unavailable", func() {
			v, err := svc.Entrants(ctx)
			So(err, ShouldBeNil)
			So(v.Available, ShouldBeFalse)
			So(v.Entrants, ShouldBeEmpty)
		})
	})
}

func TestReadViews(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := newService(t, map[string][][]string{
			"May Medal": {{"Bob(12)", "2", "71"}, {"Amy(4)", "1", "66"}},
		})
		ctx := context.Background()

		Convey("Then the calendar lists every event with its tier label", func() {
			cal := svc.Events()
			So(len(cal), ShouldEqual, 3)
			So(cal[1], ShouldResemble, types.EventInfo{Date: "2025-05-19", Name: "May Medal", Tier: "Elevated Event"})
		})

		Convey("Then event results are sorted with points", func() {
			v, err := svc.EventResults(ctx, "May Medal")
			So(err, ShouldBeNil)
			So(v.Unavailable, ShouldBeFalse)
			So(v.Rows[0].Name, ShouldEqual, "Amy")
			So(v.Rows[0].Points, ShouldEqual, 550)
			So(*v.Rows[1].Handicap, ShouldEqual, 12)
		})

		Convey("Then an unloadable event is flagged with a warning", func() {
			v, err := svc.EventResults(ctx, "Club Champs")
			So(err, ShouldBeNil)
			So(v.Unavailable, ShouldBeTrue)
			So(v.Warning, ShouldContainSubstring, "Club Champs")
			So(v.Rows, ShouldBeEmpty)
		})

		Convey("Then an unknown event is not found", func() {
			_, err := svc.EventResults(ctx, "Nope")
			So(errors.Is(err, service.ErrEventNotFound), ShouldBeTrue)
		})

		Convey("Then the points table is padded across tiers", func() {
			pt := svc.PointsTable()
			So(pt.Tiers, ShouldResemble, []string{"Standard Event", "Elevated Event", "Major", "Playoff Event"})
			So(len(pt.Rows), ShouldEqual, 16)
			So(pt.Rows[0].Points, ShouldResemble, []int{300, 550, 750, 1200})
		})
	})
}

func TestFromConfig(t *testing.T) {
	Convey("Given a memory-backed config", t, func() {
		cfg := config.New(context.Background())
		cfg.Source.Kind = "memory"

		Convey("Then the service is wired and computes an empty board", func() {
			svc, err := service.FromConfig(context.Background(), cfg, logger.Nop())
			So(err, ShouldBeNil)
			snap, err := svc.Compute(context.Background())
			So(err, ShouldBeNil)
			So(snap.Board, ShouldBeEmpty)
			So(len(snap.Unavailable()), ShouldEqual, 12)
		})

		Convey("Then stats report the table cache", func() {
			svc, err := service.FromConfig(context.Background(), cfg, logger.Nop())
			So(err, ShouldBeNil)
			_, _ = svc.Compute(context.Background())
			stats := svc.Stats()
			So(stats.Cache, ShouldNotBeNil)
			So(stats.Cache.Misses, ShouldEqual, 13)
			So(stats.Cache.Entries, ShouldEqual, 0)
		})

		Convey("Then a zero cache ttl leaves cache stats out", func() {
			cfg.Source.CacheTTLSeconds = 0
			svc, err := service.FromConfig(context.Background(), cfg, logger.Nop())
			So(err, ShouldBeNil)
			So(svc.Stats().Cache, ShouldBeNil)
		})
	})

	Convey("Given a config with no events", t, func() {
		cfg := config.New(context.Background())
		cfg.Events = nil

		_, err := service.FromConfig(context.Background(), cfg, logger.Nop())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given an unknown source kind", t, func() {
		_, err := service.NewSource(context.Background(), config.SourceConfig{Kind: "ftp"})
		So(err, ShouldNotBeNil)
	})
}
