package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	app "github.com/midex/tourboard/internal/app"
	"github.com/midex/tourboard/internal/cli"
	"github.com/midex/tourboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

const tourYAML = `log_level: warn
source:
  kind: csv
  path: %DIR%
  cache_ttl_seconds: 0
events:
  - {name: May Stableford, tier: standard, date: "2025-05-05"}
  - {name: May Medal, tier: elevated, date: "2025-05-19"}
  - {name: Rover Medal, tier: major, date: "2025-06-08"}
`

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"May Stableford.csv": "Name,Position\nAlice,1st\nBob,2nd\n",
		"May Medal.csv":      "Bob(12),1,68\nAlice(8),2,70.5\n",
		"Entrants.csv":       "Name\nAlice\nBob\nCarol\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "tour.yaml")
	if err := os.WriteFile(path, []byte(strings.ReplaceAll(tourYAML, "%DIR%", dir)), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLeaderboardCommand(t *testing.T) {
	Convey("Given a tour config over a CSV directory", t, func() {
		cfg := fixture(t)

		Convey("When the leaderboard is printed as text", func() {
			out, err := execute("--config", cfg)

			Convey("Then players are ranked and the missing event is reported", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				So(lines[0], ShouldStartWith, "RANK")
				So(strings.Fields(lines[1]), ShouldResemble, []string{"1", "Bob", "730"})
				So(strings.Fields(lines[2]), ShouldResemble, []string{"2", "Alice", "630"})
				So(out, ShouldContainSubstring, "Results unavailable for: Rover Medal")
			})
		})

		Convey("When the leaderboard is printed as JSON with a limit", func() {
			out, err := execute("--config", cfg, "--format", "json", "--limit", "1")

			Convey("Then only the leader is returned", func() {
				So(err, ShouldBeNil)
				var st types.Standings
				So(json.Unmarshal([]byte(out), &st), ShouldBeNil)
				So(len(st.Entries), ShouldEqual, 1)
				So(st.Entries[0].Name, ShouldEqual, "Bob")
				So(st.Entries[0].Medal, ShouldEqual, types.MedalGold)
				So(st.UnavailableEvents, ShouldResemble, []string{"Rover Medal"})
			})
		})

		Convey("When the leaderboard is printed as YAML", func() {
			out, err := execute("--config", cfg, "--format", "yaml")

			Convey("Then the document lists every scorer", func() {
				So(err, ShouldBeNil)
				var doc struct {
					Entries []struct {
						Name   string `yaml:"name"`
						Points int    `yaml:"points"`
					} `yaml:"entries"`
				}
				So(yaml.Unmarshal([]byte(out), &doc), ShouldBeNil)
				So(len(doc.Entries), ShouldEqual, 2)
				So(doc.Entries[1].Points, ShouldEqual, 630)
			})
		})
	})
}

func TestSubcommands(t *testing.T) {
	Convey("Given a tour config over a CSV directory", t, func() {
		cfg := fixture(t)

		Convey("When an event is shown", func() {
			out, err := execute("event", "--config", cfg, "--name", "May Medal")

			Convey("Then rows carry handicap, score and points", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "May Medal (Elevated Event, 2025-05-19)")
				So(out, ShouldContainSubstring, "70.5")
				So(strings.Fields(strings.Split(out, "\n")[2]), ShouldResemble, []string{"1", "Bob", "12", "68", "550"})
			})
		})

		Convey("When an unplayed event is shown", func() {
			out, err := execute("event", "--config", cfg, "--name", "Rover Medal")

			Convey("Then the warning is printed instead of rows", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Results unavailable:")
			})
		})

		Convey("When an unknown event is requested", func() {
			_, err := execute("event", "--config", cfg, "--name", "Winter Cup")

			Convey("Then the lookup fails", func() {
				So(errors.Is(err, app.ErrEventNotFound), ShouldBeTrue)
				So(cli.ExitCode(err), ShouldEqual, cli.ExitError)
			})
		})

		Convey("When a player's rank is shown", func() {
			out, err := execute("rank", "--config", cfg, "--player", "Alice")

			Convey("Then the breakdown follows the calendar", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "2. Alice")
				So(out, ShouldContainSubstring, "630 pts")
				So(out, ShouldContainSubstring, "May Stableford")
			})
		})

		Convey("When the entrants are listed", func() {
			out, err := execute("entrants", "--config", cfg)

			Convey("Then prize money and zero scorers are shown", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "60.00")
				So(out, ShouldContainSubstring, "30.00")
				So(out, ShouldContainSubstring, "Carol")
			})
		})

		Convey("When the calendar and points are listed", func() {
			events, err1 := execute("events", "--config", cfg)
			points, err2 := execute("points", "--config", cfg, "--format", "json")

			Convey("Then both render", func() {
				So(err1, ShouldBeNil)
				So(events, ShouldContainSubstring, "2025-06-08")
				So(err2, ShouldBeNil)
				var pt types.PointsTable
				So(json.Unmarshal([]byte(points), &pt), ShouldBeNil)
				So(pt.Rows[0].Place, ShouldEqual, 1)
			})
		})
	})
}

func TestExitCodes(t *testing.T) {
	Convey("Given broken invocations", t, func() {
		Convey("When the config file is missing", func() {
			_, err := execute("--config", filepath.Join(t.TempDir(), "missing.yaml"))

			Convey("Then the config exit code is used", func() {
				So(err, ShouldNotBeNil)
				So(cli.ExitCode(err), ShouldEqual, cli.ExitConfig)
			})
		})

		Convey("When the format is unknown", func() {
			_, err := execute("--config", fixture(t), "--format", "xml")

			Convey("Then it fails as a usage error", func() {
				So(err, ShouldNotBeNil)
				So(cli.ExitCode(err), ShouldEqual, cli.ExitError)
			})
		})

		Convey("When nothing failed", func() {
			So(cli.ExitCode(nil), ShouldEqual, cli.ExitSuccess)
		})
	})
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		f, err := cli.ParseFormat(" YML ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, cli.FormatYAML)
		_, err = cli.ParseFormat("csv")
		So(err, ShouldNotBeNil)
	})
}
