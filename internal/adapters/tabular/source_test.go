package tabular_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/midex/tourboard/internal/adapters/tabular"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

func TestMemorySource(t *testing.T) {
	Convey("Given a memory source with one table", t, func() {
		src := tabular.NewMemorySource(map[string][][]string{
			"Spring Open": {{"Alice", "1st"}, {"Bob", "2nd"}},
		})
		ctx := context.Background()

		Convey("When the table is read", func() {
			rows, err := src.Table(ctx, "Spring Open")

			Convey("Then the rows come back as a copy", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldResemble, [][]string{{"Alice", "1st"}, {"Bob", "2nd"}})
				rows[0][0] = "Mallory"
				again, _ := src.Table(ctx, "Spring Open")
				So(again[0][0], ShouldEqual, "Alice")
			})
		})

		Convey("When a missing table is read", func() {
			_, err := src.Table(ctx, "Nope")
			So(errors.Is(err, tabular.ErrTableNotFound), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := src.Table(cctx, "Spring Open")
			So(errors.Is(err, tabular.ErrSourceUnavailable), ShouldBeTrue)
		})

		Convey("When a table is replaced", func() {
			src.Set("Spring Open", [][]string{{"Carol", "1"}})
			rows, err := src.Table(ctx, "Spring Open")
			So(err, ShouldBeNil)
			So(rows, ShouldResemble, [][]string{{"Carol", "1"}})
		})
	})
}

func TestDirSource(t *testing.T) {
	Convey("Given a directory of CSV files", t, func() {
		dir := t.TempDir()
		content := "Name,Position\nAlice,1st\n\"Smith, Bob\",2nd,extra\n"
		So(os.WriteFile(filepath.Join(dir, "April Medal.csv"), []byte(content), 0o600), ShouldBeNil)
		src := tabular.NewDirSource(dir)
		ctx := context.Background()

		Convey("Then ragged and quoted rows are read", func() {
			rows, err := src.Table(ctx, "April Medal")
			So(err, ShouldBeNil)
			So(rows, ShouldResemble, [][]string{
				{"Name", "Position"},
				{"Alice", "1st"},
				{"Smith, Bob", "2nd", "extra"},
			})
		})

		Convey("Then a missing file is not found", func() {
			_, err := src.Table(ctx, "May Medal")
			So(errors.Is(err, tabular.ErrTableNotFound), ShouldBeTrue)
		})

		Convey("Then path-like names are rejected", func() {
			_, err := src.Table(ctx, "../April Medal")
			So(errors.Is(err, tabular.ErrTableNotFound), ShouldBeTrue)
		})
	})
}

func TestWorkbookSource(t *testing.T) {
	Convey("Given a workbook with a tab per event", t, func() {
		path := filepath.Join(t.TempDir(), "results.xlsx")
		f := excelize.NewFile()
		So(f.SetSheetName("Sheet1", "Spring Open"), ShouldBeNil)
		So(f.SetSheetRow("Spring Open", "A1", &[]any{"Name", "Position", "Handicap", "Score"}), ShouldBeNil)
		So(f.SetSheetRow("Spring Open", "A2", &[]any{"Alice", "1st", 8, 40}), ShouldBeNil)
		_, err := f.NewSheet("Entrants")
		So(err, ShouldBeNil)
		So(f.SetSheetRow("Entrants", "A1", &[]any{"Alice"}), ShouldBeNil)
		So(f.SaveAs(path), ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		src := tabular.NewWorkbookSource(path)
		ctx := context.Background()

		Convey("Then a tab reads as a table", func() {
			rows, err := src.Table(ctx, "Spring Open")
			So(err, ShouldBeNil)
			So(rows, ShouldResemble, [][]string{
				{"Name", "Position", "Handicap", "Score"},
				{"Alice", "1st", "8", "40"},
			})
		})

		Convey("Then an absent tab is not found", func() {
			_, err := src.Table(ctx, "Club Champs")
			So(errors.Is(err, tabular.ErrTableNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a workbook path that does not exist", t, func() {
		src := tabular.NewWorkbookSource(filepath.Join(t.TempDir(), "missing.xlsx"))
		_, err := src.Table(context.Background(), "Spring Open")
		So(errors.Is(err, tabular.ErrSourceUnavailable), ShouldBeTrue)
	})
}
