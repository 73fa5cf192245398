package tabular_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/midex/tourboard/internal/adapters/tabular"
	. "github.com/smartystreets/goconvey/convey"
)

const gvizPage = `<html><body>
<table border="1">
<tr><td>Name</td><td>Position</td></tr>
<tr><td> Alice&nbsp;</td><td>1st</td></tr>
<tr><td>Bob(12)</td><td>2nd</td><td>44</td></tr>
</table>
<table><tr><td>ignored</td></tr></table>
</body></html>`

func TestHTMLSource(t *testing.T) {
	Convey("Given a published sheet export", t, func() {
		var gotQuery, gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("sheet") + "|" + r.URL.Query().Get("tqx")
			gotUA = r.Header.Get("User-Agent")
			switch r.URL.Query().Get("sheet") {
			case "Spring Open":
				fmt.Fprint(w, gvizPage)
			case "Empty":
				fmt.Fprint(w, "<html><body>no data</body></html>")
			case "Broken":
				w.WriteHeader(http.StatusInternalServerError)
			default:
				w.WriteHeader(http.StatusBadRequest)
			}
		}))
		defer srv.Close()

		src := tabular.NewHTMLSource(srv.URL+"/gviz/tq", tabular.WithHTTPClient(srv.Client()))
		ctx := context.Background()

		Convey("Then the first table is read with cells trimmed", func() {
			rows, err := src.Table(ctx, "Spring Open")
			So(err, ShouldBeNil)
			So(gotQuery, ShouldEqual, "Spring Open|out:html")
			So(gotUA, ShouldEqual, tabular.UserAgent)
			So(rows, ShouldResemble, [][]string{
				{"Name", "Position"},
				{"Alice", "1st"},
				{"Bob(12)", "2nd", "44"},
			})
		})

		Convey("Then a page without a table is not found", func() {
			_, err := src.Table(ctx, "Empty")
			So(errors.Is(err, tabular.ErrTableNotFound), ShouldBeTrue)
		})

		Convey("Then a rejected sheet name is not found", func() {
			_, err := src.Table(ctx, "Nope")
			So(errors.Is(err, tabular.ErrTableNotFound), ShouldBeTrue)
		})

		Convey("Then a server error makes the source unavailable", func() {
			_, err := src.Table(ctx, "Broken")
			So(errors.Is(err, tabular.ErrSourceUnavailable), ShouldBeTrue)
		})
	})
}

func TestSheetsSource(t *testing.T) {
	Convey("Given a Sheets API values endpoint", t, func() {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			switch r.URL.Path {
			case "/v4/spreadsheets/sheet-123/values/Spring Open":
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"range":"'Spring Open'!A1:D3","majorDimension":"ROWS",
					"values":[["Name","Pos"],["Alice","1st",8,40.5],["Bob",null]]}`)
			case "/v4/spreadsheets/sheet-123/values/Garbled":
				fmt.Fprint(w, `{"values": [[`)
			default:
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":{"code":400,"message":"Unable to parse range"}}`)
			}
		}))
		defer srv.Close()

		src := tabular.NewSheetsSource("sheet-123",
			tabular.WithSheetsEndpoint(srv.URL+"/v4/spreadsheets"),
			tabular.WithSheetsClient(srv.Client()),
		)
		ctx := context.Background()

		Convey("Then values are read as strings", func() {
			rows, err := src.Table(ctx, "Spring Open")
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/v4/spreadsheets/sheet-123/values/Spring Open")
			So(rows, ShouldResemble, [][]string{
				{"Name", "Pos"},
				{"Alice", "1st", "8", "40.5"},
				{"Bob", ""},
			})
		})

		Convey("Then an unknown tab is not found", func() {
			_, err := src.Table(ctx, "Club Champs")
			So(errors.Is(err, tabular.ErrTableNotFound), ShouldBeTrue)
		})

		Convey("Then a malformed body makes the source unavailable", func() {
			_, err := src.Table(ctx, "Garbled")
			So(errors.Is(err, tabular.ErrSourceUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a missing credentials file", t, func() {
		_, err := tabular.ServiceAccountClient(context.Background(), "/nonexistent/key.json")
		So(err, ShouldNotBeNil)
	})
}
