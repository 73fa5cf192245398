package eligibility_test

import (
	"testing"

	"github.com/midex/tourboard/internal/domain/eligibility"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

var fee = decimal.NewFromInt(20)

func TestRegistryFromNames(t *testing.T) {
	Convey("Given an entrants list with padding, blanks and duplicates", t, func() {
		r := eligibility.New([]string{" Alice ", "Bob", "", "Alice", "bob"}, eligibility.WithEntryFee(fee))

		Convey("Then names are distinct after trimming and matched exactly", func() {
			So(r.Names(), ShouldResemble, []string{"Alice", "Bob", "bob"})
			So(r.Contains("Alice"), ShouldBeTrue)
			So(r.Contains("  Bob"), ShouldBeTrue)
			So(r.Contains("ALICE"), ShouldBeFalse)
			So(r.Contains("Carol"), ShouldBeFalse)
		})

		Convey("And entry figures derive from the distinct count", func() {
			So(r.EntryCount(), ShouldEqual, 3)
			So(r.PrizePool().Equal(decimal.NewFromInt(60)), ShouldBeTrue)
		})

		Convey("And payouts split 50/35/15 to the penny", func() {
			p := r.Payouts()
			So(len(p), ShouldEqual, 3)
			So(p[0].Amount.String(), ShouldEqual, "30")
			So(p[1].Amount.String(), ShouldEqual, "21")
			So(p[2].Amount.String(), ShouldEqual, "9")
		})
	})

	Convey("Given a nil registry", t, func() {
		var r *eligibility.Registry
		So(r.Contains("Alice"), ShouldBeFalse)
	})
}

func TestRegistryFromRows(t *testing.T) {
	Convey("Given a headed listing with pre-aggregated totals", t, func() {
		rows := [][]string{
			{"Paid?", "Name", "Total Entries", "Total Paid"},
			{"Y", "Alice", "14", "£280"},
			{"Y", "Bob"},
			{"N", "  "},
		}
		r := eligibility.FromRows(rows, eligibility.WithEntryFee(fee))

		Convey("Then names come from the Name column", func() {
			So(r.Names(), ShouldResemble, []string{"Alice", "Bob"})
		})

		Convey("And the listing's totals override derived figures", func() {
			So(r.EntryCount(), ShouldEqual, 14)
			So(r.PrizePool().String(), ShouldEqual, "280")
			m := r.Metrics()
			So(m.EntryCount, ShouldEqual, 14)
			So(m.Payouts[0].Amount.String(), ShouldEqual, "140")
		})
	})

	Convey("Given a bare single-column listing", t, func() {
		r := eligibility.FromRows([][]string{{"Alice"}, {"Bob"}, {}}, eligibility.WithEntryFee(fee))

		Convey("Then the first row is an entrant, not a header", func() {
			So(r.Names(), ShouldResemble, []string{"Alice", "Bob"})
			So(r.EntryCount(), ShouldEqual, 2)
			So(r.PrizePool().String(), ShouldEqual, "40")
		})
	})

	Convey("Given custom payout shares", t, func() {
		r := eligibility.New([]string{"A", "B", "C"},
			eligibility.WithEntryFee(decimal.RequireFromString("10.50")),
			eligibility.WithPayoutShares([]decimal.Decimal{decimal.RequireFromString("0.6"), decimal.RequireFromString("0.4")}),
		)

		So(r.PrizePool().String(), ShouldEqual, "31.5")
		p := r.Payouts()
		So(len(p), ShouldEqual, 2)
		So(p[0].Amount.String(), ShouldEqual, "18.9")
		So(p[1].Amount.String(), ShouldEqual, "12.6")
	})

	Convey("Given an empty listing", t, func() {
		r := eligibility.FromRows(nil)
		So(r.EntryCount(), ShouldEqual, 0)
		So(r.PrizePool().IsZero(), ShouldBeTrue)
	})
}
