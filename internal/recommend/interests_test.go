package recommend

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInterestResolver(t *testing.T) {
	Convey("Given a resolver with no dynamic categories", t, func() {
		r := NewInterestResolver(nil)

		Convey("Well-known slugs resolve through the fallback table", func() {
			id, ok := r.CategoryID("konser")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "3970")

			id, ok = r.CategoryID("tiyatro")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "3968")

			id, ok = r.CategoryID("sinema")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "3796")
		})

		Convey("Lookup is case-insensitive", func() {
			id, ok := r.CategoryID("Konser")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "3970")
		})

		Convey("Unknown slugs simply miss", func() {
			_, ok := r.CategoryID("origami")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a dynamic category map", t, func() {
		r := NewInterestResolver(map[string]string{
			"konser":       "9001",
			"stand-up":     "9002",
			"cocuk-oyunu":  "9003",
			"":             "9004",
			"bos-kategori": "",
		})

		Convey("Dynamic entries overlay the fallback table", func() {
			id, ok := r.CategoryID("konser")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "9001")
		})

		Convey("Fallback entries survive where not overridden", func() {
			id, ok := r.CategoryID("tiyatro")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "3968")
		})

		Convey("Empty slugs and identifiers are ignored", func() {
			_, ok := r.CategoryID("")
			So(ok, ShouldBeFalse)
			_, ok = r.CategoryID("bos-kategori")
			So(ok, ShouldBeFalse)
		})

		Convey("New dynamic slugs resolve too", func() {
			id, ok := r.CategoryID("stand-up")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "9002")
		})
	})
}

func TestCategoryIDs(t *testing.T) {
	Convey("Given a resolver over the fallback table", t, func() {
		r := NewInterestResolver(nil)

		Convey("Exact interests resolve directly", func() {
			So(r.CategoryIDs([]string{"konser"}), ShouldResemble, []string{"3970"})
		})

		Convey("Multiple interests union and sort their identifiers", func() {
			ids := r.CategoryIDs([]string{"konser", "tiyatro", "sinema"})
			So(ids, ShouldResemble, []string{"3796", "3968", "3970"})
		})

		Convey("Whitespace and casing are tolerated", func() {
			So(r.CategoryIDs([]string{"  Konser  "}), ShouldResemble, []string{"3970"})
		})

		Convey("Duplicates collapse", func() {
			So(r.CategoryIDs([]string{"konser", "konser"}), ShouldResemble, []string{"3970"})
		})

		Convey("Unresolvable interests contribute nothing", func() {
			So(r.CategoryIDs([]string{"origami"}), ShouldBeEmpty)
			So(r.CategoryIDs([]string{"", "   "}), ShouldBeEmpty)
		})
	})

	Convey("Given partial dynamic slugs a substring match kicks in", t, func() {
		r := NewInterestResolver(map[string]string{
			"cocuk-tiyatrosu":      "9100",
			"acik-hava-konserleri": "9200",
		})

		Convey("The raw interest matches as a slug substring", func() {
			ids := r.CategoryIDs([]string{"hava"})
			So(ids, ShouldResemble, []string{"9200"})
		})

		Convey("Exact matches still win before substrings", func() {
			ids := r.CategoryIDs([]string{"konser"})
			So(ids, ShouldResemble, []string{"3970"})
		})
	})
}

func TestSynonymsFor(t *testing.T) {
	Convey("Synonym lookup is case-insensitive and misses quietly", t, func() {
		So(synonymsFor("Konser"), ShouldContain, "rock")
		So(synonymsFor("spor"), ShouldContain, "futbol")
		So(synonymsFor("bilinmeyen"), ShouldBeEmpty)
	})
}
