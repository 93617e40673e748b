package recommend

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculateSynergy(t *testing.T) {
	Convey("Identical categories short-circuit to the couple theme", t, func() {
		e1 := tev("a", "Rock Gecesi", "3970", "Konser", "Arena", "", "2025-05-21T20:00:00")
		e2 := tev("b", "Caz Gecesi", "3970", "Konser", "Salon X", "", "2025-06-10T21:00:00")

		score, theme := calculateSynergy(e1, e2)

		So(score, ShouldEqual, 20)
		So(theme, ShouldEqual, "Çift Konser")
	})

	Convey("Category casing does not break the couple detection", t, func() {
		e1 := tev("a", "Oyun", "3968", "TİYATRO", "Sahne A", "", "2025-05-21T19:00:00")
		e2 := tev("b", "Oyun 2", "3968", "tiyatro", "Sahne B", "", "2025-06-10T19:00:00")

		score, theme := calculateSynergy(e1, e2)

		So(score, ShouldEqual, 20)
		So(theme, ShouldStartWith, "Çift ")
	})

	Convey("Known cross-domain combinations hit their rule", t, func() {
		cases := []struct {
			cat1, cat2 string
			score      int
			theme      string
		}{
			{"Sinema", "Konser", 95, "🎬 Film & Müzik Keyfi"},
			{"Sinema", "Tiyatro", 92, "🎭 Beyaz Perde & Sahne"},
			{"Sinema", "Sanat Sergisi", 88, "🎨 Görsel Sanatlar Günü"},
			{"Sergi", "Konser", 90, "🎵 Sanat ve Ritim"},
			{"Tiyatro", "Konser", 85, "✨ Sahne Işıkları"},
			{"Atölye", "Sergi", 80, "🧠 Keşif Rotası"},
			{"Spor", "Konser", 82, "⚡ Enerji Dolu Gün"},
			{"Workshop", "Müzik", 78, "🎓 Öğren ve Eğlen"},
			{"Maç", "Müze Turu", 75, "💪 Aktif & Sakin Denge"},
		}

		for _, tc := range cases {
			// Dates far apart so no proximity bonus blurs the rule
			// score.
			e1 := tev("a", "Birinci", "1", tc.cat1, "Mekan 1", "", "2025-05-21T20:00:00")
			e2 := tev("b", "İkinci", "2", tc.cat2, "Mekan 2", "", "2025-06-21T20:00:00")

			score, theme := calculateSynergy(e1, e2)
			So(score, ShouldEqual, tc.score)
			So(theme, ShouldEqual, tc.theme)

			// Order must not matter.
			revScore, revTheme := calculateSynergy(e2, e1)
			So(revScore, ShouldEqual, tc.score)
			So(revTheme, ShouldEqual, tc.theme)
		}
	})

	Convey("Unknown combinations fall back to the default", t, func() {
		e1 := tev("a", "Yoga", "1", "Wellness", "Stüdyo", "", "2025-05-21T10:00:00")
		e2 := tev("b", "Satranç Turnuvası", "2", "Oyunlar", "Kulüp", "", "2025-06-21T14:00:00")

		score, theme := calculateSynergy(e1, e2)

		So(score, ShouldEqual, 70)
		So(theme, ShouldEqual, "🌈 Farklı Tatlar")
	})

	Convey("Date proximity adds a bonus", t, func() {
		Convey("Same day adds ten and tags the theme", func() {
			e1 := tev("a", "Film", "1", "Sinema", "Sinema 1", "", "2025-05-21T18:00:00")
			e2 := tev("b", "Konser", "2", "Konser", "Arena", "", "2025-05-21T21:00:00")

			score, theme := calculateSynergy(e1, e2)

			So(score, ShouldEqual, 105)
			So(theme, ShouldEqual, "🎬 Film & Müzik Keyfi (Aynı Gün)")
		})

		Convey("Within two days adds five without the tag", func() {
			e1 := tev("a", "Film", "1", "Sinema", "Sinema 1", "", "2025-05-21T18:00:00")
			e2 := tev("b", "Konser", "2", "Konser", "Arena", "", "2025-05-23T21:00:00")

			score, theme := calculateSynergy(e1, e2)

			So(score, ShouldEqual, 100)
			So(theme, ShouldEqual, "🎬 Film & Müzik Keyfi")
		})

		Convey("Unparsable dates skip the bonus entirely", func() {
			e1 := tev("a", "Film", "1", "Sinema", "Sinema 1", "", "")
			e2 := tev("b", "Konser", "2", "Konser", "Arena", "", "2025-05-21T21:00:00")

			score, _ := calculateSynergy(e1, e2)

			So(score, ShouldEqual, 95)
		})
	})
}

func TestCapitalizeFirst(t *testing.T) {
	Convey("Capitalization handles Unicode and empty input", t, func() {
		So(capitalizeFirst("konser"), ShouldEqual, "Konser")
		So(capitalizeFirst("şenlik"), ShouldEqual, "Şenlik")
		So(capitalizeFirst(""), ShouldEqual, "")
	})
}
