package recommend

import (
	"fmt"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSelectDiversePair(t *testing.T) {
	Convey("Given an empty pool", t, func() {
		sel := selectDiversePair(nil, rand.New(rand.NewSource(1)))
		So(sel.Pair, ShouldBeEmpty)
		So(sel.Alternates, ShouldBeEmpty)
	})

	Convey("Given a single candidate", t, func() {
		scored := []ScoredCandidate{
			{Event: tev("solo", "Tek Konser", "3970", "Konser", "Arena", "", "2025-05-21T20:00:00"), Score: 80},
		}
		sel := selectDiversePair(scored, rand.New(rand.NewSource(1)))

		So(sel.Pair, ShouldHaveLength, 1)
		So(sel.MMRScore, ShouldEqual, 0.0)
	})

	Convey("Given two candidates both always end up in the pair", t, func() {
		scored := []ScoredCandidate{
			{Event: tev("a", "Konser", "3970", "Konser", "Arena", "", "2025-05-21T20:00:00"), Score: 80},
			{Event: tev("b", "Sergi", "3972", "Sanat", "Galeri", "", "2025-05-22T11:00:00"), Score: 60},
		}

		for seed := int64(0); seed < 10; seed++ {
			sel := selectDiversePair(scored, rand.New(rand.NewSource(seed)))
			ids := map[string]bool{sel.Pair[0].ID: true, sel.Pair[1].ID: true}
			So(ids["a"], ShouldBeTrue)
			So(ids["b"], ShouldBeTrue)
			So(sel.Alternates, ShouldBeEmpty)
		}
	})

	Convey("Given equally relevant candidates, diversity decides the second pick", t, func() {
		// Two clones and one genuinely different event, all with the
		// same relevance. Whichever clone starts the pair, the
		// distinct event must complete it; and when the distinct
		// event starts, ties between the clones go to the earlier
		// one.
		clone1 := ScoredCandidate{Event: tev("clone1", "Konser A", "3970", "Konser", "Arena", "Kadıköy", "2025-05-21T20:00:00"), Score: 90}
		clone2 := ScoredCandidate{Event: tev("clone2", "Konser A", "3970", "Konser", "Arena", "Kadıköy", "2025-05-21T20:00:00"), Score: 90}
		distinct := ScoredCandidate{Event: tev("distinct", "Sergi", "3972", "Sanat", "Galeri", "Beşiktaş", "2025-06-05T11:00:00"), Score: 90}
		scored := []ScoredCandidate{clone1, clone2, distinct}

		for seed := int64(0); seed < 25; seed++ {
			sel := selectDiversePair(scored, rand.New(rand.NewSource(seed)))
			So(sel.Pair, ShouldHaveLength, 2)

			ids := map[string]bool{sel.Pair[0].ID: true, sel.Pair[1].ID: true}
			if ids["clone1"] && ids["clone2"] {
				t.Fatalf("seed %d paired the two clones together", seed)
			}
			So(ids["distinct"] || (ids["clone1"] && !ids["clone2"]), ShouldBeTrue)
		}
	})

	Convey("Given a large pool", t, func() {
		var scored []ScoredCandidate
		for i := 0; i < 150; i++ {
			scored = append(scored, ScoredCandidate{
				Event: tev(fmt.Sprintf("e%d", i), fmt.Sprintf("Etkinlik %d", i), "3970", "Konser", "Arena", "", "2025-05-21T20:00:00"),
				Score: float64(150 - i),
			})
		}

		sel := selectDiversePair(scored, rand.New(rand.NewSource(42)))

		Convey("Then the pair and alternates never overlap", func() {
			So(sel.Pair, ShouldHaveLength, 2)
			chosen := map[string]bool{sel.Pair[0].ID: true, sel.Pair[1].ID: true}
			for _, alt := range sel.Alternates {
				So(chosen[alt.ID], ShouldBeFalse)
			}
		})

		Convey("And the alternates are capped", func() {
			So(len(sel.Alternates), ShouldBeLessThanOrEqualTo, maxAlternates)
			So(sel.Alternates, ShouldHaveLength, maxAlternates)
		})

		Convey("And the first pick comes from the head of the ranking", func() {
			// The pool is trimmed to 100 and the first pick sampled
			// from the top 7; both picks must come from the trimmed
			// pool.
			for _, e := range sel.Pair {
				var idx int
				fmt.Sscanf(e.ID, "e%d", &idx)
				So(idx, ShouldBeLessThan, mmrPoolSize)
			}
		})
	})

	Convey("Given candidates with negative relevance the MMR stays sane", t, func() {
		scored := []ScoredCandidate{
			{Event: tev("a", "Konser", "3970", "Konser", "Arena", "", "2025-05-21T20:00:00"), Score: -10},
			{Event: tev("b", "Sergi", "3972", "Sanat", "Galeri", "", "2025-06-05T11:00:00"), Score: -20},
		}

		sel := selectDiversePair(scored, rand.New(rand.NewSource(1)))
		So(sel.Pair, ShouldHaveLength, 2)
		So(sel.MMRScore, ShouldBeGreaterThanOrEqualTo, 0.0)
	})
}

func TestMatchScore(t *testing.T) {
	Convey("The display score is clamped to 0-99", t, func() {
		So(matchScore(0.8), ShouldEqual, 80)
		So(matchScore(1.5), ShouldEqual, 99)
		So(matchScore(0.995), ShouldEqual, 99)
		So(matchScore(0), ShouldEqual, 0)
		So(matchScore(-0.5), ShouldEqual, 0)
	})
}
