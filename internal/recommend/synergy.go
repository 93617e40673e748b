// internal/recommend/synergy.go
// Labels a selected pair with a theme and a compatibility score based
// on the category combination and how close the dates fall.

package recommend

import (
	"strings"
	"unicode"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

type domain int

const (
	domainOther domain = iota
	domainMusic
	domainStage
	domainArt
	domainEducation
	domainMovie
	domainSport
)

var domainKeywords = map[domain][]string{
	domainMusic:     {"müzik", "konser", "music"},
	domainStage:     {"tiyatro", "sahne", "gösteri", "theatre"},
	domainArt:       {"sergi", "müze", "sanat", "art", "gallery"},
	domainEducation: {"atölye", "eğitim", "workshop"},
	domainMovie:     {"sinema", "film", "cinema"},
	domainSport:     {"spor", "sport", "maç"},
}

func categoryDomains(categoryName string) map[domain]bool {
	name := strings.ToLower(categoryName)
	out := make(map[domain]bool)
	for d, keywords := range domainKeywords {
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				out[d] = true
				break
			}
		}
	}
	return out
}

// synergyRules in precedence order; the first matching combination
// wins. Combinations are unordered.
var synergyRules = []struct {
	a, b  domain
	score int
	theme string
}{
	{domainMovie, domainMusic, 95, "🎬 Film & Müzik Keyfi"},
	{domainMovie, domainStage, 92, "🎭 Beyaz Perde & Sahne"},
	{domainMovie, domainArt, 88, "🎨 Görsel Sanatlar Günü"},
	{domainArt, domainMusic, 90, "🎵 Sanat ve Ritim"},
	{domainStage, domainMusic, 85, "✨ Sahne Işıkları"},
	{domainEducation, domainArt, 80, "🧠 Keşif Rotası"},
	{domainSport, domainMusic, 82, "⚡ Enerji Dolu Gün"},
	{domainEducation, domainMusic, 78, "🎓 Öğren ve Eğlen"},
	{domainSport, domainArt, 75, "💪 Aktif & Sakin Denge"},
}

// calculateSynergy scores how well two events complement each other.
// Identical categories short-circuit to a deliberately low score: the
// whole point of the pair is variety.
func calculateSynergy(e1, e2 catalog.Event) (int, string) {
	c1 := strings.ToLower(e1.Category.Name)
	c2 := strings.ToLower(e2.Category.Name)

	if c1 == c2 {
		return 20, "Çift " + capitalizeFirst(c1)
	}

	d1 := categoryDomains(c1)
	d2 := categoryDomains(c2)

	score := 70
	theme := "🌈 Farklı Tatlar"
	for _, rule := range synergyRules {
		if (d1[rule.a] && d2[rule.b]) || (d1[rule.b] && d2[rule.a]) {
			score = rule.score
			theme = rule.theme
			break
		}
	}

	// Same-day pairs make a real outing; nearby dates still help.
	// Unparsable dates just skip the bonus.
	t1, err1 := e1.StartTime()
	t2, err2 := e2.StartTime()
	if err1 == nil && err2 == nil {
		switch diff := daysApart(t1, t2); {
		case diff == 0:
			score += 10
			theme += " (Aynı Gün)"
		case diff <= 2:
			score += 5
		}
	}

	return score, theme
}

func capitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
