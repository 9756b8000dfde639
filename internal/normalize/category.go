// Package normalize holds the pure transformation functions shared by every
// provider adapter: category inference, city canonicalization, salary parsing,
// slug generation and the title hash used for deduplication. No I/O, no state.
package normalize

import "strings"

// Category is a human label plus its stable slug.
type Category struct {
	Slug  string
	Label string
}

// CatchAllCategory is assigned when no keyword or tag matches.
var CatchAllCategory = Category{Slug: "sonstige", Label: "Sonstige"}

// keywordEntry binds one category to the title keywords that select it.
type keywordEntry struct {
	Category Category
	Keywords []string
}

// keywordTable is scanned in order and the first match wins. The order is
// deliberate: keyword lists overlap, so moving an entry changes precedence.
// Do not alphabetize.
var keywordTable = []keywordEntry{
	{Category{"it", "IT & Softwareentwicklung"},
		[]string{"software", "entwickler", "developer", "informatik", "fachinformatiker", "devops", "frontend", "backend", "cloud"}},
	{Category{"handwerk", "Handwerk & Technik"},
		[]string{"elektroniker", "elektro", "mechatroniker", "mechaniker", "anlagenmechaniker", "tischler", "schreiner", "kfz", "maler", "installateur"}},
	{Category{"design", "Design & Medien"},
		[]string{"design", "mediengestalt", "grafik", "fotograf", "redakteur"}},
	{Category{"marketing", "Marketing & Vertrieb"},
		[]string{"marketing", "vertrieb", "sales", "werbung", "social media"}},
	{Category{"gesundheit", "Gesundheit & Pflege"},
		[]string{"pflege", "gesundheit", "medizinisch", "krankenpfleger", "arzthelfer", "physiotherap"}},
	{Category{"gastronomie", "Gastronomie & Hotellerie"},
		[]string{"koch", "köchin", "hotel", "restaurant", "gastronomie", "servicekraft"}},
	{Category{"logistik", "Logistik & Verkehr"},
		[]string{"logistik", "lager", "fahrer", "spedition", "fachkraft für lagerlogistik"}},
	{Category{"buero", "Büro & Verwaltung"},
		[]string{"büro", "verwaltung", "kaufmann", "kauffrau", "kaufmännisch", "sekretariat", "buchhaltung"}},
	{Category{"bau", "Bau & Architektur"},
		[]string{"bau", "maurer", "zimmerer", "architekt", "bauzeichner"}},
	{Category{"bildung", "Bildung & Soziales"},
		[]string{"erzieher", "pädagog", "sozial", "lehrer"}},
}

// tagTable maps provider-supplied category tags to categories. Used when the
// provider returns structured category data instead of free text.
var tagTable = map[string]Category{
	"it-jobs":                    {"it", "IT & Softwareentwicklung"},
	"engineering-jobs":           {"handwerk", "Handwerk & Technik"},
	"maintenance-jobs":           {"handwerk", "Handwerk & Technik"},
	"creative-design-jobs":       {"design", "Design & Medien"},
	"pr-advertising-marketing-jobs": {"marketing", "Marketing & Vertrieb"},
	"sales-jobs":                 {"marketing", "Marketing & Vertrieb"},
	"healthcare-nursing-jobs":    {"gesundheit", "Gesundheit & Pflege"},
	"hospitality-catering-jobs":  {"gastronomie", "Gastronomie & Hotellerie"},
	"logistics-warehouse-jobs":   {"logistik", "Logistik & Verkehr"},
	"admin-jobs":                 {"buero", "Büro & Verwaltung"},
	"accounting-finance-jobs":    {"buero", "Büro & Verwaltung"},
	"construction-jobs":          {"bau", "Bau & Architektur"},
	"property-jobs":              {"bau", "Bau & Architektur"},
	"teaching-jobs":              {"bildung", "Bildung & Soziales"},
	"social-work-jobs":           {"bildung", "Bildung & Soziales"},
}

// CategoryFromTag resolves a provider category tag. Unknown tags fall through
// to the catch-all.
func CategoryFromTag(tag string) Category {
	if c, ok := tagTable[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return c
	}
	return CatchAllCategory
}

// CategoryFromTitle scans the lowercased title against the keyword table in
// table order; the first matching entry wins.
func CategoryFromTitle(title string) Category {
	lower := strings.ToLower(title)
	for _, entry := range keywordTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Category
			}
		}
	}
	return CatchAllCategory
}
