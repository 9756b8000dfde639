package normalize

import "strings"

// cityTable maps lowercased "city, region" strings, as the providers tend to
// format locations, to a canonical display name.
var cityTable = map[string]string{
	"berlin, berlin":                      "Berlin",
	"hamburg, hamburg":                    "Hamburg",
	"münchen, bayern":                     "München",
	"munich, bavaria":                     "München",
	"köln, nordrhein-westfalen":           "Köln",
	"cologne, north rhine-westphalia":     "Köln",
	"frankfurt am main, hessen":           "Frankfurt am Main",
	"frankfurt, hessen":                   "Frankfurt am Main",
	"stuttgart, baden-württemberg":        "Stuttgart",
	"düsseldorf, nordrhein-westfalen":     "Düsseldorf",
	"dortmund, nordrhein-westfalen":       "Dortmund",
	"essen, nordrhein-westfalen":          "Essen",
	"leipzig, sachsen":                    "Leipzig",
	"dresden, sachsen":                    "Dresden",
	"bremen, bremen":                      "Bremen",
	"hannover, niedersachsen":             "Hannover",
	"nürnberg, bayern":                    "Nürnberg",
	"nuremberg, bavaria":                  "Nürnberg",
	"duisburg, nordrhein-westfalen":       "Duisburg",
	"bochum, nordrhein-westfalen":         "Bochum",
	"wuppertal, nordrhein-westfalen":      "Wuppertal",
	"bielefeld, nordrhein-westfalen":      "Bielefeld",
	"bonn, nordrhein-westfalen":           "Bonn",
	"münster, nordrhein-westfalen":        "Münster",
	"karlsruhe, baden-württemberg":        "Karlsruhe",
	"mannheim, baden-württemberg":         "Mannheim",
	"augsburg, bayern":                    "Augsburg",
	"wiesbaden, hessen":                   "Wiesbaden",
	"mainz, rheinland-pfalz":              "Mainz",
}

// City canonicalizes a raw provider location string. On a table miss it falls
// back to the substring before the first comma. Empty input yields "".
func City(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := cityTable[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	if idx := strings.Index(trimmed, ","); idx >= 0 {
		return strings.TrimSpace(trimmed[:idx])
	}
	return trimmed
}
