package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonesrussell/gojobs/internal/domain"
)

// Yearly figures above this threshold are assumed to be annual totals and are
// divided by 12. Some providers report hourly or monthly figures with no unit
// flag, so absolute magnitude is the only disambiguator.
const annualThreshold = 500.0

const monthsPerYear = 12

// Matches European-grouped numbers such as 1.234,56 as well as plain ones.
var numberPattern = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+(?:,\d+)?|\d+(?:,\d+)?`)

var hourKeywords = []string{"stunde", "std", "/h", "hour", "hourly", "stündlich"}

var yearKeywords = []string{"jahr", "year", "p.a.", "jährlich", "annum", "annual"}

// Salary extracts min/max figures and a unit from a free-text salary string.
// The first numeric token is the minimum; the second, if present, the maximum
// (otherwise min is repeated). Returns nils when no number is found.
func Salary(raw string) (minSalary, maxSalary *float64, unit domain.SalaryUnit) {
	unit = salaryUnit(raw)

	tokens := numberPattern.FindAllString(raw, -1)
	if len(tokens) == 0 {
		return nil, nil, unit
	}

	first := parseEuropean(tokens[0])
	second := first
	if len(tokens) > 1 {
		second = parseEuropean(tokens[1])
	}

	return &first, &second, unit
}

// StructuredSalary applies the same min/max/unit conventions to numeric
// provider fields, including the annual-to-monthly conversion.
func StructuredSalary(rawMin, rawMax float64) (minSalary, maxSalary *float64, unit domain.SalaryUnit) {
	if rawMin <= 0 && rawMax <= 0 {
		return nil, nil, domain.SalaryMonth
	}
	if rawMin <= 0 {
		rawMin = rawMax
	}
	if rawMax <= 0 {
		rawMax = rawMin
	}

	unit = domain.SalaryMonth
	if rawMin > annualThreshold {
		rawMin /= monthsPerYear
		rawMax /= monthsPerYear
	}

	return &rawMin, &rawMax, unit
}

func salaryUnit(raw string) domain.SalaryUnit {
	lower := strings.ToLower(raw)
	for _, kw := range hourKeywords {
		if strings.Contains(lower, kw) {
			return domain.SalaryHour
		}
	}
	for _, kw := range yearKeywords {
		if strings.Contains(lower, kw) {
			return domain.SalaryYear
		}
	}
	return domain.SalaryMonth
}

// parseEuropean converts 1.234,56-style grouping to a float. Tokens that are
// already plain decimals pass through unchanged.
func parseEuropean(token string) float64 {
	cleaned := strings.ReplaceAll(token, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
