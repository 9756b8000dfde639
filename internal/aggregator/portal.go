package aggregator

// Portal describes one job vertical: its keyword searches plus optional
// provider category tags used for extra category-based queries.
type Portal struct {
	JobType      string
	PortalID     int
	Label        string
	Searches     []string
	CategoryTags []string
}

// DefaultPortals are the configured verticals, imported in this order every
// cycle.
var DefaultPortals = []Portal{
	{
		JobType:  "ausbildung",
		PortalID: 1,
		Label:    "Ausbildungsplätze",
		Searches: []string{
			"ausbildung",
			"ausbildungsplatz",
			"azubi",
			"lehrstelle",
		},
		CategoryTags: []string{"it-jobs", "engineering-jobs"},
	},
	{
		JobType:  "praktikum",
		PortalID: 2,
		Label:    "Praktika",
		Searches: []string{
			"praktikum",
			"praktikant",
			"pflichtpraktikum",
		},
	},
	{
		JobType:  "vollzeit",
		PortalID: 3,
		Label:    "Vollzeitstellen",
		Searches: []string{
			"vollzeit",
			"festanstellung",
		},
		CategoryTags: []string{"it-jobs", "healthcare-nursing-jobs", "logistics-warehouse-jobs"},
	},
	{
		JobType:  "minijob",
		PortalID: 4,
		Label:    "Minijobs",
		Searches: []string{
			"minijob",
			"aushilfe",
			"450 euro job",
			"geringfügige beschäftigung",
		},
	},
	{
		JobType:  "werkstudent",
		PortalID: 5,
		Label:    "Werkstudentenstellen",
		Searches: []string{
			"werkstudent",
			"working student",
			"studentische hilfskraft",
		},
	},
}
