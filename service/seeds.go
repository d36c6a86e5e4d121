package service

// sectionSeeds holds the documents every presentational section starts with.
// They are inserted once, when the section collection is created, and fully
// editable from the admin dashboard afterwards.
var sectionSeeds = map[string][]map[string]any{

	"profile": {
		{
			"id":       "profile",
			"name":     "Mounir",
			"headline": "Software developer",
			"about": "I build web applications end to end, from data layer " +
				"to interface, and I care about the details in between.",
			"position": 1.0,
		},
	},

	"projects": {
		{
			"id":          "project-showcase",
			"title":       "Showcase",
			"description": "This site: a portfolio server with an editable admin dashboard.",
			"tags":        []any{"go", "http"},
			"position":    1.0,
		},
		{
			"id":          "project-inventory",
			"title":       "Inventory tracker",
			"description": "Stock movements and reporting for a small warehouse.",
			"tags":        []any{"go", "sql"},
			"position":    2.0,
		},
	},

	"experience": {
		{
			"id":       "experience-current",
			"title":    "Software Developer",
			"company":  "Freelance",
			"start":    "2021",
			"end":      "Present",
			"bullets":  []any{"Web applications for small businesses", "Automation and integrations"},
			"position": 1.0,
		},
	},

	"education": {
		{
			"id":          "education-degree",
			"degree":      "Computer Science",
			"institution": "University",
			"start":       "2016",
			"end":         "2020",
			"bullets":     []any{},
			"position":    1.0,
		},
	},

	"skills": {
		{"id": "skill-go", "name": "Go", "level": 90.0, "position": 1.0},
		{"id": "skill-js", "name": "JavaScript", "level": 80.0, "position": 2.0},
		{"id": "skill-sql", "name": "SQL", "level": 75.0, "position": 3.0},
	},

	"settings": {
		{
			"id":       "settings",
			"theme":    "dark",
			"accent":   "#7c3aed",
			"position": 1.0,
		},
	},
}
