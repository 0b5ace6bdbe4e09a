package seeder

import (
	"context"

	"jobdesk/internal/database"

	"github.com/google/uuid"
)

// SkillsSeeder installs the default skill catalog. Existing rows are left
// untouched so manual edits survive restarts.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

var defaultSkills = map[string][]string{
	"Programming Languages": {
		"Python", "JavaScript", "Java", "C++", "Ruby", "PHP",
		"Swift", "TypeScript", "Go", "Rust",
	},
	"Frameworks": {
		"Django", "React", "Angular", "Vue.js", "Flask",
		"Spring Boot", "Laravel", "Express.js", "Ruby on Rails",
	},
	"Databases": {
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "SQLite",
		"Oracle", "Cassandra", "Microsoft SQL Server",
	},
	"DevOps": {
		"Docker", "Kubernetes", "AWS", "Jenkins", "Git",
		"Linux", "CI/CD", "Azure", "Google Cloud",
	},
	"Frontend": {
		"HTML", "CSS", "SASS", "Bootstrap", "Tailwind CSS",
		"jQuery", "Redux", "Webpack", "Material UI",
	},
	"Mobile": {
		"React Native", "Flutter", "iOS", "Android", "Xamarin",
		"Kotlin", "SwiftUI", "Mobile App Development",
	},
	"Other": {
		"Agile", "Scrum", "REST API", "GraphQL", "Unit Testing",
		"UI/UX Design", "Problem Solving", "Team Leadership",
	},
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for category, names := range defaultSkills {
		for _, name := range names {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
				uuid.New(), name, category,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
