package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// JobFilter is the parameter set of the public job search. Zero values are
// no-ops; every recognized filter is AND-combined except Search, which is an
// internal OR over title, description and company name.
type JobFilter struct {
	Search          string
	JobType         string
	ExperienceLevel string
	Location        string
	IsRemote        *bool
	SalaryMin       *float64
	CompanyID       *uuid.UUID
	SkillIDs        []uuid.UUID
	SortBy          string
	Limit           int
	Offset          int
}

const jobSummarySelect = `SELECT j.id, j.title, c.name, c.logo_url, j.location, j.job_type, j.salary_type,
	j.salary_min, j.salary_max, j.is_remote, j.created_at
	FROM jobs j
	JOIN companies c ON c.id = j.company_id`

// allowedJobSorts is a closed allow-list; anything else falls back to the
// default newest-first order rather than erroring.
var allowedJobSorts = map[string]string{
	"created_at":  "j.created_at ASC",
	"-created_at": "j.created_at DESC",
	"salary":      "j.salary_min ASC",
	"-salary":     "j.salary_min DESC",
	"title":       "j.title ASC",
	"-title":      "j.title DESC",
	"company":     "c.name ASC",
	"-company":    "c.name DESC",
}

const defaultJobSort = "j.created_at DESC"

// BuildJobListQuery composes the published-jobs search into one statement.
// The skills filter uses EXISTS, so a job matching several requested skills
// still appears exactly once.
func BuildJobListQuery(f JobFilter) (string, []any) {
	where := []string{"j.status = 'published'"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		where = append(where, fmt.Sprintf("(j.title ILIKE %[1]s OR j.description ILIKE %[1]s OR c.name ILIKE %[1]s)", p))
	}
	if s := strings.TrimSpace(f.JobType); s != "" {
		where = append(where, "j.job_type = "+arg(s))
	}
	if s := strings.TrimSpace(f.ExperienceLevel); s != "" {
		where = append(where, "j.experience_level = "+arg(s))
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		where = append(where, "j.location ILIKE "+arg("%"+s+"%"))
	}
	if f.IsRemote != nil {
		where = append(where, "j.is_remote = "+arg(*f.IsRemote))
	}
	if f.SalaryMin != nil {
		where = append(where, "j.salary_min >= "+arg(*f.SalaryMin))
	}
	if f.CompanyID != nil {
		where = append(where, "j.company_id = "+arg(*f.CompanyID))
	}
	if len(f.SkillIDs) > 0 {
		where = append(where, "EXISTS (SELECT 1 FROM job_skills js WHERE js.job_id = j.id AND js.skill_id = ANY("+arg(f.SkillIDs)+"))")
	}

	order, ok := allowedJobSorts[f.SortBy]
	if !ok {
		order = defaultJobSort
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := jobSummarySelect +
		"\n\tWHERE " + strings.Join(where, " AND ") +
		"\n\tORDER BY " + order +
		"\n\tLIMIT " + arg(limit) + " OFFSET " + arg(offset)

	return query, args
}
