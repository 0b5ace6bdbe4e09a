package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestBuildJobListQuery_DefaultsToPublishedNewestFirst(t *testing.T) {
	query, args := BuildJobListQuery(JobFilter{})

	if !strings.Contains(query, "j.status = 'published'") {
		t.Fatalf("listing must only serve published jobs:\n%s", query)
	}
	if !strings.Contains(query, "ORDER BY j.created_at DESC") {
		t.Fatalf("expected default sort:\n%s", query)
	}
	if len(args) != 2 || args[0] != 20 || args[1] != 0 {
		t.Fatalf("expected default limit/offset args, got %v", args)
	}
}

func TestBuildJobListQuery_UnknownSortFallsBack(t *testing.T) {
	query, _ := BuildJobListQuery(JobFilter{SortBy: "views_count; DROP TABLE jobs"})

	if !strings.Contains(query, "ORDER BY j.created_at DESC") {
		t.Fatalf("unknown sort must fall back to default:\n%s", query)
	}
	if strings.Contains(query, "DROP TABLE") {
		t.Fatalf("sort input leaked into SQL:\n%s", query)
	}
}

func TestBuildJobListQuery_SortAliases(t *testing.T) {
	cases := map[string]string{
		"created_at": "j.created_at ASC",
		"salary":     "j.salary_min ASC",
		"-salary":    "j.salary_min DESC",
		"title":      "j.title ASC",
		"-company":   "c.name DESC",
	}
	for sortBy, want := range cases {
		query, _ := BuildJobListQuery(JobFilter{SortBy: sortBy})
		if !strings.Contains(query, "ORDER BY "+want) {
			t.Fatalf("sort_by=%q: expected %q in:\n%s", sortBy, want, query)
		}
	}
}

func TestBuildJobListQuery_SearchIsSingleParamOrClause(t *testing.T) {
	query, args := BuildJobListQuery(JobFilter{Search: "golang"})

	if !strings.Contains(query, "(j.title ILIKE $1 OR j.description ILIKE $1 OR c.name ILIKE $1)") {
		t.Fatalf("expected OR clause over title, description, company name:\n%s", query)
	}
	if args[0] != "%golang%" {
		t.Fatalf("expected wrapped pattern, got %v", args[0])
	}
}

func TestBuildJobListQuery_EmptySkillsIsNoOp(t *testing.T) {
	query, _ := BuildJobListQuery(JobFilter{SkillIDs: []uuid.UUID{}})

	if strings.Contains(query, "job_skills") {
		t.Fatalf("empty skills filter must not touch job_skills:\n%s", query)
	}
}

func TestBuildJobListQuery_SkillsUseExists(t *testing.T) {
	query, _ := BuildJobListQuery(JobFilter{SkillIDs: []uuid.UUID{uuid.New(), uuid.New()}})

	if !strings.Contains(query, "EXISTS (SELECT 1 FROM job_skills js") {
		t.Fatalf("skills filter must use EXISTS so matches stay unique:\n%s", query)
	}
	if strings.Contains(query, "JOIN job_skills") {
		t.Fatalf("skills filter must not join and duplicate rows:\n%s", query)
	}
}

func TestBuildJobListQuery_CombinedFiltersAreAnded(t *testing.T) {
	remote := true
	salary := 50000.0
	companyID := uuid.New()
	query, args := BuildJobListQuery(JobFilter{
		Search:          "engineer",
		JobType:         "full_time",
		ExperienceLevel: "senior",
		Location:        "Berlin",
		IsRemote:        &remote,
		SalaryMin:       &salary,
		CompanyID:       &companyID,
	})

	for _, clause := range []string{
		"j.job_type = $2",
		"j.experience_level = $3",
		"j.location ILIKE $4",
		"j.is_remote = $5",
		"j.salary_min >= $6",
		"j.company_id = $7",
	} {
		if !strings.Contains(query, clause) {
			t.Fatalf("missing clause %q in:\n%s", clause, query)
		}
	}
	if strings.Count(query, " AND ") < 6 {
		t.Fatalf("filters must be AND-combined:\n%s", query)
	}
	// search + 6 filters + limit + offset
	if len(args) != 9 {
		t.Fatalf("expected 9 args, got %d: %v", len(args), args)
	}
}

func TestBuildJobListQuery_LimitClamped(t *testing.T) {
	_, args := BuildJobListQuery(JobFilter{Limit: 5000, Offset: -3})

	if args[len(args)-2] != 100 {
		t.Fatalf("limit must be capped at 100, got %v", args[len(args)-2])
	}
	if args[len(args)-1] != 0 {
		t.Fatalf("negative offset must clamp to 0, got %v", args[len(args)-1])
	}
}
