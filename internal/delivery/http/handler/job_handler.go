package handler

import (
	"strconv"
	"time"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/pkg/response"
	"jobdesk/internal/pkg/validate"
	"jobdesk/internal/repository"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

type jobRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Location         string   `json:"location" validate:"max=200"`
	JobType          string   `json:"job_type" validate:"required,oneof=full_time part_time contract internship"`
	ExperienceLevel  string   `json:"experience_level" validate:"required,oneof=entry mid senior lead"`
	Description      string   `json:"description" validate:"required"`
	Requirements     string   `json:"requirements"`
	Responsibilities string   `json:"responsibilities"`
	SalaryType       string   `json:"salary_type" validate:"omitempty,oneof=range exact negotiable"`
	SalaryMin        *float64 `json:"salary_min"`
	SalaryMax        *float64 `json:"salary_max"`
	Status           string   `json:"status" validate:"omitempty,oneof=draft published closed archived"`
	IsRemote         bool     `json:"is_remote"`
	SkillIDs         []string `json:"skill_ids"`
}

type jobSummaryResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	CompanyName    string    `json:"company_name"`
	CompanyLogoURL string    `json:"company_logo_url,omitempty"`
	Location       string    `json:"location"`
	JobType        string    `json:"job_type"`
	SalaryType     string    `json:"salary_type,omitempty"`
	SalaryMin      *float64  `json:"salary_min"`
	SalaryMax      *float64  `json:"salary_max"`
	IsRemote       bool      `json:"is_remote"`
	CreatedAt      time.Time `json:"created_at"`
}

type jobDetailResponse struct {
	ID                uuid.UUID       `json:"id"`
	CompanyID         uuid.UUID       `json:"company_id"`
	CompanyName       string          `json:"company_name"`
	CompanyLogoURL    string          `json:"company_logo_url,omitempty"`
	Title             string          `json:"title"`
	Location          string          `json:"location"`
	JobType           string          `json:"job_type"`
	ExperienceLevel   string          `json:"experience_level"`
	Description       string          `json:"description"`
	Requirements      string          `json:"requirements"`
	Responsibilities  string          `json:"responsibilities"`
	SalaryType        string          `json:"salary_type,omitempty"`
	SalaryMin         *float64        `json:"salary_min"`
	SalaryMax         *float64        `json:"salary_max"`
	Status            string          `json:"status"`
	IsRemote          bool            `json:"is_remote"`
	ExpiresAt         *time.Time      `json:"expires_at"`
	ViewsCount        int             `json:"views_count"`
	ApplicationsCount int             `json:"applications_count"`
	Skills            []skillResponse `json:"skills"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (h *JobHandler) List(c fiber.Ctx) error {
	f, err := jobFilterFromQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, jobSummaries(items))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, jobDetail(detail))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	in, err := jobInputFromBody(c)
	if err != nil {
		return err
	}

	detail, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job created successfully", jobDetail(detail))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	in, err := jobInputFromBody(c)
	if err != nil {
		return err
	}

	detail, err := h.uc.Update(c.Context(), userID, jobID, in)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job updated successfully", jobDetail(detail))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, jobID); err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}

func (h *JobHandler) MyJobs(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.MyJobs(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, jobSummaries(items))
}

func (h *JobHandler) Similar(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.Similar(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, jobSummaries(items))
}

func (h *JobHandler) Statistics(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.uc.Statistics(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	byStatus := make(map[string]int, len(stats.ApplicationsByStatus))
	for _, s := range stats.ApplicationsByStatus {
		byStatus[s.Status] = s.Count
	}

	data := map[string]any{
		"active_jobs":            stats.ActiveJobs,
		"total_applications":     stats.TotalApplications,
		"applications_by_status": byStatus,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

// jobFilterFromQuery maps listing query params onto the repository filter.
// Unknown params and unparsable values are ignored rather than rejected,
// matching the tolerant behavior of the public listing.
func jobFilterFromQuery(c fiber.Ctx) (repository.JobFilter, error) {
	f := repository.JobFilter{
		Search:          c.Query("search"),
		JobType:         c.Query("job_type"),
		ExperienceLevel: c.Query("experience_level"),
		Location:        c.Query("location"),
		SortBy:          c.Query("sort_by"),
	}

	if raw := c.Query("is_remote"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.IsRemote = &v
		}
	}
	if raw := c.Query("salary_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.SalaryMin = &v
		}
	}
	if raw := c.Query("company"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			f.CompanyID = &id
		}
	}

	seen := make(map[uuid.UUID]struct{})
	for _, raw := range c.RequestCtx().QueryArgs().PeekMulti("skills") {
		id, err := uuid.Parse(string(raw))
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		f.SkillIDs = append(f.SkillIDs, id)
	}

	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.Limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.Offset = v
		}
	}

	return f, nil
}

func jobInputFromBody(c fiber.Ctx) (usecase.JobInput, error) {
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.JobInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if fields := validate.Struct(req); fields != nil {
		return usecase.JobInput{}, validationError(fields)
	}

	in := usecase.JobInput{
		Title:            req.Title,
		Location:         req.Location,
		JobType:          req.JobType,
		ExperienceLevel:  req.ExperienceLevel,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		SalaryType:       req.SalaryType,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Status:           req.Status,
		IsRemote:         req.IsRemote,
	}

	if req.SkillIDs != nil {
		in.SkillIDs = make([]uuid.UUID, 0, len(req.SkillIDs))
		for _, raw := range req.SkillIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return usecase.JobInput{}, validationError(map[string]string{"skill_ids": "must be valid UUIDs"})
			}
			in.SkillIDs = append(in.SkillIDs, id)
		}
	}

	return in, nil
}

func jobSummaries(items []repository.JobSummary) []jobSummaryResponse {
	res := make([]jobSummaryResponse, 0, len(items))
	for _, it := range items {
		res = append(res, jobSummaryResponse{
			ID:             it.ID,
			Title:          it.Title,
			CompanyName:    it.CompanyName,
			CompanyLogoURL: it.CompanyLogoURL,
			Location:       it.Location,
			JobType:        it.JobType,
			SalaryType:     it.SalaryType,
			SalaryMin:      it.SalaryMin,
			SalaryMax:      it.SalaryMax,
			IsRemote:       it.IsRemote,
			CreatedAt:      it.CreatedAt,
		})
	}
	return res
}

func jobDetail(d usecase.JobDetail) jobDetailResponse {
	skills := make([]skillResponse, 0, len(d.Skills))
	for _, s := range d.Skills {
		skills = append(skills, skillResponse{ID: s.ID, Name: s.Name, Category: s.Category})
	}

	j := d.Job
	return jobDetailResponse{
		ID:                j.ID,
		CompanyID:         j.CompanyID,
		CompanyName:       j.CompanyName,
		CompanyLogoURL:    j.CompanyLogoURL,
		Title:             j.Title,
		Location:          j.Location,
		JobType:           j.JobType,
		ExperienceLevel:   j.ExperienceLevel,
		Description:       j.Description,
		Requirements:      j.Requirements,
		Responsibilities:  j.Responsibilities,
		SalaryType:        j.SalaryType,
		SalaryMin:         j.SalaryMin,
		SalaryMax:         j.SalaryMax,
		Status:            j.Status,
		IsRemote:          j.IsRemote,
		ExpiresAt:         j.ExpiresAt,
		ViewsCount:        j.ViewsCount,
		ApplicationsCount: j.ApplicationsCount,
		Skills:            skills,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
}
