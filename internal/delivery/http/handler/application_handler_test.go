package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/pkg/jwt"
	"jobdesk/internal/repository"
	"jobdesk/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubApplicationUC struct {
	result repository.JobApplication
	err    error
	rows   []repository.ApplicationListRow
}

func (s *stubApplicationUC) Apply(context.Context, uuid.UUID, uuid.UUID, usecase.ApplyInput) (repository.JobApplication, error) {
	if s.err != nil {
		return repository.JobApplication{}, s.err
	}
	return s.result, nil
}

func (s *stubApplicationUC) ListMine(context.Context, uuid.UUID) ([]repository.ApplicationListRow, error) {
	return s.rows, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApplyTestApp(t *testing.T, uc usecase.ApplicationUsecase) (*fiber.App, string) {
	t.Helper()

	jwtSvc := jwt.NewHMACService("test-access", "test-refresh", 15*time.Minute, 24*time.Hour)
	token, err := jwtSvc.GenerateAccessToken(uuid.New(), "jane@example.com", repository.RoleJobSeeker)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	h := NewApplicationHandler(uc)
	authMw := middleware.NewAuthMiddleware(jwtSvc)
	app.Post("/api/v1/jobs/:id/apply", authMw.Middleware(), h.Apply)

	return app, token
}

func postApply(t *testing.T, app *fiber.App, token string, body map[string]any) envelope {
	t.Helper()

	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/jobs/"+uuid.NewString()+"/apply", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return env
}

func TestApplicationHandler_Apply_Created(t *testing.T) {
	created := repository.JobApplication{
		ID:     uuid.New(),
		JobID:  uuid.New(),
		Status: repository.ApplicationStatusPending,
	}
	app, token := newApplyTestApp(t, &stubApplicationUC{result: created})

	env := postApply(t, app, token, map[string]any{"cover_letter": "hello"})
	if env.Status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", env.Status, env.Message)
	}

	var data applicationResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("data unmarshal: %v", err)
	}
	if data.ID != created.ID || data.Status != repository.ApplicationStatusPending {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestApplicationHandler_Apply_Unauthorized(t *testing.T) {
	app, _ := newApplyTestApp(t, &stubApplicationUC{})

	env := postApply(t, app, "", map[string]any{})
	if env.Status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", env.Status)
	}
}

func TestApplicationHandler_Apply_PreconditionReasons(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{usecase.ErrNotJobSeeker, fiber.StatusForbidden, "Only job seekers can apply for jobs"},
		{usecase.ErrJobNotAccepting, fiber.StatusBadRequest, "This job is no longer accepting applications"},
		{usecase.ErrAlreadyApplied, fiber.StatusBadRequest, "You have already applied for this job"},
		{usecase.ErrJobNotFound, fiber.StatusNotFound, "Job not found"},
	}

	for _, tc := range cases {
		app, token := newApplyTestApp(t, &stubApplicationUC{err: tc.err})
		env := postApply(t, app, token, map[string]any{})
		if env.Status != tc.wantStatus {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.wantStatus, env.Status)
		}
		if env.Message != tc.wantMsg {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.wantMsg, env.Message)
		}
	}
}

func TestApplicationHandler_Apply_InvalidResumeURL(t *testing.T) {
	app, token := newApplyTestApp(t, &stubApplicationUC{})

	env := postApply(t, app, token, map[string]any{"resume_url": "not a url"})
	if env.Status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", env.Status)
	}

	var fields map[string]string
	if err := json.Unmarshal(env.Data, &fields); err != nil {
		t.Fatalf("data unmarshal: %v", err)
	}
	if fields["resume_url"] == "" {
		t.Fatalf("expected field-level message, got %v", fields)
	}
}
