package usecase

import (
	"context"
	"encoding/json"
	"time"

	"jobdesk/internal/database"
	"jobdesk/internal/queue"
	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

type fakeDB struct {
	beginErr  error
	commits   int
	rollbacks int
}

func (f *fakeDB) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (f *fakeDB) Ping(context.Context) error                                   { return nil }
func (f *fakeDB) Close() error                                                 { return nil }

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return &fakeTx{db: f}, nil
}

type fakeTx struct {
	db   *fakeDB
	done bool
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row        { return nil }

func (t *fakeTx) Commit(context.Context) error {
	t.done = true
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.done {
		t.db.rollbacks++
	}
	return nil
}

type mockUsers struct {
	byID          map[uuid.UUID]repository.User
	byEmail       map[string]repository.User
	emailTaken    bool
	usernameTaken bool
	createErr     error
	created       []repository.User
}

func (m *mockUsers) Create(_ context.Context, _ database.Querier, u repository.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, u)
	return nil
}

func (m *mockUsers) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUsers) ExistsByEmail(context.Context, string) (bool, error) {
	return m.emailTaken, nil
}

func (m *mockUsers) ExistsByUsername(context.Context, string) (bool, error) {
	return m.usernameTaken, nil
}

type mockProfiles struct {
	seeker      repository.JobSeekerProfile
	seekerErr   error
	employer    repository.EmployerProfile
	employerErr error

	createdSeekers   []repository.JobSeekerProfile
	createdEmployers []repository.EmployerProfile
	updated          []repository.JobSeekerProfile

	profileSkills []repository.Skill
	addedSkills   [][]uuid.UUID
	removedSkills [][]uuid.UUID
}

func (m *mockProfiles) CreateJobSeeker(_ context.Context, _ database.Querier, p repository.JobSeekerProfile) error {
	m.createdSeekers = append(m.createdSeekers, p)
	return nil
}

func (m *mockProfiles) CreateEmployer(_ context.Context, _ database.Querier, p repository.EmployerProfile) error {
	m.createdEmployers = append(m.createdEmployers, p)
	return nil
}

func (m *mockProfiles) GetJobSeekerByUserID(context.Context, uuid.UUID) (repository.JobSeekerProfile, error) {
	if m.seekerErr != nil {
		return repository.JobSeekerProfile{}, m.seekerErr
	}
	return m.seeker, nil
}

func (m *mockProfiles) GetEmployerByUserID(context.Context, uuid.UUID) (repository.EmployerProfile, error) {
	if m.employerErr != nil {
		return repository.EmployerProfile{}, m.employerErr
	}
	return m.employer, nil
}

func (m *mockProfiles) UpdateJobSeeker(_ context.Context, p repository.JobSeekerProfile) error {
	m.updated = append(m.updated, p)
	return nil
}

func (m *mockProfiles) GetProfileSkills(context.Context, uuid.UUID) ([]repository.Skill, error) {
	return m.profileSkills, nil
}

func (m *mockProfiles) AddProfileSkills(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
	m.addedSkills = append(m.addedSkills, ids)
	return nil
}

func (m *mockProfiles) RemoveProfileSkills(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
	m.removedSkills = append(m.removedSkills, ids)
	return nil
}

type mockCompanies struct {
	exists  bool
	company repository.Company
	getErr  error
	created []repository.Company
}

func (m *mockCompanies) Create(_ context.Context, _ database.Querier, c repository.Company) error {
	m.created = append(m.created, c)
	return nil
}

func (m *mockCompanies) GetByID(context.Context, uuid.UUID) (repository.Company, error) {
	if m.getErr != nil {
		return repository.Company{}, m.getErr
	}
	return m.company, nil
}

func (m *mockCompanies) ExistsByID(context.Context, uuid.UUID) (bool, error) {
	return m.exists, nil
}

func (m *mockCompanies) List(context.Context, repository.CompanyFilter) ([]repository.Company, error) {
	return []repository.Company{m.company}, nil
}

type mockSkills struct {
	all           []repository.Skill
	countOverride *int
	createErr     error
	updateErr     error
	deleteErr     error
	created       []repository.Skill
	updated       []repository.Skill
	deleted       []uuid.UUID
}

func (m *mockSkills) GetAll(context.Context) ([]repository.Skill, error) { return m.all, nil }

func (m *mockSkills) GetByID(context.Context, uuid.UUID) (repository.Skill, error) {
	return repository.Skill{}, repository.ErrSkillNotFound
}

func (m *mockSkills) CountByIDs(_ context.Context, ids []uuid.UUID) (int, error) {
	if m.countOverride != nil {
		return *m.countOverride, nil
	}
	return len(ids), nil
}

func (m *mockSkills) Create(_ context.Context, s repository.Skill) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, s)
	return nil
}

func (m *mockSkills) Update(_ context.Context, s repository.Skill) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, s)
	return nil
}

func (m *mockSkills) Delete(_ context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockJobs struct {
	job       repository.Job
	jobErr    error
	summaries []repository.JobSummary
	jobSkills []repository.Skill
	stats     repository.JobStatistics

	createErr error
	created   []repository.Job
	updated   []repository.Job
	deleted   []uuid.UUID

	appsIncremented  []uuid.UUID
	viewsIncremented []uuid.UUID
	incAppsErr       error
}

func (m *mockJobs) List(context.Context, repository.JobFilter) ([]repository.JobSummary, error) {
	return m.summaries, nil
}

func (m *mockJobs) GetByID(context.Context, uuid.UUID) (repository.Job, error) {
	if m.jobErr != nil {
		return repository.Job{}, m.jobErr
	}
	return m.job, nil
}

func (m *mockJobs) GetJobSkills(context.Context, uuid.UUID) ([]repository.Skill, error) {
	return m.jobSkills, nil
}

func (m *mockJobs) Create(_ context.Context, j repository.Job, _ []uuid.UUID) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, j)
	return nil
}

func (m *mockJobs) Update(_ context.Context, j repository.Job, _ []uuid.UUID) error {
	m.updated = append(m.updated, j)
	return nil
}

func (m *mockJobs) Delete(_ context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockJobs) ListByCompany(context.Context, uuid.UUID) ([]repository.JobSummary, error) {
	return m.summaries, nil
}

func (m *mockJobs) ListSimilar(context.Context, uuid.UUID, int) ([]repository.JobSummary, error) {
	return m.summaries, nil
}

func (m *mockJobs) Statistics(context.Context, uuid.UUID) (repository.JobStatistics, error) {
	return m.stats, nil
}

func (m *mockJobs) IncrementViews(_ context.Context, id uuid.UUID) error {
	m.viewsIncremented = append(m.viewsIncremented, id)
	return nil
}

func (m *mockJobs) IncrementApplications(_ context.Context, _ database.Querier, id uuid.UUID) error {
	if m.incAppsErr != nil {
		return m.incAppsErr
	}
	m.appsIncremented = append(m.appsIncremented, id)
	return nil
}

func (m *mockJobs) CloseExpired(context.Context, time.Time) (int64, error) { return 0, nil }

type mockApps struct {
	exists    bool
	createErr error
	created   []repository.JobApplication
	byID      map[uuid.UUID]repository.JobApplication
	rows      []repository.ApplicationListRow
	details   repository.ApplicationNotificationDetails
}

func (m *mockApps) Create(_ context.Context, _ database.Querier, a repository.JobApplication) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, a)
	return nil
}

func (m *mockApps) GetByID(_ context.Context, id uuid.UUID) (repository.JobApplication, error) {
	a, ok := m.byID[id]
	if !ok {
		return repository.JobApplication{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *mockApps) ExistsByJobAndApplicant(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return m.exists, nil
}

func (m *mockApps) ListByApplicant(context.Context, uuid.UUID) ([]repository.ApplicationListRow, error) {
	return m.rows, nil
}

func (m *mockApps) ListByCompany(context.Context, uuid.UUID) ([]repository.ApplicationListRow, error) {
	return m.rows, nil
}

func (m *mockApps) GetNotificationDetails(context.Context, uuid.UUID) (repository.ApplicationNotificationDetails, error) {
	return m.details, nil
}

type fakeEnqueuer struct {
	tasks []queue.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, t queue.Task) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, t)
	return nil
}

type fakeCache struct {
	store   map[string][]byte
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = b
	f.sets++
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.store, key)
	f.deletes++
	return nil
}
