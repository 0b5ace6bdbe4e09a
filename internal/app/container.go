package app

import (
	"context"
	"log"
	"os"
	"time"

	"jobdesk/internal/config"
	"jobdesk/internal/database"
	dbpostgres "jobdesk/internal/database/postgres"
	"jobdesk/internal/database/schema"
	"jobdesk/internal/database/seeder"
	"jobdesk/internal/infrastructure/cache"
	"jobdesk/internal/pkg/jwt"
	"jobdesk/internal/queue"
	"jobdesk/internal/repository"
	"jobdesk/internal/usecase"

	goredis "github.com/redis/go-redis/v9"
)

// Container owns every shared dependency: connections, repositories and
// usecases. Both binaries build one and pick what they need from it.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Redis *goredis.Client
	Cache *cache.Redis
	Queue *queue.Redis

	JWT jwt.Service

	Users        repository.UserRepository
	Profiles     repository.ProfileRepository
	Companies    repository.CompanyRepository
	Skills       repository.SkillRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository

	AuthUC        usecase.AuthUsecase
	JobUC         usecase.JobUsecase
	ApplicationUC usecase.ApplicationUsecase
	SkillUC       usecase.SkillUsecase
	CompanyUC     usecase.CompanyUsecase
	ProfileUC     usecase.ProfileUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := schema.Apply(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := seeder.RunAll(ctx, db, logger, seeder.SkillsSeeder{}); err != nil {
		db.Close()
		return nil, err
	}

	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		// The API degrades without Redis: no skill cache, no background
		// tasks. Keep serving reads and writes anyway.
		logger.Printf("[App] redis unavailable, continuing degraded: %v", err)
		redisClient = nil
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
	}

	c.Cache = cache.NewRedis(redisClient, logger)
	c.Queue = queue.NewRedis(redisClient, cfg.Worker.QueueKey, logger)

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	c.Users = repository.NewPostgresUserRepository(db)
	c.Profiles = repository.NewPostgresProfileRepository(db)
	c.Companies = repository.NewPostgresCompanyRepository(db)
	c.Skills = repository.NewPostgresSkillRepository(db)
	c.Jobs = repository.NewPostgresJobRepository(db)
	c.Applications = repository.NewPostgresApplicationRepository(db)

	c.AuthUC = usecase.NewAuthUsecase(db, c.Users, c.Profiles, c.Companies, c.JWT)
	c.JobUC = usecase.NewJobUsecase(c.Jobs, c.Profiles, c.Skills, c.Queue, logger)
	c.ApplicationUC = usecase.NewApplicationUsecase(db, c.Applications, c.Jobs, c.Profiles, c.Queue, logger)
	c.SkillUC = usecase.NewSkillUsecase(c.Skills, c.Cache, logger)
	c.CompanyUC = usecase.NewCompanyUsecase(c.Companies, c.Profiles)
	c.ProfileUC = usecase.NewProfileUsecase(c.Profiles, c.Skills)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Printf("[App] redis close: %v", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
