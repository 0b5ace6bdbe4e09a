package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"jobdesk/internal/repository"

	"github.com/google/uuid"
)

// CategorizedSkillsCacheKey is the single cache entry for the grouped skill
// catalog. Every skill mutation deletes it unconditionally; correctness over
// cache efficiency.
const CategorizedSkillsCacheKey = "categorized_skills"

const categorizedSkillsTTL = 3600 * time.Second

var skillCategories = map[string]struct{}{
	"Programming Languages": {},
	"Frameworks":            {},
	"Databases":             {},
	"DevOps":                {},
	"Frontend":              {},
	"Mobile":                {},
	"Other":                 {},
}

type SkillCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type SkillItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SkillDetail struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type SkillUsecase interface {
	ListByCategory(ctx context.Context) (map[string][]SkillItem, error)
	Create(ctx context.Context, name, category string) (SkillDetail, error)
	Update(ctx context.Context, id uuid.UUID, name, category string) (SkillDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Skill struct {
	repo   repository.SkillRepository
	cache  SkillCache
	logger *log.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, cache SkillCache, logger *log.Logger) *Skill {
	return &Skill{repo: repo, cache: cache, logger: logger}
}

func (u *Skill) ListByCategory(ctx context.Context) (map[string][]SkillItem, error) {
	if u.cache != nil {
		var cached map[string][]SkillItem
		hit, err := u.cache.GetJSON(ctx, CategorizedSkillsCacheKey, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	skills, err := u.repo.GetAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	grouped := make(map[string][]SkillItem)
	for _, s := range skills {
		grouped[s.Category] = append(grouped[s.Category], SkillItem{
			ID:        s.ID,
			Name:      s.Name,
			CreatedAt: s.CreatedAt,
		})
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, CategorizedSkillsCacheKey, grouped, categorizedSkillsTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Skills] cache set failed: %v", err)
		}
	}
	return grouped, nil
}

func (u *Skill) Create(ctx context.Context, name, category string) (SkillDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillDetail{}, ErrInvalidInput
	}
	category, err := normalizeCategory(category)
	if err != nil {
		return SkillDetail{}, err
	}

	s := repository.Skill{ID: uuid.New(), Name: name, Category: category}
	if err := u.repo.Create(ctx, s); err != nil {
		if repository.IsUniqueViolation(err, "skills_name_key") {
			return SkillDetail{}, ErrSkillNameTaken
		}
		return SkillDetail{}, ErrInternal
	}

	u.invalidate(ctx)
	return SkillDetail{ID: s.ID, Name: s.Name, Category: s.Category}, nil
}

func (u *Skill) Update(ctx context.Context, id uuid.UUID, name, category string) (SkillDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillDetail{}, ErrInvalidInput
	}
	category, err := normalizeCategory(category)
	if err != nil {
		return SkillDetail{}, err
	}

	s := repository.Skill{ID: id, Name: name, Category: category}
	if err := u.repo.Update(ctx, s); err != nil {
		if repository.IsUniqueViolation(err, "skills_name_key") {
			return SkillDetail{}, ErrSkillNameTaken
		}
		if err == repository.ErrSkillNotFound {
			return SkillDetail{}, ErrSkillNotFound
		}
		return SkillDetail{}, ErrInternal
	}

	u.invalidate(ctx)
	return SkillDetail{ID: s.ID, Name: s.Name, Category: s.Category}, nil
}

func (u *Skill) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrSkillNotFound {
			return ErrSkillNotFound
		}
		return ErrInternal
	}

	u.invalidate(ctx)
	return nil
}

// invalidate runs synchronously with the mutating request so no later read
// can see the pre-mutation grouping.
func (u *Skill) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, CategorizedSkillsCacheKey); err != nil && u.logger != nil {
		u.logger.Printf("[Skills] cache invalidation failed: %v", err)
	}
}

func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "Other", nil
	}
	if _, ok := skillCategories[category]; !ok {
		return "", ErrInvalidCategory
	}
	return category, nil
}
