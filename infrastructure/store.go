package infrastructure

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"jobmatcher/domain"
)

// Gorm-backed implementations of the domain store interfaces. Numeric record
// ids cross the API boundary as strings; ids that do not parse resolve to
// ErrNotFound like any other unknown id.

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

type JobDescriptionStore struct {
	db *gorm.DB
}

func NewJobDescriptionStore(db *gorm.DB) *JobDescriptionStore {
	return &JobDescriptionStore{db: db}
}

func (s *JobDescriptionStore) Create(ctx context.Context, job *domain.JobDescription) error {
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *JobDescriptionStore) FindByID(ctx context.Context, id string) (*domain.JobDescription, error) {
	numeric, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var job domain.JobDescription
	if err := s.db.WithContext(ctx).First(&job, numeric).Error; err != nil {
		return nil, translateErr(err)
	}
	return &job, nil
}

func (s *JobDescriptionStore) FindAll(ctx context.Context) ([]domain.JobDescription, error) {
	var jobs []domain.JobDescription
	if err := s.db.WithContext(ctx).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

type ResumeStore struct {
	db *gorm.DB
}

func NewResumeStore(db *gorm.DB) *ResumeStore {
	return &ResumeStore{db: db}
}

func (s *ResumeStore) Create(ctx context.Context, resume *domain.Resume) error {
	return s.db.WithContext(ctx).Create(resume).Error
}

func (s *ResumeStore) FindByID(ctx context.Context, id string) (*domain.Resume, error) {
	numeric, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var resume domain.Resume
	if err := s.db.WithContext(ctx).First(&resume, numeric).Error; err != nil {
		return nil, translateErr(err)
	}
	return &resume, nil
}

func (s *ResumeStore) FindAll(ctx context.Context) ([]domain.Resume, error) {
	var resumes []domain.Resume
	if err := s.db.WithContext(ctx).Find(&resumes).Error; err != nil {
		return nil, err
	}
	return resumes, nil
}

type MatchStore struct {
	db *gorm.DB
}

func NewMatchStore(db *gorm.DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) Create(ctx context.Context, match *domain.Match) error {
	return s.db.WithContext(ctx).Create(match).Error
}

func (s *MatchStore) FindAll(ctx context.Context) ([]domain.Match, error) {
	var matches []domain.Match
	if err := s.db.WithContext(ctx).Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func parseID(id string) (uint, error) {
	numeric, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return uint(numeric), nil
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
