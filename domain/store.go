package domain

import "context"

// The stores expose the three operations the application needs from the
// document store: insert-one (filling in the generated id), find-one and
// find-all. Record ids are strings at this boundary; stores resolve them and
// return ErrNotFound for ids that are malformed or do not exist.

type UserStore interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

type JobDescriptionStore interface {
	Create(ctx context.Context, job *JobDescription) error
	FindByID(ctx context.Context, id string) (*JobDescription, error)
	FindAll(ctx context.Context) ([]JobDescription, error)
}

type ResumeStore interface {
	Create(ctx context.Context, resume *Resume) error
	FindByID(ctx context.Context, id string) (*Resume, error)
	FindAll(ctx context.Context) ([]Resume, error)
}

type MatchStore interface {
	Create(ctx context.Context, match *Match) error
	FindAll(ctx context.Context) ([]Match, error)
}
