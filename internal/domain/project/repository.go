package project

import "context"

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (Project, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]Project, error)
}
