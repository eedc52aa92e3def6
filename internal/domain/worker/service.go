package worker

import "context"

// WorkerService manages the roster.
type WorkerService interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	Get(ctx context.Context, id string) (WorkerResponse, error)
	List(ctx context.Context, filter WorkerFilter) (ListWorkersResponse, error)
}
