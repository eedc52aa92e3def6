package runlog

type ImportRunResponse struct {
	ID               string  `json:"id"`
	CreatedAt        string  `json:"created_at"`
	ActorID          string  `json:"actor_id"`
	Source           string  `json:"source"`
	DryRun           bool    `json:"dry_run"`
	DefaultProjectID *string `json:"default_project_id,omitempty"`
	ItemsCount       int     `json:"items_count"`
	CreatedCount     int     `json:"created_count"`
	UpdatedCount     int     `json:"updated_count"`
	ErrorCount       int     `json:"error_count"`
}

type GenerationRunResponse struct {
	ID           string  `json:"id"`
	CreatedAt    string  `json:"created_at"`
	ActorID      string  `json:"actor_id"`
	DryRun       bool    `json:"dry_run"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	WorkerID     *string `json:"worker_id,omitempty"`
	ItemsCount   int     `json:"items_count"`
	CreatedCount int     `json:"created_count"`
	UpdatedCount int     `json:"updated_count"`
	SkippedCount int     `json:"skipped_count"`
	ErrorCount   int     `json:"error_count"`
}
