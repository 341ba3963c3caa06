package worker

// RunEvent mirrors the payload published on the run lifecycle topic.
type RunEvent struct {
	Event         string `json:"event"`
	RunID         string `json:"run_id"`
	Status        string `json:"status"`
	Products      int    `json:"products"`
	ChunksFailed  int    `json:"chunks_failed"`
	CorrelationID string `json:"correlation_id"`
}

// ExportEvent mirrors the payload published on the export topic.
type ExportEvent struct {
	RunID         string `json:"run_id"`
	Format        string `json:"format"`
	Filename      string `json:"filename"`
	CorrelationID string `json:"correlation_id"`
}
