package model

import "time"

// RunRecord is the persisted history entry of one worker run
type RunRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	URL        string    `gorm:"not null;index" json:"url"`
	Format     string    `gorm:"size:8" json:"format"`
	Quality    string    `gorm:"size:16" json:"quality"`
	Status     RunStatus `gorm:"size:16;index" json:"status"`
	Title      string    `json:"title,omitempty"`
	Filename   string    `json:"filename,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// TableName overrides the gorm table name
func (RunRecord) TableName() string {
	return "runs"
}

// Elapsed returns the wall time between start and finish
func (r *RunRecord) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
