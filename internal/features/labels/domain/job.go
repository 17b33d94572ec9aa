package domain

import (
	"time"

	"label-printer/internal/features/labels/templates"
)

// JobState is the outcome of assembling a batch.
type JobState string

const (
	// JobStateReady means at least one label was assembled.
	JobStateReady JobState = "ready"
	// JobStateNoData means every requested order failed to resolve.
	JobStateNoData JobState = "no_data"
)

// Job is one print request: the labels that resolved, in request order, and the ids that did not.
type Job struct {
	ID        string
	Template  templates.Template
	Requested []string
	Labels    []Label
	Missing   []string
	State     JobState
	CreatedAt time.Time
}

// Resolved returns the number of labels in the job.
func (j *Job) Resolved() int {
	return len(j.Labels)
}

// Empty reports whether nothing can be printed.
func (j *Job) Empty() bool {
	return len(j.Labels) == 0
}

// Finalize sets State from the assembled labels.
func (j *Job) Finalize() {
	if j.Empty() {
		j.State = JobStateNoData
		return
	}
	j.State = JobStateReady
}

// JobSummary is the persisted, print-free view of a job.
type JobSummary struct {
	ID          string               `json:"id"`
	Carrier     string               `json:"carrier"`
	Format      templates.PageFormat `json:"format"`
	State       JobState             `json:"state"`
	Requested   []string             `json:"requested"`
	ResolvedIDs []string             `json:"resolved_ids"`
	Missing     []string             `json:"missing"`
	Surrogates  []string             `json:"surrogates"`
	Output      string               `json:"output,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// Summary returns the diagnostic summary of the job.
func (j *Job) Summary() JobSummary {
	s := JobSummary{
		ID:          j.ID,
		Carrier:     j.Template.Key,
		Format:      j.Template.Format,
		State:       j.State,
		Requested:   append([]string{}, j.Requested...),
		ResolvedIDs: make([]string, 0, len(j.Labels)),
		Missing:     append([]string{}, j.Missing...),
		Surrogates:  []string{},
		CreatedAt:   j.CreatedAt,
	}
	for _, l := range j.Labels {
		s.ResolvedIDs = append(s.ResolvedIDs, l.OrderID)
		if l.TrackingSurrogate {
			s.Surrogates = append(s.Surrogates, l.OrderID)
		}
	}
	return s
}
