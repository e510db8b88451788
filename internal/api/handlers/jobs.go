package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/quotehub/internal/scheduler"
	"github.com/wonny/quotehub/pkg/logger"
)

// JobRunner is the scheduler surface the API needs
type JobRunner interface {
	GetJobStats() map[string]scheduler.JobStats
	GetJobHistory(jobName string) (scheduler.JobHistory, error)
	RunJob(jobName string) (bool, error)
}

// JobsHandler handles scheduler endpoints
type JobsHandler struct {
	runner JobRunner
	logger *logger.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(runner JobRunner, log *logger.Logger) *JobsHandler {
	return &JobsHandler{runner: runner, logger: log}
}

// GetJobs returns per-job run statistics
// GET /api/jobs
func (h *JobsHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.runner.GetJobStats())
}

// GetJobHistory returns the recent runs of one job, oldest first
// GET /api/jobs/{name}/history?failed=true
func (h *JobsHandler) GetJobHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.runner.GetJobHistory(mux.Vars(r)["name"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if r.URL.Query().Get("failed") == "true" {
		history.Results = history.GetFailedResults()
	}
	if history.Results == nil {
		history.Results = []scheduler.JobResult{}
	}
	respondJSON(w, http.StatusOK, history)
}

// RunJob runs a job now
// POST /api/jobs/{name}/run
func (h *JobsHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	ran, err := h.runner.RunJob(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if !ran {
		respondError(w, http.StatusConflict, "job is already running")
		return
	}

	h.logger.WithField("job", name).Info("Job run on request")
	respondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}
