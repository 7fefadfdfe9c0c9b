package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alexbodian/bootlegtag/internal/pipeline"
	"github.com/alexbodian/bootlegtag/internal/setlist"
)

type TagRequest struct {
	Folder string   `json:"folder"`
	Dates  []string `json:"dates"`
}

type ConfirmRequest struct {
	Approve bool `json:"approve"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	Folder      string    `json:"folder"`
	Dates       []string  `json:"dates"`
	Status      JobStatus `json:"status"`
	Progress    int       `json:"progress"`
	Total       int       `json:"total"`
	Album       string    `json:"album,omitempty"`
	Preview     string    `json:"preview,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   string    `json:"created_at"`
	StartedAt   *string   `json:"started_at,omitempty"`
	CompletedAt *string   `json:"completed_at,omitempty"`
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Folder == "" {
		http.Error(w, "Folder is required", http.StatusBadRequest)
		return
	}
	if len(req.Dates) == 0 {
		http.Error(w, "At least one date is required", http.StatusBadRequest)
		return
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "Invalid date (expected YYYY-MM-DD): "+raw, http.StatusBadRequest)
			return
		}
		dates = append(dates, d)
	}

	job := s.jobMgr.CreateJob(req.Folder, dates, s.config)
	s.logger.Info("Created job %s for folder: %s", job.ID, req.Folder)

	// Run the tagging pipeline in the background
	go s.processJob(job)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.jobToResponse(job))
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs := s.jobMgr.ListJobs()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = s.jobToResponse(job)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

func (s *Server) handleJobAction(w http.ResponseWriter, r *http.Request) {
	// Extract job ID from path: /api/jobs/{id}, /api/jobs/{id}/confirm
	// or /api/jobs/{id}/cancel
	path := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	jobID := parts[0]

	// Handle GET /api/jobs/{id}
	if r.Method == http.MethodGet && len(parts) == 1 {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.jobToResponse(job))
		return
	}

	// Handle POST /api/jobs/{id}/confirm
	if r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "confirm" {
		var req ConfirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if _, err := s.jobMgr.GetJob(jobID); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err := s.jobMgr.Confirm(jobID, req.Approve); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		status := "declined"
		if req.Approve {
			status = "confirmed"
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": status})
		return
	}

	// Handle POST /api/jobs/{id}/cancel
	if r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "cancel" {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		if job.Cancel != nil {
			job.Cancel()
		}

		s.jobMgr.UpdateJob(jobID, func(j *Job) {
			j.Status = StatusCancelled
		})

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
		return
	}

	http.Error(w, "Invalid request", http.StatusBadRequest)
}

func (s *Server) processJob(job *Job) {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	// Store cancel function in job
	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Cancel = cancel
		j.Status = StatusRunning
	})

	s.logger.Info("Starting job %s", job.ID)

	declined := false
	hooks := pipeline.Hooks{
		Confirm: func(sess *setlist.Session) bool {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Album = sess.AlbumName()
				j.Preview = sess.Render()
			})

			approve, err := s.jobMgr.AwaitConfirmation(ctx, job.ID)
			if err != nil || !approve {
				declined = true
				return false
			}

			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Status = StatusRunning
			})
			return true
		},
		OnFilesListed: func(total int) {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Total = total
			})
		},
		OnFileDone: func() {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Progress++
			})
		},
	}

	err := pipeline.Run(ctx, job.Config, s.logger, job.Folder, job.Dates, hooks)

	switch {
	case err != nil && ctx.Err() != nil:
		s.logger.Info("Job %s cancelled", job.ID)
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			j.Status = StatusCancelled
		})
	case err != nil:
		s.logger.Error("Job %s failed: %v", job.ID, err)
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			j.Status = StatusFailed
			j.Error = err.Error()
		})
	case declined:
		s.logger.Info("Job %s declined, no changes were made", job.ID)
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			j.Status = StatusCancelled
		})
	default:
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			j.Status = StatusCompleted
		})
		s.logger.Info("Job %s completed successfully", job.ID)
	}
}

func (s *Server) jobToResponse(job *Job) *JobResponse {
	dates := make([]string, len(job.Dates))
	for i, d := range job.Dates {
		dates[i] = d.Format("2006-01-02")
	}

	resp := &JobResponse{
		ID:        job.ID,
		Folder:    job.Folder,
		Dates:     dates,
		Status:    job.Status,
		Progress:  job.Progress,
		Total:     job.Total,
		Album:     job.Album,
		Preview:   job.Preview,
		Error:     job.Error,
		CreatedAt: job.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if job.StartedAt != nil {
		started := job.StartedAt.Format("2006-01-02 15:04:05")
		resp.StartedAt = &started
	}

	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &completed
	}

	return resp
}
