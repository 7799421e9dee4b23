package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// handleCurrentWorkout resolves the client's next workout. The result is
// always 200 with a typed status in the body; absence of a program or
// schedule is a normal outcome, not an HTTP error.
func (s *Server) handleCurrentWorkout(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid client ID"})
		return
	}

	info := s.resolver.CurrentWorkout(r.Context(), clientID)
	writeJSON(w, http.StatusOK, info)
}

// handleCompleteDay marks the client's current training day done and
// advances their progress pointer.
func (s *Server) handleCompleteDay(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid client ID"})
		return
	}

	info := s.resolver.CompleteCurrentDay(r.Context(), clientID)
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	client, err := s.db.CreateClient(r.Context(), req.Name, req.Email)
	if err != nil {
		s.log.Error("creating client", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not create client"})
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.db.ListClients(r.Context())
	if err != nil {
		s.log.Error("listing clients", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list clients"})
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	tmpl, err := s.db.CreateTemplate(r.Context(), req.Name, req.Description)
	if err != nil {
		s.log.Error("creating template", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not create template"})
		return
	}
	writeJSON(w, http.StatusCreated, tmpl)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.db.ListTemplates(r.Context())
	if err != nil {
		s.log.Error("listing templates", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list templates"})
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string  `json:"name"`
		Description   *string `json:"description"`
		DurationWeeks int     `json:"duration_weeks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	program, err := s.db.CreateProgram(r.Context(), req.Name, req.Description, req.DurationWeeks)
	if err != nil {
		s.log.Error("creating program", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not create program"})
		return
	}
	writeJSON(w, http.StatusCreated, program)
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.db.ListPrograms(r.Context())
	if err != nil {
		s.log.Error("listing programs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list programs"})
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleGetProgramSchedule(w http.ResponseWriter, r *http.Request) {
	programID, err := uuid.Parse(chi.URLParam(r, "programID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return
	}

	rows, err := s.db.ScheduleRows(r.Context(), programID)
	if err != nil {
		s.log.Error("fetching schedule", "program_id", programID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load schedule"})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleAddScheduleRow(w http.ResponseWriter, r *http.Request) {
	programID, err := uuid.Parse(chi.URLParam(r, "programID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return
	}

	var req struct {
		WeekNumber int       `json:"week_number"`
		DayOfWeek  int       `json:"day_of_week"`
		TemplateID uuid.UUID `json:"template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.WeekNumber < 1 || req.DayOfWeek < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "week_number and day_of_week must be positive"})
		return
	}

	row := models.ScheduleRow{
		ID:         uuid.New(),
		ProgramID:  programID,
		WeekNumber: req.WeekNumber,
		DayOfWeek:  req.DayOfWeek,
		TemplateID: req.TemplateID,
	}
	inserted, err := s.db.InsertScheduleRow(r.Context(), row)
	if err != nil {
		s.log.Error("adding schedule row", "program_id", programID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not add schedule row"})
		return
	}
	if !inserted {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a workout is already scheduled for that week and day"})
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProgramID uuid.UUID `json:"program_id"`
		ClientID  uuid.UUID `json:"client_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	assignment, err := s.db.CreateAssignment(r.Context(), req.ProgramID, req.ClientID)
	if err != nil {
		s.log.Error("creating assignment", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not create assignment"})
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

func (s *Server) handleListClientAssignments(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid client ID"})
		return
	}

	assignments, err := s.db.AssignmentsByClient(r.Context(), clientID)
	if err != nil {
		s.log.Error("listing assignments", "client_id", clientID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list assignments"})
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (s *Server) handleSetAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := uuid.Parse(chi.URLParam(r, "assignmentID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid assignment ID"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	switch req.Status {
	case models.AssignmentActive, models.AssignmentPaused, models.AssignmentCompleted:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be active, paused, or completed"})
		return
	}

	if err := s.db.SetAssignmentStatus(r.Context(), assignmentID, req.Status); err != nil {
		s.log.Error("updating assignment status", "assignment_id", assignmentID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not update assignment"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
