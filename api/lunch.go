package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/iamdew/yellostory-lunch/models"
	"github.com/iamdew/yellostory-lunch/services"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type listResponse struct {
	Success bool               `json:"success"`
	Items   []models.LunchMenu `json:"items"`
}

type createResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Content *models.LunchMenu `json:"content"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type messageRequest struct {
	Content string `json:"content"`
}

// handleList handles GET /lunch
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.LunchFilter{
		Category:  q.Get("category"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
	items, err := s.lunch.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Success: true, Items: items})
}

// handleResolve serves the menu of a day relative to today, or null.
func (s *Server) handleResolve(d services.Day) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lunch, err := s.lunch.Resolve(r.Context(), d)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		observeLookup(d, lunch != nil)
		respondJSON(w, http.StatusOK, lunch)
	}
}

// handleKeyboard handles GET /lunch/keyboard
func (s *Server) handleKeyboard(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, services.Keyboard())
}

// handleMessage handles POST /lunch/message
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeJSONBody(r, &req) {
		req.Content = r.PostFormValue("content")
	}
	resp, err := s.lunch.Reply(r.Context(), req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	observeReply(req.Content)
	respondJSON(w, http.StatusOK, resp)
}

// handleCreate handles POST /lunch. Registering an existing
// (date, category) overwrites its foods.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in services.CreateLunchInput
	if !decodeJSONBody(r, &in) {
		in = services.CreateLunchInput{
			Date:     r.PostFormValue("date"),
			Category: r.PostFormValue("category"),
			Foods:    r.PostFormValue("foods"),
		}
	}
	lunch, err := s.lunch.Register(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	requestLogger(s.log, r).Info("lunch registered",
		zap.String("date", lunch.Date),
		zap.String("category", lunch.Category),
		zap.Int64("id", lunch.ID),
	)
	respondJSON(w, http.StatusOK, createResponse{
		Success: true,
		Message: "registered successfully",
		Content: lunch,
	})
}

// handleRemove handles DELETE /lunch
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := services.RemoveLunchInput{
		Date:     q.Get("date"),
		Category: q.Get("category"),
	}
	if err := s.lunch.Remove(r.Context(), in); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{Success: true, Message: "removed successfully"})
}

// writeServiceError maps validation failures to 400 and everything else to 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		setOutcome(w, outcomeInvalid)
		respondJSON(w, http.StatusBadRequest, statusResponse{
			Success: false,
			Code:    verr.Code,
			Message: verr.Message,
		})
		return
	}
	setOutcome(w, outcomeStoreError)
	requestLogger(s.log, r).Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}

// decodeJSONBody decodes a JSON request body into dst. It reports false when
// the request is not JSON so the caller can fall back to form values. A
// malformed JSON body leaves dst zero and lets validation report the first
// missing field.
func decodeJSONBody(r *http.Request, dst any) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return false
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(body) == 0 {
		return true
	}
	_ = json.Unmarshal(body, dst)
	return true
}
