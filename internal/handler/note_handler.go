package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"simple-notes-server/internal/domain"
	"simple-notes-server/internal/middleware"
	"simple-notes-server/internal/service"
	"simple-notes-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewNoteHandler(service *service.NoteService, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "Title and content are required")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, r, err, "failed to create note")
		return
	}

	response.Data(w, http.StatusCreated, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "failed to list notes")
		return
	}

	response.Data(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Get(r.Context(), userID, noteID)
	if err != nil {
		h.writeError(w, r, err, "failed to get note")
		return
	}

	response.Data(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Update(r.Context(), userID, noteID, &req)
	if err != nil {
		h.writeError(w, r, err, "failed to update note")
		return
	}

	response.Data(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.Delete(r.Context(), userID, noteID); err != nil {
		h.writeError(w, r, err, "failed to delete note")
		return
	}

	response.Deleted(w)
}

// writeError maps domain errors to statuses. Store faults get a generic 500
// body; the detail stays in the server log only.
func (h *NoteHandler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNoteNotFound):
		response.NotFound(w, "Not found")
	case errors.As(err, &validationErr):
		response.BadRequest(w, validationErr.Error())
	default:
		h.logger.WithFields(logrus.Fields{
			"path":  r.URL.Path,
			"error": err.Error(),
		}).Error(msg)
		response.InternalError(w, "Internal server error")
	}
}
