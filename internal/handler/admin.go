package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type entityRequest struct {
	Values map[string]string `validate:"required" json:"values"`
}

func (h *Handler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var body entityRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.entities.Create(r.Context(), chi.URLParam(r, "entity"), body.Values)
	if err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "Created", record)
}

func (h *Handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	record, err := h.entities.Get(r.Context(), chi.URLParam(r, "entity"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "OK", record)
}

func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	offset, err := parseIntParam(r.URL.Query().Get("offset"), 0)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := parseIntParam(r.URL.Query().Get("limit"), 0)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.entities.List(r.Context(), chi.URLParam(r, "entity"), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "OK", records)
}

func (h *Handler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	var body entityRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := h.entities.Update(r.Context(), chi.URLParam(r, "entity"), chi.URLParam(r, "id"), body.Values); err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "Updated", nil)
}

func (h *Handler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	if err := h.entities.Delete(r.Context(), chi.URLParam(r, "entity"), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "Deleted", nil)
}
