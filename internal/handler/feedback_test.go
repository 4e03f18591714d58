package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedboard/feedboard/internal/handler/dto"
	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/service"
	"github.com/feedboard/feedboard/internal/store"
	"github.com/feedboard/feedboard/internal/testutil"
)

func newFeedbackRouter(t *testing.T, entries ...model.Entry) (http.Handler, *store.MemoryStore) {
	t.Helper()

	st := store.NewMemoryStore(entries...)
	svc := service.NewFeedbackService(st, nil)
	h := NewFeedbackHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Get("/feedback", h.List)
	r.Post("/feedback", h.Create)
	r.Get("/feedback/{id}", h.Get)
	r.Put("/feedback/{id}/vote", h.Vote)
	r.Delete("/feedback/{id}", h.Delete)
	return r, st
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestFeedbackHandler_ListEmpty(t *testing.T) {
	r, _ := newFeedbackRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/feedback", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestFeedbackHandler_CreateThenList(t *testing.T) {
	r, st := newFeedbackRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/feedback", `{"name":"A","email":"a@x.com","message":"hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "A", created.Name)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "hi", created.Message)
	assert.Equal(t, 0, created.Votes)

	rec = doRequest(t, r, http.MethodGet, "/feedback", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []model.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, []model.Entry{created}, list)
	assert.Equal(t, model.Collection{created}, st.Entries())
}

func TestFeedbackHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing message", body: `{"name":"A","email":"a@x.com"}`},
		{name: "empty name", body: `{"name":"","email":"a@x.com","message":"hi"}`},
		{name: "empty object", body: `{}`},
		{name: "no body", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := testutil.NewTestEntry(t, "keep")
			r, st := newFeedbackRouter(t, existing)

			rec := doRequest(t, r, http.MethodPost, "/feedback", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, "MISSING_FIELDS", resp.Code)
			assert.Equal(t, "Name, email, and message are required", resp.Error)
			assert.NotEmpty(t, resp.Details)
			assert.Equal(t, model.Collection{existing}, st.Entries())
		})
	}
}

func TestFeedbackHandler_CreateInvalidJSON(t *testing.T) {
	r, st := newFeedbackRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/feedback", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", decodeError(t, rec).Code)
	assert.Equal(t, 0, st.Saves())
}

func TestFeedbackHandler_Get(t *testing.T) {
	entry := testutil.NewTestEntryWithVotes(t, "seen", 4)
	r, _ := newFeedbackRouter(t, entry)

	rec := doRequest(t, r, http.MethodGet, "/feedback/"+entry.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, entry, got)

	rec = doRequest(t, r, http.MethodGet, "/feedback/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "FEEDBACK_NOT_FOUND", decodeError(t, rec).Code)
}

func TestFeedbackHandler_VoteUpThenDown(t *testing.T) {
	entry := testutil.NewTestEntry(t, "voter")
	r, st := newFeedbackRouter(t, entry)
	path := "/feedback/" + entry.ID + "/vote"

	rec := doRequest(t, r, http.MethodPut, path, `{"direction":"up"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Entry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 1, got.Votes)
	assert.Equal(t, entry.ID, got.ID)

	rec = doRequest(t, r, http.MethodPut, path, `{"direction":"down"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 0, got.Votes)
	assert.Equal(t, 0, st.Entries()[0].Votes)
}

func TestFeedbackHandler_VoteInvalidDirection(t *testing.T) {
	entry := testutil.NewTestEntryWithVotes(t, "steady", 2)
	r, st := newFeedbackRouter(t, entry)
	path := "/feedback/" + entry.ID + "/vote"

	for _, body := range []string{`{"direction":"sideways"}`, `{}`, ""} {
		rec := doRequest(t, r, http.MethodPut, path, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		resp := decodeError(t, rec)
		assert.Equal(t, "INVALID_DIRECTION", resp.Code)
		assert.Equal(t, "Invalid vote direction", resp.Error)
	}

	assert.Equal(t, 2, st.Entries()[0].Votes)
	assert.Equal(t, 0, st.Saves())
}

func TestFeedbackHandler_VoteUnknownID(t *testing.T) {
	r, st := newFeedbackRouter(t)

	rec := doRequest(t, r, http.MethodPut, "/feedback/nope/vote", `{"direction":"up"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "FEEDBACK_NOT_FOUND", resp.Code)
	assert.Equal(t, "Feedback not found", resp.Error)
	assert.Equal(t, 0, st.Saves())
}

func TestFeedbackHandler_Delete(t *testing.T) {
	a := testutil.NewTestEntry(t, "a")
	b := testutil.NewTestEntry(t, "b")
	r, st := newFeedbackRouter(t, a, b)

	rec := doRequest(t, r, http.MethodDelete, "/feedback/"+a.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
	assert.Equal(t, model.Collection{b}, st.Entries())

	rec = doRequest(t, r, http.MethodDelete, "/feedback/"+a.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "FEEDBACK_NOT_FOUND", decodeError(t, rec).Code)
	assert.Equal(t, model.Collection{b}, st.Entries())
}

func TestFeedbackHandler_CreateLogsFingerprintNotEmail(t *testing.T) {
	var buf bytes.Buffer
	st := store.NewMemoryStore()
	h := NewFeedbackHandler(service.NewFeedbackService(st, nil), slog.New(slog.NewJSONHandler(&buf, nil)))

	req := httptest.NewRequest(http.MethodPost, "/feedback",
		strings.NewReader(`{"name":"A","email":"secret@x.com","message":"hi"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, buf.String(), `"msg":"feedback_created"`)
	assert.Contains(t, buf.String(), emailFingerprint("secret@x.com"))
	assert.NotContains(t, buf.String(), "secret@x.com")
}
