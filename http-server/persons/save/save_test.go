package save

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"team-portal/internal/storage"
)

type MockPersonSaver struct {
	mock.Mock
}

func (m *MockPersonSaver) UpsertPersons(ctx context.Context, persons []storage.Person, cats storage.Categories) error {
	args := m.Called(ctx, persons, cats)
	return args.Error(0)
}

func post(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bm/persons", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestSavePersons_AssignsCategories(t *testing.T) {
	saver := new(MockPersonSaver)

	var gotCats storage.Categories
	saver.On("UpsertPersons", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotCats = args.Get(2).(storage.Categories)
		}).Return(nil)

	handler := SavePersons(slog.Default(), saver)
	rr := post(handler, `{"persons":[
		{"id":"sec-1","name":"Shofiyani","role":"Security","unit":"BOS"},
		{"id":"sgp-1","name":"Dodi","role":"SGP","unit":"MBM"}
	]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, storage.CategoryOperasional, gotCats["sec-1"])
	assert.Equal(t, storage.CategoryMikro, gotCats["sgp-1"])
	saver.AssertExpectations(t)
}

func TestSavePersons_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"broken JSON", `{`},
		{"empty batch", `{"persons":[]}`},
		{"missing id", `{"persons":[{"name":"X","role":"SGP","unit":"MBM"}]}`},
		{"missing name", `{"persons":[{"id":"x","role":"SGP","unit":"MBM"}]}`},
		{"bad unit", `{"persons":[{"id":"x","name":"X","role":"SGP","unit":"HQ"}]}`},
		{"LEAD unit", `{"persons":[{"id":"lead-2","name":"Second BM","role":"BM","unit":"LEAD"}]}`},
		{"LEAD hidden in batch", `{"persons":[
			{"id":"sgp-1","name":"Dodi","role":"SGP","unit":"MBM"},
			{"id":"lead-2","name":"Second BM","role":"BM","unit":"LEAD"}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := new(MockPersonSaver)

			rr := post(SavePersons(slog.Default(), saver), tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			saver.AssertNotCalled(t, "UpsertPersons")
		})
	}
}

func TestSavePersons_StorageError(t *testing.T) {
	saver := new(MockPersonSaver)
	saver.On("UpsertPersons", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	rr := post(SavePersons(slog.Default(), saver), `{"persons":[{"id":"x","name":"X","role":"SGP","unit":"MBM"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
