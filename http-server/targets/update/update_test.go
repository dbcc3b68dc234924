package update

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"team-portal/internal/storage"
)

type MockTargetSetter struct {
	mock.Mock
}

func (m *MockTargetSetter) SetTarget(ctx context.Context, personID, product string, value float64) error {
	args := m.Called(ctx, personID, product, value)
	return args.Error(0)
}

func put(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/bm/targets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestUpdateTarget_Success(t *testing.T) {
	setter := new(MockTargetSetter)
	setter.On("SetTarget", mock.Anything, "e1", "KUR", 1000000.0).Return(nil)

	rr := put(UpdateTarget(slog.Default(), setter), `{"personId":"e1","product":"KUR","value":1000000}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	setter.AssertExpectations(t)
}

func TestUpdateTarget_DisallowedPair(t *testing.T) {
	setter := new(MockTargetSetter)
	setter.On("SetTarget", mock.Anything, "e1", "AXA", 5.0).Return(storage.ErrNotAllowed)

	rr := put(UpdateTarget(slog.Default(), setter), `{"personId":"e1","product":"AXA","value":5}`)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUpdateTarget_UnknownPerson(t *testing.T) {
	setter := new(MockTargetSetter)
	setter.On("SetTarget", mock.Anything, "ghost", "KUR", 1.0).Return(storage.ErrNotFound)

	rr := put(UpdateTarget(slog.Default(), setter), `{"personId":"ghost","product":"KUR","value":1}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateTarget_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"broken JSON", `{`},
		{"missing person", `{"product":"KUR","value":1}`},
		{"negative value", `{"personId":"e1","product":"KUR","value":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setter := new(MockTargetSetter)

			rr := put(UpdateTarget(slog.Default(), setter), tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			setter.AssertNotCalled(t, "SetTarget")
		})
	}
}
