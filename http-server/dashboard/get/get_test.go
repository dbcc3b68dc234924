package get

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"team-portal/internal/storage"
)

type MockSnapshotProvider struct {
	mock.Mock
}

func (m *MockSnapshotProvider) Snapshot(ctx context.Context, from, to string) (*storage.Snapshot, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Snapshot), args.Error(1)
}

func dashboardSnapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Persons: []storage.Person{
			{ID: "lead", Name: "Lead", Role: "BM", Unit: storage.UnitLead},
			{ID: "sup", Name: "Sup", Role: "BOS", Unit: storage.UnitBOS},
			{ID: "teller", Name: "Teller", Role: "Teller", Unit: storage.UnitBOS},
			{ID: "sgp", Name: "Dodi", Role: "SGP", Unit: storage.UnitMBM},
		},
		Products: []storage.Product{
			{Name: "KUR", Type: storage.TypeMoney},
			{Name: "LIVIN", Type: storage.TypeUnit},
		},
		Achievements: []storage.Achievement{
			{ID: "1", PersonID: "sgp", Product: "KUR", Amount: 400000, Date: "2024-03-10"},
			{ID: "2", PersonID: "teller", Product: "LIVIN", Amount: 3, Date: "2024-03-11"},
		},
		Targets: storage.Targets{
			"sgp":    {"KUR": 1000000, "LIVIN": 0},
			"teller": {"KUR": 0, "LIVIN": 10},
		},
		Allowed: storage.Allowed{
			"sgp":    {"KUR": true, "LIVIN": false},
			"teller": {"KUR": false, "LIVIN": true},
		},
	}
}

func TestDashboard_Overview(t *testing.T) {
	provider := new(MockSnapshotProvider)
	provider.On("Snapshot", mock.Anything, "", "").Return(dashboardSnapshot(), nil)

	handler := Dashboard(slog.Default(), provider)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.True(t, resp.Ok)
	assert.Equal(t, 3, resp.TotalMembers, "LEAD is not a member")
	assert.Equal(t, 400000.0, resp.Micro)
	assert.Equal(t, 3.0, resp.Operational)
	assert.Len(t, resp.Units, 4)
}

func TestDashboard_SingleUnitHidesDisallowedCells(t *testing.T) {
	provider := new(MockSnapshotProvider)
	provider.On("Snapshot", mock.Anything, "", "").Return(dashboardSnapshot(), nil)

	handler := Dashboard(slog.Default(), provider)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?unit=MBM", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Units, 1)
	unit := resp.Units[0]
	assert.Equal(t, storage.UnitMBM, unit.Unit)
	assert.Equal(t, []string{"KUR"}, unit.Products, "LIVIN is disallowed for every MBM member")

	require.Len(t, unit.People, 1)
	require.Len(t, unit.People[0].Cells, 1, "only the permitted product gets a cell")
	cell := unit.People[0].Cells[0]
	assert.Equal(t, "KUR", cell.Product)
	assert.Equal(t, 400000.0, cell.Value)
	assert.Equal(t, 40, cell.Percent)
	assert.True(t, cell.HasTarget)
}

func TestDashboard_SupervisorRowsExcluded(t *testing.T) {
	provider := new(MockSnapshotProvider)
	provider.On("Snapshot", mock.Anything, "", "").Return(dashboardSnapshot(), nil)

	handler := Dashboard(slog.Default(), provider)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?unit=BOS", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Units, 1)
	require.Len(t, resp.Units[0].People, 1)
	assert.Equal(t, "teller", resp.Units[0].People[0].ID)
}

func TestDashboard_UnknownUnit(t *testing.T) {
	handler := Dashboard(slog.Default(), new(MockSnapshotProvider))
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?unit=NOPE", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDashboard_StorageError(t *testing.T) {
	provider := new(MockSnapshotProvider)
	provider.On("Snapshot", mock.Anything, "", "").Return(nil, assert.AnError)

	handler := Dashboard(slog.Default(), provider)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
