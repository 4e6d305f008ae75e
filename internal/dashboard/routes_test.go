package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zulandar/motorpool/internal/models"
	"github.com/zulandar/motorpool/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.DispatchRecord{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	st := store.New(db)
	registerRoutes(router, st)
	return router, st
}

func futureDate(t *testing.T) string {
	t.Helper()
	return time.Now().AddDate(0, 0, 1).Format(models.DateLayout)
}

func TestRosterRoute(t *testing.T) {
	router, st := newTestRouter(t)

	if _, err := st.Add(&models.DispatchRecord{
		DispatchDate: futureDate(t),
		VehicleID:    "軍-1234",
		VehiclePlate: "軍-1234",
		TaskName:     "線巡",
		Commander:    "張三",
		Driver:       "李四",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "派車表單") || !strings.Contains(body, "任務: 線巡") {
		t.Errorf("roster body = %q", body)
	}
}

func TestRosterRoute_Empty(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "目前沒有派車資訊") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestDispatchesRoute(t *testing.T) {
	router, st := newTestRouter(t)

	if _, err := st.Add(&models.DispatchRecord{
		DispatchDate: futureDate(t),
		VehicleID:    "軍-1234",
		TaskName:     "線巡",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dispatches", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var recs []models.DispatchRecord
	if err := json.Unmarshal(w.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 || recs[0].VehicleID != "軍-1234" {
		t.Errorf("dispatches = %+v", recs)
	}
}

func TestCountRoute(t *testing.T) {
	router, st := newTestRouter(t)

	for i := 0; i < 2; i++ {
		if _, err := st.Add(&models.DispatchRecord{
			DispatchDate: futureDate(t),
			VehicleID:    "軍-1234",
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/count", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("count = %d, want 2", out.Count)
	}
}
