package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"budget-tracker/internal/config"
	"budget-tracker/internal/database"
	"budget-tracker/internal/router"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires the real router onto a fresh in-memory database.
// The shared-cache DSN is keyed by test name so tests stay isolated.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		App:    config.AppSubConfig{PageSize: 10},
	}
	return router.SetupRouter(cfg, db)
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	m := decode(t, w)
	msg, _ := m["error"].(string)
	return msg
}

func createCategory(t *testing.T, r http.Handler, name string) uint {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/categories", map[string]interface{}{"name": name})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category %q: status = %d, body = %s", name, w.Code, w.Body.String())
	}
	m := decode(t, w)
	cat, ok := m["category"].(map[string]interface{})
	if !ok {
		t.Fatalf("create category %q: missing category in %v", name, m)
	}
	id, ok := cat["id"].(float64)
	if !ok {
		t.Fatalf("create category %q: missing id in %v", name, cat)
	}
	return uint(id)
}

func createTransaction(t *testing.T, r http.Handler, date string, amount float64, categoryID uint, notes string) uint {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/transactions", map[string]interface{}{
		"date":        date,
		"amount":      amount,
		"category_id": categoryID,
		"notes":       notes,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create transaction: status = %d, body = %s", w.Code, w.Body.String())
	}
	m := decode(t, w)
	txn, ok := m["transaction"].(map[string]interface{})
	if !ok {
		t.Fatalf("create transaction: missing transaction in %v", m)
	}
	id, ok := txn["id"].(float64)
	if !ok {
		t.Fatalf("create transaction: missing id in %v", txn)
	}
	return uint(id)
}

// listItems extracts the named array field from a decoded response.
func listItems(t *testing.T, m map[string]interface{}, field string) []map[string]interface{} {
	t.Helper()
	raw, ok := m[field].([]interface{})
	if !ok {
		t.Fatalf("response has no %q array: %v", field, m)
	}
	items := make([]map[string]interface{}, 0, len(raw))
	for _, v := range raw {
		item, ok := v.(map[string]interface{})
		if !ok {
			t.Fatalf("%s item is not an object: %v", field, v)
		}
		items = append(items, item)
	}
	return items
}
