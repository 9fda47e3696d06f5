package handler_test

import (
	"net/http"
	"testing"
)

func TestSummaryGroupsByCategory(t *testing.T) {
	r := setupRouter(t)
	a := createCategory(t, r, "A")
	createCategory(t, r, "B") // no transactions
	createTransaction(t, r, "2023-10-01", 10.0, a, "")
	createTransaction(t, r, "2023-10-02", 20.0, a, "")

	w := doRequest(t, r, http.MethodGet, "/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	items := listItems(t, decode(t, w), "summary")
	// B has no transactions, so it is absent from the inner join
	if len(items) != 1 {
		t.Fatalf("got %d summary rows, want 1: %v", len(items), items)
	}
	if items[0]["category"] != "A" {
		t.Errorf("category = %v, want %q", items[0]["category"], "A")
	}
	if items[0]["total_spent"] != 30.0 {
		t.Errorf("total_spent = %v, want 30", items[0]["total_spent"])
	}
}

func TestSummaryEmpty(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if items := listItems(t, decode(t, w), "summary"); len(items) != 0 {
		t.Errorf("summary = %v, want empty", items)
	}
}
