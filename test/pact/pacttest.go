//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "order-api"
	ConsumerName = "order-portal"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id 301 exists"
	StateOrderMissing   = "no order with id 404"
)

const (
	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 404

	ExistingMemberID int64 = 501
	ExistingItemID   int64 = 601
)

const (
	ExampleMemberName = "pact-member"
	ExampleItemName   = "Pact Driven Development"
	ExampleOrderedAt  = "2026-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the order portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable test data for order view interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"orderId":    ExistingOrderID,
		"memberName": ExampleMemberName,
		"orderedAt":  ExampleOrderedAt,
		"status":     "ORDER",
		"address": map[string]any{
			"city":    "Seoul",
			"street":  "pact street",
			"zipcode": "04524",
		},
		"lines": []map[string]any{
			{
				"itemName": ExampleItemName,
				"price":    int64(10000),
				"count":    2,
			},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
