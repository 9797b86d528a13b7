package resolver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestResolve_BuiltInOrderStatusIsStable(t *testing.T) {
	// Arrange
	reg := NewRegistry("", "", zap.NewNop())
	args := map[string]interface{}{"order_id": "123"}

	// Act
	first, err1 := reg.Resolve(context.Background(), "order_status", args)
	second, err2 := reg.Resolve(context.Background(), "order_status", args)

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("Expected no errors, got %v / %v", err1, err2)
	}
	if first["order_id"] != "123" {
		t.Errorf("Expected echoed order id, got %v", first)
	}
	if first["status"] != second["status"] {
		t.Errorf("Expected stable status for the same order, got %v vs %v", first["status"], second["status"])
	}
}

func TestResolve_UnknownNameWithoutIntegrationFails(t *testing.T) {
	// Arrange
	reg := NewRegistry("", "", zap.NewNop())

	// Act
	_, err := reg.Resolve(context.Background(), "crystal_ball", nil)

	// Assert
	if err == nil {
		t.Error("Expected error for unregistered resolver")
	}
}

func TestResolve_CustomHandlerWins(t *testing.T) {
	// Arrange
	reg := NewRegistry("", "", zap.NewNop())
	reg.Register("loyalty_points", func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
		return map[string]interface{}{"points": 42}, nil
	})

	// Act
	result, err := reg.Resolve(context.Background(), "loyalty_points", nil)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result["points"] != 42 {
		t.Errorf("Expected custom handler result, got %v", result)
	}
}

func TestResolve_PassthroughPostsArgs(t *testing.T) {
	// Arrange
	var gotPath, gotAuth string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))
	defer server.Close()
	reg := NewRegistry(server.URL, "secret", zap.NewNop())

	// Act
	result, err := reg.Resolve(context.Background(), "warranty_check", map[string]interface{}{"sku": "X1"})

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotPath != "/warranty_check" {
		t.Errorf("Expected resolver name as path, got %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if !reflect.DeepEqual(gotBody, map[string]interface{}{"sku": "X1"}) {
		t.Errorf("Expected args forwarded, got %v", gotBody)
	}
	if result["ok"] != true {
		t.Errorf("Expected decoded response, got %v", result)
	}
}
