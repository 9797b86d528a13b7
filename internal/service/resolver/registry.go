package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/infrastructure/circuitbreaker"
)

// Handler fetches external data for one fetch-action decision.
type Handler func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error)

// Registry dispatches fetch actions by resolver name. Unregistered names
// fall through to the configured integration API when one exists.
type Registry struct {
	handlers   map[string]Handler
	baseURL    string
	apiKey     string
	httpClient *circuitbreaker.HTTPClient
	log        *zap.Logger
}

func NewRegistry(baseURL, apiKey string, log *zap.Logger) *Registry {
	r := &Registry{
		handlers:   make(map[string]Handler),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: circuitbreaker.NewHTTPClient(circuitbreaker.DefaultSettings("resolver-api"), log),
		log:        log,
	}
	r.Register("order_status", orderStatus)
	r.Register("return_request", returnRequest)
	r.Register("delivery_tracking", deliveryTracking)
	return r
}

func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

func (r *Registry) Resolve(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	if h, ok := r.handlers[name]; ok {
		return h(ctx, args)
	}
	if r.baseURL != "" {
		return r.passthrough(ctx, name, args)
	}
	return nil, fmt.Errorf("no resolver registered for %q", name)
}

// passthrough posts the args to <baseURL>/<name> on the tenant's integration
// API and returns its JSON body.
func (r *Registry) passthrough(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("resolver: marshal args: %w", err)
	}

	url := r.baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("resolver: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolver: call %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolver: %s returned status %d", name, resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("resolver: decode %s response: %w", name, err)
	}

	r.log.Debug("Resolved via integration API", zap.String("resolver", name))
	return result, nil
}

// The built-in handlers return demo data until a tenant wires a real
// integration. Values derive from the order id so repeated queries for the
// same order stay consistent.

func orderStatus(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	orderID := stringArg(args, "order_id", "0000")
	statuses := []string{"Processing", "Packed", "In Transit", "Out for Delivery", "Delivered"}
	idx := pick(orderID, len(statuses))
	eta := time.Now().UTC().AddDate(0, 0, 1+pick(orderID+"eta", 5)).Format("2006-01-02")
	return map[string]interface{}{
		"order_id": orderID,
		"status":   statuses[idx],
		"eta":      eta,
	}, nil
}

func returnRequest(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	orderID := stringArg(args, "order_id", "0000")
	refundDays := []int{3, 5, 7}
	return map[string]interface{}{
		"order_id":    orderID,
		"return_id":   fmt.Sprintf("R-%04d", 1000+pick(orderID, 9000)),
		"refund_days": refundDays[pick(orderID+"refund", len(refundDays))],
	}, nil
}

func deliveryTracking(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	orderID := stringArg(args, "order_id", "0000")
	couriers := []string{"Sundarban", "Pathao", "RedX", "Paperfly"}
	stages := []string{"At Hub", "In Transit", "Arrived at City", "Out for Delivery"}
	return map[string]interface{}{
		"order_id": orderID,
		"courier":  couriers[pick(orderID+"courier", len(couriers))],
		"stage":    stages[pick(orderID+"stage", len(stages))],
	}, nil
}

func stringArg(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key]; ok && v != nil {
		if s := fmt.Sprint(v); s != "" {
			return s
		}
	}
	return fallback
}

func pick(seed string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return int(h.Sum32() % uint32(n))
}
