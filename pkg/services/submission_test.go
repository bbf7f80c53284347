package services

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ggrmusic/ggr-web/pkg/clients/sheets"
	"github.com/ggrmusic/ggr-web/pkg/models"
	"github.com/ggrmusic/ggr-web/pkg/validation"
)

type fakeSheets struct {
	mu       sync.Mutex
	records  []models.OutboundRecord
	ctxErr   error
	delivery sheets.Delivery
	err      error
}

func (f *fakeSheets) Send(ctx context.Context, record models.OutboundRecord) (sheets.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	f.ctxErr = ctx.Err()
	return f.delivery, f.err
}

func validInput() models.SubscriptionInput {
	return models.SubscriptionInput{
		Email:                   "fan@example.com",
		Phone:                   "555-0100",
		CommunicationFrequency:  "weekly",
		DiscoverySource:         "instagram",
		PreferredPlatform:       "youtube",
		SatisfactionRating:      "5",
		ContentPreferences:      []string{"behind_the_scenes_footage", "other"},
		ContentPreferencesOther: "Polls",
		WouldShare:              "yes",
		ConsentAgreed:           "1",
	}
}

func newTestService(client sheets.Client) (*subscriptionServiceImpl, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fixed := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	return newSubscriptionService(validation.New(), client, logger, func() time.Time { return fixed }), &buf
}

func TestSubmitSuccess(t *testing.T) {
	fake := &fakeSheets{delivery: sheets.Delivery{Status: "success", Row: "42"}}
	svc, logs := newTestService(fake)

	out := svc.Submit(context.Background(), validInput(), RequestMeta{IPAddress: "203.0.113.7"})

	if out.Status != StatusSuccess {
		t.Fatalf("Expected success, got %v", out.Status)
	}
	if out.Message != SuccessMessage {
		t.Errorf("Expected success message, got %q", out.Message)
	}
	if out.Row != "42" || out.ID == "" {
		t.Errorf("Expected row 42 and an id, got %q and %q", out.Row, out.ID)
	}
	if len(fake.records) != 1 {
		t.Fatalf("Expected one record, got %d", len(fake.records))
	}

	want := models.OutboundRecord{
		Timestamp:               "2024-03-01T12:30:00Z",
		Email:                   "fan@example.com",
		Phone:                   "555-0100",
		CommunicationFrequency:  "Weekly Updates",
		DiscoverySource:         "Instagram",
		PreferredPlatform:       "YouTube",
		SatisfactionRating:      5,
		ContentPreferences:      "Behind-the-scenes footage, Other",
		ContentPreferencesOther: "Polls",
		WouldShare:              "Yes",
		ConsentAgreed:           "Yes",
		IPAddress:               "203.0.113.7",
	}
	if diff := cmp.Diff(want, fake.records[0]); diff != "" {
		t.Errorf("Record mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "subscription sent to google sheets") {
		t.Errorf("Expected success log entry, got:\n%s", logs.String())
	}
}

func TestSubmitInvalidInputSkipsDelivery(t *testing.T) {
	fake := &fakeSheets{}
	svc, _ := newTestService(fake)

	in := validInput()
	in.Email = ""
	in.SatisfactionRating = "9"
	out := svc.Submit(context.Background(), in, RequestMeta{})

	if out.Status != StatusInvalidInput {
		t.Fatalf("Expected invalid input, got %v", out.Status)
	}
	want := validation.Errors{
		"email":               {"Email is required"},
		"satisfaction_rating": {"Rating must be between 1 and 5"},
	}
	if diff := cmp.Diff(want, out.FieldErrors); diff != "" {
		t.Errorf("Errors mismatch (-want +got):\n%s", diff)
	}
	if len(fake.records) != 0 {
		t.Errorf("Expected no delivery, got %d", len(fake.records))
	}
}

func TestSubmitRemoteRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error":"duplicate"}`))
	}))
	defer srv.Close()

	svc, logs := newTestService(sheets.NewClient(srv.URL, time.Second))
	out := svc.Submit(context.Background(), validInput(), RequestMeta{})

	if out.Status != StatusDeliveryFailed {
		t.Fatalf("Expected delivery failure, got %v", out.Status)
	}
	if out.Message != FailureMessage {
		t.Errorf("Expected generic failure message, got %q", out.Message)
	}
	if strings.Contains(out.Message, "duplicate") {
		t.Error("Remote reason leaked into visitor message")
	}
	if !strings.Contains(logs.String(), "duplicate") || !strings.Contains(logs.String(), "kind=remote_rejected") {
		t.Errorf("Expected rejection reason in logs, got:\n%s", logs.String())
	}
}

func TestSubmitNotConfigured(t *testing.T) {
	svc, logs := newTestService(sheets.NewClient("", time.Second))
	out := svc.Submit(context.Background(), validInput(), RequestMeta{})

	if out.Status != StatusDeliveryFailed || out.Message != FailureMessage {
		t.Errorf("Expected delivery failure, got %v %q", out.Status, out.Message)
	}
	if !strings.Contains(logs.String(), "kind=configuration_error") {
		t.Errorf("Expected configuration error in logs, got:\n%s", logs.String())
	}
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	fake := &fakeSheets{delivery: sheets.Delivery{Status: "success"}}
	svc, _ := newTestService(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := svc.Submit(ctx, validInput(), RequestMeta{})

	if out.Status != StatusSuccess {
		t.Fatalf("Expected success, got %v", out.Status)
	}
	if fake.ctxErr != nil {
		t.Errorf("Expected live context for delivery, got %v", fake.ctxErr)
	}
}

func TestSubmitLogsHashedSubscriber(t *testing.T) {
	fake := &fakeSheets{delivery: sheets.Delivery{Status: "success"}}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	svc := newSubscriptionService(validation.New(), fake, logger, time.Now)

	svc.Submit(context.Background(), validInput(), RequestMeta{})

	if strings.Contains(buf.String(), "fan@example.com") {
		t.Errorf("Raw email logged at info level:\n%s", buf.String())
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusSuccess:        "success",
		StatusInvalidInput:   "invalid_input",
		StatusDeliveryFailed: "delivery_failed",
		Status(99):           "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}
