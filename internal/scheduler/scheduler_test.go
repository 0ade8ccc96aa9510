package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/ranch/internal/config"
	"github.com/mamadbah2/ranch/internal/service/reporting"
)

type stubDigests struct {
	digest *reporting.Digest
	err    error
	calls  int
}

func (s *stubDigests) GenerateWeeklyDigest(_ context.Context, now time.Time) (*reporting.Digest, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	d := *s.digest
	d.To = now
	return &d, nil
}

type recordingNotifier struct {
	to, body string
	err      error
}

func (n *recordingNotifier) SendText(_ context.Context, to, body string) error {
	n.to, n.body = to, body
	return n.err
}

func testConfig(recipient string) config.Config {
	return config.Config{
		Reporting: config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "America/Bogota"},
		WhatsApp:  config.WhatsAppConfig{DigestTo: recipient},
	}
}

func TestScheduler_RunDigest(t *testing.T) {
	digests := &stubDigests{digest: &reporting.Digest{Analyses: 2, Farms: 1}}
	notifier := &recordingNotifier{}

	s, err := NewScheduler(testConfig("573001112233"), digests, notifier, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.RunDigest(context.Background()); err != nil {
		t.Fatalf("RunDigest: %v", err)
	}

	if notifier.to != "573001112233" || !strings.Contains(notifier.body, "2 analyses across 1 farms") {
		t.Errorf("sent %q to %q", notifier.body, notifier.to)
	}
}

func TestScheduler_RunDigestWithoutRecipient(t *testing.T) {
	digests := &stubDigests{digest: &reporting.Digest{}}
	notifier := &recordingNotifier{}

	s, err := NewScheduler(testConfig(""), digests, notifier, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.RunDigest(context.Background()); err != nil {
		t.Fatalf("RunDigest: %v", err)
	}
	if digests.calls != 1 || notifier.body != "" {
		t.Errorf("calls = %d, sent = %q", digests.calls, notifier.body)
	}
}

func TestScheduler_Errors(t *testing.T) {
	s, _ := NewScheduler(testConfig("1"), &stubDigests{err: errors.New("mongo down")}, &recordingNotifier{}, nil)
	if err := s.RunDigest(context.Background()); err == nil {
		t.Error("expected generation error")
	}

	s, _ = NewScheduler(testConfig("1"), &stubDigests{digest: &reporting.Digest{}}, &recordingNotifier{err: errors.New("rate limited")}, nil)
	if err := s.RunDigest(context.Background()); err == nil {
		t.Error("expected delivery error")
	}

	bad := testConfig("1")
	bad.Reporting.CronSchedule = "every friday"
	s, _ = NewScheduler(bad, &stubDigests{digest: &reporting.Digest{}}, nil, nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Error("expected invalid schedule error")
	}

	bad = testConfig("1")
	bad.Reporting.Timezone = "Nowhere/Land"
	if _, err := NewScheduler(bad, &stubDigests{}, nil, nil); err == nil {
		t.Error("expected timezone error")
	}
}
