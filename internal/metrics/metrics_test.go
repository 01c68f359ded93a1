package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecordAPICall(t *testing.T) {
	m := &Metrics{}

	m.RecordAPICall(10*time.Millisecond, nil)
	m.RecordAPICall(20*time.Millisecond, errors.New("boom"))

	snap := m.GetSnapshot()
	if snap.APICallsTotal != 2 {
		t.Errorf("APICallsTotal = %d, want 2", snap.APICallsTotal)
	}
	if snap.APIErrorsTotal != 1 {
		t.Errorf("APIErrorsTotal = %d, want 1", snap.APIErrorsTotal)
	}
	if snap.APILatencyNanos != (30 * time.Millisecond).Nanoseconds() {
		t.Errorf("APILatencyNanos = %d", snap.APILatencyNanos)
	}
}

func TestRecordConfirmation(t *testing.T) {
	m := &Metrics{}

	m.RecordConfirmation(nil)
	m.RecordConfirmation(errors.New("rejected"))
	m.RecordBalanceCreate()

	snap := m.GetSnapshot()
	if snap.ConfirmationsTotal != 2 {
		t.Errorf("ConfirmationsTotal = %d, want 2", snap.ConfirmationsTotal)
	}
	if snap.ConfirmationsFailed != 1 {
		t.Errorf("ConfirmationsFailed = %d, want 1", snap.ConfirmationsFailed)
	}
	if snap.BalanceCreates != 1 {
		t.Errorf("BalanceCreates = %d, want 1", snap.BalanceCreates)
	}
}

func TestConcurrentRecording(t *testing.T) {
	m := &Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordAPICall(time.Millisecond, nil)
			}
		}()
	}
	wg.Wait()

	if got := m.GetSnapshot().APICallsTotal; got != 1000 {
		t.Errorf("APICallsTotal = %d, want 1000", got)
	}
}

func TestReset(t *testing.T) {
	m := &Metrics{}
	m.RecordAPICall(time.Millisecond, nil)
	m.Reset()

	if snap := m.GetSnapshot(); snap.APICallsTotal != 0 || snap.APILatencyNanos != 0 {
		t.Errorf("Reset() left counters: %+v", snap)
	}
}
