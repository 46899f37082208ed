package preview

import "testing"

func TestHeightMonitorKeepsLatest(t *testing.T) {
	m := NewHeightMonitor("doc-1")

	if !m.ReportRemote("doc-1", 300) {
		t.Fatal("report against current identity rejected")
	}
	// Duplicate and out-of-order reports: the latest wins.
	m.ReportRemote("doc-1", 500)
	m.ReportRemote("doc-1", 420)
	if got := m.Height(); got != 420 {
		t.Errorf("height = %d, want latest 420", got)
	}
}

func TestHeightMonitorLocalFallback(t *testing.T) {
	m := NewHeightMonitor("doc-1")
	m.ReportRemote("doc-1", 400)

	// A smaller local read never shrinks a remote report.
	m.ReportLocal("doc-1", 350)
	if got := m.Height(); got != 400 {
		t.Errorf("height = %d, want 400", got)
	}
	m.ReportLocal("doc-1", 450)
	if got := m.Height(); got != 450 {
		t.Errorf("height = %d, want 450", got)
	}
}

func TestHeightMonitorDropsStaleReports(t *testing.T) {
	m := NewHeightMonitor("doc-1")
	m.ReportRemote("doc-1", 400)

	m.Retarget("doc-2")
	if got := m.Height(); got != 0 {
		t.Errorf("height after retarget = %d, want 0", got)
	}
	if m.ReportRemote("doc-1", 999) {
		t.Error("report against the torn-down document must be dropped")
	}
	if m.ReportLocal("doc-1", 999) {
		t.Error("local read against the torn-down document must be dropped")
	}
	if !m.ReportRemote("doc-2", 120) {
		t.Error("report against the new identity rejected")
	}
	if got := m.Height(); got != 120 {
		t.Errorf("height = %d, want 120", got)
	}
}

func TestHeightMonitorRetargetSameIdentity(t *testing.T) {
	m := NewHeightMonitor("doc-1")
	m.ReportRemote("doc-1", 250)
	m.Retarget("doc-1")
	if got := m.Height(); got != 250 {
		t.Errorf("retarget to the same identity must keep the value, got %d", got)
	}
}
