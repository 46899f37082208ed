package preview

import "sync"

// HeightMonitor tracks the reported height of one previewed document on
// the host side. Height reports are best-effort, possibly duplicated,
// and possibly out of order across document identities; the monitor
// keeps the latest remote value for the current identity only and
// discards everything aimed at a stale document.
type HeightMonitor struct {
	mu     sync.Mutex
	docID  string
	height int
}

// NewHeightMonitor creates a monitor for the given document identity.
func NewHeightMonitor(docID string) *HeightMonitor {
	return &HeightMonitor{docID: docID}
}

// Retarget switches the monitor to a new document identity, discarding
// the previous measurement. Reports against the old identity are
// dropped from here on.
func (m *HeightMonitor) Retarget(docID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docID == docID {
		return
	}
	m.docID = docID
	m.height = 0
}

// ReportRemote records a height message from the previewed document.
// The most recent report wins. Returns false when the report targets a
// stale identity.
func (m *HeightMonitor) ReportRemote(docID string, height int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if docID != m.docID || height < 0 {
		return false
	}
	m.height = height
	return true
}

// ReportLocal records a fallback host-side measurement of the same
// document. The larger of the local and current value wins, so a
// remote report is never shrunk by a racing local read.
func (m *HeightMonitor) ReportLocal(docID string, height int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if docID != m.docID || height < 0 {
		return false
	}
	if height > m.height {
		m.height = height
	}
	return true
}

// Height returns the current measurement for the active document.
func (m *HeightMonitor) Height() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.height
}
