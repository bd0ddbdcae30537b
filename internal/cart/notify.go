package cart

import "time"

//
// --- Single-Slot Notification ---
//
// A cart carries at most one transient notice at a time: the toast shown to
// the shopper after their last action. A new notice supersedes the current
// one immediately and cancels its pending auto-dismiss; only the latest
// notice is ever visible. After NoticeTTL without being superseded the slot
// auto-clears to empty. There is no queue.
//

// NoticeTTL is how long a notice stays visible unless superseded.
const NoticeTTL = 3000 * time.Millisecond

// Notice severities
const (
	SeveritySuccess = "success"
	SeverityInfo    = "info"
	SeverityError   = "error"
)

// Notice is one transient message. Token is monotonically increasing per
// cart, so a stale dismiss timer can recognize it has been superseded.
type Notice struct {
	Token    int64  `json:"token"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Notify publishes a notice, replacing whatever is currently showing.
func (c *Cart) Notify(message, severity string) Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notify(message, severity)
}

// notify is the internal entry point used by cart mutations.
// Caller must hold c.mu.
func (c *Cart) notify(message, severity string) Notice {
	// Cancel the previous auto-dismiss so it can never clear the new notice.
	if c.timer != nil {
		c.timer.Stop()
	}

	c.noticeSeq++
	token := c.noticeSeq
	c.notice = &Notice{Token: token, Message: message, Severity: severity}

	c.timer = time.AfterFunc(c.noticeTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// Stop() cannot cancel a timer whose callback already started, so
		// the token check is what keeps a stale dismiss from clearing a
		// newer notice.
		if c.notice != nil && c.notice.Token == token {
			c.notice = nil
			c.timer = nil
		}
	})

	return *c.notice
}

// Notice returns the currently visible notice, or nil when the slot is empty.
func (c *Cart) Notice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}
