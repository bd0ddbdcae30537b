package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryMutationIssuesOneNotice(t *testing.T) {
	c := testCart()

	c.AddItem(torta, 2, Personalization{})
	n := c.Notice()
	require.NotNil(t, n)
	assert.Equal(t, SeveritySuccess, n.Severity)
	assert.Contains(t, n.Message, "2 x Torta Cuadrada de Chocolate")

	c.UpdateQuantity(1, Personalization{}, 5)
	n = c.Notice()
	require.NotNil(t, n)
	assert.Equal(t, SeverityInfo, n.Severity)

	c.RemoveItem(1)
	n = c.Notice()
	require.NotNil(t, n)
	assert.Equal(t, SeverityInfo, n.Severity)
	assert.Contains(t, n.Message, "Removed")
}

func TestNoticeTokensAreMonotonic(t *testing.T) {
	c := testCart()

	first := c.Notify("uno", SeverityInfo)
	second := c.Notify("dos", SeverityInfo)
	third := c.Notify("tres", SeverityError)

	assert.Greater(t, second.Token, first.Token)
	assert.Greater(t, third.Token, second.Token)
}

func TestLastWriteWins(t *testing.T) {
	c := testCart()

	c.Notify("primero", SeverityInfo)
	c.Notify("segundo", SeveritySuccess)

	n := c.Notice()
	require.NotNil(t, n)
	assert.Equal(t, "segundo", n.Message)
	assert.Equal(t, SeveritySuccess, n.Severity)
}

func TestNoticeAutoClearsAfterTTL(t *testing.T) {
	c := testCart() // 50ms TTL

	c.Notify("transitorio", SeverityInfo)
	require.NotNil(t, c.Notice())

	time.Sleep(100 * time.Millisecond)
	assert.Nil(t, c.Notice(), "notice must auto-clear after the TTL")
}

func TestSupersedingCancelsPendingDismiss(t *testing.T) {
	c := testCart() // 50ms TTL

	c.Notify("viejo", SeverityInfo)
	time.Sleep(30 * time.Millisecond)

	// Supersede just before the first timer fires. The old dismissal must
	// not clear the new notice.
	fresh := c.Notify("nuevo", SeveritySuccess)
	time.Sleep(30 * time.Millisecond)

	n := c.Notice()
	require.NotNil(t, n, "superseded timer must not clear the newer notice")
	assert.Equal(t, fresh.Token, n.Token)
	assert.Equal(t, "nuevo", n.Message)

	// And the new notice still expires on its own schedule.
	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, c.Notice())
}

func TestDefaultTTLIsThreeSeconds(t *testing.T) {
	assert.Equal(t, 3*time.Second, NoticeTTL)
}
