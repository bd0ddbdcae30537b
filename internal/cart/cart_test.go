package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCart() *Cart {
	// Short TTL keeps notification tests fast.
	return newCart(50 * time.Millisecond)
}

var torta = ProductSnapshot{ID: 1, Name: "Torta Cuadrada de Chocolate", UnitPrice: 1000}

func TestAddItemMergesSameIdentity(t *testing.T) {
	c := testCart()

	c.AddItem(torta, 2, Personalization{})
	c.AddItem(torta, 3, Personalization{})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5000, c.Subtotal())
	assert.Equal(t, 5, c.TotalItems())
}

func TestAddItemDistinctSignaturesKeepSeparateLines(t *testing.T) {
	c := testCart()

	c.AddItem(torta, 1, Personalization{})
	c.AddItem(torta, 1, Personalization{Message: "Feliz Cumpleaños"})
	c.AddItem(torta, 1, Personalization{Message: "Feliz Cumpleaños", GlazeColor: "rosa"})

	require.Len(t, c.Lines(), 3)
	assert.Equal(t, 3, c.TotalItems())

	// Repeating one of the signatures merges rather than appending.
	c.AddItem(torta, 2, Personalization{Message: "Feliz Cumpleaños"})
	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, 3, lines[1].Quantity)
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	c := testCart()
	second := ProductSnapshot{ID: 2, Name: "Mousse de Chocolate", UnitPrice: 5000}

	c.AddItem(torta, 1, Personalization{})
	c.AddItem(second, 1, Personalization{})
	c.AddItem(torta, 1, Personalization{}) // merge must not reorder

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, int64(2), lines[1].ProductID)
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	byUpdate := testCart()
	byUpdate.AddItem(torta, 3, Personalization{})
	require.True(t, byUpdate.UpdateQuantity(1, Personalization{}, 0))

	byRemove := testCart()
	byRemove.AddItem(torta, 3, Personalization{})
	require.True(t, byRemove.RemoveItem(1))

	assert.Empty(t, byUpdate.Lines())
	assert.Empty(t, byRemove.Lines())
	assert.Equal(t, byRemove.Subtotal(), byUpdate.Subtotal())
}

func TestUpdateQuantityNegativeRemoves(t *testing.T) {
	c := testCart()
	c.AddItem(torta, 2, Personalization{})

	require.True(t, c.UpdateQuantity(1, Personalization{}, -1))
	assert.Empty(t, c.Lines())
}

func TestDecrementFromOneRemovesLine(t *testing.T) {
	c := testCart()
	c.AddItem(torta, 5, Personalization{})
	require.True(t, c.UpdateQuantity(1, Personalization{}, 1))

	// Clicking decrement once sends quantity 0, which removes the line
	// entirely instead of leaving a zero-quantity entry.
	require.True(t, c.UpdateQuantity(1, Personalization{}, 0))
	assert.Empty(t, c.Lines())
}

func TestUpdateQuantityTargetsExactSignature(t *testing.T) {
	c := testCart()
	c.AddItem(torta, 1, Personalization{})
	c.AddItem(torta, 1, Personalization{GlazeColor: "rosa"})

	require.True(t, c.UpdateQuantity(1, Personalization{GlazeColor: "rosa"}, 4))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity, "plain line must be untouched")
	assert.Equal(t, 4, lines[1].Quantity)
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	c := testCart()
	c.AddItem(torta, 1, Personalization{})

	assert.False(t, c.UpdateQuantity(99, Personalization{}, 2))
	assert.False(t, c.UpdateQuantity(1, Personalization{Size: "20 personas"}, 2))
}

func TestRemoveItemDropsAllVariants(t *testing.T) {
	c := testCart()
	c.AddItem(torta, 1, Personalization{})
	c.AddItem(torta, 1, Personalization{Message: "hola"})
	c.AddItem(ProductSnapshot{ID: 2, Name: "Empanada", UnitPrice: 2000}, 1, Personalization{})

	require.True(t, c.RemoveItem(1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ProductID)
}

func TestRemoveNonexistentIsNoOp(t *testing.T) {
	c := testCart()
	c.AddItem(torta, 1, Personalization{})
	before := c.Notice()

	assert.False(t, c.RemoveItem(42))
	assert.Len(t, c.Lines(), 1)

	// A no-op must not issue a fresh notice.
	after := c.Notice()
	require.NotNil(t, before)
	require.NotNil(t, after)
	assert.Equal(t, before.Token, after.Token)
}

func TestClearEmptiesEverything(t *testing.T) {
	c := testCart()
	c.AddItem(torta, 2, Personalization{})
	c.AddItem(ProductSnapshot{ID: 2, Name: "Empanada", UnitPrice: 2000}, 1, Personalization{})

	c.Clear()

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.Subtotal())
	assert.Equal(t, 0, c.TotalItems())
}

func TestLineTotal(t *testing.T) {
	l := Line{UnitPrice: 1990, Quantity: 3}
	assert.Equal(t, 5970, l.LineTotal())
}

func TestSignature(t *testing.T) {
	assert.Equal(t, "", Personalization{}.Signature())
	assert.Equal(t, "20 personas||", Personalization{Size: "20 personas"}.Signature())
	assert.NotEqual(t,
		Personalization{Message: "a"}.Signature(),
		Personalization{GlazeColor: "a"}.Signature())
}

func TestStoreGetAndPurge(t *testing.T) {
	s := NewStore()

	a := s.Get("token-a")
	assert.Same(t, a, s.Get("token-a"), "same token must return the same cart")
	s.Get("token-b")
	assert.Equal(t, 2, s.Len())

	// Nothing is idle yet.
	assert.Equal(t, 0, s.Purge(time.Minute))

	time.Sleep(20 * time.Millisecond)
	purged := s.Purge(10 * time.Millisecond)
	assert.Equal(t, 2, purged)
	assert.Equal(t, 0, s.Len())
}
