package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoe-shop/models"
	"shoe-shop/repositories"
)

type failingKV struct {
	err error
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f *failingKV) Set(context.Context, string, string) error         { return f.err }
func (f *failingKV) Remove(context.Context, string) error              { return f.err }

func testItem() models.CartItem {
	return models.CartItem{
		ID:            7,
		Name:          "Runner - Black",
		Size:          "38",
		ActualPrice:   4000,
		DiscountPrice: 4000,
		Image:         "/runner.jpg",
	}
}

func newCartFixture() (*CartService, *repositories.MemoryKV, *repositories.MemoryKV) {
	eph := repositories.NewMemoryKV()
	dur := repositories.NewMemoryKV()
	return NewCartService(eph, dur, "s1", "c1"), eph, dur
}

func TestAddOrIncrementMergesByIdentityKey(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newCartFixture()

	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 1))
	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 1))

	items := cart.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 8000, items[0].DiscountPrice*items[0].Quantity)
	assert.Equal(t, 8000, cart.Subtotal(ctx))
}

func TestAddOrIncrementSumsDeltas(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newCartFixture()

	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 2))
	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 3))

	items := cart.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddOrIncrementKeepsDistinctSizesApart(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newCartFixture()

	other := testItem()
	other.Size = "40"

	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 1))
	require.NoError(t, cart.AddOrIncrement(ctx, other, 1))

	items := cart.Load(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "38", items[0].Size)
	assert.Equal(t, "40", items[1].Size)
}

func TestLoadRoundTripAfterFreshLoad(t *testing.T) {
	ctx := context.Background()
	cart, eph, dur := newCartFixture()

	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 3))

	// Simulate a fresh page load: a new service over the same tiers.
	reloaded := NewCartService(eph, dur, "s1", "c1")
	items := reloaded.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, testItem().Name, items[0].Name)
}

func TestLoadRepairsEphemeralFromDurable(t *testing.T) {
	ctx := context.Background()
	eph := repositories.NewMemoryKV()
	dur := repositories.NewMemoryKV()

	seed := NewCartService(repositories.NewMemoryKV(), dur, "s1", "c1")
	require.NoError(t, seed.AddOrIncrement(ctx, testItem(), 2))

	// Session expired: ephemeral tier is empty, durable still holds the cart.
	cart := NewCartService(eph, dur, "s2", "c1")
	items := cart.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	// Repair-on-read put the blob back into the ephemeral tier.
	blob, found, err := eph.Get(ctx, "cart:s2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotEmpty(t, blob)
}

func TestLoadToleratesCorruptBlob(t *testing.T) {
	ctx := context.Background()
	eph := repositories.NewMemoryKV()
	dur := repositories.NewMemoryKV()
	require.NoError(t, eph.Set(ctx, "cart:s1", "{not json"))
	require.NoError(t, dur.Set(ctx, "cart:c1", "also not json"))

	cart := NewCartService(eph, dur, "s1", "c1")
	assert.Empty(t, cart.Load(ctx))
}

func TestStageAndCommitQuantities(t *testing.T) {
	ctx := context.Background()
	cart, eph, dur := newCartFixture()
	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 1))

	cart.StageQuantity(models.ItemKey(7, "38"), 5)

	// Staged edits are not visible to a concurrent reader before commit.
	other := NewCartService(eph, dur, "s1", "c1")
	require.Len(t, other.Load(ctx), 1)
	assert.Equal(t, 1, other.Load(ctx)[0].Quantity)

	require.NoError(t, cart.CommitQuantities(ctx))
	assert.Equal(t, 5, cart.Load(ctx)[0].Quantity)

	after := NewCartService(eph, dur, "s1", "c1")
	assert.Equal(t, 5, after.Load(ctx)[0].Quantity)
}

func TestCommitIgnoresStagedEditsForMissingLines(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newCartFixture()
	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 1))

	cart.StageQuantity(models.ItemKey(99, "44"), 10)
	require.NoError(t, cart.CommitQuantities(ctx))

	items := cart.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveDropsLineAndStagedEdit(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newCartFixture()
	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 1))

	cart.StageQuantity(models.ItemKey(7, "38"), 9)
	require.NoError(t, cart.Remove(ctx, 7, "38"))
	require.NoError(t, cart.CommitQuantities(ctx))

	assert.Empty(t, cart.Load(ctx))
}

func TestRemoveMissingItemIsNoop(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newCartFixture()
	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 1))

	require.NoError(t, cart.Remove(ctx, 99, "44"))
	assert.Len(t, cart.Load(ctx), 1)
}

func TestClearEmptiesCartAndBothTiers(t *testing.T) {
	ctx := context.Background()
	cart, eph, dur := newCartFixture()
	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 1))

	require.NoError(t, cart.Clear(ctx))
	assert.Empty(t, cart.Load(ctx))

	_, found, err := eph.Get(ctx, "cart:s1")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = dur.Get(ctx, "cart:c1")
	require.NoError(t, err)
	assert.False(t, found)

	reloaded := NewCartService(eph, dur, "s1", "c1")
	assert.Empty(t, reloaded.Load(ctx))
}

func TestPersistFailureKeepsInMemoryCart(t *testing.T) {
	ctx := context.Background()
	broken := &failingKV{err: errors.New("tier down")}
	cart := NewCartService(broken, broken, "s1", "c1")

	err := cart.AddOrIncrement(ctx, testItem(), 2)
	require.Error(t, err)

	// The in-memory cart remains authoritative for this page lifetime.
	items := cart.Load(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 8000, cart.Subtotal(ctx))
}

func TestSubtotalRecomputedAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	cart, _, _ := newCartFixture()

	other := testItem()
	other.ID = 8
	other.DiscountPrice = 9000
	other.ActualPrice = 9000

	require.NoError(t, cart.AddOrIncrement(ctx, testItem(), 2))
	require.NoError(t, cart.AddOrIncrement(ctx, other, 1))
	assert.Equal(t, 17000, cart.Subtotal(ctx))
	assert.Equal(t, 5667, cart.InstallmentOf3(ctx))

	require.NoError(t, cart.Remove(ctx, 8, "38"))
	assert.Equal(t, 8000, cart.Subtotal(ctx))
}
