package services

import (
	"context"
	"encoding/json"
	"log"

	"shoe-shop/models"
	"shoe-shop/repositories"
)

// CartService owns the line-item collection for one visitor. State is kept
// in two storage tiers: the session-scoped ephemeral tier is read first and
// repopulated from the durable tier when absent. The in-memory cart stays
// authoritative for the lifetime of the service even when a persist fails.
type CartService struct {
	ephemeral repositories.KVStore
	durable   repositories.KVStore

	sessionKey string
	durableKey string

	items   models.Cart
	pending map[string]int
	loaded  bool
}

func NewCartService(ephemeral, durable repositories.KVStore, sessionID, clientID string) *CartService {
	return &CartService{
		ephemeral:  ephemeral,
		durable:    durable,
		sessionKey: "cart:" + sessionID,
		durableKey: "cart:" + clientID,
		pending:    make(map[string]int),
	}
}

// Load resolves the current cart: ephemeral tier first, then the durable
// tier with repair-on-read, otherwise empty. A blob that fails to parse is
// treated as absent.
func (s *CartService) Load(ctx context.Context) models.Cart {
	if s.loaded {
		return s.items
	}

	blob, found := s.readTier(ctx, s.ephemeral, s.sessionKey)
	if !found {
		blob, found = s.readTier(ctx, s.durable, s.durableKey)
		if found {
			if err := s.ephemeral.Set(ctx, s.sessionKey, blob); err != nil {
				log.Println("Failed to repopulate ephemeral cart:", err)
			}
		}
	}

	items := models.Cart{}
	if found {
		if err := json.Unmarshal([]byte(blob), &items); err != nil {
			log.Println("Discarding unreadable cart blob:", err)
			items = models.Cart{}
		}
	}

	s.items = items
	s.loaded = true
	return s.items
}

func (s *CartService) readTier(ctx context.Context, tier repositories.KVStore, key string) (string, bool) {
	blob, found, err := tier.Get(ctx, key)
	if err != nil {
		log.Println("Cart tier read failed:", err)
		return "", false
	}
	return blob, found
}

// AddOrIncrement merges the item into the cart by identity key: an existing
// line gains quantityDelta, otherwise a new line is appended with quantity =
// quantityDelta. The caller guarantees quantityDelta >= 1.
func (s *CartService) AddOrIncrement(ctx context.Context, item models.CartItem, quantityDelta int) error {
	s.Load(ctx)

	if i := s.items.FindIndex(item.ID, item.Size); i >= 0 {
		s.items[i].Quantity += quantityDelta
	} else {
		item.Quantity = quantityDelta
		s.items = append(s.items, item)
	}

	return s.persist(ctx)
}

// StageQuantity records a pending quantity for the identity key without
// touching the committed cart. CommitQuantities applies all staged edits at
// once, so a run of edits lands as a single update.
func (s *CartService) StageQuantity(identityKey string, quantity int) {
	s.pending[identityKey] = quantity
}

// CommitQuantities applies every staged quantity to its line item and clears
// the staging map. Staged keys with no matching line are dropped.
func (s *CartService) CommitQuantities(ctx context.Context) error {
	s.Load(ctx)

	for i := range s.items {
		if qty, ok := s.pending[s.items[i].Key()]; ok {
			s.items[i].Quantity = qty
		}
	}
	s.pending = make(map[string]int)

	return s.persist(ctx)
}

// Remove deletes the matching line item and any staged quantity for it.
func (s *CartService) Remove(ctx context.Context, productID int, size string) error {
	s.Load(ctx)

	if i := s.items.FindIndex(productID, size); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	delete(s.pending, models.ItemKey(productID, size))

	return s.persist(ctx)
}

// Clear empties the cart and removes the persisted blob from both tiers.
func (s *CartService) Clear(ctx context.Context) error {
	s.items = models.Cart{}
	s.pending = make(map[string]int)
	s.loaded = true

	var firstErr error
	if err := s.ephemeral.Remove(ctx, s.sessionKey); err != nil {
		log.Println("Failed to clear ephemeral cart:", err)
		firstErr = err
	}
	if err := s.durable.Remove(ctx, s.durableKey); err != nil {
		log.Println("Failed to clear durable cart:", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *CartService) Subtotal(ctx context.Context) int {
	return s.Load(ctx).Subtotal()
}

func (s *CartService) InstallmentOf3(ctx context.Context) int {
	return s.Load(ctx).InstallmentOf3()
}

// persist writes the cart blob to both tiers. A write failure is reported to
// the caller but the in-memory cart keeps the mutation.
func (s *CartService) persist(ctx context.Context) error {
	blob, err := json.Marshal(s.items)
	if err != nil {
		return err
	}

	var firstErr error
	if err := s.ephemeral.Set(ctx, s.sessionKey, string(blob)); err != nil {
		log.Println("Failed to persist cart to ephemeral tier:", err)
		firstErr = err
	}
	if err := s.durable.Set(ctx, s.durableKey, string(blob)); err != nil {
		log.Println("Failed to persist cart to durable tier:", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
