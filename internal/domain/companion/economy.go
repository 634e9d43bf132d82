package companion

import (
	"strings"
	"time"
)

type EconomyLedger struct{}

// AddGold applies a signed amount. The ledger itself enforces no floor;
// callers that spend must check the balance first.
func (EconomyLedger) AddGold(state State, amount int, source string, at time.Time) (State, []DomainEvent) {
	next := state.Clone()
	next.Gold += amount
	if amount <= 0 {
		return next, nil
	}
	return next, []DomainEvent{{
		Type:       EventGoldEarned,
		OccurredAt: at,
		Payload: map[string]any{
			"amount":  amount,
			"source":  source,
			"balance": next.Gold,
		},
	}}
}

type InventoryChange struct {
	ItemName  string
	Quantity  int
	Category  string
	Rarity    Rarity
	UnitPrice int
}

// UpdateInventory applies a quantity change. Entries that drop to zero or below
// are removed. New entries need a positive change and a category.
func (EconomyLedger) UpdateInventory(state State, change InventoryChange, at time.Time) (State, []DomainEvent) {
	name := strings.TrimSpace(change.ItemName)
	if name == "" || change.Quantity == 0 {
		return state, nil
	}
	next := state.Clone()
	category := strings.TrimSpace(change.Category)

	entry, exists := next.Inventory[name]
	switch {
	case exists:
		qty := entry.Quantity + change.Quantity
		if qty <= 0 {
			delete(next.Inventory, name)
			break
		}
		entry.Quantity = qty
		if category != "" {
			entry.Category = category
		}
		next.Inventory[name] = entry
	case change.Quantity > 0 && category != "":
		rarity := change.Rarity
		if rarity == "" {
			rarity = RarityCommon
		}
		next.Inventory[name] = InventoryEntry{
			ItemName: name,
			Quantity: change.Quantity,
			Category: category,
			Rarity:   rarity,
		}
	default:
		return state, nil
	}

	if change.Quantity <= 0 || change.UnitPrice <= 0 {
		return next, nil
	}
	next.Purchases.TotalSpent += change.UnitPrice * change.Quantity
	next.Purchases.PurchaseCount++
	next.Purchases.History = append(next.Purchases.History, PurchaseRecord{
		ItemName:  name,
		Quantity:  change.Quantity,
		UnitPrice: change.UnitPrice,
		At:        at,
	})
	if over := len(next.Purchases.History) - MaxPurchaseHistory; over > 0 {
		next.Purchases.History = next.Purchases.History[over:]
	}
	return next, []DomainEvent{{
		Type:       EventItemPurchased,
		OccurredAt: at,
		Payload: map[string]any{
			"item":       name,
			"quantity":   change.Quantity,
			"unit_price": change.UnitPrice,
			"total":      change.UnitPrice * change.Quantity,
		},
	}}
}

// UseItem consumes quantity units. It fails without mutation when the item is
// missing or short.
func (EconomyLedger) UseItem(state State, itemName string, quantity int, at time.Time) (State, bool) {
	if quantity <= 0 {
		quantity = 1
	}
	entry, ok := state.Inventory[itemName]
	if !ok || entry.Quantity < quantity {
		return state, false
	}
	next := state.Clone()
	entry.Quantity -= quantity
	if entry.Quantity <= 0 {
		delete(next.Inventory, itemName)
		return next, true
	}
	used := at
	entry.LastUsed = &used
	next.Inventory[itemName] = entry
	return next, true
}
