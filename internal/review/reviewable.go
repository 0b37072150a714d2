// Package review tracks which delivered items a buyer can still review.
package review

import (
	"time"

	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/order"
)

// Key identifies one reviewable line item.
type Key struct {
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
}

type Item struct {
	Key
	OrderNumber string     `json:"orderNumber,omitempty"`
	ProductName string     `json:"productName"`
	Image       string     `json:"image,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// Set is an ordered set of reviewable items. Not safe for concurrent use;
// Tracker guards it.
type Set struct {
	items []Item
	index map[Key]int
}

// Build collects line items of delivered or received orders, minus the
// (order, product) pairs the buyer has already reviewed.
func Build(orders []backend.Order, reviewed []backend.Review) *Set {
	done := make(map[Key]struct{}, len(reviewed))
	for _, r := range reviewed {
		done[Key{OrderID: r.OrderID, ProductID: r.ProductID}] = struct{}{}
	}

	s := &Set{index: map[Key]int{}}
	for _, o := range orders {
		st, _ := order.Parse(o.Status)
		if st != order.Delivered && st != order.Received {
			continue
		}
		for _, li := range o.Items {
			k := Key{OrderID: o.ID, ProductID: li.ProductID}
			if _, ok := done[k]; ok {
				continue
			}
			if _, dup := s.index[k]; dup {
				continue
			}
			s.index[k] = len(s.items)
			s.items = append(s.items, Item{
				Key:         k,
				OrderNumber: o.OrderNumber,
				ProductName: li.Name,
				Image:       li.Image,
				DeliveredAt: o.DeliveredAt,
			})
		}
	}
	return s
}

func (s *Set) Contains(k Key) bool {
	_, ok := s.index[k]
	return ok
}

// Remove drops exactly k. It reports false, changing nothing, when k is absent.
func (s *Set) Remove(k Key) bool {
	i, ok := s.index[k]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, k)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Key] = j
	}
	return true
}

func (s *Set) Len() int {
	return len(s.items)
}

// Items returns a copy in build order.
func (s *Set) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}
