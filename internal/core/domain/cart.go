package domain

// CartItem is a menu item placed in a customer's cart.
type CartItem struct {
	ID         string  `json:"_id,omitempty"`
	Email      string  `json:"email"`
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name,omitempty"`
	Image      string  `json:"image,omitempty"`
	Price      float64 `json:"price"`
}

// CartTotal sums item prices in minor units so float drift never reaches the comparison.
func CartTotal(items []*CartItem) int64 {
	var total int64
	for _, it := range items {
		total += MinorUnits(it.Price)
	}
	return total
}
