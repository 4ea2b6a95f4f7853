package domain

// MenuItem is a dish on the restaurant menu.
type MenuItem struct {
	ID       string  `json:"_id,omitempty"`
	Name     string  `json:"name"`
	Recipe   string  `json:"recipe,omitempty"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
}
