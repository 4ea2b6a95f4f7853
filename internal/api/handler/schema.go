package handler

// --- Request / Response types ---

type tokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Photo    string `json:"photo"`
	Password string `json:"password,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type adminResponse struct {
	Admin bool `json:"admin"`
}

type insertAck struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type updateAck struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type deleteAck struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
	// Pending is set when the cart cleanup was handed to background workers.
	Pending bool `json:"pending,omitempty"`
}

type addCartItemRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	MenuItemID string  `json:"menuItemId" validate:"required"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price" validate:"gt=0"`
}

type createIntentRequest struct {
	Price     float64  `json:"price" validate:"gt=0"`
	CartItems []string `json:"cartItems,omitempty" validate:"omitempty,dive,objectid"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type paymentRequest struct {
	Email         string   `json:"email" validate:"required"`
	Price         float64  `json:"price" validate:"gt=0"`
	TransactionID string   `json:"transactionId" validate:"required"`
	CartItems     []string `json:"CartItems" validate:"dive,objectid"`
	MenuItems     []string `json:"menuItems,omitempty"`
	ItemNames     []string `json:"itemNames,omitempty"`
}

type paymentResponse struct {
	Result     insertAck `json:"result"`
	DeletedRes deleteAck `json:"deletedRes"`
}

// errorEnvelope documents the body written by the central error handler.
type errorEnvelope struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"Unauthorized access"`
}
