package models

// ProductItem is one cart line sent by the frontend. Amount is the unit
// price in the smallest currency unit (e.g. cents). ProductID is our
// internal catalog ID; when present it is encoded into the line's display
// name so the webhook can recover it later.
type ProductItem struct {
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	Name      string `json:"name" binding:"required"`
	ProductID *int   `json:"productId"`
}

// CartRequest is the cart checkout payload. Currency applies to all items.
type CartRequest struct {
	Items    []ProductItem `json:"items" binding:"required,min=1,dive"`
	Currency string        `json:"currency"`
}

// ProductRequest is the legacy single-product checkout payload.
type ProductRequest struct {
	Amount   int64  `json:"amount" binding:"required,min=1"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency"`
}

// CheckoutResponse is returned to the frontend after attempting to create a
// hosted checkout session.
type CheckoutResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	SessionID  string `json:"sessionId,omitempty"`
	SessionURL string `json:"sessionUrl,omitempty"`
}
