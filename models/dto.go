package models

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required,min=2"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name    string   `json:"name" form:"name"`
	Address *Address `json:"address" form:"address"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type UpdateUserRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email" binding:"omitempty,email"`
	Role    string   `json:"role" binding:"omitempty,oneof=user admin"`
	Address *Address `json:"address"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type PlaceOrderRequest struct {
	ShippingAddress Address `json:"shipping_address" binding:"required"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateOrderTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

type UpdateOrderNotesRequest struct {
	SellerNotes string `json:"seller_notes"`
}

type UpdateOrderPaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=unpaid paid refunded"`
}

type CreateTestimonialRequest struct {
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Content    string   `json:"content" binding:"required"`
	Rating     int      `json:"rating" binding:"required,min=1,max=5"`
	ProductID  string   `json:"product_id"`
	ProductIDs []string `json:"product_ids"`
	OrderID    string   `json:"order_id"`
}

type UpdateTestimonialRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Content  string `json:"content"`
	Rating   int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Featured *bool  `json:"featured"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
