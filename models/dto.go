package models

type AddToCartRequest struct {
	ProductID int    `json:"product_id" form:"product_id" binding:"required"`
	Size      string `json:"size" form:"size" binding:"required"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

type QuantityEdit struct {
	ProductID int    `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantitiesRequest struct {
	Items []QuantityEdit `json:"items" binding:"required,dive"`
}

type ProceedToCheckoutRequest struct {
	City string `json:"city" form:"city"`
}

type CartResponse struct {
	Items          Cart `json:"items"`
	ItemCount      int  `json:"item_count"`
	Subtotal       int  `json:"subtotal"`
	InstallmentOf3 int  `json:"installment_of_3"`
}
