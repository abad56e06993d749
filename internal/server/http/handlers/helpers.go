package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/pricing"
	"github.com/artisanscorner/storefront/internal/server/http/dto"
	"github.com/artisanscorner/storefront/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Image:        p.Image,
		Category:     p.Category,
		Description:  p.Description,
		Price:        p.Price,
		PriceDisplay: pricing.Rupees(p.Price),
		CountInStock: p.CountInStock,
		Rating:       p.Rating,
		NumReviews:   p.NumReviews,
		CreatedAt:    p.CreatedAt,
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	resp := dto.OrderResponse{
		ID:         order.ID,
		OrderItems: items,
		ShippingAddress: dto.ShippingAddressPayload{
			Address:    order.ShippingAddress.Address,
			City:       order.ShippingAddress.City,
			PostalCode: order.ShippingAddress.PostalCode,
			Country:    order.ShippingAddress.Country,
		},
		PaymentMethod: order.PaymentMethod,
		ItemsPrice:    order.ItemsPrice,
		TaxPrice:      order.TaxPrice,
		ShippingPrice: order.ShippingPrice,
		TotalPrice:    order.TotalPrice,
		TotalDisplay:  pricing.Rupees(order.TotalPrice),
		IsPaid:        order.IsPaid,
		PaidAt:        order.PaidAt,
		IsDelivered:   order.IsDelivered,
		DeliveredAt:   order.DeliveredAt,
		CreatedAt:     order.CreatedAt,
	}
	if order.PaymentResult != nil {
		resp.PaymentResult = &dto.PaymentResultResponse{
			PaymentID:  order.PaymentResult.PaymentID,
			Status:     order.PaymentResult.Status,
			Email:      order.PaymentResult.Email,
			UpdateTime: order.PaymentResult.UpdateTime,
		}
	}
	return resp
}
