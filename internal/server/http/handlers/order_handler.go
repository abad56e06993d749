package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/domain/model"
	"github.com/artisanscorner/storefront/internal/domain/repository"
	"github.com/artisanscorner/storefront/internal/server/http/dto"
)

// OrderHandler serves order placement and retrieval endpoints.
type OrderHandler struct {
	orders OrderFacade
	auth   AuthFacade
}

func NewOrderHandler(orders OrderFacade, auth AuthFacade) *OrderHandler {
	return &OrderHandler{orders: orders, auth: auth}
}

// Create persists a checkout submission as an unpaid order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	items := make([]model.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, model.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	draft := repository.OrderDraft{
		Items: items,
		ShippingAddress: model.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
		ItemsPrice:    req.ItemsPrice,
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		TotalPrice:    req.TotalPrice,
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), CurrentUserID(c), draft)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrder),
			errors.Is(err, domainErrors.ErrInvalidAmount),
			errors.Is(err, domainErrors.ErrAmountMismatch):
			c.AbortWithStatus(http.StatusBadRequest)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// MyOrders lists the authenticated user's orders, newest first.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orders.MyOrders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderListResponse(orders))
}

// Get returns a single order. Owner or admin only.
func (h *OrderHandler) Get(c *gin.Context) {
	requester, err := h.auth.UserByID(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	order, err := h.orders.Order(c.Request.Context(), c.Param("id"), requester)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.AbortWithStatus(http.StatusForbidden)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// ListAll returns every order in the system. Admin only.
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.AllOrders(c.Request.Context())
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderListResponse(orders))
}

// Deliver marks an order as delivered. Admin only.
func (h *OrderHandler) Deliver(c *gin.Context) {
	order, err := h.orders.MarkDelivered(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderListResponse(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return resp
}
