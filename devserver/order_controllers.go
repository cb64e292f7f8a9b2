package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNoOrders      = errors.New("no orders for this session")
	ErrEmptyOrder    = errors.New("order must have at least one item")
)

type OrderController struct {
	DB  *gorm.DB
	Hub *Hub
}

func NewOrderController(db *gorm.DB, hub *Hub) *OrderController {
	return &OrderController{DB: db, Hub: hub}
}

// CreateOrder -> POST /orders. Prices and totals are computed server-side;
// stock is decremented inside the same transaction.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	type reqBody struct {
		SessionID string    `json:"sessionId" binding:"required"`
		Items     []itemReq `json:"items" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrEmptyOrder)
		return
	}

	var session models.Session
	if err := oc.DB.First(&session, "id = ?", req.SessionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrSessionNotFound)
		return
	}
	if session.Status != models.SessionActive {
		utils.RespondError(c, http.StatusConflict, ErrNoActiveSession)
		return
	}

	now := time.Now()
	order := models.Order{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Status:    models.OrderPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return fmt.Errorf("product %s not found", item.ProductID)
			}
			if item.Quantity < 1 {
				return fmt.Errorf("invalid quantity for %s", product.Name)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("insufficient stock for %s", product.Name)
			}

			subTotal := float64(item.Quantity) * product.Price
			total += subTotal

			orderItem := models.OrderItem{
				ID:         uuid.NewString(),
				OrderID:    order.ID,
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: subTotal,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}

		order.TotalAmount = total
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	// Reload with items/products for the response and the push payload.
	oc.DB.Preload("OrderItems.Product.Category").First(&order, "id = ?", order.ID)

	oc.Hub.BroadcastNewOrder(order)
	utils.InfoLogger.Printf("Order %s created for session %s (total %.2f)", order.ID, session.ID, order.TotalAmount)
	utils.RespondData(c, http.StatusCreated, order)
}

// GetOrdersBySession -> GET /orders/session/:session_id. Answers 404 when
// the session has no orders yet; clients treat that as the empty state.
func (oc *OrderController) GetOrdersBySession(c *gin.Context) {
	var orders []models.Order
	err := oc.DB.Preload("OrderItems.Product.Category").
		Where("session_id = ?", c.Param("session_id")).
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(orders) == 0 {
		utils.RespondError(c, http.StatusNotFound, ErrNoOrders)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus -> PATCH /orders/:order_id/status. Illegal transitions
// answer 409 with the reason.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	type reqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems.Product.Category").First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot move order from %s to %s", order.Status, req.Status))
		return
	}

	order.Status = req.Status
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Hub.BroadcastStatusUpdate(order.SessionID, order.ID)
	utils.InfoLogger.Printf("Order %s moved to %s", order.ID, order.Status)
	utils.RespondData(c, http.StatusOK, order)
}
