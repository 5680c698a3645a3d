package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/bazaarhub/internal/models"
	"github.com/example/bazaarhub/internal/utils"
)

const adminOrderPageSize = 5

// AdminHandler manages admin-only order endpoints.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// adminOrderUser is the minimal user projection joined into admin listings.
type adminOrderUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type adminOrder struct {
	models.Order
	User *adminOrderUser `json:"user,omitempty"`
}

// ListAllOrders returns a page of all orders, newest first. The optional
// search value must be a syntactically valid order id; a valid but unknown id
// yields an empty page, not an error.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c, adminOrderPageSize)

	var searchID *uuid.UUID
	if search := c.Query("search"); search != "" {
		id, err := uuid.Parse(search)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid order ID format")
		}
		searchID = &id
	}

	query := h.db.Model(&models.Order{})
	if searchID != nil {
		query = query.Where("id = ?", *searchID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	result := make([]adminOrder, len(orders))
	for i, order := range orders {
		result[i] = adminOrder{Order: order}
		if order.User != nil {
			result[i].User = &adminOrderUser{
				ID:    order.User.ID,
				Name:  order.User.Name,
				Email: order.User.Email,
			}
		}
		result[i].Order.User = nil
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Orders fetched successfully",
		"data": fiber.Map{
			"orders":     result,
			"totalPages": pg.TotalPages(total),
		},
	})
}

// DashboardStats returns aggregate statistics for the admin panel.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalProducts int64
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ?", models.StatusCancelled).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":      totalUsers,
			"total_products":   totalProducts,
			"total_orders":     totalOrders,
			"total_revenue":    totalRevenue,
			"orders_by_status": ordersByStatus,
		},
	})
}
