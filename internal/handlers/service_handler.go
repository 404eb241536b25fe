package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/httpresp"
	"github.com/salonhub/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ListBySalon is the public catalog: active services only.
func (h *ServiceHandler) ListBySalon(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "salon id must be numeric.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND active = true", salonID).
		Order("name asc").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load services.")
		return
	}

	httpresp.List(c, services)
}

// --------- Owner ---------

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Discount    float64 `json:"discount" binding:"omitempty,min=0"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Active      *bool   `json:"active"`
}

func (h *ServiceHandler) ListMine(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ?", salon.ID).
		Order("name asc").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	if req.Discount > req.Price {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "discount cannot exceed price.")
		return
	}

	svc := models.Service{
		SalonID:     salon.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		DurationMin: req.DurationMin,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not create service.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	var svc models.Service
	if err := h.db.Where("id = ? AND salon_id = ?", id, salon.ID).First(&svc).Error; err != nil {
		httperr.NotFound(c, httperr.CodeServiceNotFound, "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	if req.Discount > req.Price {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "discount cannot exceed price.")
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = req.Price
	svc.Discount = req.Discount
	svc.DurationMin = req.DurationMin
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update service.")
		return
	}

	httpresp.OK(c, svc)
}

// Delete deactivates rather than removes: existing appointments keep
// pointing at the row.
func (h *ServiceHandler) Delete(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	res := h.db.Model(&models.Service{}).
		Where("id = ? AND salon_id = ?", id, salon.ID).
		Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "internal_error", "Could not deactivate service.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, httperr.CodeServiceNotFound, "Service not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
