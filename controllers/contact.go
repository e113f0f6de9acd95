package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"formpilot-api/models"
	"formpilot-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contactManager interface {
	Create(ctx context.Context, in services.ContactInput) (*models.Contact, error)
	List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error)
}

type ContactController struct {
	contacts contactManager
	logger   *zap.Logger
}

func NewContactController(contacts contactManager, logger *zap.Logger) *ContactController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactController{contacts: contacts, logger: logger}
}

// CreateContact stores a message from the public contact page
func (cc *ContactController) CreateContact(c *gin.Context) {
	var req services.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := cc.contacts.Create(c.Request.Context(), req); err != nil {
		if errors.Is(err, services.ErrInvalidContact) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, a valid email and a message are required"})
			return
		}
		cc.logger.Error("save contact failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// GetContacts is the admin inbox
func (cc *ContactController) GetContacts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contacts, total, err := cc.contacts.List(c.Request.Context(), limit, offset)
	if err != nil {
		cc.logger.Error("list contacts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "total": total})
}
