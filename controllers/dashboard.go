package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"formpilot-api/middleware"
	"formpilot-api/models"
	"formpilot-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type formManager interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Form, error)
	GetOwned(ctx context.Context, ownerID, formID string) (*models.Form, error)
	Create(ctx context.Context, ownerID string, in services.FormSettingsInput) (*models.Form, error)
	UpdateSettings(ctx context.Context, ownerID, formID string, in services.FormSettingsInput) (*models.Form, error)
	Delete(ctx context.Context, ownerID, formID string) error
}

type submissionManager interface {
	List(ctx context.Context, ownerID string, f services.SubmissionFilter) ([]models.Submission, int64, error)
	Delete(ctx context.Context, ownerID, submissionID string) error
	Summary(ctx context.Context, ownerID string, now time.Time) (*services.AccountSummary, error)
}

type accountDeleter interface {
	DeleteAccount(ctx context.Context, userID string) error
}

// DashboardController serves the authenticated owner API.
type DashboardController struct {
	forms       formManager
	submissions submissionManager
	accounts    accountDeleter
	baseURL     string
	logger      *zap.Logger
}

func NewDashboardController(forms formManager, submissions submissionManager, accounts accountDeleter, baseURL string, logger *zap.Logger) *DashboardController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardController{
		forms:       forms,
		submissions: submissions,
		accounts:    accounts,
		baseURL:     baseURL,
		logger:      logger,
	}
}

// respondServiceError maps service errors to JSON responses.
func (dc *DashboardController) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrFormNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
	case errors.Is(err, services.ErrInvalidNotifyEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notify email"})
	case errors.Is(err, services.ErrUnsafeRedirect):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Redirect URL must start with http:// or https://"})
	default:
		dc.logger.Error(fallback, zap.String("user_id", middleware.CurrentUserID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// GetForms lists the caller's forms
func (dc *DashboardController) GetForms(c *gin.Context) {
	forms, err := dc.forms.ListByOwner(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		dc.respondServiceError(c, err, "Failed to fetch forms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

func (dc *DashboardController) GetForm(c *gin.Context) {
	form, err := dc.forms.GetOwned(c.Request.Context(), middleware.CurrentUserID(c), c.Param("form_id"))
	if err != nil {
		dc.respondServiceError(c, err, "Failed to fetch form")
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (dc *DashboardController) CreateForm(c *gin.Context) {
	var req services.FormSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := dc.forms.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		dc.respondServiceError(c, err, "Failed to create form")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"form":  form,
		"embed": services.BuildEmbedInfo(dc.baseURL, form.FormID),
	})
}

func (dc *DashboardController) UpdateFormSettings(c *gin.Context) {
	var req services.FormSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := dc.forms.UpdateSettings(c.Request.Context(), middleware.CurrentUserID(c), c.Param("form_id"), req)
	if err != nil {
		dc.respondServiceError(c, err, "Failed to update form")
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form, "message": "Settings saved"})
}

func (dc *DashboardController) DeleteForm(c *gin.Context) {
	if err := dc.forms.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("form_id")); err != nil {
		dc.respondServiceError(c, err, "Failed to delete form")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetFormEmbed returns the submit URL and field names for an owned form.
func (dc *DashboardController) GetFormEmbed(c *gin.Context) {
	form, err := dc.forms.GetOwned(c.Request.Context(), middleware.CurrentUserID(c), c.Param("form_id"))
	if err != nil {
		dc.respondServiceError(c, err, "Failed to fetch form")
		return
	}
	c.JSON(http.StatusOK, services.BuildEmbedInfo(dc.baseURL, form.FormID))
}

func (dc *DashboardController) GetSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := services.SubmissionFilter{
		FormID: c.Query("form_id"),
		Limit:  limit,
		Offset: offset,
	}.Normalize()

	subs, total, err := dc.submissions.List(c.Request.Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		dc.respondServiceError(c, err, "Failed to fetch submissions")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"submissions": subs,
		"total":       total,
		"limit":       filter.Limit,
		"offset":      filter.Offset,
	})
}

func (dc *DashboardController) DeleteSubmission(c *gin.Context) {
	if err := dc.submissions.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		dc.respondServiceError(c, err, "Failed to delete submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (dc *DashboardController) GetAccountSummary(c *gin.Context) {
	summary, err := dc.submissions.Summary(c.Request.Context(), middleware.CurrentUserID(c), time.Now())
	if err != nil {
		dc.respondServiceError(c, err, "Failed to fetch account summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (dc *DashboardController) DeleteAccount(c *gin.Context) {
	if err := dc.accounts.DeleteAccount(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		dc.logger.Error("account deletion failed", zap.String("user_id", middleware.CurrentUserID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
