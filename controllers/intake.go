package controllers

import (
	"errors"
	"mime"
	"net/http"

	"formpilot-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxIntakeBodyBytes = 1 << 20
	honeypotField      = "_hp"
	msgInvalidFormData = "Invalid form data"
	msgInternalError   = "Internal server error"
)

// IntakeController serves the public form post endpoint.
type IntakeController struct {
	intake *services.IntakeService
	logger *zap.Logger
}

func NewIntakeController(intake *services.IntakeService, logger *zap.Logger) *IntakeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeController{intake: intake, logger: logger}
}

// Submit handles POST /api/submit?form_id=...
func (ic *IntakeController) Submit(c *gin.Context) {
	// gin caches the query on first read; the raw query is then dropped so
	// only the body decides whether the post is malformed.
	formID := c.Query("form_id")
	c.Request.URL.RawQuery = ""

	if err := parseFormBody(c); err != nil {
		ic.logger.Debug("unparseable submission body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidFormData})
		return
	}

	form := c.Request.PostForm
	req := services.IntakeRequest{
		FormID:   formID,
		Name:     form.Get("name"),
		Email:    form.Get("email"),
		Mobile:   form.Get("mobile"),
		Remark:   form.Get("remark"),
		Honeypot: form.Get(honeypotField),
		ClientIP: c.ClientIP(),
	}

	res, err := ic.intake.Submit(c.Request.Context(), req)
	if err != nil {
		var ie *services.IntakeError
		if errors.As(err, &ie) {
			c.JSON(ie.Status, gin.H{"error": ie.Message})
			return
		}
		ic.logger.Error("intake failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}

	if res.Outcome == services.OutcomeRedirect {
		c.Redirect(http.StatusSeeOther, res.RedirectURL)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// parseFormBody accepts urlencoded and multipart bodies only.
func parseFormBody(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxIntakeBodyBytes)

	mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil {
		return err
	}
	switch mediaType {
	case "application/x-www-form-urlencoded":
		return c.Request.ParseForm()
	case "multipart/form-data":
		return c.Request.ParseMultipartForm(maxIntakeBodyBytes)
	default:
		return errors.New("unsupported content type " + mediaType)
	}
}
