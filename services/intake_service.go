package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"formpilot-api/models"
	"formpilot-api/utils"

	"go.uber.org/zap"
)

const notifyTimeout = 30 * time.Second

// IntakeRequest is one public form post after body parsing.
type IntakeRequest struct {
	FormID   string
	Name     string
	Email    string
	Mobile   string
	Remark   string
	Honeypot string
	ClientIP string
}

type IntakeOutcome int

const (
	// OutcomeAcknowledged: saved, answer with a JSON success body.
	OutcomeAcknowledged IntakeOutcome = iota
	// OutcomeRedirect: saved, redirect to RedirectURL.
	OutcomeRedirect
	// OutcomeBotAcknowledged: honeypot tripped, nothing saved, answer as if saved.
	OutcomeBotAcknowledged
)

type IntakeResult struct {
	Outcome     IntakeOutcome
	RedirectURL string
	Submission  *models.Submission
}

// IntakeError is a terminal rejection of a public submission.
type IntakeError struct {
	Status  int
	Message string
	Err     error
}

func (e *IntakeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *IntakeError) Unwrap() error { return e.Err }

func intakeError(status int, message string, err error) *IntakeError {
	return &IntakeError{Status: status, Message: message, Err: err}
}

const (
	MsgMissingFormID  = "Missing form_id"
	MsgInvalidFormID  = "Invalid form_id"
	MsgInvalidEmail   = "Invalid email"
	MsgNameRequired   = "Name is required"
	MsgSaveFailed     = "Failed to save submission"
	MsgTooManyRequest = "Too many requests"
)

// IntakeService accepts public form submissions.
type IntakeService struct {
	forms          FormRegistry
	submissions    SubmissionStore
	throttle       Throttler
	notifier       Notifier
	fingerprintKey []byte
	logger         *zap.Logger
	now            func() time.Time
}

type IntakeOption func(*IntakeService)

func WithThrottler(t Throttler) IntakeOption {
	return func(s *IntakeService) {
		if t != nil {
			s.throttle = t
		}
	}
}

func WithNotifier(n Notifier) IntakeOption {
	return func(s *IntakeService) { s.notifier = n }
}

func WithFingerprintKey(key []byte) IntakeOption {
	return func(s *IntakeService) { s.fingerprintKey = key }
}

func WithIntakeLogger(l *zap.Logger) IntakeOption {
	return func(s *IntakeService) {
		if l != nil {
			s.logger = l
		}
	}
}

func withClock(now func() time.Time) IntakeOption {
	return func(s *IntakeService) { s.now = now }
}

// NewIntakeService wires the intake path. forms and submissions must be the
// service-level repository: public posts carry no user identity.
func NewIntakeService(forms FormRegistry, submissions SubmissionStore, opts ...IntakeOption) *IntakeService {
	s := &IntakeService{
		forms:       forms,
		submissions: submissions,
		throttle:    NoopThrottler{},
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs the intake pipeline. Every rejection is an *IntakeError.
func (s *IntakeService) Submit(ctx context.Context, req IntakeRequest) (*IntakeResult, error) {
	if req.Honeypot != "" {
		return s.acknowledgeBot(req), nil
	}

	formID := utils.SanitizeInput(req.FormID)
	if formID == "" {
		return nil, intakeError(http.StatusBadRequest, MsgMissingFormID, nil)
	}

	fp := Fingerprint(s.fingerprintKey, formID, req.ClientIP, s.now())
	if s.throttle.ShouldThrottle(fp) {
		s.logger.Info("submission throttled", zap.String("form_id", formID), zap.String("fingerprint", fp))
		return nil, intakeError(http.StatusTooManyRequests, MsgTooManyRequest, nil)
	}

	form, err := s.forms.LookupForm(ctx, formID)
	if err != nil || form == nil {
		if err != nil && !errors.Is(err, ErrFormNotFound) {
			s.logger.Warn("form lookup failed", zap.String("form_id", formID), zap.Error(err))
		}
		return nil, intakeError(http.StatusBadRequest, MsgInvalidFormID, err)
	}

	email := utils.SanitizeInput(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, intakeError(http.StatusBadRequest, MsgInvalidEmail, nil)
	}

	name := utils.SanitizeInput(req.Name)
	if name == "" {
		return nil, intakeError(http.StatusBadRequest, MsgNameRequired, nil)
	}

	sub := &models.Submission{
		FormID: formID,
		Name:   name,
		Email:  email,
		Mobile: utils.OptionalString(req.Mobile),
		Remark: utils.OptionalString(req.Remark),
	}
	if err := s.submissions.InsertSubmission(ctx, sub); err != nil {
		s.logger.Error("save submission failed", zap.String("form_id", formID), zap.Error(err))
		return nil, intakeError(http.StatusInternalServerError, MsgSaveFailed, err)
	}

	s.logger.Info("submission accepted", zap.String("form_id", formID), zap.String("submission_id", sub.ID))
	s.notify(ctx, form, sub)

	if form.HasRedirect() {
		target := strings.TrimSpace(*form.RedirectURL)
		if utils.IsSafeRedirect(target) {
			return &IntakeResult{Outcome: OutcomeRedirect, RedirectURL: target, Submission: sub}, nil
		}
		s.logger.Warn("ignoring unsafe redirect_url", zap.String("form_id", formID))
	}
	return &IntakeResult{Outcome: OutcomeAcknowledged, Submission: sub}, nil
}

// acknowledgeBot is the only place a rejected request is reported as success.
func (s *IntakeService) acknowledgeBot(req IntakeRequest) *IntakeResult {
	s.logger.Info("honeypot triggered, dropping submission",
		zap.String("form_id", req.FormID),
		zap.String("client_ip", req.ClientIP))
	return &IntakeResult{Outcome: OutcomeBotAcknowledged}
}

func (s *IntakeService) notify(ctx context.Context, form *models.Form, sub *models.Submission) {
	if s.notifier == nil || form.NotifyEmail == "" {
		return
	}
	notifyCtx, cancel := detachedContext(ctx, notifyTimeout)
	go func() {
		defer cancel()
		if err := s.notifier.NotifySubmission(notifyCtx, form, sub); err != nil {
			s.logger.Warn("submission notification failed",
				zap.String("form_id", form.FormID),
				zap.String("submission_id", sub.ID),
				zap.Error(err))
		}
	}()
}
