package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"formpilot-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formColumns = []string{"form_id", "user_id", "notify_email", "redirect_url", "created_at"}

func TestLookupFormReturnsForm(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `forms` WHERE form_id = \\?"),
			args:    []driver.Value{"abc123"},
			columns: formColumns,
			rows:    [][]driver.Value{{"abc123", "user-1", "owner@example.com", "https://example.com/thanks", created}},
		},
	}
	db, state := newScriptedGormDB(t, steps)

	form, err := NewServiceRepository(db).LookupForm(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", form.FormID)
	assert.Equal(t, "owner@example.com", form.NotifyEmail)
	require.True(t, form.HasRedirect())
	assert.Equal(t, "https://example.com/thanks", *form.RedirectURL)
	require.NoError(t, state.verifyComplete())
}

func TestLookupFormNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `forms` WHERE form_id = \\?"),
			args:    []driver.Value{"nope"},
			columns: formColumns,
			rows:    [][]driver.Value{},
		},
	}
	db, state := newScriptedGormDB(t, steps)

	_, err := NewServiceRepository(db).LookupForm(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrFormNotFound)
	require.NoError(t, state.verifyComplete())
}

func TestLookupFormPropagatesDriverErrors(t *testing.T) {
	boom := errors.New("connection reset")
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("FROM `forms`"),
			err:     boom,
		},
	}
	db, _ := newScriptedGormDB(t, steps)

	_, err := NewServiceRepository(db).LookupForm(context.Background(), "abc123")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrFormNotFound)
}

func TestInsertSubmissionAssignsIDAndTimestamp(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `submissions` \\(`id`,`form_id`,`name`,`email`,`mobile`,`remark`,`created_at`\\)"),
			args:    []driver.Value{anyArg, "abc123", "Jane", "jane@example.com", "0812345678", nil, anyArg},
		},
	}
	db, state := newScriptedGormDB(t, steps)

	mobile := "0812345678"
	sub := &models.Submission{FormID: "abc123", Name: "Jane", Email: "jane@example.com", Mobile: &mobile}
	require.NoError(t, NewServiceRepository(db).InsertSubmission(context.Background(), sub))

	assert.Len(t, sub.ID, 36)
	assert.False(t, sub.CreatedAt.IsZero())
	require.NoError(t, state.verifyComplete())
}
