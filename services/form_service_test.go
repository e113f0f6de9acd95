package services

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var insertFormPattern = regexp.MustCompile("INSERT INTO `forms` \\(`form_id`,`user_id`,`notify_email`,`redirect_url`,`created_at`\\)")

func sequenceIDs(ids ...string) func() (string, error) {
	return func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}
}

func TestCreateFormRetriesOnDuplicateID(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: insertFormPattern,
			args:    []driver.Value{"aaaaaa", "user-1", "owner@example.com", "https://example.com/thanks"},
			err:     &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
		},
		{
			kind:    kindExec,
			pattern: insertFormPattern,
			args:    []driver.Value{"bbbbbb", "user-1", "owner@example.com", "https://example.com/thanks"},
		},
	}
	db, state := newScriptedGormDB(t, steps)
	svc := NewFormService(db)
	svc.newID = sequenceIDs("aaaaaa", "bbbbbb")

	form, err := svc.Create(context.Background(), "user-1", FormSettingsInput{
		NotifyEmail: " owner@example.com ",
		RedirectURL: "https://example.com/thanks",
	})
	require.NoError(t, err)
	assert.Equal(t, "bbbbbb", form.FormID)
	assert.Equal(t, "owner@example.com", form.NotifyEmail)
	require.NoError(t, state.verifyComplete())
}

func TestCreateFormGivesUpAfterRepeatedCollisions(t *testing.T) {
	var steps []*queryStep
	ids := make([]string, maxFormIDAttempts)
	for i := range ids {
		ids[i] = "dupdup"
		steps = append(steps, &queryStep{
			kind:    kindExec,
			pattern: insertFormPattern,
			err:     &mysql.MySQLError{Number: 1062},
		})
	}
	db, state := newScriptedGormDB(t, steps)
	svc := NewFormService(db)
	svc.newID = sequenceIDs(ids...)

	_, err := svc.Create(context.Background(), "user-1", FormSettingsInput{NotifyEmail: "owner@example.com"})
	assert.ErrorIs(t, err, ErrFormIDExhausted)
	require.NoError(t, state.verifyComplete())
}

func TestCreateFormValidatesSettings(t *testing.T) {
	db, state := newScriptedGormDB(t, nil)
	svc := NewFormService(db)

	_, err := svc.Create(context.Background(), "user-1", FormSettingsInput{NotifyEmail: "nope"})
	assert.ErrorIs(t, err, ErrInvalidNotifyEmail)

	_, err = svc.Create(context.Background(), "user-1", FormSettingsInput{
		NotifyEmail: "owner@example.com",
		RedirectURL: "javascript:alert(1)",
	})
	assert.ErrorIs(t, err, ErrUnsafeRedirect)
	require.NoError(t, state.verifyComplete())
}

func TestDeleteFormRemovesSubmissionsInTransaction(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `forms` WHERE form_id = \\? AND user_id = \\?"),
			args:    []driver.Value{"abc123", "user-1"},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `submissions` WHERE form_id = \\?"),
			args:    []driver.Value{"abc123"},
			result:  scriptedResult{rowsAffected: 12},
		},
	}
	db, state := newScriptedGormDB(t, steps)

	require.NoError(t, NewFormService(db).Delete(context.Background(), "user-1", "abc123"))
	require.NoError(t, state.verifyComplete())
	assert.Equal(t, 1, state.commits)
}

func TestDeleteFormNotOwned(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `forms`"),
			args:    []driver.Value{"abc123", "intruder"},
			result:  scriptedResult{rowsAffected: 0},
		},
	}
	db, state := newScriptedGormDB(t, steps)

	err := NewFormService(db).Delete(context.Background(), "intruder", "abc123")
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.Equal(t, 1, state.rollbacks)
}

func TestBuildEmbedInfo(t *testing.T) {
	info := BuildEmbedInfo("https://app.formpilot.io/", "abc123")
	assert.Equal(t, "https://app.formpilot.io/api/submit?form_id=abc123", info.SubmitURL)
	assert.Equal(t, "_hp", info.HoneypotField)
	assert.Contains(t, info.Fields, "email")
}
