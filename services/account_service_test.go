package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentityAdmin struct {
	deleted []string
	err     error
}

func (f *fakeIdentityAdmin) DeleteUser(_ context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return f.err
}

func accountDeleteSteps() []*queryStep {
	return []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `submissions` WHERE form_id IN \\(SELECT `form_id` FROM `forms` WHERE user_id = \\?\\)"),
			args:    []driver.Value{"user-1"},
			result:  scriptedResult{rowsAffected: 7},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `forms` WHERE user_id = \\?"),
			args:    []driver.Value{"user-1"},
			result:  scriptedResult{rowsAffected: 2},
		},
	}
}

func TestDeleteAccountCascadesAndAudits(t *testing.T) {
	steps := append(accountDeleteSteps(), &queryStep{
		kind:    kindExec,
		pattern: regexp.MustCompile("INSERT INTO `admin_audit`"),
		args:    []driver.Value{anyArg, "account_deleted", "user-1", `{"forms_deleted":2}`},
	})
	db, state := newScriptedGormDB(t, steps)
	identity := &fakeIdentityAdmin{}

	err := NewAccountService(db, identity, nil).DeleteAccount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, identity.deleted)
	assert.Equal(t, 1, state.commits)
	require.NoError(t, state.verifyComplete())
}

func TestDeleteAccountIgnoresAuditFailure(t *testing.T) {
	steps := append(accountDeleteSteps(), &queryStep{
		kind:    kindExec,
		pattern: regexp.MustCompile("INSERT INTO `admin_audit`"),
		err:     errors.New("table missing"),
	})
	db, state := newScriptedGormDB(t, steps)

	err := NewAccountService(db, &fakeIdentityAdmin{}, nil).DeleteAccount(context.Background(), "user-1")
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())
}

func TestDeleteAccountStopsWhenIdentityDeleteFails(t *testing.T) {
	db, state := newScriptedGormDB(t, accountDeleteSteps())
	identity := &fakeIdentityAdmin{err: errors.New("provider unavailable")}

	err := NewAccountService(db, identity, nil).DeleteAccount(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete identity")
	// no audit row was expected or written
	require.NoError(t, state.verifyComplete())
}

func TestDeleteAccountRollsBackOnDataError(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `submissions`"),
			err:     errors.New("lock wait timeout"),
		},
	}
	db, state := newScriptedGormDB(t, steps)
	identity := &fakeIdentityAdmin{}

	err := NewAccountService(db, identity, nil).DeleteAccount(context.Background(), "user-1")
	require.Error(t, err)
	assert.Empty(t, identity.deleted)
	assert.Equal(t, 1, state.rollbacks)
}
