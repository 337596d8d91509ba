package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func TestUserService_ReplaceLaterEntryWins(t *testing.T) {
	svc := NewUserService(nil)
	svc.Replace([]ledger.User{
		{ID: 3, Name: "Jordan", PIN: "4455"},
		{ID: 3, Name: "Jordan Updated", PIN: "9999", Admin: true},
	})

	u, ok := svc.FindByID(3)
	require.True(t, ok)
	assert.Equal(t, "Jordan Updated", u.Name)
	assert.True(t, u.Admin)
}

func TestUserService_ReplaceIsAuthoritative(t *testing.T) {
	svc := NewUserService(nil)
	svc.Replace([]ledger.User{{ID: 1, Name: "Admin", PIN: "0000", Admin: true}})
	svc.Replace([]ledger.User{{ID: 2, Name: "Alex", PIN: "0012"}})

	_, ok := svc.FindByID(1)
	assert.False(t, ok, "reload clears earlier entries")
	_, ok = svc.FindByID(2)
	assert.True(t, ok)
}

func TestUserService_Authenticate(t *testing.T) {
	svc := NewUserService(nil)
	svc.Replace([]ledger.User{{ID: 3, Name: "Jordan", PIN: "4455"}})

	session, err := svc.Authenticate(3, "4455")
	require.NoError(t, err)
	assert.Equal(t, "Jordan", session.User.Name)

	_, err = svc.Authenticate(99, "4455")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = svc.Authenticate(3, "0000")
	assert.ErrorIs(t, err, ErrIncorrectPIN)

	_, err = svc.Authenticate(3, " 4455")
	assert.ErrorIs(t, err, ErrIncorrectPIN, "pins match exactly, no trimming")
}

func TestUserService_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.csv")
	require.NoError(t, os.WriteFile(path, []byte(""+
		"userid|name|pin|access\n"+
		"1|Admin|0000|true\n"+
		"9|Alex|0012\n"), 0o644))

	svc := NewUserService(storage.NewProfileFile(path))
	assert.Equal(t, 2, svc.Load())

	admin, ok := svc.FindByID(1)
	require.True(t, ok)
	assert.True(t, admin.Admin)
}

func TestUserService_LoadMissingFileStartsEmpty(t *testing.T) {
	svc := NewUserService(storage.NewProfileFile(filepath.Join(t.TempDir(), "absent.csv")))
	assert.Equal(t, 0, svc.Load())

	_, ok := svc.FindByID(1)
	assert.False(t, ok)
}
