package transaction

import (
	"strconv"
	"strings"

	"github.com/carson-networks/ledger-server/internal/service"
)

// authenticator resolves credential headers into a session.
type authenticator interface {
	Authenticate(id int, pin string) (*service.Session, error)
}

// Credentials are the session headers every ledger endpoint accepts. A
// request without valid credentials is unauthenticated and sees an empty
// ledger; it is not an error.
type Credentials struct {
	UserID  string `header:"X-User-ID" doc:"Numeric user id"`
	UserPIN string `header:"X-User-PIN" doc:"User pin, matched exactly"`
}

// resolveSession turns credential headers into a session, or nil when the
// id is missing, non-numeric, or the pair does not authenticate.
func resolveSession(auth authenticator, creds Credentials) *service.Session {
	if creds.UserID == "" {
		return nil
	}
	id, err := strconv.Atoi(strings.TrimSpace(creds.UserID))
	if err != nil {
		return nil
	}
	session, err := auth.Authenticate(id, creds.UserPIN)
	if err != nil {
		return nil
	}
	return session
}
