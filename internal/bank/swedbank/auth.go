package swedbank

import (
	"context"

	"github.com/bankfeed-dev/bankfeed/internal/auth"
	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/session"
)

const (
	loginPath       = "/touch/login"
	loginStatusPath = "/touch/login/status"
)

// authResponse is returned both from the initial credentials post and
// from the status polls. Before confirmation only the challenge and
// session identifiers are set; after it the customer fields appear.
type authResponse struct {
	Challenge     string `json:"challenge"`
	SessionID     string `json:"sessionId"`
	SecurityID    string `json:"securityId"`
	PollingStatus string `json:"pollingStatus"`
	LoginHash     string `json:"loginHash"`
	CustomerName  string `json:"customerName"`
}

// smartIDStarter submits the user's credentials and hands back the
// challenge code together with a poller bound to the pending session.
type smartIDStarter struct {
	client *session.Client
	userID string
	ssn    string
}

func (s *smartIDStarter) Start(ctx context.Context) (*auth.Challenge, auth.Poller, error) {
	var resp authResponse
	err := s.client.PostJSON(ctx, loginPath, map[string]string{
		"userId":           s.userID,
		"socialSecurityId": s.ssn,
	}, &resp)
	if err != nil {
		return nil, nil, err
	}
	if resp.Challenge == "" || resp.SessionID == "" {
		return nil, nil, bankerr.Parsef("login response carried no challenge")
	}

	challenge := &auth.Challenge{
		Code:       resp.Challenge,
		SessionID:  resp.SessionID,
		SecurityID: resp.SecurityID,
	}
	poller := &smartIDPoller{client: s.client, sessionID: resp.SessionID, securityID: resp.SecurityID}
	return challenge, poller, nil
}

// smartIDPoller asks the status endpoint whether the user has confirmed
// the challenge yet. Proof of login is a populated hash or identity
// field; anything else counts as still pending.
type smartIDPoller struct {
	client     *session.Client
	sessionID  string
	securityID string
}

func (p *smartIDPoller) Poll(ctx context.Context) (*auth.Confirmation, error) {
	var resp authResponse
	err := p.client.PostJSON(ctx, loginStatusPath, map[string]string{
		"sessionId":  p.sessionID,
		"securityId": p.securityID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.LoginHash != "" {
		return &auth.Confirmation{Hash: resp.LoginHash, Identity: resp.CustomerName}, nil
	}
	if resp.CustomerName != "" {
		return &auth.Confirmation{Identity: resp.CustomerName}, nil
	}
	return nil, nil
}
