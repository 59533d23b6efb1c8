package imapmail

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/core"
)

// Connector dials the IMAP server and hands out scoped sessions. One
// request owns one session; the connector itself holds no connection state.
type Connector struct {
	address            string
	username           string
	password           string
	insecureSkipVerify bool
	logger             *zap.Logger
}

// NewConnector creates a new IMAP connector
func NewConnector(address, username, password string, insecureSkipVerify bool, logger *zap.Logger) *Connector {
	return &Connector{
		address:            address,
		username:           username,
		password:           password,
		insecureSkipVerify: insecureSkipVerify,
		logger:             logger,
	}
}

// Connect dials the server over TLS and authenticates. The returned session
// must be closed by the caller.
func (c *Connector) Connect(ctx context.Context) (core.MailSession, error) {
	opts := &imapclient.Options{}
	if c.insecureSkipVerify {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client, err := imapclient.DialTLS(c.address, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to dial IMAP server %s: %w", c.address, err)
	}

	if err := client.Login(c.username, c.password).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("IMAP login failed for %s: %w", c.username, err)
	}

	c.logger.Debug("IMAP session established", zap.String("server", c.address))

	return &Session{
		client: client,
		logger: c.logger,
	}, nil
}

// Session is one scoped IMAP connection.
type Session struct {
	client    *imapclient.Client
	logger    *zap.Logger
	closeOnce sync.Once
}

// SelectMailbox opens the named mailbox read-only
func (s *Session) SelectMailbox(ctx context.Context, name string) error {
	if _, err := s.client.Select(name, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return fmt.Errorf("failed to select mailbox %s: %w", name, err)
	}
	return nil
}

// Search returns sequence numbers of all messages received within the last
// daysBack days, oldest first as the server reports them.
func (s *Session) Search(ctx context.Context, daysBack int) ([]uint32, error) {
	criteria := &imap.SearchCriteria{}
	if daysBack > 0 {
		criteria.Since = time.Now().AddDate(0, 0, -daysBack)
	}

	data, err := s.client.Search(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("IMAP search failed: %w", err)
	}

	nums := data.AllSeqNums()
	s.logger.Debug("IMAP search complete",
		zap.Int("days_back", daysBack),
		zap.Int("matches", len(nums)))
	return nums, nil
}

// Fetch retrieves envelope and body for the given sequence numbers, bounded
// by max and preserving the order of ids. The server returns messages in
// mailbox order, so results are reordered afterwards.
func (s *Session) Fetch(ctx context.Context, ids []uint32, max int) ([]core.FetchedEmail, error) {
	if max > 0 && len(ids) > max {
		ids = ids[:max]
	}
	if len(ids) == 0 {
		return nil, nil
	}

	bodySection := &imap.FetchItemBodySection{}
	fetchOptions := &imap.FetchOptions{
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	msgs, err := s.client.Fetch(imap.SeqSetNum(ids...), fetchOptions).Collect()
	if err != nil {
		return nil, fmt.Errorf("IMAP fetch failed: %w", err)
	}

	bySeqNum := make(map[uint32]*core.Email, len(msgs))
	for _, msg := range msgs {
		bySeqNum[msg.SeqNum] = buildEmail(msg.Envelope, msg.FindBodySection(bodySection))
	}

	emails := make([]core.FetchedEmail, 0, len(ids))
	for _, id := range ids {
		if email, ok := bySeqNum[id]; ok {
			emails = append(emails, core.FetchedEmail{Seq: id, Email: email})
		}
	}

	s.logger.Debug("IMAP fetch complete",
		zap.Int("requested", len(ids)),
		zap.Int("fetched", len(emails)))
	return emails, nil
}

// Close logs out and closes the connection. Safe to call more than once;
// only the first call does anything.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if logoutErr := s.client.Logout().Wait(); logoutErr != nil {
			s.logger.Debug("IMAP logout failed", zap.Error(logoutErr))
		}
		err = s.client.Close()
	})
	return err
}
