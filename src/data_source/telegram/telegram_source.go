package telegram

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/dcs"
	"github.com/gotd/td/tg"
	"golang.org/x/term"

	"github.com/mzezin/alert-bot-parser/src/logger"
	"github.com/mzezin/alert-bot-parser/src/models"
	"github.com/mzezin/alert-bot-parser/src/network"
)

// -----------------------------------------------------------------------------

// TelegramSource fetches message history pages from a Telegram group over
// MTProto. The session is persisted to a file, so the interactive login is
// only needed on the first run.
type TelegramSource struct {
	Config *models.MConfig
	Logger *logger.Logger
	client *telegram.Client
	api    *tg.Client
}

// -----------------------------------------------------------------------------

func NewTelegramSource(cfg *models.MConfig, dial network.DialFunc, log *logger.Logger) *TelegramSource {
	opts := telegram.Options{
		SessionStorage: &session.FileStorage{Path: cfg.Telegram.SessionFile},
	}
	if dial != nil {
		opts.Resolver = dcs.Plain(dcs.PlainOptions{Dial: dcs.DialFunc(dial)})
	}

	return &TelegramSource{
		Config: cfg,
		Logger: log,
		client: telegram.NewClient(cfg.Telegram.APIID, cfg.Telegram.APIHash, opts),
	}
}

// -----------------------------------------------------------------------------

func (s *TelegramSource) Name() string {
	return fmt.Sprintf("telegram-%d", s.Config.Telegram.GroupID)
}

// -----------------------------------------------------------------------------

// Run connects to Telegram, performs the auth flow when the stored session
// is missing or expired, and invokes fn with a ready source. The connection
// is torn down when fn returns; any connection or auth failure is fatal to
// the run.
func (s *TelegramSource) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.client.Run(ctx, func(ctx context.Context) error {
		s.Logger.Info("Connecting to Telegram...")

		flow := auth.NewFlow(terminalAuth{phone: s.Config.Telegram.Phone}, auth.SendCodeOptions{})
		if err := s.client.Auth().IfNecessary(ctx, flow); err != nil {
			return fmt.Errorf("telegram authentication failed: %w", err)
		}

		if self, err := s.client.Self(ctx); err == nil {
			s.Logger.Info("Connected as %s (id %d)", self.Username, self.ID)
		}

		s.api = s.client.API()
		return fn(ctx)
	})
}

// -----------------------------------------------------------------------------

// FetchPage requests one messages.getHistory page of the configured group,
// newest-first, starting strictly below offsetID.
func (s *TelegramSource) FetchPage(ctx context.Context, offsetID int, limit int) ([]models.MRawMessage, error) {
	if s.api == nil {
		return nil, fmt.Errorf("source is not connected; FetchPage must run inside Run")
	}

	res, err := s.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer:     &tg.InputPeerChat{ChatID: s.Config.Telegram.GroupID},
		OffsetID: offsetID,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("messages.getHistory failed: %w", err)
	}

	var raw []tg.MessageClass
	switch h := res.(type) {
	case *tg.MessagesMessages:
		raw = h.Messages
	case *tg.MessagesMessagesSlice:
		raw = h.Messages
	case *tg.MessagesChannelMessages:
		raw = h.Messages
	default:
		return nil, fmt.Errorf("unexpected history response %T", res)
	}

	page := make([]models.MRawMessage, 0, len(raw))
	for _, mc := range raw {
		switch msg := mc.(type) {
		case *tg.Message:
			page = append(page, models.MRawMessage{ID: msg.ID, Date: int64(msg.Date), Text: msg.Message})
		case *tg.MessageService:
			// Service updates (joins, pins) carry no body; kept as empty
			// text so their ids still advance the pagination offset.
			page = append(page, models.MRawMessage{ID: msg.ID, Date: int64(msg.Date)})
		}
	}
	return page, nil
}

// -----------------------------------------------------------------------------
// Interactive terminal auth
// -----------------------------------------------------------------------------

// terminalAuth prompts on stdin for whatever the login flow needs. Only used
// when no valid stored session exists.
type terminalAuth struct {
	phone string
}

func (a terminalAuth) Phone(_ context.Context) (string, error) {
	if a.phone != "" {
		return a.phone, nil
	}
	return prompt("Enter phone number: ")
}

func (a terminalAuth) Password(_ context.Context) (string, error) {
	fmt.Print("Enter 2FA password: ")
	pwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pwd)), nil
}

func (a terminalAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	return prompt("Enter the code you received: ")
}

func (a terminalAuth) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, fmt.Errorf("signing up a new account is not supported")
}

// -----------------------------------------------------------------------------

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
