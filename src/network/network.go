package network

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/net/proxy"

	"github.com/mzezin/alert-bot-parser/src/logger"
	"github.com/mzezin/alert-bot-parser/src/models"
)

// -----------------------------------------------------------------------------

// DialFunc is the transport dial function handed to the message source.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// -----------------------------------------------------------------------------

// NetworkManager builds the transport dialer for the message source,
// optionally tunneling through a SOCKS5 proxy.
type NetworkManager struct {
	Config *models.MConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	return &NetworkManager{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Dialer returns the dial function used for the source's transport
// connections. With proxying disabled this is a plain net.Dialer.
func (nm *NetworkManager) Dialer() (DialFunc, error) {
	timeout := time.Duration(nm.Config.Network.RequestTimeout) * time.Second
	plain := &net.Dialer{Timeout: timeout}

	if !nm.Config.Network.Enabled || nm.Config.Network.Proxy == "" {
		return plain.DialContext, nil
	}

	var auth *proxy.Auth
	if nm.Config.Network.ProxyUser != "" {
		auth = &proxy.Auth{
			User:     nm.Config.Network.ProxyUser,
			Password: nm.Config.Network.ProxyPassword,
		}
	}

	socks, err := proxy.SOCKS5("tcp", nm.Config.Network.Proxy, auth, plain)
	if err != nil {
		return nil, fmt.Errorf("failed to build SOCKS5 dialer for '%s': %w", nm.Config.Network.Proxy, err)
	}

	contextDialer, ok := socks.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("SOCKS5 dialer for '%s' does not support context dialing", nm.Config.Network.Proxy)
	}

	nm.Logger.Info("Routing source traffic through SOCKS5 proxy %s", nm.Config.Network.Proxy)
	return contextDialer.DialContext, nil
}
