package payments

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	"github.com/Devaraju89/OneKart-sub000/pkg/metrics"
)

// GatewayOrder is the gateway's record of a created payment order. Amount is
// in minor units (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway creates payment orders upstream. Implementations never retry;
// every failure is terminal for the request.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type restGateway struct {
	client *resty.Client
}

// NewGateway builds the HTTP gateway client. The key pair doubles as basic
// auth credentials; a missing pair is rejected before any request is made.
func NewGateway(cfg config.GatewayConfig) (Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.KeyID, cfg.Secret).
		SetHeader("Content-Type", "application/json")
	return &restGateway{client: client}, nil
}

func (g *restGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	var (
		order GatewayOrder
		gwErr gatewayError
	)
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"amount":   amountMinor,
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		SetError(&gwErr).
		Post("/v1/orders")
	if err != nil {
		metrics.GatewayRequests.WithLabelValues("error").Inc()
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "payment gateway unreachable")
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		metrics.GatewayRequests.WithLabelValues("rejected").Inc()
		return nil, pkgerrors.New(pkgerrors.CodeUpstream,
			fmt.Sprintf("payment gateway returned %d: %s", resp.StatusCode(), gwErr.Error.Description))
	}
	if order.ID == "" {
		metrics.GatewayRequests.WithLabelValues("rejected").Inc()
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "payment gateway returned no order id")
	}
	metrics.GatewayRequests.WithLabelValues("ok").Inc()
	return &order, nil
}
