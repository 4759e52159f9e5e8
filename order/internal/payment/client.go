package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/order/internal/otel"
)

type Handoff struct {
	OrderID       uuid.UUID       `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	ReturnURL     string          `json:"returnUrl,omitempty"`
}

type Redirect struct {
	RedirectURL string `json:"redirectUrl"`
	Reference   string `json:"reference"`
}

// Client hands a persisted order to the external payment provider. It does
// not retry.
type Client struct {
	baseURL   string
	returnURL string
	client    *http.Client
}

func NewClient(cfg config.Payment) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		returnURL: cfg.ReturnURL,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
	}
}

func (p *Client) Handoff(c context.Context, param Handoff) (Redirect, error) {
	c, span := otel.Tracer.Start(c, "PaymentClient Handoff")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "PaymentClient Handoff").
		Str(constants.KEY_ORDER_ID, param.OrderID.String()).
		Logger()

	if param.ReturnURL == "" {
		param.ReturnURL = p.returnURL
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "creating payment request").Logger()
	logger.Info().Msg("creating payment request")
	body, err := json.Marshal(param)
	if err != nil {
		err = fmt.Errorf("failed marshaling payment request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Redirect{}, err
	}
	req, err := http.NewRequestWithContext(c, http.MethodPost, p.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		err = fmt.Errorf("failed creating payment request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Redirect{}, err
	}
	req.Header.Set(inHttp.KEY_HEADER_CONTENT_TYPE, inHttp.VALUE_HEADER_APPLICATION_JSON)
	if requestID := log.RequestIDFromContext(c); requestID != "" {
		req.Header.Set(inHttp.KEY_HEADER_REQUEST_ID, requestID)
	}
	logger.Info().Msg("created payment request")

	logger = logger.With().Str(constants.KEY_PROCESS, "sending payment request").Logger()
	logger.Info().Msg("sending payment request")
	resp, err := p.client.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: failed sending payment request with error=%w", inErrors.ErrPaymentHandoff, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Redirect{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err = fmt.Errorf("%w: provider returned status code=%d with message=%s", inErrors.ErrPaymentHandoff, resp.StatusCode, string(message))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Redirect{}, err
	}

	redirect := Redirect{}
	if err = json.NewDecoder(resp.Body).Decode(&redirect); err != nil {
		err = fmt.Errorf("%w: failed decoding payment response with error=%w", inErrors.ErrPaymentHandoff, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Redirect{}, err
	}
	if redirect.RedirectURL == "" {
		err = fmt.Errorf("%w: provider returned empty redirect url", inErrors.ErrPaymentHandoff)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Redirect{}, err
	}
	logger.Info().Str(constants.KEY_PAYMENT_REFERENCE, redirect.Reference).Msg("sent payment request")

	return redirect, nil
}
