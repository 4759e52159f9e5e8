package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/storefront/cart/pkg/cart"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/internal/localize"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/pricing"
	inRepository "github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/internal/payment"
	"github.com/Alturino/storefront/order/internal/repository"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
	"github.com/Alturino/storefront/order/pkg/status"
)

// orderCacheTTL bounds how long a read-through copy may outlive a transition
// that raced with it.
const orderCacheTTL = 5 * time.Minute

const evictAttempts = 3

type PaymentGateway interface {
	Handoff(c context.Context, param payment.Handoff) (payment.Redirect, error)
}

type OrderService struct {
	pool     *pgxpool.Pool
	queries  *inRepository.Queries
	cache    *redis.Client
	events   event.Publisher
	payment  PaymentGateway
	settings pricing.Settings
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *inRepository.Queries,
	cache *redis.Client,
	events event.Publisher,
	payment PaymentGateway,
	settings pricing.Settings,
) *OrderService {
	return &OrderService{
		pool:     pool,
		queries:  queries,
		cache:    cache,
		events:   events,
		payment:  payment,
		settings: settings,
	}
}

func persistenceError(msg string, err error) error {
	return fmt.Errorf("%w: %s with error=%w", inErrors.ErrPersistence, msg, err)
}

// CreateOrder materializes the submitted cart lines into a PENDING order at
// the submitted unit prices. The order row and its items are written in one
// transaction; the order.created event and the payment handoff run once after
// commit and never undo the order when they fail.
func (s *OrderService) CreateOrder(
	c context.Context,
	param request.CreateOrder,
) (response.Checkout, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService CreateOrder").
		Int(constants.KEY_CART_ITEMS_COUNT, len(param.Items)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating order").Logger()
	logger.Info().Msg("validating order")
	if len(param.Items) == 0 {
		err := fmt.Errorf("%w: %w", inErrors.ErrEmptyCart, inErrors.NewValidationError(inErrors.FieldError{
			Field:   "items",
			Message: "must contain at least one item",
		}))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		otel.CheckoutTotal.WithLabelValues(otel.ResultFailure).Inc()
		return response.Checkout{}, err
	}
	if err := validate.Struct(param); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		otel.CheckoutTotal.WithLabelValues(otel.ResultFailure).Inc()
		return response.Checkout{}, err
	}
	logger.Info().Msg("validated order")

	logger = logger.With().Str(constants.KEY_PROCESS, "snapshotting cart lines").Logger()
	logger.Info().Msg("snapshotting cart lines")
	lines, err := cartFromLines(param.Items)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		otel.CheckoutTotal.WithLabelValues(otel.ResultFailure).Inc()
		return response.Checkout{}, err
	}
	totals := pricing.ComputeTotals(lines.RawSubtotal(), s.settings)
	orderID := uuid.New()
	logger = logger.With().
		Str(constants.KEY_ORDER_ID, orderID.String()).
		Object(constants.KEY_TOTALS, totals).
		Logger()
	span.SetAttributes(attribute.String(constants.KEY_ORDER_ID, orderID.String()))
	logger.Info().Msg("snapshotted cart lines")

	c = logger.WithContext(c)
	order, err := s.insertOrder(c, orderID, param, lines.Items(), totals)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		otel.CheckoutTotal.WithLabelValues(otel.ResultFailure).Inc()
		return response.Checkout{}, err
	}
	otel.CheckoutTotal.WithLabelValues(otel.ResultSuccess).Inc()
	otel.OrdersCreated.Add(c, 1, metric.WithAttributes(attribute.Bool("guest", param.OwnerID == nil)))

	s.publish(c, event.OrderEvent{
		Type:          event.OrderCreated,
		OrderID:       order.ID,
		OwnerID:       order.OwnerID,
		Status:        order.Status,
		Total:         order.Total,
		CustomerName:  param.CustomerForm.CustomerName(),
		CustomerEmail: param.CustomerForm.Email,
	})

	checkout := response.Checkout{OrderID: order.ID, Total: order.Total, Totals: totals}
	if redirect, ok := s.handoff(c, order, param.CustomerForm); ok {
		checkout.RedirectURL = redirect.RedirectURL
		if redirect.Reference != "" {
			order.PaymentReference = &redirect.Reference
		}
	}

	return checkout, nil
}

func cartFromLines(items []request.CartLineItem) (*cart.Cart, error) {
	lines := cart.New()
	for i, item := range items {
		price, err := cart.NewPrice(item.UnitPrice)
		if err != nil {
			return nil, inErrors.NewValidationError(inErrors.FieldError{
				Field:   fmt.Sprintf("items[%d].unitPrice", i),
				Message: err.Error(),
			})
		}
		quantity, err := cart.NewQuantity(item.Quantity)
		if err != nil {
			return nil, inErrors.NewValidationError(inErrors.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: err.Error(),
			})
		}
		if err = lines.AddItem(item.ProductID, price, quantity, item.DisplayName, ""); err != nil {
			return nil, inErrors.NewValidationError(inErrors.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: err.Error(),
			})
		}
	}
	return lines, nil
}

func (s *OrderService) insertOrder(
	c context.Context,
	orderID uuid.UUID,
	param request.CreateOrder,
	lines []cart.LineItem,
	totals pricing.Totals,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService insertOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService insertOrder").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "marshaling shipping address").Logger()
	address, err := json.Marshal(param.CustomerForm)
	if err != nil {
		err = fmt.Errorf("failed marshaling shipping address with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = persistenceError("failed initializing transaction", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer func() {
		logger := logger.With().Str(constants.KEY_PROCESS, "rolling back transaction").Logger()
		err := tx.Rollback(c)
		if err != nil {
			if errors.Is(err, pgx.ErrTxClosed) {
				return
			}
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("rolled back transaction")
		span.AddEvent("rolled back transaction")
	}()
	queries := s.queries.WithTx(tx)

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	inserted, err := queries.InsertOrder(c, inRepository.InsertOrderParams{
		ID:              orderID,
		UserID:          param.OwnerID,
		Status:          repository.RepositoryStatus(status.Initial),
		Subtotal:        inRepository.NumericFromDecimal(totals.Subtotal),
		Tax:             inRepository.NumericFromDecimal(totals.Tax),
		ShippingFee:     inRepository.NumericFromDecimal(totals.Shipping),
		TaxRatePercent:  inRepository.NumericFromDecimal(s.settings.TaxRatePercent),
		Total:           inRepository.NumericFromDecimal(totals.GrandTotal),
		ShippingAddress: address,
	})
	if err != nil {
		err = persistenceError("failed inserting order", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting orderItems").Logger()
	logger.Info().Msg("inserting orderItems")
	args := make([]inRepository.InsertOrderItemsParams, 0, len(lines))
	for _, line := range lines {
		args = append(args, inRepository.InsertOrderItemsParams{
			OrderID:     orderID,
			ProductID:   line.ProductID,
			DisplayName: line.DisplayName,
			Quantity:    int32(line.Quantity.Int()),
			Price:       inRepository.NumericFromDecimal(line.UnitPrice.Decimal()),
		})
	}
	count, err := queries.InsertOrderItems(c, args)
	if err != nil {
		err = persistenceError("failed inserting orderItems", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if count != int64(len(args)) {
		err = persistenceError("failed inserting orderItems", fmt.Errorf("inserted %d of %d items", count, len(args)))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("inserted orderItems count=%d", count)

	logger = logger.With().Str(constants.KEY_PROCESS, "getting inserted orderItems").Logger()
	items, err := queries.FindOrderItemsByOrderId(c, orderID)
	if err != nil {
		err = persistenceError("failed getting inserted orderItems", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = persistenceError("failed committing transaction", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	order, err := repository.ResponseOrder(inserted)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	order.OrderItems = repository.ResponseOrderItems(items)

	return order, nil
}

// handoff reports false when the provider could not be reached; the order
// stays PENDING without a payment reference.
func (s *OrderService) handoff(
	c context.Context,
	order response.Order,
	form request.ShippingAddress,
) (payment.Redirect, bool) {
	c, span := otel.Tracer.Start(c, "OrderService handoff")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService handoff").
		Str(constants.KEY_PROCESS, "handing order to payment provider").
		Logger()

	if s.payment == nil {
		return payment.Redirect{}, false
	}

	logger.Info().Msg("handing order to payment provider")
	redirect, err := s.payment.Handoff(c, payment.Handoff{
		OrderID:       order.ID,
		Amount:        order.Total,
		CustomerName:  form.CustomerName(),
		CustomerEmail: form.Email,
		CustomerPhone: form.Phone,
	})
	if err != nil {
		err = fmt.Errorf("failed handing order to payment provider with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		otel.PaymentHandoffFailures.Inc()
		return payment.Redirect{}, false
	}
	logger.Info().Msg("handed order to payment provider")

	if redirect.Reference == "" {
		return redirect, true
	}

	logger = logger.With().
		Str(constants.KEY_PROCESS, "saving payment reference").
		Str(constants.KEY_PAYMENT_REFERENCE, redirect.Reference).
		Logger()
	logger.Info().Msg("saving payment reference")
	reference := redirect.Reference
	rows, err := s.queries.SetPaymentReference(c, inRepository.SetPaymentReferenceParams{
		ID:               order.ID,
		PaymentReference: &reference,
	})
	if err != nil {
		err = fmt.Errorf("failed saving payment reference with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return payment.Redirect{RedirectURL: redirect.RedirectURL}, true
	}
	if rows == 0 {
		logger.Warn().Msg("payment reference already set")
		return payment.Redirect{RedirectURL: redirect.RedirectURL}, true
	}
	logger.Info().Msg("saved payment reference")

	return redirect, true
}

// FindOrderById returns the order with its items. Item names are resolved
// from the catalog in lang, falling back to the name frozen at checkout.
// Orders with an owner are only visible to that owner and to admins.
func (s *OrderService) FindOrderById(
	c context.Context,
	param request.FindOrderById,
	lang localize.Language,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService FindOrderById").
		Str(constants.KEY_ORDER_ID, param.OrderID.String()).
		Str(constants.KEY_LANGUAGE, string(lang)).
		Logger()

	c = logger.WithContext(c)
	order, err := s.findOrder(c, param.OrderID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "checking order owner").Logger()
	if order.OwnerID != nil && !param.IsAdmin && (param.UserID == nil || *param.UserID != *order.OwnerID) {
		err = fmt.Errorf("%w: orderId=%s", inErrors.ErrOrderNotFound, param.OrderID)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	c = logger.WithContext(c)
	order.OrderItems = s.localizeItems(c, order.OrderItems, lang)

	return order, nil
}

// findOrder reads through the cache.
func (s *OrderService) findOrder(c context.Context, orderID uuid.UUID) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService findOrder")
	defer span.End()

	cacheKey := fmt.Sprintf(constants.CACHE_KEY_ORDER, orderID)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService findOrder").
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding order in cache").Logger()
	logger.Trace().Msg("finding order in cache")
	cached, err := s.cache.Get(c, cacheKey).Bytes()
	if err == nil {
		order := response.Order{}
		if err = json.Unmarshal(cached, &order); err == nil {
			logger.Trace().Msg("found order in cache")
			return order, nil
		}
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.Warn().Err(err).Msg("failed reading order from cache")
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "finding order in database").Logger()
	logger.Info().Msg("finding order in database")
	row, err := s.queries.FindOrderById(c, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("%w: orderId=%s", inErrors.ErrOrderNotFound, orderID)
		} else {
			err = persistenceError("failed finding order", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	order, err := repository.ResponseOrder(row)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	items, err := s.queries.FindOrderItemsByOrderId(c, orderID)
	if err != nil {
		err = persistenceError("failed finding orderItems", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	order.OrderItems = repository.ResponseOrderItems(items)
	logger.Info().Msg("found order in database")

	c = logger.WithContext(c)
	s.cacheOrder(c, order)

	return order, nil
}

func (s *OrderService) localizeItems(
	c context.Context,
	items []response.OrderItem,
	lang localize.Language,
) []response.OrderItem {
	c, span := otel.Tracer.Start(c, "OrderService localizeItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService localizeItems").
		Str(constants.KEY_PROCESS, "finding products of orderItems").
		Logger()

	if len(items) == 0 {
		return items
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.queries.FindProductsByIds(c, ids)
	if err != nil {
		err = fmt.Errorf("failed finding products of orderItems with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg("keeping names frozen at checkout")
		return items
	}

	names := make(map[uuid.UUID]localize.Text, len(products))
	for _, p := range products {
		names[p.ID] = p.LocalizedName()
	}
	localized := make([]response.OrderItem, len(items))
	for i, item := range items {
		if text, ok := names[item.ProductID]; ok {
			if name := text.Resolve(lang); name != "" {
				item.DisplayName = name
			}
		}
		localized[i] = item
	}
	return localized
}

func (s *OrderService) FindOrders(
	c context.Context,
	param request.FindOrders,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService FindOrders").
		Str(constants.KEY_PROCESS, "finding orders by userId").
		Str(constants.KEY_USER_ID, param.UserID.String()).
		Logger()

	logger.Info().Msg("finding orders")
	userID := param.UserID
	rows, err := s.queries.FindOrdersByUserId(c, &userID)
	if err != nil {
		err = persistenceError(fmt.Sprintf("failed finding orders by userId=%s", param.UserID), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	orders := make([]response.Order, 0, len(rows))
	for _, row := range rows {
		order, err := repository.ResponseOrder(row)
		if err != nil {
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		orders = append(orders, order)
	}
	logger.Info().Int(constants.KEY_ORDERS, len(orders)).Msg("found orders")

	return orders, nil
}

// TransitionOrder moves the order to requested when the state machine allows
// it. The write is a compare-and-set on the status that was read, so of two
// concurrent transitions only one commits; the other gets
// ErrTransitionConflict and must re-read the order.
func (s *OrderService) TransitionOrder(
	c context.Context,
	orderID uuid.UUID,
	requested string,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService TransitionOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService TransitionOrder").
		Str(constants.KEY_ORDER_ID, orderID.String()).
		Str(constants.KEY_REQUESTED_STATUS, requested).
		Logger()

	target, err := status.Parse(requested)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	fail := func(err error) (response.Order, error) {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		otel.TransitionTotal.WithLabelValues(target.String(), otel.ResultFailure).Inc()
		return response.Order{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "finding current status").Logger()
	logger.Info().Msg("finding current status")
	current, err := s.queries.FindOrderById(c, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fail(fmt.Errorf("%w: orderId=%s", inErrors.ErrOrderNotFound, orderID))
		}
		return fail(persistenceError("failed finding order", err))
	}
	from := status.Status(current.Status)
	logger = logger.With().Str(constants.KEY_ORDER_STATUS, from.String()).Logger()
	logger.Info().Msg("found current status")

	if err = status.Transition(from, target); err != nil {
		return fail(err)
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "updating status").Logger()
	logger.Info().Msg("updating status")
	updated, err := s.queries.UpdateOrderStatus(c, inRepository.UpdateOrderStatusParams{
		Status:         repository.RepositoryStatus(target),
		ID:             orderID,
		ExpectedStatus: repository.RepositoryStatus(from),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fail(fmt.Errorf("%w: orderId=%s is no longer %s", inErrors.ErrTransitionConflict, orderID, from))
		}
		return fail(persistenceError("failed updating status", err))
	}
	logger.Info().Msg("updated status")
	otel.TransitionTotal.WithLabelValues(target.String(), otel.ResultSuccess).Inc()

	order, err := repository.ResponseOrder(updated)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	items, err := s.queries.FindOrderItemsByOrderId(c, orderID)
	if err != nil {
		logger.Warn().Err(err).Msg("failed finding orderItems after transition")
	} else {
		order.OrderItems = repository.ResponseOrderItems(items)
	}

	c = logger.WithContext(c)
	s.evictOrder(c, orderID)
	s.publish(c, event.OrderEvent{
		Type:           event.OrderStatusChanged,
		OrderID:        order.ID,
		OwnerID:        order.OwnerID,
		Status:         order.Status,
		PreviousStatus: from.String(),
		Total:          order.Total,
		CustomerName:   order.ShippingAddress.CustomerName(),
		CustomerEmail:  order.ShippingAddress.Email,
	})

	return order, nil
}

func (s *OrderService) cacheOrder(c context.Context, order response.Order) {
	cacheKey := fmt.Sprintf(constants.CACHE_KEY_ORDER, order.ID)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService cacheOrder").
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	payload, err := json.Marshal(order)
	if err != nil {
		logger.Warn().Err(err).Msg("failed marshaling order for cache")
		return
	}
	if err = s.cache.Set(c, cacheKey, payload, orderCacheTTL).Err(); err != nil {
		logger.Warn().Err(err).Msg("failed caching order")
		return
	}
	logger.Trace().Msg("cached order")
}

// evictOrder drops the cached copy after a committed write. Writers never
// cache, so two racing transitions cannot leave the older status behind.
func (s *OrderService) evictOrder(c context.Context, orderID uuid.UUID) {
	cacheKey := fmt.Sprintf(constants.CACHE_KEY_ORDER, orderID)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderService evictOrder").
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	var err error
	for attempt := 1; attempt <= evictAttempts; attempt++ {
		if err = s.cache.Del(c, cacheKey).Err(); err == nil {
			logger.Trace().Msg("evicted order")
			return
		}
		logger.Warn().Err(err).Int("attempt", attempt).Msg("failed evicting order")
	}
	err = fmt.Errorf("failed evicting order with error=%w", err)
	logger.Error().Err(err).Msg(err.Error())
}

func (s *OrderService) publish(c context.Context, ev event.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(c, ev); err != nil {
		zerolog.Ctx(c).Warn().
			Err(err).
			Str(constants.KEY_TAG, "OrderService publish").
			Str(constants.KEY_ORDER_ID, ev.OrderID.String()).
			Msgf("failed publishing %s", ev.Type)
	}
}
