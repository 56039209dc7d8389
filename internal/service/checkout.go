package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/pricing"
	"travel-journal-bff/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type CheckoutState string

const (
	CheckoutLoading    CheckoutState = "loading"
	CheckoutReady      CheckoutState = "ready"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSuccess    CheckoutState = "success"
	CheckoutFailed     CheckoutState = "failed"
)

const TransactionsPath = "/transactions"

var (
	ErrCheckoutNotStarted  = errors.New("checkout not started")
	ErrCheckoutNotReady    = errors.New("checkout is not ready")
	ErrSubmissionInFlight  = errors.New("a checkout submission is already in progress")
	ErrPaymentMethodAbsent = errors.New("payment method not found")
)

const submitFallbackMessage = "Failed to create the transaction. Please try again."

// checkoutIdleTTL is how long an untouched checkout is kept before Start
// sweeps it away.
const checkoutIdleTTL = 2 * time.Hour

// Checkout is a snapshot of one client's checkout.
type Checkout struct {
	State           CheckoutState
	SelectedIDs     []string
	Items           []model.CartLineItem
	PaymentMethods  []model.PaymentMethod
	PaymentMethodID string
	Promo           *model.Promo
	Notes           string
	LastError       string
	TransactionID   string

	// owner is the session token the checkout was started with.
	owner   string
	touched time.Time
}

func (c Checkout) Totals() pricing.Totals {
	return pricing.ComputeTotals(c.Items, c.Promo)
}

// SubmitResult is what a successful submission hands back to the page.
type SubmitResult struct {
	TransactionID string
	Totals        pricing.Totals
	RedirectTo    string
}

type CheckoutService interface {
	Start(ctx context.Context, clientID, token string, cartIDs []string) (Checkout, error)
	SelectPaymentMethod(ctx context.Context, clientID, token, paymentMethodID string) (Checkout, error)
	ApplyPromo(ctx context.Context, clientID, token, code string) (Checkout, error)
	SetNotes(ctx context.Context, clientID, token, notes string) (Checkout, error)
	View(ctx context.Context, clientID, token string) (Checkout, error)
	Submit(ctx context.Context, clientID, token string) (*SubmitResult, error)
	// Discard drops the client's checkout. Called whenever the session changes.
	Discard(clientID string)
}

type checkoutServiceImpl struct {
	travelClient client.TravelClient
	totalsRepo   repository.TotalsRepository
	logger       *zap.Logger

	now func() time.Time

	mu        sync.Mutex
	checkouts map[string]*Checkout
}

func NewCheckoutService(
	travelClient client.TravelClient,
	totalsRepo repository.TotalsRepository,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		travelClient: travelClient,
		totalsRepo:   totalsRepo,
		logger:       logger,
		now:          time.Now,
		checkouts:    map[string]*Checkout{},
	}
}

// Start loads the cart subset and the payment methods concurrently. Both
// must succeed before the checkout becomes ready.
func (s *checkoutServiceImpl) Start(ctx context.Context, clientID, token string, cartIDs []string) (Checkout, error) {
	s.mu.Lock()
	s.sweep()
	if current, ok := s.checkouts[clientID]; ok && current.State == CheckoutSubmitting {
		s.mu.Unlock()
		return Checkout{}, ErrSubmissionInFlight
	}
	loading := &Checkout{State: CheckoutLoading, SelectedIDs: cartIDs, owner: token, touched: s.now()}
	s.checkouts[clientID] = loading
	s.mu.Unlock()

	var (
		items   []model.CartLineItem
		methods []model.PaymentMethod
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		carts, err := s.travelClient.ListCarts(gctx, token)
		if err != nil {
			return fmt.Errorf("travel api list carts: %w", err)
		}
		items = filterCarts(carts, cartIDs)
		return nil
	})
	g.Go(func() error {
		pm, err := s.travelClient.ListPaymentMethods(gctx, token)
		if err != nil {
			return fmt.Errorf("travel api list payment methods: %w", err)
		}
		methods = pm
		return nil
	})

	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	// a Discard or a newer Start replaced the entry while loading
	if s.checkouts[clientID] != loading {
		if err != nil {
			return Checkout{}, err
		}
		return Checkout{}, ErrCheckoutNotStarted
	}
	if err != nil {
		delete(s.checkouts, clientID)
		return Checkout{}, err
	}

	co := &Checkout{
		State:          CheckoutReady,
		SelectedIDs:    cartIDs,
		Items:          items,
		PaymentMethods: methods,
		owner:          token,
		touched:        s.now(),
	}
	s.checkouts[clientID] = co

	return co.snapshot(), nil
}

// sweep drops checkouts left idle past checkoutIdleTTL. Callers hold s.mu.
func (s *checkoutServiceImpl) sweep() {
	cutoff := s.now().Add(-checkoutIdleTTL)
	for id, co := range s.checkouts {
		if co.State != CheckoutSubmitting && co.touched.Before(cutoff) {
			delete(s.checkouts, id)
		}
	}
}

func (s *checkoutServiceImpl) Discard(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.checkouts, clientID)
}

func filterCarts(carts []model.CartLineItem, ids []string) []model.CartLineItem {
	if len(ids) == 0 {
		return carts
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := make([]model.CartLineItem, 0, len(ids))
	for _, c := range carts {
		if _, ok := wanted[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// lookup returns the client's checkout when it belongs to token.
func (s *checkoutServiceImpl) lookup(clientID, token string) (*Checkout, bool) {
	co, ok := s.checkouts[clientID]
	if !ok || co.owner != token {
		return nil, false
	}
	return co, true
}

func (s *checkoutServiceImpl) readyCheckout(clientID, token string) (*Checkout, error) {
	co, ok := s.lookup(clientID, token)
	if !ok {
		return nil, ErrCheckoutNotStarted
	}
	if co.State == CheckoutSubmitting {
		return nil, ErrSubmissionInFlight
	}
	if co.State != CheckoutReady {
		return nil, ErrCheckoutNotReady
	}
	co.touched = s.now()
	return co, nil
}

func (s *checkoutServiceImpl) SelectPaymentMethod(_ context.Context, clientID, token, paymentMethodID string) (Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	co, err := s.readyCheckout(clientID, token)
	if err != nil {
		return Checkout{}, err
	}

	for _, pm := range co.PaymentMethods {
		if pm.ID == paymentMethodID {
			co.PaymentMethodID = paymentMethodID
			return co.snapshot(), nil
		}
	}
	return Checkout{}, ErrPaymentMethodAbsent
}

// ApplyPromo validates code against the server promo catalog. A new code
// replaces the previous one; a rejected code leaves it in place. The minimum
// is checked against the cart held when the promo is attached.
func (s *checkoutServiceImpl) ApplyPromo(ctx context.Context, clientID, token, code string) (Checkout, error) {
	s.mu.Lock()
	_, err := s.readyCheckout(clientID, token)
	s.mu.Unlock()
	if err != nil {
		return Checkout{}, err
	}

	if pricing.NormalizeCode(code) == "" {
		return Checkout{}, invalid("Enter a promo code first.")
	}

	catalog, err := s.travelClient.ListPromos(ctx, token)
	if err != nil {
		return Checkout{}, fmt.Errorf("travel api list promos: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	co, err := s.readyCheckout(clientID, token)
	if err != nil {
		return Checkout{}, err
	}

	promo, err := pricing.ApplyPromoCode(code, pricing.Subtotal(co.Items), catalog)
	switch {
	case errors.Is(err, pricing.ErrPromoNotFound):
		return Checkout{}, invalid("Promo code not found.")
	case errors.Is(err, pricing.ErrPromoMinimumNotMet):
		return Checkout{}, invalid("Your order does not reach the promo minimum.")
	case err != nil:
		return Checkout{}, invalid(err.Error())
	}
	co.Promo = promo

	return co.snapshot(), nil
}

func (s *checkoutServiceImpl) SetNotes(_ context.Context, clientID, token, notes string) (Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	co, err := s.readyCheckout(clientID, token)
	if err != nil {
		return Checkout{}, err
	}
	co.Notes = notes

	return co.snapshot(), nil
}

func (s *checkoutServiceImpl) View(_ context.Context, clientID, token string) (Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	co, ok := s.lookup(clientID, token)
	if !ok {
		return Checkout{}, ErrCheckoutNotStarted
	}
	return co.snapshot(), nil
}

// Submit accepts one in-flight submission per client. Validation failures
// leave the state untouched; a server rejection records the message and
// returns the checkout to ready. A successful checkout is dropped.
func (s *checkoutServiceImpl) Submit(ctx context.Context, clientID, token string) (*SubmitResult, error) {
	s.mu.Lock()
	co, err := s.readyCheckout(clientID, token)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if len(co.Items) == 0 {
		s.mu.Unlock()
		return nil, invalid("Your cart is empty.")
	}
	if co.PaymentMethodID == "" {
		s.mu.Unlock()
		return nil, invalid("Choose a payment method first.")
	}

	req := buildTransactionRequest(co)
	totals := co.Totals()

	co.State = CheckoutSubmitting
	co.LastError = ""
	s.mu.Unlock()

	created, err := s.travelClient.CreateTransaction(ctx, token, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		co.State = CheckoutReady
		co.LastError = client.FriendlyMessage(err, submitFallbackMessage)
		s.logger.Warn("create transaction rejected",
			zap.String("client_id", clientID),
			zap.Error(err))
		return nil, fmt.Errorf("travel api create transaction: %w", err)
	}

	co.State = CheckoutSuccess
	co.TransactionID = created.ID
	if s.checkouts[clientID] == co {
		delete(s.checkouts, clientID)
	}

	if err := s.totalsRepo.Save(ctx, clientID, created.ID, totals.CheckoutTotals()); err != nil {
		s.logger.Warn("cache checkout totals",
			zap.String("client_id", clientID),
			zap.String("transaction_id", created.ID),
			zap.Error(err))
	}

	s.logger.Info("transaction created",
		zap.String("client_id", clientID),
		zap.String("transaction_id", created.ID),
		zap.String("total", totals.Total.String()))

	return &SubmitResult{
		TransactionID: created.ID,
		Totals:        totals,
		RedirectTo:    TransactionsPath,
	}, nil
}

func buildTransactionRequest(co *Checkout) client.CreateTransactionRequest {
	cartIDs := co.SelectedIDs
	if len(cartIDs) == 0 {
		cartIDs = make([]string, 0, len(co.Items))
		for _, item := range co.Items {
			cartIDs = append(cartIDs, item.ID)
		}
	}

	var promoCode *string
	if co.Promo != nil {
		code := co.Promo.Code
		promoCode = &code
	}

	return client.CreateTransactionRequest{
		CartIDs:         cartIDs,
		PaymentMethodID: co.PaymentMethodID,
		PromoCode:       promoCode,
		Notes:           co.Notes,
	}
}

func (c *Checkout) snapshot() Checkout {
	out := *c
	out.SelectedIDs = append([]string(nil), c.SelectedIDs...)
	out.Items = append([]model.CartLineItem(nil), c.Items...)
	out.PaymentMethods = append([]model.PaymentMethod(nil), c.PaymentMethods...)
	if c.Promo != nil {
		promo := *c.Promo
		out.Promo = &promo
	}
	return out
}
