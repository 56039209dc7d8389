package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/dto"
	"travel-journal-bff/internal/format"
	"travel-journal-bff/internal/model"
	"travel-journal-bff/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTransitionNotAllowed = errors.New("transaction status transition not allowed")
)

const FilterAll = "all"

type TransactionService interface {
	Mine(ctx context.Context, clientID, token string) (*dto.TransactionListView, error)
	All(ctx context.Context, token, filter string) (*dto.TransactionListView, error)
	UpdateStatus(ctx context.Context, token, id string, status model.TransactionStatus) (*model.Transaction, error)
}

type transactionServiceImpl struct {
	travelClient client.TravelClient
	totalsRepo   repository.TotalsRepository
	logger       *zap.Logger
}

func NewTransactionService(
	travelClient client.TravelClient,
	totalsRepo repository.TotalsRepository,
	logger *zap.Logger,
) TransactionService {
	return &transactionServiceImpl{
		travelClient: travelClient,
		totalsRepo:   totalsRepo,
		logger:       logger,
	}
}

// Mine lists the signed-in user's transactions, newest first. When the
// checkout figures were cached for a transaction they are shown next to the
// server amount.
func (s *transactionServiceImpl) Mine(ctx context.Context, clientID, token string) (*dto.TransactionListView, error) {
	txs, err := s.travelClient.MyTransactions(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("travel api my transactions: %w", err)
	}
	sortNewestFirst(txs)

	cached := s.totalsRepo.LoadAll(ctx, clientID)

	views := make([]dto.TransactionView, 0, len(txs))
	for _, tx := range txs {
		view := NewTransactionView(tx)
		if totals, ok := cached[tx.ID]; ok {
			view.CheckoutTotals = &totals
			view.DisplayTotal = totals.Total
			view.DisplayTotalText = format.Currency(totals.Total)
		}
		views = append(views, view)
	}

	revenue := Revenue(txs)
	return &dto.TransactionListView{
		Filter:       FilterAll,
		Count:        len(views),
		Revenue:      revenue,
		RevenueText:  format.Currency(revenue),
		Transactions: views,
	}, nil
}

// All lists every transaction for the admin. filter is "all" or one of the
// canonical statuses. Revenue counts every successful transaction whatever
// the filter.
func (s *transactionServiceImpl) All(ctx context.Context, token, filter string) (*dto.TransactionListView, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = FilterAll
	}
	if !validFilter(filter) {
		return nil, invalid("Unknown status filter.")
	}

	txs, err := s.travelClient.AllTransactions(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("travel api all transactions: %w", err)
	}
	sortNewestFirst(txs)

	filtered := FilterByStatus(txs, filter)

	views := make([]dto.TransactionView, 0, len(filtered))
	for _, tx := range filtered {
		views = append(views, NewTransactionView(tx))
	}

	revenue := Revenue(txs)
	return &dto.TransactionListView{
		Filter:       filter,
		Count:        len(views),
		Revenue:      revenue,
		RevenueText:  format.Currency(revenue),
		Transactions: views,
	}, nil
}

// UpdateStatus moves a pending transaction to success or failed. The current
// status is read from the server first.
func (s *transactionServiceImpl) UpdateStatus(ctx context.Context, token, id string, status model.TransactionStatus) (*model.Transaction, error) {
	if status != model.StatusSuccess && status != model.StatusFailed {
		return nil, invalid("Status must be success or failed.")
	}

	txs, err := s.travelClient.AllTransactions(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("travel api all transactions: %w", err)
	}

	var current *model.Transaction
	for i := range txs {
		if txs[i].ID == id {
			current = &txs[i]
			break
		}
	}
	if current == nil {
		return nil, ErrTransactionNotFound
	}
	if !model.CanTransition(current.Status, status) {
		return nil, ErrTransitionNotAllowed
	}

	if err := s.travelClient.UpdateTransactionStatus(ctx, token, id, status); err != nil {
		return nil, fmt.Errorf("travel api update transaction status: %w", err)
	}

	s.logger.Info("transaction status updated",
		zap.String("transaction_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)))

	updated := *current
	updated.Status = status
	updated.RawStatus = string(status)
	return &updated, nil
}

func NewTransactionView(tx model.Transaction) dto.TransactionView {
	return dto.TransactionView{
		Transaction:       tx,
		TotalAmountText:   format.Currency(tx.TotalAmount),
		PaymentMethodName: tx.PaymentMethod.Label(),
		CreatedAtText:     format.DateTime(tx.CreatedAt),
		Actionable:        tx.Actionable(),
		DisplayTotal:      tx.TotalAmount,
		DisplayTotalText:  format.Currency(tx.TotalAmount),
	}
}

func validFilter(filter string) bool {
	switch model.TransactionStatus(filter) {
	case model.StatusPending, model.StatusSuccess, model.StatusFailed, model.StatusCancelled:
		return true
	}
	return filter == FilterAll
}

func FilterByStatus(txs []model.Transaction, filter string) []model.Transaction {
	if filter == FilterAll {
		return txs
	}

	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if string(tx.Status) == filter {
			out = append(out, tx)
		}
	}
	return out
}

// Revenue sums the amount of successful transactions.
func Revenue(txs []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.Status == model.StatusSuccess {
			sum = sum.Add(tx.TotalAmount)
		}
	}
	return sum
}

func CountByStatus(txs []model.Transaction) dto.StatusCounts {
	var counts dto.StatusCounts
	for _, tx := range txs {
		switch tx.Status {
		case model.StatusPending:
			counts.Pending++
		case model.StatusSuccess:
			counts.Success++
		case model.StatusFailed:
			counts.Failed++
		case model.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

func sortNewestFirst(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
}
