package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
	"github.com/ostaapp/osta-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes standalone wallet operations, each running in its own
// transaction.
type Service interface {
	Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
	Statement(ctx context.Context, params StatementParams) (*StatementResult, error)
	Credit(ctx context.Context, input MovementInput) error
	Debit(ctx context.Context, input MovementInput) error
	Transfer(ctx context.Context, input TransferInput) error
}

// Settler applies wallet movements inside a caller-owned transaction so that
// settlement and the triggering state change commit or roll back together.
type Settler interface {
	CreditTx(ctx context.Context, tx *gorm.DB, input MovementInput) error
	DebitTx(ctx context.Context, tx *gorm.DB, input MovementInput) error
	TransferTx(ctx context.Context, tx *gorm.DB, input TransferInput) error
}

// MovementInput describes a single credit or debit.
type MovementInput struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
	Type      enums.WalletEntryType
	JobID     *uuid.UUID
}

// TransferInput describes an all-or-nothing movement between two accounts.
type TransferInput struct {
	FromID uuid.UUID
	ToID   uuid.UUID
	Amount decimal.Decimal
	Type   enums.WalletEntryType
	JobID  *uuid.UUID
}

// StatementParams configures a wallet statement query.
type StatementParams struct {
	AccountID uuid.UUID
	Limit     int
	Cursor    string
}

// StatementResult wraps statement rows and the cursor for the next page.
type StatementResult struct {
	Balance decimal.Decimal      `json:"balance"`
	Entries []models.WalletEntry `json:"entries"`
	Cursor  string               `json:"cursor"`
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService wires a wallet service with the provided repository and
// transaction runner.
func NewService(repo Repository, tx txRunner) (*ServiceImpl, error) {
	if repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &ServiceImpl{service{repo: repo, tx: tx}}, nil
}

// ServiceImpl implements both Service and Settler.
type ServiceImpl struct {
	service
}

func (s *service) Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	if accountID == uuid.Nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "account id required")
	}
	account, err := s.repo.FindAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	return account.WalletBalance, nil
}

func (s *service) Statement(ctx context.Context, params StatementParams) (*StatementResult, error) {
	if params.AccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account id required")
	}

	balance, err := s.Balance(ctx, params.AccountID)
	if err != nil {
		return nil, err
	}

	query := ListEntriesParams{
		AccountID: params.AccountID,
		Limit:     pagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.ListEntries(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wallet entries")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &StatementResult{
		Balance: balance,
		Entries: rows,
		Cursor:  cursor,
	}, nil
}

func (s *service) Credit(ctx context.Context, input MovementInput) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.CreditTx(ctx, tx, input)
	})
}

func (s *service) Debit(ctx context.Context, input MovementInput) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.DebitTx(ctx, tx, input)
	})
}

func (s *service) Transfer(ctx context.Context, input TransferInput) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.TransferTx(ctx, tx, input)
	})
}

func (s *service) CreditTx(ctx context.Context, tx *gorm.DB, input MovementInput) error {
	if err := validateMovement(input); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)
	if err := repo.CreditBalance(ctx, input.AccountID, input.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit balance")
	}
	return s.recordEntry(ctx, repo, input, enums.WalletEntryDirectionCredit)
}

func (s *service) DebitTx(ctx context.Context, tx *gorm.DB, input MovementInput) error {
	if err := validateMovement(input); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)
	if _, err := repo.FindAccount(ctx, input.AccountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	ok, err := repo.DebitBalance(ctx, input.AccountID, input.Amount)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "debit balance")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeInsufficientFunds, "insufficient wallet balance").
			WithDetails(map[string]any{
				"account_id": input.AccountID,
				"requested":  input.Amount.String(),
			})
	}
	return s.recordEntry(ctx, repo, input, enums.WalletEntryDirectionDebit)
}

// TransferTx debits the source and credits the destination as one unit. The
// two balance updates are applied in ascending account id order so concurrent
// transfers touching the same pair never deadlock; the surrounding
// transaction guarantees no partial application is ever visible.
func (s *service) TransferTx(ctx context.Context, tx *gorm.DB, input TransferInput) error {
	if input.FromID == uuid.Nil || input.ToID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "both transfer accounts required")
	}
	if input.FromID == input.ToID {
		return pkgerrors.New(pkgerrors.CodeValidation, "transfer accounts must differ")
	}

	debit := MovementInput{AccountID: input.FromID, Amount: input.Amount, Type: input.Type, JobID: input.JobID}
	credit := MovementInput{AccountID: input.ToID, Amount: input.Amount, Type: input.Type, JobID: input.JobID}

	if input.FromID.String() <= input.ToID.String() {
		if err := s.DebitTx(ctx, tx, debit); err != nil {
			return err
		}
		return s.CreditTx(ctx, tx, credit)
	}
	if err := s.CreditTx(ctx, tx, credit); err != nil {
		return err
	}
	return s.DebitTx(ctx, tx, debit)
}

func (s *service) recordEntry(ctx context.Context, repo Repository, input MovementInput, direction enums.WalletEntryDirection) error {
	account, err := repo.FindAccount(ctx, input.AccountID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload account")
	}
	entry := &models.WalletEntry{
		AccountID:    input.AccountID,
		JobID:        input.JobID,
		Type:         input.Type,
		Direction:    direction,
		Amount:       input.Amount,
		BalanceAfter: account.WalletBalance,
	}
	if err := repo.CreateEntry(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record wallet entry")
	}
	return nil
}

func validateMovement(input MovementInput) error {
	if input.AccountID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "account id required")
	}
	if !input.Amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid wallet entry type %q", input.Type))
	}
	return nil
}
