package ledger

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	GetEntry(ctx context.Context, id int64) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
	UpdateStatus(ctx context.Context, id int64, status Status, paymentDate *time.Time) error
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	DeleteEntry(ctx context.Context, id int64) ([]*Attachment, error)

	AddAttachment(ctx context.Context, att *Attachment) error
	ListAttachments(ctx context.Context, entryID int64) ([]*Attachment, error)

	BeginCreate(ctx context.Context) (BatchTx, error)
}

// BatchTx writes one installment group atomically: either every entry
// of the group lands or none does.
type BatchTx interface {
	CreateEntries(ctx context.Context, entries []*Entry) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Status    *Status
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

// Create splits the request into its installments and persists the
// whole group in a single transaction.
func (s *Service) Create(ctx context.Context, params SplitParams) ([]*Entry, error) {
	entries, err := Split(params)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback()

	if err := tx.CreateEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("create entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	return entries, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

// MarkPaid settles an open entry. Only PENDENTE and VENCIDO entries can
// be paid.
func (s *Service) MarkPaid(ctx context.Context, id int64, paidOn time.Time) (*Entry, error) {
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Status != StatusPendente && entry.Status != StatusVencido {
		return nil, fmt.Errorf("%w: cannot pay entry in status %s", ErrInvalidTransition, entry.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusPago, &paidOn); err != nil {
		return nil, err
	}

	entry.Status = StatusPago
	entry.PaymentDate = &paidOn

	return entry, nil
}

// Cancel voids an entry. Paid entries stay paid.
func (s *Service) Cancel(ctx context.Context, id int64) (*Entry, error) {
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Status == StatusPago {
		return nil, fmt.Errorf("%w: cannot cancel a paid entry", ErrInvalidTransition)
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelado, nil); err != nil {
		return nil, err
	}

	entry.Status = StatusCancelado
	entry.PaymentDate = nil

	return entry, nil
}

// MarkOverdue flips every PENDENTE entry due before asOf to VENCIDO and
// returns how many entries changed. The periodic worker calls this; it
// is also exposed for manual sweeps.
func (s *Service) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	return s.repo.MarkOverdue(ctx, asOf)
}

// Delete removes the entry together with its attachment rows and
// returns the attachments so the caller can unlink the stored files.
func (s *Service) Delete(ctx context.Context, id int64) ([]*Attachment, error) {
	return s.repo.DeleteEntry(ctx, id)
}

func (s *Service) AddAttachment(ctx context.Context, att *Attachment) error {
	if _, err := s.repo.GetEntry(ctx, att.EntryID); err != nil {
		return err
	}

	return s.repo.AddAttachment(ctx, att)
}

func (s *Service) ListAttachments(ctx context.Context, entryID int64) ([]*Attachment, error) {
	if _, err := s.repo.GetEntry(ctx, entryID); err != nil {
		return nil, err
	}

	return s.repo.ListAttachments(ctx, entryID)
}
