package catalog

import (
	"context"
	"fmt"
	"strings"
)

type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)

	CreateContact(ctx context.Context, c *Contact) error
	ListContacts(ctx context.Context) ([]*Contact, error)
	GetContact(ctx context.Context, id int64) (*Contact, error)

	CreateAccount(ctx context.Context, a *BankAccount) error
	ListAccounts(ctx context.Context) ([]*BankAccount, error)
	GetAccount(ctx context.Context, id int64) (*BankAccount, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, c *Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	return s.repo.CreateCategory(ctx, c)
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) CreateContact(ctx context.Context, c *Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	}

	return s.repo.CreateContact(ctx, c)
}

func (s *Service) ListContacts(ctx context.Context) ([]*Contact, error) {
	return s.repo.ListContacts(ctx)
}

func (s *Service) GetContact(ctx context.Context, id int64) (*Contact, error) {
	return s.repo.GetContact(ctx, id)
}

func (s *Service) CreateAccount(ctx context.Context, a *BankAccount) error {
	if strings.TrimSpace(a.Description) == "" {
		return fmt.Errorf("%w: account description is required", ErrInvalidInput)
	}

	return s.repo.CreateAccount(ctx, a)
}

func (s *Service) ListAccounts(ctx context.Context) ([]*BankAccount, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) GetAccount(ctx context.Context, id int64) (*BankAccount, error) {
	return s.repo.GetAccount(ctx, id)
}
