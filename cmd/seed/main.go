// Seeds a development database with a demo user, catalog data and a
// few ledger entries, including an installment group.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dfarias/fincontrol/internal/auth"
	authStore "github.com/dfarias/fincontrol/internal/auth/store"
	"github.com/dfarias/fincontrol/internal/catalog"
	catalogStore "github.com/dfarias/fincontrol/internal/catalog/store"
	"github.com/dfarias/fincontrol/internal/config"
	"github.com/dfarias/fincontrol/internal/database"
	"github.com/dfarias/fincontrol/internal/ledger"
	ledgerStore "github.com/dfarias/fincontrol/internal/ledger/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	ctx := context.Background()

	authService := auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if _, err := authService.Register(ctx, "demo@fincontrol.dev", "demo-password"); err != nil && !errors.Is(err, auth.ErrEmailTaken) {
		return err
	}

	catalogService := catalog.NewService(catalogStore.New(db))

	categories := []*catalog.Category{
		{Name: "Vendas", Description: "Receitas de vendas"},
		{Name: "Serviços", Description: "Prestação de serviços"},
		{Name: "Fornecedores", Description: "Compras de insumos"},
		{Name: "Infraestrutura", Description: "Aluguel, energia, internet"},
	}
	for _, c := range categories {
		if err := catalogService.CreateCategory(ctx, c); err != nil {
			return err
		}
	}

	contacts := []*catalog.Contact{
		{Name: "Acme Comércio Ltda", Document: "12.345.678/0001-90", Email: "financeiro@acme.example"},
		{Name: "Distribuidora Silva", Document: "98.765.432/0001-10", Phone: "+55 11 99999-0000"},
		{Name: "João Pereira", Email: "joao@example.com"},
	}
	for _, c := range contacts {
		if err := catalogService.CreateContact(ctx, c); err != nil {
			return err
		}
	}

	account := &catalog.BankAccount{
		Description:    "Conta corrente principal",
		BankName:       "Banco do Brasil",
		OpeningBalance: 500000,
	}
	if err := catalogService.CreateAccount(ctx, account); err != nil {
		return err
	}

	ledgerService := ledger.NewService(ledgerStore.New(db))
	today := time.Now().Truncate(24 * time.Hour)

	seeds := []ledger.SplitParams{
		{
			Description:  "Venda de mercadorias - pedido 1042",
			Amount:       250000,
			DueDate:      today.AddDate(0, 0, 15),
			Type:         ledger.TypeReceita,
			CategoryID:   categories[0].ID,
			ContactID:    contacts[0].ID,
			AccountID:    account.ID,
			Installments: 1,
		},
		{
			Description:  "Consultoria mensal",
			Amount:       80000,
			DueDate:      today.AddDate(0, 0, -10),
			Type:         ledger.TypeReceita,
			CategoryID:   categories[1].ID,
			ContactID:    contacts[2].ID,
			AccountID:    account.ID,
			Installments: 1,
		},
		{
			Description:  "Compra de insumos",
			Amount:       100000,
			DueDate:      today.AddDate(0, 1, 0),
			Type:         ledger.TypeDespesa,
			CategoryID:   categories[2].ID,
			ContactID:    contacts[1].ID,
			AccountID:    account.ID,
			Split:        true,
			Installments: 3,
		},
		{
			Description:  "Aluguel do galpão",
			Amount:       350000,
			DueDate:      today.AddDate(0, 0, 5),
			Type:         ledger.TypeDespesa,
			CategoryID:   categories[3].ID,
			ContactID:    contacts[1].ID,
			AccountID:    account.ID,
			Split:        true,
			Installments: 12,
		},
	}

	total := 0

	for _, p := range seeds {
		entries, err := ledgerService.Create(ctx, p)
		if err != nil {
			return err
		}

		total += len(entries)
	}

	if _, err := ledgerService.MarkOverdue(ctx, time.Now()); err != nil {
		return err
	}

	slog.Info("seed complete",
		"categories", len(categories),
		"contacts", len(contacts),
		"entries", total,
	)

	return nil
}
