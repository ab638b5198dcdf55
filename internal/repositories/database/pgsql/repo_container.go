package pgsql

import (
	portsrepo "github.com/fitiavana-dev/treasury_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	vaultRepo := newPgxVaultRepository(dbPool)
	sessionRepo := newPgxSessionRepository(dbPool)
	paymentRequestRepo := newPgxPaymentRequestRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo:    transactionRepo,
		VaultRepo:          vaultRepo,
		SessionRepo:        sessionRepo,
		PaymentRequestRepo: paymentRequestRepo,
		UserRepo:           userRepo,
	}
}
