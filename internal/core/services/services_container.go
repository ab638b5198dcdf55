package services

import (
	portsrepo "github.com/fitiavana-dev/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.NotificationPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Identity first, every mutating service checks capabilities through it
	container.User = NewUserService(repos.UserRepo)

	container.Vault = NewVaultService(repos.VaultRepo, repos.TransactionRepo)
	container.Approval = NewApprovalService(repos.TransactionRepo, repos.VaultRepo, repos.SessionRepo, container.User, notifier)
	container.Transfer = NewTransferService(repos.TransactionRepo, repos.VaultRepo, repos.SessionRepo, container.User, notifier)
	container.Session = NewSessionService(repos.SessionRepo, repos.VaultRepo, repos.TransactionRepo, container.User, notifier)
	container.PaymentRequest = NewPaymentRequestService(repos.PaymentRequestRepo, repos.VaultRepo, repos.SessionRepo, repos.TransactionRepo, container.User, notifier)

	return container
}
