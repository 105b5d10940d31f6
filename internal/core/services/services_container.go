package services

import (
	portsrepo "github.com/clubworks/ledger_service/internal/core/ports/repositories"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The account service comes first since the posting engine depends on it.
	container.Account = NewAccountService(repos.AccountRepo)

	container.Journal = NewJournalService(repos.JournalRepo, container.Account, publisher)
	container.Membership = NewMembershipService(container.Journal)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Journal)
	container.Snapshot = NewSnapshotService(repos.SnapshotRepo, container.Reporting)
	container.Payment = NewPaymentService(container.Membership, container.Journal)

	return container
}
