// Package service holds the business logic between the transport/CLI
// layer and the repositories.
//
// Its one concern today is reconciliation: reading JSON snapshots of
// items and locations and syncing them into the store.
package service

import (
	"github.com/kumarvvr/salesnisha-server/internal/repository"

	"github.com/rs/zerolog"
)

// Services is the container for all service instances.
type Services struct {
	Sync *SyncService
}

// NewServices constructs the service container on top of the repository
// container.
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Sync: NewSyncService(repos.Items, repos.Locations, log),
	}
}
