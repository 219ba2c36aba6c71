package service

import (
	"github.com/MKhiriev/go-record-sync/internal/adapter"
	"github.com/MKhiriev/go-record-sync/internal/cache"
	"github.com/MKhiriev/go-record-sync/internal/config"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/store"
	"github.com/MKhiriev/go-record-sync/models"
)

// Services wires the coordinators of one process over a shared cache.
type Services struct {
	Caches *cache.LocalCacheCoordinator
	Local  LocalDataCoordinator
	Remote RemoteDataCoordinator
	Sync   SynchronizationCoordinator
}

func NewServices(persistence store.LocalPersistence, remote adapter.RemoteStoreClient, app config.ClientApp, descriptors []models.RecordQuery, log *logger.Logger, opts ...SyncOption) *Services {
	caches := cache.NewLocalCacheCoordinator(persistence, log)
	local := NewLocalDataCoordinator(caches, persistence, app.DefaultZoneName, log)
	remoteData := NewRemoteDataCoordinator(remote, local, persistence, descriptors, log)

	return &Services{
		Caches: caches,
		Local:  local,
		Remote: remoteData,
		Sync:   NewSynchronizationCoordinator(remoteData, log, opts...),
	}
}

// Close drains the queues from the outermost inwards.
func (s *Services) Close() {
	s.Sync.Close()
	s.Local.Close()
	s.Caches.Close()
}
