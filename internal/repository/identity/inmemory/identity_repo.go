package inmemory

import (
	"context"
	"sync"

	"taskAdmin/internal/models/identity"
	repo "taskAdmin/internal/repository"

	"github.com/google/uuid"
)

type IdentityStorage struct {
	admins  map[uuid.UUID]identity.Identity
	members map[uuid.UUID]identity.Identity
	mtx     *sync.RWMutex
}

func NewIdentityStorage() *IdentityStorage {
	return &IdentityStorage{
		admins:  make(map[uuid.UUID]identity.Identity),
		members: make(map[uuid.UUID]identity.Identity),
		mtx:     &sync.RWMutex{},
	}
}

func (s *IdentityStorage) HealthCheck(ctx context.Context) error {
	return nil
}

// AddPlatformAdmin наполняет реестр, провижининг учёток вне ядра сервиса
func (s *IdentityStorage) AddPlatformAdmin(ident identity.Identity) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ident.Kind = identity.KindPlatformAdmin
	s.admins[ident.ID] = ident
}

func (s *IdentityStorage) AddCompanyMember(ident identity.Identity) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ident.Kind = identity.KindCompanyMember
	if ident.Status == "" {
		ident.Status = identity.StatusActive
	}
	s.members[ident.ID] = ident
}

func (s *IdentityStorage) GetPlatformAdmin(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ident, ok := s.admins[id]
	if !ok {
		return identity.Identity{}, repo.ErrNotFound
	}
	return ident, nil
}

func (s *IdentityStorage) GetCompanyMember(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ident, ok := s.members[id]
	if !ok || ident.Status != identity.StatusActive {
		return identity.Identity{}, repo.ErrNotFound
	}
	return ident, nil
}
