package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendly/booking-api/internal/model"
	"github.com/agendly/booking-api/internal/repository"
	apperrors "github.com/agendly/booking-api/pkg/errors"
)

// fakeClientRepo implements repository.ClientRepository in memory with the
// same observable semantics as the postgres implementation.
type fakeClientRepo struct {
	clients map[uuid.UUID]*model.Client
	linked  map[uuid.UUID]int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*model.Client), linked: make(map[uuid.UUID]int)}
}

func (f *fakeClientRepo) Create(ctx context.Context, c *model.Client) error {
	c.ID = uuid.New()
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	return c, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *model.Client) error {
	if _, ok := f.clients[c.ID]; !ok {
		return repository.ErrNoRows
	}
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.clients[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.clients, id)
	return nil
}

func (f *fakeClientRepo) List(ctx context.Context) ([]*model.Client, error) {
	out := []*model.Client{}
	for _, c := range f.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeClientRepo) Search(ctx context.Context, name string) ([]*model.Client, error) {
	out := []*model.Client{}
	for _, c := range f.clients {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeClientRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, c := range f.clients {
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClientRepo) CountAppointments(ctx context.Context, id uuid.UUID) (int, error) {
	return f.linked[id], nil
}

func TestClientCreate(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	client, err := svc.Create(ctx, "Alice")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, client.ID)
	assert.Equal(t, "Alice", client.Name)
}

func TestClientCreateDuplicateName(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Alice")
	require.NoError(t, err)

	// Uniqueness is case-insensitive.
	_, err = svc.Create(ctx, "ALICE")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestClientRenameToOwnNameIsDuplicate(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	client, err := svc.Create(ctx, "Alice")
	require.NoError(t, err)

	for _, name := range []string{"Alice", "alice", "ALICE"} {
		_, err = svc.Update(ctx, client.ID, name)
		require.Error(t, err, "rename to %q", name)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
	}
}

func TestClientRename(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	client, err := svc.Create(ctx, "Alice")
	require.NoError(t, err)

	renamed, err := svc.Update(ctx, client.ID, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", renamed.Name)
}

func TestClientRenameNotFound(t *testing.T) {
	svc := NewClientService(newFakeClientRepo())

	_, err := svc.Update(context.Background(), uuid.New(), "Bob")
	assert.ErrorIs(t, err, apperrors.ClientNotFound())
}

func TestClientDeleteGuard(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	client, err := svc.Create(ctx, "Alice")
	require.NoError(t, err)
	repo.linked[client.ID] = 3

	err = svc.Delete(ctx, client.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
	assert.Equal(t, 3, err.(*apperrors.AppError).Fields["count"])
}

func TestClientDelete(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	client, err := svc.Create(ctx, "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, client.ID))
	assert.ErrorIs(t, svc.Delete(ctx, client.ID), apperrors.ClientNotFound())
}

func TestClientListOrdered(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	for _, name := range []string{"Carol", "Alice", "Bob"} {
		_, err := svc.Create(ctx, name)
		require.NoError(t, err)
	}

	clients, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "Alice", clients[0].Name)
	assert.Equal(t, "Bob", clients[1].Name)
	assert.Equal(t, "Carol", clients[2].Name)
}

func TestClientSearch(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	for _, name := range []string{"Alice", "Alicia", "Bob"} {
		_, err := svc.Create(ctx, name)
		require.NoError(t, err)
	}

	found, err := svc.Search(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Alice", found[0].Name)
	assert.Equal(t, "Alicia", found[1].Name)
}

// fakeServiceRepo mirrors fakeClientRepo for the service side.
type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
	linked   map[uuid.UUID]int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*model.Service), linked: make(map[uuid.UUID]int)}
}

func (f *fakeServiceRepo) Create(ctx context.Context, s *model.Service) error {
	s.ID = uuid.New()
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	return s, nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, s *model.Service) error {
	if _, ok := f.services[s.ID]; !ok {
		return repository.ErrNoRows
	}
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.services[id]; !ok {
		return repository.ErrNoRows
	}
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) List(ctx context.Context) ([]*model.Service, error) {
	out := []*model.Service{}
	for _, s := range f.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeServiceRepo) Search(ctx context.Context, name string) ([]*model.Service, error) {
	out := []*model.Service{}
	for _, s := range f.services {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeServiceRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, s := range f.services {
		if strings.EqualFold(s.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeServiceRepo) CountAppointments(ctx context.Context, id uuid.UUID) (int, error) {
	return f.linked[id], nil
}

func TestServiceCreate(t *testing.T) {
	svc := NewServiceCatalog(newFakeServiceRepo())

	created, err := svc.Create(context.Background(), "Haircut", decimal.NewFromFloat(50), 30)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", created.Name)
	assert.True(t, created.Value.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 30, created.Duration)
}

func TestServiceCreateDuplicateName(t *testing.T) {
	svc := NewServiceCatalog(newFakeServiceRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "Haircut", decimal.NewFromInt(50), 30)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "haircut", decimal.NewFromInt(60), 45)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := NewServiceCatalog(newFakeServiceRepo())

	id := uuid.New()
	_, err := svc.Update(context.Background(), id, "Haircut", decimal.NewFromInt(50), 30)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
	assert.Equal(t, id.String(), err.(*apperrors.AppError).Fields["service_id"])
}

func TestServiceDeleteGuard(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewServiceCatalog(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Haircut", decimal.NewFromInt(50), 30)
	require.NoError(t, err)
	repo.linked[created.ID] = 1

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
	assert.Equal(t, 1, err.(*apperrors.AppError).Fields["count"])
}

func TestServiceListOrdered(t *testing.T) {
	svc := NewServiceCatalog(newFakeServiceRepo())
	ctx := context.Background()

	for _, name := range []string{"Shave", "Haircut", "Beard trim"} {
		_, err := svc.Create(ctx, name, decimal.NewFromInt(20), 15)
		require.NoError(t, err)
	}

	services, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, "Beard trim", services[0].Name)
	assert.Equal(t, "Haircut", services[1].Name)
	assert.Equal(t, "Shave", services[2].Name)
}
