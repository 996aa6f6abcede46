package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onmarkov/polyclinic/internal/domain"
	profileRepo "github.com/onmarkov/polyclinic/internal/infra/storage/profile"
	specializationRepo "github.com/onmarkov/polyclinic/internal/infra/storage/specialization"
	"github.com/onmarkov/polyclinic/internal/integrations/identity"
)

type fakeSpecRepo struct {
	specs  map[int64]*domain.Specialization
	nextID int64
	inUse  map[int64]bool
}

func (r *fakeSpecRepo) Create(_ context.Context, name string) (*domain.Specialization, error) {
	for _, spec := range r.specs {
		if spec.Name == name {
			return nil, specializationRepo.ErrNameExists
		}
	}
	r.nextID++
	spec := &domain.Specialization{ID: r.nextID, Name: name}
	r.specs[spec.ID] = spec
	return spec, nil
}

func (r *fakeSpecRepo) GetByID(_ context.Context, id int64) (*domain.Specialization, error) {
	spec, ok := r.specs[id]
	if !ok {
		return nil, specializationRepo.ErrNotFound
	}
	return spec, nil
}

func (r *fakeSpecRepo) List(_ context.Context) ([]*domain.Specialization, error) {
	out := make([]*domain.Specialization, 0, len(r.specs))
	for _, spec := range r.specs {
		out = append(out, spec)
	}
	return out, nil
}

func (r *fakeSpecRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.specs[id]; !ok {
		return specializationRepo.ErrNotFound
	}
	if r.inUse[id] {
		return specializationRepo.ErrHasDependents
	}
	delete(r.specs, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[int64]*domain.Profile
}

func (r *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if _, ok := r.profiles[p.UserID]; ok {
		return nil, profileRepo.ErrProfileExists
	}
	if p.Patronymic == "" {
		p.Patronymic = domain.NoPatronymic
	}
	r.profiles[p.UserID] = p
	return p, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

type fakeIdentityClient struct {
	users map[int64]*identity.User
	down  bool
}

func (c *fakeIdentityClient) GetUser(_ context.Context, userID int64) (*identity.User, error) {
	if c.down {
		return nil, identity.ErrServiceDegraded
	}
	user, ok := c.users[userID]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return user, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeSpecRepo, *fakeProfileRepo, *fakeIdentityClient) {
	specs := &fakeSpecRepo{specs: make(map[int64]*domain.Specialization), inUse: make(map[int64]bool)}
	profiles := &fakeProfileRepo{profiles: make(map[int64]*domain.Profile)}
	identityClient := &fakeIdentityClient{users: map[int64]*identity.User{
		7: {ID: 7, LastName: "Иванова", FirstName: "Анна", IsActive: true},
	}}
	return NewService(specs, profiles, identityClient, nopLogger{}), specs, profiles, identityClient
}

func TestCreateSpecialization(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		spec, err := svc.CreateSpecialization(context.Background(), "Терапевт")
		require.NoError(t, err)
		assert.Equal(t, "Терапевт", spec.Name)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		spec, err := svc.CreateSpecialization(context.Background(), "  Хирург  ")
		require.NoError(t, err)
		assert.Equal(t, "Хирург", spec.Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.CreateSpecialization(context.Background(), "Терапевт")
		require.NoError(t, err)

		_, err = svc.CreateSpecialization(context.Background(), "Терапевт")
		assert.ErrorIs(t, err, ErrSpecializationExists)
	})

	t.Run("empty name", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.CreateSpecialization(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDeleteSpecialization(t *testing.T) {
	t.Run("blocked while referenced", func(t *testing.T) {
		svc, specs, _, _ := newTestService()

		spec, err := svc.CreateSpecialization(context.Background(), "Терапевт")
		require.NoError(t, err)
		specs.inUse[spec.ID] = true

		err = svc.DeleteSpecialization(context.Background(), spec.ID)
		assert.ErrorIs(t, err, ErrSpecializationInUse)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		err := svc.DeleteSpecialization(context.Background(), 42)
		assert.ErrorIs(t, err, ErrSpecializationNotFound)
	})
}

func TestProvisionProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, _, profiles, _ := newTestService()

		resp, err := svc.ProvisionProfile(context.Background(), &ProvisionProfileRequest{
			UserID:     7,
			Patronymic: "Петровна",
		})
		require.NoError(t, err)
		assert.False(t, resp.AlreadyProvisioned)
		assert.Equal(t, "Петровна", resp.Profile.Patronymic)
		assert.Contains(t, profiles.profiles, int64(7))
	})

	t.Run("idempotent repeat", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		first, err := svc.ProvisionProfile(context.Background(), &ProvisionProfileRequest{UserID: 7})
		require.NoError(t, err)
		require.False(t, first.AlreadyProvisioned)

		second, err := svc.ProvisionProfile(context.Background(), &ProvisionProfileRequest{UserID: 7})
		require.NoError(t, err)
		assert.True(t, second.AlreadyProvisioned)
		assert.Equal(t, first.Profile.UserID, second.Profile.UserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.ProvisionProfile(context.Background(), &ProvisionProfileRequest{UserID: 99})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("identity provider down", func(t *testing.T) {
		svc, _, _, identityClient := newTestService()
		identityClient.down = true

		_, err := svc.ProvisionProfile(context.Background(), &ProvisionProfileRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrIdentityUnavailable)
	})

	t.Run("invalid user id", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.ProvisionProfile(context.Background(), &ProvisionProfileRequest{UserID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
