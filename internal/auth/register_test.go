package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/internal/users"
	"github.com/ovenmade/bakehouse-backend/pkg/config"
	pkgmodels "github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRegisterUserRepo struct {
	data      map[string]*pkgmodels.User
	created   *pkgmodels.User
	createErr error
}

func newStubRegisterUserRepo() *stubRegisterUserRepo {
	return &stubRegisterUserRepo{data: map[string]*pkgmodels.User{}}
}

func (s *stubRegisterUserRepo) FindByEmail(ctx context.Context, email string) (*pkgmodels.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRegisterUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.data[dto.Email] = user
	s.created = user
	return user, nil
}

func newRegisterTestService(t *testing.T, repo *stubRegisterUserRepo) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return repo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc
}

func TestRegisterCreatesCustomer(t *testing.T) {
	repo := newStubRegisterUserRepo()
	svc := newRegisterTestService(t, repo)

	dto, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Jamie",
		LastName:  "Rivera",
		Email:     "Jamie.Rivera@Example.com",
		Password:  "Secret123!",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if repo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if repo.created.Email != "jamie.rivera@example.com" {
		t.Fatalf("expected normalized email, got %s", repo.created.Email)
	}
	if repo.created.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", repo.created.Role)
	}
	if repo.created.PasswordHash == "Secret123!" {
		t.Fatalf("expected password to be hashed")
	}
	if dto == nil || dto.ID != repo.created.ID {
		t.Fatalf("expected dto to mirror created user")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubRegisterUserRepo()
	repo.data["taken@example.com"] = &pkgmodels.User{
		ID:    uuid.New(),
		Email: "taken@example.com",
	}
	svc := newRegisterTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Sam",
		LastName:  "Ng",
		Email:     "taken@example.com",
		Password:  "Secret123!",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if repo.created != nil {
		t.Fatalf("expected no user creation on duplicate email")
	}
}
