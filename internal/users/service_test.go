package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type stubUserRepo struct {
	byID map[uuid.UUID]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: map[uuid.UUID]*models.User{}}
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(ctx context.Context) ([]models.User, error) {
	var rows []models.User
	for _, user := range s.byID {
		rows = append(rows, *user)
	}
	return rows, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if dto.FirstName != nil {
		user.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		user.LastName = *dto.LastName
	}
	if dto.Phone != nil {
		user.Phone = dto.Phone
	}
	copy := *user
	return &copy, nil
}

func TestGetProfileReturnsSanitizedUser(t *testing.T) {
	repo := newStubUserRepo()
	id := uuid.New()
	repo.byID[id] = &models.User{
		ID:        id,
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Kovac",
		Role:      enums.UserRoleCustomer,
		IsActive:  true,
	}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if dto.Email != "ana@example.com" || dto.FirstName != "Ana" {
		t.Fatalf("unexpected profile: %+v", dto)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, err := NewService(newStubUserRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetProfile(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfileRequiresAField(t *testing.T) {
	repo := newStubUserRepo()
	id := uuid.New()
	repo.byID[id] = &models.User{ID: id, FirstName: "Ana"}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.UpdateProfile(context.Background(), id, UpdateProfileDTO{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	newName := "Anja"
	dto, err := svc.UpdateProfile(context.Background(), id, UpdateProfileDTO{FirstName: &newName})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if dto.FirstName != "Anja" {
		t.Fatalf("expected updated name, got %q", dto.FirstName)
	}
}
