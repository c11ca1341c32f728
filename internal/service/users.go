package service

import (
	"context"
	"strings"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var userTracer = otel.Tracer("service/users")

// maxAvatarBytes caps avatar uploads at 2 MiB.
const maxAvatarBytes = 2 << 20

// UserService handles operator profiles and avatar uploads.
type UserService struct {
	store  port.AuthStore
	blobs  port.BlobStore
	logger *zap.Logger
}

// NewUserService creates a user service.
func NewUserService(store port.AuthStore, blobs port.BlobStore, logger *zap.Logger) *UserService {
	return &UserService{store: store, blobs: blobs, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := userTracer.Start(ctx, "UserService.Get")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	return s.store.GetUserByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	ctx, span := userTracer.Start(ctx, "UserService.List")
	defer span.End()

	return s.store.ListUsers(ctx)
}

// UpdateProfile edits the caller's first/last name.
func (s *UserService) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*domain.User, error) {
	ctx, span := userTracer.Start(ctx, "UserService.UpdateProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	updates := map[string]any{}
	if firstName != "" {
		updates["first_name"] = firstName
	}
	if lastName != "" {
		updates["last_name"] = lastName
	}
	if len(updates) == 0 {
		return s.store.GetUserByID(ctx, id)
	}

	return s.store.UpdateUserProfile(ctx, id, updates)
}

// UploadAvatar stores the image in the avatars bucket and records its
// public URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID, filename, contentType string, data []byte) (*domain.User, error) {
	ctx, span := userTracer.Start(ctx, "UserService.UploadAvatar")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if len(data) == 0 {
		return nil, &domain.ErrValidation{Field: "file", Message: "file is empty"}
	}
	if len(data) > maxAvatarBytes {
		return nil, &domain.ErrValidation{Field: "file", Message: "file exceeds 2MB limit"}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &domain.ErrValidation{Field: "file", Message: "file must be an image"}
	}

	url, err := s.blobs.UploadAvatar(ctx, userID, filename, contentType, data)
	if err != nil {
		return nil, err
	}

	user, err := s.store.UpdateUserProfile(ctx, userID, map[string]any{"avatar_url": url})
	if err != nil {
		return nil, err
	}

	s.logger.Info("avatar updated",
		zap.String("user_id", userID),
		zap.String("url", url),
	)
	return user, nil
}
