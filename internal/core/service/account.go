package service

import (
	"context"
	"fmt"
	"io"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.AccountManager = (*AccountService)(nil)

// AccountService covers profile display fields and the user's address
// book. Authentication credentials are the auth provider's business.
type AccountService struct {
	profiles  port.ProfilesStorage
	addresses port.AddressesStorage
	uploader  port.AvatarUploader
}

func NewAccount(
	profiles port.ProfilesStorage,
	addresses port.AddressesStorage,
	uploader port.AvatarUploader,
) AccountService {
	return AccountService{profiles, addresses, uploader}
}

func (s AccountService) GetProfile(
	ctx context.Context, userID string,
) (domain.Profile, error) {
	const op = "AccountService.GetProfile"

	p, err := s.profiles.ByUser(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s AccountService) SaveProfile(
	ctx context.Context, p domain.Profile,
) error {
	const op = "AccountService.SaveProfile"

	if p.UserID == "" {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s AccountService) UploadAvatar(
	ctx context.Context, userID string, src io.Reader,
) (string, error) {
	const op = "AccountService.UploadAvatar"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	url, err := s.uploader.Upload(ctx, userID, src)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.profiles.SetAvatarURL(ctx, userID, url); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return url, nil
}

func (s AccountService) ListAddresses(
	ctx context.Context, userID string,
) ([]domain.Address, error) {
	const op = "AccountService.ListAddresses"

	as, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return as, nil
}

func (s AccountService) CreateAddress(
	ctx context.Context, a domain.Address,
) (domain.Address, error) {
	const op = "AccountService.CreateAddress"

	if err := validateAddress(a); err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.addresses.Insert(ctx, a)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s AccountService) UpdateAddress(
	ctx context.Context, a domain.Address,
) error {
	const op = "AccountService.UpdateAddress"

	if a.ID <= 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}
	if err := validateAddress(a); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.addresses.Update(ctx, a); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteAddress removes the row. Deleting the current default does
// not promote another address.
func (s AccountService) DeleteAddress(
	ctx context.Context, userID string, addressID int64,
) error {
	const op = "AccountService.DeleteAddress"

	if err := s.addresses.Delete(ctx, userID, addressID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s AccountService) SetDefaultAddress(
	ctx context.Context, userID string, addressID int64,
) error {
	const op = "AccountService.SetDefaultAddress"

	if userID == "" || addressID <= 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}

	if err := s.addresses.SetDefault(ctx, userID, addressID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func validateAddress(a domain.Address) error {
	if a.UserID == "" || a.Line1 == "" || a.City == "" || a.Country == "" {
		return domain.ErrValidation
	}
	return nil
}
