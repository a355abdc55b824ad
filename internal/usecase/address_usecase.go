package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

type addressUseCase struct {
	addressRepo domain.AddressRepository
	log         *logrus.Logger
}

func NewAddressUseCase(addressRepo domain.AddressRepository, logger *logrus.Logger) domain.AddressUseCase {
	return &addressUseCase{
		addressRepo: addressRepo,
		log:         logger,
	}
}

func (uc *addressUseCase) CreateAddress(ctx context.Context, userID int64, address *domain.Address) (*domain.Address, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	address.Recipient = strings.TrimSpace(address.Recipient)
	address.Street = strings.TrimSpace(address.Street)
	address.City = strings.TrimSpace(address.City)
	if address.Recipient == "" {
		return nil, errors.New("recipient cannot be empty")
	}
	if address.Street == "" {
		return nil, errors.New("street cannot be empty")
	}
	if address.City == "" {
		return nil, errors.New("city cannot be empty")
	}
	address.UserID = userID

	created, err := uc.addressRepo.CreateAddress(ctx, address)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create address for user %d: %v", userID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Address %d created for user %d", created.ID, userID)
	return created, nil
}

func (uc *addressUseCase) ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error) {
	if userID <= 0 {
		return nil, errors.New("invalid user ID")
	}
	return uc.addressRepo.ListAddressesByUserID(ctx, userID)
}

func (uc *addressUseCase) UpdateAddress(ctx context.Context, userID, addressID int64, updates map[string]interface{}) (*domain.Address, error) {
	if err := uc.checkOwnership(ctx, userID, addressID); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return uc.addressRepo.GetAddressByID(ctx, addressID)
	}

	updated, err := uc.addressRepo.UpdateAddress(ctx, addressID, updates)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to update address %d: %v", addressID, err)
		return nil, err
	}
	return updated, nil
}

func (uc *addressUseCase) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	if err := uc.checkOwnership(ctx, userID, addressID); err != nil {
		return err
	}
	if err := uc.addressRepo.DeleteAddress(ctx, addressID); err != nil {
		uc.log.Errorf("Use Case: Failed to delete address %d: %v", addressID, err)
		return err
	}
	uc.log.Infof("Use Case: Address %d deleted by user %d", addressID, userID)
	return nil
}

func (uc *addressUseCase) SetPrimary(ctx context.Context, userID, addressID int64) error {
	if err := uc.checkOwnership(ctx, userID, addressID); err != nil {
		return err
	}
	if err := uc.addressRepo.SetPrimaryAddress(ctx, userID, addressID); err != nil {
		uc.log.Errorf("Use Case: Failed to set primary address %d for user %d: %v", addressID, userID, err)
		return err
	}
	uc.log.Infof("Use Case: Address %d set primary for user %d", addressID, userID)
	return nil
}

func (uc *addressUseCase) checkOwnership(ctx context.Context, userID, addressID int64) error {
	if userID <= 0 {
		return errors.New("invalid user ID")
	}
	if addressID <= 0 {
		return errors.New("invalid address ID")
	}
	address, err := uc.addressRepo.GetAddressByID(ctx, addressID)
	if err != nil {
		return err
	}
	if address.UserID != userID {
		uc.log.Warnf("Use Case: User %d attempted to access address %d of another user", userID, addressID)
		return errors.New("you are not authorized to manage this address")
	}
	return nil
}
