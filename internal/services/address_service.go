package services

import (
	"errors"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressService struct {
	addresses repositories.AddressRepository
}

func NewAddressService(addresses repositories.AddressRepository) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) List(userID int) ([]*models.Address, error) {
	return s.addresses.ListByUser(userID)
}

func (s *AddressService) Create(userID int, addr *models.Address) (*models.Address, error) {
	addr.ID = 0
	addr.UserID = userID
	if addr.IsDefault {
		if err := s.addresses.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	if err := s.addresses.Create(addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Update(userID, addressID int, addr *models.Address) (*models.Address, error) {
	existing, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}
	addr.ID = existing.ID
	addr.UserID = userID
	addr.CreatedAt = existing.CreatedAt
	if addr.IsDefault && !existing.IsDefault {
		if err := s.addresses.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	if err := s.addresses.Update(addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Delete(userID, addressID int) error {
	if _, err := s.ownedAddress(userID, addressID); err != nil {
		return err
	}
	return s.addresses.Delete(addressID)
}

func (s *AddressService) ownedAddress(userID, addressID int) (*models.Address, error) {
	addr, err := s.addresses.GetByID(addressID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if addr.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return addr, nil
}
