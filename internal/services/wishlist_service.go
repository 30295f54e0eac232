package services

import (
	"errors"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

var ErrAlreadyInWishlist = errors.New("product already in wishlist")

type WishlistService struct {
	wishlists repositories.WishlistRepository
	products  repositories.ProductRepository
}

func NewWishlistService(wishlists repositories.WishlistRepository, products repositories.ProductRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

// List returns the user's wishlist with products hydrated.
func (s *WishlistService) List(userID int) ([]*models.Wishlist, error) {
	items, err := s.wishlists.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	res := make([]*models.Wishlist, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			continue
		}
		item.Product = product
		res = append(res, item)
	}
	return res, nil
}

func (s *WishlistService) Add(userID, productID int) (*models.Wishlist, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	exists, err := s.wishlists.Exists(userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInWishlist
	}
	item := &models.Wishlist{UserID: userID, ProductID: productID}
	if err := s.wishlists.Add(item); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadyInWishlist
		}
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) Remove(userID, productID int) error {
	return s.wishlists.Remove(userID, productID)
}
