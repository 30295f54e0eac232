package services

import (
	"errors"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// getOrCreate returns the user's cart, creating it on first use.
func (s *CartService) getOrCreate(userID int) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	cart = &models.Cart{UserID: userID}
	if err := s.carts.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// View returns the cart with items hydrated with their products. Items whose
// product has disappeared are skipped rather than failing the whole cart.
func (s *CartService) View(userID int) (*models.CartView, error) {
	cart, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.carts.Items(cart.ID)
	if err != nil {
		return nil, err
	}
	view := &models.CartView{Cart: *cart, Items: make([]*models.CartItem, 0, len(items))}
	for _, item := range items {
		product, err := s.products.GetByID(item.ProductID)
		if err != nil {
			continue
		}
		item.Product = product
		view.Items = append(view.Items, item)
	}
	return view, nil
}

// AddItem puts a product in the cart; if it is already there the quantities
// merge instead of duplicating the line.
func (s *CartService) AddItem(userID, productID, quantity int) (*models.CartItem, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	cart, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.carts.Items(cart.ID)
	if err != nil {
		return nil, err
	}
	for _, existing := range items {
		if existing.ProductID == productID {
			return s.carts.UpdateItemQuantity(existing.ID, existing.Quantity+quantity)
		}
	}
	item := &models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
	if err := s.carts.AddItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity sets the quantity of a line the user owns.
func (s *CartService) UpdateItemQuantity(userID, itemID, quantity int) (*models.CartItem, error) {
	if err := s.checkItemOwner(userID, itemID); err != nil {
		return nil, err
	}
	item, err := s.carts.UpdateItemQuantity(itemID, quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(userID, itemID int) error {
	if err := s.checkItemOwner(userID, itemID); err != nil {
		return err
	}
	return s.carts.RemoveItem(itemID)
}

func (s *CartService) checkItemOwner(userID, itemID int) error {
	item, err := s.carts.GetItem(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	cart, err := s.carts.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	if item.CartID != cart.ID {
		return ErrCartItemNotFound
	}
	return nil
}
