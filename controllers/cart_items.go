package controllers

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jakia12/bizconnect-backend/models"
)

var errExceedsStock = errors.New("quantity exceeds available stock")

// mergeCartItem folds a new add into the item list: an existing line for
// the product grows in place, otherwise a new line is appended capturing
// the current unit price. One line per product, always.
func mergeCartItem(items []models.CartItem, productID primitive.ObjectID, quantity int, price float64, stock int) ([]models.CartItem, error) {
	for i, item := range items {
		if item.ProductID == productID {
			if item.Quantity+quantity > stock {
				return nil, errExceedsStock
			}
			items[i].Quantity += quantity
			return items, nil
		}
	}
	if quantity > stock {
		return nil, errExceedsStock
	}
	return append(items, models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
	}), nil
}

// removeCartItem drops the line for productID, reporting whether it was
// present. Other lines are untouched either way.
func removeCartItem(items []models.CartItem, productID primitive.ObjectID) ([]models.CartItem, bool) {
	for i, item := range items {
		if item.ProductID == productID {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

// reconcileCart drops lines whose product is gone or no longer active
// and derives the live totals. Storage is not touched; stale lines stay
// in the document until the buyer removes them.
func reconcileCart(items []models.CartItem, products map[primitive.ObjectID]models.Product) (valid []models.CartItem, total float64, itemCount int) {
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok || product.Status != models.ProductActive {
			continue
		}
		valid = append(valid, item)
		total += item.Price * float64(item.Quantity)
		itemCount += item.Quantity
	}
	return valid, total, itemCount
}
