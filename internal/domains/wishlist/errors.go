package wishlist

import "errors"

var (
	ErrItemNotFound  = errors.New("wishlist item not found")
	ErrAlreadyListed = errors.New("product already in wishlist")
)
