package listings

import "errors"

var (
	ErrListingNotFound        = errors.New("Listing not found")
	ErrOwnerNotFound          = errors.New("Owner not found")
	ErrClassificationNotFound = errors.New("Classification not found")
	ErrNotCreated             = errors.New("Listing not created")
)
