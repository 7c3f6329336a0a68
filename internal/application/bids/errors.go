package bids

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrListingClosed   = errors.New("Listing is closed")
	ErrSelfBid         = errors.New("You cannot bid on your own listing")
	ErrBidTooLow       = errors.New("Bid must exceed the current max bid")
)
