package dto

import "time"

type CheckoutRequest struct {
	CartOwnerID  string     `json:"cartOwnerId"`
	OwnerID      *string    `json:"ownerId,omitempty"`
	GuestName    *string    `json:"guestName,omitempty"`
	GuestPhone   *string    `json:"guestPhone,omitempty"`
	GuestEmail   *string    `json:"guestEmail,omitempty"`
	AddressRef   *string    `json:"addressRef,omitempty"`
	EventDate    *time.Time `json:"eventDate,omitempty"`
	DeliverySlot *string    `json:"deliverySlot,omitempty"`
}
