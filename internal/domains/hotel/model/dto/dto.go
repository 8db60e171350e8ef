package dto

import (
	"hotelbook/internal/domains/hotel/model"
	gDto "hotelbook/shared/dto"
	gModel "hotelbook/shared/model"
	"hotelbook/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type RegisterHotelRequest struct {
	Name    string `json:"name"    validate:"required,max=150"`
	Address string `json:"address" validate:"required,max=255"`
	Contact string `json:"contact" validate:"required,max=50"`
	City    string `json:"city"    validate:"required,max=100"`
}

func (r *RegisterHotelRequest) ToModel(ownerID string) model.Hotel {
	return model.Hotel{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Address:  strings.TrimSpace(r.Address),
		Contact:  strings.TrimSpace(r.Contact),
		City:     strings.TrimSpace(r.City),
		OwnerID:  ownerID,
		Metadata: gModel.NewMetadata(ownerID, timezone.Now()),
	}
}

type HotelResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	City    string `json:"city"`
	OwnerID string `json:"ownerId"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(mod model.Hotel) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Address = mod.Address
	r.Contact = mod.Contact
	r.City = mod.City
	r.OwnerID = mod.OwnerID
	r.Metadata.FromModel(mod.Metadata)
}
