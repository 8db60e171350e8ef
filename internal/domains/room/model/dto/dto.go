package dto

import (
	"encoding/json"
	"hotelbook/internal/domains/room/model"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	gModel "hotelbook/shared/model"
	"hotelbook/shared/timezone"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	FormRoomType      = "roomType"
	FormPricePerNight = "pricePerNight"
	FormAmenities     = "amenities"
	FormImages        = "images"
)

type CreateRoomRequest struct {
	RoomType      string                  `json:"roomType"      validate:"required,max=100"`
	PricePerNight float64                 `json:"pricePerNight" validate:"gt=0"`
	Amenities     []string                `json:"amenities"     validate:"max=30,dive,required,max=60"`
	Images        []*multipart.FileHeader `json:"images"        validate:"min=1,max=4,dive,required,mimetypes=image/png image/jpeg image/webp,maxfilesize=5"`
}

// FromMultipart reads the room form: amenities arrive as a JSON array of strings.
func (r *CreateRoomRequest) FromMultipart(form *multipart.Form) error {
	r.RoomType = strings.TrimSpace(formValue(form, FormRoomType))

	price, err := shared.ConvertStringToFloat(formValue(form, FormPricePerNight))
	if err != nil {
		return failure.BadRequestFromString(FormPricePerNight + " must be a number") //nolint:wrapcheck
	}

	r.PricePerNight = price

	r.Amenities = []string{}
	if raw := formValue(form, FormAmenities); raw != constant.Empty {
		if err = json.Unmarshal([]byte(raw), &r.Amenities); err != nil {
			return failure.BadRequestFromString(FormAmenities + " must be a JSON array of strings") //nolint:wrapcheck
		}
	}

	r.Images = form.File[FormImages]

	return nil
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}

	return constant.Empty
}

func (r *CreateRoomRequest) ToModel(hotelID string, images []string, actor string) model.Room {
	return model.Room{
		ID:            uuid.NewString(),
		HotelID:       hotelID,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight,
		Amenities:     pq.StringArray(r.Amenities),
		Images:        pq.StringArray(images),
		IsAvailable:   true,
		Metadata:      gModel.NewMetadata(actor, timezone.Now()),
	}
}

type ToggleAvailabilityRequest struct {
	RoomID string `json:"roomId" validate:"required"`
}

type HotelSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Contact    string `json:"contact"`
	OwnerID    string `json:"ownerId"`
	OwnerImage string `json:"ownerImage,omitempty"`
}

type RoomResponse struct {
	ID            string        `json:"id"`
	HotelID       string        `json:"hotelId"`
	RoomType      string        `json:"roomType"`
	PricePerNight float64       `json:"pricePerNight"`
	Amenities     []string      `json:"amenities"`
	Images        []string      `json:"images"`
	IsAvailable   bool          `json:"isAvailable"`
	Hotel         *HotelSummary `json:"hotel,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.RoomType = mod.RoomType
	r.PricePerNight = mod.PricePerNight
	r.Amenities = append([]string{}, mod.Amenities...)
	r.Images = append([]string{}, mod.Images...)
	r.IsAvailable = mod.IsAvailable
	r.Metadata.FromModel(mod.Metadata)
}

func (r *RoomResponse) FromDetail(mod model.RoomDetail) {
	r.FromModel(mod.Room)
	r.Hotel = &HotelSummary{
		ID:         mod.HotelID,
		Name:       mod.HotelName,
		Address:    mod.HotelAddress,
		City:       mod.HotelCity,
		Contact:    mod.HotelContact,
		OwnerID:    mod.HotelOwnerID,
		OwnerImage: mod.OwnerImage,
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"totalPage"`
	TotalData int            `json:"totalData"`
}

func (r *GetRoomsResponse) FromModels(models []model.RoomDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromDetail(mod)
	}
}
