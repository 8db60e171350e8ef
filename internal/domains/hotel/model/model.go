package model

import "hotelbook/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID      = "id"
	FieldName    = "name"
	FieldAddress = "address"
	FieldContact = "contact"
	FieldCity    = "city"
	FieldOwnerID = "owner_id"
)

type Hotel struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	Contact string `db:"contact"`
	City    string `db:"city"`
	OwnerID string `db:"owner_id"`
	model.Metadata
}

const MsgNeedsRegistration = "no hotel found, please register a hotel first"
