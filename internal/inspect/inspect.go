// Package inspect backs the operator CLI: read-only listings of the store plus a switch for a
// room's listing flag and a tail of the booking event topic.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/internal/domains/booking/event"
	bookingModel "hotelbook/internal/domains/booking/model"
	bookingRepo "hotelbook/internal/domains/booking/repository"
	hotelRepo "hotelbook/internal/domains/hotel/repository"
	roomModel "hotelbook/internal/domains/room/model"
	roomRepo "hotelbook/internal/domains/room/repository"
	userRepo "hotelbook/internal/domains/user/repository"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/timezone"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	CommandBookings         = "bookings"
	CommandCatalog          = "catalog"
	CommandRoomAvailability = "room-availability"
	CommandEvents           = "events"

	actorInspect = "inspect"
	inspectGroup = "hotelbook-inspect"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid arguments")
	ErrRoomNotFound   = errors.New("room not found")
)

type Inspector struct {
	users       userRepo.User
	hotels      hotelRepo.Hotel
	rooms       roomRepo.Room
	roomDetails roomRepo.RoomDetail
	bookings    bookingRepo.BookingDetail
	kafka       kafka.Client
	cfg         *config.Config
	out         io.Writer
}

func New(
	users userRepo.User,
	hotels hotelRepo.Hotel,
	rooms roomRepo.Room,
	roomDetails roomRepo.RoomDetail,
	bookings bookingRepo.BookingDetail,
	kafkaClient kafka.Client,
	cfg *config.Config,
	out io.Writer,
) *Inspector {
	return &Inspector{
		users:       users,
		hotels:      hotels,
		rooms:       rooms,
		roomDetails: roomDetails,
		bookings:    bookings,
		kafka:       kafkaClient,
		cfg:         cfg,
		out:         out,
	}
}

func Usage() string {
	return strings.Join([]string{
		"usage: inspect <command>",
		"  " + CommandBookings + "                          list every booking with paid and unpaid totals",
		"  " + CommandCatalog + "                           list users, hotels and rooms",
		"  " + CommandRoomAvailability + " <id> <true|false>  set a room's listing flag",
		"  " + CommandEvents + "                            tail the booking event topic",
	}, "\n")
}

func (i *Inspector) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case CommandBookings:
		return i.Bookings(ctx)
	case CommandCatalog:
		return i.Catalog(ctx)
	case CommandRoomAvailability:
		if len(args) != 3 {
			return ErrUsage
		}

		available, err := strconv.ParseBool(args[2])
		if err != nil {
			return fmt.Errorf("%w: %s is not a boolean", ErrUsage, args[2])
		}

		return i.SetRoomAvailability(ctx, args[1], available)
	case CommandEvents:
		return i.Events(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}

// Bookings prints every booking, newest first, followed by the paid and unpaid totals.
func (i *Inspector) Bookings(ctx context.Context) error {
	bookings, err := i.bookings.GetAll(ctx, gDto.QueryParams{
		SortBy:  bookingModel.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	w := tabwriter.NewWriter(i.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGUEST\tHOTEL\tROOM\tCHECK IN\tCHECK OUT\tTOTAL\tSTATUS\tPAID")

	var paid, unpaid float64

	for _, b := range bookings {
		if b.IsPaid {
			paid += b.TotalPrice
		} else {
			unpaid += b.TotalPrice
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%t\n",
			b.ID, b.UserEmail, b.HotelName, b.RoomType,
			b.CheckInDate.Format(constant.DayFormat), b.CheckOutDate.Format(constant.DayFormat),
			b.TotalPrice, b.Status, b.IsPaid)
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to write bookings: %w", err)
	}

	fmt.Fprintf(i.out, "\n%d bookings, paid %.2f, unpaid %.2f\n", len(bookings), paid, unpaid)

	return nil
}

func (i *Inspector) Catalog(ctx context.Context) error {
	users, err := i.users.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	hotels, err := i.hotels.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to list hotels: %w", err)
	}

	rooms, err := i.roomDetails.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	w := tabwriter.NewWriter(i.out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "USERS (%d)\n", len(users))
	fmt.Fprintln(w, "ID\tEMAIL\tUSERNAME\tROLE")

	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Username, u.Role)
	}

	fmt.Fprintf(w, "\nHOTELS (%d)\n", len(hotels))
	fmt.Fprintln(w, "ID\tNAME\tCITY\tOWNER")

	for _, h := range hotels {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.ID, h.Name, h.City, h.OwnerID)
	}

	fmt.Fprintf(w, "\nROOMS (%d)\n", len(rooms))
	fmt.Fprintln(w, "ID\tHOTEL\tTYPE\tPRICE\tLISTED")

	for _, r := range rooms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%t\n", r.ID, r.HotelName, r.RoomType, r.PricePerNight, r.IsAvailable)
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	return nil
}

// SetRoomAvailability only touches the listing flag; existing bookings are left alone.
func (i *Inspector) SetRoomAvailability(ctx context.Context, roomID string, available bool) error {
	filter := shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)

	exist, err := i.rooms.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check room: %w", err)
	}

	if !exist {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	err = i.rooms.Update(ctx, map[string]any{
		roomModel.FieldIsAvailable: available,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   actorInspect,
	}, filter)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	fmt.Fprintf(i.out, "room %s is_available=%t\n", roomID, available)

	return nil
}

// Events blocks until ctx is cancelled, printing one line per booking event.
func (i *Inspector) Events(ctx context.Context) error {
	if !i.kafka.Enabled() {
		return kafka.ErrDisabled
	}

	topic := i.cfg.Kafka.Topic.Booking

	log.Info().Str("topic", topic).Msg("tailing booking events")

	err := i.kafka.Consume(ctx, inspectGroup, topic, func(msg kafkaGo.Message) {
		evt, err := event.Decode(msg)
		if err != nil {
			log.Warn().Err(err).Int64("offset", msg.Offset).Msg("skipping undecodable event")

			return
		}

		fmt.Fprintln(i.out, FormatEvent(evt))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to consume booking events: %w", err)
	}

	return nil
}

func FormatEvent(evt event.BookingEvent) string {
	return fmt.Sprintf("%s %-16s booking=%s room=%s user=%s total=%.2f paid=%t status=%s",
		evt.OccurredAt.Format(constant.DateFormat), evt.Type, evt.BookingID, evt.RoomID, evt.UserID,
		evt.TotalPrice, evt.IsPaid, evt.Status)
}
