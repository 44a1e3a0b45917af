package conversationRepository

import (
	"RomiioBot/internal/api/conversation"
	"RomiioBot/internal/entity"
	"RomiioBot/pkg/catalog"
	contextPkg "RomiioBot/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type BookingDB struct {
	ID          string    `db:"id"`
	CustomerID  string    `db:"customer_id"`
	Category    string    `db:"category"`
	PackageKey  string    `db:"package_key"`
	PackageName string    `db:"package_name"`
	Price       string    `db:"price"`
	Info        string    `db:"info"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *bookingRepository) CreateBooking(ctx context.Context, booking entity.Booking) error {
	requestID := contextPkg.GetRequestID(ctx)

	infoJSON, err := json.Marshal(booking.Info)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal booking info")
		return err
	}

	argsKV := map[string]interface{}{
		"id":           booking.ID,
		"customer_id":  booking.CustomerID,
		"category":     string(booking.Category),
		"package_key":  string(booking.PackageKey),
		"package_name": booking.PackageName,
		"price":        booking.Price,
		"info":         string(infoJSON),
		"status":       string(booking.Status),
		"created_at":   booking.CreatedAt,
		"updated_at":   booking.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateBooking, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBooking")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"booking_id": booking.ID,
			"error":      err.Error(),
		}).Error("Database error when creating booking")
		return err
	}

	return nil
}

func (r *bookingRepository) UpdateBookingStatus(ctx context.Context, id string, status entity.BookingStatus) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         id,
		"status":     string(status),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateBookingStatus, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateBookingStatus named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"booking_id": id,
			"error":      err.Error(),
		}).Error("UpdateBookingStatus execution err")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return conversation.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) GetBookingByID(ctx context.Context, id string) (entity.Booking, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var bookingDB BookingDB

	query, args, err := sqlx.Named(queryGetBookingByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBookingByID named query preparation err")
		return entity.Booking{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&bookingDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Booking{}, conversation.ErrBookingNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBookingByID execution err")
		return entity.Booking{}, err
	}

	return r.makeBooking(bookingDB)
}

func (r *bookingRepository) makeBooking(b BookingDB) (entity.Booking, error) {
	var info entity.BookingInfo
	if b.Info != "" {
		if err := json.Unmarshal([]byte(b.Info), &info); err != nil {
			return entity.Booking{}, err
		}
	}

	return entity.Booking{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		Category:    catalog.Category(b.Category),
		PackageKey:  catalog.PackageKey(b.PackageKey),
		PackageName: b.PackageName,
		Price:       b.Price,
		Info:        info,
		Status:      entity.BookingStatus(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}, nil
}
