package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"bookwell/database"
	"bookwell/models"
	"bookwell/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
// guards holds one document per (vendor, staff, date) that every hold
// insert for that schedule writes, serializing concurrent acquisitions.
type MongoAppointmentRepo struct {
	coll   *mongo.Collection
	guards *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.DB()
	repo := &MongoAppointmentRepo{
		coll:   db.Collection("appointments"),
		guards: db.Collection("schedule_guards"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to ensure appointment indexes: %v", err)
	}
	return repo
}

// activeFilter matches records that still reserve time at the given instant:
// confirmed (and later) appointments, or temp-locked holds whose TTL has not
// passed. Expired holds fail the predicate even before the sweeper runs.
func activeFilter(now time.Time) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"status": bson.M{"$in": bson.A{
				models.StatusConfirmed,
				models.StatusPartiallyCompleted,
				models.StatusCompleted,
			}}},
			bson.M{
				"status":          models.StatusTempLocked,
				"lock_expiration": bson.M{"$gt": now},
			},
		},
	}
}

func overlapFilter(vendorID, staffID, date string, start, end int, now time.Time) bson.M {
	filter := activeFilter(now)
	filter["vendor_id"] = vendorID
	filter["date"] = date
	filter["service_items"] = bson.M{
		"$elemMatch": bson.M{
			"staff_id": staffID,
			"start":    bson.M{"$lt": end},
			"end":      bson.M{"$gt": start},
		},
	}
	return filter
}

func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": appointmentID}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", appointmentID, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) FindActive(ctx context.Context, vendorID, staffID, date string, now time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := activeFilter(now)
	filter["vendor_id"] = vendorID
	filter["date"] = date
	filter["service_items.staff_id"] = staffID

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding active appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) FindOverlapping(ctx context.Context, vendorID, staffID, date string, start, end int, now time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, overlapFilter(vendorID, staffID, date, start, end, now))
	if err != nil {
		return nil, fmt.Errorf("error finding overlapping appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) FindActiveHoldByClient(ctx context.Context, clientID, vendorID string, now time.Time) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"client_id":       clientID,
		"vendor_id":       vendorID,
		"status":          models.StatusTempLocked,
		"lock_expiration": bson.M{"$gt": now},
	}
	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching active hold for client %s: %w", clientID, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) FindHoldByToken(ctx context.Context, lockToken string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"lock_token": lockToken, "status": models.StatusTempLocked}
	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching hold by token: %w", err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) ConfirmHold(ctx context.Context, appointmentID, lockToken string, now time.Time, payment models.PaymentDetails, discount, fees float64) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":              appointmentID,
		"lock_token":      lockToken,
		"status":          models.StatusTempLocked,
		"lock_expiration": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     models.StatusConfirmed,
			"payment":    payment,
			"discount":   discount,
			"fees":       fees,
			"updated_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	err := repo.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("error confirming hold %s: %w", appointmentID, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) DeleteHold(ctx context.Context, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": appointmentID, "status": models.StatusTempLocked}
	if _, err := repo.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("error deleting hold %s: %w", appointmentID, err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) UpdateStatus(ctx context.Context, appointmentID, status, reason string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}
	if reason != "" {
		update["$set"].(bson.M)["cancel_reason"] = reason
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"id": appointmentID}, update, opts).Decode(&appt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("error updating status for appointment %s: %w", appointmentID, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":          models.StatusTempLocked,
		"lock_expiration": bson.M{"$lte": now},
	}
	res, err := repo.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired holds: %w", err)
	}
	return res.DeletedCount, nil
}
