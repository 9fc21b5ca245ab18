package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"bookwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// distinctStaffIDs lists the staff members the hold reserves time for,
// deduplicated and sorted so every transaction touches guard documents in
// the same order.
func distinctStaffIDs(hold *models.Appointment) []string {
	seen := make(map[string]bool, len(hold.ServiceItems))
	ids := make([]string, 0, len(hold.ServiceItems))
	for _, item := range hold.ServiceItems {
		if !seen[item.StaffID] {
			seen[item.StaffID] = true
			ids = append(ids, item.StaffID)
		}
	}
	sort.Strings(ids)
	return ids
}

// InsertHoldIfFree closes the check-then-write race. Counting overlaps and
// inserting a fresh document never conflict under snapshot isolation, so
// the transaction first bumps a guard document shared by every writer for
// the same (vendor, staff, date). Two concurrent acquisitions then collide
// on that write; the loser retries and its recheck sees the winner's
// committed hold.
func (repo *MongoAppointmentRepo) InsertHoldIfFree(ctx context.Context, hold *models.Appointment, now time.Time) error {
	sess, err := repo.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	upsert := options.Update().SetUpsert(true)
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, staffID := range distinctStaffIDs(hold) {
			filter := bson.M{"vendor_id": hold.VendorID, "staff_id": staffID, "date": hold.Date}
			update := bson.M{"$inc": bson.M{"version": 1}}
			if _, err := repo.guards.UpdateOne(sc, filter, update, upsert); err != nil {
				return nil, fmt.Errorf("schedule guard update failed: %w", err)
			}
		}
		for _, item := range hold.ServiceItems {
			filter := overlapFilter(hold.VendorID, item.StaffID, hold.Date, item.Start, item.End, now)
			count, err := repo.coll.CountDocuments(sc, filter)
			if err != nil {
				return nil, fmt.Errorf("overlap recheck failed: %w", err)
			}
			if count > 0 {
				return nil, ErrSlotTaken
			}
		}
		if _, err := repo.coll.InsertOne(sc, hold); err != nil {
			return nil, fmt.Errorf("insert hold failed: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("hold transaction failed: %w", err)
	}
	return nil
}
