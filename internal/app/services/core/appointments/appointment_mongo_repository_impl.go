package appointments

import (
	"context"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	appointmentMongoRepositoryInstance contracts.AppointmentRepository
	onceAppointmentMongoRepository     sync.Once
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	onceAppointmentMongoRepository.Do(func() {
		appointmentMongoRepositoryInstance = &AppointmentMongoRepository{
			Collection: db.Collection(constvars.MongoCollectionAppointments),
		}
	})
	return appointmentMongoRepositoryInstance
}

// AppointmentIndexModels are the indexes the appointments collection relies on.
// The partial unique index is the storage-level guard against double booking.
func AppointmentIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetName(constvars.MongoIndexActiveSlot).
				SetUnique(true).
				SetPartialFilterExpression(activeStatusFilter()),
		},
		{
			Keys:    bson.D{{Key: "patient", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName(constvars.MongoIndexPatientDate),
		},
	}
}

func EnsureAppointmentIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	names, err := db.Collection(constvars.MongoCollectionAppointments).Indexes().CreateMany(ctx, AppointmentIndexModels())
	if err != nil {
		return nil, exceptions.ErrMongoDBCreateIndex(err)
	}
	return names, nil
}

func activeStatusFilter() bson.M {
	return bson.M{"status": bson.M{"$in": models.ActiveAppointmentStatuses}}
}

func (r *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrSlotTaken(err, appointment.SlotLockKey())
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindByID returns nil, nil when the appointment does not exist.
func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindActiveByDoctorAndDay(ctx context.Context, doctorID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := activeStatusFilter()
	filter["doctor"] = objectID
	filter["date"] = bson.M{"$gte": dayStart, "$lt": dayEnd}

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *AppointmentMongoRepository) UpdateAppointment(ctx context.Context, appointmentID string, expectedStatus models.AppointmentStatus, update *models.AppointmentUpdate) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	set := update.ConvertToBsonM()
	set["updatedAt"] = time.Now()

	filter := bson.M{"_id": objectID, "status": expectedStatus}
	result, err := r.Collection.UpdateOne(ctx, filter, bson.M{"$set": set}, options.Update().SetUpsert(false))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, exceptions.ErrSlotTaken(err, appointmentID)
		}
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *AppointmentMongoRepository) FindAll(ctx context.Context, appointmentFilter models.AppointmentFilter) ([]models.Appointment, int, error) {
	filter := bson.M{}
	if appointmentFilter.DoctorID != "" {
		objectID, err := primitive.ObjectIDFromHex(appointmentFilter.DoctorID)
		if err != nil {
			return nil, 0, exceptions.ErrMongoDBNotObjectID(err)
		}
		filter["doctor"] = objectID
	}
	if appointmentFilter.PatientID != "" {
		objectID, err := primitive.ObjectIDFromHex(appointmentFilter.PatientID)
		if err != nil {
			return nil, 0, exceptions.ErrMongoDBNotObjectID(err)
		}
		filter["patient"] = objectID
	}
	if appointmentFilter.Date != nil {
		dayStart, dayEnd := utils.DayBounds(*appointmentFilter.Date)
		filter["date"] = bson.M{"$gte": dayStart, "$lt": dayEnd}
	}
	if appointmentFilter.Status != "" {
		filter["status"] = appointmentFilter.Status
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}).
		SetSkip(appointmentFilter.Offset)
	if appointmentFilter.Limit > 0 {
		opts.SetLimit(appointmentFilter.Limit)
	}

	appointments, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return appointments, int(total), nil
}

func (r *AppointmentMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
