package patients

import (
	"context"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	patientMongoRepositoryInstance contracts.PatientRepository
	oncePatientMongoRepository     sync.Once
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Database) contracts.PatientRepository {
	oncePatientMongoRepository.Do(func() {
		patientMongoRepositoryInstance = &PatientMongoRepository{
			Collection: db.Collection(constvars.MongoCollectionPatients),
		}
	})
	return patientMongoRepositoryInstance
}

// FindByID returns nil, nil when no patient has the given id.
func (r *PatientMongoRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var patient models.Patient
	opts := options.FindOne().SetProjection(bson.M{"_id": 1, "name": 1})
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}
