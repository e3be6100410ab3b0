package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adaptivecare/adaptivecare-api/models"
)

const patientName = "patients"

// PatientDatabase contains the methods to use with the patient database
type PatientDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Patient, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Patient, error)
	InsertOne(context.Context, *models.Patient) (interface{}, error)
	UpdateOne(context.Context, interface{}, interface{}) error
	AppendVitals(context.Context, string, models.VitalSigns) error
	SetStatus(context.Context, string, models.PatientStatus, models.Location) error
}

type patientDatabase struct {
	db DatabaseHelper
}

// NewPatientDatabase initializes a new instance of patient database with the provided db connection
func NewPatientDatabase(db DatabaseHelper) PatientDatabase {
	return &patientDatabase{
		db: db,
	}
}

func (c *patientDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Patient, error) {
	patient := &models.Patient{}
	err := c.db.Collection(patientName).FindOne(ctx, filter, opts...).Decode(&patient)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (c *patientDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Patient, error) {
	var patients []models.Patient
	err := c.db.Collection(patientName).Find(ctx, filter, opts...).Decode(&patients)
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (c *patientDatabase) InsertOne(ctx context.Context, patient *models.Patient) (interface{}, error) {
	result := c.db.Collection(patientName).InsertOne(ctx, patient)
	return result.Decode(), nil
}

func (c *patientDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return c.db.Collection(patientName).UpdateOne(ctx, filter, update)
}

func (c *patientDatabase) AppendVitals(ctx context.Context, patientID string, vitals models.VitalSigns) error {
	return c.db.Collection(patientName).UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{
			"$push": bson.M{"vitals": vitals},
			"$set":  bson.M{"updatedAt": vitals.Timestamp},
		},
	)
}

func (c *patientDatabase) SetStatus(ctx context.Context, patientID string, status models.PatientStatus, location models.Location) error {
	return c.db.Collection(patientName).UpdateOne(ctx,
		bson.M{"_id": patientID},
		bson.M{"$set": bson.M{
			"status":          status,
			"currentLocation": location,
		}},
	)
}
