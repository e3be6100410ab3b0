package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/adaptivecare/adaptivecare-api/config"
	"github.com/adaptivecare/adaptivecare-api/databases"
	"github.com/adaptivecare/adaptivecare-api/databases/mocks"
	"github.com/adaptivecare/adaptivecare-api/models"
)

func TestNewPatientDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	patientDB := databases.NewPatientDatabase(db)

	assert.NotEmpty(t, patientDB)
}

func TestPatientDatabaseFindOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Patient)
		(*arg).ID = "mocked-patient"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	patientDB := databases.NewPatientDatabase(dbHelper)

	patient, err := patientDB.FindOne(context.Background(), bson.M{"error": true})
	assert.Empty(t, patient)
	assert.EqualError(t, err, "mocked-error")

	patient, err = patientDB.FindOne(context.Background(), bson.M{"error": false})
	assert.Equal(t, &models.Patient{ID: "mocked-patient"}, patient)
	assert.NoError(t, err)
}

func TestPatientDatabaseFind(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelperErr databases.CursorHelper
	var cursorHelperCorrect databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelperErr = &mocks.CursorHelper{}
	cursorHelperCorrect = &mocks.CursorHelper{}

	cursorHelperErr.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-cursor-error"))

	cursorHelperCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Patient)
		*arg = []models.Patient{{ID: "mocked-patient"}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(cursorHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(cursorHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "patients").Return(collectionHelper)

	patientDB := databases.NewPatientDatabase(dbHelper)

	patients, err := patientDB.Find(context.Background(), bson.M{"error": true})
	assert.Empty(t, patients)
	assert.EqualError(t, err, "mocked-cursor-error")

	patients, err = patientDB.Find(context.Background(), bson.M{"error": false})
	assert.Equal(t, []models.Patient{{ID: "mocked-patient"}}, patients)
	assert.NoError(t, err)
}

func TestPatientDatabaseAppendVitals(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	vitals := models.VitalSigns{HeartRate: 88, Timestamp: ts}

	collectionHelper.
		On("UpdateOne", context.Background(),
			bson.M{"_id": "p1"},
			bson.M{
				"$push": bson.M{"vitals": vitals},
				"$set":  bson.M{"updatedAt": ts},
			}).
		Return(nil)

	dbHelper.On("Collection", "patients").Return(collectionHelper)

	patientDB := databases.NewPatientDatabase(dbHelper)
	err := patientDB.AppendVitals(context.Background(), "p1", vitals)

	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestPatientDatabaseSetStatus(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", context.Background(),
			bson.M{"_id": "p1"},
			bson.M{"$set": bson.M{
				"status":          models.PatientAdmitted,
				"currentLocation": models.LocationICU,
			}}).
		Return(nil)

	dbHelper.On("Collection", "patients").Return(collectionHelper)

	patientDB := databases.NewPatientDatabase(dbHelper)
	err := patientDB.SetStatus(context.Background(), "p1", models.PatientAdmitted, models.LocationICU)

	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}
