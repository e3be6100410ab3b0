package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adaptivecare/adaptivecare-api/risk"
)

const assessmentName = "assessments"

// AssessmentDatabase contains the methods to use with the risk assessment database
type AssessmentDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*risk.Assessment, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]risk.Assessment, error)
	InsertOne(context.Context, *risk.Assessment) (interface{}, error)
}

type assessmentDatabase struct {
	db DatabaseHelper
}

// NewAssessmentDatabase initializes a new instance of assessment database with the provided db connection
func NewAssessmentDatabase(db DatabaseHelper) AssessmentDatabase {
	return &assessmentDatabase{
		db: db,
	}
}

func (c *assessmentDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*risk.Assessment, error) {
	assessment := &risk.Assessment{}
	err := c.db.Collection(assessmentName).FindOne(ctx, filter, opts...).Decode(&assessment)
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

func (c *assessmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]risk.Assessment, error) {
	var assessments []risk.Assessment
	err := c.db.Collection(assessmentName).Find(ctx, filter, opts...).Decode(&assessments)
	if err != nil {
		return nil, err
	}
	return assessments, nil
}

func (c *assessmentDatabase) InsertOne(ctx context.Context, assessment *risk.Assessment) (interface{}, error) {
	result := c.db.Collection(assessmentName).InsertOne(ctx, assessment)
	return result.Decode(), nil
}
