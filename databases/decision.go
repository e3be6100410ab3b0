package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adaptivecare/adaptivecare-api/decision"
)

const decisionName = "decisions"

// DecisionDatabase contains the methods to use with the decision database
type DecisionDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*decision.Output, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]decision.Output, error)
	InsertOne(context.Context, *decision.Output) (interface{}, error)
}

type decisionDatabase struct {
	db DatabaseHelper
}

// NewDecisionDatabase initializes a new instance of decision database with the provided db connection
func NewDecisionDatabase(db DatabaseHelper) DecisionDatabase {
	return &decisionDatabase{
		db: db,
	}
}

func (c *decisionDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*decision.Output, error) {
	output := &decision.Output{}
	err := c.db.Collection(decisionName).FindOne(ctx, filter, opts...).Decode(&output)
	if err != nil {
		return nil, err
	}
	return output, nil
}

func (c *decisionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]decision.Output, error) {
	var outputs []decision.Output
	err := c.db.Collection(decisionName).Find(ctx, filter, opts...).Decode(&outputs)
	if err != nil {
		return nil, err
	}
	return outputs, nil
}

func (c *decisionDatabase) InsertOne(ctx context.Context, output *decision.Output) (interface{}, error) {
	result := c.db.Collection(decisionName).InsertOne(ctx, output)
	return result.Decode(), nil
}
