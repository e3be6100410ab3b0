package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adaptivecare/adaptivecare-api/models"
)

const operatorName = "operators"

// OperatorDatabase contains the methods to use with the operator database
type OperatorDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Operator, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Operator, error)
	InsertOne(context.Context, *models.Operator) (interface{}, error)
}

type operatorDatabase struct {
	db DatabaseHelper
}

// NewOperatorDatabase initializes a new instance of operator database with the provided db connection
func NewOperatorDatabase(db DatabaseHelper) OperatorDatabase {
	return &operatorDatabase{
		db: db,
	}
}

func (c *operatorDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Operator, error) {
	operator := &models.Operator{}
	err := c.db.Collection(operatorName).FindOne(ctx, filter, opts...).Decode(&operator)
	if err != nil {
		return nil, err
	}
	return operator, nil
}

func (c *operatorDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Operator, error) {
	var operators []models.Operator
	err := c.db.Collection(operatorName).Find(ctx, filter, opts...).Decode(&operators)
	if err != nil {
		return nil, err
	}
	return operators, nil
}

func (c *operatorDatabase) InsertOne(ctx context.Context, operator *models.Operator) (interface{}, error) {
	result := c.db.Collection(operatorName).InsertOne(ctx, operator)
	return result.Decode(), nil
}
