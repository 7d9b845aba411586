package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// RetryableFunc reports whether an error is worth another attempt.
type RetryableFunc func(err error) bool

const DefaultMaxRetries = 3

// WithRetries runs op once plus up to maxRetries more times while retryable
// returns true for the error. Non-retryable errors are returned immediately.
func WithRetries(op Operation, maxRetries int, retryable RetryableFunc) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt == maxRetries || !retryable(err) {
			return err
		}
		time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond)
	}
	return err
}

// InsertOne inserts doc under id, retrying network and timeout failures up to
// DefaultMaxRetries times.
// A retried insert that hits a duplicate key after an unacknowledged earlier
// attempt succeeds when the document with that id is already stored.
func InsertOne(ctx context.Context, coll *mongo.Collection, id interface{}, doc interface{}) error {
	insert := func() error {
		_, err := coll.InsertOne(ctx, doc)
		return err
	}
	stored := func() (bool, error) {
		n, err := coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		return n > 0, err
	}
	return insertOnce(insert, stored, DefaultMaxRetries, IsTransientError)
}

func insertOnce(insert Operation, stored func() (bool, error), maxRetries int, retryable RetryableFunc) error {
	attempts := 0
	return WithRetries(func() error {
		attempts++
		err := insert()
		if err == nil || attempts == 1 || !IsMongoDuplicateKeyError(err) {
			return err
		}
		found, lookupErr := stored()
		if lookupErr != nil {
			return lookupErr
		}
		if found {
			return nil
		}
		return err
	}, maxRetries, retryable)
}

// IsTransientError matches errors the driver classifies as network failures or timeouts.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

// IsMongoDuplicateKeyError checks if an error from MongoDB is a duplicate key error (code 11000).
func IsMongoDuplicateKeyError(err error) bool {
	var e mongo.WriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == 11000 {
				return true
			}
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, writeError := range bwe.WriteErrors {
			if writeError.Code == 11000 {
				return true
			}
		}
	}
	return false
}
