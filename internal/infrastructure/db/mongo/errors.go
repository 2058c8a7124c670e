package mongo

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

// conflictFromWriteError maps a unique-index violation on the users
// collection to a ConflictError naming the offending field. Other errors
// are returned unchanged.
func conflictFromWriteError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	// E11000 messages name the index, e.g. "index: email_1 dup key: ..."
	if strings.Contains(err.Error(), "email_1") {
		return domain.NewConflictError(domain.FieldEmail)
	}
	return domain.NewConflictError(domain.FieldUsername)
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
