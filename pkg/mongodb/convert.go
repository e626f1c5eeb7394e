// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mongodb

import (
	"encoding/hex"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// documentToMap converts an ordered document into a plain map, recursively.
func documentToMap(doc bson.D) map[string]any {
	result := make(map[string]any, len(doc))

	for _, elem := range doc {
		result[elem.Key] = convertBsonValue(elem.Value)
	}

	return result
}

// convertBsonValue converts a BSON value to its JSON-friendly Go equivalent.
func convertBsonValue(value any) any {
	switch v := value.(type) {
	case bson.D:
		return documentToMap(v)

	case bson.M:
		doc := make(map[string]any, len(v))
		for k, elem := range v {
			doc[k] = convertBsonValue(elem)
		}

		return doc

	case bson.A:
		result := make([]any, len(v))
		for i, elem := range v {
			result[i] = convertBsonValue(elem)
		}

		return result

	case primitive.DateTime:
		return v.Time().UTC()

	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0).UTC()

	case primitive.ObjectID:
		return v.Hex()

	case primitive.Decimal128:
		return v.String()

	case primitive.Binary:
		if len(v.Data) == constant.MongoUUIDByteLength {
			if u, err := uuid.FromBytes(v.Data); err == nil {
				return u.String()
			}
		}

		return hex.EncodeToString(v.Data)

	case primitive.Null, primitive.Undefined:
		return nil

	default:
		return v
	}
}

// typeTag names the runtime type of a raw BSON value.
func typeTag(value any) string {
	switch value.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return constant.BSONTypeNull
	case string:
		return constant.BSONTypeString
	case int, int32, int64, float32, float64, primitive.Decimal128:
		return constant.BSONTypeNumber
	case bool:
		return constant.BSONTypeBoolean
	case bson.D, bson.M:
		return constant.BSONTypeObject
	case bson.A:
		return constant.BSONTypeArray
	case primitive.ObjectID:
		return constant.BSONTypeObjectID
	case primitive.DateTime, time.Time:
		return constant.BSONTypeDate
	case primitive.Binary:
		return constant.BSONTypeBinary
	case primitive.Timestamp:
		return constant.BSONTypeTimestamp
	default:
		return constant.BSONTypeUnknown
	}
}
