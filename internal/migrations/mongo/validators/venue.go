package validators

import "go.mongodb.org/mongo-driver/bson"

var VenueValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner_id",
			"name",
			"type",
			"address",
			"city",
			"phone",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"owner_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"sports",
					"hotel",
					"restaurant",
				},
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"city": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"country": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 2,
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  "^\\+[1-9]\\d{1,14}$",
			},

			"email": bson.M{
				"bsonType": "string",
			},

			"time_zone": bson.M{
				"bsonType": "string",
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},

			"deleted_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
