package validators

import "go.mongodb.org/mongo-driver/bson"

// One validator per resource collection. The shared shape (venue_id,
// is_active, timestamps) is repeated rather than factored out so each
// schema reads as the single source of truth for its collection.

var SportsFacilityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"venue_id",
			"name",
			"sport_type",
			"capacity",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"venue_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"sport_type": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  1000,
			},

			"price_per_hour_cents": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"duration_minutes": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  480,
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
		},
	},
}

var HotelRoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"venue_id",
			"room_number",
			"room_type",
			"capacity",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"venue_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"room_number": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 20,
			},

			"room_type": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  20,
			},

			"price_per_night_cents": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"bed_count": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  10,
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
		},
	},
}

var RestaurantTableValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"venue_id",
			"table_number",
			"location",
			"min_capacity",
			"max_capacity",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"venue_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"table_number": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 20,
			},

			"location": bson.M{
				"bsonType": "string",
				"enum": []string{
					"indoor",
					"outdoor",
					"bar",
					"private_room",
				},
			},

			"min_capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  100,
			},

			"max_capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  100,
			},

			"deposit_cents": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"minimum_spend_cents": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
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
		},
	},
}
