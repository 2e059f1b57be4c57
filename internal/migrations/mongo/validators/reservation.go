package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"venue_id",
			"resource_kind",
			"resource_id",
			"start_time",
			"end_time",
			"number_of_people",
			"status",
			"payment_status",
			"customer_details",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"venue_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"resource_kind": bson.M{
				"bsonType": "string",
				"enum": []string{
					"sports_facility",
					"hotel_room",
					"restaurant_table",
				},
			},

			"resource_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"number_of_people": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
					"completed",
				},
			},

			"payment_status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"paid",
					"partially_paid",
					"refunded",
				},
			},

			"total_price_cents": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"deposit_paid_cents": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"customer_details": bson.M{
				"bsonType": "object",
				"required": []string{"name", "email", "phone"},
				"properties": bson.M{
					"name": bson.M{
						"bsonType":  "string",
						"minLength": 2,
						"maxLength": 100,
					},
					"email": bson.M{
						"bsonType": "string",
					},
					"phone": bson.M{
						"bsonType": "string",
						"pattern":  "^\\+[1-9]\\d{1,14}$",
					},
				},
			},

			"confirmation_code": bson.M{
				"bsonType":  "string",
				"minLength": 8,
				"maxLength": 8,
			},

			"cancellation_reason": bson.M{
				"bsonType": "string",
			},

			"cancelled_at": bson.M{
				"bsonType": "date",
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

// AuditEventValidator keeps the event projection queryable: every record
// must say what happened, where, and when.
var AuditEventValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"event_type",
			"venue_id",
			"resource_kind",
			"resource_id",
			"occurred_at",
			"recorded_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"event_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"reservation.created",
					"reservation.conflict_rejected",
					"reservation.confirmed",
					"reservation.cancelled",
					"reservation.completed",
					"reservation.deleted",
				},
			},

			"reservation_id": bson.M{
				"bsonType": "string",
			},

			"venue_id": bson.M{
				"bsonType": "string",
			},

			"resource_kind": bson.M{
				"bsonType": "string",
			},

			"resource_id": bson.M{
				"bsonType": "string",
			},

			"occurred_at": bson.M{
				"bsonType": "date",
			},

			"recorded_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

// ReservationLockValidator guards the advisory lock collection: every lock
// must carry the TTL anchor or it would never expire.
var ReservationLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"expires_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
