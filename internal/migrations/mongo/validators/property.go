package validators

import "go.mongodb.org/mongo-driver/bson"

var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"host_id",
			"display_name",
			"city",
			"nightly_rate",
			"cleaning_fee",
			"max_guests",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"host_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"display_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
			},

			"city": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 80,
			},

			"nightly_rate": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"cleaning_fee": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"max_guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  50,
			},

			"preview_images": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
