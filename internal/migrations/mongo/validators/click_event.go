package validators

import "go.mongodb.org/mongo-driver/bson"

var ClickEventValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"subject_id",
			"occurred_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"subject_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"occurred_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
