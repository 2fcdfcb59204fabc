package validators

import "go.mongodb.org/mongo-driver/bson"

var WorkspaceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"kind",
			"capacity",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"kind": bson.M{
				"bsonType": "string",
				"enum": []string{
					"DESK",
					"MEETING_ROOM",
				},
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
