package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const SearchEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "search_event",
	"fields": [
		{"name": "user_id", "type": ["null", "long"], "default": null},
		{"name": "query", "type": "string"},
		{"name": "results", "type": "long"},
		{"name": "at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type SearchEventV1 struct {
	UserID  *int64    `avro:"user_id"`
	Query   string    `avro:"query"`
	Results int64     `avro:"results"`
	At      time.Time `avro:"at"`
}

func SearchEventV1Avro() avro.Schema {
	return avro.MustParse(SearchEventSchemaTextV1)
}
