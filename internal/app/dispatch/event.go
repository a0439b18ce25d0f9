package dispatch

import (
	"encoding/json"
	"fmt"
)

// StorageEvent is an object-creation notification in either of the two
// shapes the dispatcher accepts: a wrapped event-bus envelope or a direct
// storage-provider notification.
type StorageEvent struct {
	Detail  *EventDetail  `json:"detail,omitempty"`
	Records []EventRecord `json:"Records,omitempty"`
}

type EventDetail struct {
	Bucket NamedEntity `json:"bucket"`
	Object KeyedEntity `json:"object"`
}

type EventRecord struct {
	S3 struct {
		Bucket NamedEntity `json:"bucket"`
		Object KeyedEntity `json:"object"`
	} `json:"s3"`
}

type NamedEntity struct {
	Name string `json:"name"`
}

type KeyedEntity struct {
	Key string `json:"key"`
}

// ObjectRef is the bucket/key pair extracted from an event.
type ObjectRef struct {
	Bucket string
	Key    string
}

// ParseEvent extracts the object reference from either event shape.
func ParseEvent(raw []byte) (ObjectRef, error) {
	var event StorageEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return ObjectRef{}, fmt.Errorf("malformed event payload: %w", err)
	}
	return event.ObjectRef()
}

// ObjectRef resolves the bucket and key, preferring the envelope shape.
func (e StorageEvent) ObjectRef() (ObjectRef, error) {
	if e.Detail != nil {
		return ObjectRef{Bucket: e.Detail.Bucket.Name, Key: e.Detail.Object.Key}, nil
	}
	if len(e.Records) > 0 {
		r := e.Records[0].S3
		return ObjectRef{Bucket: r.Bucket.Name, Key: r.Object.Key}, nil
	}
	return ObjectRef{}, fmt.Errorf("event carries neither detail nor records")
}
