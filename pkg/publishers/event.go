package publishers

import "time"

// Event is the payload published for one exported record.
type Event struct {
	Collection  string    `json:"collection"`
	RecordID    int       `json:"record_id"`
	Record      any       `json:"record"`
	CollectedAt time.Time `json:"collected_at"`
}

// NewEvent wraps record (a domain.Post or domain.User) for collection.
func NewEvent(collection string, recordID int, record any) Event {
	return Event{
		Collection:  collection,
		RecordID:    recordID,
		Record:      record,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes returns the routing attributes attached to queue/topic messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"collection": e.Collection,
	}
}
