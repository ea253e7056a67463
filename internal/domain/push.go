package domain

import "time"

// PushSubscription is a browser push registration. Endpoint is the unique
// key: re-registering an endpoint transfers it to the most recent subscriber.
type PushSubscription struct {
	ID        int64
	UserID    string
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
}

// PushPayload is the notification body handed to the delivery agent.
type PushPayload struct {
	Title string          `json:"title"`
	Body  string          `json:"body"`
	Data  PushPayloadData `json:"data"`
}

// PushPayloadData carries the click-through target.
type PushPayloadData struct {
	URL string `json:"url"`
}
