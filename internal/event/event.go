// Package event defines message payloads exchanged over the message broker
// and a RabbitMQ publisher for them.
package event

// MovieRegistered is published when a movie registration commits. It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type MovieRegistered struct {
	MovieID      string `json:"movie_id"`
	AdminID      string `json:"admin_id"`
	Title        string `json:"title"`
	ReleaseDate  string `json:"release_date"`
	RegisteredAt string `json:"registered_at"`
}

// MovieRegisteredQueue is the durable queue MovieRegistered events land on.
const MovieRegisteredQueue = "movie.registered"
