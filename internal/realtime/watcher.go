package realtime

import (
	"context"
	"log"

	"github.com/campuslink/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Watcher tails MongoDB change streams and republishes inserts and updates
// to hub topics:
//
//	user:<id>:messages       direct messages sent to or by the user
//	user:<id>:notifications  the user's notification inbox
//	group:<id>:messages      a group room
type Watcher struct {
	db  *mongo.Database
	hub *Hub
}

// NewWatcher creates a Watcher publishing into hub
func NewWatcher(db *mongo.Database, hub *Hub) *Watcher {
	return &Watcher{db: db, hub: hub}
}

// Start opens one change stream per watched collection. Each stream runs on
// its own goroutine until ctx is cancelled; a stream error ends that stream's
// feed (subscribers just stop receiving pushes, fetches are unaffected).
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx, "direct_messages", w.publishDirectMessage)
	go w.watch(ctx, "group_messages", w.publishGroupMessage)
	go w.watch(ctx, "notifications", w.publishNotification)
}

func (w *Watcher) watch(ctx context.Context, collection string, publish func(bson.Raw)) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace"}}}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := w.db.Collection(collection).Watch(ctx, pipeline, opts)
	if err != nil {
		log.Printf("change stream %s: %v", collection, err)
		return
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var change struct {
			FullDocument bson.Raw `bson:"fullDocument"`
		}
		if err := stream.Decode(&change); err != nil {
			log.Printf("change stream %s decode: %v", collection, err)
			continue
		}
		if change.FullDocument != nil {
			publish(change.FullDocument)
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.Printf("change stream %s ended: %v", collection, err)
	}
}

func (w *Watcher) publishDirectMessage(doc bson.Raw) {
	var msg models.DirectMessage
	if err := bson.Unmarshal(doc, &msg); err != nil {
		log.Printf("direct message decode: %v", err)
		return
	}
	for _, userID := range []string{msg.SenderID, msg.ReceiverID} {
		w.hub.Publish(Event{
			Topic:      "user:" + userID + ":messages",
			Collection: "direct_messages",
			Payload:    msg,
		})
	}
}

func (w *Watcher) publishGroupMessage(doc bson.Raw) {
	var msg models.GroupMessage
	if err := bson.Unmarshal(doc, &msg); err != nil {
		log.Printf("group message decode: %v", err)
		return
	}
	w.hub.Publish(Event{
		Topic:      "group:" + msg.GroupID + ":messages",
		Collection: "group_messages",
		Payload:    msg,
	})
}

func (w *Watcher) publishNotification(doc bson.Raw) {
	var notification models.Notification
	if err := bson.Unmarshal(doc, &notification); err != nil {
		log.Printf("notification decode: %v", err)
		return
	}
	w.hub.Publish(Event{
		Topic:      "user:" + notification.UserID + ":notifications",
		Collection: "notifications",
		Payload:    notification,
	})
}
