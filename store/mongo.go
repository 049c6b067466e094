package store

import (
	"context"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/errs"
	"campuseventhub-backend/log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/bsonx"
	"go.uber.org/zap"
)

type Mongo struct {
	cUsers         *mongo.Collection
	cEvents        *mongo.Collection
	cRegistrations *mongo.Collection
	cNotifications *mongo.Collection
}

var _ Store = (*Mongo)(nil)

func NewMongo(client *mongo.Client, database string) *Mongo {
	db := client.Database(database)

	_, err := db.Collection("users").Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bsonx.Doc{{Key: "email", Value: bsonx.Int32(1)}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		log.Logger.Fatal("unable to create index", zap.Error(err))
	}

	_, err = db.Collection("registrations").Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bsonx.Doc{{Key: "event", Value: bsonx.Int32(1)}, {Key: "user", Value: bsonx.Int32(1)}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		log.Logger.Fatal("unable to create index", zap.Error(err))
	}

	return &Mongo{
		cUsers:         db.Collection("users"),
		cEvents:        db.Collection("events"),
		cRegistrations: db.Collection("registrations"),
		cNotifications: db.Collection("notifications"),
	}
}

func (m *Mongo) CreateUser(ctx context.Context, u *entity.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}

	_, err := m.cUsers.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrAlreadyExists
		}

		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	return nil
}

func (m *Mongo) FindUserByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	u := &entity.User{}
	if err := m.cUsers.FindOne(ctx, bson.M{"_id": id}).Decode(u); err != nil {
		return nil, m.findErr(err)
	}

	return u, nil
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	if err := m.cUsers.FindOne(ctx, bson.M{"email": email}).Decode(u); err != nil {
		return nil, m.findErr(err)
	}

	return u, nil
}

func (m *Mongo) FindAdmins(ctx context.Context) ([]entity.User, error) {
	cursor, err := m.cUsers.Find(ctx, bson.M{"role": entity.RoleAdmin})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	var users []entity.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return users, nil
}

func (m *Mongo) AddRegisteredEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	return m.updateByID(ctx, m.cUsers, userID, bson.M{"$addToSet": bson.M{"registered_events": eventID}})
}

func (m *Mongo) AddFavoriteEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	return m.updateByID(ctx, m.cUsers, userID, bson.M{"$addToSet": bson.M{"favorite_events": eventID}})
}

func (m *Mongo) RemoveFavoriteEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	return m.updateByID(ctx, m.cUsers, userID, bson.M{"$pull": bson.M{"favorite_events": eventID}})
}

func (m *Mongo) CreateEvent(ctx context.Context, e *entity.Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}

	if _, err := m.cEvents.InsertOne(ctx, e); err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	return nil
}

func (m *Mongo) FindEventByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error) {
	e := &entity.Event{}
	if err := m.cEvents.FindOne(ctx, bson.M{"_id": id}).Decode(e); err != nil {
		return nil, m.findErr(err)
	}

	return e, nil
}

func (m *Mongo) ListEvents(ctx context.Context) ([]entity.Event, error) {
	return m.listEvents(ctx, bson.M{})
}

func (m *Mongo) ListEventsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]entity.Event, error) {
	return m.listEvents(ctx, bson.M{"created_by": creatorID})
}

func (m *Mongo) listEvents(ctx context.Context, filter bson.M) ([]entity.Event, error) {
	cursor, err := m.cEvents.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	var events []entity.Event
	if err := cursor.All(ctx, &events); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return events, nil
}

func (m *Mongo) UpdateEvent(ctx context.Context, id primitive.ObjectID, u EventUpdate) (*entity.Event, error) {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}

	if len(set) == 0 {
		return m.FindEventByID(ctx, id)
	}

	e := &entity.Event{}
	err := m.cEvents.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(e)
	if err != nil {
		return nil, m.findErr(err)
	}

	return e, nil
}

func (m *Mongo) ReserveSeat(ctx context.Context, eventID, userID primitive.ObjectID) error {
	res, err := m.cEvents.UpdateOne(ctx,
		bson.M{"_id": eventID, "$expr": bson.M{"$lt": bson.A{"$registered_count", "$total_seats"}}},
		bson.M{"$inc": bson.M{"registered_count": 1}, "$push": bson.M{"registered_users": userID}},
	)
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	if res.MatchedCount == 0 {
		return errs.ErrEventFull
	}

	return nil
}

func (m *Mongo) ReleaseSeat(ctx context.Context, eventID, userID primitive.ObjectID) error {
	return m.updateByID(ctx, m.cEvents, eventID,
		bson.M{"$inc": bson.M{"registered_count": -1}, "$pull": bson.M{"registered_users": userID}})
}

func (m *Mongo) CreateRegistration(ctx context.Context, r *entity.Registration) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}

	_, err := m.cRegistrations.InsertOne(ctx, r)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrDuplicateRegistration
		}

		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	return nil
}

func (m *Mongo) FindRegistrationByID(ctx context.Context, id primitive.ObjectID) (*entity.Registration, error) {
	r := &entity.Registration{}
	if err := m.cRegistrations.FindOne(ctx, bson.M{"_id": id}).Decode(r); err != nil {
		return nil, m.findErr(err)
	}

	return r, nil
}

func (m *Mongo) FindRegistrationByEventAndUser(ctx context.Context, eventID, userID primitive.ObjectID) (*entity.Registration, error) {
	r := &entity.Registration{}
	if err := m.cRegistrations.FindOne(ctx, bson.M{"event": eventID, "user": userID}).Decode(r); err != nil {
		return nil, m.findErr(err)
	}

	return r, nil
}

func (m *Mongo) ListRegistrationsByUser(ctx context.Context, userID primitive.ObjectID) ([]entity.Registration, error) {
	return m.listRegistrations(ctx, bson.M{"user": userID})
}

func (m *Mongo) ListRegistrationsByEvents(ctx context.Context, eventIDs []primitive.ObjectID) ([]entity.Registration, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	return m.listRegistrations(ctx, bson.M{"event": bson.M{"$in": eventIDs}})
}

func (m *Mongo) listRegistrations(ctx context.Context, filter bson.M) ([]entity.Registration, error) {
	cursor, err := m.cRegistrations.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	var regs []entity.Registration
	if err := cursor.All(ctx, &regs); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return regs, nil
}

func (m *Mongo) UpdateRegistrationStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return m.updateByID(ctx, m.cRegistrations, id, bson.M{"$set": bson.M{"status": status}})
}

func (m *Mongo) DeleteRegistration(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.cRegistrations.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (m *Mongo) CreateNotification(ctx context.Context, n *entity.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}

	if _, err := m.cNotifications.InsertOne(ctx, n); err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	return nil
}

func (m *Mongo) ListNotificationsByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]entity.Notification, error) {
	cursor, err := m.cNotifications.Find(ctx, bson.M{"recipient": recipientID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}
	defer cursor.Close(context.Background())

	var ns []entity.Notification
	if err := cursor.All(ctx, &ns); err != nil {
		log.Logger.Error("cursor error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return ns, nil
}

func (m *Mongo) MarkNotificationRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	res, err := m.cNotifications.UpdateOne(ctx,
		bson.M{"_id": id, "recipient": recipientID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (m *Mongo) updateByID(ctx context.Context, c *mongo.Collection, id primitive.ObjectID, update bson.M) error {
	res, err := c.UpdateByID(ctx, id, update)
	if err != nil {
		log.Logger.Error("database error", zap.Error(err))
		return errs.ErrDatabase
	}

	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (m *Mongo) findErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return errs.ErrNotFound
	}

	log.Logger.Error("database error", zap.Error(err))
	return errs.ErrDatabase
}
