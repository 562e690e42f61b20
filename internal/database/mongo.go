package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/go-posts/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names used by the mongo store.
const (
	PostsCollection    = "posts"
	ProfilesCollection = "profiles"
)

// Mongo wraps the mongo client and the configured database.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// NewMongo connects to MongoDB, pings the primary and makes sure the
// indexes the repositories rely on exist.
func NewMongo(cfg *config.Config, logger *zerolog.Logger) (*Mongo, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.Database.MongoURI).
		SetAppName(config.ServiceName)

	if cfg.Database.MaxOpenConns > 0 {
		clientOptions.SetMaxPoolSize(uint64(cfg.Database.MaxOpenConns))
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		clientOptions.SetMaxConnIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)
	}

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	store := &Mongo{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}

	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info().Str("driver", config.DriverMongo).Msg("connected to the database")

	return store, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.DB.Collection(PostsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("creating posts indexes: %w", err)
	}

	_, err = m.DB.Collection(ProfilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating profiles indexes: %w", err)
	}

	return nil
}

// Ping checks connectivity; used by the health endpoint.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	m.log.Info().Msg("closing mongo connection")
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}
