// Package mongostore persists history records to MongoDB. Persistence is
// best-effort telemetry for the training pipeline: nothing here is allowed
// to fail a forecast run.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/observability"
)

// Recorder writes history records to a MongoDB collection. Each attempt
// establishes its own bounded connection, so there is no shared connection
// state to protect. A Recorder built without a connection string is
// disabled and silently drops records.
type Recorder struct {
	uri        string
	database   string
	collection string
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewRecorder creates a Recorder. An empty uri yields a disabled recorder;
// the pipeline keeps calling it, writes just become no-ops.
func NewRecorder(uri, database, collection string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Recorder {
	if uri == "" {
		logger.Warn("store connection string not configured, history recording disabled")
	}
	return &Recorder{
		uri:        uri,
		database:   database,
		collection: collection,
		timeout:    timeout,
		logger:     logger,
		metrics:    metrics,
	}
}

// Enabled reports whether a connection string was configured.
func (r *Recorder) Enabled() bool { return r.uri != "" }

// Record persists one history record. It never returns an error: connect,
// auth, and insert failures are logged and counted, and the pipeline
// proceeds as if the write succeeded.
func (r *Recorder) Record(ctx context.Context, rec domain.HistoryRecord) {
	if !r.Enabled() {
		return
	}

	began := time.Now()
	err := r.insert(ctx, func(ctx context.Context, coll *mongo.Collection) error {
		_, err := coll.InsertOne(ctx, rec)
		return err
	})
	r.metrics.RecordDuration.Observe(time.Since(began).Seconds())

	if err != nil {
		r.logger.Warn("history record failed",
			"spot_id", rec.SpotID,
			"error", err,
		)
		r.metrics.RecordFailures.Inc()
	}
}

// InsertRawHours bulk-inserts historical records for the collector. Unlike
// Record it surfaces errors, because the collector reports per-spot results.
func (r *Recorder) InsertRawHours(ctx context.Context, spot domain.Location, records []domain.FeatureRecord) error {
	if !r.Enabled() {
		return fmt.Errorf("store connection string not configured")
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, len(records))
	for i, rec := range records {
		docs[i] = rawHourDocument{
			SpotID:    spot.ID,
			SpotName:  spot.Name,
			Timestamp: rec.CapturedAt,
			Features:  rec.Values,
		}
	}

	return r.insert(ctx, func(ctx context.Context, coll *mongo.Collection) error {
		_, err := coll.InsertMany(ctx, docs)
		return err
	})
}

// insert connects, runs op against the configured collection, and
// disconnects, all within the recorder's timeout.
func (r *Recorder) insert(ctx context.Context, op func(context.Context, *mongo.Collection) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(r.uri).SetServerSelectionTimeout(r.timeout))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
			r.logger.Debug("store disconnect failed", "error", err)
		}
	}()

	coll := client.Database(r.database).Collection(r.collection)
	if err := op(ctx, coll); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// rawHourDocument matches the historical_raw_data schema the trainer reads.
type rawHourDocument struct {
	SpotID    string             `bson:"spot_id"`
	SpotName  string             `bson:"name"`
	Timestamp time.Time          `bson:"timestamp"`
	Features  map[string]float64 `bson:"features"`
}
