package pkg

import (
	"context"
	"time"

	"github.com/clarify/clarify-go"
	"github.com/clarify/clarify-go/fields"
	"github.com/clarify/clarify-go/views"
	"go.uber.org/zap"
)

const (
	defaultSleep = 5 * time.Second
	attempts     = 5
)

// Backend stores a data frame.
type Backend interface {
	Insert(ctx context.Context, df views.DataFrame) error
}

// ClarifyBackend inserts through the Clarify API.
type ClarifyBackend struct {
	Client *clarify.Client
}

func (b ClarifyBackend) Insert(ctx context.Context, df views.DataFrame) error {
	_, err := b.Client.Insert(df).Do(ctx)
	return err
}

type Inserter struct {
	Backend  Backend
	Logger   *zap.Logger
	SignalID string

	// sleep between failed attempts, defaultSleep when zero
	Sleep time.Duration
}

func (inserter *Inserter) Single(ctx context.Context, t time.Time, val float64) (err error) {
	ts := fields.AsTimestamp(t)
	df := views.DataFrame{inserter.SignalID: {ts: val}}

	if err = inserter.insert(ctx, df); err == nil {
		inserter.Logger.Info("inserted",
			zap.String("signal", inserter.SignalID),
			zap.Float64("value", val),
			zap.Time("at", ts.Time()))
	}
	return
}

func (inserter *Inserter) Bucket(ctx context.Context, readings []Reading) (err error) {
	if len(readings) == 0 {
		inserter.Logger.Warn("no readings to insert", zap.String("signal", inserter.SignalID))
		return nil
	}

	df := DataFrame(inserter.SignalID, readings)
	if err = inserter.insert(ctx, df); err == nil {
		inserter.Logger.Info("inserted bucket",
			zap.String("signal", inserter.SignalID),
			zap.Int("points", len(df[inserter.SignalID])))
	}
	return
}

// DataFrame puts readings under signalID. For readings sharing a day the
// last one wins.
func DataFrame(signalID string, readings []Reading) views.DataFrame {
	df := views.DataFrame{signalID: {}}
	for _, r := range readings {
		df[signalID][fields.AsTimestamp(r.Time)] = r.Value
	}
	return df
}

func (inserter *Inserter) insert(ctx context.Context, df views.DataFrame) (err error) {
	sleep := inserter.Sleep
	if sleep == 0 {
		sleep = defaultSleep
	}

	for i := 1; i <= attempts; i++ {
		if err = inserter.Backend.Insert(ctx, df); err == nil {
			return
		}
		if i == attempts {
			break
		}
		inserter.Logger.Warn("insert failed",
			zap.Int("attempt", i),
			zap.Int("attempts", attempts),
			zap.Duration("retry_in", sleep),
			zap.Error(err))

		if err = wait(ctx, sleep); err != nil {
			return
		}
	}
	return err
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
