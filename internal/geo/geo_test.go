package geo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_FromRequest(t *testing.T) {
	ctx := context.Background()

	c := Acquire(ctx, FromRequest("38.716667", "-9.139", ""), time.Second)
	require.NotNil(t, c)
	assert.Equal(t, 38.716667, c.Latitude)
	assert.Equal(t, "38.716667, -9.139000", c.String())

	assert.Nil(t, Acquire(ctx, FromRequest("38.7", "-9.1", "denied"), time.Second))
	assert.Nil(t, Acquire(ctx, FromRequest("", "", ""), time.Second))
	assert.Nil(t, Acquire(ctx, FromRequest("abc", "-9.1", ""), time.Second))
	assert.Nil(t, Acquire(ctx, FromRequest("120", "-9.1", ""), time.Second))
	assert.Nil(t, Acquire(ctx, nil, time.Second))
}

func TestAcquire_TimeoutDegradesToNil(t *testing.T) {
	slow := LocatorFunc(func(ctx context.Context) (Coordinates, error) {
		select {
		case <-time.After(time.Second):
			return Coordinates{Latitude: 1, Longitude: 1}, nil
		case <-ctx.Done():
			return Coordinates{}, ctx.Err()
		}
	})

	start := time.Now()
	assert.Nil(t, Acquire(context.Background(), slow, 20*time.Millisecond))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestAcquire_IgnoresLocatorThatIgnoresContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	stuck := LocatorFunc(func(ctx context.Context) (Coordinates, error) {
		<-block
		return Coordinates{}, nil
	})
	assert.Nil(t, Acquire(context.Background(), stuck, 10*time.Millisecond))
}

func TestClampTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, ClampTimeout(0))
	assert.Equal(t, MinTimeout, ClampTimeout(time.Second))
	assert.Equal(t, MaxTimeout, ClampTimeout(time.Minute))
	assert.Equal(t, 7*time.Second, ClampTimeout(7*time.Second))
}

func TestAcquire_PanickingLocator(t *testing.T) {
	broken := LocatorFunc(func(ctx context.Context) (Coordinates, error) {
		panic("gps driver crashed")
	})

	assert.Nil(t, Acquire(context.Background(), broken, 20*time.Millisecond))
}
