package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/roomcarver/internal/telemetry"
)

const (
	// Default map dimensions
	DefaultWidth  = 80
	DefaultHeight = 50

	// Default room placement parameters
	DefaultMaxRooms    = 30
	DefaultMinRoomSize = 6
	DefaultMaxRoomSize = 10
)

// ErrInvalidParams is returned when the room parameters cannot be sampled on the grid.
var ErrInvalidParams = errors.New("invalid generation parameters")

// Generator places rooms on a grid by rejection sampling and links them with corridors.
type Generator struct {
	rng       *rand.Rand
	corridors bool
	tracer    trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithCorridors controls whether each accepted room is linked to the previous one.
// With corridors disabled the generator places rooms only.
func WithCorridors(enabled bool) Option {
	return func(g *Generator) {
		g.corridors = enabled
	}
}

// WithTracer sets the tracer used for generation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *Generator) {
		g.tracer = tracer
	}
}

// NewGenerator creates a generator drawing from rng.
// A nil rng is replaced by one seeded from the current time.
func NewGenerator(rng *rand.Rand, opts ...Option) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Generator{
		rng:       rng,
		corridors: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidateParams checks that rooms of the given sizes can be sampled on a width x height grid.
func ValidateParams(width, height, maxRooms, minRoomSize, maxRoomSize int) error {
	switch {
	case maxRooms < 0:
		return fmt.Errorf("%w: max rooms %d is negative", ErrInvalidParams, maxRooms)
	case minRoomSize < 1:
		return fmt.Errorf("%w: min room size %d must be at least 1", ErrInvalidParams, minRoomSize)
	case minRoomSize >= maxRoomSize:
		return fmt.Errorf("%w: min room size %d must be below max room size %d",
			ErrInvalidParams, minRoomSize, maxRoomSize)
	case width-maxRoomSize-1 <= 1:
		return fmt.Errorf("%w: max room size %d does not fit grid width %d",
			ErrInvalidParams, maxRoomSize, width)
	case height-maxRoomSize-1 <= 1:
		return fmt.Errorf("%w: max room size %d does not fit grid height %d",
			ErrInvalidParams, maxRoomSize, height)
	}
	return nil
}

// GenerateRoomsAndCorridors resets the grid to walls and makes exactly maxRooms placement
// attempts. Room sides are drawn from [minRoomSize, maxRoomSize). A candidate that overlaps
// an accepted room is dropped without resampling. The accepted rooms are returned in
// placement order.
//
// Parameters are validated before the grid is touched; on error the grid is unchanged.
func (g *Generator) GenerateRoomsAndCorridors(ctx context.Context, grid *Grid, maxRooms, minRoomSize, maxRoomSize int) ([]Rect, error) {
	tracer := g.tracer
	if tracer == nil {
		tracer = telemetry.Tracer("world")
	}
	_, span := tracer.Start(ctx, "grid.generate")
	defer span.End()

	startTime := time.Now()
	width, height := grid.Dimensions()

	span.SetAttributes(
		attribute.Int("grid.width", width),
		attribute.Int("grid.height", height),
		attribute.Int("rooms.max", maxRooms),
		attribute.Int("rooms.min_size", minRoomSize),
		attribute.Int("rooms.max_size", maxRoomSize),
		attribute.Bool("rooms.corridors", g.corridors),
	)

	if err := ValidateParams(width, height, maxRooms, minRoomSize, maxRoomSize); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	grid.Reset()
	rooms := make([]Rect, 0, roomCapacity(width, height, maxRooms, minRoomSize))

	for i := 0; i < maxRooms; i++ {
		w := g.between(minRoomSize, maxRoomSize)
		h := g.between(minRoomSize, maxRoomSize)
		// The origin is drawn from [1, size-side-1) and shifted back by one.
		x := g.between(1, width-w-1) - 1
		y := g.between(1, height-h-1) - 1

		candidate := NewRect(x, y, w, h)
		accepted := true
		for _, other := range rooms {
			if candidate.OverlapsWith(other) {
				accepted = false
				break
			}
		}

		span.AddEvent("room.candidate", trace.WithAttributes(
			attribute.Int("room.x", x),
			attribute.Int("room.y", y),
			attribute.Int("room.width", w),
			attribute.Int("room.height", h),
			attribute.Bool("room.accepted", accepted),
		))

		if !accepted {
			continue
		}

		grid.CarveRoom(candidate)
		if g.corridors && len(rooms) > 0 {
			g.connect(grid, rooms[len(rooms)-1], candidate)
		}
		rooms = append(rooms, candidate)
	}

	grid.checkSize()

	span.SetAttributes(
		attribute.Int("rooms.attempted", maxRooms),
		attribute.Int("rooms.accepted", len(rooms)),
		attribute.Int("rooms.rejected", maxRooms-len(rooms)),
		attribute.Int64("grid.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return rooms, nil
}

// roomCapacity bounds how many rooms can be accepted: no more than the attempts made,
// and no more than rooms of the minimum size could fill the grid.
func roomCapacity(width, height, maxRooms, minRoomSize int) int {
	return min(maxRooms, (width*height)/(minRoomSize*minRoomSize))
}

// between returns a uniform value in [lo, hi).
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo)
}

// connect carves an L-shaped corridor between the centres of two rooms.
func (g *Generator) connect(grid *Grid, from, to Rect) {
	x1, y1 := from.Center()
	x2, y2 := to.Center()

	// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
	if g.rng.Intn(2) == 0 {
		grid.CarveHorizontalCorridor(x1, x2, y1)
		grid.CarveVerticalCorridor(y1, y2, x2)
	} else {
		grid.CarveVerticalCorridor(y1, y2, x1)
		grid.CarveHorizontalCorridor(x1, x2, y2)
	}
}
