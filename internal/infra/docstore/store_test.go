//go:build e2e

package docstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra/docstore"
	"equipment-reservation/internal/pkg/clock"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/commands"
	"equipment-reservation/internal/usecase/queries"
	"equipment-reservation/tests/common/builder"
	"equipment-reservation/tests/common/mongotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type DocstoreTestSuite struct {
	suite.Suite
	mongo        *mongotest.MongoHelper
	equipment    *docstore.EquipmentStore
	reservations *docstore.ReservationStore
	idempotency  *docstore.IdempotencyStore
	clock        *clock.FixedClock
	day          time.Time
}

func TestDocstoreSuite(t *testing.T) {
	suite.Run(t, new(DocstoreTestSuite))
}

func (s *DocstoreTestSuite) SetupSuite() {
	s.mongo = mongotest.NewMongoHelper(s.T())
	db, cfg := s.mongo.Database, s.mongo.Config
	s.equipment = docstore.NewEquipmentStore(db, cfg)
	s.reservations = docstore.NewReservationStore(db, cfg)
	s.idempotency = docstore.NewIdempotencyStore(db, cfg)

	s.clock = clock.NewFixedClock(time.Now().UTC())
	s.day = s.clock.Now().Truncate(24 * time.Hour).Add(48 * time.Hour)
}

func (s *DocstoreTestSuite) SetupTest() {
	s.mongo.CleanDatabase(s.T())
}

func (s *DocstoreTestSuite) at(hour int) time.Time {
	return s.day.Add(time.Duration(hour) * time.Hour)
}

func (s *DocstoreTestSuite) seedEquipment(stock int) *equipment.Equipment {
	eq := builder.NewEquipmentBuilder().WithStock(stock).BuildDomain()
	s.Require().NoError(s.equipment.Create(context.Background(), eq))
	return eq
}

func (s *DocstoreTestSuite) seedReservation(b *builder.ReservationBuilder) *reservation.Reservation {
	res, err := b.BuildDomain()
	s.Require().NoError(err)
	s.Require().NoError(s.reservations.Create(context.Background(), res))
	return res
}

func (s *DocstoreTestSuite) lockVersion(id uuid.UUID) int64 {
	var doc struct {
		LockVersion int64 `bson:"lock_version"`
	}
	err := s.mongo.Database.Collection("equipment").FindOne(context.Background(), bson.M{"_id": id.String()}).Decode(&doc)
	s.Require().NoError(err)
	return doc.LockVersion
}

func (s *DocstoreTestSuite) TestCandidatesFetchedByEquipmentOnly() {
	eq := s.seedEquipment(3)
	other := s.seedEquipment(3)
	window := reservation.ReconstructTimeSlot(s.at(10), s.at(12))

	overlapsStart := s.seedReservation(builder.NewReservationBuilder().ForEquipment(eq.ID()).
		Window(s.at(9), s.at(11)).WithStatus(reservation.StatusApproved))
	overlapsEnd := s.seedReservation(builder.NewReservationBuilder().ForEquipment(eq.ID()).
		Window(s.at(11), s.at(13)).WithStatus(reservation.StatusPending))
	s.seedReservation(builder.NewReservationBuilder().ForEquipment(eq.ID()).
		Window(s.at(10), s.at(12)).WithQuantity(3).WithStatus(reservation.StatusCancelled))
	s.seedReservation(builder.NewReservationBuilder().ForEquipment(eq.ID()).
		Window(s.at(10), s.at(12)).WithQuantity(3).WithStatus(reservation.StatusRejected))
	s.seedReservation(builder.NewReservationBuilder().ForEquipment(eq.ID()).
		Window(s.at(12), s.at(14)).WithQuantity(3).WithStatus(reservation.StatusApproved))
	s.seedReservation(builder.NewReservationBuilder().ForEquipment(eq.ID()).
		Window(s.at(34), s.at(36)).WithQuantity(3).WithStatus(reservation.StatusApproved))
	s.seedReservation(builder.NewReservationBuilder().ForEquipment(other.ID()).
		Window(s.at(10), s.at(12)).WithQuantity(3).WithStatus(reservation.StatusApproved))
	s.seedReservation(builder.NewReservationBuilder().AdHoc("Borrowed ventilator").
		Window(s.at(10), s.at(12)).WithQuantity(3).WithStatus(reservation.StatusApproved))

	s.Run("success: store returns every reservation of the item", func() {
		bookings, err := s.reservations.BookingsForEquipment(context.Background(), eq.ID())
		s.Require().NoError(err)
		s.Len(bookings, 6)

		s.Equal(2, availability.ReservedQuantity(bookings, eq.ID(), window, nil))

		exclude := overlapsStart.ID()
		s.Equal(1, availability.ReservedQuantity(bookings, eq.ID(), window, &exclude))
	})

	s.Run("success: read side list is unfiltered as well", func() {
		views, err := s.reservations.ListForEquipment(context.Background(), eq.ID(), window)
		s.Require().NoError(err)
		s.Len(views, 6)
		for _, v := range views {
			s.Require().NotNil(v.EquipmentID)
			s.Equal(eq.ID(), *v.EquipmentID)
		}
	})

	s.Run("success: availability queries filter in the engine", func() {
		q := queries.NewAvailabilityQueries(s.equipment, s.reservations)

		view, err := q.CheckAvailability(context.Background(), queries.AvailabilityInput{
			EquipmentID: eq.ID(),
			Start:       window.Start(),
			End:         window.End(),
			Quantity:    1,
		})
		s.Require().NoError(err)
		s.True(view.Available)
		s.Equal(2, view.Reserved)
		remaining, ok := view.Remaining.Count()
		s.True(ok)
		s.Equal(1, remaining)

		view, err = q.CheckAvailability(context.Background(), queries.AvailabilityInput{
			EquipmentID: eq.ID(),
			Start:       window.Start(),
			End:         window.End(),
			Quantity:    2,
		})
		s.Require().NoError(err)
		s.False(view.Available)

		overlapping, err := q.FindOverlapping(context.Background(), eq.ID(), window.Start(), window.End())
		s.Require().NoError(err)
		s.Require().Len(overlapping, 2)
		s.Equal(overlapsStart.ID(), overlapping[0].ID)
		s.Equal(overlapsEnd.ID(), overlapping[1].ID)
	})
}

func (s *DocstoreTestSuite) TestLockByIDBumpsLockVersion() {
	eq := s.seedEquipment(1)
	s.Equal(int64(0), s.lockVersion(eq.ID()))

	locked, err := s.equipment.LockByID(context.Background(), eq.ID())
	s.Require().NoError(err)
	s.Equal(eq.ID(), locked.ID())
	_, err = s.equipment.LockByID(context.Background(), eq.ID())
	s.Require().NoError(err)

	s.Equal(int64(2), s.lockVersion(eq.ID()))
}

func (s *DocstoreTestSuite) TestConcurrentWritersForLastUnit() {
	eq := s.seedEquipment(1)
	// a cancelled booking on the same slot must not block either writer
	s.seedReservation(builder.NewReservationBuilder().ForEquipment(eq.ID()).
		Window(s.at(9), s.at(11)).WithStatus(reservation.StatusCancelled))

	uow := docstore.NewMongoUoW(s.mongo.Client, s.mongo.Database, s.mongo.Config, nil)
	cmds := commands.NewReservationCommands(uow, s.clock)

	const writers = 2
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]error, writers)
	)
	for i := range writers {
		req := builder.NewReservationBuilder().ForEquipment(eq.ID()).Window(s.at(9), s.at(11)).BuildCreateDTO()
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, results[i] = cmds.Create(context.Background(), req, nil)
		}()
	}
	close(start)
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.Is(err, commands.ErrCapacityExceeded):
			rejected++
		default:
			s.Failf("unexpected error", "%+v", err)
		}
	}
	s.Equal(1, succeeded)
	s.Equal(1, rejected)

	active := s.mongo.CountDocuments(s.T(), "reservations", bson.M{
		"equipment_id": eq.ID().String(),
		"status":       bson.M{"$in": bson.A{"pending", "approved"}},
	})
	s.Equal(int64(1), active)
	s.Equal(int64(1), s.mongo.CountDocuments(s.T(), "notification_jobs", bson.M{}))
}

func (s *DocstoreTestSuite) TestIdempotentCreateReplays() {
	eq := s.seedEquipment(2)
	uow := docstore.NewMongoUoW(s.mongo.Client, s.mongo.Database, s.mongo.Config, nil)
	cmds := commands.NewReservationCommands(uow, s.clock)

	req := builder.NewReservationBuilder().ForEquipment(eq.ID()).Window(s.at(9), s.at(11)).BuildCreateDTO()
	key := uuid.New()

	first, err := cmds.Create(context.Background(), req, &key)
	s.Require().NoError(err)
	s.False(first.IsReplayed)

	second, err := cmds.Create(context.Background(), req, &key)
	s.Require().NoError(err)
	s.True(second.IsReplayed)
	s.Equal(first.ReservationID, second.ReservationID)

	req.Quantity = 2
	_, err = cmds.Create(context.Background(), req, &key)
	s.True(errs.Is(err, commands.ErrIdempotencyKeyReused))

	s.Equal(int64(1), s.mongo.CountDocuments(s.T(), "reservations", bson.M{}))
}

func (s *DocstoreTestSuite) TestTryClaim() {
	ctx := context.Background()
	now := s.clock.Now()
	const endpoint = "POST /api/reservations"

	s.Run("success: first claim wins and a live key is not reclaimed", func() {
		key := uuid.New()

		claimed, err := s.idempotency.TryClaim(ctx, key, endpoint, "hash-a", now, now.Add(time.Hour))
		s.Require().NoError(err)
		s.True(claimed)

		claimed, err = s.idempotency.TryClaim(ctx, key, endpoint, "hash-b", now, now.Add(time.Hour))
		s.Require().NoError(err)
		s.False(claimed)

		record, err := s.idempotency.Get(ctx, key)
		s.Require().NoError(err)
		s.Equal("hash-a", record.RequestHash)
		s.Nil(record.ResultReservationID)
	})

	s.Run("success: complete records the reservation", func() {
		key := uuid.New()
		reservationID := uuid.New()

		_, err := s.idempotency.TryClaim(ctx, key, endpoint, "hash-a", now, now.Add(time.Hour))
		s.Require().NoError(err)
		s.Require().NoError(s.idempotency.Complete(ctx, key, reservationID))

		record, err := s.idempotency.Get(ctx, key)
		s.Require().NoError(err)
		s.Require().NotNil(record.ResultReservationID)
		s.Equal(reservationID, *record.ResultReservationID)
	})

	s.Run("success: an expired key is claimed again from scratch", func() {
		key := uuid.New()
		earlier := now.Add(-48 * time.Hour)

		_, err := s.idempotency.TryClaim(ctx, key, endpoint, "old-hash", earlier, earlier.Add(24*time.Hour))
		s.Require().NoError(err)
		s.Require().NoError(s.idempotency.Complete(ctx, key, uuid.New()))

		claimed, err := s.idempotency.TryClaim(ctx, key, endpoint, "new-hash", now, now.Add(24*time.Hour))
		s.Require().NoError(err)
		s.True(claimed)

		record, err := s.idempotency.Get(ctx, key)
		s.Require().NoError(err)
		s.Equal("new-hash", record.RequestHash)
		s.Nil(record.ResultReservationID)
		s.True(record.ExpiresAt.After(now))
	})
}
