//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"equipment-reservation/internal/domain/availability"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"
	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/clock"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/commands"
	"equipment-reservation/internal/usecase/shared"
	"equipment-reservation/tests/common/builder"
	sharedmock "equipment-reservation/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	reads         *sharedmock.MockCommandReads
	reservations  *sharedmock.MockReservationRepository
	notifications *sharedmock.MockNotificationRepository
	idempotency   *sharedmock.MockIdempotencyRepository
	clock         *clock.FixedClock
	cmds          commands.ReservationCommands
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.reservations = sharedmock.NewMockReservationRepository(s.ctrl)
	s.notifications = sharedmock.NewMockNotificationRepository(s.ctrl)
	s.idempotency = sharedmock.NewMockIdempotencyRepository(s.ctrl)
	s.clock = clock.NewFixedClock(time.Now().UTC())
	s.cmds = commands.NewReservationCommands(s.uow, s.clock)

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Reservations().Return(s.reservations).AnyTimes()
	s.tx.EXPECT().Notifications().Return(s.notifications).AnyTimes()
	s.tx.EXPECT().Idempotency().Return(s.idempotency).AnyTimes()
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func booking(equipmentID uuid.UUID, start, end time.Time, quantity int, status reservation.Status) availability.Booking {
	return availability.Booking{
		ID:          uuid.New(),
		EquipmentID: equipmentID,
		Slot:        reservation.ReconstructTimeSlot(start, end),
		Quantity:    quantity,
		Status:      status,
	}
}

func requestHash(req reqdto.CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *ReservationCommandsTestSuite) expectCapacityLookup(eq *equipment.Equipment, bookings ...availability.Booking) {
	s.reads.EXPECT().LockEquipment(gomock.Any(), eq.ID()).Return(eq, nil).Times(1)
	s.reads.EXPECT().BookingsForEquipment(gomock.Any(), eq.ID(), gomock.Any()).Return(bookings, nil).Times(1)
}

func (s *ReservationCommandsTestSuite) TestCreate() {
	eq := builder.NewEquipmentBuilder().WithStock(5).BuildDomain()
	b := builder.NewReservationBuilder().ForEquipment(eq.ID()).WithQuantity(2)
	req := b.BuildCreateDTO()

	s.Run("success: books when capacity remains", func() {
		s.expectCapacityLookup(eq, booking(eq.ID(), b.StartTime, b.EndTime, 3, reservation.StatusApproved))
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *reservation.Reservation) error {
				s.Equal(reservation.StatusPending, r.Status())
				s.Equal(2, r.Quantity().Int())
				return nil
			}).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), "email", commands.TopicReservationCreated, gomock.Any(), s.clock.Now()).
			Return(nil).Times(1)

		result, err := s.cmds.Create(context.Background(), req, nil)

		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, result.ReservationID)
		s.False(result.IsReplayed)
	})

	s.Run("success: inactive statuses do not consume capacity", func() {
		s.expectCapacityLookup(eq,
			booking(eq.ID(), b.StartTime, b.EndTime, 5, reservation.StatusCancelled),
			booking(eq.ID(), b.StartTime, b.EndTime, 5, reservation.StatusRejected),
		)
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := s.cmds.Create(context.Background(), req, nil)
		s.NoError(err)
	})

	s.Run("success: adjacent reservations do not overlap", func() {
		s.expectCapacityLookup(eq,
			booking(eq.ID(), b.StartTime.Add(-2*time.Hour), b.StartTime, 5, reservation.StatusApproved),
			booking(eq.ID(), b.EndTime, b.EndTime.Add(time.Hour), 5, reservation.StatusPending),
		)
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := s.cmds.Create(context.Background(), req, nil)
		s.NoError(err)
	})

	s.Run("success: unlimited equipment accepts any quantity", func() {
		unlimited := builder.NewEquipmentBuilder().Unlimited().BuildDomain()
		big := builder.NewReservationBuilder().ForEquipment(unlimited.ID()).WithQuantity(999).BuildCreateDTO()
		s.expectCapacityLookup(unlimited, booking(unlimited.ID(), big.StartTime, big.EndTime, 10_000, reservation.StatusApproved))
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := s.cmds.Create(context.Background(), big, nil)
		s.NoError(err)
	})

	s.Run("success: ad-hoc items skip the capacity check", func() {
		adHoc := builder.NewReservationBuilder().AdHoc("Borrowed ultrasound").WithQuantity(50).BuildCreateDTO()
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *reservation.Reservation) error {
				name, ok := r.Target().CustomName()
				s.True(ok)
				s.Equal("Borrowed ultrasound", name)
				return nil
			}).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := s.cmds.Create(context.Background(), adHoc, nil)
		s.NoError(err)
	})

	s.Run("error: capacity exceeded", func() {
		s.expectCapacityLookup(eq, booking(eq.ID(), b.StartTime.Add(time.Hour), b.EndTime.Add(time.Hour), 4, reservation.StatusPending))

		result, err := s.cmds.Create(context.Background(), req, nil)

		s.Nil(result)
		s.True(errs.Is(err, commands.ErrCapacityExceeded))
	})

	s.Run("error: equipment not found", func() {
		s.reads.EXPECT().LockEquipment(gomock.Any(), eq.ID()).
			Return(nil, infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)).Times(1)

		_, err := s.cmds.Create(context.Background(), req, nil)
		s.True(errs.Is(err, commands.ErrEquipmentNotFound))
	})

	s.Run("error: inactive equipment is not reservable", func() {
		inactive := builder.NewEquipmentBuilder().With(func(b *builder.EquipmentBuilder) { b.IsActive = false }).BuildDomain()
		s.reads.EXPECT().LockEquipment(gomock.Any(), inactive.ID()).Return(inactive, nil).Times(1)

		r := builder.NewReservationBuilder().ForEquipment(inactive.ID()).BuildCreateDTO()
		_, err := s.cmds.Create(context.Background(), r, nil)
		s.True(errs.Is(err, commands.ErrEquipmentNotReservable))
	})

	s.Run("error: invalid request never opens a transaction", func() {
		past := builder.NewReservationBuilder().
			Window(s.clock.Now().Add(-2*time.Hour), s.clock.Now().Add(-time.Hour)).
			BuildCreateDTO()

		_, err := s.cmds.Create(context.Background(), past, nil)

		s.True(errs.Is(err, commands.ErrInvalidReservation))
		s.True(errs.Is(err, reservation.ErrStartInPast))
	})

	s.Run("error: store failure is wrapped", func() {
		s.expectCapacityLookup(eq)
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset")).Times(1)

		_, err := s.cmds.Create(context.Background(), req, nil)
		s.ErrorContains(err, "failed to create reservation")
	})
}

func (s *ReservationCommandsTestSuite) TestCreateIdempotency() {
	eq := builder.NewEquipmentBuilder().WithStock(5).BuildDomain()
	req := builder.NewReservationBuilder().ForEquipment(eq.ID()).BuildCreateDTO()
	key := uuid.New()

	s.Run("success: first request claims and completes the key", func() {
		s.idempotency.EXPECT().TryClaim(gomock.Any(), key, "POST /api/reservations", requestHash(req), s.clock.Now(), gomock.Any()).
			Return(true, nil).Times(1)
		s.expectCapacityLookup(eq)
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		var completed uuid.UUID
		s.idempotency.EXPECT().Complete(gomock.Any(), key, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, reservationID uuid.UUID) error {
				completed = reservationID
				return nil
			}).Times(1)

		result, err := s.cmds.Create(context.Background(), req, &key)

		s.Require().NoError(err)
		s.False(result.IsReplayed)
		s.Equal(completed, result.ReservationID)
	})

	s.Run("success: repeated request replays the first reservation", func() {
		firstID := uuid.New()
		s.idempotency.EXPECT().TryClaim(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(1)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key).Return(&shared.IdempotencyRecord{
			Key:                 key,
			Endpoint:            "POST /api/reservations",
			RequestHash:         requestHash(req),
			ResultReservationID: &firstID,
		}, nil).Times(1)

		result, err := s.cmds.Create(context.Background(), req, &key)

		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(firstID, result.ReservationID)
	})

	s.Run("success: replay still works after the reservation has started", func() {
		firstID := uuid.New()
		started := builder.NewReservationBuilder().ForEquipment(eq.ID()).
			Window(s.clock.Now().Add(-time.Hour), s.clock.Now().Add(time.Hour)).
			BuildCreateDTO()
		s.idempotency.EXPECT().TryClaim(gomock.Any(), key, gomock.Any(), requestHash(started), gomock.Any(), gomock.Any()).Return(false, nil).Times(1)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key).Return(&shared.IdempotencyRecord{
			Key:                 key,
			Endpoint:            "POST /api/reservations",
			RequestHash:         requestHash(started),
			ResultReservationID: &firstID,
		}, nil).Times(1)

		result, err := s.cmds.Create(context.Background(), started, &key)

		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(firstID, result.ReservationID)
	})

	s.Run("error: a fresh key still rejects a start in the past", func() {
		past := builder.NewReservationBuilder().ForEquipment(eq.ID()).
			Window(s.clock.Now().Add(-2*time.Hour), s.clock.Now().Add(-time.Hour)).
			BuildCreateDTO()
		s.idempotency.EXPECT().TryClaim(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), past, &key)

		s.True(errs.Is(err, commands.ErrInvalidReservation))
		s.True(errs.Is(err, reservation.ErrStartInPast))
	})

	s.Run("error: same key with a different body", func() {
		s.idempotency.EXPECT().TryClaim(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(1)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key).Return(&shared.IdempotencyRecord{
			Key:         key,
			Endpoint:    "POST /api/reservations",
			RequestHash: "different",
		}, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), req, &key)
		s.True(errs.Is(err, commands.ErrIdempotencyKeyReused))
	})

	s.Run("error: first request still in flight", func() {
		s.idempotency.EXPECT().TryClaim(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(1)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key).Return(&shared.IdempotencyRecord{
			Key:         key,
			Endpoint:    "POST /api/reservations",
			RequestHash: requestHash(req),
		}, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), req, &key)
		s.True(errs.Is(err, commands.ErrIdempotencyInProgress))
	})

	s.Run("error: claim failure", func() {
		s.idempotency.EXPECT().TryClaim(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, errors.New("timeout")).Times(1)

		_, err := s.cmds.Create(context.Background(), req, &key)
		s.True(errs.Is(err, commands.ErrIdempotencyCheckFailed))
	})
}

func (s *ReservationCommandsTestSuite) TestUpdate() {
	eq := builder.NewEquipmentBuilder().WithStock(3).BuildDomain()
	rb := builder.NewReservationBuilder().ForEquipment(eq.ID()).WithQuantity(2).WithStatus(reservation.StatusApproved)

	s.Run("success: the reservation's own units are excluded", func() {
		res, err := rb.BuildDomain()
		s.Require().NoError(err)
		newEnd := rb.EndTime.Add(time.Hour)

		own := booking(eq.ID(), rb.StartTime, rb.EndTime, 2, reservation.StatusApproved)
		own.ID = res.ID()
		other := booking(eq.ID(), rb.EndTime, newEnd, 1, reservation.StatusPending)

		s.reads.EXPECT().LockReservation(gomock.Any(), res.ID()).Return(res, nil).Times(1)
		s.expectCapacityLookup(eq, own, other)
		s.reservations.EXPECT().Update(gomock.Any(), res).Return(nil).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), "email", commands.TopicReservationUpdated, gomock.Any(), gomock.Any()).Return(nil).Times(1)

		err = s.cmds.Update(context.Background(), res.ID(), reqdto.UpdateReservationRequest{EndTime: &newEnd})

		s.Require().NoError(err)
		s.Equal(newEnd, res.TimeSlot().End())
	})

	s.Run("error: edit conflicting with another reservation", func() {
		res, err := rb.BuildDomain()
		s.Require().NoError(err)
		three := 3

		s.reads.EXPECT().LockReservation(gomock.Any(), res.ID()).Return(res, nil).Times(1)
		s.expectCapacityLookup(eq, booking(eq.ID(), rb.StartTime, rb.EndTime, 1, reservation.StatusPending))

		err = s.cmds.Update(context.Background(), res.ID(), reqdto.UpdateReservationRequest{Quantity: &three})
		s.True(errs.Is(err, commands.ErrCapacityExceeded))
	})

	s.Run("error: reservation not found", func() {
		id := uuid.New()
		s.reads.EXPECT().LockReservation(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)).Times(1)

		err := s.cmds.Update(context.Background(), id, reqdto.UpdateReservationRequest{})
		s.True(errs.Is(err, commands.ErrReservationNotFound))
	})

	s.Run("error: terminal reservations cannot be edited", func() {
		res, err := builder.NewReservationBuilder().ForEquipment(eq.ID()).WithStatus(reservation.StatusCancelled).BuildDomain()
		s.Require().NoError(err)
		s.reads.EXPECT().LockReservation(gomock.Any(), res.ID()).Return(res, nil).Times(1)

		err = s.cmds.Update(context.Background(), res.ID(), reqdto.UpdateReservationRequest{})
		s.True(errs.Is(err, commands.ErrInvalidReservation))
		s.True(errs.Is(err, reservation.ErrNotEditable))
	})
}

func (s *ReservationCommandsTestSuite) TestChangeStatus() {
	s.Run("success: pending to approved", func() {
		res, err := builder.NewReservationBuilder().BuildDomain()
		s.Require().NoError(err)
		s.reads.EXPECT().LockReservation(gomock.Any(), res.ID()).Return(res, nil).Times(1)
		s.reservations.EXPECT().Update(gomock.Any(), res).Return(nil).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), "email", commands.TopicReservationStatus, gomock.Any(), gomock.Any()).Return(nil).Times(1)

		err = s.cmds.ChangeStatus(context.Background(), res.ID(), reqdto.ChangeStatusRequest{Status: "approved"})

		s.Require().NoError(err)
		s.Equal(reservation.StatusApproved, res.Status())
	})

	s.Run("error: rejected reservations stay rejected", func() {
		res, err := builder.NewReservationBuilder().WithStatus(reservation.StatusRejected).BuildDomain()
		s.Require().NoError(err)
		s.reads.EXPECT().LockReservation(gomock.Any(), res.ID()).Return(res, nil).Times(1)

		err = s.cmds.ChangeStatus(context.Background(), res.ID(), reqdto.ChangeStatusRequest{Status: "approved"})

		s.True(errs.Is(err, commands.ErrStatusChangeRejected))
		s.True(errs.Is(err, reservation.ErrTransitionNotAllowed))
	})

	s.Run("error: unknown status never opens a transaction", func() {
		err := s.cmds.ChangeStatus(context.Background(), uuid.New(), reqdto.ChangeStatusRequest{Status: "archived"})
		s.True(errs.Is(err, commands.ErrInvalidReservation))
	})
}

func (s *ReservationCommandsTestSuite) TestCancelByRequester() {
	s.Run("success: contact match ignores case", func() {
		res, err := builder.NewReservationBuilder().BuildDomain()
		s.Require().NoError(err)
		s.reads.EXPECT().LockReservation(gomock.Any(), res.ID()).Return(res, nil).Times(1)
		s.reservations.EXPECT().Update(gomock.Any(), res).Return(nil).Times(1)
		s.notifications.EXPECT().CreateJob(gomock.Any(), "email", commands.TopicReservationCancelled, gomock.Any(), gomock.Any()).Return(nil).Times(1)

		err = s.cmds.CancelByRequester(context.Background(), res.ID(), reqdto.CancelReservationRequest{Contact: "HANAKO@example.com"})

		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled, res.Status())
	})

	s.Run("error: contact mismatch", func() {
		res, err := builder.NewReservationBuilder().BuildDomain()
		s.Require().NoError(err)
		s.reads.EXPECT().LockReservation(gomock.Any(), res.ID()).Return(res, nil).Times(1)

		err = s.cmds.CancelByRequester(context.Background(), res.ID(), reqdto.CancelReservationRequest{Contact: "someone@example.com"})

		s.True(errs.Is(err, reservation.ErrContactMismatch))
		s.Equal(reservation.StatusPending, res.Status())
	})

	s.Run("error: already started", func() {
		start := s.clock.Now().Add(-time.Hour)
		res, err := builder.NewReservationBuilder().Window(start, start.Add(3*time.Hour)).BuildDomain()
		s.Require().NoError(err)
		s.reads.EXPECT().LockReservation(gomock.Any(), res.ID()).Return(res, nil).Times(1)

		err = s.cmds.CancelByRequester(context.Background(), res.ID(), reqdto.CancelReservationRequest{Contact: "hanako@example.com"})
		s.True(errs.Is(err, reservation.ErrAlreadyStarted))
	})
}
