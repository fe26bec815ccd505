package converter

import (
	"equipment-reservation/internal/domain/reservation"
	sqlc "equipment-reservation/internal/infra/sqlc/generated"
	"equipment-reservation/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	equipmentID, customName := targetToInfra(res.Target())
	slot := res.TimeSlot()

	return sqlc.CreateReservationParams{
		ID:                  res.ID(),
		EquipmentID:         equipmentID,
		CustomEquipmentName: customName,
		Quantity:            int32(res.Quantity().Int()), // #nosec G115 -- validated by the request layer
		StartTime:           pgconv.TimeToPgtype(slot.Start()),
		EndTime:             pgconv.TimeToPgtype(slot.End()),
		Status:              res.Status().String(),
		RequesterName:       res.Requester().Name(),
		RequesterContact:    res.Requester().Contact(),
		Department:          res.Requester().Department(),
		Note:                res.Note().String(),
		CreatedAt:           pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:           pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationUpdateToInfra(res *reservation.Reservation) sqlc.UpdateReservationParams {
	equipmentID, customName := targetToInfra(res.Target())
	slot := res.TimeSlot()

	return sqlc.UpdateReservationParams{
		ID:                  res.ID(),
		EquipmentID:         equipmentID,
		CustomEquipmentName: customName,
		Quantity:            int32(res.Quantity().Int()), // #nosec G115 -- validated by the request layer
		StartTime:           pgconv.TimeToPgtype(slot.Start()),
		EndTime:             pgconv.TimeToPgtype(slot.End()),
		Status:              res.Status().String(),
		Note:                res.Note().String(),
		UpdatedAt:           pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

// ReservationFromInfra rebuilds the entity from a stored row. Rows passed the table's CHECK
// constraints, so value-object validation is only repeated where the row could disagree with it.
func ReservationFromInfra(row sqlc.Reservations) (*reservation.Reservation, error) {
	target, err := reservation.ResolveTarget(pgconv.UUIDPtrFromPgtype(row.EquipmentID), pgconv.StringPtrFromPgtype(row.CustomEquipmentName))
	if err != nil {
		return nil, err
	}
	quantity, err := reservation.NewQuantity(int(row.Quantity))
	if err != nil {
		return nil, err
	}
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	requester, err := reservation.NewRequester(row.RequesterName, row.RequesterContact, row.Department)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(row.Note)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		row.ID,
		target,
		reservation.ReconstructTimeSlot(row.StartTime.Time, row.EndTime.Time),
		quantity,
		status,
		requester,
		note,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func targetToInfra(t reservation.Target) (pgtype.UUID, pgtype.Text) {
	if id, ok := t.EquipmentID(); ok {
		return pgconv.UUIDToPgtype(id), pgtype.Text{}
	}
	name, _ := t.CustomName()
	return pgtype.UUID{}, pgtype.Text{String: name, Valid: true}
}
