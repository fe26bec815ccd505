package docstore

import (
	"errors"
	"time"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/domain/category"
	"equipment-reservation/internal/domain/equipment"
	"equipment-reservation/internal/domain/reservation"
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Documents key on the UUID string so ids stay interchangeable with the postgres store.

type equipmentDoc struct {
	ID            string    `bson:"_id"`
	Name          string    `bson:"name"`
	Description   string    `bson:"description"`
	CategoryID    *string   `bson:"category_id,omitempty"`
	TotalQuantity int       `bson:"total_quantity"`
	IsUnlimited   bool      `bson:"is_unlimited"`
	IsActive      bool      `bson:"is_active"`
	IsDeleted     bool      `bson:"is_deleted"`
	LockVersion   int64     `bson:"lock_version"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

type reservationDoc struct {
	ID                  string    `bson:"_id"`
	EquipmentID         *string   `bson:"equipment_id,omitempty"`
	CustomEquipmentName *string   `bson:"custom_equipment_name,omitempty"`
	Quantity            int       `bson:"quantity"`
	StartTime           time.Time `bson:"start_time"`
	EndTime             time.Time `bson:"end_time"`
	Status              string    `bson:"status"`
	RequesterName       string    `bson:"requester_name"`
	RequesterContact    string    `bson:"requester_contact"`
	Department          string    `bson:"department"`
	Note                string    `bson:"note"`
	LockVersion         int64     `bson:"lock_version"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

type categoryDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
}

type adminDoc struct {
	ID           string     `bson:"_id"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"password_hash"`
	Role         string     `bson:"role"`
	IsActive     bool       `bson:"is_active"`
	LastLogin    *time.Time `bson:"last_login,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

type notificationDoc struct {
	ID        string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	Topic     string    `bson:"topic"`
	Payload   []byte    `bson:"payload"`
	RunAt     time.Time `bson:"run_at"`
	CreatedAt time.Time `bson:"created_at"`
}

type idempotencyDoc struct {
	Key                 string    `bson:"_id"`
	Endpoint            string    `bson:"endpoint"`
	RequestHash         string    `bson:"request_hash"`
	ResultReservationID *string   `bson:"result_reservation_id,omitempty"`
	ExpiresAt           time.Time `bson:"expires_at"`
	CreatedAt           time.Time `bson:"created_at"`
}

func idPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toEquipmentDoc(e *equipment.Equipment) equipmentDoc {
	return equipmentDoc{
		ID:            e.ID().String(),
		Name:          e.Name(),
		Description:   e.Description(),
		CategoryID:    idPtrToString(e.CategoryID()),
		TotalQuantity: e.TotalQuantity(),
		IsUnlimited:   e.IsUnlimited(),
		IsActive:      e.IsActive(),
		IsDeleted:     e.IsDeleted(),
		CreatedAt:     e.CreatedAt().UTC(),
		UpdatedAt:     e.UpdatedAt().UTC(),
	}
}

func (d equipmentDoc) toDomain() (*equipment.Equipment, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseIDPtr(d.CategoryID)
	if err != nil {
		return nil, err
	}
	return equipment.ReconstructEquipment(
		id,
		d.Name,
		d.Description,
		categoryID,
		equipment.Stock{Total: d.TotalQuantity, Unlimited: d.IsUnlimited},
		d.IsActive,
		d.IsDeleted,
		d.CreatedAt,
		d.UpdatedAt,
	), nil
}

func (d equipmentDoc) toView(categoryName *string) (*queries.EquipmentView, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseIDPtr(d.CategoryID)
	if err != nil {
		return nil, err
	}
	return &queries.EquipmentView{
		ID:            id,
		Name:          d.Name,
		Description:   d.Description,
		CategoryID:    categoryID,
		CategoryName:  categoryName,
		TotalQuantity: d.TotalQuantity,
		IsUnlimited:   d.IsUnlimited,
		IsActive:      d.IsActive,
		IsDeleted:     d.IsDeleted,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func toReservationDoc(r *reservation.Reservation) reservationDoc {
	doc := reservationDoc{
		ID:               r.ID().String(),
		Quantity:         r.Quantity().Int(),
		StartTime:        r.TimeSlot().Start().UTC(),
		EndTime:          r.TimeSlot().End().UTC(),
		Status:           r.Status().String(),
		RequesterName:    r.Requester().Name(),
		RequesterContact: r.Requester().Contact(),
		Department:       r.Requester().Department(),
		Note:             r.Note().String(),
		CreatedAt:        r.CreatedAt().UTC(),
		UpdatedAt:        r.UpdatedAt().UTC(),
	}
	if id, ok := r.Target().EquipmentID(); ok {
		s := id.String()
		doc.EquipmentID = &s
	} else {
		name, _ := r.Target().CustomName()
		doc.CustomEquipmentName = &name
	}
	return doc
}

func (d reservationDoc) toDomain() (*reservation.Reservation, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	equipmentID, err := parseIDPtr(d.EquipmentID)
	if err != nil {
		return nil, err
	}
	target, err := reservation.ResolveTarget(equipmentID, d.CustomEquipmentName)
	if err != nil {
		return nil, err
	}
	quantity, err := reservation.NewQuantity(d.Quantity)
	if err != nil {
		return nil, err
	}
	status, err := reservation.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}
	requester, err := reservation.NewRequester(d.RequesterName, d.RequesterContact, d.Department)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(d.Note)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		id,
		target,
		reservation.ReconstructTimeSlot(d.StartTime, d.EndTime),
		quantity,
		status,
		requester,
		note,
		d.CreatedAt,
		d.UpdatedAt,
	), nil
}

func (d reservationDoc) toView(equipmentName *string) (*queries.ReservationView, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	equipmentID, err := parseIDPtr(d.EquipmentID)
	if err != nil {
		return nil, err
	}
	return &queries.ReservationView{
		ID:                  id,
		EquipmentID:         equipmentID,
		EquipmentName:       equipmentName,
		CustomEquipmentName: d.CustomEquipmentName,
		Quantity:            d.Quantity,
		StartTime:           d.StartTime,
		EndTime:             d.EndTime,
		Status:              d.Status,
		RequesterName:       d.RequesterName,
		RequesterContact:    d.RequesterContact,
		Department:          d.Department,
		Note:                d.Note,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}, nil
}

func (d categoryDoc) toDomain() (*category.Category, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return category.ReconstructCategory(id, d.Name, d.Description, d.CreatedAt), nil
}

func (d adminDoc) toView() (*queries.AdminView, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &queries.AdminView{
		ID:        id,
		Email:     d.Email,
		Role:      d.Role,
		IsActive:  d.IsActive,
		LastLogin: d.LastLogin,
	}, nil
}

// toAdminDoc is used to seed administrators.
func toAdminDoc(a *admin.Admin) adminDoc {
	return adminDoc{
		ID:           a.ID().String(),
		Email:        a.Email().Value(),
		PasswordHash: a.PasswordHash(),
		Role:         a.Role().String(),
		IsActive:     a.IsActive(),
		LastLogin:    a.LastLogin(),
		CreatedAt:    a.CreatedAt().UTC(),
		UpdatedAt:    a.UpdatedAt().UTC(),
	}
}

func wrapFindErr(what string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return infra.WrapRepoErr(what+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to find "+what, err)
}

func wrapWriteErr(msg string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	}
	return infra.WrapRepoErr(msg, err)
}

func wrapDecodeErr(what string, err error) error {
	return infra.WrapRepoErr("failed to decode "+what, err)
}
