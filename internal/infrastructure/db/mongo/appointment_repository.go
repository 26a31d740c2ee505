package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

const collectionAppointments = "appointments"

// AppointmentRepository implements ports.AppointmentRepository using MongoDB.
type AppointmentRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments), now: time.Now}
}

type appointmentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PatientID primitive.ObjectID `bson:"patient"`
	DoctorID  primitive.ObjectID `bson:"doctor"`
	Date      time.Time          `bson:"date"`
	Time      string             `bson:"time"`
	Duration  int                `bson:"duration"`
	Status    string             `bson:"status"`
	Reason    string             `bson:"reason"`
	Notes     string             `bson:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *appointmentDoc) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:        d.ID.Hex(),
		PatientID: hexOrEmpty(d.PatientID),
		DoctorID:  hexOrEmpty(d.DoctorID),
		Date:      d.Date,
		Time:      d.Time,
		Duration:  d.Duration,
		Status:    domain.AppointmentStatus(d.Status),
		Reason:    d.Reason,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *AppointmentRepository) toDoc(a *domain.Appointment) (*appointmentDoc, error) {
	patient, err := optionalID(a.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := optionalID(a.DoctorID)
	if err != nil {
		return nil, err
	}
	return &appointmentDoc{
		PatientID: patient,
		DoctorID:  doctor,
		Date:      a.Date.UTC(),
		Time:      a.Time,
		Duration:  a.Duration,
		Status:    string(a.Status),
		Reason:    a.Reason,
		Notes:     a.Notes,
		CreatedAt: stamp(a.CreatedAt, r.now),
		UpdatedAt: stamp(a.UpdatedAt, r.now),
	}, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc, err := r.toDoc(a)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := objectID(id, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc appointmentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns matching appointments in calendar order.
func (r *AppointmentRepository) List(ctx context.Context, filter ports.AppointmentFilter) ([]*domain.Appointment, error) {
	q := bson.M{}
	if filter.PatientID != "" {
		oid, ok := parseID(filter.PatientID)
		if !ok {
			return nil, nil
		}
		q["patient"] = oid
	}
	if filter.DoctorID != "" {
		oid, ok := parseID(filter.DoctorID)
		if !ok {
			return nil, nil
		}
		q["doctor"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return decodeAll(ctx, cur, (*appointmentDoc).toDomain)
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	oid, err := objectID(a.ID, domain.ErrNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     string(a.Status),
		"notes":      a.Notes,
		"updated_at": stamp(a.UpdatedAt, r.now),
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("appointments indexes: %w", err)
	}
	return nil
}
