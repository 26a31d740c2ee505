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

const collectionReports = "medical_reports"

type ReportRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports), now: time.Now}
}

type reportDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PatientID primitive.ObjectID `bson:"patient"`
	DoctorID  primitive.ObjectID `bson:"doctor"`
	Title     string             `bson:"title"`
	Type      string             `bson:"type"`
	FileURL   string             `bson:"file_url"`
	Summary   string             `bson:"summary,omitempty"`
	AISummary string             `bson:"ai_summary,omitempty"`
	Date      time.Time          `bson:"date"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *reportDoc) toDomain() *domain.MedicalReport {
	return &domain.MedicalReport{
		ID:        d.ID.Hex(),
		PatientID: hexOrEmpty(d.PatientID),
		DoctorID:  hexOrEmpty(d.DoctorID),
		Title:     d.Title,
		Type:      domain.ReportType(d.Type),
		FileURL:   d.FileURL,
		Summary:   d.Summary,
		AISummary: d.AISummary,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.MedicalReport) (*domain.MedicalReport, error) {
	patient, err := optionalID(rep.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := optionalID(rep.DoctorID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reportDoc{
		ID:        primitive.NewObjectID(),
		PatientID: patient,
		DoctorID:  doctor,
		Title:     rep.Title,
		Type:      string(rep.Type),
		FileURL:   rep.FileURL,
		Summary:   rep.Summary,
		AISummary: rep.AISummary,
		Date:      stamp(rep.Date, r.now),
		CreatedAt: stamp(rep.CreatedAt, r.now),
		UpdatedAt: stamp(rep.UpdatedAt, r.now),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns matching reports, newest first.
func (r *ReportRepository) List(ctx context.Context, filter ports.ReportFilter) ([]*domain.MedicalReport, error) {
	q := bson.M{}
	for field, id := range map[string]string{"patient": filter.PatientID, "doctor": filter.DoctorID} {
		if id == "" {
			continue
		}
		oid, ok := parseID(id)
		if !ok {
			return nil, nil
		}
		q[field] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return decodeAll(ctx, cur, (*reportDoc).toDomain)
}

func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("reports indexes: %w", err)
	}
	return nil
}
