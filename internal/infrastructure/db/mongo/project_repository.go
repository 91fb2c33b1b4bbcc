package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

const projectsCollection = "projects"

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type mongoProject struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	ProjectType    string             `bson:"project_type"`
	Status         string             `bson:"status"`
	ClientID       string             `bson:"client_id,omitempty"`
	Technologies   []string           `bson:"technologies"`
	StartDate      time.Time          `bson:"start_date"`
	EndDate        *time.Time         `bson:"end_date,omitempty"`
	Budget         *float64           `bson:"budget,omitempty"`
	HourlyRate     *float64           `bson:"hourly_rate,omitempty"`
	EstimatedHours *float64           `bson:"estimated_hours,omitempty"`
	CreatedBy      string             `bson:"created_by"`
	UpdatedBy      string             `bson:"updated_by,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProject{
		Name:           p.Name,
		Description:    p.Description,
		ProjectType:    string(p.ProjectType),
		Status:         string(p.Status),
		ClientID:       p.ClientID,
		Technologies:   p.Technologies,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Budget:         p.Budget,
		HourlyRate:     p.HourlyRate,
		EstimatedHours: p.EstimatedHours,
		CreatedBy:      p.CreatedBy,
		UpdatedBy:      p.UpdatedBy,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Project, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CreatedBy != "" {
		query["created_by"] = filter.CreatedBy
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Project
	for cur.Next(ctx) {
		var mp mongoProject
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode project: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	return out, total, cur.Err()
}

// Update applies a partial update: only non-nil fields enter the $set document.
func (r *ProjectRepository) Update(ctx context.Context, id string, update ports.ProjectUpdate) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	setIfString(set, "name", update.Name)
	setIfString(set, "description", update.Description)
	setIfString(set, "client_id", update.ClientID)
	if update.ProjectType != nil {
		set["project_type"] = string(*update.ProjectType)
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Technologies != nil {
		set["technologies"] = *update.Technologies
	}
	if update.StartDate != nil {
		set["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		set["end_date"] = *update.EndDate
	}
	if update.Budget != nil {
		set["budget"] = *update.Budget
	}
	if update.HourlyRate != nil {
		set["hourly_rate"] = *update.HourlyRate
	}
	if update.EstimatedHours != nil {
		set["estimated_hours"] = *update.EstimatedHours
	}
	if update.UpdatedBy != "" {
		set["updated_by"] = update.UpdatedBy
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProject
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return 0, fmt.Errorf("count projects by client: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates supporting indexes on the projects collection.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mp *mongoProject) toDomain() *domain.Project {
	technologies := mp.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return &domain.Project{
		ID:             mp.ID.Hex(),
		Name:           mp.Name,
		Description:    mp.Description,
		ProjectType:    domain.ProjectType(mp.ProjectType),
		Status:         domain.ProjectStatus(mp.Status),
		ClientID:       mp.ClientID,
		Technologies:   technologies,
		StartDate:      mp.StartDate,
		EndDate:        mp.EndDate,
		Budget:         mp.Budget,
		HourlyRate:     mp.HourlyRate,
		EstimatedHours: mp.EstimatedHours,
		CreatedBy:      mp.CreatedBy,
		UpdatedBy:      mp.UpdatedBy,
		CreatedAt:      mp.CreatedAt,
		UpdatedAt:      mp.UpdatedAt,
	}
}
