package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
	"github.com/ostaapp/osta-backend/pkg/pagination"
)

// Repository persists jobs and their quote items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, job *models.Job) error
	Find(ctx context.Context, id uuid.UUID) (*models.Job, error)
	// UpdateStatusCAS advances a job from one status to another together with
	// the given column updates. It reports false when the job was not in the
	// expected status, leaving the row untouched.
	UpdateStatusCAS(ctx context.Context, jobID uuid.UUID, from, to enums.JobStatus, updates map[string]any) (bool, error)
	ReplaceQuoteItems(ctx context.Context, jobID uuid.UUID, items []models.QuoteItem) error
	List(ctx context.Context, params ListParams) ([]models.Job, *pagination.Cursor, error)
	ListArrivedBefore(ctx context.Context, cutoff time.Time) ([]models.Job, error)
}

// ListParams narrows the booking history query.
type ListParams struct {
	CustomerID *uuid.UUID
	ProviderID *uuid.UUID
	Status     *enums.JobStatus
	Limit      int
	Cursor     *pagination.Cursor
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a bookings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Preload("QuoteItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) UpdateStatusCAS(ctx context.Context, jobID uuid.UUID, from, to enums.JobStatus, updates map[string]any) (bool, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND status = ?", jobID, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) ReplaceQuoteItems(ctx context.Context, jobID uuid.UUID, items []models.QuoteItem) error {
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Delete(&models.QuoteItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].JobID = jobID
		items[i].Position = i
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) List(ctx context.Context, params ListParams) ([]models.Job, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(params.Limit)
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.ProviderID != nil {
		query = query.Where("provider_id = ?", *params.ProviderID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	var rows []models.Job
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	limit := params.Limit - 1
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		return rows, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}

func (r *repository) ListArrivedBefore(ctx context.Context, cutoff time.Time) ([]models.Job, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("status = ? AND arrived_at <= ?", enums.JobStatusArrived, cutoff).
		Order("arrived_at ASC").
		Find(&rows).Error
	return rows, err
}
