package repository

import (
	"context"
	"strings"

	"hallticket_backend/internals/features/applications/hall_tickets/model"
	helper "hallticket_backend/internals/helpers"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchInsertSize = 200

type ListFilter struct {
	Status      string
	ProgramCode string
	Zone        string
	Limit       int
	Offset      int
}

// FieldsPatch: kolom snapshot yang boleh diubah admin (nil = tidak diubah).
type FieldsPatch struct {
	Centre       *string
	Name         *string
	DateOfBirth  *string
	Zone         *string
	MembershipID *string
}

func (p FieldsPatch) IsEmpty() bool {
	return p.Centre == nil && p.Name == nil && p.DateOfBirth == nil && p.Zone == nil && p.MembershipID == nil
}

type HallTicketRepository interface {
	// InsertIfAbsent: idempotent per submission. created=false bila tiket sudah ada.
	InsertIfAbsent(ctx context.Context, t *model.HallTicketModel, ev *model.HallTicketEventModel) (created bool, err error)
	// InsertMany: bulk insert, baris yang bentrok dilewati. Mengembalikan tiket yang benar-benar masuk.
	InsertMany(ctx context.Context, tickets []model.HallTicketModel, ev model.HallTicketEventModel) ([]model.HallTicketModel, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.HallTicketModel, error)
	FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) (*model.HallTicketModel, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*model.HallTicketModel, error)
	TicketedSubmissionIDs(ctx context.Context, submissionIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
	List(ctx context.Context, f ListFilter) ([]model.HallTicketModel, int64, error)

	// Transition: compare-and-set status from → to + catat event, satu transaksi.
	// ok=false bila status sudah berubah oleh request lain.
	Transition(ctx context.Context, id uuid.UUID, from, to string, ev *model.HallTicketEventModel) (ok bool, err error)
	UpdateFields(ctx context.Context, id uuid.UUID, p FieldsPatch) error

	Events(ctx context.Context, ticketID uuid.UUID) ([]model.HallTicketEventModel, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// PhotoURLs: foto snapshot yang masih dipakai tiket (dirujuk reaper).
	PhotoURLs(ctx context.Context) ([]string, error)
}

// insertIfAbsent: INSERT … ON CONFLICT (hall_ticket_submission_id) DO NOTHING
func insertIfAbsent(tx *gorm.DB, t *model.HallTicketModel) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hall_ticket_submission_id"}},
		DoNothing: true,
	}).Create(t)
}

// skipConflicts: baris yang melanggar unique index mana pun dilewati.
func skipConflicts(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.OnConflict{DoNothing: true})
}

func whereIDIn(tx *gorm.DB, column string, ids []uuid.UUID) *gorm.DB {
	return tx.Where(column+" = ANY(?::uuid[])", pq.Array(uuidStrings(ids)))
}

type gormHallTicketRepository struct {
	db *gorm.DB
}

func NewHallTicketRepository(db *gorm.DB) HallTicketRepository {
	return &gormHallTicketRepository{db: db}
}

func (r *gormHallTicketRepository) InsertIfAbsent(ctx context.Context, t *model.HallTicketModel, ev *model.HallTicketEventModel) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := insertIfAbsent(tx, t)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true
		if ev != nil {
			ev.HallTicketEventHallTicketID = t.HallTicketID
			return tx.Create(ev).Error
		}
		return nil
	})
	if err != nil {
		return false, helper.NormalizeDBError(err)
	}
	return created, nil
}

func (r *gormHallTicketRepository) InsertMany(ctx context.Context, tickets []model.HallTicketModel, ev model.HallTicketEventModel) ([]model.HallTicketModel, error) {
	if len(tickets) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(tickets))
	for i := range tickets {
		if tickets[i].HallTicketID == uuid.Nil {
			tickets[i].HallTicketID = uuid.New()
		}
		ids = append(ids, tickets[i].HallTicketID)
	}

	var inserted []model.HallTicketModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := skipConflicts(tx).CreateInBatches(&tickets, batchInsertSize).Error; err != nil {
			return err
		}
		// id dibuat di sisi aplikasi → yang ada di tabel = yang barusan masuk
		if err := whereIDIn(tx, "hall_ticket_id", ids).
			Order("hall_ticket_issued_at ASC").
			Find(&inserted).Error; err != nil {
			return err
		}
		if len(inserted) == 0 {
			return nil
		}
		events := make([]model.HallTicketEventModel, 0, len(inserted))
		for _, t := range inserted {
			e := ev
			e.HallTicketEventID = uuid.New()
			e.HallTicketEventHallTicketID = t.HallTicketID
			e.HallTicketEventToStatus = t.HallTicketStatus
			events = append(events, e)
		}
		return tx.CreateInBatches(&events, batchInsertSize).Error
	})
	if err != nil {
		return nil, helper.NormalizeDBError(err)
	}
	return inserted, nil
}

func (r *gormHallTicketRepository) first(ctx context.Context, where string, arg any) (*model.HallTicketModel, error) {
	var m model.HallTicketModel
	if err := r.db.WithContext(ctx).Where(where, arg).First(&m).Error; err != nil {
		return nil, helper.NormalizeDBError(err)
	}
	return &m, nil
}

func (r *gormHallTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.HallTicketModel, error) {
	return r.first(ctx, "hall_ticket_id = ?", id)
}

func (r *gormHallTicketRepository) FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) (*model.HallTicketModel, error) {
	return r.first(ctx, "hall_ticket_submission_id = ?", submissionID)
}

func (r *gormHallTicketRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*model.HallTicketModel, error) {
	return r.first(ctx, "hall_ticket_unique_id = ?", strings.TrimSpace(uniqueID))
}

func (r *gormHallTicketRepository) TicketedSubmissionIDs(ctx context.Context, submissionIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{}, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := whereIDIn(r.db.WithContext(ctx).Model(&model.HallTicketModel{}), "hall_ticket_submission_id", submissionIDs).
		Pluck("hall_ticket_submission_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *gormHallTicketRepository) List(ctx context.Context, f ListFilter) ([]model.HallTicketModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.HallTicketModel{})
	if f.Status != "" {
		q = q.Where("hall_ticket_status = ?", f.Status)
	}
	if f.ProgramCode != "" {
		q = q.Where("hall_ticket_program_code = ?", f.ProgramCode)
	}
	if f.Zone != "" {
		q = q.Where("hall_ticket_zone = ?", f.Zone)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q = q.Order("hall_ticket_issued_at DESC").Order("hall_ticket_id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var rows []model.HallTicketModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormHallTicketRepository) Transition(ctx context.Context, id uuid.UUID, from, to string, ev *model.HallTicketEventModel) (bool, error) {
	ok := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.HallTicketModel{}).
			Where("hall_ticket_id = ? AND hall_ticket_status = ?", id, from).
			Update("hall_ticket_status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		ok = true
		if ev == nil {
			return nil
		}
		ev.HallTicketEventHallTicketID = id
		ev.HallTicketEventFromStatus = from
		ev.HallTicketEventToStatus = to
		return tx.Create(ev).Error
	})
	if err != nil {
		return false, helper.NormalizeDBError(err)
	}
	return ok, nil
}

func (r *gormHallTicketRepository) UpdateFields(ctx context.Context, id uuid.UUID, p FieldsPatch) error {
	patch := map[string]any{}
	if p.Centre != nil {
		patch["hall_ticket_centre"] = *p.Centre
	}
	if p.Name != nil {
		patch["hall_ticket_name"] = *p.Name
	}
	if p.DateOfBirth != nil {
		patch["hall_ticket_date_of_birth"] = *p.DateOfBirth
	}
	if p.Zone != nil {
		patch["hall_ticket_zone"] = *p.Zone
	}
	if p.MembershipID != nil {
		patch["hall_ticket_membership_id"] = *p.MembershipID
	}
	if len(patch) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.HallTicketModel{}).
		Where("hall_ticket_id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return helper.NormalizeDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormHallTicketRepository) Events(ctx context.Context, ticketID uuid.UUID) ([]model.HallTicketEventModel, error) {
	var rows []model.HallTicketEventModel
	if err := r.db.WithContext(ctx).
		Where("hall_ticket_event_hall_ticket_id = ?", ticketID).
		Order("hall_ticket_event_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormHallTicketRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Label string
		Total int64
	}
	if err := r.db.WithContext(ctx).Model(&model.HallTicketModel{}).
		Select("hall_ticket_status AS label, COUNT(*) AS total").
		Group("hall_ticket_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Total
	}
	return out, nil
}

func (r *gormHallTicketRepository) PhotoURLs(ctx context.Context) ([]string, error) {
	var urls []string
	if err := pluckPhotoURLs(r.db.WithContext(ctx), &urls).Error; err != nil {
		return nil, err
	}
	return urls, nil
}

func pluckPhotoURLs(tx *gorm.DB, dest *[]string) *gorm.DB {
	return tx.Model(&model.HallTicketModel{}).
		Where("COALESCE(hall_ticket_photo_url, '') <> ''").
		Distinct().
		Pluck("hall_ticket_photo_url", dest)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
