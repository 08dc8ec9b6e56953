package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/okian/crm/internal/domain/model"
	"github.com/okian/crm/pkg/logger"
	"github.com/okian/crm/pkg/metrics"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
	defaultSlowThreshold   = 200 * time.Millisecond
)

// GormStore implements Store on top of gorm.
type GormStore struct {
	db     *gorm.DB
	driver string
	logger logger.Logger

	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	slowThreshold   time.Duration
}

var _ Store = (*GormStore)(nil)

// Seeds lists lookup descriptions to insert into empty lookup tables.
type Seeds struct {
	ContactTypes []string
	Genders      []string
	Origins      []string
	Statuses     []string
}

// Open connects to the database behind dsn and verifies the connection.
//
// SQLite is held to a single connection: an in-memory database exists per
// connection and file databases serialize writers anyway.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*GormStore, error) {
	s := &GormStore{
		driver:          driver,
		maxOpenConns:    defaultMaxOpenConns,
		maxIdleConns:    defaultMaxIdleConns,
		connMaxLifetime: defaultConnMaxLifetime,
		slowThreshold:   defaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("repository")
	}

	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(s.logger.Named("gorm"), s.slowThreshold),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("repository.open %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("repository.open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(s.maxOpenConns)
		sqlDB.SetMaxIdleConns(s.maxIdleConns)
		sqlDB.SetConnMaxLifetime(s.connMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("repository.open %s: ping: %w", driver, err)
	}

	s.db = db
	s.logger.Info(ctx, "database connected", logger.String("driver", driver))
	return s, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Migrate creates missing tables and indexes.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(allRows()...); err != nil {
		return fmt.Errorf("repository.migrate: %w", err)
	}
	return nil
}

// Seed fills each lookup table from seeds when that table is empty.
// Tables that already hold rows are left alone.
func (s *GormStore) Seed(ctx context.Context, seeds Seeds) error {
	steps := []struct {
		table string
		run   func() (int64, error)
	}{
		{TableContactTypes, func() (int64, error) {
			return seedLookup(ctx, s, seeds.ContactTypes, func(d string) ContactTypeRow {
				return ContactTypeRow{LookupRow{Description: d}}
			})
		}},
		{TableGender, func() (int64, error) {
			return seedLookup(ctx, s, seeds.Genders, func(d string) GenderRow {
				return GenderRow{LookupRow{Description: d}}
			})
		}},
		{TableOrigins, func() (int64, error) {
			return seedLookup(ctx, s, seeds.Origins, func(d string) OriginRow {
				return OriginRow{LookupRow{Description: d}}
			})
		}},
		{TableStatus, func() (int64, error) {
			return seedLookup(ctx, s, seeds.Statuses, func(d string) StatusRow {
				return StatusRow{LookupRow{Description: d}}
			})
		}},
	}
	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return fmt.Errorf("repository.seed %s: %w", step.table, err)
		}
		if n > 0 {
			s.logger.Info(ctx, "lookup table seeded",
				logger.String("table", step.table),
				logger.Int64("rows", n),
			)
		}
	}
	return nil
}

// DB exposes the underlying gorm handle.
func (s *GormStore) DB() *gorm.DB { return s.db }

// Driver returns the configured driver name.
func (s *GormStore) Driver() string { return s.driver }

// Stats returns connection pool statistics.
func (s *GormStore) Stats() sql.DBStats {
	sqlDB, err := s.db.DB()
	if err != nil {
		return sql.DBStats{}
	}
	return sqlDB.Stats()
}

// Ping checks that the database answers.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("repository.ping: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("repository.ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("repository.close: %w", err)
	}
	return sqlDB.Close()
}

// observe records latency and failures of one store call.
func (s *GormStore) observe(op string, start time.Time, errp *error) {
	metrics.RecordRepositoryQueryLatency(op, float64(time.Since(start).Microseconds())/1000)
	if errp != nil && *errp != nil {
		metrics.RecordRepositoryError(op, errorKind(*errp))
	}
}

// Contacts

func (s *GormStore) ListContacts(ctx context.Context) (_ []model.Contact, err error) {
	const op = "list_contacts"
	defer s.observe(op, time.Now(), &err)

	var rows []ContactRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("repository."+op, err)
	}
	out := make([]model.Contact, 0, len(rows))
	for _, r := range rows {
		out = append(out, contactFromRow(r))
	}
	return out, nil
}

func (s *GormStore) GetContact(ctx context.Context, id int64) (_ model.Contact, err error) {
	const op = "get_contact"
	defer s.observe(op, time.Now(), &err)

	var row ContactRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return model.Contact{}, translate("repository."+op, err)
	}
	return contactFromRow(row), nil
}

func (s *GormStore) CreateContact(ctx context.Context, in model.ContactIn) (_ model.Contact, err error) {
	const op = "create_contact"
	defer s.observe(op, time.Now(), &err)

	row := contactToRow(in)
	res := s.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return model.Contact{}, translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return in.WithID(row.ID), nil
}

func (s *GormStore) UpdateContact(ctx context.Context, c model.Contact) (_ model.Contact, err error) {
	const op = "update_contact"
	defer s.observe(op, time.Now(), &err)

	res := s.db.WithContext(ctx).Model(&ContactRow{}).Where("id = ?", c.ID).Updates(contactColumns(c.ContactIn))
	if res.Error != nil {
		return model.Contact{}, translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return c, nil
}

func (s *GormStore) DeleteContact(ctx context.Context, id int64) (err error) {
	const op = "delete_contact"
	defer s.observe(op, time.Now(), &err)

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&ContactRow{})
	if res.Error != nil {
		return translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return nil
}

// Comments

func (s *GormStore) ListComments(ctx context.Context, contactID int64) (_ []model.Comment, err error) {
	const op = "list_comments"
	defer s.observe(op, time.Now(), &err)

	var rows []CommentRow
	if err := s.db.WithContext(ctx).Where("id_contact = ?", contactID).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("repository."+op, err)
	}
	out := make([]model.Comment, 0, len(rows))
	for _, r := range rows {
		out = append(out, commentFromRow(r))
	}
	return out, nil
}

func (s *GormStore) GetComment(ctx context.Context, id int64) (_ model.Comment, err error) {
	const op = "get_comment"
	defer s.observe(op, time.Now(), &err)

	var row CommentRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return model.Comment{}, translate("repository."+op, err)
	}
	return commentFromRow(row), nil
}

func (s *GormStore) CreateComment(ctx context.Context, in model.CommentIn) (_ model.Comment, err error) {
	const op = "create_comment"
	defer s.observe(op, time.Now(), &err)

	row := commentToRow(in)
	res := s.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return model.Comment{}, translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return in.WithID(row.ID), nil
}

func (s *GormStore) UpdateComment(ctx context.Context, c model.Comment) (_ model.Comment, err error) {
	const op = "update_comment"
	defer s.observe(op, time.Now(), &err)

	res := s.db.WithContext(ctx).Model(&CommentRow{}).Where("id = ?", c.ID).
		Updates(map[string]any{"comment": c.Comment})
	if res.Error != nil {
		return model.Comment{}, translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return c, nil
}

func (s *GormStore) DeleteComment(ctx context.Context, id int64) (err error) {
	const op = "delete_comment"
	defer s.observe(op, time.Now(), &err)

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&CommentRow{})
	if res.Error != nil {
		return translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return nil
}

// Tasks

// taskJoin selects tasks joined with their assigned user. The inner join
// drops tasks whose user is missing.
func (s *GormStore) taskJoin(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("tasks").
		Select("tasks.id, tasks.title, tasks.id_user, users.firstname, users.lastname, tasks.date_end, tasks.created_at").
		Joins("JOIN users ON users.id = tasks.id_user")
}

func (s *GormStore) ListTasks(ctx context.Context, contactID int64) (_ []model.TaskSummary, err error) {
	const op = "list_tasks"
	defer s.observe(op, time.Now(), &err)

	var rows []taskJoinRow
	if err := s.taskJoin(ctx).Where("tasks.id_contact = ?", contactID).Order("tasks.id").Scan(&rows).Error; err != nil {
		return nil, translate("repository."+op, err)
	}
	out := make([]model.TaskSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, taskSummaryFromRow(r))
	}
	return out, nil
}

func (s *GormStore) GetTask(ctx context.Context, id int64) (_ model.TaskDetail, err error) {
	const op = "get_task"
	defer s.observe(op, time.Now(), &err)

	var rows []taskJoinRow
	if err := s.taskJoin(ctx).Where("tasks.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return model.TaskDetail{}, translate("repository."+op, err)
	}
	if len(rows) == 0 {
		return model.TaskDetail{}, fmt.Errorf("repository.%s: %w", op, ErrNotFound)
	}
	return taskDetailFromRow(rows[0]), nil
}

func (s *GormStore) CreateTask(ctx context.Context, in model.TaskIn) (_ model.Task, err error) {
	const op = "create_task"
	defer s.observe(op, time.Now(), &err)

	row := taskToRow(in)
	res := s.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return model.Task{}, translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return in.WithID(row.ID), nil
}

func (s *GormStore) UpdateTask(ctx context.Context, t model.Task) (_ model.Task, err error) {
	const op = "update_task"
	defer s.observe(op, time.Now(), &err)

	res := s.db.WithContext(ctx).Model(&TaskRow{}).Where("id = ?", t.ID).Updates(taskColumns(t))
	if res.Error != nil {
		return model.Task{}, translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return t, nil
}

func (s *GormStore) DeleteTask(ctx context.Context, id int64) (err error) {
	const op = "delete_task"
	defer s.observe(op, time.Now(), &err)

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&TaskRow{})
	if res.Error != nil {
		return translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return nil
}

// Lookups

// lookupTable is implemented by the four vocabulary rows.
type lookupTable interface {
	ContactTypeRow | GenderRow | OriginRow | StatusRow
	lookup() model.Lookup
}

func listLookups[T lookupTable](ctx context.Context, s *GormStore, op string) (_ []model.Lookup, err error) {
	defer s.observe(op, time.Now(), &err)

	var rows []T
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("repository."+op, err)
	}
	out := make([]model.Lookup, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.lookup())
	}
	return out, nil
}

func seedLookup[T lookupTable](ctx context.Context, s *GormStore, descriptions []string, mk func(string) T) (int64, error) {
	if len(descriptions) == 0 {
		return 0, nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	rows := make([]T, 0, len(descriptions))
	for _, d := range descriptions {
		rows = append(rows, mk(d))
	}
	res := s.db.WithContext(ctx).Create(&rows)
	return res.RowsAffected, res.Error
}

func (s *GormStore) ListGenders(ctx context.Context) ([]model.Gender, error) {
	return listLookups[GenderRow](ctx, s, "list_genders")
}

func (s *GormStore) GetGender(ctx context.Context, id int64) (_ model.Gender, err error) {
	const op = "get_gender"
	defer s.observe(op, time.Now(), &err)

	var row GenderRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return model.Gender{}, translate("repository."+op, err)
	}
	return row.lookup(), nil
}

func (s *GormStore) CreateGender(ctx context.Context, in model.GenderIn) (_ model.Gender, err error) {
	const op = "create_gender"
	defer s.observe(op, time.Now(), &err)

	row := GenderRow{LookupRow{Description: in.Description}}
	res := s.db.WithContext(ctx).Create(&row)
	if res.Error != nil {
		return model.Gender{}, translate("repository."+op, res.Error)
	}
	metrics.RecordRepositoryRowsAffected(op, res.RowsAffected)
	return row.lookup(), nil
}

func (s *GormStore) ListContactTypes(ctx context.Context) ([]model.ContactType, error) {
	return listLookups[ContactTypeRow](ctx, s, "list_contact_types")
}

func (s *GormStore) ListOrigins(ctx context.Context) ([]model.Origin, error) {
	return listLookups[OriginRow](ctx, s, "list_origins")
}

func (s *GormStore) ListStatuses(ctx context.Context) ([]model.Status, error) {
	return listLookups[StatusRow](ctx, s, "list_statuses")
}

// Users

func (s *GormStore) ListUsers(ctx context.Context) (_ []model.User, err error) {
	const op = "list_users"
	defer s.observe(op, time.Now(), &err)

	var rows []UserRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("repository."+op, err)
	}
	out := make([]model.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, userFromRow(r))
	}
	return out, nil
}

func (s *GormStore) GetUser(ctx context.Context, id int64) (_ model.User, err error) {
	const op = "get_user"
	defer s.observe(op, time.Now(), &err)

	var row UserRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return model.User{}, translate("repository."+op, err)
	}
	return userFromRow(row), nil
}
