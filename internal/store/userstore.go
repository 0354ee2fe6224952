package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"uk.co.dudmesh.usermanager/internal/model"
)

type Config interface {
	DatabaseDriver() string
	DatabaseURL() string
}

type userstore struct {
	db *sqlx.DB
}

func New(config Config) (*userstore, error) {
	return Open(config.DatabaseDriver(), config.DatabaseURL())
}

func Open(driver, dsn string) (*userstore, error) {
	db, err := sqlx.Connect(driverName(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// every connection to an in-memory sqlite database gets its own copy
	if driver == "sqlite3" && (strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")) {
		db.SetMaxOpenConns(1)
	}

	datastore := &userstore{db}
	if err := datastore.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return datastore, nil
}

func (d *userstore) Close() error {
	return d.db.Close()
}

func (d *userstore) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return unavailable("pinging database", err)
	}
	return nil
}

func (d *userstore) createTables() error {
	_, err := d.db.Exec(`create table if not exists users(
		id              text not null primary key,
		created_at      timestamp not null,
		updated_at      timestamp null,
		name            text not null,
		email           text not null unique,
		age             integer not null default 0,
		password_hash   text not null,
		failed_attempts integer not null default 0,
		account_locked  boolean not null default false,
		profile_picture text null
	)`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}
	return nil
}

func (d *userstore) Create(ctx context.Context, user *model.User) error {
	res, err := d.db.NamedExecContext(ctx, `insert into users
		(id, created_at, name, email, age, password_hash, failed_attempts, account_locked, profile_picture)
		values(:id, :created_at, :name, :email, :age, :password_hash, :failed_attempts, :account_locked, :profile_picture)`, user)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrorDuplicateEmail
		}
		return unavailable("inserting user", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	} else if rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	}

	return nil
}

func (d *userstore) FindByID(ctx context.Context, id model.UserID) (*model.User, error) {
	return d.findOne(ctx, `select * from users where id = ?`, id)
}

func (d *userstore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return d.findOne(ctx, `select * from users where email = ?`, email)
}

func (d *userstore) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	err := d.db.GetContext(ctx, user, d.db.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, unavailable("fetching user", err)
	}
	return user, nil
}

func (d *userstore) List(ctx context.Context, params *model.ListUsersParams) ([]*model.User, error) {
	query, args := BuildListQuery(params)
	users := []*model.User{}
	if err := d.db.SelectContext(ctx, &users, d.db.Rebind(query), args...); err != nil {
		return nil, unavailable("listing users", err)
	}
	return users, nil
}

func (d *userstore) UpdateFields(ctx context.Context, id model.UserID, params *model.UpdateUserParams) (*model.User, error) {
	if params.IsEmpty() {
		return d.FindByID(ctx, id)
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}
	if params.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *params.Name)
	}
	if params.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *params.Email)
	}
	if params.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *params.Age)
	}
	if params.ProfilePicture != nil {
		sets = append(sets, "profile_picture = ?")
		args = append(args, *params.ProfilePicture)
	}
	args = append(args, id)

	query := "update users set " + strings.Join(sets, ", ") + " where id = ?"
	res, err := d.db.ExecContext(ctx, d.db.Rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrorDuplicateEmail
		}
		return nil, unavailable("updating user", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	return d.FindByID(ctx, id)
}

func (d *userstore) Delete(ctx context.Context, id model.UserID) error {
	res, err := d.db.ExecContext(ctx, d.db.Rebind(`delete from users where id = ?`), id)
	if err != nil {
		return unavailable("deleting user", err)
	}
	return expectOneRow(res)
}

// RecordFailedLogin increments the failure counter of an unlocked account and locks it once
// the counter reaches threshold. The read-modify-write is a single conditional statement so
// concurrent failures can neither under-count nor unlock.
func (d *userstore) RecordFailedLogin(ctx context.Context, id model.UserID, threshold int) (int, bool, error) {
	var attempts int
	var locked bool
	err := d.db.QueryRowxContext(ctx, d.db.Rebind(`update users set
		failed_attempts = failed_attempts + 1,
		account_locked = case when failed_attempts + 1 >= ? then true else false end
		where id = ? and account_locked = false
		returning failed_attempts, account_locked`), threshold, id).Scan(&attempts, &locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d.lockedOrMissing(ctx, id)
		}
		return 0, false, unavailable("recording failed login", err)
	}
	return attempts, locked, nil
}

// ResetFailedLogins clears the failure counter unless the account got locked in the meantime.
func (d *userstore) ResetFailedLogins(ctx context.Context, id model.UserID) error {
	res, err := d.db.ExecContext(ctx, d.db.Rebind(`update users set failed_attempts = 0 where id = ? and account_locked = false`), id)
	if err != nil {
		return unavailable("resetting failed logins", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	} else if rows == 0 {
		_, _, err := d.lockedOrMissing(ctx, id)
		return err
	}
	return nil
}

func (d *userstore) lockedOrMissing(ctx context.Context, id model.UserID) (int, bool, error) {
	user, err := d.FindByID(ctx, id)
	if err != nil {
		return 0, false, err
	}
	return user.FailedAttempts, true, model.ErrorAccountLocked
}

func expectOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrorUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func unavailable(action string, err error) error {
	return fmt.Errorf("%s: %w: %w", action, model.ErrorStoreUnavailable, err)
}
