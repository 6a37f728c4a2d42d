// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pokereview/internal/core/entity"
	"github.com/taibuivan/pokereview/internal/platform/database/schema"
	"github.com/taibuivan/pokereview/internal/platform/postgres"
)

// Compile-time contract assertion.
var _ Store = (*PostgresStore)(nil)

// # PostgreSQL Backend

// PostgresStore maps every [Store.Atomic] unit of work onto one pgx transaction.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an established pool. The pool is owned by the store
// and closed by [PostgresStore.Close].
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Atomic implements [Store].
func (s *PostgresStore) Atomic(context context.Context, fn func(tx Tx) error) error {

	// Start Transaction
	transaction, err := s.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}

	// Rollback is a no-op once Commit has succeeded
	defer transaction.Rollback(context)

	if err := fn(&postgresTx{tx: transaction}); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}

// Ping implements [Store].
func (s *PostgresStore) Ping(context context.Context) error {
	return postgres.Ping(context, s.pool)
}

// Close implements [Store].
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// # Transaction View

type postgresTx struct {
	tx pgx.Tx
}

func (t *postgresTx) Pokemon() Table[entity.Pokemon] {
	return &pgTable[entity.Pokemon]{tx: t.tx, mapping: pokemonMapping}
}

func (t *postgresTx) Categories() Table[entity.Category] {
	return &pgTable[entity.Category]{tx: t.tx, mapping: categoryMapping}
}

func (t *postgresTx) Owners() Table[entity.Owner] {
	return &pgTable[entity.Owner]{tx: t.tx, mapping: ownerMapping}
}

func (t *postgresTx) Countries() Table[entity.Country] {
	return &pgTable[entity.Country]{tx: t.tx, mapping: countryMapping}
}

func (t *postgresTx) Reviews() Table[entity.Review] {
	return &pgTable[entity.Review]{tx: t.tx, mapping: reviewMapping}
}

func (t *postgresTx) Reviewers() Table[entity.Reviewer] {
	return &pgTable[entity.Reviewer]{tx: t.tx, mapping: reviewerMapping}
}

func (t *postgresTx) PokemonCategories() LinkTable {
	return &pgLinks{
		tx:    t.tx,
		table: schema.PokemonCategory.Table,
		left:  schema.PokemonCategory.PokemonID,
		right: schema.PokemonCategory.CategoryID,
	}
}

func (t *postgresTx) PokemonOwners() LinkTable {
	return &pgLinks{
		tx:    t.tx,
		table: schema.PokemonOwner.Table,
		left:  schema.PokemonOwner.PokemonID,
		right: schema.PokemonOwner.OwnerID,
	}
}

// # Table Mapping

// tableMapping describes how one entity family maps onto its SQL table.
//
// columns lists every column with the identity first; values returns the
// non-identity column values in the same order.
type tableMapping[E entity.Record[E]] struct {
	table   string
	columns []string
	scan    func(row pgx.Row) (E, error)
	values  func(record E) []any
}

var pokemonMapping = tableMapping[entity.Pokemon]{
	table:   schema.CatalogPokemon.Table,
	columns: schema.CatalogPokemon.Columns(),
	scan: func(row pgx.Row) (entity.Pokemon, error) {
		var p entity.Pokemon
		err := row.Scan(&p.ID, &p.Name, &p.BirthDate)
		return p, err
	},
	values: func(p entity.Pokemon) []any { return []any{p.Name, p.BirthDate} },
}

var categoryMapping = tableMapping[entity.Category]{
	table:   schema.CatalogCategory.Table,
	columns: schema.CatalogCategory.Columns(),
	scan: func(row pgx.Row) (entity.Category, error) {
		var c entity.Category
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	},
	values: func(c entity.Category) []any { return []any{c.Name} },
}

var countryMapping = tableMapping[entity.Country]{
	table:   schema.CatalogCountry.Table,
	columns: schema.CatalogCountry.Columns(),
	scan: func(row pgx.Row) (entity.Country, error) {
		var c entity.Country
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	},
	values: func(c entity.Country) []any { return []any{c.Name} },
}

var ownerMapping = tableMapping[entity.Owner]{
	table:   schema.CatalogOwner.Table,
	columns: schema.CatalogOwner.Columns(),
	scan: func(row pgx.Row) (entity.Owner, error) {
		var o entity.Owner
		err := row.Scan(&o.ID, &o.FirstName, &o.LastName, &o.CountryID)
		return o, err
	},
	values: func(o entity.Owner) []any { return []any{o.FirstName, o.LastName, o.CountryID} },
}

var reviewMapping = tableMapping[entity.Review]{
	table:   schema.SocialReview.Table,
	columns: schema.SocialReview.Columns(),
	scan: func(row pgx.Row) (entity.Review, error) {
		var r entity.Review
		err := row.Scan(&r.ID, &r.Title, &r.Text, &r.Rating, &r.PokemonID, &r.ReviewerID)
		return r, err
	},
	values: func(r entity.Review) []any {
		return []any{r.Title, r.Text, r.Rating, r.PokemonID, r.ReviewerID}
	},
}

var reviewerMapping = tableMapping[entity.Reviewer]{
	table:   schema.SocialReviewer.Table,
	columns: schema.SocialReviewer.Columns(),
	scan: func(row pgx.Row) (entity.Reviewer, error) {
		var r entity.Reviewer
		err := row.Scan(&r.ID, &r.FirstName, &r.LastName)
		return r, err
	},
	values: func(r entity.Reviewer) []any { return []any{r.FirstName, r.LastName} },
}

// # Generic Table

// pgTable answers out-of-range identities as missing without a round trip,
// since the INTEGER columns cannot encode them.
type pgTable[E entity.Record[E]] struct {
	tx      pgx.Tx
	mapping tableMapping[E]
}

func (t *pgTable[E]) selectClause() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.mapping.columns, ", "), t.mapping.table)
}

func (t *pgTable[E]) Get(context context.Context, id int) (E, error) {
	if !ValidID(id) {
		var zero E
		return zero, ErrNotFound
	}

	query := t.selectClause() + fmt.Sprintf(" WHERE %s = $1", t.mapping.columns[0])

	record, err := t.mapping.scan(t.tx.QueryRow(context, query, id))
	if err != nil {
		var zero E
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("store: get %s: %w", t.mapping.table, err)
	}
	return record, nil
}

func (t *pgTable[E]) Exists(context context.Context, id int) (bool, error) {
	if !ValidID(id) {
		return false, nil
	}

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", t.mapping.table, t.mapping.columns[0])

	var exists bool
	if err := t.tx.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("store: exists %s: %w", t.mapping.table, err)
	}
	return exists, nil
}

func (t *pgTable[E]) List(context context.Context) ([]E, error) {
	return t.Scan(context, func(E) bool { return true })
}

// Scan filters in process. Identities are assigned by an ascending identity
// column, so ordering by id reproduces insertion order.
func (t *pgTable[E]) Scan(context context.Context, match func(E) bool) ([]E, error) {
	query := t.selectClause() + fmt.Sprintf(" ORDER BY %s", t.mapping.columns[0])

	rows, err := t.tx.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", t.mapping.table, err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (E, error) {
		return t.mapping.scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", t.mapping.table, err)
	}

	result := make([]E, 0, len(records))
	for _, record := range records {
		if match(record) {
			result = append(result, record)
		}
	}
	return result, nil
}

func (t *pgTable[E]) Insert(context context.Context, record E) (int, error) {
	columns := t.mapping.columns[1:]
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.mapping.table, strings.Join(columns, ", "), strings.Join(placeholders, ", "), t.mapping.columns[0])

	var id int
	if err := t.tx.QueryRow(context, query, t.mapping.values(record)...).Scan(&id); err != nil {
		return 0, fmt.Errorf("store: insert %s: %w", t.mapping.table, err)
	}
	return id, nil
}

func (t *pgTable[E]) Replace(context context.Context, record E) error {
	if !ValidID(record.Identity()) {
		return ErrNotFound
	}

	columns := t.mapping.columns[1:]
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
		t.mapping.table, strings.Join(assignments, ", "), t.mapping.columns[0])

	args := append([]any{record.Identity()}, t.mapping.values(record)...)
	tag, err := t.tx.Exec(context, query, args...)
	if err != nil {
		return fmt.Errorf("store: replace %s: %w", t.mapping.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *pgTable[E]) Remove(context context.Context, id int) error {
	if !ValidID(id) {
		return ErrNotFound
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.mapping.table, t.mapping.columns[0])

	tag, err := t.tx.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("store: remove %s: %w", t.mapping.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// # Join Tables

type pgLinks struct {
	tx    pgx.Tx
	table string
	left  string
	right string
}

func (l *pgLinks) Link(context context.Context, left, right int) error {
	if !ValidID(left) || !ValidID(right) {
		return ErrNotFound
	}

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", l.table, l.left, l.right)
	if _, err := l.tx.Exec(context, query, left, right); err != nil {
		return fmt.Errorf("store: link %s: %w", l.table, err)
	}
	return nil
}

func (l *pgLinks) Unlink(context context.Context, left, right int) error {
	if !ValidID(left) || !ValidID(right) {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2", l.table, l.left, l.right)
	if _, err := l.tx.Exec(context, query, left, right); err != nil {
		return fmt.Errorf("store: unlink %s: %w", l.table, err)
	}
	return nil
}

func (l *pgLinks) UnlinkLeft(context context.Context, left int) error {
	return l.deleteWhere(context, l.left, left)
}

func (l *pgLinks) UnlinkRight(context context.Context, right int) error {
	return l.deleteWhere(context, l.right, right)
}

func (l *pgLinks) deleteWhere(context context.Context, column string, id int) error {
	if !ValidID(id) {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", l.table, column)
	if _, err := l.tx.Exec(context, query, id); err != nil {
		return fmt.Errorf("store: unlink %s: %w", l.table, err)
	}
	return nil
}

func (l *pgLinks) Rights(context context.Context, left int) ([]int, error) {
	return l.selectPeers(context, l.right, l.left, left)
}

func (l *pgLinks) Lefts(context context.Context, right int) ([]int, error) {
	return l.selectPeers(context, l.left, l.right, right)
}

func (l *pgLinks) selectPeers(context context.Context, want, by string, id int) ([]int, error) {
	if !ValidID(id) {
		return []int{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s", want, l.table, by, want)

	rows, err := l.tx.Query(context, query, id)
	if err != nil {
		return nil, fmt.Errorf("store: peers %s: %w", l.table, err)
	}

	peers, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("store: peers %s: %w", l.table, err)
	}
	return peers, nil
}
