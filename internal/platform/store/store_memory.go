// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/pokereview/internal/core/entity"
)

// Compile-time contract assertion.
var _ Store = (*MemoryStore)(nil)

// # In-Memory Backend

// MemoryStore keeps all state in process memory.
//
// # Concurrency
//
// Units of work are serialised by a single mutex. Reads inside a unit see the
// live state directly. The first write clones the state, and that clone
// replaces the live state only when the callback succeeds. Read-only units
// therefore never copy or persist anything.
type MemoryStore struct {
	mu    sync.Mutex
	state memoryState

	// afterCommit runs under the lock with the freshly committed state.
	afterCommit func(ctx context.Context, snapshot Snapshot) error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

// Atomic implements [Store].
func (s *MemoryStore) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memoryTx{live: &s.state}
	if err := fn(tx); err != nil {
		return err
	}

	if tx.working == nil {
		return nil
	}

	if s.afterCommit != nil {
		if err := s.afterCommit(ctx, tx.working.snapshot()); err != nil {
			return err
		}
	}

	s.state = *tx.working
	return nil
}

// Ping implements [Store]; memory is always reachable.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close implements [Store].
func (s *MemoryStore) Close() {}

// ExportState returns a deep copy of the committed state.
func (s *MemoryStore) ExportState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.snapshot()
}

// ImportState replaces the committed state with snapshot.
func (s *MemoryStore) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snapshot)
}

// # State

type memoryState struct {
	pokemon    *memTable[entity.Pokemon]
	categories *memTable[entity.Category]
	owners     *memTable[entity.Owner]
	countries  *memTable[entity.Country]
	reviews    *memTable[entity.Review]
	reviewers  *memTable[entity.Reviewer]

	pokemonCategories *memLinks
	pokemonOwners     *memLinks
}

func newMemoryState() memoryState {
	return memoryState{
		pokemon:           newMemTable[entity.Pokemon](),
		categories:        newMemTable[entity.Category](),
		owners:            newMemTable[entity.Owner](),
		countries:         newMemTable[entity.Country](),
		reviews:           newMemTable[entity.Review](),
		reviewers:         newMemTable[entity.Reviewer](),
		pokemonCategories: newMemLinks(),
		pokemonOwners:     newMemLinks(),
	}
}

func (s memoryState) clone() memoryState {
	return memoryState{
		pokemon:           s.pokemon.clone(),
		categories:        s.categories.clone(),
		owners:            s.owners.clone(),
		countries:         s.countries.clone(),
		reviews:           s.reviews.clone(),
		reviewers:         s.reviewers.clone(),
		pokemonCategories: s.pokemonCategories.clone(),
		pokemonOwners:     s.pokemonOwners.clone(),
	}
}

// Snapshot is a serialisable copy of the whole store.
type Snapshot struct {
	Pokemon           TableSnapshot[entity.Pokemon]  `json:"pokemon"`
	Categories        TableSnapshot[entity.Category] `json:"categories"`
	Owners            TableSnapshot[entity.Owner]    `json:"owners"`
	Countries         TableSnapshot[entity.Country]  `json:"countries"`
	Reviews           TableSnapshot[entity.Review]   `json:"reviews"`
	Reviewers         TableSnapshot[entity.Reviewer] `json:"reviewers"`
	PokemonCategories [][2]int                       `json:"pokemon_categories"`
	PokemonOwners     [][2]int                       `json:"pokemon_owners"`
}

// TableSnapshot holds rows in insertion order plus the identity sequence.
type TableSnapshot[E any] struct {
	NextID int `json:"next_id"`
	Rows   []E `json:"rows"`
}

func (s memoryState) snapshot() Snapshot {
	return Snapshot{
		Pokemon:           s.pokemon.snapshot(),
		Categories:        s.categories.snapshot(),
		Owners:            s.owners.snapshot(),
		Countries:         s.countries.snapshot(),
		Reviews:           s.reviews.snapshot(),
		Reviewers:         s.reviewers.snapshot(),
		PokemonCategories: s.pokemonCategories.sortedPairs(),
		PokemonOwners:     s.pokemonOwners.sortedPairs(),
	}
}

func stateFromSnapshot(snapshot Snapshot) memoryState {
	return memoryState{
		pokemon:           memTableFromSnapshot(snapshot.Pokemon),
		categories:        memTableFromSnapshot(snapshot.Categories),
		owners:            memTableFromSnapshot(snapshot.Owners),
		countries:         memTableFromSnapshot(snapshot.Countries),
		reviews:           memTableFromSnapshot(snapshot.Reviews),
		reviewers:         memTableFromSnapshot(snapshot.Reviewers),
		pokemonCategories: memLinksFromPairs(snapshot.PokemonCategories),
		pokemonOwners:     memLinksFromPairs(snapshot.PokemonOwners),
	}
}

// # Transaction View

// memoryTx reads from live until the first write, which switches it to a
// private working copy.
type memoryTx struct {
	live    *memoryState
	working *memoryState
}

func (tx *memoryTx) current() *memoryState {
	if tx.working != nil {
		return tx.working
	}
	return tx.live
}

func (tx *memoryTx) writable() *memoryState {
	if tx.working == nil {
		working := tx.live.clone()
		tx.working = &working
	}
	return tx.working
}

func (tx *memoryTx) Pokemon() Table[entity.Pokemon] {
	return txTable[entity.Pokemon]{tx: tx, pick: func(s *memoryState) *memTable[entity.Pokemon] { return s.pokemon }}
}

func (tx *memoryTx) Categories() Table[entity.Category] {
	return txTable[entity.Category]{tx: tx, pick: func(s *memoryState) *memTable[entity.Category] { return s.categories }}
}

func (tx *memoryTx) Owners() Table[entity.Owner] {
	return txTable[entity.Owner]{tx: tx, pick: func(s *memoryState) *memTable[entity.Owner] { return s.owners }}
}

func (tx *memoryTx) Countries() Table[entity.Country] {
	return txTable[entity.Country]{tx: tx, pick: func(s *memoryState) *memTable[entity.Country] { return s.countries }}
}

func (tx *memoryTx) Reviews() Table[entity.Review] {
	return txTable[entity.Review]{tx: tx, pick: func(s *memoryState) *memTable[entity.Review] { return s.reviews }}
}

func (tx *memoryTx) Reviewers() Table[entity.Reviewer] {
	return txTable[entity.Reviewer]{tx: tx, pick: func(s *memoryState) *memTable[entity.Reviewer] { return s.reviewers }}
}

func (tx *memoryTx) PokemonCategories() LinkTable {
	return txLinks{tx: tx, pick: func(s *memoryState) *memLinks { return s.pokemonCategories }}
}

func (tx *memoryTx) PokemonOwners() LinkTable {
	return txLinks{tx: tx, pick: func(s *memoryState) *memLinks { return s.pokemonOwners }}
}

// txTable routes reads to the current state and writes to the working copy.
type txTable[E entity.Record[E]] struct {
	tx   *memoryTx
	pick func(*memoryState) *memTable[E]
}

func (t txTable[E]) Get(ctx context.Context, id int) (E, error) {
	return t.pick(t.tx.current()).Get(ctx, id)
}

func (t txTable[E]) Exists(ctx context.Context, id int) (bool, error) {
	return t.pick(t.tx.current()).Exists(ctx, id)
}

func (t txTable[E]) List(ctx context.Context) ([]E, error) {
	return t.pick(t.tx.current()).List(ctx)
}

func (t txTable[E]) Scan(ctx context.Context, match func(E) bool) ([]E, error) {
	return t.pick(t.tx.current()).Scan(ctx, match)
}

func (t txTable[E]) Insert(ctx context.Context, record E) (int, error) {
	return t.pick(t.tx.writable()).Insert(ctx, record)
}

// Replace and Remove check presence on the current state first so a miss
// does not mark the unit as dirty.
func (t txTable[E]) Replace(ctx context.Context, record E) error {
	if _, ok := t.pick(t.tx.current()).rows[record.Identity()]; !ok {
		return ErrNotFound
	}
	return t.pick(t.tx.writable()).Replace(ctx, record)
}

func (t txTable[E]) Remove(ctx context.Context, id int) error {
	if _, ok := t.pick(t.tx.current()).rows[id]; !ok {
		return ErrNotFound
	}
	return t.pick(t.tx.writable()).Remove(ctx, id)
}

type txLinks struct {
	tx   *memoryTx
	pick func(*memoryState) *memLinks
}

func (l txLinks) Link(ctx context.Context, left, right int) error {
	return l.pick(l.tx.writable()).Link(ctx, left, right)
}

func (l txLinks) Unlink(ctx context.Context, left, right int) error {
	return l.pick(l.tx.writable()).Unlink(ctx, left, right)
}

func (l txLinks) UnlinkLeft(ctx context.Context, left int) error {
	return l.pick(l.tx.writable()).UnlinkLeft(ctx, left)
}

func (l txLinks) UnlinkRight(ctx context.Context, right int) error {
	return l.pick(l.tx.writable()).UnlinkRight(ctx, right)
}

func (l txLinks) Rights(ctx context.Context, left int) ([]int, error) {
	return l.pick(l.tx.current()).Rights(ctx, left)
}

func (l txLinks) Lefts(ctx context.Context, right int) ([]int, error) {
	return l.pick(l.tx.current()).Lefts(ctx, right)
}

// # Tables

// memTable stores rows by identity and remembers insertion order.
type memTable[E entity.Record[E]] struct {
	rows   map[int]E
	order  []int
	nextID int
}

func newMemTable[E entity.Record[E]]() *memTable[E] {
	return &memTable[E]{rows: make(map[int]E), nextID: 1}
}

func memTableFromSnapshot[E entity.Record[E]](snapshot TableSnapshot[E]) *memTable[E] {
	table := newMemTable[E]()
	for _, row := range snapshot.Rows {
		table.rows[row.Identity()] = row
		table.order = append(table.order, row.Identity())
		if row.Identity() >= table.nextID {
			table.nextID = row.Identity() + 1
		}
	}
	if snapshot.NextID > table.nextID {
		table.nextID = snapshot.NextID
	}
	return table
}

// clone copies the table. Rows are value types with no shared slices
// because callers store scalar rows only.
func (t *memTable[E]) clone() *memTable[E] {
	rows := make(map[int]E, len(t.rows))
	for id, row := range t.rows {
		rows[id] = row
	}
	return &memTable[E]{rows: rows, order: slices.Clone(t.order), nextID: t.nextID}
}

func (t *memTable[E]) snapshot() TableSnapshot[E] {
	rows := make([]E, 0, len(t.order))
	for _, id := range t.order {
		rows = append(rows, t.rows[id])
	}
	return TableSnapshot[E]{NextID: t.nextID, Rows: rows}
}

func (t *memTable[E]) Get(_ context.Context, id int) (E, error) {
	row, ok := t.rows[id]
	if !ok {
		var zero E
		return zero, ErrNotFound
	}
	return row, nil
}

func (t *memTable[E]) Exists(_ context.Context, id int) (bool, error) {
	_, ok := t.rows[id]
	return ok, nil
}

func (t *memTable[E]) List(ctx context.Context) ([]E, error) {
	return t.Scan(ctx, func(E) bool { return true })
}

func (t *memTable[E]) Scan(_ context.Context, match func(E) bool) ([]E, error) {
	result := make([]E, 0)
	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			result = append(result, row)
		}
	}
	return result, nil
}

func (t *memTable[E]) Insert(_ context.Context, record E) (int, error) {
	id := t.nextID
	t.nextID++
	t.rows[id] = record.WithIdentity(id)
	t.order = append(t.order, id)
	return id, nil
}

func (t *memTable[E]) Replace(_ context.Context, record E) error {
	id := record.Identity()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	t.rows[id] = record
	return nil
}

func (t *memTable[E]) Remove(_ context.Context, id int) error {
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(existing int) bool { return existing == id })
	return nil
}

// # Links

type pair struct{ left, right int }

type memLinks struct {
	pairs map[pair]struct{}
}

func newMemLinks() *memLinks {
	return &memLinks{pairs: make(map[pair]struct{})}
}

func memLinksFromPairs(pairs [][2]int) *memLinks {
	links := newMemLinks()
	for _, p := range pairs {
		links.pairs[pair{left: p[0], right: p[1]}] = struct{}{}
	}
	return links
}

func (l *memLinks) clone() *memLinks {
	cloned := newMemLinks()
	for p := range l.pairs {
		cloned.pairs[p] = struct{}{}
	}
	return cloned
}

// sortedPairs returns every pair sorted by (left, right) for stable snapshots.
func (l *memLinks) sortedPairs() [][2]int {
	result := make([][2]int, 0, len(l.pairs))
	for p := range l.pairs {
		result = append(result, [2]int{p.left, p.right})
	}
	slices.SortFunc(result, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return result
}

func (l *memLinks) Link(_ context.Context, left, right int) error {
	l.pairs[pair{left: left, right: right}] = struct{}{}
	return nil
}

func (l *memLinks) Unlink(_ context.Context, left, right int) error {
	delete(l.pairs, pair{left: left, right: right})
	return nil
}

func (l *memLinks) UnlinkLeft(_ context.Context, left int) error {
	for p := range l.pairs {
		if p.left == left {
			delete(l.pairs, p)
		}
	}
	return nil
}

func (l *memLinks) UnlinkRight(_ context.Context, right int) error {
	for p := range l.pairs {
		if p.right == right {
			delete(l.pairs, p)
		}
	}
	return nil
}

func (l *memLinks) Rights(_ context.Context, left int) ([]int, error) {
	result := make([]int, 0)
	for p := range l.pairs {
		if p.left == left {
			result = append(result, p.right)
		}
	}
	slices.Sort(result)
	return result, nil
}

func (l *memLinks) Lefts(_ context.Context, right int) ([]int, error) {
	result := make([]int, 0)
	for p := range l.pairs {
		if p.right == right {
			result = append(result, p.left)
		}
	}
	slices.Sort(result)
	return result, nil
}
