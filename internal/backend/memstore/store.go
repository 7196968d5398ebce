// Package memstore is an in-process backend used for local runs without a
// hosted project and as the fake backend in service tests. It reports missing
// tables, columns, functions and buckets with the same codes Postgres and
// Supabase Storage use.
package memstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/backend"
)

// Calls counts remote operations by kind.
type Calls struct {
	Selects int
	Inserts int
	Uploads int
	RPCs    int
}

// Total returns the number of operations of any kind.
func (c Calls) Total() int {
	return c.Selects + c.Inserts + c.Uploads + c.RPCs
}

type table struct {
	columns  map[string]bool
	defaults backend.Row
	rows     []backend.Row
}

// StoredObject is a blob kept in a bucket.
type StoredObject struct {
	Data        []byte
	ContentType string
}

// Store implements backend.TableStore, backend.BlobStore, backend.BucketChecker
// and backend.Authenticator in memory.
type Store struct {
	mu        sync.Mutex
	baseURL   string
	tables    map[string]*table
	buckets   map[string]map[string]StoredObject
	functions map[string]bool
	users     map[string]backend.User
	failures  map[string]error
	calls     Calls
	clock     func() time.Time
	last      time.Time
}

// New creates an empty store. baseURL prefixes public object URLs.
func New(baseURL string) *Store {
	return &Store{
		baseURL:   strings.TrimRight(baseURL, "/"),
		tables:    map[string]*table{},
		buckets:   map[string]map[string]StoredObject{},
		functions: map[string]bool{},
		users:     map[string]backend.User{},
		failures:  map[string]error{},
		clock:     time.Now,
	}
}

var (
	_ backend.TableStore    = (*Store)(nil)
	_ backend.BlobStore     = (*Store)(nil)
	_ backend.BucketChecker = (*Store)(nil)
	_ backend.Authenticator = (*Store)(nil)
)

// CreateTable declares a table with its columns. id, created_at and defaults'
// keys are always columns.
func (s *Store) CreateTable(name string, columns []string, defaults backend.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cols := map[string]bool{"id": true, "created_at": true}
	for _, c := range columns {
		cols[c] = true
	}
	for k := range defaults {
		cols[k] = true
	}
	s.tables[name] = &table{columns: cols, defaults: defaults}
}

// CreateBucket declares a bucket.
func (s *Store) CreateBucket(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buckets[name]; !ok {
		s.buckets[name] = map[string]StoredObject{}
	}
}

// CreateFunction declares an RPC function.
func (s *Store) CreateFunction(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.functions[name] = true
}

// AddUser registers an access token for GetUser.
func (s *Store) AddUser(token string, user backend.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[token] = user
}

// FailOn makes every operation on target (table, bucket or function) return err.
func (s *Store) FailOn(target string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[target] = err
}

// Calls returns a snapshot of the operation counters.
func (s *Store) Calls() Calls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Object returns a stored blob.
func (s *Store) Object(bucket, path string) (StoredObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.buckets[bucket][path]
	return obj, ok
}

// SelectByOwner filters by owner and sorts by the order column.
func (s *Store) SelectByOwner(ctx context.Context, q backend.Query) ([]backend.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Selects++

	if err := s.failures[q.Table]; err != nil {
		return nil, err
	}
	t, ok := s.tables[q.Table]
	if !ok {
		return nil, missingRelation(q.Table)
	}
	for _, c := range q.Columns {
		if !t.columns[c] {
			return nil, missingColumn(q.Table, c)
		}
	}
	if q.OwnerColumn != "" && !t.columns[q.OwnerColumn] {
		return nil, missingColumn(q.Table, q.OwnerColumn)
	}

	var out []backend.Row
	for _, row := range t.rows {
		if q.OwnerColumn != "" && fmt.Sprint(row[q.OwnerColumn]) != q.OwnerID.String() {
			continue
		}
		out = append(out, project(row, q.Columns))
	}

	if q.OrderColumn != "" {
		// created_at is stored as fixed-width RFC3339 UTC, so string order is time order.
		sort.SliceStable(out, func(i, j int) bool {
			a, b := fmt.Sprint(out[i][q.OrderColumn]), fmt.Sprint(out[j][q.OrderColumn])
			if q.Descending {
				return a > b
			}
			return a < b
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Insert validates columns, fills id, created_at and defaults, and stores the row.
func (s *Store) Insert(ctx context.Context, name string, row backend.Row) (backend.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Inserts++

	if err := s.failures[name]; err != nil {
		return nil, err
	}
	t, ok := s.tables[name]
	if !ok {
		return nil, missingRelation(name)
	}
	for c := range row {
		if !t.columns[c] {
			return nil, missingColumn(name, c)
		}
	}

	stored := backend.Row{}
	for k, v := range t.defaults {
		stored[k] = v
	}
	for k, v := range row {
		stored[k] = v
	}
	if _, ok := stored["id"]; !ok {
		stored["id"] = uuid.NewString()
	}
	stored["created_at"] = s.nextTimestamp().Format(time.RFC3339Nano)

	t.rows = append(t.rows, stored)
	return project(stored, nil), nil
}

// CallRPC succeeds for declared functions.
func (s *Store) CallRPC(ctx context.Context, fn string, _ map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.RPCs++

	if err := s.failures[fn]; err != nil {
		return err
	}
	if !s.functions[fn] {
		return backend.NewError("42883", fmt.Sprintf("function %s() does not exist", fn), http.StatusNotFound)
	}
	return nil
}

// Upload stores the object body.
func (s *Store) Upload(ctx context.Context, obj backend.Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return fmt.Errorf("memstore: read body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Uploads++

	if err := s.failures[obj.Bucket]; err != nil {
		return err
	}
	bucket, ok := s.buckets[obj.Bucket]
	if !ok {
		return backend.NewError("404", "Bucket not found", http.StatusBadRequest)
	}
	if _, exists := bucket[obj.Path]; exists && !obj.Upsert {
		return backend.NewError("409", "The resource already exists", http.StatusConflict)
	}
	bucket[obj.Path] = StoredObject{Data: bytes.Clone(data), ContentType: obj.ContentType}
	return nil
}

// PublicURL returns {baseURL}/{bucket}/{path}.
func (s *Store) PublicURL(bucket, path string) string {
	return s.baseURL + "/" + bucket + "/" + strings.TrimLeft(path, "/")
}

// CheckBucket reports a missing bucket the way Storage does.
func (s *Store) CheckBucket(ctx context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buckets[bucket]; !ok {
		return backend.NewError("404", "Bucket not found", http.StatusNotFound)
	}
	return nil
}

// GetUser resolves tokens registered with AddUser.
func (s *Store) GetUser(ctx context.Context, accessToken string) (*backend.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[accessToken]
	if !ok {
		return nil, backend.NewError("bad_jwt", "invalid JWT", http.StatusUnauthorized)
	}
	return &user, nil
}

// nextTimestamp keeps created_at strictly increasing so ordering is stable.
func (s *Store) nextTimestamp() time.Time {
	now := s.clock().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

func project(row backend.Row, columns []string) backend.Row {
	out := backend.Row{}
	if len(columns) == 0 {
		for k, v := range row {
			out[k] = v
		}
		return out
	}
	for _, c := range columns {
		out[c] = row[c]
	}
	return out
}

func missingRelation(name string) error {
	return backend.NewError("42P01", fmt.Sprintf("relation \"public.%s\" does not exist", name), http.StatusNotFound)
}

func missingColumn(table, column string) error {
	return backend.NewError("42703", fmt.Sprintf("column %s.%s does not exist", table, column), http.StatusBadRequest)
}
