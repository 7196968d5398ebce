// Package backend defines the contracts of the hosted backend the gateway
// delegates to: tables, buckets and auth. Drivers live in subpackages.
package backend

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Row is one remote row keyed by remote column names.
type Row map[string]any

// Query describes an owner-filtered read.
type Query struct {
	Table       string
	Columns     []string
	OwnerColumn string
	OwnerID     uuid.UUID
	OrderColumn string
	Descending  bool
	Limit       int
}

// Object is a blob to be stored in a bucket.
type Object struct {
	Bucket      string
	Path        string
	Body        io.Reader
	Size        int64
	ContentType string
	Upsert      bool
}

// User is the authenticated identity as reported by the auth service.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// TableStore is the relational side of the backend.
type TableStore interface {
	SelectByOwner(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	CallRPC(ctx context.Context, fn string, args map[string]any) error
}

// BlobStore is the object storage side of the backend.
type BlobStore interface {
	Upload(ctx context.Context, obj Object) error
	PublicURL(bucket, path string) string
}

// BucketChecker is implemented by blob stores that can tell whether a bucket exists
// without writing to it.
type BucketChecker interface {
	CheckBucket(ctx context.Context, bucket string) error
}

// Authenticator resolves an access token into a user.
type Authenticator interface {
	GetUser(ctx context.Context, accessToken string) (*User, error)
}

type accessTokenKey struct{}

// WithAccessToken attaches the caller's access token so drivers can forward it
// and row-level security applies to the real user.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken returns the token attached by WithAccessToken.
func AccessToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
