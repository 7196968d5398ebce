package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ID is a remote primary key. Deployments use uuid or bigint keys, so both
// JSON strings and numbers are accepted.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("models: id %s: %w", b, err)
		}
		*id = ID(n.String())
	}
	return nil
}

// Timestamp accepts the timestamp layouts Postgres and PostgREST emit.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05.999999",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("models: timestamp %s: %w", b, err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("models: unknown timestamp layout %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}

// Number is a numeric column that some deployments store as text.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("models: number %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Logical field names shared by every module's candidates.
const (
	FieldID          = "id"
	FieldCreatedAt   = "created_at"
	FieldOwner       = "user_id"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldPhoto       = "photo"
	FieldStatus      = "status"
	FieldResponse    = "response"
	FieldRespondedAt = "responded_at"

	FieldRequestType = "request_type"

	FieldToken   = "token"
	FieldValue   = "value"
	FieldKmHours = "km_hours"
)

// Record is the part every submitted item shares. Records are created by the
// gateway and never updated by it; status and response change out of band.
type Record struct {
	ID          ID         `json:"id"`
	CreatedAt   Timestamp  `json:"created_at"`
	OwnerID     *ID        `json:"user_id,omitempty"`
	Description string     `json:"description"`
	Location    *string    `json:"location,omitempty"`
	Latitude    *Number    `json:"latitude,omitempty"`
	Longitude   *Number    `json:"longitude,omitempty"`
	Photo       *string    `json:"photo,omitempty"`
	Status      string     `json:"status"`
	Response    *string    `json:"response,omitempty"`
	RespondedAt *Timestamp `json:"responded_at,omitempty"`
}

// DamageReport is a report of damage to equipment or a vehicle. Photo holds
// the public URL.
type DamageReport struct {
	Record
}

// MaintenanceRequest asks the mechanics to look at a machine. Photo holds the
// bucket path; the URL is resolved when listing.
type MaintenanceRequest struct {
	Record
}

// OrderRequest is a time-off, vacation, tool or other request.
type OrderRequest struct {
	Record
	RequestType string `json:"request_type"`
}

// Fueling is one refuelling log entry.
type Fueling struct {
	ID        ID        `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	OwnerID   *ID       `json:"user_id,omitempty"`
	Token     ID        `json:"token"`
	Value     Number    `json:"value"`
	KmHours   Number    `json:"km_hours"`
	Photo     *string   `json:"photo,omitempty"`
	Latitude  *Number   `json:"latitude,omitempty"`
	Longitude *Number   `json:"longitude,omitempty"`
}

// Decode converts a logical row into one of the record types.
func Decode[T any](row map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(row)
	if err != nil {
		return out, fmt.Errorf("models: encode row: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("models: decode row: %w", err)
	}
	return out, nil
}

// DecodeAll decodes rows, keeping their order.
func DecodeAll[T any](rows []map[string]any) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := Decode[T](row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
