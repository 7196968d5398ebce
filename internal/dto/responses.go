package dto

import (
	"time"

	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SuccessResponse carries a created item and a localized confirmation.
// Notice is a secondary remark, such as a position that could not be read.
type SuccessResponse struct {
	Message string      `json:"message"`
	Notice  string      `json:"notice,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse is an owner list. When the module has no storage yet the list
// is empty, ModuleUnavailable is set and Message explains it.
type ListResponse[T any] struct {
	Items             []T    `json:"items"`
	ModuleUnavailable bool   `json:"module_unavailable"`
	Message           string `json:"message,omitempty"`
}

// NewListResponse maps a service listing with conv.
func NewListResponse[M, T any](l service.Listing[M], lang i18n.Lang, conv func(M) T) ListResponse[T] {
	out := ListResponse[T]{Items: make([]T, 0, len(l.Items)), ModuleUnavailable: l.ModuleUnavailable}
	for _, item := range l.Items {
		out.Items = append(out.Items, conv(item))
	}
	if l.ModuleUnavailable {
		out.Message = i18n.T(lang, i18n.KeyModuleUnavailable)
	}
	return out
}

// RecordResponse is the common shape of listed records.
type RecordResponse struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	Description string         `json:"description"`
	Status      models.Status  `json:"status"`
	RawStatus   string         `json:"raw_status,omitempty"`
	Badge       models.Badge   `json:"badge"`
	PhotoURL    *string        `json:"photo_url,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Latitude    *models.Number `json:"latitude,omitempty"`
	Longitude   *models.Number `json:"longitude,omitempty"`
	Response    *string        `json:"response,omitempty"`
	RespondedAt *time.Time     `json:"responded_at,omitempty"`
}

func newRecordResponse(r models.Record, status models.Status, badge models.Badge) RecordResponse {
	out := RecordResponse{
		ID:          string(r.ID),
		CreatedAt:   r.CreatedAt.Time,
		Description: r.Description,
		Status:      status,
		RawStatus:   r.Status,
		Badge:       badge,
		PhotoURL:    r.Photo,
		Location:    r.Location,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Response:    r.Response,
	}
	if r.RespondedAt != nil {
		t := r.RespondedAt.Time
		out.RespondedAt = &t
	}
	return out
}

// NewDamageResponse renders a damage report; new reports are open.
func NewDamageResponse(d models.DamageReport) RecordResponse {
	status := models.NormalizeStatus(d.Status, models.StatusOpen)
	return newRecordResponse(d.Record, status, models.DamageBadge(status))
}

// MaintenanceResponse adds the mechanics' placeholder text while unanswered.
type MaintenanceResponse struct {
	RecordResponse
	ResponseText string `json:"response_text"`
}

// NewMaintenanceResponse renders a maintenance request; photoURL resolves the stored path.
func NewMaintenanceResponse(m models.MaintenanceRequest, lang i18n.Lang, photoURL func(string) string) MaintenanceResponse {
	status := models.NormalizeStatus(m.Status, models.StatusPending)
	hasResponse := m.Response != nil && *m.Response != ""

	out := MaintenanceResponse{RecordResponse: newRecordResponse(m.Record, status, models.MaintenanceBadge(hasResponse))}
	out.PhotoURL = nil
	if m.Photo != nil && *m.Photo != "" {
		if url := photoURL(*m.Photo); url != "" {
			out.PhotoURL = &url
		}
	}
	if hasResponse {
		out.ResponseText = *m.Response
	} else {
		out.ResponseText = i18n.T(lang, i18n.KeyMaintenanceNoResponse)
	}
	return out
}

// OrderResponse adds the request type.
type OrderResponse struct {
	RecordResponse
	RequestType string `json:"request_type"`
}

// NewOrderResponse renders an order request; new requests are pending.
func NewOrderResponse(o models.OrderRequest) OrderResponse {
	status := models.NormalizeStatus(o.Status, models.StatusPending)
	return OrderResponse{
		RecordResponse: newRecordResponse(o.Record, status, models.OrderBadge(status)),
		RequestType:    o.RequestType,
	}
}

// FuelResponse renders a refuelling.
type FuelResponse struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Token     string         `json:"token"`
	Value     float64        `json:"value"`
	KmHours   float64        `json:"km_hours"`
	ImageURL  *string        `json:"image_url,omitempty"`
	Latitude  *models.Number `json:"latitude,omitempty"`
	Longitude *models.Number `json:"longitude,omitempty"`
}

func NewFuelResponse(f models.Fueling) FuelResponse {
	return FuelResponse{
		ID:        string(f.ID),
		CreatedAt: f.CreatedAt.Time,
		Token:     string(f.Token),
		Value:     float64(f.Value),
		KmHours:   float64(f.KmHours),
		ImageURL:  f.Photo,
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
	}
}

// TokenResponse returns a freshly issued fuel token.
type TokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// LanguageResponse lists the picker and the current choice.
type LanguageResponse struct {
	Current i18n.Lang     `json:"current"`
	Options []i18n.Option `json:"options"`
}

// DashboardResponse lists the home tiles.
type DashboardResponse struct {
	Tiles []models.Tile `json:"tiles"`
}

// ProbeResponse reports the probe state per resource.
type ProbeResponse struct {
	Resources []probe.Status `json:"resources"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration"`
}
