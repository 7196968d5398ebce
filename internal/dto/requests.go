package dto

// DamageForm is the multipart form of a damage report; the photo travels as file "photo".
type DamageForm struct {
	Description string `form:"description"`
}

// GeoFields are the position fields a device attaches when it could read one.
// GeoStatus is "denied" when the user refused the permission prompt.
type GeoFields struct {
	Latitude  string `form:"latitude"`
	Longitude string `form:"longitude"`
	GeoStatus string `form:"geo_status"`
}

// MaintenanceForm is the multipart form of a maintenance request.
type MaintenanceForm struct {
	Description string `form:"description"`
	Location    string `form:"location"`
	GeoFields
}

// OrderRequestBody creates an order request; it is accepted as JSON or form.
type OrderRequestBody struct {
	Type    string `json:"type" form:"type"`
	Details string `json:"details" form:"details"`
}

// FuelForm is the multipart form of a refuelling. Value and KmHours keep the
// user's notation ("125,70").
type FuelForm struct {
	Token   string `form:"token"`
	Value   string `form:"value"`
	KmHours string `form:"km_hours"`
	GeoFields
}

// LanguageRequest selects the interface language.
type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}
