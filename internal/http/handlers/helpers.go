package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/geo"
	"github.com/agrox/fieldops/internal/http/middleware"
	"github.com/agrox/fieldops/internal/i18n"
)

// locator turns the submitted position fields into a geo.Locator.
func locator(f dto.GeoFields) geo.Locator {
	return geo.FromRequest(f.Latitude, f.Longitude, f.GeoStatus)
}

// geoNotice explains a missing position. Devices send geo_status
// "unavailable" without a geolocation API and "denied" or "failed" when the
// lookup did not succeed.
func geoNotice(c *gin.Context, f dto.GeoFields, located bool) string {
	if located {
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(f.GeoStatus)) {
	case "unavailable":
		return i18n.T(middleware.Lang(c), i18n.KeyGeoUnavailable)
	case "denied", "failed", "timeout":
		return i18n.T(middleware.Lang(c), i18n.KeyGeoFailed)
	}
	return ""
}
