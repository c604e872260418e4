package services

import (
	"strconv"
	"strings"
)

// Fallback coordinates (Bangalore) substituted when device location is
// unavailable or denied.
const (
	FallbackLatitude  = 12.9716
	FallbackLongitude = 77.5946
)

func FormatGPS(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lng, 'f', -1, 64)
}

// CaptureLocation turns the raw coordinates reported by the browser into the
// draft's GPS string. Missing or malformed coordinates mean the device denied
// or failed geolocation; the fixed fallback pair is substituted and the
// caller informs the user it is not their true location.
func CaptureLocation(latValue, lngValue string) (gps string, fallback bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latValue), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(lngValue), 64)
	if errLat != nil || errLng != nil {
		return FormatGPS(FallbackLatitude, FallbackLongitude), true
	}
	return FormatGPS(lat, lng), false
}
