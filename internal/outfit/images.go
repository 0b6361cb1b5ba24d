// internal/outfit/images.go
package outfit

import "strings"

// PlaceholderImage is served for synthesized fallback items.
const PlaceholderImage = "/placeholder.svg"

var placeholderMarkers = []string{
	"placeholder",
	"no-image",
	"noimage",
	"image-not-available",
}

// IsPlaceholderImage reports whether url is empty or one of the sentinel
// values the catalog uses for "no picture".
func IsPlaceholderImage(url string) bool {
	u := strings.ToLower(strings.TrimSpace(url))
	if u == "" || u == "null" || u == "undefined" || u == "#" {
		return true
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(u, marker) {
			return true
		}
	}
	return false
}

// HasValidImage is the default image predicate for Select: a product needs at
// least one non-empty, non-placeholder image URL.
func HasValidImage(p Product) bool {
	for _, img := range p.Images {
		if !IsPlaceholderImage(img) {
			return true
		}
	}
	return false
}

// PrimaryImage returns the first usable image or the placeholder.
func PrimaryImage(p Product) string {
	for _, img := range p.Images {
		if !IsPlaceholderImage(img) {
			return img
		}
	}
	return PlaceholderImage
}
