package payment

import "strings"

// placeholderImage is served when a product has no image; the gateway
// requires absolute URLs.
const placeholderImage = "https://placehold.co/600x600"

// AbsoluteImageURL rewrites relative catalog image paths against the
// configured base URL and substitutes a placeholder for missing images.
func AbsoluteImageURL(baseURL, imageURL string) string {
	if imageURL == "" {
		return placeholderImage
	}
	if strings.HasPrefix(imageURL, "http://") || strings.HasPrefix(imageURL, "https://") {
		return imageURL
	}

	base := strings.TrimRight(baseURL, "/")
	if strings.HasPrefix(imageURL, "/") {
		return base + imageURL
	}
	return base + "/" + imageURL
}
