package utils

import "strings"

// CDNResolver turns storage-relative media paths into fetchable URLs. The
// preview engine never builds media URLs itself.
type CDNResolver struct {
	baseURL string
}

func NewCDNResolver(baseURL string) *CDNResolver {
	return &CDNResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve joins a storage-relative path onto the CDN base. Absolute URLs and
// empty paths pass through untouched.
func (r *CDNResolver) Resolve(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "data:") {
		return path
	}
	return r.baseURL + "/" + strings.TrimLeft(path, "/")
}
