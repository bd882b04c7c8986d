package request

import "strings"

type ClientType string

const (
	ClientWeb    ClientType = "web"
	ClientMobile ClientType = "mobile"
)

// ResolveClientType trusts an explicit X-Client-Type header first and
// falls back to sniffing the User-Agent. Unknown callers are treated as
// web clients so they get cookie-based sessions.
func ResolveClientType(header, userAgent string) ClientType {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "web":
		return ClientWeb
	case "mobile":
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "dart") || strings.Contains(ua, "cfnetwork") {
		return ClientMobile
	}
	return ClientWeb
}

func IsWebClient(t ClientType) bool {
	return t == ClientWeb
}
