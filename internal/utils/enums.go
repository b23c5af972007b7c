package utils

import "fmt"

const (
	OrganizationName = "BinBird"

	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"
)

// PlatformType enumerates how the client is connecting. The admin and
// client portals are web; the staff run-sheet app is android/ios.
type PlatformType int

const (
	PlatformWeb PlatformType = iota
	PlatformAndroid
	PlatformIOS
)

func (p PlatformType) String() string {
	switch p {
	case PlatformWeb:
		return "web"
	case PlatformAndroid:
		return "android"
	case PlatformIOS:
		return "ios"
	default:
		return "unknown"
	}
}

func ParsePlatform(s string) (PlatformType, error) {
	switch s {
	case "web":
		return PlatformWeb, nil
	case "android":
		return PlatformAndroid, nil
	case "ios":
		return PlatformIOS, nil
	default:
		return -1, fmt.Errorf("invalid platform: %q", s)
	}
}

func IsMobile(platform PlatformType) bool {
	return platform == PlatformAndroid || platform == PlatformIOS
}

// ClientIDType distinguishes how a token is bound to its holder.
type ClientIDType int

const (
	ClientIDTypeIP ClientIDType = iota
	ClientIDTypeDeviceID
)

func (c ClientIDType) String() string {
	switch c {
	case ClientIDTypeIP:
		return "IP"
	case ClientIDTypeDeviceID:
		return "DEVICE_ID"
	default:
		return "UNKNOWN"
	}
}
