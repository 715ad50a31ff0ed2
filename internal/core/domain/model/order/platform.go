package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Platform identifies where an order originated. External platforms push
// orders through webhooks and receive delivery confirmations back; manual
// orders are entered by supervisory staff and have no external counterpart.
type Platform string

const (
	// PlatformTrendyol is the Trendyol Yemek food delivery platform.
	PlatformTrendyol Platform = "Trendyol Yemek"
	// PlatformYemeksepeti is the Yemeksepeti food delivery platform.
	PlatformYemeksepeti Platform = "Yemeksepeti"
	// PlatformGetir is the Getir Yemek food delivery platform.
	PlatformGetir Platform = "Getir Yemek"
	// PlatformManual marks orders entered by staff rather than ingested
	// from an external platform.
	PlatformManual Platform = "Manual"
)

// PlatformFromSlug resolves the webhook path segment to a platform.
// Valid slugs: trendyol, yemeksepeti, getir.
func PlatformFromSlug(slug string) (Platform, error) {
	switch slug {
	case "trendyol":
		return PlatformTrendyol, nil
	case "yemeksepeti":
		return PlatformYemeksepeti, nil
	case "getir":
		return PlatformGetir, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"platform", fmt.Errorf("%q is not a known platform slug", slug))
	}
}

// Validate checks that the platform is one of the supported origins.
func (p Platform) Validate() error {
	switch p {
	case PlatformTrendyol, PlatformYemeksepeti, PlatformGetir, PlatformManual:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"platform", fmt.Errorf("%q is not a valid platform", string(p)))
	}
}

// IsExternal reports whether delivery completions must be synced back to
// the originating platform.
func (p Platform) IsExternal() bool {
	return p != PlatformManual
}

// NumberPrefix returns the prefix used when generating order numbers for
// payloads that carry none.
func (p Platform) NumberPrefix() string {
	switch p {
	case PlatformTrendyol:
		return "TY"
	case PlatformYemeksepeti:
		return "YS"
	case PlatformGetir:
		return "GY"
	default:
		return "MN"
	}
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}
