// Package meta holds SDK identity shared by the core client and the CLI:
// the version string, the User-Agent, and the per-operation analytics header.
package meta

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// SDKVersion is the release this tree corresponds to.
const SDKVersion = "1.4.0"

// AnalyticsHeader is the request header Watson services read to attribute
// calls to an SDK operation.
const AnalyticsHeader = "X-IBMCloud-SDK-Analytics"

// Version returns the version string.
//
// When installed via `go install ...@version`, returns the module version (e.g., "v1.4.0").
// For development builds, returns "devel-1.4.0+abc1234" with VCS revision if available.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return SDKVersion
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var vcsRev string
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			vcsRev = s.Value[:7]
			break
		}
	}

	if vcsRev != "" {
		return "devel-" + SDKVersion + "+" + vcsRev
	}

	return "devel-" + SDKVersion
}

// UserAgent identifies the SDK, platform, and Go runtime.
func UserAgent() string {
	return fmt.Sprintf("watson-apis-go-sdk-%s %s %s %s", SDKVersion, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

// Analytics formats the AnalyticsHeader value for one operation.
func Analytics(service, serviceVersion, operation string) string {
	return fmt.Sprintf("service_name=%s;service_version=%s;operation_id=%s", service, serviceVersion, operation)
}
