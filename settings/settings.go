// Package settings defines the host-supplied configuration lookup the
// appSetting filter reads from: the external collaborator named but not
// specified by the template engine's own contract.
package settings

import "os"

// Provider resolves a configuration key to a string value. A missing key
// reports ok=false, which the appSetting filter surfaces as Unresolved.
type Provider interface {
	Get(key string) (string, bool)
}

// EnvProvider is a Provider backed by the process environment. A Context
// constructed without WithSettingsProvider has no provider at all, and
// its appSetting filter yields Unresolved. Hosts with a real configuration store (Vault,
// LaunchDarkly, a database-backed settings table) are expected to supply
// their own implementation of the same two-method contract.
type EnvProvider struct{}

// Get looks up key via os.LookupEnv.
func (EnvProvider) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapProvider is a Provider backed by a fixed map, useful for tests and
// for hosts that load their settings once at startup.
type MapProvider map[string]string

// Get looks up key in the map.
func (m MapProvider) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
