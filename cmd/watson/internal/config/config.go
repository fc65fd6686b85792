// Package config loads service credentials for the watson CLI from a YAML
// file and the environment.
//
// A config file holds named profiles:
//
//	profiles:
//	  default:
//	    speech_to_text:
//	      url: https://stream.watsonplatform.net/speech-to-text/api
//	      apikey: ...
//	    discovery:
//	      apikey: ...
//	      version: "2019-04-30"
//
// Environment variables override the selected profile.
package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/broady/watson"
)

// DefaultProfile is used when no profile is named.
const DefaultProfile = "default"

// File is a parsed config file.
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile holds the endpoints of one account.
type Profile struct {
	SpeechToText Endpoint `yaml:"speech_to_text,omitempty"`
	Discovery    Endpoint `yaml:"discovery,omitempty"`
}

// Endpoint configures one service.
type Endpoint struct {
	URL    string `yaml:"url,omitempty"`
	APIKey string `yaml:"apikey,omitempty"`
	// Version is the Discovery API version date.
	Version                string `yaml:"version,omitempty"`
	DisableSSLVerification bool   `yaml:"disable_ssl_verification,omitempty"`
}

// Load reads and parses a config file. Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// Profile returns the named profile.
func (f *File) Profile(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := f.Profiles[name]
	if !ok {
		names := make([]string, 0, len(f.Profiles))
		for n := range f.Profiles {
			names = append(names, n)
		}
		sort.Strings(names)
		return Profile{}, fmt.Errorf("profile %q not found (have %v)", name, names)
	}
	return p, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvSTTURL           = "WATSON_STT_URL"
	EnvSTTAPIKey        = "WATSON_STT_APIKEY"
	EnvDiscoveryURL     = "WATSON_DISCOVERY_URL"
	EnvDiscoveryAPIKey  = "WATSON_DISCOVERY_APIKEY"
	EnvDiscoveryVersion = "WATSON_DISCOVERY_VERSION"
)

// ApplyEnv overrides the profile with the non-empty variables returned by
// getenv.
func (p *Profile) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&p.SpeechToText.URL, EnvSTTURL)
	set(&p.SpeechToText.APIKey, EnvSTTAPIKey)
	set(&p.Discovery.URL, EnvDiscoveryURL)
	set(&p.Discovery.APIKey, EnvDiscoveryAPIKey)
	set(&p.Discovery.Version, EnvDiscoveryVersion)
}

// Resolve loads the named profile from path, if path is set, and applies
// the environment on top.
func Resolve(path, profile string, getenv func(string) string) (Profile, error) {
	var p Profile
	if path != "" {
		f, err := Load(path)
		if err != nil {
			return Profile{}, err
		}
		if p, err = f.Profile(profile); err != nil {
			return Profile{}, err
		}
	}
	p.ApplyEnv(getenv)
	return p, nil
}

// ServiceOptions converts the endpoint to client options. An empty API
// key sends no credentials.
func (e Endpoint) ServiceOptions() *watson.ServiceOptions {
	opts := &watson.ServiceOptions{
		URL:                    e.URL,
		Authenticator:          watson.NoAuthAuthenticator{},
		DisableSSLVerification: e.DisableSSLVerification,
	}
	if e.APIKey != "" {
		opts.Authenticator = watson.NewAPIKeyAuthenticator(e.APIKey)
	}
	return opts
}
