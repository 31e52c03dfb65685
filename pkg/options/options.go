/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package options

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"google.golang.org/api/option"
	"sigs.k8s.io/karpenter/pkg/utils/env"

	"github.com/pfeifferj/gcp-compute-client/pkg/logging"
)

const (
	DefaultCacheTTL       = 5 * time.Minute
	DefaultRequestTimeout = 2 * time.Minute
)

type optionsKey struct{}

// Options configures access to the Compute Engine API
type Options struct {
	// Project is the GCP project the API calls are made against
	Project string
	// Region is the default region for regional lookups
	Region string
	// Zone is the default zone for zonal lookups
	Zone string
	// CredentialsFile is a service account or user credentials JSON file.
	// Application default credentials are used when empty.
	CredentialsFile string
	// Endpoint overrides the Compute Engine API endpoint
	Endpoint string
	// CacheTTL is how long catalog lookups are cached, zero disables caching
	CacheTTL time.Duration
	// LogLevel is one of debug, info, warn or error
	LogLevel string
	// RequestTimeout bounds every command, including operation waits
	RequestTimeout time.Duration
}

// NewOptions creates Options from environment variables
func NewOptions() Options {
	return Options{
		Project:         env.WithDefaultString("GCP_PROJECT", ""),
		Region:          env.WithDefaultString("GCP_REGION", ""),
		Zone:            env.WithDefaultString("GCP_ZONE", ""),
		CredentialsFile: env.WithDefaultString("GOOGLE_APPLICATION_CREDENTIALS", ""),
		Endpoint:        env.WithDefaultString("GCE_ENDPOINT", ""),
		CacheTTL:        env.WithDefaultDuration("GCE_CACHE_TTL", DefaultCacheTTL),
		LogLevel:        env.WithDefaultString("LOG_LEVEL", logging.LevelInfo),
		RequestTimeout:  env.WithDefaultDuration("GCE_REQUEST_TIMEOUT", DefaultRequestTimeout),
	}
}

// AddFlags registers flags for every option. Values already held by o,
// usually loaded by NewOptions, become the flag defaults.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Project, "project", o.Project, "GCP project ID [GCP_PROJECT]")
	fs.StringVar(&o.Region, "region", o.Region, "GCP region [GCP_REGION]")
	fs.StringVar(&o.Zone, "zone", o.Zone, "GCP zone [GCP_ZONE]")
	fs.StringVar(&o.CredentialsFile, "credentials-file", o.CredentialsFile, "Credentials JSON file [GOOGLE_APPLICATION_CREDENTIALS]")
	fs.StringVar(&o.Endpoint, "endpoint", o.Endpoint, "Compute Engine API endpoint override [GCE_ENDPOINT]")
	fs.DurationVar(&o.CacheTTL, "cache-ttl", o.CacheTTL, "How long catalog lookups are cached, 0 disables caching [GCE_CACHE_TTL]")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level: debug, info, warn or error [LOG_LEVEL]")
	fs.DurationVar(&o.RequestTimeout, "request-timeout", o.RequestTimeout, "Timeout of a single command [GCE_REQUEST_TIMEOUT]")
}

// Validate checks that the options are usable
func (o *Options) Validate() error {
	var err error
	if o.Project == "" {
		err = multierr.Append(err, fmt.Errorf("missing required option: project (GCP_PROJECT)"))
	}
	if o.Region != "" && o.Zone != "" && !strings.HasPrefix(o.Zone, o.Region+"-") {
		err = multierr.Append(err, fmt.Errorf("zone %s is not in region %s", o.Zone, o.Region))
	}
	if !logging.ValidLevel(o.LogLevel) {
		err = multierr.Append(err, fmt.Errorf("invalid log level %q", o.LogLevel))
	}
	if o.CacheTTL < 0 {
		err = multierr.Append(err, fmt.Errorf("cache ttl must not be negative, got %s", o.CacheTTL))
	}
	if o.RequestTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("request timeout must be positive, got %s", o.RequestTimeout))
	}
	return err
}

// ClientOptions returns the API client options selected by o
func (o *Options) ClientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint))
	}
	return opts
}

// ToContext adds the options to the context
func (o *Options) ToContext(ctx context.Context) context.Context {
	return ToContext(ctx, o)
}

// ToContext returns a new context with the given Options
func ToContext(ctx context.Context, options *Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, options)
}

// FromContext retrieves Options from the context
func FromContext(ctx context.Context) *Options {
	if v := ctx.Value(optionsKey{}); v != nil {
		return v.(*Options)
	}
	// Return zero value instead of nil to prevent panics
	return &Options{}
}
