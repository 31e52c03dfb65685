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

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log"
	ctrlzap "sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/pfeifferj/gcp-compute-client/pkg/cache"
	"github.com/pfeifferj/gcp-compute-client/pkg/client"
	"github.com/pfeifferj/gcp-compute-client/pkg/gce"
	"github.com/pfeifferj/gcp-compute-client/pkg/logging"
	"github.com/pfeifferj/gcp-compute-client/pkg/options"
)

// WrapperFactory creates the compute wrapper for one command invocation.
// The options are available through options.FromContext. The returned
// function releases the wrapper.
type WrapperFactory func(ctx context.Context) (client.ComputeWrapper, func(), error)

// NewGCEWrapper connects to the Compute Engine API, caching catalog lookups
// when a cache TTL is configured.
func NewGCEWrapper(ctx context.Context) (client.ComputeWrapper, func(), error) {
	opts := options.FromContext(ctx)
	logger := logging.CLILogger()

	w, err := gce.NewWrapper(ctx, opts.ClientOptions()...)
	if err != nil {
		return nil, nil, err
	}
	closeWrapper := func() {
		if err := w.Close(); err != nil {
			logger.Error(err, "closing compute clients")
		}
	}
	if opts.CacheTTL <= 0 {
		return w, closeWrapper, nil
	}

	cached := cache.NewCachingWrapper(w, opts.CacheTTL)
	return cached, func() {
		cached.Stop()
		closeWrapper()
	}, nil
}

type app struct {
	opts       *options.Options
	out        io.Writer
	newWrapper WrapperFactory
	logFormat  string
}

// NewRootCommand builds the gcpcompute command tree writing results to out
func NewRootCommand(out io.Writer, newWrapper WrapperFactory) *cobra.Command {
	opts := options.NewOptions()
	a := &app{opts: &opts, out: out, newWrapper: newWrapper}

	root := &cobra.Command{
		Use:   "gcpcompute",
		Short: "Query and manage Google Compute Engine resources",
		Long: `gcpcompute lists Compute Engine catalog resources (regions, zones,
machine and disk types, images, networks, instance templates) and performs
a few instance and template operations.

Configuration is read from the environment (GCP_PROJECT, GCP_REGION,
GCP_ZONE, GOOGLE_APPLICATION_CREDENTIALS, GCE_ENDPOINT, GCE_CACHE_TTL,
LOG_LEVEL, GCE_REQUEST_TIMEOUT) and can be overridden by flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := a.opts.Validate(); err != nil {
				return fmt.Errorf("validating options, %w", err)
			}
			logging.SetLevel(a.opts.LogLevel)
			return a.setupLogger()
		},
	}
	root.SetOut(out)
	a.opts.AddFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(
		a.regionsCommand(),
		a.zonesCommand(),
		a.cpuPlatformsCommand(),
		a.machineTypesCommand(),
		a.diskTypesCommand(),
		a.acceleratorTypesCommand(),
		a.imagesCommand(),
		a.networksCommand(),
		a.subnetworksCommand(),
		a.templatesCommand(),
		a.templateCommand(),
		a.deleteTemplateCommand(),
		a.operationCommand(),
		a.instancesCommand(),
		a.terminateCommand(),
		a.addMetadataCommand(),
		a.guestAttributesCommand(),
	)
	return root
}

func (a *app) setupLogger() error {
	level := zapcore.InfoLevel
	if a.opts.LogLevel == logging.LevelDebug {
		level = zapcore.DebugLevel
	}

	switch a.logFormat {
	case "text":
		log.SetLogger(ctrlzap.New(ctrlzap.UseDevMode(true), ctrlzap.Level(level), ctrlzap.WriteTo(os.Stderr)))
	case "json":
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err := config.Build()
		if err != nil {
			return fmt.Errorf("building logger, %w", err)
		}
		log.SetLogger(zapr.NewLogger(zapLogger))
	default:
		return fmt.Errorf("unknown log format %q", a.logFormat)
	}
	return nil
}

// run creates a client for one command and calls fn with a context bounded
// by the request timeout.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.opts.RequestTimeout)
	defer cancel()
	ctx = a.opts.ToContext(ctx)

	wrapper, release, err := a.newWrapper(ctx)
	if err != nil {
		return fmt.Errorf("creating compute wrapper, %w", err)
	}
	defer release()

	c, err := client.NewClient(wrapper)
	if err != nil {
		return err
	}
	return describe(fn(ctx, c))
}

// describe marks transient API errors so the user knows the command can be
// run again
func describe(err error) error {
	if !gce.IsRetryable(err) {
		return err
	}
	return fmt.Errorf("%w (%s error, retrying may succeed)", err, gce.ParseError(err).Type)
}

func (a *app) region() (string, error) {
	if a.opts.Region == "" {
		return "", fmt.Errorf("a region is required, set --region or GCP_REGION")
	}
	return a.opts.Region, nil
}

func (a *app) zone() (string, error) {
	if a.opts.Zone == "" {
		return "", fmt.Errorf("a zone is required, set --zone or GCP_ZONE")
	}
	return a.opts.Zone, nil
}
