/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/matchbox/games/matching"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	advance        string
	bind           string
	content        string
	poolSize       int
	port           int
	prefix         string
	profile        bool
	resolveDelay   time.Duration
	selection      string
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
	watch          bool

	advanceMode   matching.AdvanceMode
	selectionMode matching.SelectionMode
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.poolSize < 1 {
		return fmt.Errorf("invalid pool size (must be at least 1): %d", c.poolSize)
	}
	if c.resolveDelay < 0 {
		return fmt.Errorf("invalid resolve delay (must not be negative): %s", c.resolveDelay)
	}
	if c.watch && c.content == "" {
		return errors.New("--watch requires --content")
	}

	var err error

	c.advanceMode, err = matching.ParseAdvanceMode(c.advance)
	if err != nil {
		return err
	}

	c.selectionMode, err = matching.ParseSelectionMode(c.selection)
	if err != nil {
		return err
	}

	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func (c *Config) roundOptions() matching.Options {
	return matching.Options{
		Selection: c.selectionMode,
		Advance:   c.advanceMode,
		PoolSize:  c.poolSize,
	}
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MATCHBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "matchbox",
		Short:         "A picture matching game for small children, served as a single webapp.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.advance, "advance", "auto", "what follows a correct match: auto (next slot lights up) or press (wait for start) (env: MATCHBOX_ADVANCE)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: MATCHBOX_BIND)")
	fs.StringVarP(&cfg.content, "content", "c", "", "directory holding portals, catalog and layouts (default: built-in content) (env: MATCHBOX_CONTENT)")
	fs.IntVar(&cfg.poolSize, "pool-size", matching.DefaultPoolSize, "choices shown for layouts without a distractor count (env: MATCHBOX_POOL_SIZE)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: MATCHBOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: MATCHBOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: MATCHBOX_PROFILE)")
	fs.DurationVar(&cfg.resolveDelay, "resolve-delay", 3*time.Second, "time a correct match is shown before play continues (env: MATCHBOX_RESOLVE_DELAY)")
	fs.StringVar(&cfg.selection, "selection", "random", "order in which slots light up: random or sequential (env: MATCHBOX_SELECTION)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle game sessions are ended (env: MATCHBOX_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: MATCHBOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: MATCHBOX_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: MATCHBOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: MATCHBOX_VERSION)")
	fs.BoolVarP(&cfg.watch, "watch", "w", false, "reload content when files in the content directory change (env: MATCHBOX_WATCH)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("matchbox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
