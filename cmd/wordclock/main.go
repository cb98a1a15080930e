//go:build linux

/*
Woordklok Core
Copyright (C) 2026 The Woordklok Project Contributors

This file is part of Woordklok Core.

Woordklok Core is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Woordklok Core is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Woordklok Core.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/WoordklokProject/woordklok-core/pkg/clocktrust"
	"github.com/WoordklokProject/woordklok-core/pkg/config"
	"github.com/WoordklokProject/woordklok-core/pkg/display"
	"github.com/WoordklokProject/woordklok-core/pkg/helpers"
	"github.com/WoordklokProject/woordklok-core/pkg/service"
	"github.com/WoordklokProject/woordklok-core/pkg/telemetry"
	"github.com/WoordklokProject/woordklok-core/pkg/timestatus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func defaultConfigDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", config.AppName)
	}
	return filepath.Join("/etc", config.AppName)
}

func run() error {
	configDir := flag.String(
		"config-dir",
		defaultConfigDir(),
		"directory for config and log files",
	)
	daemonMode := flag.Bool(
		"daemon",
		false,
		"run non-interactively, never prompting",
	)
	assumeYes := flag.Bool(
		"yes",
		false,
		"continue without prompting on timezone mismatch",
	)
	flag.Parse()

	var logWriters []io.Writer
	if !*daemonMode {
		logWriters = []io.Writer{os.Stderr}
	}
	if err := helpers.InitLogging(*configDir, logWriters); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(*configDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := telemetry.Init(cfg.ErrorReporting()); err != nil {
		log.Warn().Err(err).Msg("error reporting unavailable")
	}
	defer telemetry.Close()

	if *daemonMode {
		if err := helpers.WritePidFile(*configDir); err != nil {
			return err
		}
		defer func() {
			if err := helpers.RemovePidFile(*configDir); err != nil {
				log.Warn().Err(err).Msg("error removing pid file")
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", r)
			log.Fatal().Msgf("panic: %v", r)
		}
	}()

	var probe timestatus.Probe
	switch cfg.ProbeBackend() {
	case config.ProbeBackendDBus:
		probe = timestatus.NewDBusProbe()
	case config.ProbeBackendTimedatectl:
		probe = timestatus.NewCommandProbe(nil)
	default:
		log.Warn().Msgf("unknown probe backend %q, using timedatectl", cfg.ProbeBackend())
		probe = timestatus.NewCommandProbe(nil)
	}

	authority := clocktrust.NewAuthority(cfg, probe, nil)
	defer authority.Shutdown()

	if ok := authority.VerifySystemTime(context.Background()); !ok {
		// A wrong timezone silently corrupts every hour/minute shown, so
		// this is the one startup failure that needs explicit sign-off.
		if err := confirmTimezoneMismatch(cfg, *assumeYes, *daemonMode); err != nil {
			return err
		}
	}

	// The hardware driver attaches here; without one the clock runs
	// headless and the trust subsystem still does its job.
	panel := display.NewNullPanel(cfg.LEDCount())
	r, g, b := cfg.PanelColor()
	renderer := display.NewRenderer(panel, display.Color{R: r, G: g, B: b})

	stopSvc, err := service.Start(service.Args{
		Cfg:       cfg,
		Authority: authority,
		Renderer:  renderer,
	})
	if err != nil {
		return fmt.Errorf("error starting service: %w", err)
	}

	defer func() {
		if err := stopSvc(); err != nil {
			log.Error().Err(err).Msg("error stopping service")
		}
		if err := renderer.Blank(); err != nil {
			log.Warn().Err(err).Msg("error blanking panel")
		}
	}()

	sigs := make(chan os.Signal, 1)
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigs
	log.Info().Msgf("received %s, shutting down", sig)

	return nil
}

// confirmTimezoneMismatch requires explicit operator sign-off to keep
// running with an unverified timezone.
func confirmTimezoneMismatch(cfg *config.Instance, assumeYes, daemonMode bool) error {
	log.Warn().
		Str("expected", cfg.ExpectedTimezone()).
		Msg("timezone could not be verified")

	if assumeYes {
		log.Warn().Msg("continuing anyway (-yes)")
		return nil
	}
	if daemonMode {
		return errors.New("timezone not verified, refusing to start in daemon mode (use -yes to override)")
	}

	_, _ = fmt.Fprint(os.Stderr, "Timezone configuration could not be verified. Continue anyway? (y/N): ")
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading confirmation: %w", err)
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		return errors.New("exiting, fix timezone configuration and restart")
	}
	return nil
}
