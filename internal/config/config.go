// Package config parses the CLI surface spec.md §6 and SPEC_FULL.md §6
// describe, translating flags into the types internal/server and
// go.uber.org/zap expect.
package config

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"redikv/internal/server"
)

// Options is the flag set for cmd/redikv-server, grounded on sqldef's
// jessevdk/go-flags struct-tag pattern (cmd/psqldef/psqldef.go).
type Options struct {
	Port       uint   `short:"p" long:"port" description:"TCP port to listen on" value-name:"port" default:"6379"`
	Bind       string `long:"bind" description:"address to bind to" value-name:"addr" default:"0.0.0.0"`
	Databases  int    `short:"n" long:"databases" description:"number of selectable databases" value-name:"count" default:"16"`
	LogLevel   string `long:"log-level" description:"one of debug, info, warn, error" value-name:"level" default:"info"`
	ServerName string `long:"name" description:"server name reported by INFO" value-name:"name" default:"redikv"`
	Help       bool   `long:"help" description:"show this help"`
	Version    bool   `long:"version" description:"show version and exit"`
}

// Version is the string printed by --version. Nothing in this repository
// assigns it, so it stays "dev" unless overridden at link time.
var Version = "dev"

// Parse parses args (excluding argv[0]) into Options, printing help or
// version and exiting per the teacher's own parseOptions convention when
// --help/--version is given.
func Parse(args []string) *Options {
	var opts Options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options]"
	if _, err := parser.ParseArgs(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(Version)
		os.Exit(0)
	}

	return &opts
}

// ServerConfig translates Options into a server.Config.
func (o *Options) ServerConfig() server.Config {
	return server.Config{
		Addr:         fmt.Sprintf("%s:%d", o.Bind, o.Port),
		NumDatabases: o.Databases,
		ServerName:   o.ServerName,
	}
}

// Logger builds the *zap.Logger the server and its connections share,
// honoring LogLevel; an unrecognized level falls back to info rather than
// failing startup over a typo.
func (o *Options) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(o.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
