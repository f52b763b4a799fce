// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// go-static daemon
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cactus/go-static/pkg/fileserver"
	"github.com/cactus/go-static/pkg/router"
	"github.com/cactus/go-static/pkg/server"
	"github.com/cactus/go-static/pkg/stats"

	"github.com/alecthomas/kong"
	"github.com/cactus/mlog"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"go.uber.org/automaxprocs/maxprocs"
)

// ServerName holds the server name string
const ServerName = "go-static"

// CLI holds command line and environment options
type CLI struct {
	Version     int               `name:"version" short:"V" type:"counter" help:"Print version and exit; specify twice to show license information"`
	Config      kong.ConfigFlag   `name:"config" short:"c" help:"TOML file with option values, keyed by long option name"`
	Port        int               `name:"port" short:"p" env:"PORT" default:"8080" help:"TCP port to listen on, on all interfaces"`
	Root        string            `name:"root" short:"r" env:"GOSTATIC_ROOT" help:"Directory to serve. Defaults to the directory holding the executable"`
	IndexNames  []string          `name:"index" default:"index.html,index.htm" help:"File names served for a directory, in order of preference"`
	AddHeaders  []string          `name:"header" short:"H" sep:"none" help:"Extra header to return for each response. This option can be used multiple times to add multiple headers"`
	MimeTypes   map[string]string `name:"mime-type" help:"Content type override for a file extension (.ext=type). This option can be used multiple times"`
	Hide        []string          `name:"hide" sep:"none" help:"Doublestar pattern of paths never served. This option can be used multiple times"`
	HideFile    string            `name:"hide-file" help:"Text file of hide patterns (one per line)"`
	ReadTimeout time.Duration     `name:"read-timeout" default:"30s" help:"Timeout for reading a client request"`
	Stats       bool              `name:"stats" help:"Enable stats at ${stats_path}"`
	Metrics     bool              `name:"metrics" help:"Enable Prometheus metrics at ${metrics_path}"`
	HealthCheck bool              `name:"health-check" help:"Answer health checks at ${health_path}"`
	Tree        bool              `name:"tree" help:"Print the tree of served files and exit"`
	NoLogTS     bool              `name:"no-log-ts" help:"Do not add a timestamp to logging"`
	LogJSON     bool              `name:"log-json" help:"Log in json format"`
	Verbose     bool              `name:"verbose" short:"v" help:"Show verbose (debug) log level output"`
}

// executableDir is the directory holding the running binary, with
// symlinks resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// loadDotEnv loads a .env file next to the executable, if present, and
// returns its path. Variables already set in the environment win.
func loadDotEnv() string {
	dir, err := executableDir()
	if err != nil {
		return ""
	}
	envFile := filepath.Join(dir, ".env")
	err = godotenv.Load(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	if err != nil {
		mlog.Fatal("Could not read .env file", err)
	}
	return envFile
}

// dotEnvHideRule returns a hide rule covering envFile when it lies inside
// root, so the values it holds are not served.
func dotEnvHideRule(root, envFile string) (string, bool) {
	if envFile == "" {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	rel, err := filepath.Rel(root, envFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return "/" + filepath.ToSlash(rel), true
}

func resolveRoot(root string) (string, error) {
	if root == "" {
		dir, err := executableDir()
		if err != nil {
			return "", fmt.Errorf("could not locate executable: %w", err)
		}
		root = dir
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", root)
	}
	return root, nil
}

// newParser builds the kong parser for cli. Config files in configPaths
// are read, if present, before any --config file.
func newParser(cli *CLI, configPaths ...string) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name(ServerName),
		kong.Description("A small static file http server"),
		kong.UsageOnError(),
		kong.Configuration(TOMLLoader, configPaths...),
		kong.Vars{
			"stats_path":   router.StatsPath,
			"metrics_path": router.MetricsPath,
			"health_path":  router.HealthCheckPath,
		},
	)
}

func main() {
	// start out with a very bare logger that only prints
	// the message (no special format or log elements)
	mlog.SetFlags(0)

	envFile := loadDotEnv()

	cli := CLI{}
	parser, err := newParser(&cli)
	if err != nil {
		mlog.Fatal(err)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if cli.Version > 0 {
		fmt.Printf("%s %s (%s,%s-%s)\n", ServerName, version.Version, version.GoVersion, runtime.Compiler, version.GoArch)
		if cli.Version > 1 {
			fmt.Printf("\n%s\n", strings.TrimSpace(licenseText))
		}
		os.Exit(0)
	}

	// keep automaxprocs quiet unless debugging
	if _, err := maxprocs.Set(maxprocs.Logger(mlog.Debugf)); err != nil {
		mlog.Printf("could not set GOMAXPROCS: %s", err)
	}

	rootDir, err := resolveRoot(cli.Root)
	if err != nil {
		mlog.Fatal("Bad root directory: ", err)
	}

	config := fileserver.Config{
		IndexNames: cli.IndexNames,
		MimeTypes:  cli.MimeTypes,
		HideRules:  cli.Hide,
		Dir:        rootDir,
	}

	if cli.HideFile != "" {
		patterns, err := loadHideFile(cli.HideFile)
		if err != nil {
			mlog.Fatal(err)
		}
		config.HideRules = append(config.HideRules, patterns...)
	}

	// first, so a later !rule can still un-hide it
	if rule, ok := dotEnvHideRule(rootDir, envFile); ok {
		config.HideRules = append([]string{rule}, config.HideRules...)
	}

	AddHeaders := parseHeaders(cli.AddHeaders)

	// now configure a standard logger
	mlog.SetFlags(mlog.Lstd)
	if cli.NoLogTS {
		mlog.SetFlags(mlog.Flags() ^ mlog.Ltimestamp)
	}

	if cli.LogJSON {
		mlog.SetEmitter(&mlog.FormatWriterJSON{})
	}

	if cli.Verbose {
		mlog.SetFlags(mlog.Flags() | mlog.Ldebug)
		mlog.Debug("debug logging enabled")
		mlog.Debugm("build", mlog.Map{"version": version.Info(), "context": version.BuildContext()})
	}

	root, err := os.OpenRoot(rootDir)
	if err != nil {
		mlog.Fatal("Could not open root directory: ", err)
	}

	resolver, err := fileserver.NewResolver(root.FS(), config)
	if err != nil {
		mlog.Fatal("Error creating file server: ", err)
	}

	if cli.Tree {
		tree, err := resolver.RenderTree()
		if err != nil {
			mlog.Fatal("Could not walk root directory: ", err)
		}
		fmt.Print(tree)
		os.Exit(0)
	}

	fileHandler := fileserver.NewHandler(resolver, fileserver.HTMLListing{})

	dumbrouter := &router.DumbRouter{
		ServerName:  ServerName,
		AddHeaders:  AddHeaders,
		FileHandler: fileHandler,
		HealthCheck: cli.HealthCheck,
	}

	if cli.Stats {
		ss := &stats.ServeStats{}
		fileHandler.SetMetricsCollector(ss)
		mlog.Printf("Enabling stats at %s", router.StatsPath)
		dumbrouter.StatsHandler = stats.Handler(ss)
	}

	if cli.Metrics {
		prometheus.MustRegister(versioncollector.NewCollector("gostatic"))
		mlog.Printf("Enabling metrics at %s", router.MetricsPath)
		dumbrouter.MetricsHandler = promhttp.Handler()
	}

	mlog.Debugm("serving", mlog.Map{"root": rootDir, "hide_rules": len(config.HideRules)})

	srv, err := server.New(server.Config{
		Port:        cli.Port,
		Handler:     dumbrouter,
		ReadTimeout: cli.ReadTimeout,
	})
	if err != nil {
		mlog.Fatal(err)
	}

	if err := srv.Listen(); err != nil {
		mlog.Fatal(err)
	}

	mlog.Printf("Server running on port %d", srv.Port())
	// Serve only returns if the listener fails
	err = srv.Serve()
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	mlog.Fatal(err)
}
