// Command pattoo-setup provisions a host for the pattoo platform: it
// optionally creates the pattoo system account, scaffolds the YAML
// configuration file (on-disk values win over shipped defaults) and
// validates the result before any daemon is started.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bonnie-23/pattoo-shared/pkg/configuration"
	"github.com/bonnie-23/pattoo-shared/pkg/files"
	"github.com/bonnie-23/pattoo-shared/pkg/installation"
	pattoolog "github.com/bonnie-23/pattoo-shared/pkg/log"
	"github.com/bonnie-23/pattoo-shared/pkg/version"
)

func main() {
	configDir := flag.String("config-dir", "", "configuration directory (defaults to $PATTOO_CONFIGDIR)")
	server := flag.Bool("server", false, "configure the pattoo server instead of an agent")
	createUser := flag.Bool("create-user", false, "create the pattoo system user and group (root only)")
	userName := flag.String("user", "pattoo", "system account that owns the platform directories")
	logLevel := flag.String("log-level", "info", "setup log level")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	logger, err := pattoolog.New(*logLevel)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("pattoo setup starting",
		zap.Bool("server", *server),
		zap.String("version", version.Short()),
	)

	directory := *configDir
	if directory == "" {
		directory, err = configuration.ConfigDir()
		if err != nil {
			fatal(logger, "configuration directory not resolved", err)
		}
	}
	if err := files.MkDir(directory); err != nil {
		fatal(logger, "configuration directory not created", err)
	}

	if *createUser {
		if err := installation.CreateUser(*userName, "/home/"+*userName, "/bin/false"); err != nil {
			fatal(logger, "system account not created", err)
		}
		logger.Info("system account ready", zap.String("user", *userName))
	}

	// Directories are only chowned when the account exists and we have the
	// privilege to do it.
	owner := ""
	if os.Geteuid() == 0 && installation.UserExists(*userName) {
		owner = *userName
	}

	configFile, err := installation.Configure(directory, defaultDocument(*server), installation.Options{
		Server: *server,
		Owner:  owner,
	})
	if err != nil {
		fatal(logger, "configuration file not written", err)
	}
	logger.Info("configuration file written", zap.String("path", configFile))

	if err := installation.CheckConfig(configFile, requiredKeys(*server)); err != nil {
		fatal(logger, "configuration parameter check failed", err)
	}
	logger.Info("configuration parameter check passed")
}

// defaultDocument returns the configuration shipped on a fresh install.
// Existing on-disk values override every one of these.
func defaultDocument(server bool) configuration.Document {
	doc := configuration.Document{
		"pattoo": map[string]any{
			"log_directory":    "/var/log/pattoo",
			"log_level":        configuration.DefaultLogLevel,
			"cache_directory":  "/var/cache/pattoo",
			"daemon_directory": "/var/run/pattoo",
			"language":         configuration.DefaultLanguage,
		},
	}
	if server {
		return doc
	}

	doc["pattoo_agent_api"] = map[string]any{
		"ip_address":   configuration.DefaultAgentAPIAddress,
		"ip_bind_port": configuration.DefaultAgentAPIBindPort,
	}
	doc["pattoo_web_api"] = map[string]any{
		"ip_address":   "127.0.0.1",
		"ip_bind_port": configuration.DefaultWebAPIBindPort,
	}
	return doc
}

// requiredKeys returns the validation schema for the file being written.
func requiredKeys(server bool) installation.RequiredKeys {
	required := installation.RequiredKeys{
		"pattoo": {"log_directory", "cache_directory", "daemon_directory"},
	}
	if !server {
		required["pattoo_agent_api"] = []string{"ip_address", "ip_bind_port"}
		required["pattoo_web_api"] = []string{"ip_address", "ip_bind_port"}
	}
	return required
}

func fatal(logger *zap.Logger, message string, err error) {
	logger.Fatal(message, zap.Int("code", configuration.Code(err)), zap.Error(err))
}
