// Package configuration resolves the pattoo YAML configuration file and
// exposes typed accessors for the directories, log settings and network
// endpoints the platform's agents and servers run with.
//
// The file is read once at process start and treated as immutable for the
// process lifetime. Accessors never terminate the process: unrecoverable
// misconfiguration surfaces as a coded *Error so the entry point decides
// how to die.
package configuration

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/bonnie-23/pattoo-shared/pkg/files"
)

// Config gathers all configuration information for one process.
type Config struct {
	doc  Document
	path string
}

// ConfigDir returns the configuration directory named by PATTOO_CONFIGDIR,
// with ~ expanded to the home directory.
func ConfigDir() (string, error) {
	directory := os.Getenv(EnvConfigDir)
	if directory == "" {
		return "", NewError(1041, "environment variable %s is not set", EnvConfigDir)
	}
	return files.ExpandUser(directory), nil
}

// Load reads pattoo.yaml from the configuration directory.
func Load() (*Config, error) {
	directory, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(directory, ConfigFilename))
}

// LoadFile reads the configuration file at an explicit path.
func LoadFile(path string) (*Config, error) {
	doc, err := files.ReadYAMLFile(path)
	if err != nil {
		return nil, NewError(1011, "unable to read configuration file %s: %v", path, err)
	}
	return &Config{doc: Document(doc), path: path}, nil
}

// New wraps an already-parsed document.
func New(doc Document) *Config {
	return &Config{doc: doc}
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// Document returns the raw mapping backing the typed accessors.
func (c *Config) Document() Document { return c.doc }

// AgentConfigFilename returns the configuration file path for a named agent
// program: <configdir>/<agent_program>.yaml.
func AgentConfigFilename(agentProgram string) (string, error) {
	directory, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(directory, agentProgram+".yaml"), nil
}

// LogDirectory returns pattoo.log_directory. The directory must already
// exist on disk: when it is wrong there is nowhere to log the problem to.
func (c *Config) LogDirectory() (string, error) {
	value, err := Search("pattoo", "log_directory", c.doc, true)
	if err != nil {
		return "", err
	}
	directory := files.ExpandUser(cast.ToString(value))
	info, statErr := os.Stat(directory)
	if statErr != nil || !info.IsDir() {
		return "", NewError(1003, "log_directory %q in configuration does not exist", directory)
	}
	return directory, nil
}

// LogFile returns the path of the main platform log file.
func (c *Config) LogFile() (string, error) {
	return c.logPath(LogFilename)
}

// LogFileAPI returns the path of the API daemon log file.
func (c *Config) LogFileAPI() (string, error) {
	return c.logPath(APILogFilename)
}

// LogFileDaemon returns the path of the daemon supervisor log file.
func (c *Config) LogFileDaemon() (string, error) {
	return c.logPath(DaemonLogFilename)
}

func (c *Config) logPath(filename string) (string, error) {
	directory, err := c.LogDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(directory, filename), nil
}

// LogLevel returns pattoo.log_level, lowercased, defaulting to "debug".
func (c *Config) LogLevel() (string, error) {
	value, err := Search("pattoo", "log_level", c.doc, false)
	if err != nil {
		return "", err
	}
	if value == nil {
		return DefaultLogLevel, nil
	}
	return strings.ToLower(cast.ToString(value)), nil
}

// Language returns pattoo.language, lowercased, defaulting to "en".
func (c *Config) Language() (string, error) {
	value, err := Search("pattoo", "language", c.doc, false)
	if err != nil {
		return "", err
	}
	language := strings.ToLower(cast.ToString(value))
	if language == "" {
		return DefaultLanguage, nil
	}
	return language, nil
}

// CacheDirectory returns pattoo.cache_directory, creating it when absent.
func (c *Config) CacheDirectory() (string, error) {
	return c.provisionedDirectory("cache_directory", 1017)
}

// AgentCacheDirectory returns the cache subdirectory reserved for one agent
// program, creating it when absent.
func (c *Config) AgentCacheDirectory(agentProgram string) (string, error) {
	parent, err := c.CacheDirectory()
	if err != nil {
		return "", err
	}
	directory := filepath.Join(parent, agentProgram)
	if err := files.MkDir(directory); err != nil {
		return "", NewError(1017, "unable to create agent cache directory %q: %v", directory, err)
	}
	return directory, nil
}

// DaemonDirectory returns pattoo.daemon_directory, creating it when absent.
func (c *Config) DaemonDirectory() (string, error) {
	return c.provisionedDirectory("daemon_directory", 1018)
}

func (c *Config) provisionedDirectory(subKey string, code int) (string, error) {
	value, err := Search("pattoo", subKey, c.doc, true)
	if err != nil {
		return "", err
	}
	directory := files.ExpandUser(cast.ToString(value))
	if err := files.MkDir(directory); err != nil {
		return "", NewError(code, "unable to create %s %q: %v", subKey, directory, err)
	}
	return directory, nil
}

// AgentAPIIPAddress returns pattoo_agent_api.ip_address, defaulting to
// localhost.
func (c *Config) AgentAPIIPAddress() (string, error) {
	value, err := Search("pattoo_agent_api", "ip_address", c.doc, false)
	if err != nil {
		return "", err
	}
	if value == nil {
		return DefaultAgentAPIAddress, nil
	}
	return cast.ToString(value), nil
}

// AgentAPIIPBindPort returns pattoo_agent_api.ip_bind_port, defaulting to
// 20201.
func (c *Config) AgentAPIIPBindPort() (int, error) {
	return c.bindPort("pattoo_agent_api", DefaultAgentAPIBindPort)
}

// WebAPIIPAddress returns pattoo_web_api.ip_address. There is no sane
// default for the server address, so the key is required.
func (c *Config) WebAPIIPAddress() (string, error) {
	value, err := Search("pattoo_web_api", "ip_address", c.doc, true)
	if err != nil {
		return "", err
	}
	return cast.ToString(value), nil
}

// WebAPIIPBindPort returns pattoo_web_api.ip_bind_port, defaulting to 20202.
func (c *Config) WebAPIIPBindPort() (int, error) {
	return c.bindPort("pattoo_web_api", DefaultWebAPIBindPort)
}

func (c *Config) bindPort(key string, fallback int) (int, error) {
	value, err := Search(key, "ip_bind_port", c.doc, false)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return fallback, nil
	}
	port, castErr := cast.ToIntE(value)
	if castErr != nil {
		return 0, NewError(1022, "%s:ip_bind_port value %v is not a valid port", key, value)
	}
	return port, nil
}

// AgentAPIURI returns the path prefix agents post data points to.
func (c *Config) AgentAPIURI() string {
	return APIAgentPrefix + "/receive"
}

// AgentAPIServerURL returns the full URL an agent posts its data points to.
// IPv6 literals are bracketed when composing host:port.
func (c *Config) AgentAPIServerURL(agentID string) (string, error) {
	address, err := c.AgentAPIIPAddress()
	if err != nil {
		return "", err
	}
	port, err := c.AgentAPIIPBindPort()
	if err != nil {
		return "", err
	}
	host := net.JoinHostPort(address, strconv.Itoa(port))
	return fmt.Sprintf("http://%s%s/%s", host, c.AgentAPIURI(), agentID), nil
}

// WebAPIServerURL returns the URL of the web API: the GraphQL endpoint when
// graphql is true, the REST data endpoint otherwise.
func (c *Config) WebAPIServerURL(graphql bool) (string, error) {
	address, err := c.WebAPIIPAddress()
	if err != nil {
		return "", err
	}
	port, err := c.WebAPIIPBindPort()
	if err != nil {
		return "", err
	}
	suffix := "/rest/data"
	if graphql {
		suffix = "/graphql"
	}
	host := net.JoinHostPort(address, strconv.Itoa(port))
	return fmt.Sprintf("http://%s%s%s", host, APIWebPrefix, suffix), nil
}
