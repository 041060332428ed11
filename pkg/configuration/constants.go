package configuration

// URL prefixes shared between the platform APIs and every agent.
const (
	APISitePrefix  = "/pattoo/api/v1"
	APIAgentPrefix = APISitePrefix + "/agent"
	APIWebPrefix   = APISitePrefix + "/web"
)

// Executable names for the agent-facing API daemon and its proxy.
const (
	APIAgentExecutable = "pattoo-api-agentd"
	APIAgentProxy      = APIAgentExecutable + "-gunicorn"
)

// Values applied when the configuration file leaves a key out.
const (
	DefaultLogLevel         = "debug"
	DefaultLanguage         = "en"
	DefaultAgentAPIAddress  = "localhost"
	DefaultAgentAPIBindPort = 20201
	DefaultWebAPIBindPort   = 20202
)

// Configuration and log file names.
const (
	ConfigFilename       = "pattoo.yaml"
	ServerConfigFilename = "pattoo_server.yaml"
	LogFilename          = "pattoo.log"
	APILogFilename       = "pattoo-api.log"
	DaemonLogFilename    = "pattoo-daemon.log"
)

// EnvConfigDir names the environment variable that locates the
// configuration directory.
const EnvConfigDir = "PATTOO_CONFIGDIR"
