package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the command-line flags of the process.
//
// Flags:
//
//	-a remote store address
//	-t remote store bearer token
//	-request-timeout remote request timeout (e.g., "30s", "1m")
//	-d storage DSN
//	-zone default private zone name
//	-device device name
//	-log-file rotated log file path
//	-sync-interval background sync period (e.g., "5m")
//	-n notification listener address in format [host]:[port]
//	-notify-sign-key notification token signing key
//	-notify-issuer notification token issuer
//	-pull-descriptors public pull descriptor YAML path
//	-c/-config json file path with configs
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.NewFlagSet(os.Args[0], flag.ContinueOnError), os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var notifyAddress NetAddress
	var adapterAddress, adapterToken string
	var requestTimeout, syncInterval time.Duration
	var databaseDSN, defaultZone, deviceName, logFile string
	var notifySignKey, notifyIssuer string
	var descriptorsPath, jsonConfigPath string

	fs.StringVar(&adapterAddress, "a", "", "Remote store address")
	fs.StringVar(&adapterToken, "t", "", "Remote store bearer token")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&databaseDSN, "d", "", "Storage DSN")
	fs.StringVar(&defaultZone, "zone", "", "Default private zone name")
	fs.StringVar(&deviceName, "device", "", "Device name")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	fs.Var(&notifyAddress, "n", "Notification listener address host:port")
	fs.StringVar(&notifySignKey, "notify-sign-key", "", "Notification token signing key")
	fs.StringVar(&notifyIssuer, "notify-issuer", "", "Notification token issuer")
	fs.StringVar(&descriptorsPath, "pull-descriptors", "", "Public pull descriptors YAML path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			DefaultZoneName: defaultZone,
			DeviceName:      deviceName,
			LogFile:         logFile,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
			Token:          adapterToken,
		},
		Workers: Workers{SyncInterval: syncInterval},
		Notifications: Notifications{
			HTTPAddress:  notifyAddress.String(),
			TokenSignKey: notifySignKey,
			TokenIssuer:  notifyIssuer,
		},
		Pull:         Pull{DescriptorsPath: descriptorsPath},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
