package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	apiBaseURLVar = "API_BASE_URL"
	tokenFileVar  = "TOKEN_FILE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" || port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "MTN Academy Dashboard")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the base URL of the remote academy API, without a
// trailing slash (e.g. "https://api.mtnlive.mtninstitute.net/api").
func (API) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "https://api.mtnlive.mtninstitute.net/api")
}

// GetTokenFile returns the path of the file the token pair persists in.
func (API) GetTokenFile() string {
	return GetEnv(tokenFileVar, "./data/tokens.json")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
