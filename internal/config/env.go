package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/utils"

	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyAppAddr              = "app_addr"
	KeyGinMode              = "gin_mode"
	KeyLogLevel             = "log_level"
	KeyGraphQLURL           = "graphql_url"
	KeyUploadURL            = "upload_url"
	KeyAssetDomain          = "asset_domain"
	KeyCMSToken             = "cms_token"
	KeyJWTSecret            = "jwt_secret"
	KeyTokenTTL             = "token_ttl"
	KeyDBDSN                = "db_dsn"
	KeyCORSAllowedOrigins   = "cors_allowed_origins"
	KeyRequestTimeout       = "request_timeout"
	KeyNotificationCapacity = "notification_capacity"
	KeyScreenIdleTTL        = "screen_idle_ttl"
	KeyEntities             = "entities"
)

const envPrefix = "CMSADMIN"

type Env struct {
	AppAddr              string
	GinMode              string
	LogLevel             string
	GraphQLURL           string
	UploadURL            string
	AssetDomain          string
	CMSToken             string
	JWTSecret            string
	TokenTTL             time.Duration
	DBDSN                string
	CORSAllowedOrigins   []string
	RequestTimeout       time.Duration
	NotificationCapacity int
	// ScreenIdleTTL closes screens nobody has touched for that long.
	// Zero keeps them until DELETE or shutdown.
	ScreenIdleTTL time.Duration
	// Operations maps an entity name to its enabled operations. Entities
	// not listed keep their built-in capabilities.
	Operations map[string][]domain.Operation
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAppAddr, ":8080")
	v.SetDefault(KeyGinMode, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTokenTTL, 24*time.Hour)
	v.SetDefault(KeyCORSAllowedOrigins, []string{"*"})
	v.SetDefault(KeyRequestTimeout, 15*time.Second)
	v.SetDefault(KeyNotificationCapacity, 50)
	v.SetDefault(KeyScreenIdleTTL, 30*time.Minute)
}

// LoadEnv reads settings from defaults, an optional YAML file and the
// environment. A missing config file is not an error.
func LoadEnv(configFile string) (Env, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Bare names kept for existing deployments.
	_ = v.BindEnv(KeyAppAddr, envPrefix+"_APP_ADDR", "APP_ADDR")
	_ = v.BindEnv(KeyGinMode, envPrefix+"_GIN_MODE", "GIN_MODE")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("cmsadmin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/cmsadmin")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Env{}, fmt.Errorf("read config: %w", err)
		}
	}

	ops, err := parseOperations(v)
	if err != nil {
		return Env{}, err
	}

	return Env{
		AppAddr:              strings.TrimSpace(v.GetString(KeyAppAddr)),
		GinMode:              strings.TrimSpace(v.GetString(KeyGinMode)),
		LogLevel:             strings.TrimSpace(v.GetString(KeyLogLevel)),
		GraphQLURL:           strings.TrimSpace(v.GetString(KeyGraphQLURL)),
		UploadURL:            strings.TrimSpace(v.GetString(KeyUploadURL)),
		AssetDomain:          strings.TrimSpace(v.GetString(KeyAssetDomain)),
		CMSToken:             strings.TrimSpace(v.GetString(KeyCMSToken)),
		JWTSecret:            v.GetString(KeyJWTSecret),
		TokenTTL:             v.GetDuration(KeyTokenTTL),
		DBDSN:                strings.TrimSpace(v.GetString(KeyDBDSN)),
		CORSAllowedOrigins:   stringList(v, KeyCORSAllowedOrigins),
		RequestTimeout:       v.GetDuration(KeyRequestTimeout),
		NotificationCapacity: v.GetInt(KeyNotificationCapacity),
		ScreenIdleTTL:        v.GetDuration(KeyScreenIdleTTL),
		Operations:           ops,
	}, nil
}

// stringList reads a YAML list or a comma separated string, which is how
// lists arrive from the environment.
func stringList(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		return utils.SplitList(raw)
	}
	return v.GetStringSlice(key)
}

func parseOperations(v *viper.Viper) (map[string][]domain.Operation, error) {
	entities := v.GetStringMap(KeyEntities)
	if len(entities) == 0 {
		return nil, nil
	}
	out := make(map[string][]domain.Operation, len(entities))
	for name := range entities {
		key := KeyEntities + "." + name + ".operations"
		if !v.IsSet(key) {
			continue
		}
		raw := stringList(v, key)
		ops := make([]domain.Operation, 0, len(raw))
		for _, s := range raw {
			op, ok := domain.ParseOperation(s)
			if !ok {
				return nil, domain.ValidationError{Field: key, Msg: fmt.Sprintf("unknown operation %q", s)}
			}
			ops = append(ops, op)
		}
		out[strings.ToLower(name)] = ops
	}
	return out, nil
}

// ValidateServe checks the settings the HTTP server cannot run without.
func (e Env) ValidateServe() error {
	switch {
	case e.GraphQLURL == "":
		return domain.ValidationError{Field: KeyGraphQLURL, Msg: "is required"}
	case e.AssetDomain == "":
		return domain.ValidationError{Field: KeyAssetDomain, Msg: "is required"}
	case e.JWTSecret == "":
		return domain.ValidationError{Field: KeyJWTSecret, Msg: "is required"}
	case e.DBDSN == "":
		return domain.ValidationError{Field: KeyDBDSN, Msg: "is required"}
	case e.NotificationCapacity <= 0:
		return domain.ValidationError{Field: KeyNotificationCapacity, Msg: "must be positive"}
	}
	return nil
}

// UploadEndpoint falls back to the GraphQL host's /upload path when no
// upload URL is configured.
func (e Env) UploadEndpoint() string {
	if e.UploadURL != "" {
		return e.UploadURL
	}
	base := strings.TrimSuffix(strings.TrimRight(e.GraphQLURL, "/"), "/graphql")
	return base + "/upload"
}
