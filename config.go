package mysql

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the explicit configuration record design note §9 calls for,
// replacing the teacher's loose string-keyed property map. Construction
// accepts an arbitrary map[string]string (spec.md §6); unrecognized keys
// are accepted and ignored rather than rejected.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string

	// CreateDB mirrors the "createDB" key: create the database and USE it
	// after auth instead of negotiating CLIENT_CONNECT_WITH_DB.
	CreateDB bool
	// EnableBlobStreaming mirrors the "enableBlobStreaming" key, queried
	// back via Connection.SupportsPBMS.
	EnableBlobStreaming bool
}

// rawOptions mirrors the two recognized keys from spec.md §6, decoded via
// viper/mapstructure the way meoying-dbproxy decodes its proxy config, so
// that unknown keys in the input map never cause a decode failure.
type rawOptions struct {
	CreateDB            bool `mapstructure:"createDB"`
	EnableBlobStreaming bool `mapstructure:"enableBlobStreaming"`
}

// parseOptions decodes the "true" (case-insensitive)/"" convention of
// spec.md §6 out of a loose string map into the two boolean switches this
// core recognizes.
func parseOptions(options map[string]string) (rawOptions, error) {
	v := viper.New()
	normalized := make(map[string]interface{}, len(options))
	for k, val := range options {
		normalized[strings.ToLower(k)] = strings.EqualFold(val, "true")
	}
	// viper keys are case-insensitive on read, but MergeConfigMap stores
	// exactly what's given; normalizing both key case and value up front
	// keeps the mapstructure tags (also lower-cased by viper) matching.
	if err := v.MergeConfigMap(map[string]interface{}{
		"createdb":            normalized["createdb"],
		"enableblobstreaming": normalized["enableblobstreaming"],
	}); err != nil {
		return rawOptions{}, err
	}

	var opts rawOptions
	if err := v.Unmarshal(&opts); err != nil {
		return rawOptions{}, err
	}
	return opts, nil
}

// NewConfig builds a Config from the construction inputs of spec.md §6.
// A nil database/username/password is treated as empty, per the data
// model in spec.md §3.
func NewConfig(host string, port int, database, user, password string, options map[string]string) (*Config, error) {
	opts, err := parseOptions(options)
	if err != nil {
		return nil, err
	}
	return &Config{
		Host:                host,
		Port:                port,
		Database:            database,
		User:                user,
		Password:            password,
		CreateDB:            opts.CreateDB,
		EnableBlobStreaming: opts.EnableBlobStreaming,
	}, nil
}
