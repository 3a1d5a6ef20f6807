package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/creatorsync/creatorsync/internal/flagx"
	"github.com/creatorsync/creatorsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "10s" or as integer nanoseconds. After parsing, values are
// copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	LocalDBPath    string         `json:"local_db_path"`
	RemoteBackend  string         `json:"remote_backend"`
	DynamoTable    string         `json:"dynamo_table"`
	AWSRegion      string         `json:"aws_region"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	S3Bucket       string         `json:"s3_bucket"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	RemoteTimeout  timex.Duration `json:"remote_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path is resolved from the -c/-config flags via
// flagx.JsonConfigFlags(); if empty, no JSON is loaded. Read or unmarshal
// errors panic (caller should recover if desired). Empty JSON fields do not
// override defaults.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.RemoteBackend != "" {
		cfg.RemoteBackend = jc.RemoteBackend
	}
	if jc.DynamoTable != "" {
		cfg.DynamoTable = jc.DynamoTable
	}
	if jc.AWSRegion != "" {
		cfg.AWSRegion = jc.AWSRegion
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.RemoteTimeout.Duration != 0 {
		cfg.RemoteTimeout = time.Duration(jc.RemoteTimeout.Duration)
	}
}
