package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and a
// string-friendly [Duration] type so durations can be written as "24h"
// in configuration files.
type StructuredJSONConfig struct {
	App struct {
		Environment       string `json:"environment"`
		BcryptCost        int    `json:"bcrypt_cost"`
		PasswordMinLength int    `json:"password_min_length"`
		PasswordMaxLength int    `json:"password_max_length"`
		PasswordMinDigits int    `json:"password_min_digits"`
	} `json:"app,omitempty"`

	Auth struct {
		SessionCookieName string   `json:"session_cookie_name"`
		SessionSecret     string   `json:"session_secret"`
		SessionTTL        Duration `json:"session_ttl"`
		CookieSecure      bool     `json:"cookie_secure"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment:       jsonCfg.App.Environment,
			BcryptCost:        jsonCfg.App.BcryptCost,
			PasswordMinLength: jsonCfg.App.PasswordMinLength,
			PasswordMaxLength: jsonCfg.App.PasswordMaxLength,
			PasswordMinDigits: jsonCfg.App.PasswordMinDigits,
		},
		Auth: Auth{
			SessionCookieName: jsonCfg.Auth.SessionCookieName,
			SessionSecret:     jsonCfg.Auth.SessionSecret,
			SessionTTL:        time.Duration(jsonCfg.Auth.SessionTTL),
			CookieSecure:      jsonCfg.Auth.CookieSecure,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
