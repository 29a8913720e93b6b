// SPDX-License-Identifier: Apache-2.0

package config

import "golang.org/x/crypto/bcrypt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Auth.SessionSecret == "" || cfg.Auth.SessionTTL <= 0 || cfg.Auth.SessionCookieName == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return ErrInvalidAppConfigs
	}

	if cfg.App.PasswordMinLength <= 0 ||
		cfg.App.PasswordMaxLength < cfg.App.PasswordMinLength ||
		cfg.App.PasswordMinDigits < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
