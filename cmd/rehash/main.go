// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The reviewintel Authors

// Command rehash upgrades accounts still carrying legacy SHA-256 password
// digests to bcrypt.
//
// A hex digest cannot be converted to bcrypt without the plaintext, so each
// affected account is reset to a temporary password derived from its
// username. The temporary password is printed so an operator can hand it to
// the account owner; users are expected to change it after their next login.
package main

import (
	"context"
	"fmt"

	"github.com/aimplatform/reviewintel/internal/config"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/internal/utils"
)

func main() {
	log := logger.NewLogger("reviewintel-rehash")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.Connect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	users, err := storages.ListUsers(ctx, store.UserFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("error listing users")
	}

	var upgraded int
	for _, user := range users {
		if !utils.IsLegacyHash(user.PasswordHash) {
			continue
		}

		tempPassword := user.Username + "123"
		newHash, err := utils.BcryptPassword(tempPassword)
		if err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("error hashing temporary password")
			continue
		}

		if err := storages.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("error updating password hash")
			continue
		}

		fmt.Printf("%s -> temporary password: %s\n", user.Username, tempPassword)
		upgraded++
	}

	log.Info().Int("total", len(users)).Int("upgraded", upgraded).Msg("rehash finished")
}
