// Package redis parks wizard snapshots in Redis while the user is away at
// the login page.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "wizard:parked:"

// ParkedWizardStore implements ports.ParkedWizardStore. Each snapshot lives
// under its own key with a TTL and is removed atomically when claimed.
type ParkedWizardStore struct {
	rdb *goredis.Client
}

func NewParkedWizardStore(rdb *goredis.Client) *ParkedWizardStore {
	return &ParkedWizardStore{rdb: rdb}
}

// Park stores the snapshot and returns a random resume token.
func (s *ParkedWizardStore) Park(ctx context.Context, snapshot wizard.Snapshot, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err = s.rdb.Set(ctx, keyPrefix+token, data, ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Peek reads the snapshot without removing it.
func (s *ParkedWizardStore) Peek(ctx context.Context, token string) (wizard.Snapshot, error) {
	key, err := parkedKey(token)
	if err != nil {
		return wizard.Snapshot{}, err
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	return decode(token, data, err)
}

// Claim reads and deletes the snapshot in one round trip, so a token can
// only be redeemed once.
func (s *ParkedWizardStore) Claim(ctx context.Context, token string) (wizard.Snapshot, error) {
	key, err := parkedKey(token)
	if err != nil {
		return wizard.Snapshot{}, err
	}
	data, err := s.rdb.GetDel(ctx, key).Bytes()
	return decode(token, data, err)
}

func parkedKey(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errs.NewValueIsRequiredError("token")
	}
	return keyPrefix + token, nil
}

func decode(token string, data []byte, err error) (wizard.Snapshot, error) {
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return wizard.Snapshot{}, errs.NewObjectNotFoundError("parked wizard", token)
		}
		return wizard.Snapshot{}, err
	}

	var snapshot wizard.Snapshot
	if err = json.Unmarshal(data, &snapshot); err != nil {
		return wizard.Snapshot{}, err
	}

	return snapshot, nil
}
