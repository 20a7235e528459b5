package repositories

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	// Key prefixes for token store entries
	TokenKeyPrefix     = "token:"
	UserTokenKeyPrefix = "user-token:"
)

func tokenKey(token string) []byte {
	return []byte(TokenKeyPrefix + token)
}

func userTokenKey(userID uint) []byte {
	return []byte(UserTokenKeyPrefix + strconv.FormatUint(uint64(userID), 10))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
