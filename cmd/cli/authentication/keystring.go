package authentication

// keystring.go stores the session token in the OS keyring, on the client side.
import (
	"encoding/json"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "bookhub-cli"
	tokenKey    = "auth_token"
)

type StoredCredentials struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func StoreCredentials(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey, string(data))
}

func GetCredentials() (*StoredCredentials, error) {
	value, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func DeleteCredentials() error {
	err := keyring.Delete(serviceName, tokenKey)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
