package instance

import (
	"fmt"
	"os"
)

const envInstanceID = "STOREFRONT_INSTANCE_ID"

// GetID returns the process identifier used for lock ownership and log fields.
// Falls back to hostname-pid when STOREFRONT_INSTANCE_ID is unset.
func GetID() string {
	if id := os.Getenv(envInstanceID); id != "" {
		return id
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "storefront"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
