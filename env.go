package lifted

import (
	"github.com/joho/godotenv"
)

// LoadEnv loads .env in production and .env.dev otherwise. Missing files are
// not an error; the process environment still applies.
func LoadEnv(isProd bool) {
	if isProd {
		_ = godotenv.Load(".env")
	} else {
		_ = godotenv.Load(".env.dev")
	}
}
