package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"playground-e2e/internal/application/port/output"

	"github.com/joho/godotenv"
)

var _ output.ConfigPort = (*EnvService)(nil)

type EnvService struct {
	AppEnv string
	// Loaded lists the dotenv files that were applied, in order.
	Loaded []string
}

// NewEnvService applies .env and then .env.<APP_ENV> on top of the process
// environment. Missing files are not an error; CI usually has none.
func NewEnvService(dir string) *EnvService {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	svc := &EnvService{AppEnv: appEnv}

	base := filepath.Join(dir, ".env")
	if err := godotenv.Load(base); err == nil {
		svc.Loaded = append(svc.Loaded, base)
	}

	envFile := filepath.Join(dir, fmt.Sprintf(".env.%s", appEnv))
	if err := godotenv.Overload(envFile); err == nil {
		svc.Loaded = append(svc.Loaded, envFile)
	}

	return svc
}

func (e *EnvService) Get(key string) string {
	return os.Getenv(key)
}

func (e *EnvService) GetWithDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
