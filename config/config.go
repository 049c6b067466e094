package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is built once in main and passed to components; nothing else
// reads the process environment.
type Config struct {
	ListenAddr   string
	MongoURI     string
	DatabaseName string
	JWTKey       []byte

	// AMQPURI is optional; empty disables the broker leg of the
	// registration event feed.
	AMQPURI string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:   "0.0.0.0:" + envOrDefaultString("PORT", "8080"),
		MongoURI:     envOrDefaultString("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: envOrDefaultString("MONGO_DATABASE", "campuseventhub"),
		JWTKey:       []byte(envOrDefaultString("JWT_KEY", "test-key")),
		AMQPURI:      envOrDefaultString("RABBITMQ_CONNSTRING", ""),
	}
}

func envOrDefaultString(env, def string) string {
	if val, ok := os.LookupEnv(env); ok {
		return val
	}

	return def
}
