package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Drivers de stockage de session supportés
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageMongo  = "mongo"
	StorageRedis  = "redis"
)

// Config contient la configuration du client SAHNE
type Config struct {
	APIBaseURL       string        `envconfig:"API_BASE_URL" default:"http://localhost:8090/api"`
	APITimeout       time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	StorageDriver    string        `envconfig:"STORAGE_DRIVER" default:"file"`
	StoragePath      string        `envconfig:"STORAGE_PATH" default:".sahne/session.json"`
	SessionNamespace string        `envconfig:"SESSION_NAMESPACE" default:"default"`
	MongoURI         string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB          string        `envconfig:"MONGO_DB" default:"sahne_client"`
	RedisAddr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	Timezone         string        `envconfig:"TIMEZONE" default:"Europe/Istanbul"`
	Environment      string        `envconfig:"ENVIRONMENT" default:"development"`
}

// ServerConfig contient la configuration du serveur d'API factice
type ServerConfig struct {
	Port        string   `envconfig:"PORT" default:"8090"`
	Host        string   `envconfig:"HOST" default:"0.0.0.0"`
	JWTSecret   string   `envconfig:"JWT_SECRET"`
	Environment string   `envconfig:"ENVIRONMENT" default:"development"`
	Timezone    string   `envconfig:"TIMEZONE" default:"Europe/Istanbul"`
	CORSOrigins []string `ignored:"true"`

	// Stockage des comptes, chefs, réservations et avis : "memory" ou "mongo"
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB       string `envconfig:"MONGO_DB" default:"sahne_mock_api"`
}

// Load charge la configuration du client depuis les variables d'environnement
func Load() (*Config, error) {
	// Charger le fichier .env s'il existe
	_ = godotenv.Load()

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("configuration invalide: %w", err)
	}

	config.APIBaseURL = strings.TrimRight(strings.TrimSpace(config.APIBaseURL), "/")
	if config.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL est requis")
	}

	switch config.StorageDriver {
	case StorageFile, StorageMemory, StorageMongo, StorageRedis:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER inconnu: %s", config.StorageDriver)
	}

	return &config, nil
}

// LoadServer charge la configuration du serveur d'API factice
func LoadServer() (*ServerConfig, error) {
	_ = godotenv.Load()

	var config ServerConfig
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("configuration invalide: %w", err)
	}

	// Parser les origines CORS
	origins := getEnv("CORS_ALLOWED_ORIGINS", "*")
	originsList := strings.Split(origins, ",")
	config.CORSOrigins = make([]string, 0, len(originsList))
	for _, origin := range originsList {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			config.CORSOrigins = append(config.CORSOrigins, trimmed)
		}
	}

	// Valider les configurations critiques
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET est requis")
	}
	if config.StorageDriver != StorageMemory && config.StorageDriver != StorageMongo {
		return nil, fmt.Errorf("STORAGE_DRIVER inconnu pour le serveur: %s", config.StorageDriver)
	}

	return &config, nil
}

// Location retourne le fuseau horaire du client (repli sur UTC+3)
func (c *Config) Location() *time.Location {
	return loadLocation(c.Timezone)
}

// Location retourne le fuseau horaire du serveur factice
func (c *ServerConfig) Location() *time.Location {
	return loadLocation(c.Timezone)
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("TRT", 3*3600)
	}
	return loc
}

// getEnv récupère une variable d'environnement avec une valeur par défaut
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
