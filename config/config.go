package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type GoogleMapsConfig struct {
	APIKey string `mapstructure:"apiKey"`
}

type DiscoveryConfig struct {
	DefaultRadiusKm float64 `mapstructure:"defaultRadiusKm"`
	TimeoutSeconds  int     `mapstructure:"timeoutSeconds"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Mongo     MongoConfig      `mapstructure:"mongo"`
	Maps      GoogleMapsConfig `mapstructure:"googleMaps"`
	Discovery DiscoveryConfig  `mapstructure:"discovery"`
	Log       LogConfig        `mapstructure:"log"`
}

// LoadConfig reads config.yaml from path and overlays environment variables.
// A missing file is fine; env vars alone are enough to run.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("googleMaps.apiKey", "GOOGLE_MAPS_API_KEY")
	viper.BindEnv("discovery.defaultRadiusKm", "DISCOVERY_DEFAULT_RADIUS_KM")
	viper.BindEnv("discovery.timeoutSeconds", "DISCOVERY_TIMEOUT_SECONDS")
	viper.BindEnv("log.level", "LOG_LEVEL")

	viper.SetDefault("server.port", "8083")
	viper.SetDefault("mongo.dbName", "neocare")
	viper.SetDefault("discovery.defaultRadiusKm", 5.0)
	viper.SetDefault("discovery.timeoutSeconds", 3)
	viper.SetDefault("log.level", "info")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
