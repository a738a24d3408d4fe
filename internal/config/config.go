package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Cluster ClusterConfig
	Search  SearchConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DataConfig struct {
	File string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled          bool
	ClustersCacheTTL time.Duration
}

type ClusterConfig struct {
	RadiusPx   int     // радиус поглощения в экранных пикселях
	TileSize   int     // размер тайла, задаёт масштаб мировых пикселей
	SplitZoom  float64 // начиная с этого зума кластеры не образуются
	MaxZoom    float64
	TierSmall  int
	TierMedium int
}

type SearchConfig struct {
	QueryLimit  int     // максимум результатов для непустого запроса
	BrowseLimit int     // сколько топ-городов отдавать на пустой запрос
	CityZoom    float64 // зум fly-to при выборе города
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env опционален: в контейнере всё приходит из окружения
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Data: DataConfig{
			File: viper.GetString("DATA_FILE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled:          viper.GetBool("CACHE_ENABLED"),
			ClustersCacheTTL: time.Duration(viper.GetInt("CLUSTERS_CACHE_TTL")) * time.Second,
		},
		Cluster: ClusterConfig{
			RadiusPx:   viper.GetInt("CLUSTER_RADIUS_PX"),
			TileSize:   viper.GetInt("CLUSTER_TILE_SIZE"),
			SplitZoom:  viper.GetFloat64("CLUSTER_SPLIT_ZOOM"),
			MaxZoom:    viper.GetFloat64("CLUSTER_MAX_ZOOM"),
			TierSmall:  viper.GetInt("CLUSTER_TIER_SMALL"),
			TierMedium: viper.GetInt("CLUSTER_TIER_MEDIUM"),
		},
		Search: SearchConfig{
			QueryLimit:  viper.GetInt("SEARCH_QUERY_LIMIT"),
			BrowseLimit: viper.GetInt("SEARCH_BROWSE_LIMIT"),
			CityZoom:    viper.GetFloat64("SEARCH_CITY_ZOOM"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Data.File == "" {
		cfg.Data.File = "data/restaurants.json"
	}
	if cfg.Cache.ClustersCacheTTL == 0 {
		cfg.Cache.ClustersCacheTTL = 60 * time.Second
	}
	if cfg.Cluster.RadiusPx == 0 {
		cfg.Cluster.RadiusPx = 60
	}
	if cfg.Cluster.TileSize == 0 {
		cfg.Cluster.TileSize = 512
	}
	if cfg.Cluster.SplitZoom == 0 {
		cfg.Cluster.SplitZoom = 17
	}
	if cfg.Cluster.MaxZoom == 0 {
		cfg.Cluster.MaxZoom = 22
	}
	if cfg.Cluster.TierSmall == 0 {
		cfg.Cluster.TierSmall = 10
	}
	if cfg.Cluster.TierMedium == 0 {
		cfg.Cluster.TierMedium = 50
	}
	if cfg.Search.QueryLimit == 0 {
		cfg.Search.QueryLimit = 20
	}
	if cfg.Search.BrowseLimit == 0 {
		cfg.Search.BrowseLimit = 15
	}
	if cfg.Search.CityZoom == 0 {
		cfg.Search.CityZoom = 11
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
